package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/reviewpal/reviewpal/internal/domain/entities"
	"github.com/reviewpal/reviewpal/internal/infra/postgres"
)

var (
	ErrReviewerNotFound = errors.New("reviewer not found")
	ErrNotOwner         = errors.New("reviewer belongs to another user")
	ErrStoreUnavailable = errors.New("reviewer store unavailable")
)

// validID screens reviewer ids before they reach the database. Ids are
// opaque caller input, and anything that does not parse as a UUID can never
// name a stored row, so it is a not-found rather than a query error.
func validID(id string) error {
	if uuid.Validate(id) != nil {
		return ErrReviewerNotFound
	}
	return nil
}

// ReviewerRepository provides access to reviewer documents in the database.
// Every read and mutation is scoped to the acting owner: a mismatch is a
// hard ErrNotOwner, never a silent filter.
type ReviewerRepository struct {
	db           postgres.DBTX
	transactor   *postgres.Transactor
	queryTimeout time.Duration
}

// NewReviewerRepository creates a ReviewerRepository over the given pool.
// queryTimeout bounds every store call; zero disables the bound.
func NewReviewerRepository(pool *pgxpool.Pool, queryTimeout time.Duration) *ReviewerRepository {
	return &ReviewerRepository{
		db:           pool,
		transactor:   postgres.NewTransactor(pool),
		queryTimeout: queryTimeout,
	}
}

// Create inserts a new reviewer, assigning its id and timestamps.
func (r *ReviewerRepository) Create(ctx context.Context, reviewer *entities.Reviewer) error {
	query := `
		INSERT INTO reviewers (id, owner_id, title, questions, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
	`

	questions, err := json.Marshal(reviewer.Questions)
	if err != nil {
		return fmt.Errorf("encode questions: %w", err)
	}

	reviewer.ID = uuid.NewString()
	now := time.Now().UTC()
	reviewer.CreatedAt = now
	reviewer.UpdatedAt = now

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	_, err = r.db.Exec(ctx, query, reviewer.ID, reviewer.OwnerID, reviewer.Title, questions, now)
	if err != nil {
		return storeErr("create reviewer", err)
	}

	return nil
}

// GetByID retrieves a reviewer by id on behalf of the given owner.
func (r *ReviewerRepository) GetByID(ctx context.Context, id, ownerID string) (*entities.Reviewer, error) {
	if err := validID(id); err != nil {
		return nil, err
	}

	query := `
		SELECT id, owner_id, title, questions, created_at, updated_at
		FROM reviewers
		WHERE id = $1
	`

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	reviewer, err := scanReviewer(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrReviewerNotFound
		}
		return nil, storeErr("get reviewer", err)
	}

	if reviewer.OwnerID != ownerID {
		return nil, ErrNotOwner
	}

	return reviewer, nil
}

// ListByOwner retrieves all reviewers created by the given owner.
// Rows come back in store-native order; callers must not rely on it.
func (r *ReviewerRepository) ListByOwner(ctx context.Context, ownerID string) ([]*entities.Reviewer, error) {
	query := `
		SELECT id, owner_id, title, questions, created_at, updated_at
		FROM reviewers
		WHERE owner_id = $1
	`

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, storeErr("list reviewers", err)
	}
	defer rows.Close()

	var reviewers []*entities.Reviewer
	for rows.Next() {
		reviewer, err := scanReviewer(rows)
		if err != nil {
			return nil, storeErr("scan reviewer row", err)
		}
		reviewers = append(reviewers, reviewer)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list reviewers", err)
	}

	return reviewers, nil
}

// Update replaces the reviewer's title and questions wholesale and
// refreshes updated_at. The whole operation runs in one transaction so a
// failed ownership check leaves the record untouched.
func (r *ReviewerRepository) Update(ctx context.Context, reviewer *entities.Reviewer) error {
	if err := validID(reviewer.ID); err != nil {
		return err
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	questions, err := json.Marshal(reviewer.Questions)
	if err != nil {
		return fmt.Errorf("encode questions: %w", err)
	}

	err = r.transactor.WithinTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := lockOwned(ctx, tx, reviewer.ID, reviewer.OwnerID); err != nil {
			return err
		}

		now := time.Now().UTC()
		_, err := tx.Exec(ctx, `
			UPDATE reviewers
			SET title = $1, questions = $2, updated_at = $3
			WHERE id = $4
		`, reviewer.Title, questions, now, reviewer.ID)
		if err != nil {
			return err
		}

		reviewer.UpdatedAt = now
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrReviewerNotFound) || errors.Is(err, ErrNotOwner) {
			return err
		}
		return storeErr("update reviewer", err)
	}

	return nil
}

// Delete removes the reviewer and, with it, all of its questions. A second
// delete of the same id reports ErrReviewerNotFound, never silent success.
func (r *ReviewerRepository) Delete(ctx context.Context, id, ownerID string) error {
	if err := validID(id); err != nil {
		return err
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	err := r.transactor.WithinTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := lockOwned(ctx, tx, id, ownerID); err != nil {
			return err
		}

		_, err := tx.Exec(ctx, `DELETE FROM reviewers WHERE id = $1`, id)
		return err
	})
	if err != nil {
		if errors.Is(err, ErrReviewerNotFound) || errors.Is(err, ErrNotOwner) {
			return err
		}
		return storeErr("delete reviewer", err)
	}

	return nil
}

// lockOwned row-locks the reviewer and verifies it belongs to ownerID.
func lockOwned(ctx context.Context, tx pgx.Tx, id, ownerID string) error {
	var storedOwner string
	err := tx.QueryRow(ctx, `
		SELECT owner_id FROM reviewers WHERE id = $1 FOR UPDATE
	`, id).Scan(&storedOwner)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrReviewerNotFound
		}
		return err
	}

	if storedOwner != ownerID {
		return ErrNotOwner
	}

	return nil
}

func scanReviewer(row pgx.Row) (*entities.Reviewer, error) {
	var reviewer entities.Reviewer
	var questions []byte

	err := row.Scan(
		&reviewer.ID,
		&reviewer.OwnerID,
		&reviewer.Title,
		&questions,
		&reviewer.CreatedAt,
		&reviewer.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(questions, &reviewer.Questions); err != nil {
		return nil, fmt.Errorf("decode questions: %w", err)
	}

	return &reviewer, nil
}

func (r *ReviewerRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.queryTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.queryTimeout)
}

// storeErr folds transport-level failures, including timeouts and
// cancellation, into ErrStoreUnavailable. Server-reported query errors keep
// their own identity.
func storeErr(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: %w: %v", op, ErrStoreUnavailable, err)
}
