package service

import (
	"context"
	"time"

	"github.com/reviewpal/reviewpal/internal/domain/entities"
)

// ReviewerRepo is the owner-scoped persistence contract for reviewers.
// Implementations must enforce ownership on every read and mutation and
// surface mismatches as repository.ErrNotOwner.
type ReviewerRepo interface {
	Create(ctx context.Context, reviewer *entities.Reviewer) error
	GetByID(ctx context.Context, id, ownerID string) (*entities.Reviewer, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*entities.Reviewer, error)
	Update(ctx context.Context, reviewer *entities.Reviewer) error
	Delete(ctx context.Context, id, ownerID string) error
}

// SessionStore holds active review sessions between calls.
type SessionStore interface {
	Store(session *entities.ReviewSession)
	Get(id string) *entities.ReviewSession
	Delete(id string)
	Sweep(maxIdle time.Duration) int
}
