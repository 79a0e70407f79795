package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/reviewpal/reviewpal/internal/domain/entities"
)

// Malformed ids must come back as a typed not-found before any query runs,
// so callers see a 404 instead of a server-side cast failure.
func TestMalformedIDIsNotFound(t *testing.T) {
	repo := &ReviewerRepository{}
	ctx := context.Background()

	_, err := repo.GetByID(ctx, "not-a-uuid", "user-1")
	require.ErrorIs(t, err, ErrReviewerNotFound)

	require.ErrorIs(t, repo.Delete(ctx, "not-a-uuid", "user-1"), ErrReviewerNotFound)

	err = repo.Update(ctx, &entities.Reviewer{
		ID:        "not-a-uuid",
		OwnerID:   "user-1",
		Title:     "Basics",
		Questions: []entities.Question{{Prompt: "2+2", Answer: "4"}},
	})
	require.ErrorIs(t, err, ErrReviewerNotFound)
}
