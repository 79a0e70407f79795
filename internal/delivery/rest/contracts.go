package rest

import (
	"context"

	"github.com/reviewpal/reviewpal/internal/domain/entities"
)

type ReviewerService interface {
	Create(ctx context.Context, ownerID, title string, questions []entities.Question) (*entities.Reviewer, error)
	Get(ctx context.Context, reviewerID, ownerID string) (*entities.Reviewer, error)
	List(ctx context.Context, ownerID string) ([]*entities.Reviewer, error)
	Update(ctx context.Context, reviewerID, ownerID, title string, questions []entities.Question) (*entities.Reviewer, error)
	Delete(ctx context.Context, reviewerID, ownerID string) error
}

type ReviewService interface {
	Start(ctx context.Context, ownerID, reviewerID string) (*entities.ReviewSession, error)
	Get(ctx context.Context, ownerID, sessionID string) (*entities.ReviewSession, error)
	Submit(ctx context.Context, ownerID, sessionID, answer string) (*entities.ReviewSession, bool, error)
	Restart(ctx context.Context, ownerID, sessionID string, reshuffle bool) (*entities.ReviewSession, error)
	Abandon(ctx context.Context, ownerID, sessionID string) error
}
