package service

import (
	"context"

	"github.com/reviewpal/reviewpal/internal/domain/entities"
)

// ReviewerService manages the lifecycle of reviewer sets for their owners.
// Every operation takes the acting owner explicitly; there is no ambient
// identity. Calls are fail-fast: errors surface typed to the caller and no
// retries happen here.
type ReviewerService struct {
	repo ReviewerRepo
}

func NewReviewerService(repo ReviewerRepo) *ReviewerService {
	return &ReviewerService{repo: repo}
}

// Create validates and persists a new reviewer for the owner.
func (s *ReviewerService) Create(ctx context.Context, ownerID, title string, questions []entities.Question) (*entities.Reviewer, error) {
	reviewer, err := entities.NewReviewer(ownerID, title, questions)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, reviewer); err != nil {
		return nil, err
	}

	return reviewer, nil
}

// Get returns one reviewer owned by ownerID.
func (s *ReviewerService) Get(ctx context.Context, reviewerID, ownerID string) (*entities.Reviewer, error) {
	return s.repo.GetByID(ctx, reviewerID, ownerID)
}

// List returns all reviewers created by the owner, in store-native order.
func (s *ReviewerService) List(ctx context.Context, ownerID string) ([]*entities.Reviewer, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

// Update replaces the reviewer's title and questions wholesale. The edited
// record keeps its id; there is no question-level merge.
func (s *ReviewerService) Update(ctx context.Context, reviewerID, ownerID, title string, questions []entities.Question) (*entities.Reviewer, error) {
	reviewer, err := entities.NewReviewer(ownerID, title, questions)
	if err != nil {
		return nil, err
	}
	reviewer.ID = reviewerID

	if err := s.repo.Update(ctx, reviewer); err != nil {
		return nil, err
	}

	return reviewer, nil
}

// Delete removes the reviewer and all of its questions.
func (s *ReviewerService) Delete(ctx context.Context, reviewerID, ownerID string) error {
	return s.repo.Delete(ctx, reviewerID, ownerID)
}
