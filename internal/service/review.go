package service

import (
	"context"
	"errors"

	"github.com/reviewpal/reviewpal/internal/domain/entities"
	"github.com/reviewpal/reviewpal/internal/infra/postgres/repository"
)

var ErrSessionNotFound = errors.New("review session not found")

// ReviewService runs quiz sessions over a reviewer's questions. A session
// is created from the current state of the reviewer, then steps through the
// grading loop entirely in memory, independent of the store, until it
// finishes or is abandoned.
type ReviewService struct {
	reviewers ReviewerRepo
	sessions  SessionStore
}

func NewReviewService(reviewers ReviewerRepo, sessions SessionStore) *ReviewService {
	return &ReviewService{
		reviewers: reviewers,
		sessions:  sessions,
	}
}

// Start loads the reviewer on behalf of the owner and opens a session over
// its questions. A reviewer with no questions is rejected before any
// session state exists.
func (s *ReviewService) Start(ctx context.Context, ownerID, reviewerID string) (*entities.ReviewSession, error) {
	reviewer, err := s.reviewers.GetByID(ctx, reviewerID, ownerID)
	if err != nil {
		return nil, err
	}

	session, err := entities.NewReviewSession(reviewer)
	if err != nil {
		return nil, err
	}

	s.sessions.Store(session)
	return session, nil
}

// Get returns an active session owned by ownerID.
func (s *ReviewService) Get(_ context.Context, ownerID, sessionID string) (*entities.ReviewSession, error) {
	return s.owned(ownerID, sessionID)
}

// Submit grades one answer against the session's current question and
// reports whether it matched along with the updated session.
func (s *ReviewService) Submit(_ context.Context, ownerID, sessionID, answer string) (*entities.ReviewSession, bool, error) {
	session, err := s.owned(ownerID, sessionID)
	if err != nil {
		return nil, false, err
	}

	correct, err := session.Submit(answer)
	if err != nil {
		return nil, false, err
	}

	return session, correct, nil
}

// Restart re-enters a finished session from the top, keeping the original
// presentation order unless reshuffle is set.
func (s *ReviewService) Restart(_ context.Context, ownerID, sessionID string, reshuffle bool) (*entities.ReviewSession, error) {
	session, err := s.owned(ownerID, sessionID)
	if err != nil {
		return nil, err
	}

	if err := session.Restart(reshuffle); err != nil {
		return nil, err
	}

	return session, nil
}

// Abandon drops the session. Whatever the session had accumulated is
// discarded and never acted upon.
func (s *ReviewService) Abandon(_ context.Context, ownerID, sessionID string) error {
	if _, err := s.owned(ownerID, sessionID); err != nil {
		return err
	}

	s.sessions.Delete(sessionID)
	return nil
}

func (s *ReviewService) owned(ownerID, sessionID string) (*entities.ReviewSession, error) {
	session := s.sessions.Get(sessionID)
	if session == nil {
		return nil, ErrSessionNotFound
	}
	if session.OwnerID != ownerID {
		return nil, repository.ErrNotOwner
	}
	return session, nil
}
