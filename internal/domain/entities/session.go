package entities

import (
	"errors"
	"math"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Session states. No other states exist.
const (
	SessionInProgress = "in_progress"
	SessionFinished   = "finished"
)

var (
	ErrEmptyQuestionSet   = errors.New("reviewer has no questions to review")
	ErrBlankAnswer        = errors.New("submitted answer is blank")
	ErrSessionFinished    = errors.New("review session is already finished")
	ErrSessionNotFinished = errors.New("review session is still in progress")
)

// ReviewSession is the ephemeral run-through state for one reviewer.
// It presents the reviewer's questions in a shuffled order fixed at start,
// grades free-text answers and accumulates a score. It lives only for the
// duration of the study flow that created it and is never persisted.
type ReviewSession struct {
	ID         string
	ReviewerID string
	OwnerID    string
	StartedAt  time.Time

	mu     sync.Mutex // guards the run state below against concurrent submits
	Order  []Question // presentation order, a permutation of the reviewer's questions
	Cursor int
	Score  int
	State  string
}

// NewReviewSession starts a session over the given reviewer's questions.
// The presentation order is a uniform Fisher-Yates shuffle applied once
// here. A reviewer with zero questions is rejected up front.
func NewReviewSession(reviewer *Reviewer) (*ReviewSession, error) {
	if len(reviewer.Questions) == 0 {
		return nil, ErrEmptyQuestionSet
	}

	order := append([]Question(nil), reviewer.Questions...)
	rand.Shuffle(len(order), func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})

	return &ReviewSession{
		ID:         uuid.NewString(),
		ReviewerID: reviewer.ID,
		OwnerID:    reviewer.OwnerID,
		Order:      order,
		State:      SessionInProgress,
		StartedAt:  time.Now(),
	}, nil
}

// Current returns the question at the cursor.
func (s *ReviewSession) Current() (Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.State != SessionInProgress {
		return Question{}, ErrSessionFinished
	}
	return s.Order[s.Cursor], nil
}

// Submit grades the answer against the current question and advances the
// cursor. Matching is case-insensitive on trimmed text, no partial credit.
// A blank answer is rejected without any state change; the session finishes
// once the last question has been answered, whatever the outcome.
func (s *ReviewSession) Submit(answer string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.State == SessionFinished {
		return false, ErrSessionFinished
	}

	trimmed := strings.TrimSpace(answer)
	if trimmed == "" {
		return false, ErrBlankAnswer
	}

	correct := strings.EqualFold(trimmed, strings.TrimSpace(s.Order[s.Cursor].Answer))
	if correct {
		s.Score++
	}

	s.Cursor++
	if s.Cursor == len(s.Order) {
		s.State = SessionFinished
	}

	return correct, nil
}

// Restart re-enters a finished session with cursor and score reset.
// The original order is kept unless the caller asks for a fresh shuffle.
func (s *ReviewSession) Restart(reshuffle bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.State != SessionFinished {
		return ErrSessionNotFinished
	}

	if reshuffle {
		rand.Shuffle(len(s.Order), func(i, j int) {
			s.Order[i], s.Order[j] = s.Order[j], s.Order[i]
		})
	}

	s.Cursor = 0
	s.Score = 0
	s.State = SessionInProgress
	return nil
}

// Total returns the number of questions in the session.
func (s *ReviewSession) Total() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Order)
}

// Progress reports the cursor, score and state as one consistent read.
func (s *ReviewSession) Progress() (cursor, score int, state string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Cursor, s.Score, s.State
}

// Percentage reports the score as a rounded percent of the total.
func (s *ReviewSession) Percentage() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.Order) == 0 {
		return 0
	}
	return int(math.Round(100 * float64(s.Score) / float64(len(s.Order))))
}
