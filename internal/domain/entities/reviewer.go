package entities

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyTitle      = errors.New("reviewer title is empty")
	ErrNoQuestions     = errors.New("reviewer has no questions")
	ErrInvalidQuestion = errors.New("question prompt or answer is empty")
)

// Question is a single prompt/expected-answer pair inside a reviewer.
// Its ID is assigned once at creation and carries no meaning outside
// the owning reviewer.
type Question struct {
	ID     string `json:"id"`
	Prompt string `json:"prompt"`
	Answer string `json:"answer"`
}

// Reviewer is a named set of question/answer pairs owned by one user.
// OwnerID is set at creation and never changes.
type Reviewer struct {
	ID        string
	OwnerID   string
	Title     string
	Questions []Question
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewReviewer builds a reviewer for the given owner. Questions without an
// ID get a fresh one; prompts and answers are trimmed. The result is
// validated and must not be persisted if an error is returned.
func NewReviewer(ownerID, title string, questions []Question) (*Reviewer, error) {
	r := &Reviewer{
		OwnerID:   ownerID,
		Title:     strings.TrimSpace(title),
		Questions: normalizeQuestions(questions),
	}

	if err := r.Validate(); err != nil {
		return nil, err
	}

	return r, nil
}

// Validate checks the invariants a reviewer must hold to be persisted:
// a non-empty title and at least one fully filled-in question.
func (r *Reviewer) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return ErrEmptyTitle
	}
	if len(r.Questions) == 0 {
		return ErrNoQuestions
	}
	for _, q := range r.Questions {
		if strings.TrimSpace(q.Prompt) == "" || strings.TrimSpace(q.Answer) == "" {
			return ErrInvalidQuestion
		}
	}
	return nil
}

func normalizeQuestions(questions []Question) []Question {
	out := make([]Question, 0, len(questions))
	for _, q := range questions {
		q.Prompt = strings.TrimSpace(q.Prompt)
		q.Answer = strings.TrimSpace(q.Answer)
		if q.ID == "" {
			q.ID = uuid.NewString()
		}
		out = append(out, q)
	}
	return out
}
