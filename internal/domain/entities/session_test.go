package entities

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestReviewer(t *testing.T) *Reviewer {
	t.Helper()

	reviewer, err := NewReviewer("user-1", "Mixed", []Question{
		{Prompt: "2+2", Answer: "4"},
		{Prompt: "Capital of France", Answer: "Paris"},
	})
	require.NoError(t, err)
	reviewer.ID = "rev-1"
	return reviewer
}

// answerFor looks up the expected answer of a presented question, since the
// presentation order is shuffled.
func answerFor(t *testing.T, reviewer *Reviewer, q Question) string {
	t.Helper()

	for _, candidate := range reviewer.Questions {
		if candidate.ID == q.ID {
			return candidate.Answer
		}
	}
	t.Fatalf("question %s not part of reviewer", q.ID)
	return ""
}

func TestNewReviewSessionRejectsEmptySet(t *testing.T) {
	_, err := NewReviewSession(&Reviewer{ID: "rev-1", OwnerID: "user-1"})
	require.ErrorIs(t, err, ErrEmptyQuestionSet)
}

func TestNewReviewSessionOrderIsPermutation(t *testing.T) {
	reviewer, err := NewReviewer("user-1", "Big", []Question{
		{Prompt: "a", Answer: "1"},
		{Prompt: "b", Answer: "2"},
		{Prompt: "c", Answer: "3"},
		{Prompt: "d", Answer: "4"},
		{Prompt: "e", Answer: "5"},
	})
	require.NoError(t, err)

	session, err := NewReviewSession(reviewer)
	require.NoError(t, err)
	require.Equal(t, SessionInProgress, session.State)
	require.Zero(t, session.Cursor)
	require.Zero(t, session.Score)
	require.ElementsMatch(t, reviewer.Questions, session.Order)
}

func TestSubmitAllCorrect(t *testing.T) {
	reviewer := newTestReviewer(t)
	session, err := NewReviewSession(reviewer)
	require.NoError(t, err)

	for session.State == SessionInProgress {
		current, err := session.Current()
		require.NoError(t, err)

		correct, err := session.Submit("  " + answerFor(t, reviewer, current) + " ")
		require.NoError(t, err)
		require.True(t, correct)
	}

	require.Equal(t, SessionFinished, session.State)
	require.Equal(t, 2, session.Score)
	require.Equal(t, 2, session.Total())
	require.Equal(t, 100, session.Percentage())
}

func TestSubmitCaseInsensitive(t *testing.T) {
	reviewer := newTestReviewer(t)
	session, err := NewReviewSession(reviewer)
	require.NoError(t, err)

	for session.State == SessionInProgress {
		current, err := session.Current()
		require.NoError(t, err)

		answer := answerFor(t, reviewer, current)
		correct, err := session.Submit(" " + mixCase(answer) + "  ")
		require.NoError(t, err)
		require.True(t, correct)
	}

	require.Equal(t, 100, session.Percentage())
}

func TestSubmitOneWrong(t *testing.T) {
	reviewer := newTestReviewer(t)
	session, err := NewReviewSession(reviewer)
	require.NoError(t, err)

	wrongOnce := false
	for session.State == SessionInProgress {
		current, err := session.Current()
		require.NoError(t, err)

		answer := answerFor(t, reviewer, current)
		if !wrongOnce {
			answer = "definitely wrong"
			wrongOnce = true
		}

		_, err = session.Submit(answer)
		require.NoError(t, err)
	}

	require.Equal(t, 1, session.Score)
	require.Equal(t, 2, session.Total())
	require.Equal(t, 50, session.Percentage())
}

func TestSubmitConcurrentFinishesExactlyOnce(t *testing.T) {
	reviewer, err := NewReviewer("user-1", "Wide", []Question{
		{Prompt: "a", Answer: "1"},
		{Prompt: "b", Answer: "2"},
		{Prompt: "c", Answer: "3"},
		{Prompt: "d", Answer: "4"},
	})
	require.NoError(t, err)

	session, err := NewReviewSession(reviewer)
	require.NoError(t, err)

	answers := make(map[string]string, len(reviewer.Questions))
	for _, q := range reviewer.Questions {
		answers[q.ID] = q.Answer
	}

	// Hammer one session from several goroutines, like a double-tapping
	// client. The cursor must land exactly on the total, never past it.
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				current, err := session.Current()
				if err != nil {
					return
				}
				if _, err := session.Submit(answers[current.ID]); err != nil {
					return
				}
			}
		}()
	}
	wg.Wait()

	require.Equal(t, SessionFinished, session.State)
	require.Equal(t, len(reviewer.Questions), session.Cursor)
	require.LessOrEqual(t, session.Score, session.Total())

	_, err = session.Current()
	require.ErrorIs(t, err, ErrSessionFinished)
}

func TestSubmitBlankAnswerLeavesStateUntouched(t *testing.T) {
	session, err := NewReviewSession(newTestReviewer(t))
	require.NoError(t, err)

	_, err = session.Submit("   ")
	require.ErrorIs(t, err, ErrBlankAnswer)
	require.Zero(t, session.Cursor)
	require.Zero(t, session.Score)
	require.Equal(t, SessionInProgress, session.State)
}

func TestSubmitAfterFinished(t *testing.T) {
	reviewer := newTestReviewer(t)
	session, err := NewReviewSession(reviewer)
	require.NoError(t, err)

	for session.State == SessionInProgress {
		current, _ := session.Current()
		_, err := session.Submit(answerFor(t, reviewer, current))
		require.NoError(t, err)
	}

	_, err = session.Submit("4")
	require.ErrorIs(t, err, ErrSessionFinished)
}

func TestRestartKeepsOrder(t *testing.T) {
	reviewer := newTestReviewer(t)
	session, err := NewReviewSession(reviewer)
	require.NoError(t, err)

	for session.State == SessionInProgress {
		current, _ := session.Current()
		_, err := session.Submit(answerFor(t, reviewer, current))
		require.NoError(t, err)
	}

	original := append([]Question(nil), session.Order...)

	require.NoError(t, session.Restart(false))
	require.Equal(t, SessionInProgress, session.State)
	require.Zero(t, session.Cursor)
	require.Zero(t, session.Score)
	require.Equal(t, original, session.Order)
}

func TestRestartWithReshuffleKeepsQuestions(t *testing.T) {
	reviewer := newTestReviewer(t)
	session, err := NewReviewSession(reviewer)
	require.NoError(t, err)

	for session.State == SessionInProgress {
		current, _ := session.Current()
		_, err := session.Submit(answerFor(t, reviewer, current))
		require.NoError(t, err)
	}

	require.NoError(t, session.Restart(true))
	require.ElementsMatch(t, reviewer.Questions, session.Order)
}

func TestRestartWhileInProgress(t *testing.T) {
	session, err := NewReviewSession(newTestReviewer(t))
	require.NoError(t, err)

	require.ErrorIs(t, session.Restart(false), ErrSessionNotFinished)
}

func TestPercentageRounds(t *testing.T) {
	reviewer, err := NewReviewer("user-1", "Three", []Question{
		{Prompt: "a", Answer: "1"},
		{Prompt: "b", Answer: "2"},
		{Prompt: "c", Answer: "3"},
	})
	require.NoError(t, err)

	session, err := NewReviewSession(reviewer)
	require.NoError(t, err)
	session.Score = 2
	require.Equal(t, 67, session.Percentage())
}

func mixCase(s string) string {
	out := []rune(s)
	for i, r := range out {
		if i%2 == 0 {
			if r >= 'a' && r <= 'z' {
				out[i] = r - 'a' + 'A'
			} else if r >= 'A' && r <= 'Z' {
				out[i] = r - 'A' + 'a'
			}
		}
	}
	return string(out)
}
