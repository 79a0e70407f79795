package rest

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/reviewpal/reviewpal/internal/domain/entities"
)

type startSessionRequest struct {
	ReviewerID string `json:"reviewerId"`
}

type submitAnswerRequest struct {
	Answer string `json:"answer"`
}

type restartSessionRequest struct {
	Reshuffle bool `json:"reshuffle"`
}

// sessionQuestion is the current question as shown to the client. The
// expected answer never leaves the server while a session is in progress.
type sessionQuestion struct {
	ID     string `json:"id"`
	Prompt string `json:"prompt"`
}

type sessionResponse struct {
	ID         string           `json:"id"`
	ReviewerID string           `json:"reviewerId"`
	State      string           `json:"state"`
	Cursor     int              `json:"cursor"`
	Total      int              `json:"total"`
	Score      int              `json:"score"`
	Question   *sessionQuestion `json:"question,omitempty"`
	Percentage *int             `json:"percentage,omitempty"`
	Passed     *bool            `json:"passed,omitempty"`
}

type submitAnswerResponse struct {
	Correct bool            `json:"correct"`
	Session sessionResponse `json:"session"`
}

func (h *Handler) startSession(c *gin.Context) {
	var req startSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ReviewerID == "" {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	session, err := h.reviews.Start(c.Request.Context(), ownerID(c), req.ReviewerID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, h.toSessionResponse(session))
}

func (h *Handler) getSession(c *gin.Context) {
	session, err := h.reviews.Get(c.Request.Context(), ownerID(c), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.toSessionResponse(session))
}

func (h *Handler) submitAnswer(c *gin.Context) {
	var req submitAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	session, correct, err := h.reviews.Submit(c.Request.Context(), ownerID(c), c.Param("id"), req.Answer)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, submitAnswerResponse{
		Correct: correct,
		Session: h.toSessionResponse(session),
	})
}

func (h *Handler) restartSession(c *gin.Context) {
	// The body is optional; only a present but malformed one is an error.
	var req restartSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	session, err := h.reviews.Restart(c.Request.Context(), ownerID(c), c.Param("id"), req.Reshuffle)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.toSessionResponse(session))
}

func (h *Handler) abandonSession(c *gin.Context) {
	if err := h.reviews.Abandon(c.Request.Context(), ownerID(c), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) toSessionResponse(s *entities.ReviewSession) sessionResponse {
	cursor, score, state := s.Progress()
	resp := sessionResponse{
		ID:         s.ID,
		ReviewerID: s.ReviewerID,
		State:      state,
		Cursor:     cursor,
		Total:      s.Total(),
		Score:      score,
	}

	if current, err := s.Current(); err == nil {
		resp.Question = &sessionQuestion{ID: current.ID, Prompt: current.Prompt}
	}

	if state == entities.SessionFinished {
		percentage := s.Percentage()
		passed := percentage >= h.passThreshold
		resp.Percentage = &percentage
		resp.Passed = &passed
	}

	return resp
}
