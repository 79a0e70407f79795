package rest

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/reviewpal/reviewpal/internal/domain/entities"
)

type questionPayload struct {
	ID     string `json:"id,omitempty"`
	Prompt string `json:"prompt"`
	Answer string `json:"answer"`
}

type reviewerRequest struct {
	Title     string            `json:"title"`
	Questions []questionPayload `json:"questions"`
}

type reviewerResponse struct {
	ID        string            `json:"id"`
	Title     string            `json:"title"`
	Questions []questionPayload `json:"questions"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

func (h *Handler) createReviewer(c *gin.Context) {
	var req reviewerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	reviewer, err := h.reviewers.Create(c.Request.Context(), ownerID(c), req.Title, toQuestions(req.Questions))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toReviewerResponse(reviewer))
}

func (h *Handler) listReviewers(c *gin.Context) {
	reviewers, err := h.reviewers.List(c.Request.Context(), ownerID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	out := make([]reviewerResponse, 0, len(reviewers))
	for _, r := range reviewers {
		out = append(out, toReviewerResponse(r))
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) getReviewer(c *gin.Context) {
	reviewer, err := h.reviewers.Get(c.Request.Context(), c.Param("id"), ownerID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toReviewerResponse(reviewer))
}

func (h *Handler) updateReviewer(c *gin.Context) {
	var req reviewerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	reviewer, err := h.reviewers.Update(c.Request.Context(), c.Param("id"), ownerID(c), req.Title, toQuestions(req.Questions))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toReviewerResponse(reviewer))
}

func (h *Handler) deleteReviewer(c *gin.Context) {
	if err := h.reviewers.Delete(c.Request.Context(), c.Param("id"), ownerID(c)); err != nil {
		h.respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func toQuestions(payload []questionPayload) []entities.Question {
	questions := make([]entities.Question, 0, len(payload))
	for _, q := range payload {
		questions = append(questions, entities.Question{
			ID:     q.ID,
			Prompt: q.Prompt,
			Answer: q.Answer,
		})
	}
	return questions
}

func toReviewerResponse(r *entities.Reviewer) reviewerResponse {
	questions := make([]questionPayload, 0, len(r.Questions))
	for _, q := range r.Questions {
		questions = append(questions, questionPayload{
			ID:     q.ID,
			Prompt: q.Prompt,
			Answer: q.Answer,
		})
	}
	return reviewerResponse{
		ID:        r.ID,
		Title:     r.Title,
		Questions: questions,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}
