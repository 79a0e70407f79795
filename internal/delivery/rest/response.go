package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/reviewpal/reviewpal/internal/domain/entities"
	"github.com/reviewpal/reviewpal/internal/infra/postgres/repository"
	"github.com/reviewpal/reviewpal/internal/service"
)

type errorResponse struct {
	Error string `json:"error"`
}

// respondError maps the error taxonomy onto HTTP status codes. Anything
// unmapped is a 500 and gets logged; typed errors are the caller's to
// handle and only echo their message.
func (h *Handler) respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, entities.ErrEmptyTitle),
		errors.Is(err, entities.ErrNoQuestions),
		errors.Is(err, entities.ErrInvalidQuestion),
		errors.Is(err, entities.ErrBlankAnswer):
		status = http.StatusBadRequest
	case errors.Is(err, entities.ErrEmptyQuestionSet):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, entities.ErrSessionFinished),
		errors.Is(err, entities.ErrSessionNotFinished):
		status = http.StatusConflict
	case errors.Is(err, repository.ErrReviewerNotFound),
		errors.Is(err, service.ErrSessionNotFound):
		status = http.StatusNotFound
	case errors.Is(err, repository.ErrNotOwner):
		status = http.StatusForbidden
	case errors.Is(err, repository.ErrStoreUnavailable):
		status = http.StatusServiceUnavailable
	}

	if status == http.StatusInternalServerError {
		h.logger.Error("request failed", zap.Error(err))
		c.JSON(status, errorResponse{Error: "internal error"})
		return
	}

	c.JSON(status, errorResponse{Error: err.Error()})
}
