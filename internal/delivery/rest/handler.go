package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler exposes the reviewer and review-session operations over HTTP for
// the mobile client. It renders results and maps errors; all policy lives
// in the services behind it.
type Handler struct {
	logger        *zap.Logger
	reviewers     ReviewerService
	reviews       ReviewService
	passThreshold int
}

func NewHandler(
	logger *zap.Logger,
	reviewers ReviewerService,
	reviews ReviewService,
	passThreshold int,
) *Handler {
	return &Handler{
		logger:        logger,
		reviewers:     reviewers,
		reviews:       reviews,
		passThreshold: passThreshold,
	}
}

// Register mounts the API routes. Everything under /api/v1 requires an
// authenticated owner.
func (h *Handler) Register(router *gin.Engine, auth *AuthMiddleware) {
	router.GET("/healthz", h.healthz)

	api := router.Group("/api/v1", auth.RequireAuth())

	api.POST("/reviewers", h.createReviewer)
	api.GET("/reviewers", h.listReviewers)
	api.GET("/reviewers/:id", h.getReviewer)
	api.PUT("/reviewers/:id", h.updateReviewer)
	api.DELETE("/reviewers/:id", h.deleteReviewer)

	api.POST("/sessions", h.startSession)
	api.GET("/sessions/:id", h.getSession)
	api.POST("/sessions/:id/answers", h.submitAnswer)
	api.POST("/sessions/:id/restart", h.restartSession)
	api.DELETE("/sessions/:id", h.abandonSession)
}

func (h *Handler) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
