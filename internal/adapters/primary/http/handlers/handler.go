package handlers

import (
	"purchase-intent-service/internal/core/services"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	adapter      *services.ModelAdapter
	scoringSvc   *services.ScoringService
	targetingSvc *services.TargetingService
}

func New(
	adapter *services.ModelAdapter,
	scoringSvc *services.ScoringService,
	targetingSvc *services.TargetingService,
) *Handler {
	return &Handler{
		adapter:      adapter,
		scoringSvc:   scoringSvc,
		targetingSvc: targetingSvc,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	// Session scoring
	r.POST("/predictions/session", h.PredictSession)
	r.POST("/predictions/labels", h.PredictLabels)

	// Batch targeting
	r.POST("/targeting/score", h.ScoreTopK)

	// Introspection
	r.GET("/strategies", h.ListStrategies)
	r.GET("/training-data", h.GetTrainingData)
}
