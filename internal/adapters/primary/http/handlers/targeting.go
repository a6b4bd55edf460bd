package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"purchase-intent-service/internal/adapters/primary/http/dto"
	"purchase-intent-service/internal/core/domain"
)

func (h *Handler) ScoreTopK(c *gin.Context) {
	var req dto.TargetingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	frame := domain.FrameFromRecords(req.Rows)
	result, err := h.targetingSvc.ScoreTopK(c.Request.Context(), frame, req.TopKRatio)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTargetingResponse(result))
}
