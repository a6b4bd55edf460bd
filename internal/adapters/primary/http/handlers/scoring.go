package handlers

import (
	"net/http"
	"sort"
	"strconv"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"purchase-intent-service/internal/adapters/primary/http/dto"
	"purchase-intent-service/internal/core/domain"
	"purchase-intent-service/internal/core/services"
)

func (h *Handler) PredictSession(c *gin.Context) {
	var req dto.SessionPredictionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	frame := domain.FrameFromRecords([]map[string]any{req.Features})

	ctx := services.WithRequestID(c.Request.Context(), c.GetString("request_id"))
	result, err := h.scoringSvc.PredictSession(ctx, frame, req.Strategy)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToSessionPredictionResponse(result))
}

func (h *Handler) PredictLabels(c *gin.Context) {
	var req dto.LabelPredictionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	strategy := req.Strategy
	if strategy == "" {
		strategy = domain.StrategyROCAUC
	}

	thr := 0.0
	if req.Threshold != nil {
		thr = *req.Threshold
	} else {
		var err error
		thr, err = h.adapter.Threshold(c.Request.Context(), strategy)
		if err != nil {
			mapDomainError(c, err)
			return
		}
	}

	frame := domain.FrameFromRecords(req.Rows)
	labels, err := h.adapter.PredictLabel(c.Request.Context(), frame, strategy, &thr)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.LabelPredictionResponse{
		Labels:        labels,
		ThresholdUsed: thr,
		Strategy:      strategy,
	})
}

func (h *Handler) ListStrategies(c *gin.Context) {
	names := h.adapter.Strategies()
	sort.Strings(names)

	items := make([]dto.StrategyResponse, 0, len(names))
	for _, name := range names {
		item := dto.StrategyResponse{Name: name}
		// Threshold requires a loaded artifact; leave it out when loading
		// fails rather than failing the listing.
		if thr, err := h.adapter.Threshold(c.Request.Context(), name); err == nil {
			item.BestThreshold = &thr
		}
		items = append(items, item)
	}

	c.JSON(http.StatusOK, gin.H{"strategies": items})
}

func (h *Handler) GetTrainingData(c *gin.Context) {
	frame, err := h.scoringSvc.TrainingData(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("load training data failed")
		mapDomainError(c, err)
		return
	}

	total := frame.NumRows()
	if limit, err := strconv.Atoi(c.DefaultQuery("limit", "0")); err == nil && limit > 0 {
		frame = frame.Head(limit)
	}

	c.JSON(http.StatusOK, dto.TrainingDataResponse{
		Columns: frame.Columns(),
		Rows:    frame.Records(),
		Total:   total,
	})
}
