package dto

import (
	"purchase-intent-service/internal/core/domain"
)

type SessionPredictionRequest struct {
	Features map[string]any `json:"features" binding:"required"`
	Strategy string         `json:"strategy"`
}

type SessionPredictionResponse struct {
	Probability float64  `json:"probability"`
	RiskBand    string   `json:"risk_band"`
	StatusLabel string   `json:"status_label"`
	CompareText string   `json:"compare_text"`
	Reasons     []string `json:"reasons"`
	AverageText string   `json:"average_text"`
	Strategy    string   `json:"strategy"`
}

func ToSessionPredictionResponse(r *domain.PredictionResult) SessionPredictionResponse {
	return SessionPredictionResponse{
		Probability: r.Probability,
		RiskBand:    string(r.RiskBand),
		StatusLabel: r.StatusLabel,
		CompareText: r.CompareText,
		Reasons:     r.Reasons,
		AverageText: r.AverageText,
		Strategy:    r.Strategy,
	}
}

type LabelPredictionRequest struct {
	Rows      []map[string]any `json:"rows" binding:"required,min=1"`
	Strategy  string           `json:"strategy"`
	Threshold *float64         `json:"threshold"`
}

type LabelPredictionResponse struct {
	Labels        []int   `json:"labels"`
	ThresholdUsed float64 `json:"threshold_used"`
	Strategy      string  `json:"strategy"`
}

type TargetingRequest struct {
	Rows      []map[string]any `json:"rows" binding:"required,min=1"`
	TopKRatio float64          `json:"top_k_ratio" binding:"required"`
}

type TargetingResponse struct {
	Rows          []map[string]any `json:"rows"`
	ThresholdUsed float64          `json:"threshold_used"`
	TopKRatio     float64          `json:"top_k_ratio"`
	Selected      int              `json:"selected"`
}

func ToTargetingResponse(r *domain.BatchResult) TargetingResponse {
	return TargetingResponse{
		Rows:          r.Frame.Records(),
		ThresholdUsed: r.ThresholdUsed,
		TopKRatio:     r.TopKRatio,
		Selected:      r.Selected,
	}
}

type StrategyResponse struct {
	Name          string   `json:"name"`
	BestThreshold *float64 `json:"best_threshold,omitempty"`
}

type TrainingDataResponse struct {
	Columns []string         `json:"columns"`
	Rows    []map[string]any `json:"rows"`
	Total   int              `json:"total"`
}
