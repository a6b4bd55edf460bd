package domain

import (
	"time"

	"github.com/google/uuid"
)

type RiskBand string

const (
	RiskBandHigh   RiskBand = "high"
	RiskBandMedium RiskBand = "medium"
	RiskBandLow    RiskBand = "low"
)

// PredictionResult is the scored outcome for a single session: the raw
// probability, its risk band, and the templated explanation texts built from
// the session's raw fields. Constructed per call, never retained.
type PredictionResult struct {
	Probability float64
	RiskBand    RiskBand
	StatusLabel string
	CompareText string
	Reasons     []string
	AverageText string
	Strategy    string
}

// BatchResult is the input frame augmented with the scored columns
// (purchase_proba, purchase_pred, threshold_used, top_k_ratio).
type BatchResult struct {
	Frame         *Frame
	ThresholdUsed float64
	TopKRatio     float64
	Selected      int
}

// Batch result column names.
const (
	ColPurchaseProba = "purchase_proba"
	ColPurchasePred  = "purchase_pred"
	ColThresholdUsed = "threshold_used"
	ColTopKRatio     = "top_k_ratio"
)

// PredictionRecord is one row of the optional prediction audit log.
type PredictionRecord struct {
	ID          uuid.UUID
	CreatedAt   time.Time
	RequestID   string
	Strategy    string
	Probability float64
	RiskBand    RiskBand
}
