package domain

// Scorer is a loaded scoring pipeline. Implementations are immutable once
// constructed and safe for concurrent use.
type Scorer interface {
	// PredictProba returns the positive-class purchase probability for each
	// row of the frame.
	PredictProba(f *Frame) ([]float64, error)

	// FeatureNames returns the column set recorded at training time, in
	// training order. A nil result means the scorer carries no schema
	// metadata and inputs are passed through unaligned.
	FeatureNames() []string
}

// Artifact is a scoring pipeline loaded from disk together with its tuned
// decision threshold and any auxiliary metadata stored alongside it.
// Immutable after load; cached for the process lifetime.
type Artifact struct {
	Scorer        Scorer
	BestThreshold float64
	HasThreshold  bool
	Meta          map[string]any
}

// Model strategies. Each names an independently trained artifact tuned for a
// different evaluation metric.
const (
	StrategyROCAUC = "roc_auc"
	StrategyPRAUC  = "pr_auc"
)
