package artifact

import (
	"encoding/json"
	"math"

	"purchase-intent-service/internal/core/domain"
)

const pipelineTypeLogistic = "logistic_regression"

// pipelineSpec is the on-disk shape of a scoring pipeline.
type pipelineSpec struct {
	Type         string                        `json:"type"`
	FeatureNames []string                      `json:"feature_names"`
	Coefficients map[string]float64            `json:"coefficients"`
	Intercept    float64                       `json:"intercept"`
	Scaler       *scalerSpec                   `json:"scaler"`
	Encodings    map[string]map[string]float64 `json:"encodings"`
}

type scalerSpec struct {
	Mean map[string]float64 `json:"mean"`
	Std  map[string]float64 `json:"std"`
}

// LogisticPipeline scores a feature frame with a logistic regression fit:
// optional categorical encoding, optional standardization, then
// sigmoid(intercept + Σ w·x). Immutable; safe for concurrent use.
type LogisticPipeline struct {
	featureNames []string
	coefficients map[string]float64
	intercept    float64
	scaler       *scalerSpec
	encodings    map[string]map[string]float64
}

// decodePipeline attempts to decode raw JSON as a scoring pipeline. ok is
// false when the value is not a recognizable pipeline spec; this is the
// capability probe the artifact resolution walks key candidates with.
func decodePipeline(raw []byte) (*LogisticPipeline, bool) {
	var spec pipelineSpec
	if err := json.Unmarshal(raw, &spec); err != nil {
		return nil, false
	}
	if spec.Type != pipelineTypeLogistic || len(spec.Coefficients) == 0 {
		return nil, false
	}
	return &LogisticPipeline{
		featureNames: spec.FeatureNames,
		coefficients: spec.Coefficients,
		intercept:    spec.Intercept,
		scaler:       spec.Scaler,
		encodings:    spec.Encodings,
	}, true
}

// FeatureNames returns the training-time column list, or nil when the
// artifact was saved without schema metadata.
func (p *LogisticPipeline) FeatureNames() []string {
	if p.featureNames == nil {
		return nil
	}
	out := make([]string, len(p.featureNames))
	copy(out, p.featureNames)
	return out
}

// PredictProba computes the positive-class probability per row. Every
// coefficient column must be present in the frame; alignment upstream
// guarantees that whenever the pipeline carries feature names.
func (p *LogisticPipeline) PredictProba(f *domain.Frame) ([]float64, error) {
	for col := range p.coefficients {
		if !f.HasColumn(col) {
			return nil, domain.ErrMissingFeatures
		}
	}

	proba := make([]float64, f.NumRows())
	for i := 0; i < f.NumRows(); i++ {
		z := p.intercept
		for col, w := range p.coefficients {
			z += w * p.featureValue(f, i, col)
		}
		proba[i] = sigmoid(z)
	}
	return proba, nil
}

func (p *LogisticPipeline) featureValue(f *domain.Frame, i int, col string) float64 {
	var x float64
	v, ok := f.Value(i, col)
	if !ok {
		return 0
	}
	if enc, hasEnc := p.encodings[col]; hasEnc {
		if s, isStr := v.(string); isStr {
			x = enc[s] // unknown category encodes to 0
		} else {
			x, _ = domain.ToFloat(v)
		}
	} else {
		x, _ = domain.ToFloat(v)
	}
	if p.scaler != nil {
		if std, hasStd := p.scaler.Std[col]; hasStd && std != 0 {
			x = (x - p.scaler.Mean[col]) / std
		}
	}
	return x
}

func sigmoid(z float64) float64 {
	return 1.0 / (1.0 + math.Exp(-z))
}
