package services

import (
	"context"

	"purchase-intent-service/internal/core/domain"
	"purchase-intent-service/internal/core/ports/output"
)

// ModelAdapter fronts the loaded scoring pipelines, one per named strategy.
// It reconciles every input frame to the pipeline's recorded schema before
// prediction. Purely functional given loaded artifacts; the only side effect
// is the lazy first load per strategy inside the loader.
type ModelAdapter struct {
	loaders map[string]ports.ArtifactLoader
}

func NewModelAdapter(loaders map[string]ports.ArtifactLoader) *ModelAdapter {
	return &ModelAdapter{loaders: loaders}
}

// Strategies returns the configured strategy names, unordered.
func (a *ModelAdapter) Strategies() []string {
	out := make([]string, 0, len(a.loaders))
	for name := range a.loaders {
		out = append(out, name)
	}
	return out
}

func (a *ModelAdapter) artifact(ctx context.Context, strategy string) (*domain.Artifact, error) {
	loader, ok := a.loaders[strategy]
	if !ok {
		return nil, domain.ErrUnknownStrategy
	}
	return loader.Load(ctx)
}

// PredictProba returns the positive-class probability for every row of the
// frame, after aligning the frame to the scorer's recorded feature set. A
// scorer without schema metadata receives the frame unmodified; that is a
// deliberate fallback, not an error.
func (a *ModelAdapter) PredictProba(ctx context.Context, f *domain.Frame, strategy string) ([]float64, error) {
	art, err := a.artifact(ctx, strategy)
	if err != nil {
		return nil, err
	}
	return art.Scorer.PredictProba(alignFeatures(f, art.Scorer))
}

// PredictPurchaseProbability returns the first row's purchase probability.
// Multi-row frames score the first row only.
func (a *ModelAdapter) PredictPurchaseProbability(ctx context.Context, f *domain.Frame, strategy string) (float64, error) {
	if f.NumRows() == 0 {
		return 0, domain.ErrEmptyFrame
	}
	proba, err := a.PredictProba(ctx, f, strategy)
	if err != nil {
		return 0, err
	}
	return proba[0], nil
}

// PredictLabel thresholds the purchase probability into 0/1 labels. The
// caller's threshold wins; otherwise the artifact's tuned threshold is used.
func (a *ModelAdapter) PredictLabel(ctx context.Context, f *domain.Frame, strategy string, threshold *float64) ([]int, error) {
	art, err := a.artifact(ctx, strategy)
	if err != nil {
		return nil, err
	}

	thr := 0.0
	switch {
	case threshold != nil:
		thr = *threshold
	case art.HasThreshold:
		thr = art.BestThreshold
	default:
		return nil, domain.ErrNoThreshold
	}

	proba, err := art.Scorer.PredictProba(alignFeatures(f, art.Scorer))
	if err != nil {
		return nil, err
	}

	labels := make([]int, len(proba))
	for i, p := range proba {
		if p >= thr {
			labels[i] = 1
		}
	}
	return labels, nil
}

// Threshold returns the tuned decision threshold stored in the strategy's
// artifact.
func (a *ModelAdapter) Threshold(ctx context.Context, strategy string) (float64, error) {
	art, err := a.artifact(ctx, strategy)
	if err != nil {
		return 0, err
	}
	if !art.HasThreshold {
		return 0, domain.ErrNoThreshold
	}
	return art.BestThreshold, nil
}

// alignFeatures reconciles the frame to the scorer's recorded columns:
// missing columns zero-filled, extras dropped, order normalized. Prediction
// on an unreconciled schema is undefined in the scorer, so this runs before
// every prediction.
func alignFeatures(f *domain.Frame, s domain.Scorer) *domain.Frame {
	names := s.FeatureNames()
	if names == nil {
		return f
	}
	return f.Reindex(names)
}
