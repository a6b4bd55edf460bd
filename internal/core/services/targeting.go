package services

import (
	"context"
	"math"
	"sort"

	"purchase-intent-service/internal/core/domain"
)

// BatchPredictor is the slice of ModelAdapter the targeting service needs.
type BatchPredictor interface {
	PredictProba(ctx context.Context, f *domain.Frame, strategy string) ([]float64, error)
}

// TargetingService tags the top-k fraction of a batch as targeting
// candidates via a quantile cutoff over the predicted probabilities.
type TargetingService struct {
	predictor BatchPredictor
	strategy  string
}

func NewTargetingService(predictor BatchPredictor, strategy string) *TargetingService {
	if strategy == "" {
		strategy = domain.StrategyPRAUC
	}
	return &TargetingService{predictor: predictor, strategy: strategy}
}

// ScoreTopK scores every row and marks those at or above the (1-ratio)
// empirical quantile of the probability sample as positive. Rows tying with
// the cutoff are all included, so the selected fraction can exceed ratio when
// duplicate probabilities straddle it; that is expected, not a defect.
func (s *TargetingService) ScoreTopK(ctx context.Context, f *domain.Frame, ratio float64) (*domain.BatchResult, error) {
	if ratio <= 0 || ratio > 1 {
		return nil, domain.ErrInvalidTopKRatio
	}
	if f.NumRows() == 0 {
		return nil, domain.ErrEmptyFrame
	}

	proba, err := s.predictor.PredictProba(ctx, f, s.strategy)
	if err != nil {
		return nil, err
	}

	thr := quantile(proba, 1.0-ratio)

	probaCol := make([]any, len(proba))
	predCol := make([]any, len(proba))
	thrCol := make([]any, len(proba))
	ratioCol := make([]any, len(proba))
	selected := 0
	for i, p := range proba {
		probaCol[i] = p
		pred := 0
		if p >= thr {
			pred = 1
			selected++
		}
		predCol[i] = pred
		thrCol[i] = thr
		ratioCol[i] = ratio
	}

	out := f
	for _, col := range []struct {
		name   string
		values []any
	}{
		{domain.ColPurchaseProba, probaCol},
		{domain.ColPurchasePred, predCol},
		{domain.ColThresholdUsed, thrCol},
		{domain.ColTopKRatio, ratioCol},
	} {
		out, err = out.WithColumn(col.name, col.values)
		if err != nil {
			return nil, err
		}
	}

	return &domain.BatchResult{
		Frame:         out,
		ThresholdUsed: thr,
		TopKRatio:     ratio,
		Selected:      selected,
	}, nil
}

// quantile is the empirical q-quantile with linear interpolation between
// order statistics, over a non-empty sample.
func quantile(sample []float64, q float64) float64 {
	sorted := make([]float64, len(sample))
	copy(sorted, sample)
	sort.Float64s(sorted)

	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}

	h := q * float64(len(sorted)-1)
	lo := int(math.Floor(h))
	hi := int(math.Ceil(h))
	if lo == hi {
		return sorted[lo]
	}
	frac := h - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}
