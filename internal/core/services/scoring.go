package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"purchase-intent-service/internal/core/domain"
	"purchase-intent-service/internal/core/ports/output"
)

// SessionPredictor is the slice of ModelAdapter the scoring service needs.
type SessionPredictor interface {
	PredictPurchaseProbability(ctx context.Context, f *domain.Frame, strategy string) (float64, error)
}

// Risk band boundaries. Fixed, not configurable.
const (
	riskBandHighMin   = 0.7
	riskBandMediumMin = 0.4
)

// Session status labels per risk band.
const (
	statusHigh   = "구매 가능성 높음"
	statusMedium = "구매 가능성 중간"
	statusLow    = "구매 가능성 낮음"
)

// ScoringService scores a single session: probability via the model adapter,
// then a risk band plus templated comparison and explanation texts built from
// the session's raw fields and the configured global baseline.
type ScoringService struct {
	predictor       SessionPredictor
	trainingData    ports.TrainingDataReader
	predictionLog   ports.PredictionLogRepository
	globalAvgProb   float64
	defaultStrategy string
}

// NewScoringService wires the scoring service. predictionLog may be nil, in
// which case scored sessions are not recorded.
func NewScoringService(
	predictor SessionPredictor,
	trainingData ports.TrainingDataReader,
	predictionLog ports.PredictionLogRepository,
	globalAvgProb float64,
	defaultStrategy string,
) *ScoringService {
	if defaultStrategy == "" {
		defaultStrategy = domain.StrategyROCAUC
	}
	return &ScoringService{
		predictor:       predictor,
		trainingData:    trainingData,
		predictionLog:   predictionLog,
		globalAvgProb:   globalAvgProb,
		defaultStrategy: defaultStrategy,
	}
}

// PredictSession scores one session frame. The frame must be single-row: a
// multi-row frame scores the first row only. Adapter and loader failures
// propagate unchanged.
func (s *ScoringService) PredictSession(ctx context.Context, f *domain.Frame, strategy string) (*domain.PredictionResult, error) {
	if strategy == "" {
		strategy = s.defaultStrategy
	}

	prob, err := s.predictor.PredictPurchaseProbability(ctx, f, strategy)
	if err != nil {
		return nil, err
	}

	band, label := riskBand(prob)
	result := &domain.PredictionResult{
		Probability: prob,
		RiskBand:    band,
		StatusLabel: label,
		CompareText: compareText(prob, s.globalAvgProb),
		Reasons:     buildReasons(f),
		AverageText: averageText(prob, s.globalAvgProb),
		Strategy:    strategy,
	}

	s.logPrediction(ctx, result)
	return result, nil
}

// TrainingData returns the processed training set for exploratory display.
func (s *ScoringService) TrainingData(ctx context.Context) (*domain.Frame, error) {
	return s.trainingData.Read(ctx)
}

func (s *ScoringService) logPrediction(ctx context.Context, r *domain.PredictionResult) {
	if s.predictionLog == nil {
		return
	}
	rec := &domain.PredictionRecord{
		ID:          uuid.New(),
		CreatedAt:   time.Now(),
		RequestID:   requestIDFrom(ctx),
		Strategy:    r.Strategy,
		Probability: r.Probability,
		RiskBand:    r.RiskBand,
	}
	// Audit logging must never fail a prediction.
	if err := s.predictionLog.Append(ctx, rec); err != nil {
		log.WithError(err).Warn("append prediction log failed")
	}
}

type requestIDKey struct{}

// WithRequestID stamps the request ID used in prediction log records.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func requestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

func riskBand(prob float64) (domain.RiskBand, string) {
	switch {
	case prob >= riskBandHighMin:
		return domain.RiskBandHigh, statusHigh
	case prob >= riskBandMediumMin:
		return domain.RiskBandMedium, statusMedium
	default:
		return domain.RiskBandLow, statusLow
	}
}

func compareText(prob, avgProb float64) string {
	if avgProb <= 0 {
		return "평균 값이 정의되어 있지 않아 비교가 어렵습니다."
	}
	diffRatio := (prob - avgProb) / avgProb * 100
	if diffRatio >= 0 {
		return fmt.Sprintf("이 세션은 평균보다 %.1f%% 더 높습니다.", diffRatio)
	}
	return fmt.Sprintf("이 세션은 평균보다 %.1f%% 더 낮습니다.", math.Abs(diffRatio))
}

func averageText(prob, avgProb float64) string {
	diff := prob - avgProb
	switch {
	case diff >= 0.1:
		return fmt.Sprintf("이 세션의 구매 확률은 전체 평균보다 약 %.1f%%p 높습니다.", diff*100)
	case diff <= -0.1:
		return fmt.Sprintf("이 세션의 구매 확률은 전체 평균보다 약 %.1f%%p 낮습니다.", math.Abs(diff)*100)
	default:
		return "이 세션의 구매 확률은 전체 평균과 비슷한 수준입니다."
	}
}

// buildReasons evaluates the static domain heuristics over the first row's
// raw fields. Each rule appends at most one sentence; absent fields are
// skipped. The output order is the fixed field order below.
func buildReasons(f *domain.Frame) []string {
	reasons := []string{}
	if f.NumRows() == 0 {
		return reasons
	}

	if v, ok := f.Float(0, "ProductRelated"); ok {
		if v >= 20 {
			reasons = append(reasons, "상품 페이지를 많이 조회하고 있어 관심도가 높습니다.")
		} else if v <= 3 {
			reasons = append(reasons, "상품 페이지 조회 수가 적어 아직 탐색 단계일 가능성이 있습니다.")
		}
	}

	if v, ok := f.Float(0, "PageValues"); ok {
		if v >= 50 {
			reasons = append(reasons, "이미 장바구니/결제 단계 등 높은 가치 페이지에 도달했습니다.")
		} else if v == 0 {
			reasons = append(reasons, "아직 구매 여정의 앞단에 있어 구체적인 구매 신호가 약합니다.")
		}
	}

	if v, ok := f.Float(0, "ExitRates"); ok {
		if v <= 0.2 {
			reasons = append(reasons, "세션 종료 비율이 낮아 이탈 위험이 비교적 적습니다.")
		} else if v >= 0.5 {
			reasons = append(reasons, "세션 종료 비율이 높아 이탈 가능성이 큽니다.")
		}
	}

	if v, ok := f.Value(0, "VisitorType"); ok {
		switch v {
		case "Returning_Visitor":
			reasons = append(reasons, "재방문 고객으로, 사이트 경험이 있어 구매 가능성이 더 높습니다.")
		case "New_Visitor":
			reasons = append(reasons, "신규 방문자로, 아직 사이트에 익숙하지 않아 구매까지 시간이 걸릴 수 있습니다.")
		}
	}

	if v, ok := f.Value(0, "Weekend"); ok {
		if weekend, ok := asBool(v); ok {
			if weekend {
				reasons = append(reasons, "주말 방문 세션으로, 여유 있는 쇼핑 가능성이 있습니다.")
			} else {
				reasons = append(reasons, "평일 방문 세션으로, 짧은 탐색 후 이탈할 수도 있습니다.")
			}
		}
	}

	return reasons
}

// asBool accepts booleans and numeric flags; string cells do not qualify.
func asBool(v any) (bool, bool) {
	switch x := v.(type) {
	case bool:
		return x, true
	case float64:
		return x != 0, true
	case int:
		return x != 0, true
	case int64:
		return x != 0, true
	default:
		return false, false
	}
}
