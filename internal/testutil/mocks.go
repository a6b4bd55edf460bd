package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"

	"purchase-intent-service/internal/core/domain"
)

// MockArtifactLoader is a mock of ports.ArtifactLoader.
type MockArtifactLoader struct {
	mock.Mock
}

func (m *MockArtifactLoader) Load(ctx context.Context) (*domain.Artifact, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Artifact), args.Error(1)
}

// MockPredictor is a mock of the services predictor interfaces.
type MockPredictor struct {
	mock.Mock
}

func (m *MockPredictor) PredictProba(ctx context.Context, f *domain.Frame, strategy string) ([]float64, error) {
	args := m.Called(ctx, f, strategy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]float64), args.Error(1)
}

func (m *MockPredictor) PredictPurchaseProbability(ctx context.Context, f *domain.Frame, strategy string) (float64, error) {
	args := m.Called(ctx, f, strategy)
	return args.Get(0).(float64), args.Error(1)
}

// MockTrainingDataReader is a mock of ports.TrainingDataReader.
type MockTrainingDataReader struct {
	mock.Mock
}

func (m *MockTrainingDataReader) Read(ctx context.Context) (*domain.Frame, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Frame), args.Error(1)
}

// MockPredictionLog is a mock of ports.PredictionLogRepository.
type MockPredictionLog struct {
	mock.Mock
}

func (m *MockPredictionLog) Append(ctx context.Context, rec *domain.PredictionRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

// StubScorer is a fixed-output scorer for adapter tests.
type StubScorer struct {
	Names []string
	Proba []float64

	// LastFrame records the frame the scorer actually received, so tests
	// can assert on alignment.
	LastFrame *domain.Frame
}

func (s *StubScorer) FeatureNames() []string { return s.Names }

func (s *StubScorer) PredictProba(f *domain.Frame) ([]float64, error) {
	s.LastFrame = f
	if len(s.Proba) >= f.NumRows() {
		return s.Proba[:f.NumRows()], nil
	}
	return s.Proba, nil
}
