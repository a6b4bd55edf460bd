package artifact

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"purchase-intent-service/internal/core/domain"
)

func frameOf(t *testing.T, cols []string, rows [][]any) *domain.Frame {
	t.Helper()
	f, err := domain.NewFrame(cols, rows)
	require.NoError(t, err)
	return f
}

func TestDecodePipeline_RejectsUnknownShape(t *testing.T) {
	cases := []string{
		`"just a string"`,
		`{"type": "random_forest", "coefficients": {"A": 1}}`,
		`{"type": "logistic_regression"}`,
		`{"type": "logistic_regression", "coefficients": {}}`,
	}
	for _, raw := range cases {
		_, ok := decodePipeline([]byte(raw))
		assert.False(t, ok, "input %s", raw)
	}
}

func TestLogisticPipeline_PredictProba(t *testing.T) {
	pipe, ok := decodePipeline([]byte(`{
		"type": "logistic_regression",
		"feature_names": ["A", "B"],
		"coefficients": {"A": 1.0, "B": -1.0},
		"intercept": 0.0
	}`))
	require.True(t, ok)

	f := frameOf(t, []string{"A", "B"}, [][]any{
		{0.0, 0.0},
		{2.0, 0.0},
		{0.0, 2.0},
	})

	proba, err := pipe.PredictProba(f)
	require.NoError(t, err)
	require.Len(t, proba, 3)

	assert.InDelta(t, 0.5, proba[0], 1e-9)
	assert.Greater(t, proba[1], 0.5)
	assert.Less(t, proba[2], 0.5)
	// symmetric inputs give symmetric probabilities
	assert.InDelta(t, proba[1], 1-proba[2], 1e-9)
}

func TestLogisticPipeline_MissingFeatureColumn(t *testing.T) {
	pipe, ok := decodePipeline([]byte(`{
		"type": "logistic_regression",
		"coefficients": {"A": 1.0, "B": 1.0}
	}`))
	require.True(t, ok)

	f := frameOf(t, []string{"A"}, [][]any{{1.0}})
	_, err := pipe.PredictProba(f)
	assert.ErrorIs(t, err, domain.ErrMissingFeatures)
}

func TestLogisticPipeline_CategoricalEncoding(t *testing.T) {
	pipe, ok := decodePipeline([]byte(`{
		"type": "logistic_regression",
		"feature_names": ["VisitorType"],
		"coefficients": {"VisitorType": 2.0},
		"intercept": 0.0,
		"encodings": {"VisitorType": {"Returning_Visitor": 1.0, "New_Visitor": 0.0}}
	}`))
	require.True(t, ok)

	f := frameOf(t, []string{"VisitorType"}, [][]any{
		{"Returning_Visitor"},
		{"New_Visitor"},
		{"Something_Else"},
	})

	proba, err := pipe.PredictProba(f)
	require.NoError(t, err)

	assert.Greater(t, proba[0], 0.5)
	assert.InDelta(t, 0.5, proba[1], 1e-9)
	// unknown categories encode to zero
	assert.InDelta(t, 0.5, proba[2], 1e-9)
}

func TestLogisticPipeline_Scaler(t *testing.T) {
	pipe, ok := decodePipeline([]byte(`{
		"type": "logistic_regression",
		"feature_names": ["A"],
		"coefficients": {"A": 1.0},
		"intercept": 0.0,
		"scaler": {"mean": {"A": 10.0}, "std": {"A": 2.0}}
	}`))
	require.True(t, ok)

	// value at the mean scales to zero: probability is exactly 0.5
	f := frameOf(t, []string{"A"}, [][]any{{10.0}, {12.0}})
	proba, err := pipe.PredictProba(f)
	require.NoError(t, err)

	assert.InDelta(t, 0.5, proba[0], 1e-9)
	assert.InDelta(t, sigmoid(1.0), proba[1], 1e-9)
}

func TestLogisticPipeline_BooleanFeature(t *testing.T) {
	pipe, ok := decodePipeline([]byte(`{
		"type": "logistic_regression",
		"feature_names": ["Weekend"],
		"coefficients": {"Weekend": 1.0},
		"intercept": 0.0
	}`))
	require.True(t, ok)

	f := frameOf(t, []string{"Weekend"}, [][]any{{true}, {false}})
	proba, err := pipe.PredictProba(f)
	require.NoError(t, err)

	assert.InDelta(t, sigmoid(1.0), proba[0], 1e-9)
	assert.InDelta(t, 0.5, proba[1], 1e-9)
}

func TestLogisticPipeline_FeatureNamesCopied(t *testing.T) {
	pipe, ok := decodePipeline([]byte(validPipelineJSON))
	require.True(t, ok)

	names := pipe.FeatureNames()
	names[0] = "mutated"
	assert.Equal(t, []string{"ProductRelated", "PageValues"}, pipe.FeatureNames())
}
