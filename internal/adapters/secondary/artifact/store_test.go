package artifact

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"purchase-intent-service/internal/core/domain"
)

const validPipelineJSON = `{
	"type": "logistic_regression",
	"feature_names": ["ProductRelated", "PageValues"],
	"coefficients": {"ProductRelated": 0.05, "PageValues": 0.02},
	"intercept": -1.5
}`

func writeArtifact(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestStore_Load_PathMissing(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "nope.json"))
	_, err := store.Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrArtifactNotFound)
}

func TestStore_Load_NotAnObject(t *testing.T) {
	store := NewStore(writeArtifact(t, `[1, 2, 3]`))
	_, err := store.Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrInvalidArtifactFormat)
}

func TestStore_Load_NoResolvableScorer(t *testing.T) {
	store := NewStore(writeArtifact(t, `{"best_threshold": 0.4, "notes": "no model here"}`))
	_, err := store.Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrInvalidArtifactFormat)
}

func TestStore_Load_DocumentIsThePipeline(t *testing.T) {
	store := NewStore(writeArtifact(t, validPipelineJSON))
	art, err := store.Load(context.Background())
	require.NoError(t, err)

	assert.False(t, art.HasThreshold)
	assert.Equal(t, []string{"ProductRelated", "PageValues"}, art.Scorer.FeatureNames())
}

func TestStore_Load_PipelineUnderConventionalKey(t *testing.T) {
	store := NewStore(writeArtifact(t, `{
		"pipeline": `+validPipelineJSON+`,
		"best_threshold": 0.42,
		"target_col": "Revenue",
		"best_params": {"n_estimators": 300}
	}`))

	art, err := store.Load(context.Background())
	require.NoError(t, err)

	assert.True(t, art.HasThreshold)
	assert.Equal(t, 0.42, art.BestThreshold)
	assert.Equal(t, "Revenue", art.Meta["target_col"])
	assert.Contains(t, art.Meta, "best_params")
	assert.NotContains(t, art.Meta, "pipeline")
	assert.NotContains(t, art.Meta, "best_threshold")
}

func TestStore_Load_PriorityKeyWinsOverScan(t *testing.T) {
	// "aaa" sorts before "model" but the priority list is checked first
	store := NewStore(writeArtifact(t, `{
		"aaa": {
			"type": "logistic_regression",
			"coefficients": {"X": 1.0},
			"intercept": 5.0
		},
		"model": `+validPipelineJSON+`
	}`))

	art, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"ProductRelated", "PageValues"}, art.Scorer.FeatureNames())
	assert.Contains(t, art.Meta, "aaa")
}

func TestStore_Load_FallbackScanFindsScorer(t *testing.T) {
	store := NewStore(writeArtifact(t, `{
		"some_custom_name": `+validPipelineJSON+`,
		"notes": "stored under a non-standard key"
	}`))

	art, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, art.Scorer)
	assert.Equal(t, "stored under a non-standard key", art.Meta["notes"])
}

func TestStore_Load_ThresholdOutOfRange(t *testing.T) {
	store := NewStore(writeArtifact(t, `{
		"pipeline": `+validPipelineJSON+`,
		"best_threshold": 1.5
	}`))
	_, err := store.Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrInvalidThreshold)
}

func TestStore_Load_CachesArtifact(t *testing.T) {
	path := writeArtifact(t, validPipelineJSON)
	store := NewStore(path)

	first, err := store.Load(context.Background())
	require.NoError(t, err)

	// delete the file: a second load must come from the cache
	require.NoError(t, os.Remove(path))

	second, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Same(t, first, second)
}
