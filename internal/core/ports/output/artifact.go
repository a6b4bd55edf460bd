package ports

import (
	"context"

	"purchase-intent-service/internal/core/domain"
)

// ArtifactLoader loads a scoring artifact from wherever it is stored.
// Implementations cache: the backing store is read at most once and repeated
// calls return the identical artifact.
type ArtifactLoader interface {
	Load(ctx context.Context) (*domain.Artifact, error)
}

// TrainingDataReader returns the processed training set, for exploratory
// display only.
type TrainingDataReader interface {
	Read(ctx context.Context) (*domain.Frame, error)
}
