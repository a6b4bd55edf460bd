package domain

import "errors"

// Not found errors
var (
	ErrArtifactNotFound     = errors.New("model artifact not found")
	ErrTrainingDataNotFound = errors.New("training data not found")
)

// Artifact format errors
var (
	ErrInvalidArtifactFormat = errors.New("invalid artifact format: expected a JSON object containing a scoring pipeline")
	ErrInvalidThreshold      = errors.New("artifact best_threshold must be in [0,1]")
)

// Validation errors
var (
	ErrUnknownStrategy  = errors.New("unknown model strategy")
	ErrEmptyFrame       = errors.New("feature frame has no rows")
	ErrFrameShape       = errors.New("frame rows and columns disagree")
	ErrMissingFeatures  = errors.New("input is missing features the scorer requires")
	ErrNoThreshold      = errors.New("no decision threshold: none supplied and artifact carries none")
	ErrInvalidTopKRatio = errors.New("top_k_ratio must be in (0,1]")
)
