package ports

import (
	"context"

	"purchase-intent-service/internal/core/domain"
)

// PredictionLogRepository appends scored sessions to the audit log.
type PredictionLogRepository interface {
	Append(ctx context.Context, rec *domain.PredictionRecord) error
}
