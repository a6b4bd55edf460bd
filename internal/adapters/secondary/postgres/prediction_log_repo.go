package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"purchase-intent-service/internal/core/domain"
	"purchase-intent-service/internal/core/ports/output"
)

type predictionLogRepo struct {
	pool *pgxpool.Pool
}

func NewPredictionLogRepository(pool *pgxpool.Pool) ports.PredictionLogRepository {
	return &predictionLogRepo{pool: pool}
}

func (r *predictionLogRepo) Append(ctx context.Context, rec *domain.PredictionRecord) error {
	query := `
		INSERT INTO purchase_prediction_log
			(id, created_at, request_id, strategy, probability, risk_band)
		VALUES ($1,$2,$3,$4,$5,$6)
	`
	_, err := r.pool.Exec(ctx, query,
		rec.ID, rec.CreatedAt, rec.RequestID,
		rec.Strategy, rec.Probability, string(rec.RiskBand),
	)
	if err != nil {
		return fmt.Errorf("append prediction log: %w", err)
	}
	return nil
}
