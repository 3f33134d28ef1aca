package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dannynguyen3011/draft-ztp/internal/domain/model"
	"github.com/dannynguyen3011/draft-ztp/internal/domain/valueobject"
	pg "github.com/dannynguyen3011/draft-ztp/pkg/postgres"
)

// ErrNotFound is returned when no prediction matches the query.
var ErrNotFound = errors.New("prediction not found")

// PredictionRepository implements port.PredictionRepository using PostgreSQL.
type PredictionRepository struct {
	db pg.Querier
}

// NewPredictionRepository creates a new PostgreSQL-backed prediction
// repository.
func NewPredictionRepository(db pg.Querier) *PredictionRepository {
	return &PredictionRepository{db: db}
}

// Save persists a prediction. Re-saving the same id overwrites the scored
// fields, which keeps retried requests idempotent.
func (r *PredictionRepository) Save(ctx context.Context, prediction *model.RiskPrediction) error {
	query := `
		INSERT INTO risk_predictions (
			id, log_id,
			ip_region, device_type, user_role, action, hour, session_period,
			risk_score, risk_level, source, degraded_slots, predicted_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (id) DO UPDATE SET
			risk_score = EXCLUDED.risk_score,
			risk_level = EXCLUDED.risk_level,
			source = EXCLUDED.source,
			degraded_slots = EXCLUDED.degraded_slots,
			predicted_at = EXCLUDED.predicted_at
	`

	in := prediction.Input()
	_, err := r.db.Exec(ctx, query,
		prediction.ID(),
		nullableString(prediction.LogID()),
		in.IPRegion,
		in.DeviceType,
		in.UserRole,
		in.Action,
		in.Hour,
		in.SessionPeriod,
		prediction.Score(),
		prediction.Level().String(),
		prediction.Source(),
		prediction.DegradedSlots(),
		prediction.PredictedAt(),
	)
	if err != nil {
		return fmt.Errorf("save prediction: %w", err)
	}
	return nil
}

// FindByID retrieves a prediction by its identifier.
func (r *PredictionRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.RiskPrediction, error) {
	query := `
		SELECT id, log_id,
			ip_region, device_type, user_role, action, hour, session_period,
			risk_score, risk_level, source, degraded_slots, predicted_at
		FROM risk_predictions
		WHERE id = $1
	`

	return scanPrediction(r.db.QueryRow(ctx, query, id))
}

// FindRecent retrieves predictions ordered by recency.
func (r *PredictionRepository) FindRecent(ctx context.Context, limit, offset int) ([]*model.RiskPrediction, error) {
	query := `
		SELECT id, log_id,
			ip_region, device_type, user_role, action, hour, session_period,
			risk_score, risk_level, source, degraded_slots, predicted_at
		FROM risk_predictions
		ORDER BY predicted_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("query recent predictions: %w", err)
	}
	defer rows.Close()

	var predictions []*model.RiskPrediction
	for rows.Next() {
		prediction, err := scanPrediction(rows)
		if err != nil {
			return nil, err
		}
		predictions = append(predictions, prediction)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate predictions: %w", err)
	}

	return predictions, nil
}

func scanPrediction(row pgx.Row) (*model.RiskPrediction, error) {
	var (
		id            uuid.UUID
		logID         *string
		ipRegion      string
		deviceType    string
		userRole      string
		action        string
		hour          int
		sessionPeriod int
		riskScore     float64
		riskLevelStr  string
		source        string
		degradedSlots []string
		predictedAt   time.Time
	)

	err := row.Scan(
		&id, &logID,
		&ipRegion, &deviceType, &userRole, &action, &hour, &sessionPeriod,
		&riskScore, &riskLevelStr, &source, &degradedSlots, &predictedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan prediction: %w", err)
	}

	riskLevel, err := valueobject.RiskLevelFromString(riskLevelStr)
	if err != nil {
		return nil, fmt.Errorf("parse risk level: %w", err)
	}

	var logIDVal string
	if logID != nil {
		logIDVal = *logID
	}

	return model.Reconstruct(
		id,
		logIDVal,
		model.PredictionInput{
			IPRegion:      ipRegion,
			DeviceType:    deviceType,
			UserRole:      userRole,
			Action:        action,
			Hour:          hour,
			SessionPeriod: sessionPeriod,
		},
		riskScore,
		riskLevel,
		source,
		degradedSlots,
		predictedAt,
	), nil
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
