package port

import (
	"context"

	"github.com/google/uuid"

	"github.com/dannynguyen3011/draft-ztp/internal/domain/model"
	"github.com/dannynguyen3011/draft-ztp/pkg/events"
)

// Model is the externally supplied scoring model. It takes the fixed-order
// six-slot feature vector and returns one regression value. Implementations
// are loaded once at startup and must be safe for concurrent use.
type Model interface {
	// Predict scores a feature vector. The raw output may fall outside
	// [0,1]; callers clamp it.
	Predict(ctx context.Context, features []float64) (float64, error)

	// Describe reports where the model came from, for introspection
	// (e.g. "artifact" or "synthetic").
	Describe() string
}

// PredictionRepository is the persistence port for scored predictions.
type PredictionRepository interface {
	// Save persists a prediction.
	Save(ctx context.Context, prediction *model.RiskPrediction) error

	// FindByID retrieves a prediction by its identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*model.RiskPrediction, error)

	// FindRecent retrieves predictions ordered by recency.
	FindRecent(ctx context.Context, limit, offset int) ([]*model.RiskPrediction, error)
}

// EventPublisher is the port for publishing domain events.
type EventPublisher interface {
	Publish(ctx context.Context, evts ...events.DomainEvent) error
}
