package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dannynguyen3011/draft-ztp/internal/application/dto"
	"github.com/dannynguyen3011/draft-ztp/internal/domain/model"
	"github.com/dannynguyen3011/draft-ztp/internal/domain/port"
	"github.com/dannynguyen3011/draft-ztp/internal/domain/service"
)

// Predict is the use case for scoring one set of explicit features.
type Predict struct {
	repo      port.PredictionRepository
	publisher port.EventPublisher
	builder   *service.VectorBuilder
	scorer    *service.ScoringEngine
	logger    *slog.Logger
}

// NewPredict creates a new Predict use case.
func NewPredict(
	repo port.PredictionRepository,
	publisher port.EventPublisher,
	builder *service.VectorBuilder,
	scorer *service.ScoringEngine,
	logger *slog.Logger,
) *Predict {
	return &Predict{
		repo:      repo,
		publisher: publisher,
		builder:   builder,
		scorer:    scorer,
		logger:    logger,
	}
}

// Execute validates the request, encodes it, scores it, and returns the
// prediction. Persistence and event publishing failures are logged but do
// not fail the request: the caller already has a valid score.
func (uc *Predict) Execute(ctx context.Context, req dto.PredictRequest) (dto.PredictionResponse, error) {
	input := req.Input()
	if err := input.Validate(); err != nil {
		return dto.PredictionResponse{}, fmt.Errorf("validate prediction request: %w", err)
	}

	built := uc.builder.Build(input)
	scored := uc.scorer.Score(ctx, built.Vector)

	prediction := model.NewMLPrediction(input, scored.Score, built.DegradedSlots)

	uc.store(ctx, prediction)

	return dto.FromModel(prediction), nil
}

// store persists the prediction and publishes its events, logging failures
// instead of propagating them.
func (uc *Predict) store(ctx context.Context, prediction *model.RiskPrediction) {
	if err := uc.repo.Save(ctx, prediction); err != nil {
		uc.logger.Error("failed to save prediction",
			slog.String("prediction_id", prediction.ID().String()),
			slog.String("error", err.Error()),
		)
	}

	evts := prediction.Events()
	if len(evts) == 0 {
		return
	}
	if err := uc.publisher.Publish(ctx, evts...); err != nil {
		uc.logger.Error("failed to publish prediction events",
			slog.String("prediction_id", prediction.ID().String()),
			slog.String("error", err.Error()),
		)
	}
	prediction.ClearEvents()
}
