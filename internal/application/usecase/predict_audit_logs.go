package usecase

import (
	"context"
	"log/slog"

	"github.com/dannynguyen3011/draft-ztp/internal/application/dto"
	"github.com/dannynguyen3011/draft-ztp/internal/domain/model"
	"github.com/dannynguyen3011/draft-ztp/internal/domain/port"
	"github.com/dannynguyen3011/draft-ztp/internal/domain/service"
)

// PredictAuditLogs is the use case for scoring a batch of raw audit log
// records. Records the mapper can convert go through the normal scoring
// path; unmappable records get the fixed fallback score so every record
// still comes back with a risk figure.
type PredictAuditLogs struct {
	repo      port.PredictionRepository
	publisher port.EventPublisher
	mapper    *service.AuditLogMapper
	builder   *service.VectorBuilder
	scorer    *service.ScoringEngine
	recorder  service.DegradationRecorder
	logger    *slog.Logger
}

// NewPredictAuditLogs creates a new PredictAuditLogs use case.
func NewPredictAuditLogs(
	repo port.PredictionRepository,
	publisher port.EventPublisher,
	mapper *service.AuditLogMapper,
	builder *service.VectorBuilder,
	scorer *service.ScoringEngine,
	recorder service.DegradationRecorder,
	logger *slog.Logger,
) *PredictAuditLogs {
	return &PredictAuditLogs{
		repo:      repo,
		publisher: publisher,
		mapper:    mapper,
		builder:   builder,
		scorer:    scorer,
		recorder:  recorder,
		logger:    logger,
	}
}

// Execute scores every audit log record, preserving request order, and
// reports how many went through the model versus the fallback.
func (uc *PredictAuditLogs) Execute(ctx context.Context, records []model.AuditLogRecord) (dto.AuditLogsBatchResponse, error) {
	predictions := make([]dto.AuditLogPredictionResponse, 0, len(records))
	mlCount := 0

	for _, rec := range records {
		prediction := uc.score(ctx, rec)
		if prediction.MLPredicted() {
			mlCount++
		}
		predictions = append(predictions, dto.AuditLogFromModel(prediction))
	}

	return dto.AuditLogsBatchResponse{
		Predictions:      predictions,
		TotalProcessed:   len(predictions),
		MLPredictedCount: mlCount,
		FallbackCount:    len(predictions) - mlCount,
	}, nil
}

func (uc *PredictAuditLogs) score(ctx context.Context, rec model.AuditLogRecord) *model.RiskPrediction {
	logID := rec.LogID()

	input, ok := uc.mapper.Map(rec)
	if !ok {
		uc.logger.Warn("audit log record unmappable, using fallback score",
			slog.String("log_id", logID),
			slog.Float64("fallback_score", model.FallbackScore),
		)
		uc.recorder.AuditLogFallback()
		prediction := model.NewFallbackPrediction(logID)
		uc.store(ctx, prediction)
		return prediction
	}

	built := uc.builder.Build(input)
	scored := uc.scorer.Score(ctx, built.Vector)

	prediction := model.NewMLPrediction(input, scored.Score, built.DegradedSlots).WithLogID(logID)
	uc.store(ctx, prediction)
	return prediction
}

func (uc *PredictAuditLogs) store(ctx context.Context, prediction *model.RiskPrediction) {
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
