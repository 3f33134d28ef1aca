package usecase

import (
	"context"
	"log/slog"

	"github.com/dannynguyen3011/draft-ztp/internal/application/dto"
)

// PredictBatch is the use case for scoring a list of feature sets in one
// call. Elements are scored independently: one invalid entry does not abort
// the batch, and the response preserves request order.
type PredictBatch struct {
	predict *Predict
	logger  *slog.Logger
}

// NewPredictBatch creates a new PredictBatch use case.
func NewPredictBatch(predict *Predict, logger *slog.Logger) *PredictBatch {
	return &PredictBatch{predict: predict, logger: logger}
}

// Execute scores every element of the batch. Invalid elements yield a
// failure entry in place rather than an error.
func (uc *PredictBatch) Execute(ctx context.Context, reqs []dto.PredictRequest) (dto.BatchPredictionResponse, error) {
	predictions := make([]dto.PredictionResponse, 0, len(reqs))

	for i, req := range reqs {
		resp, err := uc.predict.Execute(ctx, req)
		if err != nil {
			uc.logger.Warn("batch element failed validation",
				slog.Int("index", i),
				slog.String("error", err.Error()),
			)
			predictions = append(predictions, failedElement(req, err))
			continue
		}
		predictions = append(predictions, resp)
	}

	return dto.BatchPredictionResponse{
		Predictions: predictions,
		Count:       len(predictions),
	}, nil
}

// failedElement builds the order-preserving placeholder for a batch element
// that could not be scored.
func failedElement(req dto.PredictRequest, err error) dto.PredictionResponse {
	return dto.PredictionResponse{
		Input:   req.Input(),
		Success: false,
		Message: err.Error(),
	}
}
