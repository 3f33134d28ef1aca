package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dannynguyen3011/draft-ztp/internal/application/dto"
	"github.com/dannynguyen3011/draft-ztp/internal/domain/port"
)

// GetPrediction is the use case for retrieving stored predictions, serving
// the risk dashboard's query surface.
type GetPrediction struct {
	repo port.PredictionRepository
}

// NewGetPrediction creates a new GetPrediction use case.
func NewGetPrediction(repo port.PredictionRepository) *GetPrediction {
	return &GetPrediction{repo: repo}
}

// ByID retrieves a single stored prediction.
func (uc *GetPrediction) ByID(ctx context.Context, id uuid.UUID) (dto.PredictionResponse, error) {
	prediction, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return dto.PredictionResponse{}, fmt.Errorf("find prediction %s: %w", id, err)
	}
	return dto.FromModel(prediction), nil
}

// Recent retrieves stored predictions ordered by recency.
func (uc *GetPrediction) Recent(ctx context.Context, limit, offset int) ([]dto.PredictionResponse, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	predictions, err := uc.repo.FindRecent(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("find recent predictions: %w", err)
	}

	out := make([]dto.PredictionResponse, 0, len(predictions))
	for _, p := range predictions {
		out = append(out, dto.FromModel(p))
	}
	return out, nil
}
