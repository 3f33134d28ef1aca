package usecase_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dannynguyen3011/draft-ztp/internal/application/usecase"
	"github.com/dannynguyen3011/draft-ztp/internal/domain/model"
	"github.com/dannynguyen3011/draft-ztp/internal/domain/valueobject"
)

func storedPrediction(id uuid.UUID) *model.RiskPrediction {
	return model.Reconstruct(
		id,
		"log-7",
		model.PredictionInput{
			IPRegion:      "US",
			DeviceType:    "known",
			UserRole:      "employee",
			Action:        "login",
			Hour:          9,
			SessionPeriod: 15,
		},
		0.72,
		valueobject.RiskLevelHigh,
		model.SourceML,
		nil,
		time.Now().UTC(),
	)
}

func TestGetPrediction_ByID(t *testing.T) {
	t.Run("returns the stored prediction", func(t *testing.T) {
		id := uuid.New()
		repo := &mockPredictionRepository{
			findByIDFunc: func(_ context.Context, got uuid.UUID) (*model.RiskPrediction, error) {
				assert.Equal(t, id, got)
				return storedPrediction(id), nil
			},
		}

		uc := usecase.NewGetPrediction(repo)
		resp, err := uc.ByID(context.Background(), id)

		require.NoError(t, err)
		assert.Equal(t, id, resp.ID)
		assert.InDelta(t, 0.72, resp.RiskScore, 1e-9)
		assert.Equal(t, "high", resp.RiskLevel)
	})

	t.Run("wraps repository errors", func(t *testing.T) {
		repo := &mockPredictionRepository{
			findByIDFunc: func(context.Context, uuid.UUID) (*model.RiskPrediction, error) {
				return nil, fmt.Errorf("prediction not found")
			},
		}

		uc := usecase.NewGetPrediction(repo)
		_, err := uc.ByID(context.Background(), uuid.New())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "find prediction")
	})
}

func TestGetPrediction_Recent(t *testing.T) {
	t.Run("passes limit and offset through", func(t *testing.T) {
		var gotLimit, gotOffset int
		repo := &mockPredictionRepository{
			findRecent: func(_ context.Context, limit, offset int) ([]*model.RiskPrediction, error) {
				gotLimit, gotOffset = limit, offset
				return []*model.RiskPrediction{storedPrediction(uuid.New())}, nil
			},
		}

		uc := usecase.NewGetPrediction(repo)
		resp, err := uc.Recent(context.Background(), 10, 20)

		require.NoError(t, err)
		assert.Equal(t, 10, gotLimit)
		assert.Equal(t, 20, gotOffset)
		assert.Len(t, resp, 1)
	})

	t.Run("normalizes out-of-range paging", func(t *testing.T) {
		var gotLimit, gotOffset int
		repo := &mockPredictionRepository{
			findRecent: func(_ context.Context, limit, offset int) ([]*model.RiskPrediction, error) {
				gotLimit, gotOffset = limit, offset
				return nil, nil
			},
		}

		uc := usecase.NewGetPrediction(repo)
		_, err := uc.Recent(context.Background(), -1, -5)

		require.NoError(t, err)
		assert.Equal(t, 50, gotLimit)
		assert.Equal(t, 0, gotOffset)
	})
}
