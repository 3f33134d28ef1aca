package usecase_test

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dannynguyen3011/draft-ztp/internal/application/usecase"
	"github.com/dannynguyen3011/draft-ztp/internal/domain/service"
)

func TestServiceStatus_Execute(t *testing.T) {
	registry, err := service.NewEncoderRegistry(map[string][]string{
		"ip_region": {"Nigeria", "US", "Vietnam"},
		"action":    {"login", "logout"},
	}, service.NopRecorder{}, slog.Default())
	require.NoError(t, err)

	scorer := service.NewScoringEngine(fixedModel{score: 0.5}, service.NopRecorder{}, slog.Default())

	uc := usecase.NewServiceStatus(registry, scorer)
	status := uc.Execute()

	assert.Equal(t, "ok", status.Status)
	assert.True(t, status.ModelLoaded)
	assert.Equal(t, "fixed", status.ModelSource)
	assert.True(t, status.EncodersLoaded)
	assert.Equal(t, []string{"action", "ip_region"}, status.AvailableEncoders)
}
