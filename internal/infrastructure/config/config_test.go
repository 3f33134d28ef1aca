package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dannynguyen3011/draft-ztp/internal/infrastructure/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := config.Load()

	assert.Equal(t, ":8095", cfg.GRPCAddress())
	assert.Equal(t, ":9095", cfg.HTTPAddress())
	assert.Equal(t, "risk.predictions", cfg.EventTopic)
	assert.Equal(t, "artifacts/vocabularies.json", cfg.VocabularyPath)
	assert.Equal(t, 15*time.Minute, cfg.JWTExpiration)
	assert.False(t, cfg.TLSEnabled())
	assert.False(t, cfg.AuthEnabled())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("GRPC_PORT", "7000")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_EXPIRATION", "1h")
	t.Setenv("ENABLE_TRACING", "true")
	t.Setenv("TLS_CERT_FILE", "/etc/certs/server.crt")
	t.Setenv("TLS_KEY_FILE", "/etc/certs/server.key")

	cfg := config.Load()

	assert.Equal(t, ":7000", cfg.GRPCAddress())
	assert.True(t, cfg.AuthEnabled())
	assert.Equal(t, time.Hour, cfg.JWTExpiration)
	assert.True(t, cfg.EnableTracing)
	assert.True(t, cfg.TLSEnabled())
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("JWT_EXPIRATION", "soon")
	t.Setenv("ENABLE_TRACING", "maybe")

	cfg := config.Load()

	assert.Equal(t, 15*time.Minute, cfg.JWTExpiration)
	assert.False(t, cfg.EnableTracing)
}
