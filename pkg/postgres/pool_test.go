package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPool_InvalidDSN(t *testing.T) {
	pool, err := NewPool(context.Background(), "not-a-valid-dsn://%%")

	assert.Nil(t, pool)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestRunMigrations_InvalidSource(t *testing.T) {
	err := RunMigrations("postgres://localhost:5432/risk?sslmode=disable", "not-a-source")

	assert.Error(t, err)
}
