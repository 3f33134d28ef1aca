package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dannynguyen3011/draft-ztp/internal/domain/model"
	"github.com/dannynguyen3011/draft-ztp/internal/domain/service"
)

func newTestBuilder(t *testing.T) *service.VectorBuilder {
	t.Helper()
	return service.NewVectorBuilder(newTestRegistry(t))
}

func TestVectorBuilder_ColumnOrder(t *testing.T) {
	builder := newTestBuilder(t)

	res := builder.Build(model.PredictionInput{
		IPRegion:      "US",
		DeviceType:    "new",
		UserRole:      "guest",
		Action:        "logout",
		Hour:          23,
		SessionPeriod: 40,
	})

	require.Len(t, res.Vector, service.VectorSize)
	assert.Equal(t, []float64{1, 1, 1, 1, 23, 40}, res.Vector)
	assert.Empty(t, res.DegradedSlots)
}

func TestVectorBuilder_NumericFeaturesPassThrough(t *testing.T) {
	builder := newTestBuilder(t)

	res := builder.Build(model.PredictionInput{
		IPRegion:      "Vietnam",
		DeviceType:    "known",
		UserRole:      "employee",
		Action:        "login",
		Hour:          0,
		SessionPeriod: 15,
	})

	assert.Equal(t, float64(0), res.Vector[4])
	assert.Equal(t, float64(15), res.Vector[5])
}

func TestVectorBuilder_DegradedSlotsNamed(t *testing.T) {
	builder := newTestBuilder(t)

	res := builder.Build(model.PredictionInput{
		IPRegion:      "Atlantis",
		DeviceType:    "known",
		UserRole:      "alien",
		Action:        "login",
		Hour:          12,
		SessionPeriod: 15,
	})

	require.Len(t, res.Vector, service.VectorSize)
	assert.Equal(t, []string{"ip_region", "user_role"}, res.DegradedSlots)
	assert.Equal(t, float64(0), res.Vector[0], "unseen region takes the fallback code")
	assert.Equal(t, float64(0), res.Vector[2], "unseen role takes the fallback code")
}

func TestVectorBuilder_DeterministicAcrossCalls(t *testing.T) {
	builder := newTestBuilder(t)
	in := model.PredictionInput{
		IPRegion:      "Nigeria",
		DeviceType:    "known",
		UserRole:      "employee",
		Action:        "page_view_home",
		Hour:          5,
		SessionPeriod: 15,
	}

	first := builder.Build(in)
	second := builder.Build(in)

	assert.Equal(t, first, second)
}

func TestFeatureColumns_MatchVectorSize(t *testing.T) {
	assert.Len(t, service.FeatureColumns, service.VectorSize)
}
