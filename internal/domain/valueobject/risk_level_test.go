package valueobject_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dannynguyen3011/draft-ztp/internal/domain/valueobject"
)

func TestRiskLevelFromScore_Boundaries(t *testing.T) {
	tests := []struct {
		score    float64
		expected valueobject.RiskLevel
	}{
		{0.0, valueobject.RiskLevelLow},
		{0.39, valueobject.RiskLevelLow},
		{0.4, valueobject.RiskLevelMedium},
		{0.5, valueobject.RiskLevelMedium},
		{0.69, valueobject.RiskLevelMedium},
		{0.7, valueobject.RiskLevelHigh},
		{1.0, valueobject.RiskLevelHigh},
	}

	for _, tt := range tests {
		level := valueobject.RiskLevelFromScore(tt.score)
		assert.True(t, level.Equal(tt.expected),
			"score %.2f: got %s, want %s", tt.score, level, tt.expected)
	}
}

func TestRiskLevelFromString(t *testing.T) {
	for _, s := range []string{"low", "medium", "high"} {
		level, err := valueobject.RiskLevelFromString(s)
		require.NoError(t, err)
		assert.Equal(t, s, level.String())
	}

	_, err := valueobject.RiskLevelFromString("critical")
	assert.Error(t, err)

	_, err = valueobject.RiskLevelFromString("")
	assert.Error(t, err)
}

func TestRiskLevel_IsZero(t *testing.T) {
	var unset valueobject.RiskLevel

	assert.True(t, unset.IsZero())
	assert.False(t, valueobject.RiskLevelLow.IsZero())
}
