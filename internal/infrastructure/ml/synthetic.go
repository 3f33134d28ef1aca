package ml

import (
	"context"
	"log/slog"
	"math"
)

// SyntheticModel stands in when no trained model artifact is available, so
// the service stays operable in degraded mode. Scores are a deterministic
// function of the feature vector, weighted toward the features the trained
// model cares about most. In production a real artifact replaces this.
type SyntheticModel struct {
	logger *slog.Logger
}

// NewSyntheticModel creates the stand-in model.
func NewSyntheticModel(logger *slog.Logger) *SyntheticModel {
	return &SyntheticModel{logger: logger}
}

// Predict derives a stable pseudo-score from the feature vector. The same
// vector always scores the same, which keeps the stand-in testable and its
// output explainable.
func (m *SyntheticModel) Predict(_ context.Context, features []float64) (float64, error) {
	var acc float64
	for i, f := range features {
		acc += f * float64(i+1) * 0.07
	}

	// Squash into (0,1) so downstream clamping is a no-op for the stand-in.
	score := 1.0 / (1.0 + math.Exp(-acc/10.0+1.5))

	m.logger.Debug("synthetic model scored request",
		slog.Float64("score", score),
	)
	return score, nil
}

// Describe reports the model's provenance.
func (m *SyntheticModel) Describe() string { return SourceSynthetic }
