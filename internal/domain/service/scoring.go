package service

import (
	"context"
	"log/slog"
	"math"

	"github.com/dannynguyen3011/draft-ztp/internal/domain/port"
)

// DefaultScore is substituted when the model fails: a mid-band score so a
// broken model surfaces as medium risk rather than silently approving or
// alarming.
const DefaultScore = 0.5

// ScoreResult carries one scoring outcome. Degraded marks scores that came
// from the default rather than the model.
type ScoreResult struct {
	Score    float64
	Degraded bool
}

// ScoringEngine invokes the externally supplied model and normalizes its
// output. Inference must never crash the caller: every model failure is
// absorbed into the default score, logged, and counted.
type ScoringEngine struct {
	model    port.Model
	recorder DegradationRecorder
	logger   *slog.Logger
}

// NewScoringEngine creates a ScoringEngine over the injected model.
func NewScoringEngine(model port.Model, recorder DegradationRecorder, logger *slog.Logger) *ScoringEngine {
	return &ScoringEngine{
		model:    model,
		recorder: recorder,
		logger:   logger,
	}
}

// Score runs the model over the feature vector and clamps the result to
// [0,1]. A model error or a non-finite output degrades to DefaultScore.
func (e *ScoringEngine) Score(ctx context.Context, features []float64) ScoreResult {
	raw, err := e.model.Predict(ctx, features)
	if err != nil {
		e.logger.Error("model prediction failed, using default score",
			slog.String("error", err.Error()),
			slog.Float64("default_score", DefaultScore),
		)
		e.recorder.ScoringDegraded()
		return ScoreResult{Score: DefaultScore, Degraded: true}
	}

	if math.IsNaN(raw) || math.IsInf(raw, 0) {
		e.logger.Error("model produced a non-finite score, using default score",
			slog.Float64("default_score", DefaultScore),
		)
		e.recorder.ScoringDegraded()
		return ScoreResult{Score: DefaultScore, Degraded: true}
	}

	return ScoreResult{Score: clamp(raw)}
}

// ModelDescription reports the model's provenance for introspection.
func (e *ScoringEngine) ModelDescription() string {
	return e.model.Describe()
}

func clamp(score float64) float64 {
	return math.Max(0.0, math.Min(1.0, score))
}
