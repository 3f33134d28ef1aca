package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/dannynguyen3011/draft-ztp/internal/domain/event"
	"github.com/dannynguyen3011/draft-ztp/internal/domain/valueobject"
	"github.com/dannynguyen3011/draft-ztp/pkg/events"
)

// Prediction sources.
const (
	// SourceML marks predictions produced by the scoring model.
	SourceML = "ml"

	// SourceFallback marks default-scored records for audit logs the mapper
	// could not convert into model features.
	SourceFallback = "fallback"
)

// FallbackScore is assigned to audit log records that could not be mapped
// into model features.
const FallbackScore = 0.3

// RiskPrediction is the aggregate root for a single scored request.
type RiskPrediction struct {
	events.EventCollector

	id            uuid.UUID
	logID         string
	input         PredictionInput
	score         float64
	level         valueobject.RiskLevel
	source        string
	degradedSlots []string
	predictedAt   time.Time
}

// NewMLPrediction creates a model-scored prediction and records its domain
// events. degradedSlots names feature columns that were encoded with a
// fallback code, if any.
func NewMLPrediction(input PredictionInput, score float64, degradedSlots []string) *RiskPrediction {
	p := &RiskPrediction{
		id:            uuid.New(),
		input:         input,
		score:         score,
		level:         valueobject.RiskLevelFromScore(score),
		source:        SourceML,
		degradedSlots: degradedSlots,
		predictedAt:   time.Now().UTC(),
	}

	p.Record(event.NewPredictionCompleted(event.PredictionCompletedPayload{
		PredictionID:  p.id,
		RiskScore:     p.score,
		RiskLevel:     p.level.String(),
		MLPredicted:   true,
		DegradedSlots: p.degradedSlots,
		PredictedAt:   p.predictedAt,
	}))

	if p.level.Equal(valueobject.RiskLevelHigh) {
		p.Record(event.NewHighRiskDetected(event.HighRiskDetectedPayload{
			PredictionID: p.id,
			RiskScore:    p.score,
			UserRole:     input.UserRole,
			Action:       input.Action,
			IPRegion:     input.IPRegion,
			DetectedAt:   p.predictedAt,
		}))
	}

	return p
}

// NewFallbackPrediction creates the default-scored record for an audit log
// entry that could not be mapped into model features.
func NewFallbackPrediction(logID string) *RiskPrediction {
	p := &RiskPrediction{
		id:          uuid.New(),
		logID:       logID,
		score:       FallbackScore,
		level:       valueobject.RiskLevelMedium,
		source:      SourceFallback,
		predictedAt: time.Now().UTC(),
	}

	p.Record(event.NewPredictionCompleted(event.PredictionCompletedPayload{
		PredictionID: p.id,
		RiskScore:    p.score,
		RiskLevel:    p.level.String(),
		MLPredicted:  false,
		PredictedAt:  p.predictedAt,
	}))

	return p
}

// Reconstruct rebuilds a RiskPrediction from persisted state. No domain
// events are recorded.
func Reconstruct(
	id uuid.UUID,
	logID string,
	input PredictionInput,
	score float64,
	level valueobject.RiskLevel,
	source string,
	degradedSlots []string,
	predictedAt time.Time,
) *RiskPrediction {
	return &RiskPrediction{
		id:            id,
		logID:         logID,
		input:         input,
		score:         score,
		level:         level,
		source:        source,
		degradedSlots: degradedSlots,
		predictedAt:   predictedAt,
	}
}

// WithLogID tags the prediction with the originating audit log identifier.
func (p *RiskPrediction) WithLogID(logID string) *RiskPrediction {
	p.logID = logID
	return p
}

// ID returns the prediction identifier.
func (p *RiskPrediction) ID() uuid.UUID { return p.id }

// LogID returns the originating audit log identifier, if any.
func (p *RiskPrediction) LogID() string { return p.logID }

// Input returns the feature inputs the prediction was scored against.
func (p *RiskPrediction) Input() PredictionInput { return p.input }

// Score returns the calibrated risk score in [0,1].
func (p *RiskPrediction) Score() float64 { return p.score }

// Level returns the discrete risk tier.
func (p *RiskPrediction) Level() valueobject.RiskLevel { return p.level }

// Source reports whether the score came from the model or the fallback path.
func (p *RiskPrediction) Source() string { return p.source }

// MLPredicted reports whether the scoring model produced this prediction.
func (p *RiskPrediction) MLPredicted() bool { return p.source == SourceML }

// DegradedSlots names feature columns encoded with a fallback code.
func (p *RiskPrediction) DegradedSlots() []string { return p.degradedSlots }

// PredictedAt returns the prediction timestamp.
func (p *RiskPrediction) PredictedAt() time.Time { return p.predictedAt }
