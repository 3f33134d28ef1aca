package event

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/dannynguyen3011/draft-ztp/pkg/events"
)

const (
	// TypePredictionCompleted is emitted for every prediction the service produces.
	TypePredictionCompleted = "risk.prediction.completed"

	// TypeHighRiskDetected is emitted when a prediction lands in the high tier.
	TypeHighRiskDetected = "risk.high_risk.detected"

	// AggregateTypePrediction identifies the risk prediction aggregate.
	AggregateTypePrediction = "risk_prediction"
)

// PredictionCompletedPayload is the wire payload of TypePredictionCompleted.
type PredictionCompletedPayload struct {
	PredictionID  uuid.UUID `json:"prediction_id"`
	RiskScore     float64   `json:"risk_score"`
	RiskLevel     string    `json:"risk_level"`
	MLPredicted   bool      `json:"ml_predicted"`
	DegradedSlots []string  `json:"degraded_slots,omitempty"`
	PredictedAt   time.Time `json:"predicted_at"`
}

// NewPredictionCompleted builds the completion event for a prediction.
func NewPredictionCompleted(p PredictionCompletedPayload) events.DomainEvent {
	payload, _ := json.Marshal(p)
	return events.NewBaseEvent(TypePredictionCompleted, p.PredictionID, AggregateTypePrediction, payload)
}

// HighRiskDetectedPayload is the wire payload of TypeHighRiskDetected.
type HighRiskDetectedPayload struct {
	PredictionID uuid.UUID `json:"prediction_id"`
	RiskScore    float64   `json:"risk_score"`
	UserRole     string    `json:"user_role"`
	Action       string    `json:"action"`
	IPRegion     string    `json:"ip_region"`
	DetectedAt   time.Time `json:"detected_at"`
}

// NewHighRiskDetected builds the alert event for a high-tier prediction.
func NewHighRiskDetected(p HighRiskDetectedPayload) events.DomainEvent {
	payload, _ := json.Marshal(p)
	return events.NewBaseEvent(TypeHighRiskDetected, p.PredictionID, AggregateTypePrediction, payload)
}
