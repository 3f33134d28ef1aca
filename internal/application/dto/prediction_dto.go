package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/dannynguyen3011/draft-ztp/internal/domain/model"
)

// PredictRequest is the input DTO for a single prediction.
type PredictRequest struct {
	IPRegion      string `json:"ip_region"`
	DeviceType    string `json:"device_type"`
	UserRole      string `json:"user_role"`
	Action        string `json:"action"`
	Hour          int    `json:"hour"`
	SessionPeriod int    `json:"sessionPeriod"`
}

// Input converts the request into the domain feature struct.
func (r PredictRequest) Input() model.PredictionInput {
	return model.PredictionInput{
		IPRegion:      r.IPRegion,
		DeviceType:    r.DeviceType,
		UserRole:      r.UserRole,
		Action:        r.Action,
		Hour:          r.Hour,
		SessionPeriod: r.SessionPeriod,
	}
}

// PredictionResponse is the output DTO for one scored prediction. Input
// features are echoed back so callers can correlate responses without
// holding request state.
type PredictionResponse struct {
	PredictedAt   time.Time             `json:"predicted_at"`
	Input         model.PredictionInput `json:"input"`
	DegradedSlots []string              `json:"degraded_slots,omitempty"`
	ID            uuid.UUID             `json:"id"`
	RiskLevel     string                `json:"risk_level"`
	Message       string                `json:"message"`
	RiskScore     float64               `json:"risk_score"`
	Success       bool                  `json:"success"`
}

// BatchPredictionResponse is the output DTO for a batch of predictions,
// order-aligned with the request.
type BatchPredictionResponse struct {
	Predictions []PredictionResponse `json:"predictions"`
	Count       int                  `json:"count"`
}

// AuditLogPredictionResponse is the output DTO for one audit-log-derived
// prediction. MappedFeatures is nil for fallback-scored records.
type AuditLogPredictionResponse struct {
	MappedFeatures *model.PredictionInput `json:"mapped_features,omitempty"`
	LogID          string                 `json:"log_id"`
	RiskLevel      string                 `json:"risk_level"`
	ID             uuid.UUID              `json:"id"`
	RiskScore      float64                `json:"risk_score"`
	MLPredicted    bool                   `json:"ml_predicted"`
}

// AuditLogsBatchResponse summarizes an audit log scoring run.
type AuditLogsBatchResponse struct {
	Predictions      []AuditLogPredictionResponse `json:"predictions"`
	TotalProcessed   int                          `json:"total_processed"`
	MLPredictedCount int                          `json:"ml_predicted_count"`
	FallbackCount    int                          `json:"fallback_count"`
}

// ServiceStatusResponse reports the health of the prediction pipeline for
// introspection endpoints.
type ServiceStatusResponse struct {
	AvailableEncoders []string `json:"available_encoders"`
	ModelSource       string   `json:"model_source"`
	Status            string   `json:"status"`
	ModelLoaded       bool     `json:"model_loaded"`
	EncodersLoaded    bool     `json:"encoders_loaded"`
}

// FromModel maps a prediction aggregate to the response DTO.
func FromModel(p *model.RiskPrediction) PredictionResponse {
	return PredictionResponse{
		ID:            p.ID(),
		Input:         p.Input(),
		RiskScore:     p.Score(),
		RiskLevel:     p.Level().String(),
		DegradedSlots: p.DegradedSlots(),
		PredictedAt:   p.PredictedAt(),
		Success:       true,
		Message:       "prediction successful",
	}
}

// AuditLogFromModel maps an audit-log-derived prediction aggregate to its
// response DTO.
func AuditLogFromModel(p *model.RiskPrediction) AuditLogPredictionResponse {
	resp := AuditLogPredictionResponse{
		ID:          p.ID(),
		LogID:       p.LogID(),
		RiskScore:   p.Score(),
		RiskLevel:   p.Level().String(),
		MLPredicted: p.MLPredicted(),
	}
	if p.MLPredicted() {
		in := p.Input()
		resp.MappedFeatures = &in
	}
	return resp
}
