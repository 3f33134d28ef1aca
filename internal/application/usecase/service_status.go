package usecase

import (
	"github.com/dannynguyen3011/draft-ztp/internal/application/dto"
	"github.com/dannynguyen3011/draft-ztp/internal/domain/service"
)

// ServiceStatus reports the readiness of the prediction pipeline: whether a
// model is loaded, where it came from, and which vocabularies are available.
type ServiceStatus struct {
	encoders *service.EncoderRegistry
	scorer   *service.ScoringEngine
}

// NewServiceStatus creates a new ServiceStatus use case.
func NewServiceStatus(encoders *service.EncoderRegistry, scorer *service.ScoringEngine) *ServiceStatus {
	return &ServiceStatus{encoders: encoders, scorer: scorer}
}

// Execute builds the introspection payload.
func (uc *ServiceStatus) Execute() dto.ServiceStatusResponse {
	features := uc.encoders.Features()
	source := uc.scorer.ModelDescription()

	return dto.ServiceStatusResponse{
		Status:            "ok",
		ModelLoaded:       source != "",
		ModelSource:       source,
		EncodersLoaded:    len(features) > 0,
		AvailableEncoders: features,
	}
}
