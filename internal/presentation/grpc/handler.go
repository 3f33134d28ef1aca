package grpc

import (
	"context"
	"errors"
	"log/slog"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dannynguyen3011/draft-ztp/internal/application/dto"
	"github.com/dannynguyen3011/draft-ztp/internal/application/usecase"
	"github.com/dannynguyen3011/draft-ztp/internal/domain/model"
	"github.com/dannynguyen3011/draft-ztp/pkg/auth"
)

// Compile-time assertion that RiskServiceHandler implements RiskServiceServer.
var _ RiskServiceServer = (*RiskServiceHandler)(nil)

// RiskServiceHandler implements the gRPC RiskServiceServer interface.
type RiskServiceHandler struct {
	UnimplementedRiskServiceServer
	predict          *usecase.Predict
	predictBatch     *usecase.PredictBatch
	predictAuditLogs *usecase.PredictAuditLogs
	serviceStatus    *usecase.ServiceStatus
	authRequired     bool
	logger           *slog.Logger
}

// NewRiskServiceHandler creates a new gRPC handler. When authRequired is
// false role checks are skipped, for development deployments without a
// token issuer.
func NewRiskServiceHandler(
	predict *usecase.Predict,
	predictBatch *usecase.PredictBatch,
	predictAuditLogs *usecase.PredictAuditLogs,
	serviceStatus *usecase.ServiceStatus,
	authRequired bool,
	logger *slog.Logger,
) *RiskServiceHandler {
	return &RiskServiceHandler{
		predict:          predict,
		predictBatch:     predictBatch,
		predictAuditLogs: predictAuditLogs,
		serviceStatus:    serviceStatus,
		authRequired:     authRequired,
		logger:           logger,
	}
}

// requireRole checks that the caller has at least one of the given roles.
func (h *RiskServiceHandler) requireRole(ctx context.Context, roles ...string) error {
	if !h.authRequired {
		return nil
	}

	claims, ok := auth.ClaimsFromContext(ctx)
	if !ok {
		return status.Error(codes.Unauthenticated, "authentication required")
	}
	for _, role := range roles {
		if claims.HasRole(role) {
			return nil
		}
	}
	return status.Error(codes.PermissionDenied, "insufficient permissions")
}

// Proto-aligned request/response message types.

// PredictRequest represents the proto PredictRequest message.
type PredictRequest struct {
	IPRegion      string `json:"ip_region"`
	DeviceType    string `json:"device_type"`
	UserRole      string `json:"user_role"`
	Action        string `json:"action"`
	Hour          int32  `json:"hour"`
	SessionPeriod int32  `json:"session_period"`
}

// PredictionMsg represents the proto Prediction message.
type PredictionMsg struct {
	ID            string          `json:"id"`
	Input         *PredictRequest `json:"input"`
	RiskScore     float64         `json:"risk_score"`
	RiskLevel     string          `json:"risk_level"`
	DegradedSlots []string        `json:"degraded_slots"`
	Success       bool            `json:"success"`
	Message       string          `json:"message"`
}

// PredictResponse represents the proto PredictResponse message.
type PredictResponse struct {
	Prediction *PredictionMsg `json:"prediction"`
}

// PredictBatchRequest represents the proto PredictBatchRequest message.
type PredictBatchRequest struct {
	Requests []*PredictRequest `json:"requests"`
}

// PredictBatchResponse represents the proto PredictBatchResponse message.
type PredictBatchResponse struct {
	Predictions []*PredictionMsg `json:"predictions"`
	Count       int32            `json:"count"`
}

// PredictAuditLogsRequest represents the proto PredictAuditLogsRequest
// message. Records are open-ended documents, modeled as
// google.protobuf.Struct in the proto schema.
type PredictAuditLogsRequest struct {
	Records []map[string]interface{} `json:"records"`
}

// AuditLogPredictionMsg represents the proto AuditLogPrediction message.
type AuditLogPredictionMsg struct {
	ID             string          `json:"id"`
	LogID          string          `json:"log_id"`
	RiskScore      float64         `json:"risk_score"`
	RiskLevel      string          `json:"risk_level"`
	MLPredicted    bool            `json:"ml_predicted"`
	MappedFeatures *PredictRequest `json:"mapped_features,omitempty"`
}

// PredictAuditLogsResponse represents the proto PredictAuditLogsResponse message.
type PredictAuditLogsResponse struct {
	Predictions      []*AuditLogPredictionMsg `json:"predictions"`
	TotalProcessed   int32                    `json:"total_processed"`
	MLPredictedCount int32                    `json:"ml_predicted_count"`
	FallbackCount    int32                    `json:"fallback_count"`
}

// GetServiceStatusRequest represents the proto GetServiceStatusRequest message.
type GetServiceStatusRequest struct{}

// GetServiceStatusResponse represents the proto GetServiceStatusResponse message.
type GetServiceStatusResponse struct {
	Status            string   `json:"status"`
	ModelLoaded       bool     `json:"model_loaded"`
	ModelSource       string   `json:"model_source"`
	EncodersLoaded    bool     `json:"encoders_loaded"`
	AvailableEncoders []string `json:"available_encoders"`
}

// Predict handles a single prediction request.
func (h *RiskServiceHandler) Predict(ctx context.Context, req *PredictRequest) (*PredictResponse, error) {
	if err := h.requireRole(ctx, auth.RoleAdmin, auth.RoleManager, auth.RoleAPIClient); err != nil {
		return nil, err
	}

	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	result, err := h.predict.Execute(ctx, toDTORequest(req))
	if err != nil {
		var verr *model.ValidationError
		if errors.As(err, &verr) {
			return nil, status.Error(codes.InvalidArgument, verr.Error())
		}
		h.logger.Error("failed to score prediction",
			slog.String("error", err.Error()),
		)
		return nil, status.Error(codes.Internal, "internal error")
	}

	return &PredictResponse{Prediction: toPredictionMsg(result)}, nil
}

// PredictBatch handles a batch prediction request.
func (h *RiskServiceHandler) PredictBatch(ctx context.Context, req *PredictBatchRequest) (*PredictBatchResponse, error) {
	if err := h.requireRole(ctx, auth.RoleAdmin, auth.RoleManager, auth.RoleAPIClient); err != nil {
		return nil, err
	}

	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	reqs := make([]dto.PredictRequest, 0, len(req.Requests))
	for _, r := range req.Requests {
		if r == nil {
			r = &PredictRequest{}
		}
		reqs = append(reqs, toDTORequest(r))
	}

	result, err := h.predictBatch.Execute(ctx, reqs)
	if err != nil {
		h.logger.Error("failed to score batch",
			slog.String("error", err.Error()),
		)
		return nil, status.Error(codes.Internal, "internal error")
	}

	predictions := make([]*PredictionMsg, 0, len(result.Predictions))
	for _, p := range result.Predictions {
		predictions = append(predictions, toPredictionMsg(p))
	}

	return &PredictBatchResponse{
		Predictions: predictions,
		Count:       int32(result.Count),
	}, nil
}

// PredictAuditLogs handles an audit-log-driven prediction request.
func (h *RiskServiceHandler) PredictAuditLogs(ctx context.Context, req *PredictAuditLogsRequest) (*PredictAuditLogsResponse, error) {
	if err := h.requireRole(ctx, auth.RoleAdmin, auth.RoleManager, auth.RoleAPIClient); err != nil {
		return nil, err
	}

	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	records := make([]model.AuditLogRecord, 0, len(req.Records))
	for _, rec := range req.Records {
		records = append(records, model.AuditLogRecord(rec))
	}

	result, err := h.predictAuditLogs.Execute(ctx, records)
	if err != nil {
		h.logger.Error("failed to score audit logs",
			slog.String("error", err.Error()),
		)
		return nil, status.Error(codes.Internal, "internal error")
	}

	predictions := make([]*AuditLogPredictionMsg, 0, len(result.Predictions))
	for _, p := range result.Predictions {
		msg := &AuditLogPredictionMsg{
			ID:          p.ID.String(),
			LogID:       p.LogID,
			RiskScore:   p.RiskScore,
			RiskLevel:   p.RiskLevel,
			MLPredicted: p.MLPredicted,
		}
		if p.MappedFeatures != nil {
			msg.MappedFeatures = &PredictRequest{
				IPRegion:      p.MappedFeatures.IPRegion,
				DeviceType:    p.MappedFeatures.DeviceType,
				UserRole:      p.MappedFeatures.UserRole,
				Action:        p.MappedFeatures.Action,
				Hour:          int32(p.MappedFeatures.Hour),
				SessionPeriod: int32(p.MappedFeatures.SessionPeriod),
			}
		}
		predictions = append(predictions, msg)
	}

	return &PredictAuditLogsResponse{
		Predictions:      predictions,
		TotalProcessed:   int32(result.TotalProcessed),
		MLPredictedCount: int32(result.MLPredictedCount),
		FallbackCount:    int32(result.FallbackCount),
	}, nil
}

// GetServiceStatus reports pipeline readiness.
func (h *RiskServiceHandler) GetServiceStatus(ctx context.Context, _ *GetServiceStatusRequest) (*GetServiceStatusResponse, error) {
	if err := h.requireRole(ctx, auth.RoleAdmin, auth.RoleManager, auth.RoleEmployee, auth.RoleAPIClient); err != nil {
		return nil, err
	}

	statusResult := h.serviceStatus.Execute()

	return &GetServiceStatusResponse{
		Status:            statusResult.Status,
		ModelLoaded:       statusResult.ModelLoaded,
		ModelSource:       statusResult.ModelSource,
		EncodersLoaded:    statusResult.EncodersLoaded,
		AvailableEncoders: statusResult.AvailableEncoders,
	}, nil
}

func toDTORequest(req *PredictRequest) dto.PredictRequest {
	return dto.PredictRequest{
		IPRegion:      req.IPRegion,
		DeviceType:    req.DeviceType,
		UserRole:      req.UserRole,
		Action:        req.Action,
		Hour:          int(req.Hour),
		SessionPeriod: int(req.SessionPeriod),
	}
}

func toPredictionMsg(p dto.PredictionResponse) *PredictionMsg {
	return &PredictionMsg{
		ID:            p.ID.String(),
		Input:         fromInput(p),
		RiskScore:     p.RiskScore,
		RiskLevel:     p.RiskLevel,
		DegradedSlots: p.DegradedSlots,
		Success:       p.Success,
		Message:       p.Message,
	}
}

func fromInput(p dto.PredictionResponse) *PredictRequest {
	return &PredictRequest{
		IPRegion:      p.Input.IPRegion,
		DeviceType:    p.Input.DeviceType,
		UserRole:      p.Input.UserRole,
		Action:        p.Input.Action,
		Hour:          int32(p.Input.Hour),
		SessionPeriod: int32(p.Input.SessionPeriod),
	}
}
