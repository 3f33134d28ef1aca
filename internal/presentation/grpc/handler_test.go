package grpc

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dannynguyen3011/draft-ztp/internal/application/usecase"
	"github.com/dannynguyen3011/draft-ztp/internal/domain/model"
	"github.com/dannynguyen3011/draft-ztp/internal/domain/service"
	"github.com/dannynguyen3011/draft-ztp/pkg/auth"
	"github.com/dannynguyen3011/draft-ztp/pkg/events"
)

// --- Mock implementations ---

type mockRepo struct {
	saveErr error
}

func (m *mockRepo) Save(_ context.Context, _ *model.RiskPrediction) error {
	return m.saveErr
}

func (m *mockRepo) FindByID(_ context.Context, _ uuid.UUID) (*model.RiskPrediction, error) {
	return nil, fmt.Errorf("not found")
}

func (m *mockRepo) FindRecent(_ context.Context, _, _ int) ([]*model.RiskPrediction, error) {
	return nil, nil
}

type mockPublisher struct {
	publishErr error
}

func (m *mockPublisher) Publish(_ context.Context, _ ...events.DomainEvent) error {
	return m.publishErr
}

type constantModel struct {
	score float64
}

func (m constantModel) Predict(_ context.Context, _ []float64) (float64, error) {
	return m.score, nil
}

func (m constantModel) Describe() string { return "constant" }

// --- Helpers ---

func contextWithClaims(roles ...string) context.Context {
	claims := &auth.Claims{
		UserID: uuid.New(),
		Roles:  roles,
	}
	return auth.ContextWithClaims(context.Background(), claims)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func buildTestHandler(t *testing.T, score float64, authRequired bool) *RiskServiceHandler {
	t.Helper()

	repo := &mockRepo{}
	publisher := &mockPublisher{}
	logger := testLogger()

	registry, err := service.NewEncoderRegistry(map[string][]string{
		"ip_region":   {"Nigeria", "US", "Vietnam"},
		"device_type": {"known", "new"},
		"user_role":   {"employee", "guest"},
		"action":      {"login", "logout", "page_view_home", "page_view_it_request"},
	}, service.NopRecorder{}, logger)
	require.NoError(t, err)

	builder := service.NewVectorBuilder(registry)
	scorer := service.NewScoringEngine(constantModel{score: score}, service.NopRecorder{}, logger)
	mapper := service.NewAuditLogMapper(logger)

	predict := usecase.NewPredict(repo, publisher, builder, scorer, logger)

	return NewRiskServiceHandler(
		predict,
		usecase.NewPredictBatch(predict, logger),
		usecase.NewPredictAuditLogs(repo, publisher, mapper, builder, scorer, service.NopRecorder{}, logger),
		usecase.NewServiceStatus(registry, scorer),
		authRequired,
		logger,
	)
}

func validRequest() *PredictRequest {
	return &PredictRequest{
		IPRegion:      "Vietnam",
		DeviceType:    "known",
		UserRole:      "employee",
		Action:        "login",
		Hour:          14,
		SessionPeriod: 25,
	}
}

// --- Tests ---

func TestPredict(t *testing.T) {
	t.Run("nil request returns InvalidArgument", func(t *testing.T) {
		h := buildTestHandler(t, 0.5, true)
		_, err := h.Predict(contextWithClaims(auth.RoleAdmin), nil)
		requireGRPCCode(t, err, codes.InvalidArgument)
	})

	t.Run("missing claims returns Unauthenticated", func(t *testing.T) {
		h := buildTestHandler(t, 0.5, true)
		_, err := h.Predict(context.Background(), validRequest())
		requireGRPCCode(t, err, codes.Unauthenticated)
	})

	t.Run("wrong role returns PermissionDenied", func(t *testing.T) {
		h := buildTestHandler(t, 0.5, true)
		_, err := h.Predict(contextWithClaims(auth.RoleEmployee), validRequest())
		requireGRPCCode(t, err, codes.PermissionDenied)
	})

	t.Run("auth disabled skips role checks", func(t *testing.T) {
		h := buildTestHandler(t, 0.5, false)
		resp, err := h.Predict(context.Background(), validRequest())
		require.NoError(t, err)
		assert.NotNil(t, resp.Prediction)
	})

	t.Run("out-of-range hour returns InvalidArgument", func(t *testing.T) {
		h := buildTestHandler(t, 0.5, true)
		req := validRequest()
		req.Hour = 24
		_, err := h.Predict(contextWithClaims(auth.RoleAdmin), req)
		requireGRPCCode(t, err, codes.InvalidArgument)
		assert.Contains(t, err.Error(), "hour")
	})

	t.Run("happy path returns scored prediction", func(t *testing.T) {
		h := buildTestHandler(t, 0.82, true)
		resp, err := h.Predict(contextWithClaims(auth.RoleAPIClient), validRequest())
		require.NoError(t, err)
		require.NotNil(t, resp.Prediction)
		assert.NotEmpty(t, resp.Prediction.ID)
		assert.InDelta(t, 0.82, resp.Prediction.RiskScore, 1e-9)
		assert.Equal(t, "high", resp.Prediction.RiskLevel)
		assert.True(t, resp.Prediction.Success)
		require.NotNil(t, resp.Prediction.Input)
		assert.Equal(t, "Vietnam", resp.Prediction.Input.IPRegion)
	})
}

func TestPredictBatch(t *testing.T) {
	t.Run("nil request returns InvalidArgument", func(t *testing.T) {
		h := buildTestHandler(t, 0.5, true)
		_, err := h.PredictBatch(contextWithClaims(auth.RoleAdmin), nil)
		requireGRPCCode(t, err, codes.InvalidArgument)
	})

	t.Run("scores all elements and preserves order", func(t *testing.T) {
		h := buildTestHandler(t, 0.5, true)

		bad := validRequest()
		bad.Hour = 99

		resp, err := h.PredictBatch(contextWithClaims(auth.RoleAdmin), &PredictBatchRequest{
			Requests: []*PredictRequest{validRequest(), bad, validRequest()},
		})

		require.NoError(t, err)
		assert.Equal(t, int32(3), resp.Count)
		require.Len(t, resp.Predictions, 3)
		assert.True(t, resp.Predictions[0].Success)
		assert.False(t, resp.Predictions[1].Success)
		assert.True(t, resp.Predictions[2].Success)
	})
}

func TestPredictAuditLogs(t *testing.T) {
	t.Run("nil request returns InvalidArgument", func(t *testing.T) {
		h := buildTestHandler(t, 0.5, true)
		_, err := h.PredictAuditLogs(contextWithClaims(auth.RoleAdmin), nil)
		requireGRPCCode(t, err, codes.InvalidArgument)
	})

	t.Run("reports ML and fallback counts", func(t *testing.T) {
		h := buildTestHandler(t, 0.5, true)

		resp, err := h.PredictAuditLogs(contextWithClaims(auth.RoleAdmin), &PredictAuditLogsRequest{
			Records: []map[string]interface{}{
				{"_id": "log-1", "ipAddress": "41.2.3.4", "action": "USER_LOGIN"},
				{"_id": "log-2", "roles": []interface{}{42}},
			},
		})

		require.NoError(t, err)
		assert.Equal(t, int32(2), resp.TotalProcessed)
		assert.Equal(t, int32(1), resp.MLPredictedCount)
		assert.Equal(t, int32(1), resp.FallbackCount)

		require.Len(t, resp.Predictions, 2)
		assert.Equal(t, "log-1", resp.Predictions[0].LogID)
		assert.True(t, resp.Predictions[0].MLPredicted)
		require.NotNil(t, resp.Predictions[0].MappedFeatures)
		assert.Equal(t, "Nigeria", resp.Predictions[0].MappedFeatures.IPRegion)

		assert.False(t, resp.Predictions[1].MLPredicted)
		assert.Nil(t, resp.Predictions[1].MappedFeatures)
		assert.InDelta(t, model.FallbackScore, resp.Predictions[1].RiskScore, 1e-9)
	})
}

func TestGetServiceStatus(t *testing.T) {
	h := buildTestHandler(t, 0.5, true)

	resp, err := h.GetServiceStatus(contextWithClaims(auth.RoleEmployee), &GetServiceStatusRequest{})

	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Status)
	assert.True(t, resp.ModelLoaded)
	assert.Equal(t, "constant", resp.ModelSource)
	assert.True(t, resp.EncodersLoaded)
	assert.Equal(t, []string{"action", "device_type", "ip_region", "user_role"}, resp.AvailableEncoders)
}

// requireGRPCCode asserts that an error is a gRPC status error with the given code.
func requireGRPCCode(t *testing.T, err error, code codes.Code) {
	t.Helper()
	require.Error(t, err)
	st, ok := status.FromError(err)
	require.True(t, ok, "expected gRPC status error, got %T: %v", err, err)
	assert.Equal(t, code, st.Code(), "expected gRPC code %s, got %s: %s", code, st.Code(), st.Message())
}
