package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/dannynguyen3011/draft-ztp/internal/application/usecase"
)

// HealthHandler provides the HTTP sidecar endpoints for the risk service:
// probes, pipeline introspection, and the stored-prediction query surface.
type HealthHandler struct {
	logger        *slog.Logger
	serviceStatus *usecase.ServiceStatus
	getPrediction *usecase.GetPrediction
	dbCheck       func(ctx context.Context) error
	startTime     time.Time
}

// NewHealthHandler creates a new HTTP handler. dbCheck may be nil when the
// service runs without a database.
func NewHealthHandler(
	logger *slog.Logger,
	serviceStatus *usecase.ServiceStatus,
	getPrediction *usecase.GetPrediction,
	dbCheck func(ctx context.Context) error,
) *HealthHandler {
	return &HealthHandler{
		logger:        logger,
		serviceStatus: serviceStatus,
		getPrediction: getPrediction,
		dbCheck:       dbCheck,
		startTime:     time.Now(),
	}
}

// HealthResponse is the JSON response for health checks.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Uptime  string `json:"uptime"`
}

// ReadinessResponse is the JSON response for readiness checks.
type ReadinessResponse struct {
	Status  string            `json:"status"`
	Service string            `json:"service"`
	Checks  map[string]string `json:"checks"`
}

// RegisterRoutes registers the sidecar endpoints on the provided ServeMux.
func (h *HealthHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", h.Healthz)
	mux.HandleFunc("GET /readyz", h.Readyz)
	mux.HandleFunc("GET /statusz", h.Statusz)
	mux.HandleFunc("GET /predictions", h.RecentPredictions)
	mux.HandleFunc("GET /predictions/{id}", h.PredictionByID)
}

// Healthz handles liveness probe requests.
func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:  "healthy",
		Service: "risk-service",
		Uptime:  time.Since(h.startTime).String(),
	})
}

// Readyz handles readiness probe requests. The service is ready when its
// artifacts are loaded; the database is reported but scoring does not
// depend on it.
func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	pipeline := h.serviceStatus.Execute()

	checks := map[string]string{
		"model":    checkWord(pipeline.ModelLoaded),
		"encoders": checkWord(pipeline.EncodersLoaded),
	}

	statusWord := "ready"
	code := http.StatusOK
	if !pipeline.ModelLoaded || !pipeline.EncodersLoaded {
		statusWord = "not ready"
		code = http.StatusServiceUnavailable
	}

	if h.dbCheck != nil {
		if err := h.dbCheck(r.Context()); err != nil {
			checks["database"] = "unreachable"
		} else {
			checks["database"] = "ok"
		}
	}

	writeJSON(w, code, ReadinessResponse{
		Status:  statusWord,
		Service: "risk-service",
		Checks:  checks,
	})
}

// Statusz reports the prediction pipeline introspection payload.
func (h *HealthHandler) Statusz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.serviceStatus.Execute())
}

// RecentPredictions serves the stored-prediction query surface.
func (h *HealthHandler) RecentPredictions(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	predictions, err := h.getPrediction.Recent(r.Context(), limit, offset)
	if err != nil {
		h.logger.Error("failed to list recent predictions",
			slog.String("error", err.Error()),
		)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"predictions": predictions,
		"count":       len(predictions),
	})
}

// PredictionByID serves one stored prediction.
func (h *HealthHandler) PredictionByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid prediction id"})
		return
	}

	prediction, err := h.getPrediction.ByID(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "prediction not found"})
		return
	}

	writeJSON(w, http.StatusOK, prediction)
}

func checkWord(ok bool) string {
	if ok {
		return "ok"
	}
	return "missing"
}

func writeJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload) //nolint:errcheck
}
