package handlers

import (
	"context"
	"net/http"
	"time"

	"DOIT_BACK-END/internal/dto"
	"DOIT_BACK-END/internal/utils"
)

// Pinger is satisfied by *pgxpool.Pool and *repositories.MemoryStore.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler handles health check related requests
type HealthHandler struct {
	store string
	db    Pinger
}

// NewHealthHandler creates a new HealthHandler instance. store names the
// backend in readiness output, e.g. "db" or "memory".
func NewHealthHandler(store string, db Pinger) *HealthHandler {
	return &HealthHandler{store: store, db: db}
}

// HealthCheck handles basic health check (no database)
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /healthz [get]
func (h *HealthHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSONResponse(w, http.StatusOK, dto.HealthResponse{Status: "ok"})
}

// LivenessCheck handles process liveness check
// @Summary Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /livez [get]
func (h *HealthHandler) LivenessCheck(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSONResponse(w, http.StatusOK, dto.HealthResponse{Status: "alive"})
}

// ReadinessCheck handles readiness check (includes store connectivity)
// @Summary Readiness probe
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Failure 503 {object} dto.HealthResponse
// @Router /readyz [get]
func (h *HealthHandler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		utils.WriteJSONResponse(w, http.StatusServiceUnavailable, dto.HealthResponse{
			Status: "degraded",
			Checks: map[string]string{h.store: err.Error()},
		})
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.HealthResponse{
		Status: "ready",
		Checks: map[string]string{h.store: "ok"},
	})
}
