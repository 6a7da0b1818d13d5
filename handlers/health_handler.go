package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/paperstack/docshare/repositories/postgres"
	"github.com/paperstack/docshare/utils"
)

// HealthResponse represents the health check response body
type HealthResponse struct {
	Status string `json:"status"`
}

// HealthHandler serves liveness and readiness probes
type HealthHandler struct {
	db     *postgres.DB
	logger *zap.Logger
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(db *postgres.DB, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		db:     db,
		logger: logger,
	}
}

// HandleHealthz handles GET /healthz
func (h *HealthHandler) HandleHealthz(w http.ResponseWriter, r *http.Request) {
	_ = utils.WriteOK(w, HealthResponse{Status: "ok"})
}

// HandleReadyz handles GET /readyz and verifies database connectivity
func (h *HealthHandler) HandleReadyz(w http.ResponseWriter, r *http.Request) {
	if err := h.db.HealthCheck(r.Context()); err != nil {
		h.logger.Warn("readiness check failed", zap.Error(err))
		_ = utils.WriteJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: "unavailable"})
		return
	}
	_ = utils.WriteOK(w, HealthResponse{Status: "ready"})
}
