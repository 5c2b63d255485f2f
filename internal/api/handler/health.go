package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/vanguardgg/sitecms/internal/api/response"
)

// Pinger checks that a backing store is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports liveness and storage reachability
type HealthHandler struct {
	storage Pinger
	logger  *slog.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(storage Pinger, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		storage: storage,
		logger:  logger,
	}
}

// Health handles GET /api/health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.storage.Ping(ctx); err != nil {
		h.logger.Warn("storage ping failed", slog.String("error", err.Error()))
		response.JSON(w, http.StatusServiceUnavailable, response.HealthResponse{Status: "degraded", Storage: "unreachable"})
		return
	}
	response.JSON(w, http.StatusOK, response.HealthResponse{Status: "ok", Storage: "ok"})
}
