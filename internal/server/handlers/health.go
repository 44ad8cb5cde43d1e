package handlers

import (
	"log/slog"
	"net/http"

	"github.com/GLee998/church-database-bot/pkg/api"
)

// HealthHandler обрабатывает health check запросы
type HealthHandler struct {
	logger  *slog.Logger
	roster  Roster
	version string
}

// NewHealthHandler создает новый handler для health check
func NewHealthHandler(logger *slog.Logger, r Roster, version string) *HealthHandler {
	return &HealthHandler{
		logger:  logger,
		roster:  r,
		version: version,
	}
}

// Health обрабатывает GET /api/v1/health.
// Устаревший снимок не делает сервис недоступным: чтение продолжает работать, статус "degraded".
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	resp := api.HealthResponse{
		Status:             "ok",
		Version:            h.version,
		SnapshotAgeSeconds: snapshotInfo(h.roster.SnapshotAge(), false).AgeSeconds,
	}
	if h.roster.Stale() {
		resp.Status = "degraded"
	}

	sendJSON(h.logger, w, resp, http.StatusOK)
}
