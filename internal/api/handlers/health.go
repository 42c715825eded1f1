package handlers

import (
	"log/slog"
	"net/http"

	"github.com/adityajha77/nebula-web-wallet/internal/config"
	"github.com/adityajha77/nebula-web-wallet/internal/models"
)

// HealthHandler returns a handler for the GET /api/health endpoint.
func HealthHandler(cfg *config.Config, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Debug("health check requested", "remoteAddr", r.RemoteAddr)

		writeJSON(w, http.StatusOK, map[string]interface{}{
			"status":   "ok",
			"version":  version,
			"dbPath":   cfg.DBPath,
			"networks": models.AllNetworks,
		})
	}
}
