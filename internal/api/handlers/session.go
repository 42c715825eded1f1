package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/adityajha77/nebula-web-wallet/internal/config"
	"github.com/adityajha77/nebula-web-wallet/internal/models"
	"github.com/adityajha77/nebula-web-wallet/internal/session"
)

// GetSession handles GET /api/session.
func GetSession(svc *session.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		summary, err := svc.Summary()
		if err != nil {
			slog.Error("failed to load session", "error", err)
			writeError(w, http.StatusInternalServerError, config.ErrorDatabase, "failed to load session")
			return
		}

		writeJSON(w, http.StatusOK, models.APIResponse{
			Data: summary,
			Meta: &models.APIMeta{ExecutionTime: time.Since(start).Milliseconds()},
		})
	}
}

// ResetSession handles DELETE /api/session. Everything is cleared, the
// theme included.
func ResetSession(svc *session.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("start over requested", "remoteAddr", r.RemoteAddr)

		if err := svc.StartOver(); err != nil {
			slog.Error("failed to reset session", "error", err)
			writeError(w, http.StatusInternalServerError, config.ErrorDatabase, "failed to reset session")
			return
		}

		writeJSON(w, http.StatusOK, models.APIResponse{
			Data: models.SessionState{}.Summary(),
		})
	}
}

type themeRequest struct {
	DarkMode *bool `json:"darkMode"`
}

// SetTheme handles PUT /api/session/theme.
func SetTheme(svc *session.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req themeRequest
		if err := decodeJSON(w, r, &req); err != nil || req.DarkMode == nil {
			writeError(w, http.StatusBadRequest, config.ErrorInvalidRequest, "body must be {\"darkMode\": bool}")
			return
		}

		if err := svc.SetDarkMode(*req.DarkMode); err != nil {
			slog.Error("failed to set theme", "error", err)
			writeError(w, http.StatusInternalServerError, config.ErrorDatabase, "failed to save theme")
			return
		}

		slog.Debug("theme updated", "darkMode", *req.DarkMode)

		writeJSON(w, http.StatusOK, models.APIResponse{
			Data: map[string]bool{"darkMode": *req.DarkMode},
		})
	}
}
