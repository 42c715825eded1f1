package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/adityajha77/nebula-web-wallet/internal/config"
	"github.com/adityajha77/nebula-web-wallet/internal/models"
	"github.com/adityajha77/nebula-web-wallet/internal/session"
	"github.com/adityajha77/nebula-web-wallet/internal/wallet"
)

type selectNetworkRequest struct {
	Network  string `json:"network"`
	DarkMode *bool  `json:"darkMode,omitempty"`
}

// SelectNetwork handles POST /api/network. A new session starts on the
// chosen network.
func SelectNetwork(svc *session.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req selectNetworkRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, config.ErrorInvalidRequest, "invalid request body")
			return
		}

		state, err := svc.SelectNetwork(req.Network, req.DarkMode)
		if err != nil {
			if errors.Is(err, wallet.ErrUnsupportedNetwork) {
				slog.Warn("unsupported network requested", "network", req.Network)
				writeError(w, http.StatusBadRequest, config.ErrorUnsupportedNetwork, "network must be one of: solana, ethereum")
				return
			}
			slog.Error("failed to select network", "network", req.Network, "error", err)
			writeError(w, http.StatusInternalServerError, config.ErrorDatabase, "failed to select network")
			return
		}

		writeJSON(w, http.StatusOK, models.APIResponse{Data: state.Summary()})
	}
}
