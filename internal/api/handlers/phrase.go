package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/adityajha77/nebula-web-wallet/internal/config"
	"github.com/adityajha77/nebula-web-wallet/internal/models"
	"github.com/adityajha77/nebula-web-wallet/internal/session"
	"github.com/adityajha77/nebula-web-wallet/internal/wallet"
)

type phraseResponse struct {
	Mnemonic string   `json:"mnemonic"`
	Masked   string   `json:"masked"`
	Words    []string `json:"words"`
}

// NewPhrase handles GET /api/phrase/new. The phrase is returned but not
// stored; the client posts it back to acknowledge it.
func NewPhrase(svc *session.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mnemonic, err := svc.NewRecoveryPhrase()
		if err != nil {
			if writeFlowError(w, err) {
				return
			}
			slog.Error("failed to generate recovery phrase", "error", err)
			writeError(w, http.StatusInternalServerError, config.ErrorPhraseGeneration, "failed to generate recovery phrase")
			return
		}

		w.Header().Set("Cache-Control", "no-store")
		writeJSON(w, http.StatusOK, models.APIResponse{
			Data: phraseResponse{
				Mnemonic: mnemonic,
				Masked:   wallet.MaskPhrase(mnemonic),
				Words:    strings.Fields(mnemonic),
			},
		})
	}
}

type acknowledgeRequest struct {
	Mnemonic string `json:"mnemonic"`
}

// AcknowledgePhrase handles POST /api/phrase.
func AcknowledgePhrase(svc *session.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req acknowledgeRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, config.ErrorInvalidRequest, "invalid request body")
			return
		}

		if err := svc.AcknowledgePhrase(req.Mnemonic); err != nil {
			if errors.Is(err, wallet.ErrInvalidMnemonic) {
				writeError(w, http.StatusBadRequest, config.ErrorInvalidMnemonic, "invalid mnemonic, please regenerate the phrase")
				return
			}
			if writeFlowError(w, err) {
				return
			}
			slog.Error("failed to store recovery phrase", "error", err)
			writeError(w, http.StatusInternalServerError, config.ErrorDatabase, "failed to save recovery phrase")
			return
		}

		summary, err := svc.Summary()
		if err != nil {
			slog.Error("failed to load session", "error", err)
			writeError(w, http.StatusInternalServerError, config.ErrorDatabase, "failed to load session")
			return
		}

		writeJSON(w, http.StatusOK, models.APIResponse{Data: summary})
	}
}
