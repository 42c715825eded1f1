package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/adityajha77/nebula-web-wallet/internal/config"
	"github.com/adityajha77/nebula-web-wallet/internal/models"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to write JSON response", "error", err)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeErrorDetail(w, status, models.APIErrorDetail{Code: code, Message: message})
}

func writeErrorDetail(w http.ResponseWriter, status int, detail models.APIErrorDetail) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(models.APIError{Error: detail})
}

// writeMissingState tells the UI to go back to network selection.
func writeMissingState(w http.ResponseWriter) {
	writeErrorDetail(w, http.StatusConflict, models.APIErrorDetail{
		Code:     config.ErrorMissingSessionState,
		Message:  "session is missing a network or recovery phrase",
		Redirect: "/",
	})
}

// writeFlowError maps session errors shared by every endpoint. It returns
// false when err is none of them, leaving the response to the caller.
func writeFlowError(w http.ResponseWriter, err error) bool {
	switch {
	case errors.Is(err, config.ErrMissingSessionState):
		writeMissingState(w)
	case errors.Is(err, config.ErrNoWallets):
		writeError(w, http.StatusBadRequest, config.ErrorNoWallets, "no wallets generated")
	case errors.Is(err, config.ErrWalletNotFound):
		writeError(w, http.StatusNotFound, config.ErrorWalletNotFound, "wallet not found")
	default:
		return false
	}
	return true
}

// decodeJSON reads a size-limited JSON body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, config.MaxRequestBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	return nil
}
