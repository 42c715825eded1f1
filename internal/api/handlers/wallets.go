package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/adityajha77/nebula-web-wallet/internal/config"
	"github.com/adityajha77/nebula-web-wallet/internal/models"
	"github.com/adityajha77/nebula-web-wallet/internal/session"
	"github.com/adityajha77/nebula-web-wallet/internal/wallet"
)

// walletView is a wallet as rendered on the dashboard.
type walletView struct {
	ID         string `json:"id"`
	PublicKey  string `json:"publicKey"`
	PrivateKey string `json:"privateKey"`
	Index      int    `json:"index"`
	Revealed   bool   `json:"revealed"`
}

func newWalletView(w models.Wallet, reveal bool) walletView {
	v := walletView{
		ID:         w.ID,
		PublicKey:  w.PublicKey,
		PrivateKey: wallet.MaskKey(w.PrivateKey),
		Index:      w.Index,
		Revealed:   reveal,
	}
	if reveal {
		v.PrivateKey = w.PrivateKey
	}
	return v
}

// parseReveal reads the comma separated ?reveal= id list.
func parseReveal(r *http.Request) map[string]bool {
	ids := make(map[string]bool)
	for _, id := range strings.Split(r.URL.Query().Get("reveal"), ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids[id] = true
		}
	}
	return ids
}

// ListWallets handles GET /api/wallets. Private keys are masked unless the
// wallet id is listed in ?reveal=.
func ListWallets(svc *session.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wallets, err := svc.Wallets()
		if err != nil {
			if writeFlowError(w, err) {
				return
			}
			slog.Error("failed to list wallets", "error", err)
			writeError(w, http.StatusInternalServerError, config.ErrorDatabase, "failed to list wallets")
			return
		}

		reveal := parseReveal(r)
		views := make([]walletView, 0, len(wallets))
		for _, wl := range wallets {
			views = append(views, newWalletView(wl, reveal[wl.ID]))
		}

		writeJSON(w, http.StatusOK, models.APIResponse{
			Data: views,
			Meta: &models.APIMeta{
				Total:         int64(len(views)),
				ExecutionTime: time.Since(start).Milliseconds(),
			},
		})
	}
}

// GenerateWallet handles POST /api/wallets.
func GenerateWallet(svc *session.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		created, err := svc.GenerateWallet()
		if err != nil {
			if writeFlowError(w, err) {
				return
			}
			// A stored network that no longer parses lands here too.
			slog.Error("failed to generate wallet", "error", err)
			writeError(w, http.StatusInternalServerError, config.ErrorWalletGeneration, "failed to generate wallet")
			return
		}

		writeJSON(w, http.StatusCreated, models.APIResponse{
			Data: newWalletView(created, false),
		})
	}
}

// DeleteWallets handles DELETE /api/wallets.
func DeleteWallets(svc *session.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.DeleteAllWallets(); err != nil {
			if writeFlowError(w, err) {
				return
			}
			slog.Error("failed to delete wallets", "error", err)
			writeError(w, http.StatusInternalServerError, config.ErrorDatabase, "failed to delete wallets")
			return
		}

		writeJSON(w, http.StatusOK, models.APIResponse{
			Data: map[string]int{"walletCount": 0},
		})
	}
}

// ExportWallets handles GET /api/wallets/export as a text attachment.
func ExportWallets(svc *session.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filename, content, err := svc.Export()
		if err != nil {
			if writeFlowError(w, err) {
				return
			}
			slog.Error("failed to export wallets", "error", err)
			writeError(w, http.StatusInternalServerError, config.ErrorExportFailed, "failed to export wallets")
			return
		}

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		w.Header().Set("Cache-Control", "no-store")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(content)); err != nil {
			slog.Error("failed to write export", "error", err)
		}
	}
}

// WalletQR handles GET /api/wallets/{id}/qr, a PNG of the public key.
func WalletQR(svc *session.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		found, err := svc.Wallet(id)
		if err != nil {
			if writeFlowError(w, err) {
				return
			}
			slog.Error("failed to load wallet", "id", id, "error", err)
			writeError(w, http.StatusInternalServerError, config.ErrorDatabase, "failed to load wallet")
			return
		}

		png, err := wallet.QRCodePNG(found.PublicKey, config.QRCodeSize)
		if err != nil {
			slog.Error("failed to render QR code", "id", id, "error", err)
			writeError(w, http.StatusInternalServerError, config.ErrorWalletGeneration, "failed to render QR code")
			return
		}

		w.Header().Set("Content-Type", "image/png")
		w.WriteHeader(http.StatusOK)
		w.Write(png)
	}
}
