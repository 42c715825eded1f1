package api

import (
	"io/fs"
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/adityajha77/nebula-web-wallet/internal/api/handlers"
	"github.com/adityajha77/nebula-web-wallet/internal/api/middleware"
	"github.com/adityajha77/nebula-web-wallet/internal/config"
	"github.com/adityajha77/nebula-web-wallet/internal/session"
)

// Version is set at build time via ldflags.
var Version = "dev"

// NewRouter creates and configures the Chi router with all middleware and routes.
// staticFS may be nil, in which case only the API is served.
func NewRouter(svc *session.Service, cfg *config.Config, staticFS fs.FS) chi.Router {
	r := chi.NewRouter()

	// Order matters: log everything, reject foreign hosts before any work.
	r.Use(middleware.RequestLogging)
	r.Use(middleware.HostCheck)
	r.Use(middleware.CORS)
	r.Use(middleware.CSRF)

	slog.Info("router initialized",
		"middleware", []string{"requestLogging", "hostCheck", "cors", "csrf"},
		"generateRPS", cfg.GenerateRPS,
	)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.HealthHandler(cfg, Version))

		r.Route("/session", func(r chi.Router) {
			r.Get("/", handlers.GetSession(svc))
			r.Delete("/", handlers.ResetSession(svc))
			r.Put("/theme", handlers.SetTheme(svc))
		})

		r.Post("/network", handlers.SelectNetwork(svc))

		r.Route("/phrase", func(r chi.Router) {
			r.Get("/new", handlers.NewPhrase(svc))
			r.Post("/", handlers.AcknowledgePhrase(svc))
		})

		r.Route("/wallets", func(r chi.Router) {
			r.Get("/", handlers.ListWallets(svc))
			r.With(middleware.RateLimit("generateWallet", cfg.GenerateRPS)).Post("/", handlers.GenerateWallet(svc))
			r.Delete("/", handlers.DeleteWallets(svc))
			r.Get("/export", handlers.ExportWallets(svc))
			r.Get("/{id}/qr", handlers.WalletQR(svc))
		})
	})

	if staticFS != nil {
		r.NotFound(handlers.SPAHandler(staticFS))
	}

	return r
}
