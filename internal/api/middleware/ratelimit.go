package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"golang.org/x/time/rate"

	"github.com/adityajha77/nebula-web-wallet/internal/config"
	"github.com/adityajha77/nebula-web-wallet/internal/models"
)

// RateLimit rejects requests with 429 once the token bucket of rps requests
// per second (burst rps) is exhausted. The bucket is shared by every route
// the middleware wraps.
func RateLimit(name string, rps int) func(http.Handler) http.Handler {
	limiter := rate.NewLimiter(rate.Limit(rps), rps)

	slog.Debug("rate limiter created",
		"route", name,
		"rps", rps,
	)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				slog.Warn("rate limit exceeded",
					"route", name,
					"method", r.Method,
					"path", r.URL.Path,
					"remoteAddr", r.RemoteAddr,
				)
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("Retry-After", "1")
				w.WriteHeader(http.StatusTooManyRequests)
				json.NewEncoder(w).Encode(models.APIError{
					Error: models.APIErrorDetail{
						Code:    config.ErrorRateLimited,
						Message: "too many requests, slow down",
					},
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
