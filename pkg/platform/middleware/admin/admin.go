// Package admin gates operator endpoints behind a shared admin token.
package admin

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	"shiftwise/pkg/platform/audit/observability"
)

// Option configures the admin token middleware.
type Option func(*settings)

type settings struct {
	emitter observability.Emitter
}

// WithAuditEmitter records rejected admin tokens in the audit pipeline.
func WithAuditEmitter(emitter observability.Emitter) Option {
	return func(s *settings) {
		s.emitter = emitter
	}
}

// RequireAdminToken rejects requests whose X-Admin-Token header does not match
// the configured token. Comparison is constant-time.
func RequireAdminToken(expectedToken string, logger *slog.Logger, opts ...Option) func(http.Handler) http.Handler {
	var cfg settings
	for _, opt := range opts {
		opt(&cfg)
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get("X-Admin-Token")
			if subtle.ConstantTimeCompare([]byte(token), []byte(expectedToken)) != 1 {
				observability.LogAudit(r.Context(), logger, cfg.emitter, "admin_token_rejected",
					"path", r.URL.Path,
					"reason", "admin token mismatch",
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				_, _ = w.Write([]byte(`{"error":"forbidden","error_description":"admin token required"}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
