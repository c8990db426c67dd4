// Package auth enforces bearer-token authentication and resolves the tenant
// and user identity for downstream handlers.
package auth

import (
	"log/slog"
	"net/http"
	"strings"

	id "shiftwise/pkg/domain"
	dErrors "shiftwise/pkg/domain-errors"
	"shiftwise/pkg/platform/audit/observability"
	"shiftwise/pkg/platform/httputil"
	"shiftwise/pkg/requestcontext"
)

// IdentityValidator turns a bearer token into a tenant/user identity.
type IdentityValidator interface {
	IdentityFromToken(token string) (id.TenantID, id.UserID, error)
}

// Option configures the auth middleware.
type Option func(*settings)

type settings struct {
	emitter observability.Emitter
}

// WithAuditEmitter records rejected tokens in the audit pipeline.
func WithAuditEmitter(emitter observability.Emitter) Option {
	return func(s *settings) {
		s.emitter = emitter
	}
}

// RequireAuth rejects requests without a valid bearer token and stores the
// resolved identity in the request context.
func RequireAuth(validator IdentityValidator, logger *slog.Logger, opts ...Option) func(http.Handler) http.Handler {
	var cfg settings
	for _, opt := range opts {
		opt(&cfg)
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			authHeader := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok || token == "" {
				observability.LogAudit(ctx, logger, cfg.emitter, "auth_token_missing",
					"path", r.URL.Path,
					"reason", "missing or malformed Authorization header",
				)
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "missing or invalid Authorization header"))
				return
			}

			tenantID, userID, err := validator.IdentityFromToken(token)
			if err != nil {
				observability.LogAudit(ctx, logger, cfg.emitter, "auth_token_rejected",
					"path", r.URL.Path,
					"reason", err.Error(),
				)
				httputil.WriteError(w, err)
				return
			}

			ctx = requestcontext.WithTenantID(ctx, tenantID)
			ctx = requestcontext.WithUserID(ctx, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
