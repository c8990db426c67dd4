// Package requestcontext provides HTTP-independent context accessors for
// request-scoped values.
//
// Middleware sets these values; services read them without importing net/http.
// Tests inject fixed values (notably a fixed "now") to keep time-sensitive
// assertions deterministic:
//
//	ctx = requestcontext.WithTime(ctx, fixedTime)
//	ctx = requestcontext.WithUserID(ctx, userID)
package requestcontext

import (
	"context"
	"time"

	id "shiftwise/pkg/domain"
)

type (
	userIDKey      struct{}
	tenantIDKey    struct{}
	requestIDKey   struct{}
	requestTimeKey struct{}
	clientIPKey    struct{}
	userAgentKey   struct{}
)

// WithUserID stores the authenticated user ID.
func WithUserID(ctx context.Context, userID id.UserID) context.Context {
	return context.WithValue(ctx, userIDKey{}, userID)
}

// UserID returns the authenticated user ID, or the zero value when absent.
func UserID(ctx context.Context) id.UserID {
	uid, _ := ctx.Value(userIDKey{}).(id.UserID)
	return uid
}

// WithTenantID stores the tenant the request is scoped to.
func WithTenantID(ctx context.Context, tenantID id.TenantID) context.Context {
	return context.WithValue(ctx, tenantIDKey{}, tenantID)
}

// TenantID returns the request's tenant ID, or the zero value when absent.
func TenantID(ctx context.Context) id.TenantID {
	tid, _ := ctx.Value(tenantIDKey{}).(id.TenantID)
	return tid
}

// WithRequestID stores the correlation ID assigned to this request.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// RequestID returns the correlation ID, or "" when absent.
func RequestID(ctx context.Context) string {
	rid, _ := ctx.Value(requestIDKey{}).(string)
	return rid
}

// WithTime pins "now" for the remainder of the request so every timestamp
// recorded during one request agrees.
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, requestTimeKey{}, t)
}

// Now returns the request-scoped time, falling back to time.Now when no
// middleware pinned one (background jobs, tests that don't care).
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(requestTimeKey{}).(time.Time); ok {
		return t
	}
	return time.Now()
}

// WithClientMetadata stores the caller's network address and a compact
// user-agent description for audit enrichment.
func WithClientMetadata(ctx context.Context, clientIP, userAgent string) context.Context {
	ctx = context.WithValue(ctx, clientIPKey{}, clientIP)
	return context.WithValue(ctx, userAgentKey{}, userAgent)
}

// ClientIP returns the caller's IP address, or "" when absent.
func ClientIP(ctx context.Context) string {
	ip, _ := ctx.Value(clientIPKey{}).(string)
	return ip
}

// UserAgent returns the compact user-agent description, or "" when absent.
func UserAgent(ctx context.Context) string {
	ua, _ := ctx.Value(userAgentKey{}).(string)
	return ua
}
