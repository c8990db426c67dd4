// Package requesttime pins a single "now" per HTTP request.
// All operations within one request observe the same timestamp, which keeps
// audit records and window calculations internally consistent.
package requesttime

import (
	"net/http"
	"time"

	"shiftwise/pkg/requestcontext"
)

// Middleware captures the current time at the start of the request and stores
// it in the context. Read it back with requestcontext.Now(ctx).
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := requestcontext.WithTime(r.Context(), time.Now())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
