// Package request assigns a correlation ID to every incoming request.
package request

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"shiftwise/pkg/requestcontext"
)

// HeaderRequestID is the response header carrying the correlation ID.
const HeaderRequestID = "X-Request-ID"

// Middleware accepts an inbound X-Request-ID or generates one, stores it in
// the context, and echoes it on the response so clients can correlate logs.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(HeaderRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		ctx := requestcontext.WithRequestID(r.Context(), requestID)
		w.Header().Set(HeaderRequestID, requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetRequestID returns the correlation ID from the context, or "".
func GetRequestID(ctx context.Context) string {
	return requestcontext.RequestID(ctx)
}
