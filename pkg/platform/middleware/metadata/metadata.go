// Package metadata captures client network metadata for audit enrichment.
package metadata

import (
	"fmt"
	"net"
	"net/http"
	"strings"

	"github.com/mssola/useragent"

	"shiftwise/pkg/requestcontext"
)

// ClientMetadata extracts the client IP and a compact user-agent summary from
// the request and stores both in the context. Apply early in the chain so
// downstream audit events can reference them.
func ClientMetadata(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := ClientIPFromRequest(r)
		ua := SummarizeUserAgent(r.Header.Get("User-Agent"))
		ctx := requestcontext.WithClientMetadata(r.Context(), ip, ua)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ClientIPFromRequest resolves the client IP, preferring X-Forwarded-For
// (first hop) over the socket address since the service runs behind a proxy.
func ClientIPFromRequest(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if idx := strings.IndexByte(fwd, ','); idx >= 0 {
			return strings.TrimSpace(fwd[:idx])
		}
		return strings.TrimSpace(fwd)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// SummarizeUserAgent reduces a raw User-Agent header to "Browser/Version (OS)"
// so audit records stay readable without storing the full header string.
func SummarizeUserAgent(raw string) string {
	if raw == "" {
		return ""
	}
	ua := useragent.New(raw)
	name, version := ua.Browser()
	if name == "" {
		return raw
	}
	if osInfo := ua.OS(); osInfo != "" {
		return fmt.Sprintf("%s/%s (%s)", name, version, osInfo)
	}
	return fmt.Sprintf("%s/%s", name, version)
}
