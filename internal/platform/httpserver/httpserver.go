// Package httpserver constructs the HTTP server with project defaults.
package httpserver

import (
	"net/http"
	"time"
)

// New builds the API server. Read and idle timeouts bound slow clients;
// evaluate requests can take a while for large windows, so the write timeout
// stays generous.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
