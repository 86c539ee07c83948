// Package httpserver builds the process HTTP server and its health endpoint.
package httpserver

import (
	"net/http"
	"time"

	"socialregistry/internal/platform/config"
)

// writeSlack keeps the write deadline past the request timeout so timed out
// handlers can still send their error response.
const writeSlack = 5 * time.Second

// New builds the HTTP server for cfg.
func New(cfg config.Server, handler http.Handler) *http.Server {
	writeTimeout := 60 * time.Second
	if cfg.RequestTimeout+writeSlack > writeTimeout {
		writeTimeout = cfg.RequestTimeout + writeSlack
	}
	return &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       120 * time.Second,
	}
}
