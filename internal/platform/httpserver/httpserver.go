package httpserver

import (
	"net/http"
	"time"

	"scaffold/internal/platform/config"
)

// New builds an HTTP server with the project's timeouts. Write timeout leaves
// headroom over the per-request timeout so the timeout middleware answers first.
func New(cfg config.Server, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       cfg.RequestTimeout,
		WriteTimeout:      cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
