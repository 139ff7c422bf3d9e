package httpserver

import (
	"net/http"
	"time"
)

// New builds an HTTP server with sane defaults. The client itself makes
// outbound calls only; this serves auxiliary endpoints such as metrics.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
