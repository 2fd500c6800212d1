package server

import (
	"context"
	"net/http"
)

// Server exposes sessions over HTTP and WebSocket.
type Server interface {
	Handler() http.Handler
	// Run serves until ctx is cancelled, then shuts down gracefully.
	Run(ctx context.Context) error
}
