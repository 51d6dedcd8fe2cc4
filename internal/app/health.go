package app

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/florianilch/agency/internal/server"
)

// Health is the readiness flag behind the server's readiness probe. It starts
// not ready, flips to ready once the listener is up, and back when shutdown
// begins so traffic drains before connections close.
type Health struct {
	ready atomic.Bool
}

var _ server.ReadinessChecker = (*Health)(nil)

// NewHealth creates a Health that is not ready.
func NewHealth() *Health {
	return &Health{}
}

// SetReady updates readiness and logs transitions.
func (h *Health) SetReady(ctx context.Context, ready bool) {
	if h.ready.Swap(ready) == ready {
		return
	}
	slog.InfoContext(ctx, "readiness changed", "ready", ready)
}

// IsReady reports whether the server should receive conversion traffic.
func (h *Health) IsReady() bool {
	return h.ready.Load()
}
