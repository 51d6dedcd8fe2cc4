// Package server exposes the conversion service over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/florianilch/agency/internal/convert"
	"github.com/florianilch/agency/internal/observability/middleware"
	"github.com/florianilch/agency/types"
)

// DefaultMaxRequestBytes bounds request bodies when no limit is configured.
const DefaultMaxRequestBytes int64 = 10 << 20

// Converter converts a document from one schema to the other.
type Converter interface {
	Convert(ctx context.Context, from types.Provider, doc convert.Document) (*convert.Document, error)
}

// ReadinessChecker reports whether the application can serve traffic.
type ReadinessChecker interface {
	IsReady() bool
}

// Server serves the conversion endpoints and health probes.
type Server struct {
	handler http.Handler

	mu       sync.Mutex
	server   *http.Server
	listener net.Listener
}

type options struct {
	maxRequestBytes int64
	logger          *slog.Logger
}

// Option configures a Server.
type Option func(*options)

// WithMaxRequestBytes limits request body size. Non-positive values keep the default.
func WithMaxRequestBytes(n int64) Option {
	return func(o *options) {
		if n > 0 {
			o.maxRequestBytes = n
		}
	}
}

// WithLogger sets the request logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// New creates a Server. It does not listen until Start is called.
func New(converter Converter, health ReadinessChecker, opts ...Option) (*Server, error) {
	if converter == nil {
		return nil, errors.New("converter is required")
	}
	if health == nil {
		return nil, errors.New("readiness checker is required")
	}

	o := options{
		maxRequestBytes: DefaultMaxRequestBytes,
		logger:          slog.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	mux := http.NewServeMux()
	mux.Handle("POST /v1/convert/openai-to-anthropic", &ConvertHandler{
		Converter: converter,
		From:      types.ProviderOpenAI,
	})
	mux.Handle("POST /v1/convert/anthropic-to-openai", &ConvertHandler{
		Converter: converter,
		From:      types.ProviderAnthropic,
	})
	mux.Handle("GET /health/liveness", livenessHandler())
	mux.Handle("GET /health/readiness", readinessHandler(health))

	// Request ID and trace context are established before Logging so the request
	// log and every record logged below it carry them.
	handler := applyMiddlewares(mux,
		middleware.RequestIDGeneration,
		middleware.TraceContextExtraction,
		middleware.Logging(o.logger),
		middleware.RequestIDPropagation,
		Recovery,
		RequestSizeLimit(o.maxRequestBytes),
	)

	return &Server{handler: handler}, nil
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start listens on addr and serves in the background. The returned channel
// receives a runtime error, if any, and is closed when serving stops.
func (s *Server) Start(ctx context.Context, addr string) (<-chan error, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.server != nil {
		return nil, errors.New("server already started")
	}

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", addr, err)
	}

	s.listener = listener
	s.server = &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		// Request contexts keep the caller's values but are not cancelled with it;
		// in-flight requests are drained by Shutdown instead.
		BaseContext: func(net.Listener) context.Context {
			return context.WithoutCancel(ctx)
		},
	}

	errCh := make(chan error, 1)
	go func(srv *http.Server) {
		defer close(errCh)
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}(s.server)

	slog.InfoContext(ctx, "server listening", "addr", listener.Addr().String())
	return errCh, nil
}

// Addr returns the listening address, or "" before Start.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Shutdown gracefully stops the server, waiting for in-flight requests until ctx
// is done.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	srv := s.server
	s.mu.Unlock()

	if srv == nil {
		return nil
	}

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}
