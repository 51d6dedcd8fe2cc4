package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/florianilch/agency/internal/config"
	"github.com/florianilch/agency/internal/convert"
	"github.com/florianilch/agency/internal/server"
)

// App orchestrates the lifecycle of the conversion server and related services.
type App struct {
	server          *server.Server
	health          *Health
	addr            string
	shutdownTimeout time.Duration
}

// New creates a new App instance from the server configuration.
func New(cfg config.ServerConfig) (*App, error) {
	health := NewHealth()

	srv, err := server.New(convert.NewService(), health,
		server.WithMaxRequestBytes(cfg.MaxRequestBytes),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create server: %w", err)
	}

	shutdownTimeout := cfg.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = 5 * time.Second
	}

	return &App{
		server:          srv,
		health:          health,
		addr:            cfg.Addr,
		shutdownTimeout: shutdownTimeout,
	}, nil
}

// Health returns the application's health state.
func (a *App) Health() *Health {
	return a.health
}

// Addr returns the server's listening address once started.
func (a *App) Addr() string {
	return a.server.Addr()
}

// Start starts all services and blocks until shutdown is triggered.
// Uses errgroup for runtime error monitoring and shutdown function collection for coordinated cleanup.
func (a *App) Start(ctx context.Context) error {
	g, gCtx := errgroup.WithContext(ctx)

	var shutdownFuncs []func(context.Context) error

	// Startup phase: Start services
	slog.InfoContext(gCtx, "starting conversion server")
	serverErrCh, err := a.server.Start(gCtx, a.addr)
	if err != nil {
		return fmt.Errorf("server startup failed: %w", err)
	}
	shutdownFuncs = append(shutdownFuncs, a.server.Shutdown)

	a.health.SetReady(gCtx, true)

	// Monitor runtime errors - errgroup cancels context on first error
	g.Go(func() error {
		select {
		case err, ok := <-serverErrCh:
			if ok && err != nil {
				slog.ErrorContext(gCtx, "server runtime error", "error", err)
				return fmt.Errorf("server: %w", err)
			}
			return nil
		case <-gCtx.Done():
			return nil
		}
	})

	runtimeErr := g.Wait()

	// Fail readiness first so load balancers stop routing before connections drain.
	a.health.SetReady(gCtx, false)
	slog.InfoContext(gCtx, "shutting down services")

	// Shutdown phase: Stop all services
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
	defer cancel()

	var errs []error
	if runtimeErr != nil {
		errs = append(errs, fmt.Errorf("runtime: %w", runtimeErr))
	}

	for i := len(shutdownFuncs) - 1; i >= 0; i-- {
		if err := shutdownFuncs[i](shutdownCtx); err != nil {
			slog.ErrorContext(shutdownCtx, "service shutdown failed", "error", err)
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	slog.Info("application stopped")
	return nil
}
