// Package server wires the router and runs the HTTP listener.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/openbiodata/beacon-api/internal/api"
	"github.com/openbiodata/beacon-api/internal/beacon/catalog"
	"github.com/openbiodata/beacon-api/internal/core/config"
	"github.com/openbiodata/beacon-api/internal/core/health"
	"github.com/openbiodata/beacon-api/internal/core/middleware"
)

// Router assembles the full route table for the beacon API.
func Router(cfg config.Config, logger *slog.Logger, a *api.API, readiness ...health.Pinger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recover())
	r.Use(middleware.Logging(logger))
	r.Use(middleware.Metrics())
	r.Use(middleware.CORS(cfg.CORSOrigins))

	r.Get("/healthz", health.Liveness())
	r.Get("/readyz", health.Readiness(readiness...))
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	r.Get("/", a.Root())
	r.Get("/api/info", a.Info())
	r.Get("/api/configuration", a.Configuration())
	r.Get("/api/entry_types", a.EntryTypes())
	r.Get("/api/map", a.Map())
	r.Get("/api/monitor/health", a.MonitorHealth())

	for _, et := range catalog.EntryTypes {
		r.Get(et.RootPath, a.List(et))
		r.Post(et.RootPath, a.Query(et))
		if et.SinglePath != "" {
			r.Get(et.SinglePath, a.GetOne(et))
		}
	}

	return r
}

// Run starts the HTTP server and blocks until ctx is cancelled or the
// listener fails.
func Run(ctx context.Context, cfg config.Config, logger *slog.Logger, handler http.Handler) error {
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http listen", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		return nil
	case err := <-errCh:
		return err
	}
}
