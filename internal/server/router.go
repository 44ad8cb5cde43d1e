// Package server assembles the HTTP API of the roster service.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/GLee998/church-database-bot/internal/metrics"
	"github.com/GLee998/church-database-bot/internal/server/handlers"
	"github.com/GLee998/church-database-bot/internal/server/jwt"
	"github.com/GLee998/church-database-bot/internal/server/middleware"
)

// Options зависимости и параметры HTTP API
type Options struct {
	Roster         handlers.Roster
	Tokens         *jwt.Service
	Access         *middleware.Access
	Limiter        *middleware.RateLimiter // nil - без ограничения
	Metrics        *metrics.Metrics
	Gatherer       prometheus.Gatherer // nil - без /metrics
	Logger         *slog.Logger
	Version        string
	AllowedOrigins []string
}

// NewRouter builds the HTTP handler: public health and metrics, everything else behind JWT auth.
func NewRouter(opts Options) http.Handler {
	logger := opts.Logger

	health := handlers.NewHealthHandler(logger, opts.Roster, opts.Version)
	rh := handlers.NewRosterHandler(logger, opts.Roster)
	events := handlers.NewEventsHandler(logger, opts.Roster, opts.AllowedOrigins)

	router := chi.NewRouter()
	router.Use(chimiddleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger, opts.Metrics, "/api/v1/health", "/metrics"))

	if len(opts.AllowedOrigins) > 0 {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins: opts.AllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders: []string{"X-Request-ID"},
			MaxAge:         300,
		}))
	}

	if opts.Gatherer != nil {
		router.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))
	}

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", health.Health)

		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthMiddleware(logger, opts.Tokens, opts.Access))
			if opts.Limiter != nil {
				r.Use(opts.Limiter.Middleware)
			}

			r.Get("/schema", rh.Schema)
			r.Get("/search", rh.Search)
			r.Post("/ask", rh.Ask)

			r.Route("/records", func(r chi.Router) {
				r.Post("/", rh.CreateRecord)
				r.Get("/{id}", rh.GetRecord)
				r.Put("/{id}", rh.UpdateRecord)
			})

			r.Get("/letters", rh.Letters)
			r.Get("/letters/{letter}", rh.ByLetter)
			r.Get("/groups", rh.Groups)
			r.Get("/birthdays", rh.Birthdays)
			r.Get("/status", rh.Status)
			r.Get("/events", events.Events)

			r.With(middleware.RequireAdmin(logger, opts.Access)).Post("/sync", rh.Sync)
		})
	})

	return router
}

// Serve runs srv until ctx is done, then shuts it down within shutdownTimeout.
func Serve(ctx context.Context, srv *http.Server, shutdownTimeout time.Duration, logger *slog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	logger.Info("Shutting down HTTP server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}
