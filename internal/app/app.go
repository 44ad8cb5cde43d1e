// Package app wires configuration into a running roster server.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"github.com/GLee998/church-database-bot/internal/cache"
	"github.com/GLee998/church-database-bot/internal/cache/boltdb"
	"github.com/GLee998/church-database-bot/internal/config"
	"github.com/GLee998/church-database-bot/internal/intent"
	"github.com/GLee998/church-database-bot/internal/intent/anthropic"
	"github.com/GLee998/church-database-bot/internal/intent/gemini"
	"github.com/GLee998/church-database-bot/internal/metrics"
	"github.com/GLee998/church-database-bot/internal/models"
	"github.com/GLee998/church-database-bot/internal/query"
	"github.com/GLee998/church-database-bot/internal/remote"
	"github.com/GLee998/church-database-bot/internal/remote/sheets"
	"github.com/GLee998/church-database-bot/internal/remote/sqlite"
	"github.com/GLee998/church-database-bot/internal/roster"
	"github.com/GLee998/church-database-bot/internal/server"
	"github.com/GLee998/church-database-bot/internal/server/jwt"
	"github.com/GLee998/church-database-bot/internal/server/middleware"
	"github.com/GLee998/church-database-bot/internal/validation"
	"github.com/GLee998/church-database-bot/internal/write"
)

// App собранный сервер: хранилище, зеркало, ядро и HTTP API
type App struct {
	cfg     *config.Config
	logger  *slog.Logger
	Schema  *models.Schema
	Backend remote.Store
	Manager *cache.Manager
	Roster  *roster.Service
	Tokens  *jwt.Service
	limiter *middleware.RateLimiter
	http    *http.Server
	closers []io.Closer
}

// Options дополнительные зависимости, подменяемые в тестах
type Options struct {
	// Intent заменяет AI провайдера из конфигурации
	Intent intent.Service
	// Registry реестр метрик; nil - новый с метриками рантайма
	Registry *prometheus.Registry
	Version  string
}

// New builds the application. Nothing is started until Run.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger, opts Options) (_ *App, err error) {
	a := &App{cfg: cfg, logger: logger}
	defer func() {
		if err != nil {
			_ = a.Close()
		}
	}()

	reg := opts.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	m := metrics.New(reg)

	a.Schema = models.NewSchema(cfg.Roster.Groups, cfg.Roster.Statuses, cfg.Roster.UnassignedGroup)

	a.Backend, err = a.openBackend(ctx)
	if err != nil {
		return nil, err
	}
	store := remote.NewRetrying(a.Backend, remote.RetryConfig{
		CallTimeout:      cfg.Remote.CallTimeout,
		BaseBackoff:      cfg.Remote.BaseBackoff,
		MaxBackoff:       cfg.Remote.MaxBackoff,
		BreakerTimeout:   cfg.Remote.BreakerTimeout,
		ReadAttempts:     cfg.Remote.ReadAttempts,
		WriteAttempts:    cfg.Remote.WriteAttempts,
		BreakerThreshold: cfg.Remote.BreakerThreshold,
	}, logger.With("component", "remote"), m)

	var spool cache.Spool
	if cfg.Backend.SpoolPath != "" {
		s, err := boltdb.New(cfg.Backend.SpoolPath)
		if err != nil {
			return nil, fmt.Errorf("open spool: %w", err)
		}
		a.closers = append(a.closers, s)
		spool = s
	}

	a.Manager = cache.NewManager(store, a.Schema, spool, cache.Config{
		Interval:   cfg.Sync.Interval,
		StaleAfter: cfg.Sync.StaleAfter,
	}, logger.With("component", "cache"), m)

	provider := opts.Intent
	if provider == nil {
		if provider, err = openProvider(ctx, cfg.Intent); err != nil {
			return nil, err
		}
	}
	resolver := intent.NewResolver(provider, a.Schema, intent.Config{
		Timeout:          cfg.Intent.Timeout,
		RatePerSecond:    cfg.Intent.RatePerSecond,
		Burst:            cfg.Intent.Burst,
		BreakerThreshold: cfg.Intent.BreakerThreshold,
		BreakerTimeout:   cfg.Intent.BreakerTimeout,
	}, logger.With("component", "intent"), m)

	executor := query.NewExecutor(a.Schema, cfg.Location(), cfg.Roster.Similarity)
	coordinator := write.NewCoordinator(store, a.Manager, validation.New(a.Schema), write.Config{
		MaxBaseAge:    cfg.Roster.MaxWriteBaseAge,
		CommitTimeout: cfg.Roster.CommitTimeout,
	}, logger.With("component", "write"), m)

	a.Roster = roster.New(a.Manager, resolver, executor, coordinator, logger.With("component", "roster"))
	a.Tokens = jwt.NewService(cfg.Auth.Secret, cfg.Auth.TokenTTL)

	if cfg.Server.RatePerSecond > 0 {
		a.limiter = middleware.NewRateLimiter(cfg.Server.RatePerSecond, cfg.Server.RateBurst, logger)
	}

	handler := server.NewRouter(server.Options{
		Roster:         a.Roster,
		Tokens:         a.Tokens,
		Access:         middleware.NewAccess(cfg.Auth.AllowedUsers, cfg.Auth.Admins),
		Limiter:        a.limiter,
		Metrics:        m,
		Gatherer:       reg,
		Logger:         logger.With("component", "http"),
		Version:        opts.Version,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	})

	a.http = &http.Server{
		Addr:              cfg.Server.Address,
		Handler:           handler,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
	}
	return a, nil
}

func (a *App) openBackend(ctx context.Context) (remote.Store, error) {
	switch a.cfg.Backend.Kind {
	case "sheets":
		store, err := sheets.New(ctx, sheets.Config{
			SpreadsheetID:   a.cfg.Backend.Sheets.SpreadsheetID,
			Sheet:           a.cfg.Backend.Sheets.Sheet,
			CredentialsFile: a.cfg.Backend.Sheets.CredentialsFile,
		}, a.Schema, a.logger.With("component", "sheets"))
		if err != nil {
			return nil, fmt.Errorf("open sheets backend: %w", err)
		}
		return store, nil
	case "sqlite":
		store, err := sqlite.New(ctx, a.cfg.Backend.SQLite.Path, a.Schema)
		if err != nil {
			return nil, fmt.Errorf("open sqlite backend: %w", err)
		}
		a.closers = append(a.closers, store)
		return store, nil
	default:
		return nil, fmt.Errorf("unknown backend kind %q", a.cfg.Backend.Kind)
	}
}

func openProvider(ctx context.Context, cfg config.IntentConfig) (intent.Service, error) {
	switch cfg.Provider {
	case "anthropic":
		return anthropic.New(cfg.APIKey, cfg.Model, cfg.BaseURL)
	case "gemini":
		return gemini.New(ctx, cfg.APIKey, cfg.Model, cfg.BaseURL)
	default:
		return nil, fmt.Errorf("unknown intent provider %q", cfg.Provider)
	}
}

// Handler returns the HTTP handler. Intended for tests.
func (a *App) Handler() http.Handler {
	return a.http.Handler
}

// Run loads the spooled snapshot, then serves HTTP and keeps the mirror in sync until ctx is done.
func (a *App) Run(ctx context.Context) error {
	if err := a.Manager.WarmStart(ctx); err != nil {
		a.logger.Warn("Warm start failed, waiting for first sync", "error", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return a.Manager.Run(gctx)
	})
	g.Go(func() error {
		return server.Serve(gctx, a.http, a.cfg.Server.ShutdownTimeout, a.logger)
	})
	return g.Wait()
}

// Close releases the backend and the spool.
func (a *App) Close() error {
	if a.limiter != nil {
		a.limiter.Stop()
		a.limiter = nil
	}

	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
