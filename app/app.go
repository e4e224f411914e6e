package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"

	"github.com/baldecash-team/baldecash-sub002/internal/config"
	"github.com/baldecash-team/baldecash-sub002/internal/filter"
	"github.com/baldecash-team/baldecash-sub002/internal/handlers"
	"github.com/baldecash-team/baldecash-sub002/internal/logging"
	"github.com/baldecash-team/baldecash-sub002/internal/pricing"
	"github.com/baldecash-team/baldecash-sub002/internal/resolver"
	"github.com/baldecash-team/baldecash-sub002/internal/selection"
	"github.com/baldecash-team/baldecash-sub002/internal/session"
	"github.com/baldecash-team/baldecash-sub002/internal/store"
)

type App struct {
	Config         *config.Config
	Logger         *slog.Logger
	StoreProvider  store.Provider
	SessionManager *session.Manager
	Handlers       *handlers.Handlers
}

func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := newLogger(cfg)

	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	storeProvider, err := store.NewProvider(startupCtx, store.Config{
		Provider:      cfg.StoreProvider,
		RedisAddr:     cfg.RedisAddr,
		RedisPassword: cfg.RedisPassword,
		RedisDB:       cfg.RedisDB,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize store provider: %w", err)
	}

	sessionStore, err := session.NewStore(startupCtx, session.Config{
		Provider:      cfg.SessionStoreProvider,
		RedisAddr:     cfg.RedisAddr,
		RedisPassword: cfg.RedisPassword,
		RedisDB:       cfg.RedisDB,
	})
	if err != nil {
		closeStoreProvider(logger, storeProvider)
		return nil, fmt.Errorf("failed to initialize session store: %w", err)
	}
	sessionManager := session.NewManager(sessionStore, handlers.SecureCookiesFromConfig(cfg))

	pricer := pricing.NewEngine()
	client := resolver.NewClient(cfg.CatalogAPIBaseURL, cfg.LandingSlug, cfg.ListPageSize)
	productResolver := resolver.New(
		client,
		pricer,
		cfg.DefaultTermMonths,
		cfg.DefaultDownPaymentPercent,
		logger.With("component", "resolver"),
	)
	filterEngine := filter.NewEngine(pricer, cfg.DefaultTermMonths, cfg.DefaultDownPaymentPercent)
	guard := selection.NewGuard(pricer, selection.GuardConfig{
		MaxCartItems:     cfg.MaxCartItems,
		CartQuotaCeiling: cfg.CartQuotaCeiling,
		MaxCompareItems:  cfg.MaxCompareItems,
		TermMonths:       cfg.DefaultTermMonths,
		DownPaymentPct:   cfg.DefaultDownPaymentPercent,
	})
	selections := store.NewSelectionStore(storeProvider, logger.With("component", "selection_store"))

	h, err := handlers.New(handlers.Dependencies{
		Config:         cfg,
		Resolver:       productResolver,
		FilterEngine:   filterEngine,
		Pricer:         pricer,
		Guard:          guard,
		Selections:     selections,
		SessionManager: sessionManager,
		Logger:         logger,
	})
	if err != nil {
		closeSessionManager(logger, sessionManager)
		closeStoreProvider(logger, storeProvider)
		return nil, fmt.Errorf("failed to initialize handlers: %w", err)
	}

	return &App{
		Config:         cfg,
		Logger:         logger,
		StoreProvider:  storeProvider,
		SessionManager: sessionManager,
		Handlers:       h,
	}, nil
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.SessionManager != nil {
		closeSessionManager(a.Logger, a.SessionManager)
	}
	if a.StoreProvider != nil {
		closeStoreProvider(a.Logger, a.StoreProvider)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}

	format := strings.ToLower(strings.TrimSpace(cfg.LogFormat))
	switch format {
	case "json":
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	case "multi":
		// Tinted console output plus machine-readable JSON on stderr, for
		// local runs that still feed a log shipper.
		return slog.New(logging.MultiHandler(
			tint.NewHandler(os.Stdout, &tint.Options{Level: cfg.LogLevel}),
			slog.NewJSONHandler(os.Stderr, opts),
		))
	case "text", "":
		return slog.New(tint.NewHandler(os.Stdout, &tint.Options{
			Level: cfg.LogLevel,
		}))
	}
	return slog.New(tint.NewHandler(os.Stdout, &tint.Options{Level: cfg.LogLevel}))
}

func closeSessionManager(logger *slog.Logger, manager *session.Manager) {
	if manager == nil {
		return
	}
	if err := manager.Close(); err != nil && logger != nil {
		logger.Warn("failed to close session manager", "error", err)
	}
}

func closeStoreProvider(logger *slog.Logger, provider store.Provider) {
	if provider == nil {
		return
	}
	if err := provider.Close(); err != nil && logger != nil {
		logger.Warn("failed to close store provider", "error", err)
	}
}
