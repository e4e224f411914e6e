package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/baldecash-team/baldecash-sub002/internal/config"
	"github.com/baldecash-team/baldecash-sub002/internal/filter"
	"github.com/baldecash-team/baldecash-sub002/internal/logging"
	"github.com/baldecash-team/baldecash-sub002/internal/pricing"
	"github.com/baldecash-team/baldecash-sub002/internal/resolver"
	"github.com/baldecash-team/baldecash-sub002/internal/selection"
	"github.com/baldecash-team/baldecash-sub002/internal/session"
	"github.com/baldecash-team/baldecash-sub002/internal/store"
)

// Handlers provides HTTP request handlers for the financed-device catalog API.
type Handlers struct {
	config         *config.Config
	resolver       *resolver.Resolver
	filterEngine   *filter.Engine
	pricer         *pricing.Engine
	guard          *selection.Guard
	selections     *store.SelectionStore
	sessionManager *session.Manager
	logger         *slog.Logger
}

type Dependencies struct {
	Config         *config.Config
	Resolver       *resolver.Resolver
	FilterEngine   *filter.Engine
	Pricer         *pricing.Engine
	Guard          *selection.Guard
	Selections     *store.SelectionStore
	SessionManager *session.Manager
	Logger         *slog.Logger
}

func New(deps Dependencies) (*Handlers, error) {
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	if deps.Config == nil {
		return nil, fmt.Errorf("handlers dependencies: config is required")
	}
	if deps.Resolver == nil {
		return nil, fmt.Errorf("handlers dependencies: resolver is required")
	}
	if deps.FilterEngine == nil {
		return nil, fmt.Errorf("handlers dependencies: filterEngine is required")
	}
	if deps.Pricer == nil {
		return nil, fmt.Errorf("handlers dependencies: pricer is required")
	}
	if deps.Guard == nil {
		return nil, fmt.Errorf("handlers dependencies: guard is required")
	}
	if deps.Selections == nil {
		return nil, fmt.Errorf("handlers dependencies: selections is required")
	}
	if deps.SessionManager == nil {
		return nil, fmt.Errorf("handlers dependencies: sessionManager is required")
	}

	return &Handlers{
		config:         deps.Config,
		resolver:       deps.Resolver,
		filterEngine:   deps.FilterEngine,
		pricer:         deps.Pricer,
		guard:          deps.Guard,
		selections:     deps.Selections,
		sessionManager: deps.SessionManager,
		logger:         logger.With("component", "handlers"),
	}, nil
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(r.Context(), w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}

// SessionMiddleware guarantees every request carries a shopper session.
func (h *Handlers) SessionMiddleware(next http.Handler) http.Handler {
	return h.sessionManager.EnsureSession(next)
}

func (h *Handlers) loggerFromContext(ctx context.Context) *slog.Logger {
	return logging.FromContext(ctx, h.logger)
}

func (h *Handlers) writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.loggerFromContext(ctx).Error("failed to encode response", "error", err)
	}
}

func (h *Handlers) writeError(ctx context.Context, w http.ResponseWriter, status int, message string) {
	h.writeJSON(ctx, w, status, map[string]string{"error": message})
}

func SecureCookiesFromConfig(cfg *config.Config) bool {
	if cfg == nil {
		return false
	}

	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL != "" {
		if parsed, err := url.Parse(baseURL); err == nil {
			return strings.EqualFold(parsed.Scheme, "https")
		}
	}

	return cfg.Port == "443" || cfg.Port == "8443"
}
