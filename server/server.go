package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/baldecash-team/baldecash-sub002/internal/config"
	"github.com/baldecash-team/baldecash-sub002/internal/handlers"
)

type Server struct {
	cfg        *config.Config
	logger     *slog.Logger
	handlers   *handlers.Handlers
	httpServer *http.Server
}

func New(cfg *config.Config, logger *slog.Logger, h *handlers.Handlers) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if h == nil {
		return nil, fmt.Errorf("handlers are required")
	}

	s := &Server{
		cfg:      cfg,
		logger:   logger,
		handlers: h,
	}

	router := s.buildRouter()
	s.httpServer = &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	return s, nil
}

func (s *Server) Run() error {
	s.logger.Info("server starting", "port", s.cfg.Port)

	err := s.httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) Close(ctx context.Context) error {
	if s == nil || s.httpServer == nil {
		return nil
	}

	s.logger.Info("server shutting down")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return err
	}
	s.logger.Info("server stopped")
	return nil
}

func (s *Server) buildRouter() *mux.Router {
	h := s.handlers

	r := mux.NewRouter()
	r.Use(h.RequestLogger)
	r.Use(h.SecurityHeaders)
	r.HandleFunc("/health", h.Health).Methods("GET").Name("health")

	r.HandleFunc("/landing/{slug}/products", h.ListProducts).Methods("GET").Name("products.list")
	r.HandleFunc("/landing/{slug}/products/{id}", h.GetProduct).Methods("GET").Name("products.detail")
	r.HandleFunc("/quote", h.Quote).Methods("GET").Name("quote")

	// Selection routes are session-scoped and mutate per-shopper state.
	selectionRouter := r.PathPrefix("/").Subrouter()
	selectionRouter.Use(h.SessionMiddleware)
	selectionRouter.Use(h.MetricsContext)
	selectionRouter.Use(h.RequireSameOrigin)
	selectionRouter.HandleFunc("/cart", h.GetCart).Methods("GET").Name("cart.get")
	selectionRouter.HandleFunc("/cart/items", h.AddToCart).Methods("POST").Name("cart.add")
	selectionRouter.HandleFunc("/cart/items/{id}", h.RemoveFromCart).Methods("DELETE").Name("cart.remove")
	selectionRouter.HandleFunc("/wishlist", h.GetWishlist).Methods("GET").Name("wishlist.get")
	selectionRouter.HandleFunc("/wishlist/items", h.AddToWishlist).Methods("POST").Name("wishlist.add")
	selectionRouter.HandleFunc("/wishlist/items/{id}", h.RemoveFromWishlist).Methods("DELETE").Name("wishlist.remove")
	selectionRouter.HandleFunc("/compare", h.GetComparison).Methods("GET").Name("compare.get")
	selectionRouter.HandleFunc("/compare/items", h.AddToComparison).Methods("POST").Name("compare.add")
	selectionRouter.HandleFunc("/compare/items/{id}", h.RemoveFromComparison).Methods("DELETE").Name("compare.remove")

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"not found"}`))
	})

	return r
}
