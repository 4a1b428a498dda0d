// Package server exposes the shared-card API consumed by remote keepsake
// clients: card create/read/list plus the view and like counter endpoints.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lixenwraith/keepsake/logger"
	"github.com/lixenwraith/keepsake/store"
)

// Config holds the server settings.
type Config struct {
	Addr      string
	RateRPS   float64
	RateBurst int
}

// Server serves the card API over a store backend.
type Server struct {
	st      store.Store
	cfg     Config
	router  *mux.Router
	limiter *limiterPool
}

// New builds the router over st.
func New(st store.Store, cfg Config) *Server {
	s := &Server{
		st:      st,
		cfg:     cfg,
		limiter: newLimiterPool(cfg.RateRPS, cfg.RateBurst),
	}

	r := mux.NewRouter()
	r.Use(s.logMiddleware, s.rateMiddleware)

	api := r.PathPrefix("/v1").Subrouter()
	api.HandleFunc("/cards", s.handleCreateCard).Methods(http.MethodPost)
	api.HandleFunc("/cards", s.handleListCards).Methods(http.MethodGet)
	api.HandleFunc("/cards/{id}", s.handleGetCard).Methods(http.MethodGet)
	api.HandleFunc("/cards/{id}/view", s.handleView).Methods(http.MethodPost)
	api.HandleFunc("/cards/{id}/like", s.handleLike).Methods(http.MethodPost)

	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	s.router = r
	return s
}

// Handler returns the root handler, mostly for tests.
func (s *Server) Handler() http.Handler { return s.router }

// Run serves until ctx is canceled, then drains with a grace period.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Log.Info("server listening", "addr", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		logger.Log.Info("server stopped")
		return nil
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}
