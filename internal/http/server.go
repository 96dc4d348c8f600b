package http

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/andygrunwald/repair-price-scraper/internal/database"
	"github.com/andygrunwald/repair-price-scraper/internal/models"
	"github.com/andygrunwald/repair-price-scraper/internal/scheduler"
	"github.com/andygrunwald/repair-price-scraper/internal/scraper"
)

// Server represents the HTTP server for quotes, metrics and status endpoints.
type Server struct {
	server  *http.Server
	logger  zerolog.Logger
	metrics *Metrics
}

// NewServer creates a new HTTP server. Metrics are registered with reg and
// wired into the scraper, the health monitor and the database. sched and db
// may be nil. defaults fills query parameters a /quote request leaves out.
func NewServer(addr string, s *scraper.Scraper, sched *scheduler.Scheduler, db *database.DB, reg *prometheus.Registry, defaults models.QuoteRequest, logger zerolog.Logger) *Server {
	logger = logger.With().Str("component", "http").Logger()
	mux := http.NewServeMux()
	metrics := NewMetrics(reg)

	s.SetPrometheusMetrics(metrics)
	if sched != nil {
		sched.SetGauge(metrics)
	}
	if db != nil {
		db.SetMetrics(metrics)
	}

	// Register handlers
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	mux.Handle("/status", NewStatusHandler(s, sched, db))
	mux.Handle("/quote", NewQuoteHandler(s, defaults, logger))
	mux.Handle("/categories", NewCatalogHandler(func(ctx context.Context) any { return s.Categories(ctx) }, logger))
	mux.Handle("/makes", NewCatalogHandler(func(ctx context.Context) any { return s.Makes(ctx) }, logger))
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			logger.Error().Err(err).Msg("failed to write health response")
		}
	})

	return &Server{
		server: &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       10 * time.Second,
			// A quote may walk several upstream strategies.
			WriteTimeout: 90 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger:  logger,
		metrics: metrics,
	}
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	s.logger.Info().Str("addr", s.server.Addr).Msg("starting HTTP server")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info().Msg("shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

// Handler returns the root handler of the server.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Metrics returns the Prometheus metrics.
func (s *Server) Metrics() *Metrics {
	return s.metrics
}
