// Package scraper provides the price resolution engine that runs the
// acquisition strategies in priority order.
package scraper

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/andygrunwald/repair-price-scraper/internal/api"
	"github.com/andygrunwald/repair-price-scraper/internal/api/estimated"
	"github.com/andygrunwald/repair-price-scraper/internal/cache"
	"github.com/andygrunwald/repair-price-scraper/internal/models"
)

// Metrics holds resolution metrics for a strategy.
type Metrics struct {
	mu                 sync.RWMutex
	TotalAttempts      int64
	TotalHits          int64
	TotalErrors        int64
	LastAttemptAt      *time.Time
	LastAttemptSuccess bool
	LastResponseTime   time.Duration
	LastError          *string
}

// GetSnapshot returns a thread-safe snapshot of the metrics.
func (m *Metrics) GetSnapshot() MetricsSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return MetricsSnapshot{
		TotalAttempts:      m.TotalAttempts,
		TotalHits:          m.TotalHits,
		TotalErrors:        m.TotalErrors,
		LastAttemptAt:      m.LastAttemptAt,
		LastAttemptSuccess: m.LastAttemptSuccess,
		LastResponseTime:   m.LastResponseTime,
		LastError:          m.LastError,
	}
}

func (m *Metrics) record(duration time.Duration, err error) {
	now := time.Now()
	m.mu.Lock()
	defer m.mu.Unlock()

	m.TotalAttempts++
	m.LastAttemptAt = &now
	m.LastResponseTime = duration
	if err != nil {
		m.LastAttemptSuccess = false
		errStr := err.Error()
		m.LastError = &errStr
		// A strategy that simply found nothing is not an error.
		if !errors.Is(err, api.ErrNoQuote) {
			m.TotalErrors++
		}
		return
	}
	m.TotalHits++
	m.LastAttemptSuccess = true
	m.LastError = nil
}

// MetricsSnapshot is a thread-safe copy of Metrics data.
type MetricsSnapshot struct {
	TotalAttempts      int64
	TotalHits          int64
	TotalErrors        int64
	LastAttemptAt      *time.Time
	LastAttemptSuccess bool
	LastResponseTime   time.Duration
	LastError          *string
}

// MetricsRecorder receives Prometheus observations from the engine.
type MetricsRecorder interface {
	RecordStrategyAttempt(strategy, status string, duration float64)
	RecordResolution(source string)
	RecordCacheLookup(result string)
	RecordCacheSize(size float64)
}

// QuoteStore persists freshly resolved quotes.
type QuoteStore interface {
	InsertQuote(ctx context.Context, req models.QuoteRequest, quote models.ServiceQuote) error
}

// Catalog is the upstream site's service catalog.
type Catalog interface {
	Categories(ctx context.Context) []models.Category
	Makes(ctx context.Context) []string
	HealthCheck(ctx context.Context) bool
}

// Scraper resolves service quotes. Registered strategies are tried in
// registration order; the estimator is the terminal fallback.
type Scraper struct {
	catalog    Catalog
	fallback   *estimated.Estimator
	strategies []api.Strategy
	metrics    map[string]*Metrics
	cache      *cache.Cache
	inflight   singleflight.Group
	store      QuoteStore
	prom       MetricsRecorder
	logger     zerolog.Logger
	mu         sync.RWMutex
}

// New creates a new Scraper with an empty cache.
func New(catalog Catalog, fallback *estimated.Estimator, logger zerolog.Logger) *Scraper {
	return &Scraper{
		catalog:  catalog,
		fallback: fallback,
		metrics: map[string]*Metrics{
			fallback.Name(): {},
		},
		cache:  cache.New(),
		logger: logger.With().Str("component", "scraper").Logger(),
	}
}

// RegisterStrategy appends a strategy to the resolution order.
func (s *Scraper) RegisterStrategy(strategy api.Strategy) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.strategies = append(s.strategies, strategy)
	s.metrics[strategy.Name()] = &Metrics{}
}

// SetQuoteStore makes the scraper persist every freshly resolved quote.
func (s *Scraper) SetQuoteStore(store QuoteStore) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store = store
}

// SetPrometheusMetrics wires Prometheus metrics into the scraper.
func (s *Scraper) SetPrometheusMetrics(m MetricsRecorder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prom = m
}

// GetStrategies returns the strategy names in resolution order, the
// terminal fallback last.
func (s *Scraper) GetStrategies() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.strategies)+1)
	for _, st := range s.strategies {
		names = append(names, st.Name())
	}
	return append(names, s.fallback.Name())
}

// GetMetrics returns the metrics for a strategy.
func (s *Scraper) GetMetrics(strategyName string) *Metrics {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.metrics[strategyName]
}

// CacheSize returns the number of cached quotes.
func (s *Scraper) CacheSize() int {
	return s.cache.Len()
}

// Resolve returns a quote for req. It never fails: when no strategy yields
// a price, the static estimate is returned. Results are cached for the
// lifetime of the Scraper, and a cached request performs no network I/O.
//
// Cancellation of ctx does not stop a started resolution; upstream calls are
// bounded by their own timeouts only. The result is cached, so it must not
// depend on whether the caller is still waiting.
func (s *Scraper) Resolve(ctx context.Context, req models.QuoteRequest) models.ServiceQuote {
	ctx = context.WithoutCancel(ctx)

	key := cache.KeyFor(req)
	if quote, ok := s.cache.Get(key); ok {
		s.recordCacheLookup("hit")
		s.logger.Debug().Str("service", req.Service).Msg("cache hit")
		return quote
	}
	s.recordCacheLookup("miss")

	// Concurrent callers asking for the same request share one resolution.
	v, _, _ := s.inflight.Do(fmt.Sprintf("%q", key), func() (interface{}, error) {
		if quote, ok := s.cache.Get(key); ok {
			return quote, nil
		}
		quote := s.resolve(ctx, req)
		s.cache.Set(key, quote)
		s.afterResolve(ctx, req, quote)
		return quote, nil
	})
	return v.(models.ServiceQuote)
}

func (s *Scraper) resolve(ctx context.Context, req models.QuoteRequest) models.ServiceQuote {
	s.mu.RLock()
	strategies := make([]api.Strategy, len(s.strategies))
	copy(strategies, s.strategies)
	s.mu.RUnlock()

	for _, strategy := range strategies {
		quote, err := s.attempt(ctx, strategy, req)
		if err != nil {
			s.logger.Debug().
				Err(err).
				Str("strategy", strategy.Name()).
				Str("service", req.Service).
				Msg("strategy unavailable, trying next")
			continue
		}

		s.logger.Info().
			Str("strategy", strategy.Name()).
			Str("service", req.Service).
			Str("source", string(quote.Source)).
			Msg("resolved quote")
		return *quote
	}

	start := time.Now()
	quote := s.fallback.Estimate(req)
	s.observe(s.fallback.Name(), time.Since(start), nil)
	return quote
}

// attempt runs a single strategy and rejects quotes that break the price
// ordering.
func (s *Scraper) attempt(ctx context.Context, strategy api.Strategy, req models.QuoteRequest) (*models.ServiceQuote, error) {
	start := time.Now()
	quote, err := strategy.Quote(ctx, req)
	if err == nil {
		err = validate(quote)
	}
	s.observe(strategy.Name(), time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return quote, nil
}

func validate(q *models.ServiceQuote) error {
	switch {
	case q == nil:
		return api.ErrNoQuote
	case q.MinPrice < 0 || q.MinPrice > q.AvgPrice || q.AvgPrice > q.MaxPrice:
		return fmt.Errorf("inconsistent price range %d/%d/%d: %w", q.MinPrice, q.AvgPrice, q.MaxPrice, api.ErrNoQuote)
	case q.PartsIncluded == "":
		q.PartsIncluded = models.DefaultPartsIncluded
	}
	return nil
}

func (s *Scraper) observe(strategy string, duration time.Duration, err error) {
	s.mu.RLock()
	metrics := s.metrics[strategy]
	prom := s.prom
	s.mu.RUnlock()

	if metrics != nil {
		metrics.record(duration, err)
	}
	if prom != nil {
		status := "hit"
		switch {
		case errors.Is(err, api.ErrNoQuote):
			status = "miss"
		case err != nil:
			status = "error"
		}
		prom.RecordStrategyAttempt(strategy, status, duration.Seconds())
	}
}

func (s *Scraper) recordCacheLookup(result string) {
	s.mu.RLock()
	prom := s.prom
	s.mu.RUnlock()
	if prom != nil {
		prom.RecordCacheLookup(result)
	}
}

func (s *Scraper) afterResolve(ctx context.Context, req models.QuoteRequest, quote models.ServiceQuote) {
	s.mu.RLock()
	store := s.store
	prom := s.prom
	s.mu.RUnlock()

	if prom != nil {
		prom.RecordResolution(string(quote.Source))
		prom.RecordCacheSize(float64(s.cache.Len()))
	}

	if store == nil {
		return
	}
	if err := store.InsertQuote(ctx, req, quote); err != nil {
		s.logger.Error().
			Err(err).
			Str("service", req.Service).
			Msg("failed to store quote")
	}
}

// Categories returns the service category table.
func (s *Scraper) Categories(ctx context.Context) []models.Category {
	return s.catalog.Categories(ctx)
}

// Makes returns the list of supported vehicle makes.
func (s *Scraper) Makes(ctx context.Context) []string {
	return s.catalog.Makes(ctx)
}

// HealthCheck reports whether the upstream site is reachable.
func (s *Scraper) HealthCheck(ctx context.Context) bool {
	return s.catalog.HealthCheck(ctx)
}
