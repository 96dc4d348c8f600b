// Package http provides the HTTP surface of the repair price scraper.
package http

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the scraper.
type Metrics struct {
	// Strategy metrics
	StrategyAttemptsTotal   *prometheus.CounterVec
	StrategyAttemptDuration *prometheus.HistogramVec

	// Resolution metrics
	ResolutionsTotal  *prometheus.CounterVec
	CacheLookupsTotal *prometheus.CounterVec
	CachedQuotes      prometheus.Gauge
	UpstreamUp        prometheus.Gauge

	// Database metrics
	DBOperationsTotal *prometheus.CounterVec
}

// NewMetrics creates Prometheus metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		StrategyAttemptsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pricescraper_strategy_attempts_total",
				Help: "Total number of strategy attempts by strategy and status",
			},
			[]string{"strategy", "status"},
		),
		StrategyAttemptDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pricescraper_strategy_attempt_duration_seconds",
				Help:    "Strategy attempt duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"strategy"},
		),
		ResolutionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pricescraper_resolutions_total",
				Help: "Total number of resolved quotes by source",
			},
			[]string{"source"},
		),
		CacheLookupsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pricescraper_cache_lookups_total",
				Help: "Total number of quote cache lookups by result",
			},
			[]string{"result"},
		),
		CachedQuotes: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "pricescraper_cached_quotes",
				Help: "Number of quotes held in the cache",
			},
		),
		UpstreamUp: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "pricescraper_upstream_up",
				Help: "Whether the last upstream health check succeeded",
			},
		),
		DBOperationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pricescraper_db_operations_total",
				Help: "Total number of database operations by type and status",
			},
			[]string{"operation", "status"},
		),
	}
}

// RecordStrategyAttempt records a strategy attempt metric.
func (m *Metrics) RecordStrategyAttempt(strategy, status string, duration float64) {
	m.StrategyAttemptsTotal.WithLabelValues(strategy, status).Inc()
	m.StrategyAttemptDuration.WithLabelValues(strategy).Observe(duration)
}

// RecordResolution records the source of a freshly resolved quote.
func (m *Metrics) RecordResolution(source string) {
	m.ResolutionsTotal.WithLabelValues(source).Inc()
}

// RecordCacheLookup records a cache hit or miss.
func (m *Metrics) RecordCacheLookup(result string) {
	m.CacheLookupsTotal.WithLabelValues(result).Inc()
}

// RecordCacheSize records the number of cached quotes.
func (m *Metrics) RecordCacheSize(size float64) {
	m.CachedQuotes.Set(size)
}

// RecordUpstreamUp records the result of an upstream health check.
func (m *Metrics) RecordUpstreamUp(up bool) {
	if up {
		m.UpstreamUp.Set(1)
		return
	}
	m.UpstreamUp.Set(0)
}

// RecordDBOperation records a database operation metric.
func (m *Metrics) RecordDBOperation(operation, status string) {
	m.DBOperationsTotal.WithLabelValues(operation, status).Inc()
}
