// Package scheduler provides a periodic reachability monitor for the upstream site.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// HealthChecker probes the upstream site.
type HealthChecker interface {
	HealthCheck(ctx context.Context) bool
}

// Gauge receives the result of every probe.
type Gauge interface {
	RecordUpstreamUp(up bool)
}

// Scheduler probes the upstream site on a fixed interval.
type Scheduler struct {
	checker  HealthChecker
	interval time.Duration
	gauge    Gauge
	logger   zerolog.Logger

	mu          sync.RWMutex
	nextCheckAt time.Time
	lastCheckAt *time.Time
	lastHealthy bool
	running     bool
}

// New creates a new Scheduler.
func New(checker HealthChecker, interval time.Duration, logger zerolog.Logger) *Scheduler {
	return &Scheduler{
		checker:  checker,
		interval: interval,
		logger:   logger.With().Str("component", "scheduler").Logger(),
	}
}

// SetGauge wires a gauge that mirrors the probe result.
func (s *Scheduler) SetGauge(g Gauge) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gauge = g
}

// Start probes immediately, then once per interval, and blocks until the
// context is cancelled. A non-positive interval is an error.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.interval <= 0 {
		return fmt.Errorf("invalid health check interval %s", s.interval)
	}

	s.mu.Lock()
	s.running = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	s.logger.Info().Dur("interval", s.interval).Msg("starting health monitor")

	s.runCheck(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("health monitor stopped")
			return ctx.Err()
		case <-ticker.C:
			s.runCheck(ctx)
		}
	}
}

// runCheck probes the upstream site once and records the result.
func (s *Scheduler) runCheck(ctx context.Context) {
	healthy := s.checker.HealthCheck(ctx)

	now := time.Now()
	s.mu.Lock()
	s.lastCheckAt = &now
	s.lastHealthy = healthy
	s.nextCheckAt = now.Add(s.interval)
	gauge := s.gauge
	s.mu.Unlock()

	if gauge != nil {
		gauge.RecordUpstreamUp(healthy)
	}

	if healthy {
		s.logger.Debug().Msg("upstream reachable")
	} else {
		s.logger.Warn().Msg("upstream unreachable")
	}
}

// NextCheckAt returns the time of the next scheduled probe.
func (s *Scheduler) NextCheckAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nextCheckAt
}

// LastCheckAt returns the time of the last probe.
func (s *Scheduler) LastCheckAt() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastCheckAt
}

// LastHealthy returns the result of the last probe.
func (s *Scheduler) LastHealthy() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastHealthy
}

// IsRunning returns whether the monitor is currently running.
func (s *Scheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}
