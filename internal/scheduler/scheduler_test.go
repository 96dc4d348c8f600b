package scheduler

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChecker struct {
	healthy atomic.Bool
	calls   atomic.Int32
}

func (f *fakeChecker) HealthCheck(context.Context) bool {
	f.calls.Add(1)
	return f.healthy.Load()
}

type fakeGauge struct {
	mu     sync.Mutex
	values []bool
}

func (f *fakeGauge) RecordUpstreamUp(up bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values = append(f.values, up)
}

func (f *fakeGauge) last() (bool, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.values) == 0 {
		return false, false
	}
	return f.values[len(f.values)-1], true
}

func TestScheduler_ProbesPeriodically(t *testing.T) {
	checker := &fakeChecker{}
	checker.healthy.Store(true)
	gauge := &fakeGauge{}

	s := New(checker, 10*time.Millisecond, zerolog.Nop())
	s.SetGauge(gauge)
	assert.False(t, s.IsRunning())
	assert.Nil(t, s.LastCheckAt())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Start(ctx) }()

	require.Eventually(t, func() bool {
		return checker.calls.Load() >= 3
	}, time.Second, 5*time.Millisecond)

	assert.True(t, s.IsRunning())
	assert.True(t, s.LastHealthy())
	require.NotNil(t, s.LastCheckAt())
	assert.True(t, s.NextCheckAt().After(*s.LastCheckAt()))
	up, ok := gauge.last()
	assert.True(t, ok)
	assert.True(t, up)

	cancel()
	err := <-done
	assert.True(t, errors.Is(err, context.Canceled))
	assert.False(t, s.IsRunning())
}

func TestScheduler_RecordsUnreachable(t *testing.T) {
	checker := &fakeChecker{}
	s := New(checker, time.Hour, zerolog.Nop())

	s.runCheck(context.Background())

	assert.False(t, s.LastHealthy())
	assert.Equal(t, int32(1), checker.calls.Load())
	assert.WithinDuration(t, time.Now().Add(time.Hour), s.NextCheckAt(), time.Second)
}

func TestScheduler_RejectsNonPositiveInterval(t *testing.T) {
	for _, interval := range []time.Duration{0, -time.Second} {
		checker := &fakeChecker{}
		s := New(checker, interval, zerolog.Nop())

		err := s.Start(context.Background())
		require.Error(t, err)
		assert.Equal(t, int32(0), checker.calls.Load())
		assert.False(t, s.IsRunning())
	}
}
