package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/andygrunwald/repair-price-scraper/internal/database"
	"github.com/andygrunwald/repair-price-scraper/internal/models"
	"github.com/andygrunwald/repair-price-scraper/internal/scheduler"
	"github.com/andygrunwald/repair-price-scraper/internal/scraper"
)

// StatusHandler handles the /status endpoint.
type StatusHandler struct {
	scraper   *scraper.Scraper
	scheduler *scheduler.Scheduler
	db        *database.DB
	startTime time.Time
}

// NewStatusHandler creates a new StatusHandler.
func NewStatusHandler(s *scraper.Scraper, sched *scheduler.Scheduler, db *database.DB) *StatusHandler {
	return &StatusHandler{
		scraper:   s,
		scheduler: sched,
		db:        db,
		startTime: time.Now(),
	}
}

// ServeHTTP implements the http.Handler interface.
func (h *StatusHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	response := models.StatusResponse{
		Status:        "healthy",
		UptimeSeconds: int64(time.Since(h.startTime).Seconds()),
		CachedQuotes:  h.scraper.CacheSize(),
		Strategies:    make(map[string]models.StrategyStatus),
	}

	// Get health monitor status
	if h.scheduler != nil {
		response.MonitorRunning = h.scheduler.IsRunning()
		response.LastHealthCheckAt = h.scheduler.LastCheckAt()
		response.UpstreamReachable = h.scheduler.LastHealthy()
		nextCheck := h.scheduler.NextCheckAt()
		if !nextCheck.IsZero() {
			response.NextHealthCheckAt = &nextCheck
		}
		// Quotes keep working from estimates while the upstream is down.
		if response.LastHealthCheckAt != nil && !response.UpstreamReachable {
			response.Status = "degraded"
		}
	}

	// Get strategy statuses
	for _, name := range h.scraper.GetStrategies() {
		metrics := h.scraper.GetMetrics(name)
		if metrics == nil {
			continue
		}

		snapshot := metrics.GetSnapshot()
		response.Strategies[name] = models.StrategyStatus{
			LastAttemptAt:      snapshot.LastAttemptAt,
			LastAttemptSuccess: snapshot.LastAttemptSuccess,
			LastResponseTimeMs: snapshot.LastResponseTime.Milliseconds(),
			LastError:          snapshot.LastError,
			TotalAttempts:      snapshot.TotalAttempts,
			TotalHits:          snapshot.TotalHits,
			TotalErrors:        snapshot.TotalErrors,
		}
	}

	// Get database status
	response.Database = h.getDatabaseStatus(ctx)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
		return
	}
}

func (h *StatusHandler) getDatabaseStatus(ctx context.Context) models.DatabaseStatus {
	status := models.DatabaseStatus{}

	if h.db == nil {
		return status
	}
	status.Enabled = true

	// Check database connection
	if err := h.db.Ping(); err != nil {
		return status
	}
	status.Connected = true

	count, err := h.db.GetTotalQuotesCount(ctx)
	if err == nil {
		status.TotalQuotesStored = count
	}

	return status
}
