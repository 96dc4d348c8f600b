package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/andygrunwald/repair-price-scraper/internal/models"
	"github.com/andygrunwald/repair-price-scraper/internal/scraper"
)

// QuoteHandler handles the /quote endpoint.
type QuoteHandler struct {
	scraper  *scraper.Scraper
	defaults models.QuoteRequest
	logger   zerolog.Logger
}

// NewQuoteHandler creates a new QuoteHandler.
func NewQuoteHandler(s *scraper.Scraper, defaults models.QuoteRequest, logger zerolog.Logger) *QuoteHandler {
	return &QuoteHandler{
		scraper:  s,
		defaults: defaults,
		logger:   logger,
	}
}

// ServeHTTP implements the http.Handler interface.
func (h *QuoteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	req, ok := h.parseRequest(r)
	if !ok {
		http.Error(w, "missing service parameter", http.StatusBadRequest)
		return
	}

	quote := h.scraper.Resolve(r.Context(), req)
	writeJSON(w, quote, h.logger)
}

func (h *QuoteHandler) parseRequest(r *http.Request) (models.QuoteRequest, bool) {
	q := r.URL.Query()
	service := strings.TrimSpace(q.Get("service"))
	if service == "" {
		return models.QuoteRequest{}, false
	}

	req := h.defaults
	req.Service = service
	if v := q.Get("zip"); v != "" {
		req.ZipCode = v
	}
	if v := q.Get("year"); v != "" {
		req.Vehicle.Year = v
	}
	if v := q.Get("make"); v != "" {
		req.Vehicle.Make = v
	}
	if v := q.Get("model"); v != "" {
		req.Vehicle.Model = v
	}
	return req, true
}

// CatalogHandler serves a catalog listing as JSON.
type CatalogHandler struct {
	list   func(ctx context.Context) any
	logger zerolog.Logger
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(list func(ctx context.Context) any, logger zerolog.Logger) *CatalogHandler {
	return &CatalogHandler{list: list, logger: logger}
}

// ServeHTTP implements the http.Handler interface.
func (h *CatalogHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.list(r.Context()), h.logger)
}

func writeJSON(w http.ResponseWriter, v any, logger zerolog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error().Err(err).Msg("failed to encode response")
	}
}
