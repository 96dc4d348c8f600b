package scraper

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/andygrunwald/repair-price-scraper/internal/models"
)

// DumpData is the diagnostic snapshot written by Dump.
type DumpData struct {
	Categories    []models.Category              `json:"categories"`
	Makes         []string                       `json:"makes"`
	SamplePricing map[string]models.ServiceQuote `json:"sample_pricing"`
}

// Dump writes the category table, the make list and quotes for samples to
// path as indented JSON.
func (s *Scraper) Dump(ctx context.Context, path string, samples []models.QuoteRequest) error {
	data := DumpData{
		Categories:    s.Categories(ctx),
		Makes:         s.Makes(ctx),
		SamplePricing: make(map[string]models.ServiceQuote, len(samples)),
	}

	for _, req := range samples {
		data.SamplePricing[req.Service] = s.Resolve(ctx, req)
	}

	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding dump: %w", err)
	}

	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("writing dump: %w", err)
	}

	s.logger.Info().
		Str("path", path).
		Int("categories", len(data.Categories)).
		Int("makes", len(data.Makes)).
		Int("samples", len(data.SamplePricing)).
		Msg("wrote diagnostic dump")

	return nil
}
