package scraper

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"github.com/andygrunwald/repair-price-scraper/internal/cache"
	"github.com/andygrunwald/repair-price-scraper/internal/models"
)

// ResolveBatch resolves services one after another for the same vehicle and
// location, waiting at least delay between requests that are not served
// from the cache. It stops early only when ctx is cancelled and returns the
// quotes resolved so far.
func (s *Scraper) ResolveBatch(ctx context.Context, services []string, zipCode string, vehicle models.Vehicle, delay time.Duration) ([]models.ServiceQuote, error) {
	limit := rate.Inf
	if delay > 0 {
		limit = rate.Every(delay)
	}
	limiter := rate.NewLimiter(limit, 1)

	quotes := make([]models.ServiceQuote, 0, len(services))
	for _, service := range services {
		req := models.QuoteRequest{
			Service: service,
			ZipCode: zipCode,
			Vehicle: vehicle,
		}

		if _, cached := s.cache.Get(cache.KeyFor(req)); !cached {
			if err := limiter.Wait(ctx); err != nil {
				return quotes, err
			}
		}

		quotes = append(quotes, s.Resolve(ctx, req))
	}

	s.logger.Info().
		Int("count", len(quotes)).
		Str("zipCode", zipCode).
		Str("vehicle", vehicle.String()).
		Msg("resolved batch")

	return quotes, nil
}
