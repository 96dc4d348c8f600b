// Package estimated provides the terminal pricing strategy built on the
// static pricing model. It always produces a quote.
package estimated

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/andygrunwald/repair-price-scraper/internal/models"
	"github.com/andygrunwald/repair-price-scraper/internal/pricing"
)

// StrategyName is the identifier for this strategy.
const StrategyName = "estimated"

// Estimator builds quotes from the static pricing table.
type Estimator struct {
	logger zerolog.Logger
}

// New creates a new Estimator.
func New(logger zerolog.Logger) *Estimator {
	return &Estimator{
		logger: logger.With().Str("strategy", StrategyName).Logger(),
	}
}

// Name returns the strategy identifier.
func (e *Estimator) Name() string {
	return StrategyName
}

// Quote implements api.Strategy. The error is always nil.
func (e *Estimator) Quote(_ context.Context, req models.QuoteRequest) (*models.ServiceQuote, error) {
	q := e.Estimate(req)
	return &q, nil
}

// Estimate returns the table-based quote for req.
func (e *Estimator) Estimate(req models.QuoteRequest) models.ServiceQuote {
	multiplier := pricing.Multiplier(req.Vehicle.Year, req.Vehicle.Make, req.Vehicle.Model)
	band := pricing.Estimate(req.Service, multiplier)

	e.logger.Info().
		Str("service", req.Service).
		Float64("multiplier", multiplier).
		Int("avg", band.Avg).
		Msg("using estimated pricing")

	return models.ServiceQuote{
		Service:        req.Service,
		Vehicle:        req.Vehicle.String(),
		Location:       models.LocationEstimated,
		MinPrice:       band.Min,
		MaxPrice:       band.Max,
		AvgPrice:       band.Avg,
		LaborTime:      pricing.LaborTime(band.Avg),
		PartsIncluded:  models.DefaultPartsIncluded,
		Source:         models.SourceEstimated,
		Description:    pricing.Description(req.Service),
		WhatsIncluded:  pricing.Inclusions(req.Service),
		Warranty:       pricing.Warranty(),
		Rating:         pricing.DefaultRating(),
		Mechanic:       pricing.MechanicProfile(),
		CostBreakdown:  pricing.CostBreakdown(band.Avg),
		AdditionalFees: pricing.Fees(),
		Availability:   pricing.Availability(pricing.Duration(req.Service)),
	}
}
