// Package api provides the interface and types for price resolution strategies.
package api

import (
	"context"
	"errors"

	"github.com/andygrunwald/repair-price-scraper/internal/models"
)

// ErrNoQuote is returned by a strategy that ran without finding a price.
var ErrNoQuote = errors.New("no quote found")

// Strategy defines one way of acquiring a price quote.
type Strategy interface {
	// Name returns the strategy identifier.
	Name() string

	// Quote tries to produce a quote for req. Any error means the strategy
	// is unavailable for this request and the caller should move on.
	Quote(ctx context.Context, req models.QuoteRequest) (*models.ServiceQuote, error)
}
