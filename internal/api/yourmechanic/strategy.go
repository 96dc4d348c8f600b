package yourmechanic

import (
	"context"
	"errors"
	"fmt"

	"github.com/andygrunwald/repair-price-scraper/internal/api"
	"github.com/andygrunwald/repair-price-scraper/internal/models"
)

// ServicePageStrategy locates the dedicated service page and extracts its
// prices.
type ServicePageStrategy struct {
	client *Client
}

// NewServicePageStrategy creates a ServicePageStrategy backed by client.
func NewServicePageStrategy(client *Client) *ServicePageStrategy {
	return &ServicePageStrategy{client: client}
}

// Name returns the strategy identifier.
func (s *ServicePageStrategy) Name() string {
	return "service_page"
}

// Quote implements api.Strategy.
func (s *ServicePageStrategy) Quote(ctx context.Context, req models.QuoteRequest) (*models.ServiceQuote, error) {
	return s.client.locateAndExtract(ctx, req)
}

// EstimateStrategy asks the estimate page, then the JSON quote endpoint,
// and finally retries the service page lookup.
type EstimateStrategy struct {
	client *Client
}

// NewEstimateStrategy creates an EstimateStrategy backed by client.
func NewEstimateStrategy(client *Client) *EstimateStrategy {
	return &EstimateStrategy{client: client}
}

// Name returns the strategy identifier.
func (s *EstimateStrategy) Name() string {
	return "quote_endpoint"
}

// Quote implements api.Strategy.
func (s *EstimateStrategy) Quote(ctx context.Context, req models.QuoteRequest) (*models.ServiceQuote, error) {
	var errs []error

	quote, err := s.client.ProbeEstimate(ctx, req)
	if err == nil {
		return quote, nil
	}
	errs = append(errs, err)

	quote, err = s.client.ProbeAPI(ctx, req)
	if err == nil {
		return quote, nil
	}
	errs = append(errs, fmt.Errorf("quote endpoint: %w", err))

	quote, err = s.client.locateAndExtract(ctx, req)
	if err == nil {
		return quote, nil
	}
	errs = append(errs, err)

	return nil, errors.Join(errs...)
}

func (c *Client) locateAndExtract(ctx context.Context, req models.QuoteRequest) (*models.ServiceQuote, error) {
	url, ok := c.Locate(ctx, req.Service)
	if !ok {
		return nil, fmt.Errorf("locating service page for %q: %w", req.Service, api.ErrNoQuote)
	}
	return c.Extract(ctx, url, req)
}
