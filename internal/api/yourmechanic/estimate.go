package yourmechanic

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/andygrunwald/repair-price-scraper/internal/api"
	"github.com/andygrunwald/repair-price-scraper/internal/models"
	"github.com/andygrunwald/repair-price-scraper/internal/priceparse"
	"github.com/andygrunwald/repair-price-scraper/internal/pricing"
)

const (
	estimatePath = "/estimate"
	quoteAPIPath = "/api/estimate"
)

// quoteResponse is the JSON answer of the quote endpoint. Either Price or
// Cost carries the amount.
type quoteResponse struct {
	Price         *float64 `json:"price"`
	Cost          *float64 `json:"cost"`
	LaborTime     string   `json:"labor_time"`
	PartsIncluded string   `json:"parts_included"`
}

func requestParams(req models.QuoteRequest) map[string]string {
	return map[string]string{
		"zip_code": req.ZipCode,
		"year":     req.Vehicle.Year,
		"make":     req.Vehicle.Make,
		"model":    req.Vehicle.Model,
		"service":  req.Service,
	}
}

// ProbeEstimate queries the parameterized estimate page and scans it for
// prices the same way service pages are scanned.
func (c *Client) ProbeEstimate(ctx context.Context, req models.QuoteRequest) (*models.ServiceQuote, error) {
	doc, _, err := c.fetchDocument(ctx, c.baseURL+estimatePath, requestParams(req), fetchTimeout)
	if err != nil {
		return nil, fmt.Errorf("fetching estimate page: %w", err)
	}

	summary, ok := priceparse.Summarize(documentPrices(doc))
	if !ok {
		return nil, fmt.Errorf("estimate page: %w", api.ErrNoQuote)
	}

	return &models.ServiceQuote{
		Service:       req.Service,
		Vehicle:       req.Vehicle.String(),
		Location:      req.ZipCode,
		MinPrice:      summary.Min,
		MaxPrice:      summary.Max,
		AvgPrice:      summary.Avg,
		LaborTime:     pricing.LaborTime(summary.Avg),
		PartsIncluded: models.DefaultPartsIncluded,
		Source:        models.SourceEstimatePage,
	}, nil
}

// ProbeAPI posts the request to the JSON quote endpoint. The returned
// price becomes the average; the range is -20%/+20% around it.
func (c *Client) ProbeAPI(ctx context.Context, req models.QuoteRequest) (*models.ServiceQuote, error) {
	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetBody(requestParams(req)).
		Post(c.baseURL + quoteAPIPath)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code %d", resp.StatusCode())
	}

	var data quoteResponse
	if err := json.Unmarshal(resp.Body(), &data); err != nil {
		return nil, fmt.Errorf("parsing response JSON: %w", err)
	}

	return quoteFromAPI(data, req)
}

func quoteFromAPI(data quoteResponse, req models.QuoteRequest) (*models.ServiceQuote, error) {
	var price float64
	switch {
	case data.Price != nil:
		price = *data.Price
	case data.Cost != nil:
		price = *data.Cost
	}

	avg := int(price)
	if !priceparse.Plausible(avg) {
		return nil, fmt.Errorf("quote endpoint price %v: %w", price, api.ErrNoQuote)
	}

	quote := &models.ServiceQuote{
		Service:       req.Service,
		Vehicle:       req.Vehicle.String(),
		Location:      req.ZipCode,
		MinPrice:      int(price * 0.8),
		MaxPrice:      int(price * 1.2),
		AvgPrice:      avg,
		LaborTime:     data.LaborTime,
		PartsIncluded: data.PartsIncluded,
		Source:        models.SourceAPI,
	}
	if quote.LaborTime == "" {
		quote.LaborTime = pricing.LaborTime(avg)
	}
	if quote.PartsIncluded == "" {
		quote.PartsIncluded = models.DefaultPartsIncluded
	}
	return quote, nil
}
