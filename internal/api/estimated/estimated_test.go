package estimated

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andygrunwald/repair-price-scraper/internal/models"
)

func TestEstimate(t *testing.T) {
	e := New(zerolog.Nop())

	q := e.Estimate(models.QuoteRequest{
		Service: "Oil Change",
		ZipCode: "10001",
		Vehicle: models.Vehicle{Year: "2015", Make: "Toyota", Model: "Camry"},
	})

	assert.Equal(t, "Oil Change", q.Service)
	assert.Equal(t, "2015 Toyota Camry", q.Vehicle)
	assert.Equal(t, models.LocationEstimated, q.Location)
	assert.Equal(t, 36, q.MinPrice)
	assert.Equal(t, 72, q.MaxPrice)
	assert.Equal(t, 54, q.AvgPrice)
	assert.Equal(t, "0.5 hours", q.LaborTime)
	assert.Equal(t, models.SourceEstimated, q.Source)
	assert.NotEmpty(t, q.PartsIncluded)
	require.NotNil(t, q.CostBreakdown)
	assert.Equal(t, q.AvgPrice, q.CostBreakdown.LaborCost+q.CostBreakdown.PartsCost)
	require.NotNil(t, q.Availability)
	assert.Equal(t, "30-45 minutes", q.Availability.EstimatedDuration)
}

func TestQuote_NeverFails(t *testing.T) {
	e := New(zerolog.Nop())
	for _, service := range []string{"", "???", "Brake Pad Replacement", "Flux Capacitor Replacement"} {
		q, err := e.Quote(context.Background(), models.QuoteRequest{Service: service})
		require.NoError(t, err)
		require.NotNil(t, q)
		assert.LessOrEqual(t, q.MinPrice, q.AvgPrice)
		assert.LessOrEqual(t, q.AvgPrice, q.MaxPrice)
	}
}
