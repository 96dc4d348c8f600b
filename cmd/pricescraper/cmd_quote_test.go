package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andygrunwald/repair-price-scraper/internal/models"
)

func TestRenderQuotes(t *testing.T) {
	var buf bytes.Buffer
	renderQuotes(&buf, []models.ServiceQuote{{
		Service:   "Oil Change",
		Location:  models.LocationEstimated,
		MinPrice:  36,
		MaxPrice:  72,
		AvgPrice:  54,
		LaborTime: "0.5 hours",
		Source:    models.SourceEstimated,
	}})

	out := buf.String()
	assert.Contains(t, out, "Oil Change")
	assert.Contains(t, out, "$36")
	assert.Contains(t, out, "$54")
	assert.Contains(t, out, "$72")
	assert.Contains(t, out, "estimated")
}

func TestRenderCatalog(t *testing.T) {
	var buf bytes.Buffer
	renderCategories(&buf, []models.Category{{Name: "Brakes", Services: []string{"Brake Pad Replacement"}}})
	assert.Contains(t, buf.String(), "Brake Pad Replacement")

	buf.Reset()
	renderMakes(&buf, []string{"Acura", "Volvo"})
	assert.Contains(t, buf.String(), "Volvo")
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeJSON(&buf, []string{"Acura"}))

	var makes []string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &makes))
	assert.Equal(t, []string{"Acura"}, makes)
}
