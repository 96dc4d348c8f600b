// Package config provides configuration structures and loading for the repair price scraper.
package config

import (
	"os"
	"strings"
	"time"
)

// Config holds all configuration for the repair price scraper.
type Config struct {
	// Base URL of the upstream marketplace
	BaseURL string
	// PostgreSQL connection string, empty disables quote history
	PostgresDSN string
	// Log level (debug, info, warn, error)
	LogLevel string
	// Log format (json, console)
	LogFormat string
	// Store the full quote as JSON next to the normalized columns
	StoreQuotePayload bool
	// HTTP server address
	HTTPAddr string
	// Default location for quotes
	ZipCode string
	// Default vehicle for quotes
	Year  string
	Make  string
	Model string
	// Minimum delay between uncached quote requests in a batch
	RequestDelay time.Duration
	// Interval between upstream reachability probes
	HealthInterval time.Duration
	// Output file of the dump command
	DumpPath string
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:           "https://www.yourmechanic.com",
		PostgresDSN:       "",
		LogLevel:          "info",
		LogFormat:         "json",
		StoreQuotePayload: true,
		HTTPAddr:          ":8080",
		ZipCode:           "10001",
		Year:              "2020",
		Make:              "Toyota",
		Model:             "Camry",
		RequestDelay:      time.Second,
		HealthInterval:    5 * time.Minute,
		DumpPath:          "sample_data.json",
	}
}

// LoadFromEnv loads configuration from environment variables.
func (c *Config) LoadFromEnv() {
	if v := os.Getenv("BASE_URL"); v != "" {
		c.BaseURL = strings.TrimRight(v, "/")
	}
	if v := os.Getenv("POSTGRES_DSN"); v != "" {
		c.PostgresDSN = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		c.LogFormat = v
	}
	if v := os.Getenv("STORE_QUOTE_PAYLOAD"); v != "" {
		c.StoreQuotePayload = strings.ToLower(v) == "true"
	}
	if v := os.Getenv("HTTP_ADDR"); v != "" {
		c.HTTPAddr = v
	}
	if v := os.Getenv("ZIP_CODE"); v != "" {
		c.ZipCode = v
	}
	if v := os.Getenv("VEHICLE_YEAR"); v != "" {
		c.Year = v
	}
	if v := os.Getenv("VEHICLE_MAKE"); v != "" {
		c.Make = v
	}
	if v := os.Getenv("VEHICLE_MODEL"); v != "" {
		c.Model = v
	}
	if v := os.Getenv("REQUEST_DELAY"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d >= 0 {
			c.RequestDelay = d
		}
	}
	if v := os.Getenv("HEALTH_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			c.HealthInterval = d
		}
	}
	if v := os.Getenv("DUMP_PATH"); v != "" {
		c.DumpPath = v
	}
}
