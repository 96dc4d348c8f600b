// Package main provides the entry point for the repair price scraper CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/andygrunwald/repair-price-scraper/internal/api/estimated"
	"github.com/andygrunwald/repair-price-scraper/internal/api/yourmechanic"
	"github.com/andygrunwald/repair-price-scraper/internal/config"
	"github.com/andygrunwald/repair-price-scraper/internal/database"
	"github.com/andygrunwald/repair-price-scraper/internal/models"
	"github.com/andygrunwald/repair-price-scraper/internal/scraper"
)

var (
	// Version is set at build time.
	Version = "dev"
	// Commit is set at build time.
	Commit = "none"
	// BuildDate is set at build time.
	BuildDate = "unknown"
)

var cfg *config.Config

// defaultServices are quoted when no service is named on the command line.
var defaultServices = []string{
	"Oil Change",
	"Brake Pad Replacement",
	"Car Battery Replacement",
}

func main() {
	cfg = config.DefaultConfig()
	cfg.LoadFromEnv()

	rootCmd := &cobra.Command{
		Use:   "pricescraper",
		Short: "Repair Price Scraper - Know what a car repair should cost",
		Long: `Repair Price Scraper returns price quotes for car repair and maintenance
services. It reads prices from the YourMechanic website and falls back to
static, vehicle-adjusted estimates whenever the site has nothing to offer.

Features:
  - Quotes for any service, location and vehicle
  - Service categories and supported vehicle makes
  - Optional PostgreSQL quote history
  - Prometheus metrics endpoint
  - Status endpoint for operational visibility`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "Base URL of the upstream site")
	rootCmd.PersistentFlags().StringVar(&cfg.PostgresDSN, "postgres-dsn", cfg.PostgresDSN, "PostgreSQL connection string (optional)")
	rootCmd.PersistentFlags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (json, console)")
	rootCmd.PersistentFlags().BoolVar(&cfg.StoreQuotePayload, "store-quote-payload", cfg.StoreQuotePayload, "Store the full quote as JSON in the database")
	rootCmd.PersistentFlags().StringVar(&cfg.ZipCode, "zip-code", cfg.ZipCode, "Zip code of the service location")
	rootCmd.PersistentFlags().StringVar(&cfg.Year, "year", cfg.Year, "Vehicle year")
	rootCmd.PersistentFlags().StringVar(&cfg.Make, "make", cfg.Make, "Vehicle make")
	rootCmd.PersistentFlags().StringVar(&cfg.Model, "model", cfg.Model, "Vehicle model")

	// Add subcommands
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(quoteCmd())
	rootCmd.AddCommand(categoriesCmd())
	rootCmd.AddCommand(makesCmd())
	rootCmd.AddCommand(healthCmd())
	rootCmd.AddCommand(dumpCmd())
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func setupLogger() zerolog.Logger {
	var logger zerolog.Logger

	// Set log level
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	// Logs go to stderr so command output on stdout stays machine readable.
	if cfg.LogFormat == "console" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
			With().
			Timestamp().
			Logger()
	} else {
		logger = zerolog.New(os.Stderr).
			With().
			Timestamp().
			Logger()
	}

	return logger
}

// vehicle returns the vehicle configured by flags and environment.
func vehicle() models.Vehicle {
	return models.Vehicle{
		Year:  cfg.Year,
		Make:  cfg.Make,
		Model: cfg.Model,
	}
}

// newClient builds the upstream client. Commands that only read the site's
// catalog use it directly and never touch the database.
func newClient(logger zerolog.Logger) *yourmechanic.Client {
	return yourmechanic.New(cfg.BaseURL, logger)
}

// newScraper builds the resolution engine with the upstream strategies in
// priority order. When a PostgreSQL DSN is configured, resolved quotes are
// stored; the returned DB is nil otherwise.
func newScraper(ctx context.Context, logger zerolog.Logger) (*scraper.Scraper, *database.DB, error) {
	client := newClient(logger)

	s := scraper.New(client, estimated.New(logger), logger)
	s.RegisterStrategy(yourmechanic.NewServicePageStrategy(client))
	s.RegisterStrategy(yourmechanic.NewEstimateStrategy(client))

	if cfg.PostgresDSN == "" {
		return s, nil, nil
	}

	db, err := database.New(cfg.PostgresDSN, cfg.StoreQuotePayload, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("connecting to database: %w", err)
	}
	if err := db.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	s.SetQuoteStore(db)

	return s, db, nil
}
