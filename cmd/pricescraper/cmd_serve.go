package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/andygrunwald/repair-price-scraper/internal/http"
	"github.com/andygrunwald/repair-price-scraper/internal/models"
	"github.com/andygrunwald/repair-price-scraper/internal/scheduler"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the quote service",
		Long:  "Starts the HTTP quote service together with a periodic health monitor for the upstream site.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateServeConfig(); err != nil {
				return err
			}

			logger := setupLogger()

			logger.Info().
				Str("version", Version).
				Str("commit", Commit).
				Str("buildDate", BuildDate).
				Str("httpAddr", cfg.HTTPAddr).
				Str("baseURL", cfg.BaseURL).
				Dur("healthInterval", cfg.HealthInterval).
				Bool("database", cfg.PostgresDSN != "").
				Msg("starting repair price scraper")

			// Setup signal handling
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			s, db, err := newScraper(ctx, logger)
			if err != nil {
				return err
			}
			if db != nil {
				defer db.Close()
			}

			// Create health monitor
			sched := scheduler.New(s, cfg.HealthInterval, logger)

			reg := prometheus.NewRegistry()
			reg.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)

			defaults := models.QuoteRequest{ZipCode: cfg.ZipCode, Vehicle: vehicle()}
			httpServer := http.NewServer(cfg.HTTPAddr, s, sched, db, reg, defaults, logger)

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

			// Start HTTP server in goroutine
			go func() {
				if err := httpServer.Start(); err != nil {
					logger.Error().Err(err).Msg("HTTP server error")
					cancel()
				}
			}()

			// Start health monitor in goroutine
			go func() {
				if err := sched.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
					logger.Error().Err(err).Msg("health monitor error")
					cancel()
				}
			}()

			// Wait for signal
			select {
			case sig := <-sigCh:
				logger.Info().Str("signal", sig.String()).Msg("received signal, shutting down")
			case <-ctx.Done():
			}

			// Graceful shutdown
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer shutdownCancel()

			if err := httpServer.Shutdown(shutdownCtx); err != nil {
				logger.Error().Err(err).Msg("HTTP server shutdown error")
			}

			logger.Info().Msg("shutdown complete")
			return nil
		},
	}

	cmd.Flags().StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP server address for /quote, /metrics, /status")
	cmd.Flags().DurationVar(&cfg.HealthInterval, "health-interval", cfg.HealthInterval, "Interval between upstream health checks")

	return cmd
}

func validateServeConfig() error {
	if cfg.HealthInterval <= 0 {
		return fmt.Errorf("--health-interval must be positive, got %s", cfg.HealthInterval)
	}
	return nil
}
