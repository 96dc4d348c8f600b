package main

import (
	"github.com/spf13/cobra"

	"github.com/andygrunwald/repair-price-scraper/internal/models"
)

func dumpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Write categories, makes and sample quotes to a JSON file",
		Long:  "Collects the service categories, the supported makes and quotes for a few common services and writes them to a JSON file for inspection.",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := setupLogger()

			s, db, err := newScraper(cmd.Context(), logger)
			if err != nil {
				return err
			}
			if db != nil {
				defer db.Close()
			}

			samples := make([]models.QuoteRequest, 0, len(defaultServices))
			for _, service := range defaultServices {
				samples = append(samples, models.QuoteRequest{
					Service: service,
					ZipCode: cfg.ZipCode,
					Vehicle: vehicle(),
				})
			}

			return s.Dump(cmd.Context(), cfg.DumpPath, samples)
		},
	}

	cmd.Flags().StringVar(&cfg.DumpPath, "path", cfg.DumpPath, "Output file")

	return cmd
}
