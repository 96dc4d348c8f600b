package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/andygrunwald/repair-price-scraper/internal/models"
)

func quoteCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "quote [service...]",
		Short: "Quote one or more services",
		Long: `Resolves a price quote for each named service for the configured vehicle
and location. Requests are sent one after another with a delay in between.`,
		Example: `  pricescraper quote "Oil Change" "Brake Pad Replacement" --make BMW --year 2023`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateOutput(output); err != nil {
				return err
			}

			logger := setupLogger()
			ctx := cmd.Context()

			s, db, err := newScraper(ctx, logger)
			if err != nil {
				return err
			}
			if db != nil {
				defer db.Close()
			}

			services := args
			if len(services) == 0 {
				services = defaultServices
			}

			quotes, err := s.ResolveBatch(ctx, services, cfg.ZipCode, vehicle(), cfg.RequestDelay)
			if err != nil {
				return fmt.Errorf("resolving quotes: %w", err)
			}

			if output == outputJSON {
				return writeJSON(cmd.OutOrStdout(), quotes)
			}
			renderQuotes(cmd.OutOrStdout(), quotes)
			return nil
		},
	}

	addOutputFlag(cmd, &output)
	cmd.Flags().DurationVar(&cfg.RequestDelay, "delay", cfg.RequestDelay, "Minimum delay between upstream requests")

	return cmd
}

func renderQuotes(w io.Writer, quotes []models.ServiceQuote) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Service", "Location", "Min", "Avg", "Max", "Labor", "Source"})

	for _, q := range quotes {
		t.AppendRow(table.Row{
			q.Service,
			q.Location,
			fmt.Sprintf("$%d", q.MinPrice),
			fmt.Sprintf("$%d", q.AvgPrice),
			fmt.Sprintf("$%d", q.MaxPrice),
			q.LaborTime,
			q.Source,
		})
	}

	t.SetStyle(table.StyleRounded)
	t.Render()
}

const (
	outputTable = "table"
	outputJSON  = "json"
)

func addOutputFlag(cmd *cobra.Command, output *string) {
	cmd.Flags().StringVarP(output, "output", "o", outputTable, "Output format (table, json)")
}

func validateOutput(output string) error {
	if output != outputTable && output != outputJSON {
		return fmt.Errorf("unsupported output format %q", output)
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	return nil
}
