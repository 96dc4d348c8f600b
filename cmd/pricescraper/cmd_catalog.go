package main

import (
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/andygrunwald/repair-price-scraper/internal/models"
)

func categoriesCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "categories",
		Short: "List service categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateOutput(output); err != nil {
				return err
			}

			client := newClient(setupLogger())
			categories := client.Categories(cmd.Context())
			if output == outputJSON {
				return writeJSON(cmd.OutOrStdout(), categories)
			}
			renderCategories(cmd.OutOrStdout(), categories)
			return nil
		},
	}

	addOutputFlag(cmd, &output)

	return cmd
}

func makesCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "makes",
		Short: "List supported vehicle makes",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateOutput(output); err != nil {
				return err
			}

			client := newClient(setupLogger())
			makes := client.Makes(cmd.Context())
			if output == outputJSON {
				return writeJSON(cmd.OutOrStdout(), makes)
			}
			renderMakes(cmd.OutOrStdout(), makes)
			return nil
		},
	}

	addOutputFlag(cmd, &output)

	return cmd
}

func renderCategories(w io.Writer, categories []models.Category) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Category", "Services"})

	for _, c := range categories {
		t.AppendRow(table.Row{c.Name, strings.Join(c.Services, "\n")})
		t.AppendSeparator()
	}

	t.SetStyle(table.StyleRounded)
	t.Render()
}

func renderMakes(w io.Writer, makes []string) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Make"})

	for _, m := range makes {
		t.AppendRow(table.Row{m})
	}

	t.SetStyle(table.StyleRounded)
	t.Render()
}
