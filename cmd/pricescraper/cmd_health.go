package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func healthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check whether the upstream site is reachable",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := newClient(setupLogger())

			if !client.HealthCheck(cmd.Context()) {
				return fmt.Errorf("upstream %s is unreachable", client.BaseURL())
			}

			fmt.Fprintf(cmd.OutOrStdout(), "upstream %s is reachable\n", client.BaseURL())
			return nil
		},
	}
}
