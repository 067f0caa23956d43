package main

import (
	"os"

	"github.com/spf13/cobra"

	"demopilot/internal/interfaces/cli/migrate"
	"demopilot/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "demopilot",
		Short: "DemoPilot subscription service",
		Long:  `DemoPilot keeps local subscription records reconciled with the billing provider and serves the billing endpoints of the API.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
