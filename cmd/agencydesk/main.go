//go:generate swag init --dir ../../ --generalInfo cmd/agencydesk/main.go --output ../../docs --outputTypes go --parseInternal

package main

import (
	"os"

	"github.com/spf13/cobra"

	"agencydesk/internal/interfaces/cli/migrate"
	"agencydesk/internal/interfaces/cli/seed"
	"agencydesk/internal/interfaces/cli/server"
	"agencydesk/internal/interfaces/cli/stats"
)

// @title agencydesk API
// @version 1.0
// @description Tickets, brands, resources, submissions and notifications of an agency operations console.
// @BasePath /api

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Bearer access token from /auth/login
func main() {
	rootCmd := &cobra.Command{
		Use:          "agencydesk",
		Short:        "agencydesk - agency operations console",
		Long:         `agencydesk serves the ticket, brand, resource and submission API of an agency operations console, with migration, seeding and reporting commands.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		seed.NewCommand(),
		stats.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
