package stats

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"agencydesk/internal/application/dashboard"
	"agencydesk/internal/interfaces/cli/bootstrap"
	httpRouter "agencydesk/internal/interfaces/http"
)

var (
	flags      bootstrap.Flags
	jsonOutput bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print dashboard statistics",
		Long:  `Print the dashboard overview, the ticket histograms and team performance from the configured storage.`,
		RunE:  run,
	}

	flags.Register(cmd)
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the report as JSON")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	cfg, log, err := bootstrap.Init(flags)
	if err != nil {
		return err
	}

	core, err := httpRouter.NewCore(cmd.Context(), cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	defer core.Close()

	if err := core.Load(cmd.Context()); err != nil {
		return fmt.Errorf("failed to load stores: %w", err)
	}

	report := buildReport(core.Services().Dashboard)
	if jsonOutput {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	return Render(cmd.OutOrStdout(), report)
}

func buildReport(d *dashboard.Service) Report {
	return Report{
		Overview: d.Overview(),
		Charts:   d.Charts(),
		Team:     d.Team(),
	}
}
