package seed

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"agencydesk/internal/domain/ticket"
	"agencydesk/internal/interfaces/cli/bootstrap"
	httpRouter "agencydesk/internal/interfaces/http"
)

var flags bootstrap.Flags

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Write the bootstrap users and brands",
		Long: `Load every store from the configured storage. Empty user and brand slots
are filled with the bootstrap fixtures; existing data is left untouched.`,
		RunE: run,
	}

	flags.Register(cmd)

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	cfg, log, err := bootstrap.Init(flags)
	if err != nil {
		return err
	}
	if cfg.Storage.Driver == httpRouter.StorageMemory {
		return fmt.Errorf("nothing to seed: storage driver %q does not persist", cfg.Storage.Driver)
	}

	core, err := httpRouter.NewCore(cmd.Context(), cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	defer core.Close()

	if err := core.Load(cmd.Context()); err != nil {
		return fmt.Errorf("failed to load stores: %w", err)
	}

	svc := core.Services()
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "STORAGE\t%s\n", cfg.Storage.Driver)
	fmt.Fprintf(tw, "USERS\t%d\n", len(svc.Users.List()))
	fmt.Fprintf(tw, "BRANDS\t%d\n", len(svc.Brands.List()))
	fmt.Fprintf(tw, "TICKETS\t%d\n", len(svc.Tickets.List(ticket.Filter{})))
	fmt.Fprintf(tw, "RESOURCES\t%d\n", len(svc.Resources.List("", "")))
	fmt.Fprintf(tw, "SUBMISSIONS\t%d\n", len(svc.Submissions.List("", "")))
	fmt.Fprintf(tw, "NOTIFICATIONS\t%d\n", len(svc.Notifications.List()))
	return tw.Flush()
}
