package migrate

import (
	"fmt"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"agencydesk/internal/infrastructure/database"
	"agencydesk/internal/infrastructure/migration"
	"agencydesk/internal/interfaces/cli/bootstrap"
	"agencydesk/internal/shared/logger"
)

var (
	flags bootstrap.Flags
	steps int
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration tools",
		Long:  `Manage the slots table used by the database storage driver.`,
	}

	flags.Register(cmd)

	cmd.AddCommand(
		newUpCommand(),
		newDownCommand(),
		newStatusCommand(),
	)

	return cmd
}

func newUpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Run all pending migrations",
		Long:  `Apply all pending database migrations to bring the database schema up to date.`,
		RunE:  runUp,
	}
}

func newDownCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "down",
		Short: "Rollback migrations",
		Long:  `Rollback a specified number of database migrations.`,
		RunE:  runDown,
	}

	cmd.Flags().IntVarP(&steps, "steps", "n", 1, "Number of migrations to rollback")

	return cmd
}

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		Long:  `Display the current migration version and status of the database.`,
		RunE:  runStatus,
	}
}

// initEnv connects to the configured database. Scripted commands always use
// goose, whatever database.migrations says.
func initEnv() (*gorm.DB, *migration.GooseStrategy, logger.Interface, error) {
	cfg, log, err := bootstrap.Init(flags)
	if err != nil {
		return nil, nil, nil, err
	}

	if err := database.Init(&cfg.Database); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	strategy, ok := migration.NewGooseStrategy(log).(*migration.GooseStrategy)
	if !ok {
		return nil, nil, nil, fmt.Errorf("unexpected goose strategy type")
	}
	return database.Get(), strategy, log, nil
}

func closeDatabase(log logger.Interface) {
	if err := database.Close(); err != nil {
		log.Errorw("failed to close database", "error", err)
	}
}

func runUp(cmd *cobra.Command, args []string) error {
	db, strategy, log, err := initEnv()
	if err != nil {
		return err
	}
	defer closeDatabase(log)

	log.Infow("running up migrations", "environment", flags.Env)

	if err := strategy.Migrate(db); err != nil {
		log.Errorw("migration failed", "error", err)
		return fmt.Errorf("migration failed: %w", err)
	}

	log.Infow("migrations completed successfully")
	return nil
}

func runDown(cmd *cobra.Command, args []string) error {
	db, strategy, log, err := initEnv()
	if err != nil {
		return err
	}
	defer closeDatabase(log)

	log.Infow("running down migrations", "environment", flags.Env, "steps", steps)

	if err := strategy.MigrateDown(db, steps); err != nil {
		log.Errorw("down migration failed", "error", err)
		return fmt.Errorf("down migration failed: %w", err)
	}

	log.Infow("down migration completed successfully")
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	db, strategy, log, err := initEnv()
	if err != nil {
		return err
	}
	defer closeDatabase(log)

	log.Infow("checking migration status", "environment", flags.Env)

	version, err := strategy.GetVersion(db)
	if err != nil {
		log.Errorw("failed to get migration version", "error", err)
		return fmt.Errorf("failed to get migration version: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "\nMigration Status:\n")
	fmt.Fprintf(out, "  Environment:     %s\n", flags.Env)
	fmt.Fprintf(out, "  Current Version: %d\n", version)

	if err := strategy.Status(db); err != nil {
		log.Errorw("failed to get detailed status", "error", err)
		return fmt.Errorf("failed to get detailed status: %w", err)
	}
	return nil
}
