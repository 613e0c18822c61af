package commands

import (
	"github.com/SscSPs/books_ledger/pkg/database"
	"github.com/spf13/cobra"
)

func newMigrateCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back database migrations",
	}
	cmd.AddCommand(newMigrateStepCommand(a, database.MigrateUp, "Apply every pending migration"))
	cmd.AddCommand(newMigrateStepCommand(a, database.MigrateDown, "Roll back the most recent migration"))
	return cmd
}

func newMigrateStepCommand(a *app, direction database.MigrateDirection, short string) *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   string(direction),
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if a.cfg.DatabaseURL == "" {
				return errNoDatabase
			}
			if path == "" {
				path = a.cfg.MigrationsPath
			}
			return database.RunMigrations(a.logger, a.cfg.DatabaseURL, path, direction)
		},
	}
	cmd.Flags().StringVar(&path, "path", "", "Migration source URL (default MIGRATIONS_PATH)")
	return cmd
}
