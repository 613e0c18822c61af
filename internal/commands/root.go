// Package commands implements ledgerctl, the operator CLI for the ledger.
package commands

import (
	"context"
	"log/slog"

	portssvc "github.com/SscSPs/books_ledger/internal/core/ports/services"
	"github.com/SscSPs/books_ledger/internal/platform/config"
	"github.com/SscSPs/books_ledger/internal/platform/logctx"
	"github.com/spf13/cobra"
)

// opener builds the services a command runs against and a func releasing them.
type opener func(ctx context.Context, a *app) (*portssvc.ServiceContainer, func(), error)

// app is shared by every subcommand. cfg and logger are filled in before a subcommand runs.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
	open   opener
}

// NewRootCommand creates the root command with all subcommands attached.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&app{open: openServices})
}

func newRootCommand(a *app) *cobra.Command {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:   "ledgerctl",
		Short: "Operate the double-entry ledger: migrations, seeding, backfill and reports",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if a.cfg == nil {
				cfg, err := config.LoadConfig()
				if err != nil {
					return err
				}
				a.cfg = cfg
			}
			if a.logger == nil {
				level := slog.LevelInfo
				if verbose {
					level = slog.LevelDebug
				}
				a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
			}
			cmd.SetContext(logctx.WithLogger(cmd.Context(), a.logger))
			return nil
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log at debug level")

	rootCmd.AddCommand(newMigrateCommand(a))
	rootCmd.AddCommand(newSeedCommand(a))
	rootCmd.AddCommand(newBackfillCommand(a))
	rootCmd.AddCommand(newReportCommand(a))

	return rootCmd
}
