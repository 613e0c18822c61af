package commands

import (
	"fmt"

	"github.com/SscSPs/books_ledger/internal/core/domain"
	"github.com/spf13/cobra"
)

func newSeedCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Register the default chart of accounts",
		Long:  "Registers every account of the default chart whose code is missing. Running it again creates nothing.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, closeFn, err := a.open(cmd.Context(), a)
			if err != nil {
				return err
			}
			defer closeFn()

			created, err := svc.Account.SeedAccounts(cmd.Context(), domain.DefaultChartOfAccounts())
			if err != nil {
				return fmt.Errorf("failed to seed accounts: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %d accounts\n", created)
			return nil
		},
	}
}
