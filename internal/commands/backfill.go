package commands

import (
	"fmt"

	"github.com/SscSPs/books_ledger/internal/core/domain"
	"github.com/spf13/cobra"
)

func newBackfillCommand(a *app) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "backfill",
		Short: "Post a ledger entry for every business event that lacks one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, closeFn, err := a.open(cmd.Context(), a)
			if err != nil {
				return err
			}
			defer closeFn()

			result, err := svc.Backfill.Run(cmd.Context(), domain.BackfillOptions{DryRun: dryRun})
			if err != nil {
				return fmt.Errorf("backfill failed: %w", err)
			}

			out := cmd.OutOrStdout()
			verb := "created"
			if result.DryRun {
				verb = "would create"
			}
			fmt.Fprintf(out, "Run %s: %s %d, already present %d, not postable %d, failed %d\n",
				result.RunID, verb, result.Created, result.AlreadyPresent, result.NotPostable, len(result.Failures))
			for _, f := range result.Failures {
				fmt.Fprintf(out, "  %s %d: %s\n", f.EntryType, f.SourceID, f.Reason)
			}
			if len(result.Failures) > 0 {
				return fmt.Errorf("%d events could not be posted", len(result.Failures))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report what would be posted without writing")
	return cmd
}
