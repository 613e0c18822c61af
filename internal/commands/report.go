package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/SscSPs/books_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/books_ledger/internal/core/ports/services"
	"github.com/SscSPs/books_ledger/internal/export"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

const dateLayout = "2006-01-02"

type reportFlags struct {
	asOf         string
	from         string
	to           string
	periodOf     string
	frequency    string
	installments string
	out          string
}

var reportKinds = []string{"trial-balance", "balance-sheet", "profit-and-loss", "ar-aging", "ap-aging", "gst", "t2125"}

func newReportCommand(a *app) *cobra.Command {
	var flags reportFlags

	cmd := &cobra.Command{
		Use:       "report <kind>",
		Short:     "Print a statement as JSON or write it as an xlsx workbook",
		Long:      "Kinds: trial-balance, balance-sheet, profit-and-loss, ar-aging, ap-aging, gst, t2125.",
		ValidArgs: reportKinds,
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closeFn, err := a.open(cmd.Context(), a)
			if err != nil {
				return err
			}
			defer closeFn()

			report, err := buildReport(cmd.Context(), svc.Reporting, args[0], flags, a.cfg.GSTFilingFrequency)
			if err != nil {
				return err
			}

			if flags.out == "" {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}
			f, err := os.Create(flags.out)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", flags.out, err)
			}
			if err := export.Write(f, report); err != nil {
				_ = f.Close()
				return fmt.Errorf("failed to write workbook: %w", err)
			}
			if err := f.Close(); err != nil {
				return err
			}
			a.logger.Info("Report written", slog.String("kind", args[0]), slog.String("file", flags.out))
			return nil
		},
	}

	cmd.Flags().StringVar(&flags.asOf, "as-of", "", "Report date for point-in-time reports, YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&flags.from, "from", "", "First day of the period, YYYY-MM-DD")
	cmd.Flags().StringVar(&flags.to, "to", "", "Last day of the period, YYYY-MM-DD")
	cmd.Flags().StringVar(&flags.periodOf, "period-of", "", "gst: any day inside the filing period, YYYY-MM-DD")
	cmd.Flags().StringVar(&flags.frequency, "frequency", "", "gst: monthly, quarterly or annual (default GST_FILING_FREQUENCY)")
	cmd.Flags().StringVar(&flags.installments, "installments", "0", "gst: instalments paid for the period")
	cmd.Flags().StringVarP(&flags.out, "out", "o", "", "Write an xlsx workbook to this file instead of printing JSON")
	return cmd
}

func buildReport(ctx context.Context, svc portssvc.ReportingService, kind string, flags reportFlags, defaultFreq domain.FilingFrequency) (any, error) {
	switch kind {
	case "trial-balance", "balance-sheet", "ar-aging", "ap-aging":
		asOf := domain.DateOnly(time.Now().UTC())
		if flags.asOf != "" {
			var err error
			if asOf, err = parseDate("as-of", flags.asOf); err != nil {
				return nil, err
			}
		}
		switch kind {
		case "trial-balance":
			return svc.TrialBalance(ctx, asOf)
		case "balance-sheet":
			return svc.BalanceSheet(ctx, asOf)
		case "ar-aging":
			return svc.Aging(ctx, domain.AgingReceivables, asOf)
		default:
			return svc.Aging(ctx, domain.AgingPayables, asOf)
		}
	case "gst":
		installments, err := decimal.NewFromString(flags.installments)
		if err != nil {
			return nil, fmt.Errorf("invalid --installments %q: %w", flags.installments, err)
		}
		from, to, err := gstRange(flags, defaultFreq)
		if err != nil {
			return nil, err
		}
		return svc.GSTWorksheet(ctx, from, to, installments)
	default:
		from, to, err := dateRange(flags)
		if err != nil {
			return nil, err
		}
		if kind == "profit-and-loss" {
			return svc.ProfitAndLoss(ctx, from, to)
		}
		return svc.T2125Worksheet(ctx, from, to)
	}
}

func gstRange(flags reportFlags, defaultFreq domain.FilingFrequency) (time.Time, time.Time, error) {
	if flags.periodOf == "" {
		return dateRange(flags)
	}
	day, err := parseDate("period-of", flags.periodOf)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	freq := defaultFreq
	if flags.frequency != "" {
		freq = domain.FilingFrequency(flags.frequency)
	}
	return domain.GSTPeriod(day, freq)
}

func dateRange(flags reportFlags) (time.Time, time.Time, error) {
	if flags.from == "" || flags.to == "" {
		return time.Time{}, time.Time{}, fmt.Errorf("--from and --to are required")
	}
	from, err := parseDate("from", flags.from)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	to, err := parseDate("to", flags.to)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return from, to, nil
}

func parseDate(flag, value string) (time.Time, error) {
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --%s %q: expected YYYY-MM-DD", flag, value)
	}
	return t, nil
}
