package services

import (
	"context"
	"time"

	"github.com/SscSPs/books_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceSvc computes account balances normalized by each account's normal balance.
// Only posted lines count.
type BalanceSvc interface {
	// BalanceAt sums lines dated on or before asOf.
	BalanceAt(ctx context.Context, accountID int64, asOf time.Time) (decimal.Decimal, error)

	// BalanceInRange sums lines dated within [from, to].
	BalanceInRange(ctx context.Context, accountID int64, from, to time.Time) (decimal.Decimal, error)

	// BalancesAt returns the balance of every account as of a date, ordered by code.
	BalancesAt(ctx context.Context, asOf time.Time) ([]domain.AccountBalance, error)

	// BalancesInRange returns the activity of every account within [from, to], ordered by code.
	BalancesInRange(ctx context.Context, from, to time.Time) ([]domain.AccountBalance, error)
}

// ReportingService defines operations for generating financial reports
type ReportingService interface {
	// TrialBalance generates a trial balance report as of a specific date
	TrialBalance(ctx context.Context, asOf time.Time) (*domain.TrialBalance, error)

	// ProfitAndLoss generates a profit and loss report for a specific period
	ProfitAndLoss(ctx context.Context, from, to time.Time) (*domain.ProfitAndLoss, error)

	// BalanceSheet generates a balance sheet report as of a specific date
	BalanceSheet(ctx context.Context, asOf time.Time) (*domain.BalanceSheet, error)

	// Aging lists open receivables or payables by age as of a date
	Aging(ctx context.Context, kind domain.AgingKind, asOf time.Time) (*domain.AgingReport, error)

	// GSTWorksheet computes the GST34 lines for a period
	GSTWorksheet(ctx context.Context, from, to time.Time, installments decimal.Decimal) (*domain.GSTWorksheet, error)

	// T2125Worksheet groups period expenses by their T2125 line
	T2125Worksheet(ctx context.Context, from, to time.Time) (*domain.T2125Worksheet, error)
}
