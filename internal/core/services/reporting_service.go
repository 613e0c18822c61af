package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/SscSPs/books_ledger/internal/apperrors"
	"github.com/SscSPs/books_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/books_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/books_ledger/internal/core/ports/services"
	"github.com/SscSPs/books_ledger/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// reportingService implements the ReportingService interface
type reportingService struct {
	BaseService
	balances    portssvc.BalanceSvc
	accountRepo portsrepo.AccountReader
	balanceRepo portsrepo.BalanceReader
	postingMap  domain.PostingMap
}

// ReportingServiceOption is a functional option for configuring the reporting service
type ReportingServiceOption func(*reportingService)

// WithReportingPostingMap sets the control and GST account codes used by aging and GST reports.
func WithReportingPostingMap(m domain.PostingMap) ReportingServiceOption {
	return func(s *reportingService) {
		s.postingMap = m
	}
}

// NewReportingService creates a new reporting service with the provided options
func NewReportingService(balances portssvc.BalanceSvc, accountRepo portsrepo.AccountReader, balanceRepo portsrepo.BalanceReader, options ...ReportingServiceOption) portssvc.ReportingService {
	svc := &reportingService{
		balances:    balances,
		accountRepo: accountRepo,
		balanceRepo: balanceRepo,
		postingMap:  domain.DefaultPostingMap(),
	}

	// Apply all options
	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure reportingService implements the ReportingService interface
var _ portssvc.ReportingService = (*reportingService)(nil)

// reportable drops accounts whose balance rounds to zero. Inactive accounts that
// still carry a balance are kept so statement totals tie out.
func reportable(b domain.AccountBalance) bool {
	return !domain.IsZeroMoney(b.Balance)
}

// oriented turns a normalized balance into the statement's natural direction:
// debit-positive for assets and expenses, credit-positive for the rest.
// Contra accounts therefore come out negative in their section.
func oriented(b domain.AccountBalance) decimal.Decimal {
	natural := domain.DefaultNormalBalance(b.Account.AccountType)
	if b.Account.NormalBalance == natural {
		return b.Balance
	}
	return b.Balance.Neg()
}

func toAmount(b domain.AccountBalance) domain.AccountAmount {
	return domain.AccountAmount{
		AccountID: b.Account.AccountID,
		Code:      b.Account.Code,
		Name:      b.Account.Name,
		SubType:   b.Account.SubType,
		Amount:    domain.RoundMoney(oriented(b)),
	}
}

// TrialBalance generates a trial balance report as of a specific date.
// Inactive accounts that still carry a balance are listed so the totals tie.
func (s *reportingService) TrialBalance(ctx context.Context, asOf time.Time) (*domain.TrialBalance, error) {
	asOf = domain.DateOnly(asOf)
	balances, err := s.balances.BalancesAt(ctx, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve balances for trial balance", slog.String("asOf", asOf.Format(time.DateOnly)))
		return nil, fmt.Errorf("failed to retrieve trial balance data: %w", err)
	}

	report := &domain.TrialBalance{AsOf: asOf, Rows: []domain.TrialBalanceRow{}, TotalDebit: decimal.Zero, TotalCredit: decimal.Zero}
	for _, b := range balances {
		if !reportable(b) {
			continue
		}
		debit, credit := accounting.SplitColumns(domain.RoundMoney(b.Balance), b.Account.NormalBalance)
		report.Rows = append(report.Rows, domain.TrialBalanceRow{
			AccountID:   b.Account.AccountID,
			Code:        b.Account.Code,
			AccountName: b.Account.Name,
			AccountType: b.Account.AccountType,
			Debit:       debit,
			Credit:      credit,
		})
		report.TotalDebit = report.TotalDebit.Add(debit)
		report.TotalCredit = report.TotalCredit.Add(credit)
	}
	report.IsBalanced = domain.IsZeroMoney(report.TotalDebit.Sub(report.TotalCredit))
	if !report.IsBalanced {
		s.LogError(ctx, apperrors.ErrUnbalanced, "Trial balance does not balance",
			slog.String("asOf", asOf.Format(time.DateOnly)),
			slog.String("total_debit", report.TotalDebit.StringFixed(2)),
			slog.String("total_credit", report.TotalCredit.StringFixed(2)))
	}

	s.LogInfo(ctx, "Trial balance report generated successfully",
		slog.String("asOf", asOf.Format(time.DateOnly)),
		slog.Int("row_count", len(report.Rows)))
	return report, nil
}

// sections groups balances by sub type in order of first appearance.
func sections(balances []domain.AccountBalance) ([]domain.ReportSection, decimal.Decimal) {
	var out []domain.ReportSection
	index := map[string]int{}
	total := decimal.Zero
	for _, b := range balances {
		if !reportable(b) {
			continue
		}
		subType := b.Account.SubType
		if subType == "" {
			subType = string(b.Account.AccountType)
		}
		i, ok := index[subType]
		if !ok {
			i = len(out)
			index[subType] = i
			out = append(out, domain.ReportSection{SubType: subType, Accounts: []domain.AccountAmount{}, Total: decimal.Zero})
		}
		amount := toAmount(b)
		out[i].Accounts = append(out[i].Accounts, amount)
		out[i].Total = out[i].Total.Add(amount.Amount)
		total = total.Add(amount.Amount)
	}
	if out == nil {
		out = []domain.ReportSection{}
	}
	return out, total
}

func byType(balances []domain.AccountBalance, t domain.AccountType) []domain.AccountBalance {
	var out []domain.AccountBalance
	for _, b := range balances {
		if b.Account.AccountType == t {
			out = append(out, b)
		}
	}
	return out
}

func sumOriented(balances []domain.AccountBalance) decimal.Decimal {
	total := decimal.Zero
	for _, b := range balances {
		total = total.Add(domain.RoundMoney(oriented(b)))
	}
	return total
}

// BalanceSheet generates a balance sheet report as of a specific date
func (s *reportingService) BalanceSheet(ctx context.Context, asOf time.Time) (*domain.BalanceSheet, error) {
	asOf = domain.DateOnly(asOf)
	balances, err := s.balances.BalancesAt(ctx, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve balances for balance sheet", slog.String("asOf", asOf.Format(time.DateOnly)))
		return nil, fmt.Errorf("failed to retrieve balance sheet data: %w", err)
	}

	report := &domain.BalanceSheet{AsOf: asOf}
	report.Assets, report.TotalAssets = sections(byType(balances, domain.Asset))
	report.Liabilities, report.TotalLiabilities = sections(byType(balances, domain.Liability))
	report.Equity, report.TotalEquity = sections(byType(balances, domain.Equity))

	report.NetIncome = sumOriented(byType(balances, domain.Revenue)).Sub(sumOriented(byType(balances, domain.Expense)))
	if !domain.IsZeroMoney(report.NetIncome) {
		line := domain.AccountAmount{Name: domain.NetIncomeLineName, SubType: domain.SubTypeEquity, Amount: report.NetIncome}
		report.Equity = append(report.Equity, domain.ReportSection{
			SubType:  "current_earnings",
			Accounts: []domain.AccountAmount{line},
			Total:    report.NetIncome,
		})
		report.TotalEquity = report.TotalEquity.Add(report.NetIncome)
	}

	report.IsBalanced = report.TotalAssets.Equal(report.TotalLiabilities.Add(report.TotalEquity))

	s.LogInfo(ctx, "Balance sheet report generated successfully",
		slog.String("asOf", asOf.Format(time.DateOnly)),
		slog.Bool("is_balanced", report.IsBalanced))
	return report, nil
}

// ProfitAndLoss generates a profit and loss report for a specific period
func (s *reportingService) ProfitAndLoss(ctx context.Context, from, to time.Time) (*domain.ProfitAndLoss, error) {
	balances, err := s.balances.BalancesInRange(ctx, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve balances for profit and loss",
			slog.String("from", from.Format(time.DateOnly)),
			slog.String("to", to.Format(time.DateOnly)))
		return nil, fmt.Errorf("failed to retrieve profit and loss data: %w", err)
	}

	report := &domain.ProfitAndLoss{
		From:             domain.DateOnly(from),
		To:               domain.DateOnly(to),
		Revenue:          []domain.AccountAmount{},
		CostOfGoodsSold:  []domain.AccountAmount{},
		Expenses:         []domain.AccountAmount{},
		TotalRevenue:     decimal.Zero,
		TotalCostOfGoods: decimal.Zero,
		TotalExpenses:    decimal.Zero,
	}
	for _, b := range balances {
		if !reportable(b) {
			continue
		}
		amount := toAmount(b)
		switch {
		case b.Account.AccountType == domain.Revenue:
			report.Revenue = append(report.Revenue, amount)
			report.TotalRevenue = report.TotalRevenue.Add(amount.Amount)
		case b.Account.AccountType == domain.Expense && b.Account.SubType == domain.SubTypeCOGS:
			report.CostOfGoodsSold = append(report.CostOfGoodsSold, amount)
			report.TotalCostOfGoods = report.TotalCostOfGoods.Add(amount.Amount)
		case b.Account.AccountType == domain.Expense:
			report.Expenses = append(report.Expenses, amount)
			report.TotalExpenses = report.TotalExpenses.Add(amount.Amount)
		}
	}
	report.GrossProfit = report.TotalRevenue.Sub(report.TotalCostOfGoods)
	report.NetIncome = report.GrossProfit.Sub(report.TotalExpenses)

	s.LogInfo(ctx, "Profit and loss report generated successfully",
		slog.String("from", report.From.Format(time.DateOnly)),
		slog.String("to", report.To.Format(time.DateOnly)))
	return report, nil
}

// Aging lists open receivables or payables by age as of a date
func (s *reportingService) Aging(ctx context.Context, kind domain.AgingKind, asOf time.Time) (*domain.AgingReport, error) {
	var code string
	switch kind {
	case domain.AgingReceivables:
		code = s.postingMap.Receivable()
	case domain.AgingPayables:
		code = s.postingMap.Payable()
	default:
		return nil, fmt.Errorf("%w: unknown aging kind %q", apperrors.ErrValidation, kind)
	}
	asOf = domain.DateOnly(asOf)

	control, err := s.accountRepo.FindAccountByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s control account %s: %w", kind, code, err)
	}
	sources, err := s.balanceRepo.SumLinesBySource(ctx, control.AccountID, kind, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to group control account lines", slog.String("kind", string(kind)))
		return nil, fmt.Errorf("failed to retrieve aging data: %w", err)
	}
	controlBalance, err := s.balances.BalanceAt(ctx, control.AccountID, asOf)
	if err != nil {
		return nil, err
	}

	report := &domain.AgingReport{
		Kind:           kind,
		AsOf:           asOf,
		Rows:           []domain.AgingRow{},
		BucketTotals:   make(map[domain.AgingBucket]decimal.Decimal, len(domain.AgingBuckets)),
		Total:          decimal.Zero,
		ControlBalance: controlBalance,
	}
	for _, bucket := range domain.AgingBuckets {
		report.BucketTotals[bucket] = decimal.Zero
	}

	for _, src := range sources {
		outstanding := accounting.SignedBalance(src.Totals, control.NormalBalance)
		if domain.IsZeroMoney(outstanding) {
			continue
		}
		days := int(asOf.Sub(domain.DateOnly(src.DocumentDate)).Hours() / 24)
		if days < 0 {
			days = 0
		}
		bucket := domain.BucketForAge(days)
		report.Rows = append(report.Rows, domain.AgingRow{
			SourceID:    src.SourceID,
			Reference:   src.Reference,
			Date:        domain.DateOnly(src.DocumentDate),
			DaysOpen:    days,
			Bucket:      bucket,
			Outstanding: outstanding,
		})
		report.BucketTotals[bucket] = report.BucketTotals[bucket].Add(outstanding)
		report.Total = report.Total.Add(outstanding)
	}
	sort.SliceStable(report.Rows, func(i, j int) bool {
		if report.Rows[i].Date.Equal(report.Rows[j].Date) {
			return report.Rows[i].SourceID < report.Rows[j].SourceID
		}
		return report.Rows[i].Date.Before(report.Rows[j].Date)
	})
	report.IsBalanced = domain.IsZeroMoney(report.Total.Sub(report.ControlBalance))

	s.LogInfo(ctx, "Aging report generated successfully",
		slog.String("kind", string(kind)),
		slog.Int("open_documents", len(report.Rows)))
	return report, nil
}

// GSTWorksheet computes the GST34 lines for a period
func (s *reportingService) GSTWorksheet(ctx context.Context, from, to time.Time, installments decimal.Decimal) (*domain.GSTWorksheet, error) {
	collected, err := s.rangeBalanceByCode(ctx, s.postingMap.GSTPayable(), from, to)
	if err != nil {
		return nil, err
	}
	credits, err := s.rangeBalanceByCode(ctx, s.postingMap.GSTReceivable(), from, to)
	if err != nil {
		return nil, err
	}

	report := &domain.GSTWorksheet{
		From:    domain.DateOnly(from),
		To:      domain.DateOnly(to),
		Line101: collected,
		Line106: credits,
		Line110: domain.RoundMoney(installments),
	}
	report.Line109 = report.Line101.Sub(report.Line106)
	report.Line113 = report.Line109.Sub(report.Line110)
	report.IsRefund = report.Line113.IsNegative()

	s.LogInfo(ctx, "GST worksheet generated successfully",
		slog.String("from", report.From.Format(time.DateOnly)),
		slog.String("to", report.To.Format(time.DateOnly)),
		slog.String("line_113", report.Line113.StringFixed(2)))
	return report, nil
}

func (s *reportingService) rangeBalanceByCode(ctx context.Context, code string, from, to time.Time) (decimal.Decimal, error) {
	acc, err := s.accountRepo.FindAccountByCode(ctx, code)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to resolve account %s: %w", code, err)
	}
	return s.balances.BalanceInRange(ctx, acc.AccountID, from, to)
}

// T2125Worksheet groups period expenses by their T2125 line
func (s *reportingService) T2125Worksheet(ctx context.Context, from, to time.Time) (*domain.T2125Worksheet, error) {
	balances, err := s.balances.BalancesInRange(ctx, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve balances for T2125 worksheet")
		return nil, fmt.Errorf("failed to retrieve T2125 data: %w", err)
	}

	report := &domain.T2125Worksheet{
		From:          domain.DateOnly(from),
		To:            domain.DateOnly(to),
		GrossIncome:   decimal.Zero,
		CostOfGoods:   decimal.Zero,
		Lines:         []domain.T2125Line{},
		Unmapped:      []domain.AccountAmount{},
		TotalExpenses: decimal.Zero,
	}
	lines := map[string]*domain.T2125Line{}
	for _, b := range balances {
		if !reportable(b) {
			continue
		}
		amount := toAmount(b)
		switch {
		case b.Account.AccountType == domain.Revenue:
			report.GrossIncome = report.GrossIncome.Add(amount.Amount)
		case b.Account.AccountType != domain.Expense:
			continue
		case b.Account.SubType == domain.SubTypeCOGS:
			report.CostOfGoods = report.CostOfGoods.Add(amount.Amount)
		case b.Account.TaxCode == "":
			report.Unmapped = append(report.Unmapped, amount)
			report.TotalExpenses = report.TotalExpenses.Add(amount.Amount)
		default:
			line, ok := lines[b.Account.TaxCode]
			if !ok {
				line = &domain.T2125Line{TaxCode: b.Account.TaxCode, Amount: decimal.Zero}
				lines[b.Account.TaxCode] = line
			}
			line.Accounts = append(line.Accounts, amount)
			line.Amount = line.Amount.Add(amount.Amount)
			report.TotalExpenses = report.TotalExpenses.Add(amount.Amount)
		}
	}
	for _, line := range lines {
		report.Lines = append(report.Lines, *line)
	}
	sort.Slice(report.Lines, func(i, j int) bool { return report.Lines[i].TaxCode < report.Lines[j].TaxCode })
	report.NetIncome = report.GrossIncome.Sub(report.CostOfGoods).Sub(report.TotalExpenses)

	s.LogInfo(ctx, "T2125 worksheet generated successfully",
		slog.Int("line_count", len(report.Lines)),
		slog.Int("unmapped_count", len(report.Unmapped)))
	return report, nil
}
