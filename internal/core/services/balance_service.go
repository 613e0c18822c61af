package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/books_ledger/internal/apperrors"
	"github.com/SscSPs/books_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/books_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/books_ledger/internal/core/ports/services"
	"github.com/SscSPs/books_ledger/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// balanceService derives balances from posted journal lines.
type balanceService struct {
	BaseService
	accountRepo portsrepo.AccountReader
	balanceRepo portsrepo.BalanceReader
}

// NewBalanceService creates the balance engine.
func NewBalanceService(accountRepo portsrepo.AccountReader, balanceRepo portsrepo.BalanceReader) portssvc.BalanceSvc {
	return &balanceService{accountRepo: accountRepo, balanceRepo: balanceRepo}
}

var _ portssvc.BalanceSvc = (*balanceService)(nil)

func (s *balanceService) BalanceAt(ctx context.Context, accountID int64, asOf time.Time) (decimal.Decimal, error) {
	return s.single(ctx, accountID, portsrepo.BalanceQuery{To: domain.DateOnly(asOf)})
}

func (s *balanceService) BalanceInRange(ctx context.Context, accountID int64, from, to time.Time) (decimal.Decimal, error) {
	q, err := rangeQuery(from, to)
	if err != nil {
		return decimal.Zero, err
	}
	return s.single(ctx, accountID, q)
}

func (s *balanceService) single(ctx context.Context, accountID int64, q portsrepo.BalanceQuery) (decimal.Decimal, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return decimal.Zero, err
	}
	q.AccountIDs = []int64{accountID}
	totals, err := s.balanceRepo.SumLinesByAccount(ctx, q)
	if err != nil {
		s.LogError(ctx, err, "Failed to sum account lines", slog.Int64("account_id", accountID))
		return decimal.Zero, fmt.Errorf("failed to compute balance: %w", err)
	}
	return accounting.SignedBalance(totals[accountID], account.NormalBalance), nil
}

func (s *balanceService) BalancesAt(ctx context.Context, asOf time.Time) ([]domain.AccountBalance, error) {
	return s.all(ctx, portsrepo.BalanceQuery{To: domain.DateOnly(asOf)})
}

func (s *balanceService) BalancesInRange(ctx context.Context, from, to time.Time) ([]domain.AccountBalance, error) {
	q, err := rangeQuery(from, to)
	if err != nil {
		return nil, err
	}
	return s.all(ctx, q)
}

// all computes every account's balance with one aggregate query.
// Inactive accounts are included, callers decide whether to show them.
func (s *balanceService) all(ctx context.Context, q portsrepo.BalanceQuery) ([]domain.AccountBalance, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, domain.AccountFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	totals, err := s.balanceRepo.SumLinesByAccount(ctx, q)
	if err != nil {
		s.LogError(ctx, err, "Failed to sum lines by account")
		return nil, fmt.Errorf("failed to compute balances: %w", err)
	}

	balances := make([]domain.AccountBalance, 0, len(accounts))
	for _, acc := range accounts {
		balances = append(balances, domain.AccountBalance{
			Account: acc,
			Balance: accounting.SignedBalance(totals[acc.AccountID], acc.NormalBalance),
		})
	}
	return balances, nil
}

func rangeQuery(from, to time.Time) (portsrepo.BalanceQuery, error) {
	start, end := domain.DateOnly(from), domain.DateOnly(to)
	if start.After(end) {
		return portsrepo.BalanceQuery{}, fmt.Errorf("%w: range start %s is after end %s",
			apperrors.ErrValidation, start.Format(time.DateOnly), end.Format(time.DateOnly))
	}
	return portsrepo.BalanceQuery{From: &start, To: end}, nil
}
