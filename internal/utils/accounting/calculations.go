package accounting

import (
	"fmt"

	"github.com/SscSPs/books_ledger/internal/apperrors"
	"github.com/SscSPs/books_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SignedBalance normalizes raw debit/credit totals by the account's normal balance.
// Debit-normal accounts report Σdebit − Σcredit, credit-normal accounts the reverse.
func SignedBalance(totals domain.LineTotals, nb domain.NormalBalance) decimal.Decimal {
	return domain.RoundMoney(totals.Signed(nb))
}

// SplitColumns places a normalized balance in the debit or credit column of a trial balance.
func SplitColumns(balance decimal.Decimal, nb domain.NormalBalance) (decimal.Decimal, decimal.Decimal) {
	debitSide := nb == domain.DebitBalance
	if balance.IsNegative() {
		debitSide = !debitSide
		balance = balance.Neg()
	}
	if debitSide {
		return balance, decimal.Zero
	}
	return decimal.Zero, balance
}

// NormalizeLines rounds every amount to cents and checks the per-line rules:
// amounts are non-negative, exactly one side is positive.
func NormalizeLines(lines []domain.JournalLine) ([]domain.JournalLine, error) {
	if len(lines) == 0 {
		return nil, &apperrors.UnbalancedEntryError{Reason: "entry has no lines"}
	}
	out := make([]domain.JournalLine, len(lines))
	for i, l := range lines {
		l.Debit = domain.RoundMoney(l.Debit)
		l.Credit = domain.RoundMoney(l.Credit)
		if l.Debit.IsNegative() || l.Credit.IsNegative() {
			return nil, fmt.Errorf("%w: line %d has a negative amount", apperrors.ErrValidation, i+1)
		}
		if l.Debit.IsPositive() && l.Credit.IsPositive() {
			return nil, fmt.Errorf("%w: line %d has both a debit and a credit", apperrors.ErrValidation, i+1)
		}
		if l.Debit.IsZero() && l.Credit.IsZero() {
			return nil, fmt.Errorf("%w: line %d has neither a debit nor a credit", apperrors.ErrValidation, i+1)
		}
		out[i] = l
	}
	return out, nil
}

// ValidateBalance fails with an UnbalancedEntryError when Σdebit and Σcredit differ by a cent or more.
func ValidateBalance(lines []domain.JournalLine) error {
	if len(lines) == 0 {
		return &apperrors.UnbalancedEntryError{Reason: "entry has no lines"}
	}
	debit, credit := domain.SumLines(lines)
	if debit.Sub(credit).Abs().GreaterThanOrEqual(domain.BalanceTolerance) {
		return &apperrors.UnbalancedEntryError{TotalDebit: debit, TotalCredit: credit}
	}
	return nil
}
