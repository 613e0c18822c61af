package accounting

import (
	"errors"
	"testing"

	"github.com/SscSPs/books_ledger/internal/apperrors"
	"github.com/SscSPs/books_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestSignedBalance(t *testing.T) {
	totals := domain.LineTotals{Debit: d("150.00"), Credit: d("40.50")}
	assert.True(t, d("109.50").Equal(SignedBalance(totals, domain.DebitBalance)))
	assert.True(t, d("-109.50").Equal(SignedBalance(totals, domain.CreditBalance)))
}

func TestSplitColumns(t *testing.T) {
	dr, cr := SplitColumns(d("10"), domain.DebitBalance)
	assert.True(t, d("10").Equal(dr))
	assert.True(t, cr.IsZero())

	// a debit-normal account in credit position, e.g. an overdrawn bank account
	dr, cr = SplitColumns(d("-10"), domain.DebitBalance)
	assert.True(t, dr.IsZero())
	assert.True(t, d("10").Equal(cr))

	dr, cr = SplitColumns(d("25"), domain.CreditBalance)
	assert.True(t, dr.IsZero())
	assert.True(t, d("25").Equal(cr))

	// contra account: accumulated depreciation carries a credit balance on the asset side
	dr, cr = SplitColumns(d("-3"), domain.CreditBalance)
	assert.True(t, d("3").Equal(dr))
	assert.True(t, cr.IsZero())
}

func TestNormalizeLines(t *testing.T) {
	lines, err := NormalizeLines([]domain.JournalLine{
		{AccountID: 1, Debit: d("10.005")},
		{AccountID: 2, Credit: d("10.01")},
	})
	require.NoError(t, err)
	assert.Equal(t, "10.01", lines[0].Debit.StringFixed(2))

	_, err = NormalizeLines([]domain.JournalLine{{AccountID: 1, Debit: d("5"), Credit: d("5")}})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = NormalizeLines([]domain.JournalLine{{AccountID: 1, Debit: d("-5")}})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = NormalizeLines([]domain.JournalLine{{AccountID: 1}})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = NormalizeLines(nil)
	assert.ErrorIs(t, err, apperrors.ErrUnbalanced)
}

func TestValidateBalance(t *testing.T) {
	err := ValidateBalance([]domain.JournalLine{
		{AccountID: 1, Debit: d("100.00")},
		{AccountID: 2, Debit: d("5.00")},
		{AccountID: 3, Credit: d("105.00")},
	})
	assert.NoError(t, err)

	err = ValidateBalance([]domain.JournalLine{
		{AccountID: 1, Debit: d("100.00")},
		{AccountID: 3, Credit: d("99.99")},
	})
	var unbalanced *apperrors.UnbalancedEntryError
	require.True(t, errors.As(err, &unbalanced))
	assert.Equal(t, "100.00", unbalanced.TotalDebit.StringFixed(2))
	assert.Equal(t, "99.99", unbalanced.TotalCredit.StringFixed(2))
}
