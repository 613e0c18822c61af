package services_test

import (
	"testing"

	"github.com/SscSPs/books_ledger/internal/apperrors"
	"github.com/SscSPs/books_ledger/internal/core/domain"
	"github.com/SscSPs/books_ledger/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBalances(t *testing.T) {
	f := newLedgerFixture(t)
	f.postQuarter()
	end := day(2024, 3, 31)

	assertMoney(t, "11275", f.balanceAt("1050", end))
	assertMoney(t, "2100", f.balanceAt("1100", end))
	assertMoney(t, "175", f.balanceAt("2100", end))
	assertMoney(t, "750", f.balanceAt("2000", end))
	assertMoney(t, "11050", f.balanceAt("1050", day(2024, 1, 31)))
	assertMoney(t, "0", f.balanceAt("1050", day(2023, 12, 31)), "nothing before the first entry")

	feb, err := f.svc.Balance.BalanceInRange(f.ctx, f.account("4000").AccountID, day(2024, 2, 1), day(2024, 2, 29))
	require.NoError(t, err)
	assertMoney(t, "2000", feb)

	_, err = f.svc.Balance.BalanceInRange(f.ctx, f.account("4000").AccountID, day(2024, 3, 1), day(2024, 2, 1))
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = f.svc.Balance.BalanceAt(f.ctx, 9999, end)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestTrialBalance(t *testing.T) {
	f := newLedgerFixture(t)
	f.postQuarter()

	tb, err := f.svc.Reporting.TrialBalance(f.ctx, day(2024, 3, 31))
	require.NoError(t, err)
	assert.True(t, tb.IsBalanced)
	assertMoney(t, "14530", tb.TotalDebit)
	assertMoney(t, "14530", tb.TotalCredit)
	assert.Len(t, tb.Rows, 11)

	rows := map[string]domain.TrialBalanceRow{}
	for _, r := range tb.Rows {
		rows[r.Code] = r
	}
	assertMoney(t, "3500", rows["4000"].Credit)
	assertMoney(t, "0", rows["4000"].Debit)
	assertMoney(t, "55", rows["1300"].Debit)

	// every prefix of the ledger balances
	for _, asOf := range []int{1, 15, 20, 31} {
		tb, err := f.svc.Reporting.TrialBalance(f.ctx, day(2024, 1, asOf))
		require.NoError(t, err)
		assert.True(t, tb.IsBalanced, "january %d", asOf)
	}
}

func TestTrialBalance_OverdrawnAccountMovesColumn(t *testing.T) {
	f := newLedgerFixture(t)
	_, err := f.svc.Posting.PostManual(f.ctx, domain.PostingRequest{
		EntryDate:   day(2024, 1, 1),
		Description: "Overdraft",
		Lines: []domain.JournalLine{
			{AccountID: f.account("5100").AccountID, Debit: dec("40")},
			{AccountID: f.account("1050").AccountID, Credit: dec("40")},
		},
	})
	require.NoError(t, err)

	tb, err := f.svc.Reporting.TrialBalance(f.ctx, day(2024, 1, 31))
	require.NoError(t, err)
	require.Len(t, tb.Rows, 2)
	for _, r := range tb.Rows {
		if r.Code == "1050" {
			assertMoney(t, "0", r.Debit)
			assertMoney(t, "40", r.Credit)
		}
	}
	assert.True(t, tb.IsBalanced)
}

func TestBalanceSheet(t *testing.T) {
	f := newLedgerFixture(t)
	f.postQuarter()

	bs, err := f.svc.Reporting.BalanceSheet(f.ctx, day(2024, 3, 31))
	require.NoError(t, err)
	assert.True(t, bs.IsBalanced)
	assertMoney(t, "13430", bs.TotalAssets)
	assertMoney(t, "1030", bs.TotalLiabilities)
	assertMoney(t, "2400", bs.NetIncome)
	assertMoney(t, "12400", bs.TotalEquity)

	last := bs.Equity[len(bs.Equity)-1]
	require.Len(t, last.Accounts, 1)
	assert.Equal(t, domain.NetIncomeLineName, last.Accounts[0].Name)

	jan, err := f.svc.Reporting.BalanceSheet(f.ctx, day(2024, 1, 31))
	require.NoError(t, err)
	assert.True(t, jan.IsBalanced)
	assertMoney(t, "11580", jan.TotalAssets)
	assertMoney(t, "1400", jan.NetIncome)
}

func TestBalanceSheet_ContraAssetReducesAssets(t *testing.T) {
	f := newLedgerFixture(t)
	post := func(debit, credit, amount string) {
		_, err := f.svc.Posting.PostManual(f.ctx, domain.PostingRequest{
			EntryDate:   day(2024, 1, 1),
			Description: "Equipment",
			Lines: []domain.JournalLine{
				{AccountID: f.account(debit).AccountID, Debit: dec(amount)},
				{AccountID: f.account(credit).AccountID, Credit: dec(amount)},
			},
		})
		require.NoError(t, err)
	}
	post("1500", "3000", "3000")
	post("5900", "1520", "500")

	bs, err := f.svc.Reporting.BalanceSheet(f.ctx, day(2024, 12, 31))
	require.NoError(t, err)
	assertMoney(t, "2500", bs.TotalAssets)
	assertMoney(t, "-500", bs.NetIncome)
	assert.True(t, bs.IsBalanced)
}

func TestBalanceSheet_InactiveAccountWithBalanceStillReported(t *testing.T) {
	f := newLedgerFixture(t)
	f.postQuarter()
	f.deactivate("1300")

	bs, err := f.svc.Reporting.BalanceSheet(f.ctx, day(2024, 3, 31))
	require.NoError(t, err)
	assert.True(t, bs.IsBalanced)
	assertMoney(t, "13430", bs.TotalAssets)
}

func TestTrialBalance_InactiveAccountWithBalanceStillListed(t *testing.T) {
	f := newLedgerFixture(t)
	f.postQuarter()
	f.deactivate("1300")

	tb, err := f.svc.Reporting.TrialBalance(f.ctx, day(2024, 3, 31))
	require.NoError(t, err)
	assert.True(t, tb.IsBalanced)
	var codes []string
	for _, row := range tb.Rows {
		codes = append(codes, row.Code)
	}
	assert.Contains(t, codes, "1300")
}

func TestProfitAndLoss(t *testing.T) {
	f := newLedgerFixture(t)
	f.postQuarter()

	q1, err := f.svc.Reporting.ProfitAndLoss(f.ctx, day(2024, 1, 1), day(2024, 3, 31))
	require.NoError(t, err)
	assertMoney(t, "3500", q1.TotalRevenue)
	assertMoney(t, "1100", q1.TotalExpenses)
	assertMoney(t, "0", q1.TotalCostOfGoods)
	assertMoney(t, "2400", q1.NetIncome)
	assert.Len(t, q1.Expenses, 3)

	feb, err := f.svc.Reporting.ProfitAndLoss(f.ctx, day(2024, 2, 1), day(2024, 2, 29))
	require.NoError(t, err)
	assertMoney(t, "2000", feb.TotalRevenue)
	assertMoney(t, "1000", feb.TotalExpenses)
	assertMoney(t, "1000", feb.NetIncome)

	_, err = f.svc.Reporting.ProfitAndLoss(f.ctx, day(2024, 3, 1), day(2024, 1, 1))
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestProfitAndLoss_CostOfGoods(t *testing.T) {
	f := newLedgerFixture(t)
	_, err := f.svc.Posting.PostCashTransaction(f.ctx, domain.CashTransaction{
		TransactionID: 1, Date: day(2024, 5, 1), Description: "Stock", Amount: dec("300"),
		Category: "expense", Subcategory: "inventory",
	})
	require.NoError(t, err)
	_, err = f.svc.Posting.PostCashTransaction(f.ctx, domain.CashTransaction{
		TransactionID: 2, Date: day(2024, 5, 2), Description: "Sale", Amount: dec("1000"), Category: "revenue",
	})
	require.NoError(t, err)

	pl, err := f.svc.Reporting.ProfitAndLoss(f.ctx, day(2024, 5, 1), day(2024, 5, 31))
	require.NoError(t, err)
	assertMoney(t, "300", pl.TotalCostOfGoods)
	assertMoney(t, "700", pl.GrossProfit)
	assertMoney(t, "700", pl.NetIncome)
	assert.Empty(t, pl.Expenses)
}

func TestAging(t *testing.T) {
	f := newLedgerFixture(t)
	f.postQuarter()
	asOf := day(2024, 3, 31)

	ar, err := f.svc.Reporting.Aging(f.ctx, domain.AgingReceivables, asOf)
	require.NoError(t, err)
	require.Len(t, ar.Rows, 1, "the paid invoice is settled")
	assert.Equal(t, int64(1), ar.Rows[0].SourceID)
	assert.Equal(t, "INV-001", ar.Rows[0].Reference)
	assert.Equal(t, 59, ar.Rows[0].DaysOpen)
	assert.Equal(t, domain.Aging31To60, ar.Rows[0].Bucket)
	assertMoney(t, "2100", ar.BucketTotals[domain.Aging31To60])
	assertMoney(t, "0", ar.BucketTotals[domain.AgingCurrent])
	assert.True(t, ar.IsBalanced)

	ap, err := f.svc.Reporting.Aging(f.ctx, domain.AgingPayables, asOf)
	require.NoError(t, err)
	require.Len(t, ap.Rows, 1)
	assert.Equal(t, "B-100", ap.Rows[0].Reference)
	assert.Equal(t, 45, ap.Rows[0].DaysOpen)
	assertMoney(t, "750", ap.Rows[0].Outstanding)
	assertMoney(t, "750", ap.ControlBalance)
	assert.True(t, ap.IsBalanced)

	later, err := f.svc.Reporting.Aging(f.ctx, domain.AgingReceivables, day(2024, 6, 1))
	require.NoError(t, err)
	assert.Equal(t, domain.AgingOver90, later.Rows[0].Bucket)

	_, err = f.svc.Reporting.Aging(f.ctx, "inventory", asOf)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestGSTWorksheet(t *testing.T) {
	f := newLedgerFixture(t)
	f.postQuarter()

	ws, err := f.svc.Reporting.GSTWorksheet(f.ctx, day(2024, 1, 1), day(2024, 3, 31), dec("20"))
	require.NoError(t, err)
	assertMoney(t, "175", ws.Line101)
	assertMoney(t, "55", ws.Line106)
	assertMoney(t, "120", ws.Line109)
	assertMoney(t, "20", ws.Line110)
	assertMoney(t, "100", ws.Line113)
	assert.False(t, ws.IsRefund)

	refund, err := f.svc.Reporting.GSTWorksheet(f.ctx, day(2024, 1, 1), day(2024, 3, 31), dec("200"))
	require.NoError(t, err)
	assertMoney(t, "-80", refund.Line113)
	assert.True(t, refund.IsRefund)
}

func TestT2125Worksheet(t *testing.T) {
	f := newLedgerFixture(t)
	f.postQuarter()

	ws, err := f.svc.Reporting.T2125Worksheet(f.ctx, day(2024, 1, 1), day(2024, 3, 31))
	require.NoError(t, err)
	assertMoney(t, "3500", ws.GrossIncome)
	assertMoney(t, "1100", ws.TotalExpenses)
	assertMoney(t, "2400", ws.NetIncome)
	assert.Empty(t, ws.Unmapped)

	require.Len(t, ws.Lines, 3)
	assert.Equal(t, "8810", ws.Lines[0].TaxCode)
	assertMoney(t, "100", ws.Lines[0].Amount)
	assert.Equal(t, "8910", ws.Lines[1].TaxCode)
	assertMoney(t, "600", ws.Lines[1].Amount)
	assert.Equal(t, "9270", ws.Lines[2].TaxCode)
	assertMoney(t, "400", ws.Lines[2].Amount)

	// clearing a tax code moves the account to the unmapped list
	_, err = f.svc.Account.UpdateAccount(f.ctx, f.account("5350").AccountID, dto.UpdateAccountRequest{TaxCode: ptr("")})
	require.NoError(t, err)
	ws, err = f.svc.Reporting.T2125Worksheet(f.ctx, day(2024, 1, 1), day(2024, 3, 31))
	require.NoError(t, err)
	require.Len(t, ws.Unmapped, 1)
	assert.Equal(t, "5350", ws.Unmapped[0].Code)
	assertMoney(t, "1100", ws.TotalExpenses)
}
