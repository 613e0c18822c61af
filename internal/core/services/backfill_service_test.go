package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/books_ledger/internal/apperrors"
	"github.com/SscSPs/books_ledger/internal/core/domain"
	"github.com/SscSPs/books_ledger/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackfill_IsIdempotent(t *testing.T) {
	f := newLedgerFixture(t)
	f.loadQuarter()

	first, err := f.svc.Backfill.Run(f.ctx, domain.BackfillOptions{})
	require.NoError(t, err)
	assert.NotEmpty(t, first.RunID)
	assert.Equal(t, 6, first.Created)
	assert.Equal(t, 0, first.AlreadyPresent)
	assert.Equal(t, 1, first.NotPostable)
	assert.Empty(t, first.Failures)
	assert.Equal(t, 6, f.entryCount())

	second, err := f.svc.Backfill.Run(f.ctx, domain.BackfillOptions{})
	require.NoError(t, err)
	assert.NotEqual(t, first.RunID, second.RunID)
	assert.Equal(t, 0, second.Created)
	assert.Equal(t, 6, second.AlreadyPresent)
	assert.Equal(t, 6, f.entryCount())

	tb, err := f.svc.Reporting.TrialBalance(f.ctx, day(2024, 12, 31))
	require.NoError(t, err)
	assert.True(t, tb.IsBalanced)
}

func TestBackfill_PaidInvoicePaymentDates(t *testing.T) {
	f := newLedgerFixture(t)
	paidOn := day(2024, 2, 10)
	f.store.AddInvoices(
		domain.Invoice{
			InvoiceID: 1, InvoiceNumber: "INV-1", InvoiceDate: day(2024, 1, 5), PaidDate: &paidOn,
			Status: domain.InvoicePaid, Subtotal: dec("100"), Total: dec("100"),
		},
		domain.Invoice{
			InvoiceID: 2, InvoiceNumber: "INV-2", InvoiceDate: day(2024, 1, 7),
			Status: domain.InvoicePaid, Subtotal: dec("50"), Total: dec("50"),
		},
	)

	_, err := f.svc.Backfill.Run(f.ctx, domain.BackfillOptions{})
	require.NoError(t, err)

	payments, err := f.svc.Ledger.QueryEntries(f.ctx, listByType(domain.EntryAutoPayment))
	require.NoError(t, err)
	require.Len(t, payments.Entries, 2)
	dates := map[string]bool{}
	for _, e := range payments.Entries {
		dates[e.Reference+" "+e.EntryDate] = true
	}
	assert.True(t, dates["INV-1 2024-02-10"])
	assert.True(t, dates["INV-2 2024-01-07"], "missing paid date falls back to the invoice date")
}

func TestBackfill_DryRunWritesNothing(t *testing.T) {
	f := newLedgerFixture(t)
	f.loadQuarter()

	result, err := f.svc.Backfill.Run(f.ctx, domain.BackfillOptions{DryRun: true})
	require.NoError(t, err)
	assert.True(t, result.DryRun)
	assert.Equal(t, 6, result.Created)
	assert.Zero(t, f.entryCount())
}

func TestBackfill_RecordsFailuresAndContinues(t *testing.T) {
	f := newLedgerFixture(t)
	f.loadQuarter()
	f.deactivate("2300")

	result, err := f.svc.Backfill.Run(f.ctx, domain.BackfillOptions{})
	require.NoError(t, err)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, domain.EntryAutoExpense, result.Failures[0].EntryType)
	assert.Equal(t, int64(1), result.Failures[0].SourceID)
	assert.Contains(t, result.Failures[0].Reason, "2300")
	assert.Equal(t, 5, result.Created)

	// fixing the chart lets the next run pick up the missing entry
	_, err = f.svc.Account.UpdateAccount(f.ctx, f.account("2300").AccountID, activate())
	require.NoError(t, err)
	retry, err := f.svc.Backfill.Run(f.ctx, domain.BackfillOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1, retry.Created)
	assert.Equal(t, 5, retry.AlreadyPresent)
	assert.Empty(t, retry.Failures)
}

func TestBackfill_PostsRecordedBillPayments(t *testing.T) {
	f := newLedgerFixture(t)
	f.store.AddBills(
		domain.Bill{
			BillID: 5, BillNumber: "B-5", BillDate: day(2024, 3, 1), Status: domain.BillPaid,
			Subtotal: dec("100"), GSTAmount: dec("5"), Total: dec("105"), AmountPaid: dec("105"),
		},
		domain.Bill{
			BillID: 6, BillNumber: "B-6", BillDate: day(2024, 3, 5), Status: domain.BillReceived,
			Subtotal: dec("50"), Total: dec("50"), AmountPaid: dec("20"),
		},
	)
	f.store.AddBillPayments(
		domain.BillPayment{BillID: 5, Payment: domain.Payment{PaymentID: 11, Amount: dec("60"), Date: day(2024, 3, 10)}},
		domain.BillPayment{BillID: 5, Payment: domain.Payment{PaymentID: 12, Amount: dec("45"), Date: day(2024, 3, 20)}},
		domain.BillPayment{BillID: 6, Payment: domain.Payment{PaymentID: 13, Amount: dec("20"), Date: day(2024, 3, 12)}},
	)

	first, err := f.svc.Backfill.Run(f.ctx, domain.BackfillOptions{})
	require.NoError(t, err)
	assert.Empty(t, first.Failures)
	assert.Equal(t, 5, first.Created)

	assertMoney(t, "30", f.balanceAt("2000", day(2024, 3, 31)), "only B-6 is still owed")
	aging, err := f.svc.Reporting.Aging(f.ctx, domain.AgingPayables, day(2024, 3, 31))
	require.NoError(t, err)
	require.Len(t, aging.Rows, 1)
	assert.Equal(t, int64(6), aging.Rows[0].SourceID)
	assertMoney(t, "30", aging.Total)
	assert.True(t, aging.IsBalanced)

	second, err := f.svc.Backfill.Run(f.ctx, domain.BackfillOptions{})
	require.NoError(t, err)
	assert.Zero(t, second.Created)
	assert.Equal(t, 5, second.AlreadyPresent)
	assertMoney(t, "30", f.balanceAt("2000", day(2024, 3, 31)))
}

func TestBackfill_SkipsPaymentsOfUnpostedBill(t *testing.T) {
	f := newLedgerFixture(t)
	f.deactivate("1300")
	f.store.AddBills(domain.Bill{
		BillID: 5, BillNumber: "B-5", BillDate: day(2024, 3, 1), Status: domain.BillPaid,
		Subtotal: dec("100"), GSTAmount: dec("5"), Total: dec("105"), AmountPaid: dec("105"),
	})
	f.store.AddBillPayments(domain.BillPayment{BillID: 5, Payment: domain.Payment{PaymentID: 11, Amount: dec("105"), Date: day(2024, 3, 10)}})

	result, err := f.svc.Backfill.Run(f.ctx, domain.BackfillOptions{})
	require.NoError(t, err)
	require.Len(t, result.Failures, 2)
	assert.Equal(t, domain.EntryAutoBill, result.Failures[0].EntryType)
	assert.Equal(t, domain.EntryAutoBillPayment, result.Failures[1].EntryType)
	assert.Equal(t, int64(11), result.Failures[1].SourceID)
	assert.Zero(t, f.entryCount())
}

func TestBackfill_LockHeld(t *testing.T) {
	f := newLedgerFixture(t)
	f.loadQuarter()

	err := f.locker.WithLock(f.ctx, services.BackfillLockKey, 0, func(ctx context.Context) error {
		result, err := f.svc.Backfill.Run(ctx, domain.BackfillOptions{})
		assert.Nil(t, result)
		assert.ErrorIs(t, err, apperrors.ErrLocked)
		return nil
	})
	require.NoError(t, err)
	assert.Zero(t, f.entryCount())
}

func TestBackfill_StopsOnCancellation(t *testing.T) {
	f := newLedgerFixture(t)
	f.loadQuarter()
	ctx, cancel := context.WithCancel(f.ctx)
	cancel()

	_, err := f.svc.Backfill.Run(ctx, domain.BackfillOptions{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, f.entryCount())
}
