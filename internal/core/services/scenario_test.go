package services_test

import (
	"github.com/SscSPs/books_ledger/internal/core/domain"
	"github.com/stretchr/testify/require"
)

// loadQuarter records one quarter of activity as source records:
// two cash transactions (plus a non-postable transfer), an open invoice,
// a paid invoice and a received bill.
func (f *ledgerFixture) loadQuarter() {
	f.t.Helper()
	rent := f.account("5350").AccountID
	paidOn := day(2024, 2, 10)

	f.store.AddTransactions(
		domain.CashTransaction{
			TransactionID: 1, Date: day(2024, 1, 15), Description: "Printer paper",
			Amount: dec("100"), TaxAmount: dec("5"), Category: "expense",
			Subcategory: "office_supplies", PaymentMethod: "credit_card",
		},
		domain.CashTransaction{
			TransactionID: 2, Date: day(2024, 1, 20), Description: "Consulting",
			Amount: dec("1000"), TaxAmount: dec("50"), Category: "revenue",
		},
		domain.CashTransaction{
			TransactionID: 3, Date: day(2024, 1, 25), Description: "Move to savings",
			Amount: dec("300"), Category: "transfer",
		},
	)
	f.store.AddInvoices(
		domain.Invoice{
			InvoiceID: 1, InvoiceNumber: "INV-001", InvoiceDate: day(2024, 2, 1), Status: domain.InvoiceSent,
			Subtotal: dec("2000"), GSTAmount: dec("100"), Total: dec("2100"),
		},
		domain.Invoice{
			InvoiceID: 2, InvoiceNumber: "INV-002", InvoiceDate: day(2024, 1, 5), PaidDate: &paidOn, Status: domain.InvoicePaid,
			Subtotal: dec("500"), GSTAmount: dec("25"), Total: dec("525"),
		},
		domain.Invoice{
			InvoiceID: 3, InvoiceNumber: "INV-003", InvoiceDate: day(2024, 3, 1), Status: domain.InvoiceDraft,
			Subtotal: dec("999"), Total: dec("999"),
		},
	)
	f.store.AddBills(domain.Bill{
		BillID: 1, BillNumber: "B-100", BillDate: day(2024, 2, 15), Status: domain.BillReceived,
		Subtotal: dec("1000"), GSTAmount: dec("50"), Total: dec("1050"),
		Items: []domain.BillItem{
			{Description: "February rent", Amount: dec("600"), AccountID: &rent},
			{Description: "Sundries", Amount: dec("400")},
		},
	})
}

// postQuarter backfills loadQuarter's records and adds the opening contribution and a bill payment.
func (f *ledgerFixture) postQuarter() {
	f.t.Helper()
	f.loadQuarter()

	_, err := f.svc.Posting.PostManual(f.ctx, domain.PostingRequest{
		EntryDate:   day(2024, 1, 1),
		Description: "Owner contribution",
		Lines: []domain.JournalLine{
			{AccountID: f.account("1050").AccountID, Debit: dec("10000")},
			{AccountID: f.account("3000").AccountID, Credit: dec("10000")},
		},
	})
	require.NoError(f.t, err)

	result, err := f.svc.Backfill.Run(f.ctx, domain.BackfillOptions{})
	require.NoError(f.t, err)
	require.Empty(f.t, result.Failures)

	bills, err := f.store.ListBills(f.ctx, []domain.BillStatus{domain.BillReceived})
	require.NoError(f.t, err)
	_, err = f.svc.Posting.PostBillPayment(f.ctx, bills[0], domain.Payment{PaymentID: 1, Amount: dec("300"), Date: day(2024, 3, 1)})
	require.NoError(f.t, err)
}
