package repositories

import (
	"context"

	"github.com/SscSPs/books_ledger/internal/core/domain"
)

// SourceEventReader reads the business records owned by the surrounding application
// that the backfill turns into ledger entries.
type SourceEventReader interface {
	// ListCashTransactions returns every captured cash transaction ordered by date then id.
	ListCashTransactions(ctx context.Context) ([]domain.CashTransaction, error)

	// ListInvoices returns invoices in any of the given statuses ordered by invoice date then id.
	ListInvoices(ctx context.Context, statuses []domain.InvoiceStatus) ([]domain.Invoice, error)

	// ListBills returns bills with their items in any of the given statuses ordered by bill date then id.
	ListBills(ctx context.Context, statuses []domain.BillStatus) ([]domain.Bill, error)

	// ListBillPayments returns the payments recorded on the given bills ordered by bill, payment date then id.
	ListBillPayments(ctx context.Context, billIDs []int64) ([]domain.BillPayment, error)
}
