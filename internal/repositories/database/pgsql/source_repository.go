package pgsql

import (
	"context"

	"github.com/SscSPs/books_ledger/internal/apperrors"
	"github.com/SscSPs/books_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/books_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/books_ledger/internal/models"
	"github.com/SscSPs/books_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxSourceRepository reads the transactions, invoices and bills tables written by the bookkeeping application.
type PgxSourceRepository struct {
	BaseRepository
}

func newPgxSourceRepository(pool *pgxpool.Pool) *PgxSourceRepository {
	return &PgxSourceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.SourceEventReader = (*PgxSourceRepository)(nil)

func (r *PgxSourceRepository) ListCashTransactions(ctx context.Context) ([]domain.CashTransaction, error) {
	query := `
		SELECT transaction_id, date, description, amount, category, subcategory, tax_amount, payment_method
		FROM transactions
		ORDER BY date, transaction_id;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query transactions", err)
	}
	defer rows.Close()

	out := []domain.CashTransaction{}
	for rows.Next() {
		var m models.Transaction
		if err := rows.Scan(
			&m.TransactionID,
			&m.Date,
			&m.Description,
			&m.Amount,
			&m.Category,
			&m.Subcategory,
			&m.TaxAmount,
			&m.PaymentMethod,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan transaction row", err)
		}
		out = append(out, mapping.ToDomainCashTransaction(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating transaction rows", err)
	}
	return out, nil
}

func (r *PgxSourceRepository) ListInvoices(ctx context.Context, statuses []domain.InvoiceStatus) ([]domain.Invoice, error) {
	wanted := make([]string, len(statuses))
	for i, s := range statuses {
		wanted[i] = string(s)
	}
	query := `
		SELECT invoice_id, invoice_number, customer_name, invoice_date, due_date, paid_date,
		       status, subtotal, gst_amount, total
		FROM invoices
		WHERE status = ANY($1)
		ORDER BY invoice_date, invoice_id;
	`
	rows, err := r.Pool.Query(ctx, query, wanted)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query invoices", err)
	}
	defer rows.Close()

	out := []domain.Invoice{}
	for rows.Next() {
		var m models.Invoice
		if err := rows.Scan(
			&m.InvoiceID,
			&m.InvoiceNumber,
			&m.CustomerName,
			&m.InvoiceDate,
			&m.DueDate,
			&m.PaidDate,
			&m.Status,
			&m.Subtotal,
			&m.GSTAmount,
			&m.Total,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan invoice row", err)
		}
		out = append(out, mapping.ToDomainInvoice(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating invoice rows", err)
	}
	return out, nil
}

func (r *PgxSourceRepository) ListBills(ctx context.Context, statuses []domain.BillStatus) ([]domain.Bill, error) {
	wanted := make([]string, len(statuses))
	for i, s := range statuses {
		wanted[i] = string(s)
	}
	query := `
		SELECT bill_id, bill_number, vendor_name, bill_date, due_date, status,
		       subtotal, gst_amount, total, amount_paid, expense_account_id
		FROM bills
		WHERE status = ANY($1)
		ORDER BY bill_date, bill_id;
	`
	rows, err := r.Pool.Query(ctx, query, wanted)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query bills", err)
	}
	defer rows.Close()

	bills := []models.Bill{}
	ids := []int64{}
	for rows.Next() {
		var m models.Bill
		if err := rows.Scan(
			&m.BillID,
			&m.BillNumber,
			&m.VendorName,
			&m.BillDate,
			&m.DueDate,
			&m.Status,
			&m.Subtotal,
			&m.GSTAmount,
			&m.Total,
			&m.AmountPaid,
			&m.ExpenseAccountID,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan bill row", err)
		}
		bills = append(bills, m)
		ids = append(ids, m.BillID)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating bill rows", err)
	}

	items, err := r.findBillItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Bill, len(bills))
	for i, b := range bills {
		out[i] = mapping.ToDomainBill(b, items[b.BillID])
	}
	return out, nil
}

func (r *PgxSourceRepository) ListBillPayments(ctx context.Context, billIDs []int64) ([]domain.BillPayment, error) {
	out := []domain.BillPayment{}
	if len(billIDs) == 0 {
		return out, nil
	}
	rows, err := r.Pool.Query(ctx, `
		SELECT payment_id, bill_id, payment_date, amount, payment_method, reference
		FROM bill_payments
		WHERE bill_id = ANY($1)
		ORDER BY bill_id, payment_date, payment_id;
	`, billIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query bill payments", err)
	}
	defer rows.Close()

	for rows.Next() {
		var m models.BillPayment
		if err := rows.Scan(&m.PaymentID, &m.BillID, &m.PaymentDate, &m.Amount, &m.PaymentMethod, &m.Reference); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan bill payment row", err)
		}
		out = append(out, mapping.ToDomainBillPayment(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating bill payment rows", err)
	}
	return out, nil
}

func (r *PgxSourceRepository) findBillItems(ctx context.Context, billIDs []int64) (map[int64][]models.BillItem, error) {
	out := make(map[int64][]models.BillItem, len(billIDs))
	if len(billIDs) == 0 {
		return out, nil
	}
	rows, err := r.Pool.Query(ctx, `
		SELECT item_id, bill_id, description, amount, account_id
		FROM bill_items
		WHERE bill_id = ANY($1)
		ORDER BY bill_id, item_id;
	`, billIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query bill items", err)
	}
	defer rows.Close()

	for rows.Next() {
		var it models.BillItem
		if err := rows.Scan(&it.ItemID, &it.BillID, &it.Description, &it.Amount, &it.AccountID); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan bill item row", err)
		}
		out[it.BillID] = append(out[it.BillID], it)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating bill item rows", err)
	}
	return out, nil
}
