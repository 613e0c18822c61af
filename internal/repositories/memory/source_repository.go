package memory

import (
	"context"
	"sort"

	"github.com/SscSPs/books_ledger/internal/core/domain"
)

// AddTransactions records cash transactions for the backfill to read.
func (s *Store) AddTransactions(txns ...domain.CashTransaction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transactions = append(s.transactions, txns...)
}

// AddInvoices records invoices for the backfill to read.
func (s *Store) AddInvoices(invoices ...domain.Invoice) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.invoices = append(s.invoices, invoices...)
}

// AddBills records bills for the backfill to read.
func (s *Store) AddBills(bills ...domain.Bill) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bills = append(s.bills, bills...)
}

// AddBillPayments records payments made on bills.
func (s *Store) AddBillPayments(payments ...domain.BillPayment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.billPayments = append(s.billPayments, payments...)
}

func (s *Store) ListCashTransactions(_ context.Context) ([]domain.CashTransaction, error) {
	s.mu.RLock()
	out := append([]domain.CashTransaction(nil), s.transactions...)
	s.mu.RUnlock()
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date.Equal(out[j].Date) {
			return out[i].TransactionID < out[j].TransactionID
		}
		return out[i].Date.Before(out[j].Date)
	})
	return out, nil
}

func (s *Store) ListInvoices(_ context.Context, statuses []domain.InvoiceStatus) ([]domain.Invoice, error) {
	s.mu.RLock()
	out := make([]domain.Invoice, 0, len(s.invoices))
	for _, inv := range s.invoices {
		for _, st := range statuses {
			if inv.Status == st {
				out = append(out, inv)
				break
			}
		}
	}
	s.mu.RUnlock()
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].InvoiceDate.Equal(out[j].InvoiceDate) {
			return out[i].InvoiceID < out[j].InvoiceID
		}
		return out[i].InvoiceDate.Before(out[j].InvoiceDate)
	})
	return out, nil
}

func (s *Store) ListBills(_ context.Context, statuses []domain.BillStatus) ([]domain.Bill, error) {
	s.mu.RLock()
	out := make([]domain.Bill, 0, len(s.bills))
	for _, b := range s.bills {
		for _, st := range statuses {
			if b.Status == st {
				b.Items = append([]domain.BillItem(nil), b.Items...)
				out = append(out, b)
				break
			}
		}
	}
	s.mu.RUnlock()
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].BillDate.Equal(out[j].BillDate) {
			return out[i].BillID < out[j].BillID
		}
		return out[i].BillDate.Before(out[j].BillDate)
	})
	return out, nil
}

func (s *Store) ListBillPayments(_ context.Context, billIDs []int64) ([]domain.BillPayment, error) {
	wanted := make(map[int64]bool, len(billIDs))
	for _, id := range billIDs {
		wanted[id] = true
	}
	s.mu.RLock()
	out := make([]domain.BillPayment, 0, len(s.billPayments))
	for _, p := range s.billPayments {
		if wanted[p.BillID] {
			out = append(out, p)
		}
	}
	s.mu.RUnlock()
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.BillID != b.BillID {
			return a.BillID < b.BillID
		}
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		return a.PaymentID < b.PaymentID
	})
	return out, nil
}
