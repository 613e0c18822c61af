package mapping

import (
	"github.com/SscSPs/books_ledger/internal/core/domain"
	"github.com/SscSPs/books_ledger/internal/models"
)

// ToDomainCashTransaction converts a model Transaction to a domain CashTransaction
func ToDomainCashTransaction(m models.Transaction) domain.CashTransaction {
	return domain.CashTransaction{
		TransactionID: m.TransactionID,
		Date:          domain.DateOnly(m.Date),
		Description:   m.Description,
		Amount:        m.Amount,
		Category:      m.Category,
		Subcategory:   m.Subcategory,
		TaxAmount:     m.TaxAmount,
		PaymentMethod: m.PaymentMethod,
	}
}

// ToDomainInvoice converts a model Invoice to a domain Invoice
func ToDomainInvoice(m models.Invoice) domain.Invoice {
	inv := domain.Invoice{
		InvoiceID:     m.InvoiceID,
		InvoiceNumber: m.InvoiceNumber,
		CustomerName:  m.CustomerName,
		InvoiceDate:   domain.DateOnly(m.InvoiceDate),
		DueDate:       domain.DateOnly(m.DueDate),
		Status:        domain.InvoiceStatus(m.Status),
		Subtotal:      m.Subtotal,
		GSTAmount:     m.GSTAmount,
		Total:         m.Total,
	}
	if m.PaidDate != nil {
		paid := domain.DateOnly(*m.PaidDate)
		inv.PaidDate = &paid
	}
	return inv
}

// ToDomainBill converts a model Bill and its items to a domain Bill
func ToDomainBill(m models.Bill, items []models.BillItem) domain.Bill {
	bill := domain.Bill{
		BillID:           m.BillID,
		BillNumber:       m.BillNumber,
		VendorName:       m.VendorName,
		BillDate:         domain.DateOnly(m.BillDate),
		DueDate:          domain.DateOnly(m.DueDate),
		Status:           domain.BillStatus(m.Status),
		Subtotal:         m.Subtotal,
		GSTAmount:        m.GSTAmount,
		Total:            m.Total,
		AmountPaid:       m.AmountPaid,
		ExpenseAccountID: m.ExpenseAccountID,
		Items:            make([]domain.BillItem, len(items)),
	}
	for i, it := range items {
		bill.Items[i] = domain.BillItem{
			ItemID:      it.ItemID,
			Description: it.Description,
			Amount:      it.Amount,
			AccountID:   it.AccountID,
		}
	}
	return bill
}

// ToDomainBillPayment converts a model BillPayment to a domain BillPayment
func ToDomainBillPayment(m models.BillPayment) domain.BillPayment {
	return domain.BillPayment{
		BillID: m.BillID,
		Payment: domain.Payment{
			PaymentID:     m.PaymentID,
			Amount:        m.Amount,
			Date:          domain.DateOnly(m.PaymentDate),
			PaymentMethod: m.PaymentMethod,
			Reference:     m.Reference,
		},
	}
}
