package dto

import "github.com/SscSPs/books_ledger/internal/core/domain"

// InvoicePaymentRequest carries an invoice and the payment received on it.
// A zero payment amount settles the full invoice total.
type InvoicePaymentRequest struct {
	Invoice domain.Invoice `json:"invoice" binding:"required"`
	Payment domain.Payment `json:"payment"`
}

// BillPaymentRequest carries a bill and the payment made against it.
type BillPaymentRequest struct {
	Bill    domain.Bill    `json:"bill" binding:"required"`
	Payment domain.Payment `json:"payment" binding:"required"`
}
