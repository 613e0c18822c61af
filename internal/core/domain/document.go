package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus is the lifecycle state of a sales invoice.
type InvoiceStatus string

const (
	InvoiceDraft   InvoiceStatus = "draft"
	InvoiceSent    InvoiceStatus = "sent"
	InvoicePaid    InvoiceStatus = "paid"
	InvoiceOverdue InvoiceStatus = "overdue"
)

// HasBeenSent reports whether the invoice left draft and therefore carries a receivable.
func (s InvoiceStatus) HasBeenSent() bool {
	return s == InvoiceSent || s == InvoicePaid || s == InvoiceOverdue
}

// Invoice is a customer invoice as seen by the posting rules.
type Invoice struct {
	InvoiceID     int64           `json:"invoiceID" validate:"required,gt=0"`
	InvoiceNumber string          `json:"invoiceNumber" validate:"required,max=50"`
	CustomerName  string          `json:"customerName,omitempty"`
	InvoiceDate   time.Time       `json:"invoiceDate" validate:"required"`
	DueDate       time.Time       `json:"dueDate"`
	PaidDate      *time.Time      `json:"paidDate,omitempty"`
	Status        InvoiceStatus   `json:"status" validate:"required,oneof=draft sent paid overdue"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	GSTAmount     decimal.Decimal `json:"gstAmount"`
	Total         decimal.Decimal `json:"total"`
}

// BillStatus is the lifecycle state of a vendor bill.
type BillStatus string

const (
	BillDraft    BillStatus = "draft"
	BillReceived BillStatus = "received"
	BillPaid     BillStatus = "paid"
	BillOverdue  BillStatus = "overdue"
)

// HasBeenReceived reports whether the bill left draft and therefore carries a payable.
func (s BillStatus) HasBeenReceived() bool {
	return s == BillReceived || s == BillPaid || s == BillOverdue
}

// AcceptsPayment reports whether a payment may be recorded against a bill in this state.
func (s BillStatus) AcceptsPayment() bool {
	return s == BillReceived || s == BillOverdue
}

// BillItem is one expense line of a bill. AccountID overrides the bill-level account.
type BillItem struct {
	ItemID      int64           `json:"itemID"`
	Description string          `json:"description" validate:"required,max=500"`
	Amount      decimal.Decimal `json:"amount"`
	AccountID   *int64          `json:"accountID,omitempty"`
}

// Bill is a vendor bill as seen by the posting rules.
type Bill struct {
	BillID           int64           `json:"billID" validate:"required,gt=0"`
	BillNumber       string          `json:"billNumber" validate:"required,max=50"`
	VendorName       string          `json:"vendorName,omitempty"`
	BillDate         time.Time       `json:"billDate" validate:"required"`
	DueDate          time.Time       `json:"dueDate"`
	Status           BillStatus      `json:"status" validate:"required,oneof=draft received paid overdue"`
	Subtotal         decimal.Decimal `json:"subtotal"`
	GSTAmount        decimal.Decimal `json:"gstAmount"`
	Total            decimal.Decimal `json:"total"`
	AmountPaid       decimal.Decimal `json:"amountPaid"`
	ExpenseAccountID *int64          `json:"expenseAccountID,omitempty"`
	Items            []BillItem      `json:"items" validate:"dive"`
}

// BalanceDue is total minus amount paid.
func (b Bill) BalanceDue() decimal.Decimal {
	return RoundMoney(b.Total.Sub(b.AmountPaid))
}

// Payment is money received on an invoice or paid on a bill.
// A zero Amount on an invoice payment means "the full invoice total".
// Bill payments are keyed by PaymentID, the id of the recorded payment.
type Payment struct {
	PaymentID     int64           `json:"paymentID,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	Date          time.Time       `json:"date"`
	PaymentMethod string          `json:"paymentMethod,omitempty"`
	Reference     string          `json:"reference,omitempty"`
}

// BillPayment is a payment recorded against a bill.
type BillPayment struct {
	BillID int64 `json:"billID"`
	Payment
}
