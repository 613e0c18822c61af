package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents a row of the transactions table owned by the bookkeeping application.
type Transaction struct {
	TransactionID int64           `db:"transaction_id"`
	Date          time.Time       `db:"date"`
	Description   string          `db:"description"`
	Amount        decimal.Decimal `db:"amount"`
	Category      string          `db:"category"`
	Subcategory   string          `db:"subcategory"`
	TaxAmount     decimal.Decimal `db:"tax_amount"`
	PaymentMethod string          `db:"payment_method"`
}

// Invoice represents a row of the invoices table.
type Invoice struct {
	InvoiceID     int64           `db:"invoice_id"`
	InvoiceNumber string          `db:"invoice_number"`
	CustomerName  string          `db:"customer_name"`
	InvoiceDate   time.Time       `db:"invoice_date"`
	DueDate       time.Time       `db:"due_date"`
	PaidDate      *time.Time      `db:"paid_date"`
	Status        string          `db:"status"`
	Subtotal      decimal.Decimal `db:"subtotal"`
	GSTAmount     decimal.Decimal `db:"gst_amount"`
	Total         decimal.Decimal `db:"total"`
}

// Bill represents a row of the bills table.
type Bill struct {
	BillID           int64           `db:"bill_id"`
	BillNumber       string          `db:"bill_number"`
	VendorName       string          `db:"vendor_name"`
	BillDate         time.Time       `db:"bill_date"`
	DueDate          time.Time       `db:"due_date"`
	Status           string          `db:"status"`
	Subtotal         decimal.Decimal `db:"subtotal"`
	GSTAmount        decimal.Decimal `db:"gst_amount"`
	Total            decimal.Decimal `db:"total"`
	AmountPaid       decimal.Decimal `db:"amount_paid"`
	ExpenseAccountID *int64          `db:"expense_account_id"`
}

// BillItem represents a row of the bill_items table.
type BillItem struct {
	ItemID      int64           `db:"item_id"`
	BillID      int64           `db:"bill_id"`
	Description string          `db:"description"`
	Amount      decimal.Decimal `db:"amount"`
	AccountID   *int64          `db:"account_id"`
}

// BillPayment represents a row of the bill_payments table.
type BillPayment struct {
	PaymentID     int64           `db:"payment_id"`
	BillID        int64           `db:"bill_id"`
	PaymentDate   time.Time       `db:"payment_date"`
	Amount        decimal.Decimal `db:"amount"`
	PaymentMethod string          `db:"payment_method"`
	Reference     string          `db:"reference"`
}
