package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry represents a row of the journal_entries table.
// At most one of TransactionID, InvoiceID and BillID is set for automatic entries.
// PaymentID accompanies BillID on bill payment entries.
type JournalEntry struct {
	EntryID       int64     `db:"entry_id"`
	EntryDate     time.Time `db:"entry_date"`
	Description   string    `db:"description"`
	Reference     string    `db:"reference"`
	EntryType     string    `db:"entry_type"`
	TransactionID *int64    `db:"transaction_id"`
	InvoiceID     *int64    `db:"invoice_id"`
	BillID        *int64    `db:"bill_id"`
	PaymentID     *int64    `db:"payment_id"`
	IsPosted      bool      `db:"is_posted"`
	Notes         string    `db:"notes"`
	AuditFields
}

// JournalLine represents a row of the journal_lines table joined with its account.
type JournalLine struct {
	LineID      int64           `db:"line_id"`
	EntryID     int64           `db:"entry_id"`
	AccountID   int64           `db:"account_id"`
	AccountCode string          `db:"code"` // from accounts
	AccountName string          `db:"name"` // from accounts
	Description string          `db:"description"`
	Debit       decimal.Decimal `db:"debit"`
	Credit      decimal.Decimal `db:"credit"`
}

// LedgerLine is a journal line joined with its entry header.
type LedgerLine struct {
	JournalLine
	EntryDate        time.Time `db:"entry_date"`
	EntryDescription string    `db:"entry_description"`
	Reference        string    `db:"reference"`
	EntryType        string    `db:"entry_type"`
}
