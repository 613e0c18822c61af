package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryType records which posting route created a journal entry.
type EntryType string

const (
	EntryManual          EntryType = "manual"
	EntryAutoExpense     EntryType = "auto_expense"
	EntryAutoRevenue     EntryType = "auto_revenue"
	EntryAutoInvoice     EntryType = "auto_invoice"
	EntryAutoPayment     EntryType = "auto_payment"
	EntryAutoBill        EntryType = "auto_bill"
	EntryAutoBillPayment EntryType = "auto_bill_payment"
	EntryAdjustment      EntryType = "adjustment"
)

// IsValid reports whether t is a known entry type.
func (t EntryType) IsValid() bool {
	switch t {
	case EntryManual, EntryAutoExpense, EntryAutoRevenue, EntryAutoInvoice,
		EntryAutoPayment, EntryAutoBill, EntryAutoBillPayment, EntryAdjustment:
		return true
	}
	return false
}

// IsDeletable reports whether entries of this type may be removed.
func (t EntryType) IsDeletable() bool {
	return t == EntryManual
}

// SourceRefs links an entry to the business record that produced it.
type SourceRefs struct {
	TransactionID *int64 `json:"transactionID,omitempty"`
	InvoiceID     *int64 `json:"invoiceID,omitempty"`
	BillID        *int64 `json:"billID,omitempty"`
	PaymentID     *int64 `json:"paymentID,omitempty"`
}

// IsEmpty reports whether no source is linked.
func (r SourceRefs) IsEmpty() bool {
	return r.TransactionID == nil && r.InvoiceID == nil && r.BillID == nil && r.PaymentID == nil
}

// JournalEntry is a dated, balanced set of lines.
type JournalEntry struct {
	EntryID     int64         `json:"entryID"`
	EntryDate   time.Time     `json:"entryDate"`
	Description string        `json:"description"`
	Reference   string        `json:"reference,omitempty"`
	EntryType   EntryType     `json:"entryType"`
	Source      SourceRefs    `json:"source"`
	IsPosted    bool          `json:"isPosted"`
	Notes       string        `json:"notes,omitempty"`
	Lines       []JournalLine `json:"lines"`
	AuditFields
}

// Totals sums the debit and credit columns.
func (e JournalEntry) Totals() (decimal.Decimal, decimal.Decimal) {
	return SumLines(e.Lines)
}

// JournalLine is one debit or credit against an account.
type JournalLine struct {
	LineID      int64           `json:"lineID"`
	EntryID     int64           `json:"entryID"`
	AccountID   int64           `json:"accountID"`
	AccountCode string          `json:"accountCode,omitempty"`
	AccountName string          `json:"accountName,omitempty"`
	Description string          `json:"description,omitempty"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// SumLines returns Σdebit and Σcredit of lines.
func SumLines(lines []JournalLine) (decimal.Decimal, decimal.Decimal) {
	debit, credit := decimal.Zero, decimal.Zero
	for _, l := range lines {
		debit = debit.Add(l.Debit)
		credit = credit.Add(l.Credit)
	}
	return debit, credit
}

// PostingRequest is a candidate entry handed to the ledger store.
type PostingRequest struct {
	EntryDate   time.Time
	Description string
	Reference   string
	EntryType   EntryType
	Source      SourceRefs
	Notes       string
	Lines       []JournalLine
}

// EntryFilter narrows journal queries. Zero values mean "no restriction".
type EntryFilter struct {
	From      *time.Time
	To        *time.Time
	AccountID *int64
	EntryType EntryType
}

// LedgerLine is a posted line seen from an account's general-ledger view.
type LedgerLine struct {
	JournalLine
	EntryDate        time.Time `json:"entryDate"`
	EntryDescription string    `json:"entryDescription"`
	Reference        string    `json:"reference,omitempty"`
	EntryType        EntryType `json:"entryType"`
}

// SourceID returns the id of the record that an entry of type t is unique for.
// A bill may have many payments, so bill payment entries are keyed by the payment.
func (r SourceRefs) SourceID(t EntryType) (int64, bool) {
	var id *int64
	switch t {
	case EntryAutoExpense, EntryAutoRevenue:
		id = r.TransactionID
	case EntryAutoInvoice, EntryAutoPayment:
		id = r.InvoiceID
	case EntryAutoBill:
		id = r.BillID
	case EntryAutoBillPayment:
		id = r.PaymentID
	}
	if id == nil {
		return 0, false
	}
	return *id, true
}
