package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction categories recognised by the posting rules.
const (
	CategoryExpense = "expense"
	CategoryRevenue = "revenue"
)

// CashTransaction is a bank or card movement captured outside the ledger.
// Amount may arrive signed; the posting rules use its absolute value.
type CashTransaction struct {
	TransactionID int64           `json:"transactionID" validate:"required,gt=0"`
	Date          time.Time       `json:"date" validate:"required"`
	Description   string          `json:"description" validate:"required,max=500"`
	Amount        decimal.Decimal `json:"amount"`
	Category      string          `json:"category" validate:"required"`
	Subcategory   string          `json:"subcategory,omitempty"`
	TaxAmount     decimal.Decimal `json:"taxAmount"`
	PaymentMethod string          `json:"paymentMethod,omitempty"`
}

// IsPostable reports whether the category produces a journal entry.
func (t CashTransaction) IsPostable() bool {
	return t.Category == CategoryExpense || t.Category == CategoryRevenue
}

// NetAmount is the absolute amount rounded to cents.
func (t CashTransaction) NetAmount() decimal.Decimal {
	return RoundMoney(t.Amount.Abs())
}

// Tax is the tax portion rounded to cents, zero when absent.
func (t CashTransaction) Tax() decimal.Decimal {
	return RoundMoney(t.TaxAmount)
}

// Reference is the stable ledger reference for the transaction.
func (t CashTransaction) Reference() string {
	return fmt.Sprintf("TXN-%d", t.TransactionID)
}

// EntryType maps the category to the automatic entry type.
func (t CashTransaction) EntryType() EntryType {
	if t.Category == CategoryRevenue {
		return EntryAutoRevenue
	}
	return EntryAutoExpense
}
