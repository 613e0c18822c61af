package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "asset"
	Liability AccountType = "liability"
	Equity    AccountType = "equity"
	Revenue   AccountType = "revenue"
	Expense   AccountType = "expense"
)

// IsValid reports whether t is one of the five account types.
func (t AccountType) IsValid() bool {
	switch t {
	case Asset, Liability, Equity, Revenue, Expense:
		return true
	}
	return false
}

// NormalBalance is the side on which an account's balance is positive.
type NormalBalance string

const (
	DebitBalance  NormalBalance = "debit"
	CreditBalance NormalBalance = "credit"
)

// IsValid reports whether b is debit or credit.
func (b NormalBalance) IsValid() bool {
	return b == DebitBalance || b == CreditBalance
}

// DefaultNormalBalance returns credit for liability, equity and revenue accounts, debit otherwise.
func DefaultNormalBalance(t AccountType) NormalBalance {
	switch t {
	case Liability, Equity, Revenue:
		return CreditBalance
	default:
		return DebitBalance
	}
}

// Well-known sub types used by the statements.
const (
	SubTypeCurrentAsset      = "current_asset"
	SubTypeFixedAsset        = "fixed_asset"
	SubTypeCurrentLiability  = "current_liability"
	SubTypeLongTermLiability = "long_term_liability"
	SubTypeEquity            = "equity"
	SubTypeRevenue           = "revenue"
	SubTypeExpense           = "expense"
	SubTypeCOGS              = "cogs"
)

// Account represents a chart-of-accounts entry.
// Code and NormalBalance are fixed at creation.
type Account struct {
	AccountID       int64         `json:"accountID"`
	Code            string        `json:"code"`
	Name            string        `json:"name"`
	AccountType     AccountType   `json:"accountType"`
	SubType         string        `json:"subType,omitempty"`
	TaxCode         string        `json:"taxCode,omitempty"` // T2125 line number
	Description     string        `json:"description,omitempty"`
	ParentAccountID *int64        `json:"parentAccountID,omitempty"`
	IsActive        bool          `json:"isActive"`
	IsSystem        bool          `json:"isSystem"`
	NormalBalance   NormalBalance `json:"normalBalance"`
	AuditFields
}

// AccountFilter narrows account listings.
type AccountFilter struct {
	AccountType AccountType
	ActiveOnly  bool
}
