package models

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "asset"
	Liability AccountType = "liability"
	Equity    AccountType = "equity"
	Revenue   AccountType = "revenue"
	Expense   AccountType = "expense"
)

// Account represents a row of the accounts table.
type Account struct {
	AccountID       int64       `db:"account_id"`
	Code            string      `db:"code"`
	Name            string      `db:"name"`
	AccountType     AccountType `db:"account_type"`
	SubType         string      `db:"sub_type"`
	TaxCode         string      `db:"tax_code"`
	Description     string      `db:"description"`
	ParentAccountID *int64      `db:"parent_account_id"` // Nullable
	IsActive        bool        `db:"is_active"`
	IsSystem        bool        `db:"is_system"`
	NormalBalance   string      `db:"normal_balance"`
	AuditFields
}
