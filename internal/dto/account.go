package dto

import (
	"time"

	"github.com/SscSPs/books_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to register a new account.
type CreateAccountRequest struct {
	Code            string               `json:"code" binding:"required,max=20"`
	Name            string               `json:"name" binding:"required,max=100"`
	AccountType     domain.AccountType   `json:"accountType" binding:"required,oneof=asset liability equity revenue expense"`
	SubType         string               `json:"subType"`
	TaxCode         string               `json:"taxCode"`
	Description     string               `json:"description"`
	ParentAccountID *int64               `json:"parentAccountID"` // Optional, use pointer for nullability
	NormalBalance   domain.NormalBalance `json:"normalBalance" binding:"omitempty,oneof=debit credit"`
	IsSystem        bool                 `json:"-"`
}

// AccountResponse defines the data returned for an account.
// Mirrors domain.Account.
type AccountResponse struct {
	AccountID       int64                `json:"accountID"`
	Code            string               `json:"code"`
	Name            string               `json:"name"`
	AccountType     domain.AccountType   `json:"accountType"`
	SubType         string               `json:"subType"`
	TaxCode         string               `json:"taxCode"`
	Description     string               `json:"description"`
	ParentAccountID *int64               `json:"parentAccountID"`
	IsActive        bool                 `json:"isActive"`
	IsSystem        bool                 `json:"isSystem"`
	NormalBalance   domain.NormalBalance `json:"normalBalance"`
	CreatedAt       time.Time            `json:"createdAt"`
	LastUpdatedAt   time.Time            `json:"lastUpdatedAt"`
}

// UpdateAccountRequest defines the data allowed for updating an account.
// Use pointers to distinguish between zero-value updates and fields not provided.
// Code and normal balance cannot change.
type UpdateAccountRequest struct {
	Name            *string `json:"name"`
	Description     *string `json:"description"`
	SubType         *string `json:"subType"`
	TaxCode         *string `json:"taxCode"`
	IsActive        *bool   `json:"isActive"`
	ParentAccountID *int64  `json:"parentAccountID"`
	ClearParent     bool    `json:"clearParent"` // detach from the current parent
}

// DeleteAccountResponse tells whether the account was removed or only deactivated.
type DeleteAccountResponse struct {
	AccountID   int64 `json:"accountID"`
	Deactivated bool  `json:"deactivated"`
}

// SeedAccountsResponse reports how many starter accounts were created.
type SeedAccountsResponse struct {
	Created int `json:"created"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:       acc.AccountID,
		Code:            acc.Code,
		Name:            acc.Name,
		AccountType:     acc.AccountType,
		SubType:         acc.SubType,
		TaxCode:         acc.TaxCode,
		Description:     acc.Description,
		ParentAccountID: acc.ParentAccountID,
		IsActive:        acc.IsActive,
		IsSystem:        acc.IsSystem,
		NormalBalance:   acc.NormalBalance,
		CreatedAt:       acc.CreatedAt,
		LastUpdatedAt:   acc.LastUpdatedAt,
	}
}

// ToListAccountResponse converts a slice of domain.Account to a slice of AccountResponse DTOs
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i, acc := range accounts {
		res[i] = ToAccountResponse(&acc)
	}
	return res
}

// AccountBalanceResponse defines the data returned for an account balance query.
type AccountBalanceResponse struct {
	AccountID int64           `json:"accountID"`
	Code      string          `json:"code"`
	From      *time.Time      `json:"from,omitempty"`
	To        time.Time       `json:"to"`
	Balance   decimal.Decimal `json:"balance"`
}

// ListAccountsParams defines query parameters for listing accounts.
type ListAccountsParams struct {
	AccountType string `form:"type" binding:"omitempty,oneof=asset liability equity revenue expense"`
	ActiveOnly  bool   `form:"activeOnly"`
}

// ListLedgerParams defines query parameters for an account's general-ledger view.
type ListLedgerParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// ListLedgerResponse is one page of an account's posted lines.
type ListLedgerResponse struct {
	Lines     []domain.LedgerLine `json:"lines"`
	NextToken *string             `json:"nextToken,omitempty"`
}
