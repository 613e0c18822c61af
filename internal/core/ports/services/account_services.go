package services

import (
	"context"

	"github.com/SscSPs/books_ledger/internal/core/domain"
	"github.com/SscSPs/books_ledger/internal/dto"
)

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account by its unique identifier.
	GetAccountByID(ctx context.Context, accountID int64) (*domain.Account, error)

	// ResolveAccount retrieves an account by its chart code.
	ResolveAccount(ctx context.Context, code string) (*domain.Account, error)

	// ListAccounts retrieves the chart of accounts ordered by code.
	ListAccounts(ctx context.Context, filter domain.AccountFilter) ([]domain.Account, error)

	// AccountLedger retrieves one page of an account's posted lines, newest first.
	AccountLedger(ctx context.Context, accountID int64, params dto.ListLedgerParams) (*dto.ListLedgerResponse, error)
}

// AccountWriterSvc defines write operations for account data
type AccountWriterSvc interface {
	// RegisterAccount persists a new account.
	RegisterAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error)

	// UpdateAccount updates an account's mutable details.
	UpdateAccount(ctx context.Context, accountID int64, req dto.UpdateAccountRequest) (*domain.Account, error)

	// DeleteAccount removes an unreferenced account or deactivates a referenced one.
	// It reports whether the account was only deactivated.
	DeleteAccount(ctx context.Context, accountID int64) (bool, error)

	// SeedAccounts registers every seed whose code is missing and returns how many were created.
	SeedAccounts(ctx context.Context, seeds []domain.AccountSeed) (int, error)
}

// AccountSvcFacade combines all account-related service interfaces
// This is a facade for clients that need access to all operations
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
