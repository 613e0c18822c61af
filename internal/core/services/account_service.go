package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/books_ledger/internal/apperrors"
	"github.com/SscSPs/books_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/books_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/books_ledger/internal/core/ports/services"
	"github.com/SscSPs/books_ledger/internal/dto"
	"github.com/SscSPs/books_ledger/internal/utils/pagination"
)

const (
	defaultPageSize = 50
	maxPageSize     = 100
)

// accountService implements the chart-of-accounts registry
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
	lineRepo    portsrepo.LineReader
}

// AccountServiceOption is a functional option for configuring the account service
type AccountServiceOption func(*accountService)

// WithLineReader enables the general-ledger view of an account.
func WithLineReader(repo portsrepo.LineReader) AccountServiceOption {
	return func(s *accountService) {
		s.lineRepo = repo
	}
}

// NewAccountService creates a new account service with the provided options
func NewAccountService(repo portsrepo.AccountRepositoryFacade, options ...AccountServiceOption) portssvc.AccountSvcFacade {
	svc := &accountService{
		accountRepo: repo,
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure accountService implements the AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) RegisterAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error) {
	code := strings.TrimSpace(req.Code)
	name := strings.TrimSpace(req.Name)
	if code == "" || name == "" {
		return nil, fmt.Errorf("%w: account code and name are required", apperrors.ErrValidation)
	}
	if !req.AccountType.IsValid() {
		return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, req.AccountType)
	}
	normalBalance := req.NormalBalance
	if normalBalance == "" {
		normalBalance = domain.DefaultNormalBalance(req.AccountType)
	}
	if !normalBalance.IsValid() {
		return nil, fmt.Errorf("%w: unknown normal balance %q", apperrors.ErrValidation, normalBalance)
	}

	if existing, err := s.accountRepo.FindAccountByCode(ctx, code); err == nil && existing != nil {
		return nil, &apperrors.DuplicateCodeError{Code: code}
	} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to look up account code", slog.String("code", code))
		return nil, fmt.Errorf("failed to check account code: %w", err)
	}

	if req.ParentAccountID != nil {
		if _, err := s.accountRepo.FindAccountByID(ctx, *req.ParentAccountID); err != nil {
			s.LogError(ctx, err, "Failed to find parent account",
				slog.Int64("parent_id", *req.ParentAccountID))
			return nil, fmt.Errorf("invalid parent account: %w", err)
		}
	}

	now := time.Now()
	account := domain.Account{
		Code:            code,
		Name:            name,
		AccountType:     req.AccountType,
		SubType:         req.SubType,
		TaxCode:         req.TaxCode,
		Description:     req.Description,
		ParentAccountID: req.ParentAccountID,
		IsActive:        true,
		IsSystem:        req.IsSystem,
		NormalBalance:   normalBalance,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	saved, err := s.accountRepo.SaveAccount(ctx, account)
	if err != nil {
		s.LogError(ctx, err, "Failed to save account", slog.String("code", code))
		return nil, err
	}

	s.LogInfo(ctx, "Account registered",
		slog.Int64("account_id", saved.AccountID),
		slog.String("code", saved.Code))
	return saved, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, accountID int64) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get account", slog.Int64("account_id", accountID))
		}
		return nil, err
	}
	return account, nil
}

func (s *accountService) ResolveAccount(ctx context.Context, code string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByCode(ctx, code)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to resolve account", slog.String("code", code))
		}
		return nil, err
	}
	return account, nil
}

func (s *accountService) ListAccounts(ctx context.Context, filter domain.AccountFilter) ([]domain.Account, error) {
	if filter.AccountType != "" && !filter.AccountType.IsValid() {
		return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, filter.AccountType)
	}
	accounts, err := s.accountRepo.ListAccounts(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts")
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

func (s *accountService) UpdateAccount(ctx context.Context, accountID int64, req dto.UpdateAccountRequest) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: account name cannot be empty", apperrors.ErrValidation)
		}
		account.Name = name
	}
	if req.Description != nil {
		account.Description = *req.Description
	}
	if req.SubType != nil {
		account.SubType = *req.SubType
	}
	if req.TaxCode != nil {
		account.TaxCode = *req.TaxCode
	}
	if req.IsActive != nil {
		account.IsActive = *req.IsActive
	}
	switch {
	case req.ClearParent:
		account.ParentAccountID = nil
	case req.ParentAccountID != nil:
		if err := s.checkParentChain(ctx, accountID, *req.ParentAccountID); err != nil {
			return nil, err
		}
		parentID := *req.ParentAccountID
		account.ParentAccountID = &parentID
	}
	account.LastUpdatedAt = time.Now()

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to update account", slog.Int64("account_id", accountID))
		return nil, err
	}
	s.LogInfo(ctx, "Account updated", slog.Int64("account_id", accountID))
	return account, nil
}

// checkParentChain walks up from parentID and rejects the change when it reaches accountID.
func (s *accountService) checkParentChain(ctx context.Context, accountID, parentID int64) error {
	visited := map[int64]bool{accountID: true}
	current := &parentID
	for current != nil {
		if visited[*current] {
			return fmt.Errorf("%w: parent %d would create a cycle in the account hierarchy", apperrors.ErrValidation, parentID)
		}
		visited[*current] = true
		parent, err := s.accountRepo.FindAccountByID(ctx, *current)
		if err != nil {
			return fmt.Errorf("invalid parent account: %w", err)
		}
		current = parent.ParentAccountID
	}
	return nil
}

func (s *accountService) DeleteAccount(ctx context.Context, accountID int64) (bool, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return false, err
	}
	if account.IsSystem {
		return false, fmt.Errorf("%w: system account %s cannot be deleted", apperrors.ErrConflict, account.Code)
	}

	referenced, err := s.accountRepo.AccountHasLines(ctx, accountID)
	if err != nil {
		s.LogError(ctx, err, "Failed to check account usage", slog.Int64("account_id", accountID))
		return false, err
	}
	if referenced {
		account.IsActive = false
		account.LastUpdatedAt = time.Now()
		if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
			return false, err
		}
		s.LogInfo(ctx, "Account has journal lines, deactivated instead of deleted",
			slog.Int64("account_id", accountID),
			slog.String("code", account.Code))
		return true, nil
	}

	if err := s.accountRepo.DeleteAccount(ctx, accountID); err != nil {
		s.LogError(ctx, err, "Failed to delete account", slog.Int64("account_id", accountID))
		return false, err
	}
	s.LogInfo(ctx, "Account deleted", slog.Int64("account_id", accountID), slog.String("code", account.Code))
	return false, nil
}

func (s *accountService) SeedAccounts(ctx context.Context, seeds []domain.AccountSeed) (int, error) {
	existing, err := s.accountRepo.ListAccounts(ctx, domain.AccountFilter{})
	if err != nil {
		return 0, fmt.Errorf("failed to list accounts: %w", err)
	}
	codes := make(map[string]bool, len(existing))
	for _, acc := range existing {
		codes[acc.Code] = true
	}

	created := 0
	for _, seed := range seeds {
		if codes[seed.Code] {
			continue
		}
		_, err := s.RegisterAccount(ctx, dto.CreateAccountRequest{
			Code:          seed.Code,
			Name:          seed.Name,
			AccountType:   seed.AccountType,
			SubType:       seed.SubType,
			TaxCode:       seed.TaxCode,
			NormalBalance: seed.NormalBalance,
			IsSystem:      true,
		})
		if errors.Is(err, apperrors.ErrDuplicate) {
			continue
		}
		if err != nil {
			return created, fmt.Errorf("failed to seed account %s: %w", seed.Code, err)
		}
		codes[seed.Code] = true
		created++
	}

	s.LogInfo(ctx, "Chart of accounts seeded", slog.Int("created", created), slog.Int("total", len(seeds)))
	return created, nil
}

func (s *accountService) AccountLedger(ctx context.Context, accountID int64, params dto.ListLedgerParams) (*dto.ListLedgerResponse, error) {
	if s.lineRepo == nil {
		return nil, fmt.Errorf("account ledger is not configured")
	}
	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		return nil, err
	}
	limit := pagination.ClampLimit(params.Limit, defaultPageSize, maxPageSize)
	lines, next, err := s.lineRepo.ListAccountLines(ctx, accountID, limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list account lines", slog.Int64("account_id", accountID))
		return nil, err
	}
	if lines == nil {
		lines = []domain.LedgerLine{}
	}
	return &dto.ListLedgerResponse{Lines: lines, NextToken: next}, nil
}
