package memory

import (
	"context"
	"sort"
	"strconv"
	"time"

	"github.com/SscSPs/books_ledger/internal/apperrors"
	"github.com/SscSPs/books_ledger/internal/core/domain"
)

func (s *Store) FindAccountByID(_ context.Context, accountID int64) (*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	acc, ok := s.accounts[accountID]
	if !ok {
		return nil, &apperrors.NotFoundError{Resource: "account", Key: strconv.FormatInt(accountID, 10)}
	}
	return &acc, nil
}

func (s *Store) FindAccountByCode(_ context.Context, code string) (*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, acc := range s.accounts {
		if acc.Code == code {
			return &acc, nil
		}
	}
	return nil, &apperrors.NotFoundError{Resource: "account", Key: code}
}

func (s *Store) ListAccounts(_ context.Context, filter domain.AccountFilter) ([]domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Account, 0, len(s.accounts))
	for _, acc := range s.accounts {
		if filter.AccountType != "" && acc.AccountType != filter.AccountType {
			continue
		}
		if filter.ActiveOnly && !acc.IsActive {
			continue
		}
		out = append(out, acc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (s *Store) AccountHasLines(_ context.Context, accountID int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.entries {
		for _, l := range e.Lines {
			if l.AccountID == accountID {
				return true, nil
			}
		}
	}
	return false, nil
}

func (s *Store) SaveAccount(_ context.Context, account domain.Account) (*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.accounts {
		if existing.Code == account.Code {
			return nil, &apperrors.DuplicateCodeError{Code: account.Code}
		}
	}
	s.nextAccount++
	account.AccountID = s.nextAccount
	now := time.Now()
	account.CreatedAt = now
	account.LastUpdatedAt = now
	s.accounts[account.AccountID] = account
	return &account, nil
}

// UpdateAccount replaces the mutable fields. Code, type and normal balance keep their stored values.
func (s *Store) UpdateAccount(_ context.Context, account domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.accounts[account.AccountID]
	if !ok {
		return &apperrors.NotFoundError{Resource: "account", Key: strconv.FormatInt(account.AccountID, 10)}
	}
	existing.Name = account.Name
	existing.SubType = account.SubType
	existing.TaxCode = account.TaxCode
	existing.Description = account.Description
	existing.ParentAccountID = account.ParentAccountID
	existing.IsActive = account.IsActive
	existing.LastUpdatedAt = time.Now()
	s.accounts[account.AccountID] = existing
	return nil
}

func (s *Store) DeleteAccount(_ context.Context, accountID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.accounts[accountID]; !ok {
		return &apperrors.NotFoundError{Resource: "account", Key: strconv.FormatInt(accountID, 10)}
	}
	for _, e := range s.entries {
		for _, l := range e.Lines {
			if l.AccountID == accountID {
				return apperrors.ErrConflict
			}
		}
	}
	delete(s.accounts, accountID)
	return nil
}
