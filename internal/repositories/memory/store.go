// Package memory keeps the ledger in process memory. It backs the service, handler
// and the command tests.
package memory

import (
	"sync"

	"github.com/SscSPs/books_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/books_ledger/internal/core/ports/repositories"
)

// Store implements every repository port over maps guarded by one lock.
type Store struct {
	mu sync.RWMutex

	accounts    map[int64]domain.Account
	entries     map[int64]domain.JournalEntry
	nextAccount int64
	nextEntry   int64
	nextLine    int64

	transactions []domain.CashTransaction
	invoices     []domain.Invoice
	bills        []domain.Bill
	billPayments []domain.BillPayment
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		accounts: make(map[int64]domain.Account),
		entries:  make(map[int64]domain.JournalEntry),
	}
}

// Provider exposes the store as a repository provider.
func (s *Store) Provider() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo: s,
		JournalRepo: s,
		BalanceRepo: s,
		SourceRepo:  s,
	}
}

var (
	_ portsrepo.AccountRepositoryFacade = (*Store)(nil)
	_ portsrepo.JournalRepositoryFacade = (*Store)(nil)
	_ portsrepo.BalanceReader           = (*Store)(nil)
	_ portsrepo.SourceEventReader       = (*Store)(nil)
)

func copyEntry(e domain.JournalEntry) domain.JournalEntry {
	e.Lines = append([]domain.JournalLine(nil), e.Lines...)
	return e
}
