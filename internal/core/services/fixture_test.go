package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/books_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/books_ledger/internal/core/ports/services"
	"github.com/SscSPs/books_ledger/internal/core/services"
	"github.com/SscSPs/books_ledger/internal/dto"
	"github.com/SscSPs/books_ledger/internal/platform/config"
	"github.com/SscSPs/books_ledger/internal/platform/lock"
	"github.com/SscSPs/books_ledger/internal/repositories/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// ledgerFixture wires the full service container over an in-memory store seeded with the default chart.
type ledgerFixture struct {
	t      *testing.T
	ctx    context.Context
	store  *memory.Store
	locker *lock.LocalLocker
	svc    *portssvc.ServiceContainer
}

func newLedgerFixture(t *testing.T) *ledgerFixture {
	t.Helper()
	store := memory.NewStore()
	locker := lock.NewLocalLocker()
	cfg := &config.Config{
		PostingMap:      domain.DefaultPostingMap(),
		BackfillLockTTL: time.Minute,
	}
	f := &ledgerFixture{
		t:      t,
		ctx:    context.Background(),
		store:  store,
		locker: locker,
		svc:    services.NewServiceContainer(cfg, store.Provider(), locker),
	}
	created, err := f.svc.Account.SeedAccounts(f.ctx, domain.DefaultChartOfAccounts())
	require.NoError(t, err)
	require.Equal(t, len(domain.DefaultChartOfAccounts()), created)
	return f
}

func (f *ledgerFixture) account(code string) domain.Account {
	f.t.Helper()
	acc, err := f.svc.Account.ResolveAccount(f.ctx, code)
	require.NoError(f.t, err)
	return *acc
}

func (f *ledgerFixture) deactivate(code string) {
	f.t.Helper()
	_, err := f.svc.Account.UpdateAccount(f.ctx, f.account(code).AccountID, dto.UpdateAccountRequest{IsActive: ptr(false)})
	require.NoError(f.t, err)
}

func (f *ledgerFixture) balanceAt(code string, asOf time.Time) decimal.Decimal {
	f.t.Helper()
	bal, err := f.svc.Balance.BalanceAt(f.ctx, f.account(code).AccountID, asOf)
	require.NoError(f.t, err)
	return bal
}

func (f *ledgerFixture) entryCount() int {
	f.t.Helper()
	res, err := f.svc.Ledger.QueryEntries(f.ctx, dto.ListEntriesParams{Limit: 100})
	require.NoError(f.t, err)
	return len(res.Entries)
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func ptr[T any](v T) *T { return &v }

// assertMoney compares decimals by value so "100" and "100.00" are equal.
func assertMoney(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	require.Truef(t, dec(want).Equal(got), "want %s, got %s %v", want, got.String(), msgAndArgs)
}

func activate() dto.UpdateAccountRequest {
	return dto.UpdateAccountRequest{IsActive: ptr(true)}
}

func listByType(t domain.EntryType) dto.ListEntriesParams {
	return dto.ListEntriesParams{EntryType: string(t), Limit: 100}
}
