package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/books_ledger/internal/core/domain"
)

// BalanceQuery selects posted lines by entry date. A nil From means "since the beginning".
// An empty AccountIDs means every account.
type BalanceQuery struct {
	From       *time.Time
	To         time.Time
	AccountIDs []int64
}

// BalanceReader aggregates posted journal lines.
type BalanceReader interface {
	// SumLinesByAccount returns Σdebit and Σcredit per account over posted lines in the query window.
	// Accounts without lines are absent from the map.
	SumLinesByAccount(ctx context.Context, q BalanceQuery) (map[int64]domain.LineTotals, error)

	// SumLinesBySource groups a control account's posted lines up to asOf by the invoice (receivables)
	// or bill (payables) that produced them. Unlinked lines are grouped under SourceID 0.
	SumLinesBySource(ctx context.Context, accountID int64, kind domain.AgingKind, asOf time.Time) ([]domain.SourceBalance, error)
}
