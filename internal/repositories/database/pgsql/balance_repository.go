package pgsql

import (
	"context"
	"time"

	"github.com/SscSPs/books_ledger/internal/apperrors"
	"github.com/SscSPs/books_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/books_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// PgxBalanceRepository aggregates posted journal lines for the balance and reporting services.
type PgxBalanceRepository struct {
	BaseRepository
}

func newPgxBalanceRepository(pool *pgxpool.Pool) *PgxBalanceRepository {
	return &PgxBalanceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.BalanceReader = (*PgxBalanceRepository)(nil)

func (r *PgxBalanceRepository) SumLinesByAccount(ctx context.Context, q portsrepo.BalanceQuery) (map[int64]domain.LineTotals, error) {
	var from *time.Time
	if q.From != nil {
		f := domain.DateOnly(*q.From)
		from = &f
	}
	accountIDs := q.AccountIDs
	if accountIDs == nil {
		accountIDs = []int64{}
	}

	query := `
		SELECT l.account_id,
		       COALESCE(SUM(l.debit), 0) AS total_debit,
		       COALESCE(SUM(l.credit), 0) AS total_credit
		FROM journal_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		WHERE e.is_posted
		  AND e.entry_date <= $1
		  AND ($2::date IS NULL OR e.entry_date >= $2::date)
		  AND (cardinality($3::bigint[]) = 0 OR l.account_id = ANY($3::bigint[]))
		GROUP BY l.account_id;
	`
	rows, err := r.Pool.Query(ctx, query, domain.DateOnly(q.To), from, accountIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to sum journal lines by account", err)
	}
	defer rows.Close()

	out := make(map[int64]domain.LineTotals)
	for rows.Next() {
		var accountID int64
		var debit, credit decimal.Decimal
		if err := rows.Scan(&accountID, &debit, &credit); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account totals row", err)
		}
		out[accountID] = domain.LineTotals{Debit: debit, Credit: credit}
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating account totals rows", err)
	}
	return out, nil
}

// SumLinesBySource groups the control account's lines by invoice or bill.
// The document entry (auto_invoice / auto_bill) supplies the date and reference; without one the earliest entry does.
func (r *PgxBalanceRepository) SumLinesBySource(ctx context.Context, accountID int64, kind domain.AgingKind, asOf time.Time) ([]domain.SourceBalance, error) {
	sourceCol := "e.invoice_id"
	documentType := domain.EntryAutoInvoice
	if kind == domain.AgingPayables {
		sourceCol = "e.bill_id"
		documentType = domain.EntryAutoBill
	}

	query := `
		SELECT COALESCE(` + sourceCol + `, 0) AS source_id,
		       (array_agg(e.reference ORDER BY e.entry_type <> $3, e.entry_date, e.entry_id))[1] AS reference,
		       (array_agg(e.entry_date ORDER BY e.entry_type <> $3, e.entry_date, e.entry_id))[1] AS document_date,
		       COALESCE(SUM(l.debit), 0) AS total_debit,
		       COALESCE(SUM(l.credit), 0) AS total_credit
		FROM journal_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		WHERE e.is_posted AND l.account_id = $1 AND e.entry_date <= $2
		GROUP BY 1
		ORDER BY 1;
	`
	rows, err := r.Pool.Query(ctx, query, accountID, domain.DateOnly(asOf), string(documentType))
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to sum journal lines by source", err)
	}
	defer rows.Close()

	out := []domain.SourceBalance{}
	for rows.Next() {
		var sb domain.SourceBalance
		if err := rows.Scan(&sb.SourceID, &sb.Reference, &sb.DocumentDate, &sb.Totals.Debit, &sb.Totals.Credit); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan source totals row", err)
		}
		sb.DocumentDate = domain.DateOnly(sb.DocumentDate)
		out = append(out, sb)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating source totals rows", err)
	}
	return out, nil
}
