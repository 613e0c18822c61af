package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/books_ledger/internal/apperrors"
	"github.com/SscSPs/books_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/books_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/books_ledger/internal/models"
	"github.com/SscSPs/books_ledger/internal/utils/mapping"
	"github.com/SscSPs/books_ledger/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const entryColumns = `e.entry_id, e.entry_date, e.description, e.reference, e.entry_type,
	e.transaction_id, e.invoice_id, e.bill_id, e.payment_id, e.is_posted, e.notes, e.created_at, e.last_updated_at`

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal entries and their lines.
func newPgxJournalRepository(pool *pgxpool.Pool) *PgxJournalRepository {
	return &PgxJournalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

func scanEntry(row pgx.Row) (models.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(
		&m.EntryID,
		&m.EntryDate,
		&m.Description,
		&m.Reference,
		&m.EntryType,
		&m.TransactionID,
		&m.InvoiceID,
		&m.BillID,
		&m.PaymentID,
		&m.IsPosted,
		&m.Notes,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	return m, err
}

// SaveEntry inserts the header and all lines within one DB transaction.
// The partial unique indexes on the source columns reject a second entry for the same source.
func (r *PgxJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry) (*domain.JournalEntry, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelJournalEntry(entry)
	now := time.Now().UTC()
	m.CreatedAt = now
	m.LastUpdatedAt = now

	headerQuery := `
		INSERT INTO journal_entries (entry_date, description, reference, entry_type,
			transaction_id, invoice_id, bill_id, payment_id, is_posted, notes, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $11)
		RETURNING entry_id;
	`
	err = tx.QueryRow(ctx, headerQuery,
		m.EntryDate,
		m.Description,
		m.Reference,
		m.EntryType,
		m.TransactionID,
		m.InvoiceID,
		m.BillID,
		m.PaymentID,
		m.IsPosted,
		m.Notes,
		now,
	).Scan(&m.EntryID)
	if err != nil {
		if code, constraint := pgErrorCode(err); code == pgUniqueViolation {
			return nil, fmt.Errorf("%w: %s entry already exists for its source (%s)", apperrors.ErrDuplicate, m.EntryType, constraint)
		}
		return nil, apperrors.NewAppError(500, "failed to insert journal entry", err)
	}

	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO journal_lines (entry_id, account_id, description, debit, credit)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING line_id;
	`
	lines := make([]domain.JournalLine, len(entry.Lines))
	for i, l := range entry.Lines {
		ml := mapping.ToModelJournalLine(l)
		batch.Queue(lineQuery, m.EntryID, ml.AccountID, ml.Description, ml.Debit, ml.Credit).
			QueryRow(func(row pgx.Row) error {
				return row.Scan(&lines[i].LineID)
			})
		lines[i] = l
		lines[i].EntryID = m.EntryID
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		if code, _ := pgErrorCode(err); code == pgForeignKeyViolation {
			return nil, fmt.Errorf("%w: journal line references an unknown account", apperrors.ErrValidation)
		}
		return nil, apperrors.NewAppError(500, "failed to execute line batch for entry "+strconv.FormatInt(m.EntryID, 10), err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	saved := mapping.ToDomainJournalEntry(m, nil)
	saved.Lines = lines
	return &saved, nil
}

// FindEntryByID retrieves an entry with its lines.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, entryID int64) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries e WHERE e.entry_id = $1;`
	m, err := scanEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &apperrors.NotFoundError{Resource: "journal entry", Key: strconv.FormatInt(entryID, 10)}
		}
		return nil, apperrors.NewAppError(500, "failed to find journal entry "+strconv.FormatInt(entryID, 10), err)
	}

	lines, err := r.findLines(ctx, []int64{entryID})
	if err != nil {
		return nil, err
	}
	d := mapping.ToDomainJournalEntry(m, lines[entryID])
	return &d, nil
}

// findLines loads the lines of the given entries grouped by entry id, in insertion order.
func (r *PgxJournalRepository) findLines(ctx context.Context, entryIDs []int64) (map[int64][]models.JournalLine, error) {
	out := make(map[int64][]models.JournalLine, len(entryIDs))
	if len(entryIDs) == 0 {
		return out, nil
	}
	query := `
		SELECT l.line_id, l.entry_id, l.account_id, a.code, a.name, l.description, l.debit, l.credit
		FROM journal_lines l
		JOIN accounts a ON a.account_id = l.account_id
		WHERE l.entry_id = ANY($1)
		ORDER BY l.entry_id, l.line_id;
	`
	rows, err := r.Pool.Query(ctx, query, entryIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query journal lines", err)
	}
	defer rows.Close()

	for rows.Next() {
		var l models.JournalLine
		if err := rows.Scan(
			&l.LineID,
			&l.EntryID,
			&l.AccountID,
			&l.AccountCode,
			&l.AccountName,
			&l.Description,
			&l.Debit,
			&l.Credit,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan journal line row", err)
		}
		out[l.EntryID] = append(out[l.EntryID], l)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating journal line rows", err)
	}
	return out, nil
}

// ListEntries retrieves posted entries ordered by (entry_date desc, entry_id desc).
// One extra row is fetched to determine whether a next page exists.
func (r *PgxJournalRepository) ListEntries(ctx context.Context, filter domain.EntryFilter, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	cursor, err := decodeCursor(nextToken)
	if err != nil {
		return nil, nil, err
	}

	var where []string
	args := []any{}
	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	where = append(where, "e.is_posted")
	if filter.From != nil {
		where = append(where, "e.entry_date >= "+arg(domain.DateOnly(*filter.From)))
	}
	if filter.To != nil {
		where = append(where, "e.entry_date <= "+arg(domain.DateOnly(*filter.To)))
	}
	if filter.EntryType != "" {
		where = append(where, "e.entry_type = "+arg(string(filter.EntryType)))
	}
	if filter.AccountID != nil {
		where = append(where, "EXISTS (SELECT 1 FROM journal_lines fl WHERE fl.entry_id = e.entry_id AND fl.account_id = "+arg(*filter.AccountID)+")")
	}
	if cursor != nil {
		// Tuple comparison keeps the cursor stable across equal dates
		where = append(where, "(e.entry_date, e.entry_id) < ("+arg(cursor.Date)+", "+arg(cursor.ID)+")")
	}

	query := `SELECT ` + entryColumns + ` FROM journal_entries e WHERE ` + strings.Join(where, " AND ") +
		` ORDER BY e.entry_date DESC, e.entry_id DESC`
	if limit > 0 {
		query += " LIMIT " + arg(limit+1)
	}

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query journal entries", err)
	}
	defer rows.Close()

	headers := []models.JournalEntry{}
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan journal entry row", err)
		}
		headers = append(headers, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating journal entry rows", err)
	}

	var nextTokenVal *string
	if limit > 0 && len(headers) > limit {
		headers = headers[:limit]
		last := headers[len(headers)-1]
		token := pagination.EncodeToken(last.EntryDate, last.EntryID)
		nextTokenVal = &token
	}

	ids := make([]int64, len(headers))
	for i, h := range headers {
		ids[i] = h.EntryID
	}
	lines, err := r.findLines(ctx, ids)
	if err != nil {
		return nil, nil, err
	}

	entries := make([]domain.JournalEntry, len(headers))
	for i, h := range headers {
		entries[i] = mapping.ToDomainJournalEntry(h, lines[h.EntryID])
	}
	return entries, nextTokenVal, nil
}

// ExistsForSource reports whether an entry of entryType is already linked to the keyed source.
func (r *PgxJournalRepository) ExistsForSource(ctx context.Context, entryType domain.EntryType, refs domain.SourceRefs) (bool, error) {
	id, keyed := refs.SourceID(entryType)
	if !keyed {
		return false, nil
	}
	column := sourceColumn(entryType)
	query := `SELECT EXISTS (SELECT 1 FROM journal_entries WHERE entry_type = $1 AND ` + column + ` = $2);`

	var exists bool
	if err := r.Pool.QueryRow(ctx, query, string(entryType), id).Scan(&exists); err != nil {
		return false, apperrors.NewAppError(500, "failed to check source of "+string(entryType)+" entry", err)
	}
	return exists, nil
}

func sourceColumn(t domain.EntryType) string {
	switch t {
	case domain.EntryAutoExpense, domain.EntryAutoRevenue:
		return "transaction_id"
	case domain.EntryAutoBill:
		return "bill_id"
	case domain.EntryAutoBillPayment:
		return "payment_id"
	default:
		return "invoice_id"
	}
}

// DeleteEntry removes an entry. Lines are removed by ON DELETE CASCADE.
func (r *PgxJournalRepository) DeleteEntry(ctx context.Context, entryID int64) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM journal_entries WHERE entry_id = $1;`, entryID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete journal entry "+strconv.FormatInt(entryID, 10), err)
	}
	if cmdTag.RowsAffected() == 0 {
		return &apperrors.NotFoundError{Resource: "journal entry", Key: strconv.FormatInt(entryID, 10)}
	}
	return nil
}

// ListAccountLines retrieves posted lines of an account ordered by (entry_date desc, line_id desc).
func (r *PgxJournalRepository) ListAccountLines(ctx context.Context, accountID int64, limit int, nextToken *string) ([]domain.LedgerLine, *string, error) {
	cursor, err := decodeCursor(nextToken)
	if err != nil {
		return nil, nil, err
	}

	query := `
		SELECT l.line_id, l.entry_id, l.account_id, a.code, a.name, l.description, l.debit, l.credit,
		       e.entry_date, e.description, e.reference, e.entry_type
		FROM journal_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		JOIN accounts a ON a.account_id = l.account_id
		WHERE l.account_id = $1 AND e.is_posted
	`
	args := []any{accountID}
	if cursor != nil {
		query += ` AND (e.entry_date, l.line_id) < ($2, $3)`
		args = append(args, cursor.Date, cursor.ID)
	}
	query += ` ORDER BY e.entry_date DESC, l.line_id DESC`
	if limit > 0 {
		query += " LIMIT $" + strconv.Itoa(len(args)+1)
		args = append(args, limit+1)
	}

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query lines for account "+strconv.FormatInt(accountID, 10), err)
	}
	defer rows.Close()

	results := []domain.LedgerLine{}
	for rows.Next() {
		var m models.LedgerLine
		if err := rows.Scan(
			&m.LineID,
			&m.EntryID,
			&m.AccountID,
			&m.AccountCode,
			&m.AccountName,
			&m.Description,
			&m.Debit,
			&m.Credit,
			&m.EntryDate,
			&m.EntryDescription,
			&m.Reference,
			&m.EntryType,
		); err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan ledger line row", err)
		}
		results = append(results, mapping.ToDomainLedgerLine(m))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating ledger line rows", err)
	}

	var nextTokenVal *string
	if limit > 0 && len(results) > limit {
		results = results[:limit]
		last := results[len(results)-1]
		token := pagination.EncodeToken(last.EntryDate, last.LineID)
		nextTokenVal = &token
	}
	return results, nextTokenVal, nil
}
