package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/SscSPs/books_ledger/internal/apperrors"
	"github.com/SscSPs/books_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/books_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/books_ledger/internal/models"
	"github.com/SscSPs/books_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const accountColumns = `account_id, code, name, account_type, sub_type, tax_code, description,
	parent_account_id, is_active, is_system, normal_balance, created_at, last_updated_at`

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for chart-of-accounts data.
func newPgxAccountRepository(pool *pgxpool.Pool) *PgxAccountRepository {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

func scanAccount(row pgx.Row) (models.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountID,
		&m.Code,
		&m.Name,
		&m.AccountType,
		&m.SubType,
		&m.TaxCode,
		&m.Description,
		&m.ParentAccountID,
		&m.IsActive,
		&m.IsSystem,
		&m.NormalBalance,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	return m, err
}

// SaveAccount inserts a new account and returns it with the generated id.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) (*domain.Account, error) {
	m := mapping.ToModelAccount(account)
	now := time.Now().UTC()

	query := `
		INSERT INTO accounts (code, name, account_type, sub_type, tax_code, description,
			parent_account_id, is_active, is_system, normal_balance, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $11)
		RETURNING ` + accountColumns + `;
	`
	saved, err := scanAccount(r.Pool.QueryRow(ctx, query,
		m.Code,
		m.Name,
		m.AccountType,
		m.SubType,
		m.TaxCode,
		m.Description,
		m.ParentAccountID,
		m.IsActive,
		m.IsSystem,
		m.NormalBalance,
		now,
	))
	if err != nil {
		if code, _ := pgErrorCode(err); code == pgUniqueViolation {
			return nil, &apperrors.DuplicateCodeError{Code: m.Code}
		}
		return nil, fmt.Errorf("failed to save account %s: %w", m.Code, err)
	}

	d := mapping.ToDomainAccount(saved)
	return &d, nil
}

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID int64) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1;`
	m, err := scanAccount(r.Pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &apperrors.NotFoundError{Resource: "account", Key: strconv.FormatInt(accountID, 10)}
		}
		return nil, fmt.Errorf("failed to find account by ID %d: %w", accountID, err)
	}
	d := mapping.ToDomainAccount(m)
	return &d, nil
}

// FindAccountByCode retrieves an account by its chart code.
func (r *PgxAccountRepository) FindAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE code = $1;`
	m, err := scanAccount(r.Pool.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &apperrors.NotFoundError{Resource: "account", Key: code}
		}
		return nil, fmt.Errorf("failed to find account by code %s: %w", code, err)
	}
	d := mapping.ToDomainAccount(m)
	return &d, nil
}

// ListAccounts retrieves accounts ordered by code.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, filter domain.AccountFilter) ([]domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE ($1 = '' OR account_type = $1)
		  AND (NOT $2 OR is_active)
		ORDER BY code;
	`
	rows, err := r.Pool.Query(ctx, query, string(filter.AccountType), filter.ActiveOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	accounts := []models.Account{}
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts = append(accounts, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}
	return mapping.ToDomainAccountSlice(accounts), nil
}

func (r *PgxAccountRepository) AccountHasLines(ctx context.Context, accountID int64) (bool, error) {
	var exists bool
	err := r.Pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM journal_lines WHERE account_id = $1);`, accountID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check lines of account %d: %w", accountID, err)
	}
	return exists, nil
}

// UpdateAccount updates the mutable fields. Code, type and normal balance are never written.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `
		UPDATE accounts
		SET name = $2, sub_type = $3, tax_code = $4, description = $5,
			parent_account_id = $6, is_active = $7, last_updated_at = $8
		WHERE account_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.AccountID,
		m.Name,
		m.SubType,
		m.TaxCode,
		m.Description,
		m.ParentAccountID,
		m.IsActive,
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to update account %d: %w", m.AccountID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return &apperrors.NotFoundError{Resource: "account", Key: strconv.FormatInt(m.AccountID, 10)}
	}
	return nil
}

// DeleteAccount removes an account. The journal_lines foreign key refuses accounts that carry lines.
func (r *PgxAccountRepository) DeleteAccount(ctx context.Context, accountID int64) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM accounts WHERE account_id = $1;`, accountID)
	if err != nil {
		if code, _ := pgErrorCode(err); code == pgForeignKeyViolation {
			return fmt.Errorf("%w: account %d is referenced", apperrors.ErrConflict, accountID)
		}
		return fmt.Errorf("failed to delete account %d: %w", accountID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return &apperrors.NotFoundError{Resource: "account", Key: strconv.FormatInt(accountID, 10)}
	}
	return nil
}
