package repositories

import (
	"context"

	"github.com/SscSPs/books_ledger/internal/core/domain"
)

// JournalReader defines read operations for journal data
type JournalReader interface {
	// FindEntryByID retrieves a journal entry with its lines.
	FindEntryByID(ctx context.Context, entryID int64) (*domain.JournalEntry, error)

	// ListEntries retrieves posted entries ordered by (entry date desc, id desc) using token-based pagination.
	// It returns the entries with their lines, a token for the next page, and an error.
	ListEntries(ctx context.Context, filter domain.EntryFilter, limit int, nextToken *string) ([]domain.JournalEntry, *string, error)

	// ExistsForSource reports whether an entry of the given type already exists for the source record.
	ExistsForSource(ctx context.Context, entryType domain.EntryType, refs domain.SourceRefs) (bool, error)
}

// JournalWriter defines write operations for journal data
type JournalWriter interface {
	// SaveEntry persists an entry and all of its lines in one transaction and returns it with ids assigned.
	// A second entry for an already linked source yields apperrors.ErrDuplicate.
	SaveEntry(ctx context.Context, entry domain.JournalEntry) (*domain.JournalEntry, error)

	// DeleteEntry removes an entry, its lines go with it.
	DeleteEntry(ctx context.Context, entryID int64) error
}

// LineReader defines account-centric reads over journal lines
type LineReader interface {
	// ListAccountLines retrieves posted lines of an account ordered by (entry date desc, line id desc).
	ListAccountLines(ctx context.Context, accountID int64, limit int, nextToken *string) ([]domain.LedgerLine, *string, error)
}

// JournalRepositoryFacade combines all journal-related repository interfaces
// This is a facade for clients that need access to all operations
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
	LineReader
}
