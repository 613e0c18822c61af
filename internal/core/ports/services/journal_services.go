package services

import (
	"context"

	"github.com/SscSPs/books_ledger/internal/core/domain"
	"github.com/SscSPs/books_ledger/internal/dto"
)

// LedgerReaderSvc defines read operations over the ledger store
type LedgerReaderSvc interface {
	// GetEntry retrieves a journal entry with its lines.
	GetEntry(ctx context.Context, entryID int64) (*domain.JournalEntry, error)

	// QueryEntries retrieves posted entries ordered by (date desc, id desc).
	QueryEntries(ctx context.Context, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error)

	// ExistsForSource reports whether the source record already has an entry of the given type.
	ExistsForSource(ctx context.Context, entryType domain.EntryType, refs domain.SourceRefs) (bool, error)
}

// LedgerWriterSvc defines write operations over the ledger store
type LedgerWriterSvc interface {
	// Post validates the request and persists the entry with all its lines atomically.
	Post(ctx context.Context, req domain.PostingRequest) (*domain.JournalEntry, error)

	// DeleteEntry removes a manual entry. Any other type fails with apperrors.ImmutableEntryError.
	DeleteEntry(ctx context.Context, entryID int64) error
}

// LedgerSvcFacade combines all ledger-related service interfaces
type LedgerSvcFacade interface {
	LedgerReaderSvc
	LedgerWriterSvc
}

// PostingSvc turns business events into ledger entries.
// A rule that cannot resolve an account returns apperrors.MappingError and nothing is written.
type PostingSvc interface {
	PostCashTransaction(ctx context.Context, txn domain.CashTransaction) (*domain.JournalEntry, error)
	PostInvoiceSent(ctx context.Context, inv domain.Invoice) (*domain.JournalEntry, error)
	PostInvoicePayment(ctx context.Context, inv domain.Invoice, payment domain.Payment) (*domain.JournalEntry, error)
	PostBillReceived(ctx context.Context, bill domain.Bill) (*domain.JournalEntry, error)
	PostBillPayment(ctx context.Context, bill domain.Bill, payment domain.Payment) (*domain.JournalEntry, error)
	PostManual(ctx context.Context, req domain.PostingRequest) (*domain.JournalEntry, error)
}

// BackfillSvc ensures every qualifying business event has exactly one ledger entry.
type BackfillSvc interface {
	Run(ctx context.Context, opts domain.BackfillOptions) (*domain.BackfillResult, error)
}
