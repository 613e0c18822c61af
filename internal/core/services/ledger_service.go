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
	"github.com/SscSPs/books_ledger/internal/utils/accounting"
	"github.com/SscSPs/books_ledger/internal/utils/pagination"
)

// ledgerService is the ledger store: every write path validates the full
// line set before the repository is touched.
type ledgerService struct {
	BaseService
	journalRepo portsrepo.JournalRepositoryFacade
	accountRepo portsrepo.AccountReader
}

// NewLedgerService creates the ledger store service.
func NewLedgerService(journalRepo portsrepo.JournalRepositoryFacade, accountRepo portsrepo.AccountReader) portssvc.LedgerSvcFacade {
	return &ledgerService{
		journalRepo: journalRepo,
		accountRepo: accountRepo,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// Post validates req and persists it as one posted entry.
func (s *ledgerService) Post(ctx context.Context, req domain.PostingRequest) (*domain.JournalEntry, error) {
	entry, err := s.prepare(ctx, req)
	if err != nil {
		s.LogError(ctx, err, "Rejected journal entry",
			slog.String("entry_type", string(req.EntryType)),
			slog.String("reference", req.Reference))
		return nil, err
	}

	if _, keyed := req.Source.SourceID(req.EntryType); keyed {
		exists, err := s.journalRepo.ExistsForSource(ctx, req.EntryType, req.Source)
		if err != nil {
			return nil, fmt.Errorf("failed to check source entry: %w", err)
		}
		if exists {
			return nil, fmt.Errorf("%w: %s entry already exists for source", apperrors.ErrDuplicate, req.EntryType)
		}
	}

	saved, err := s.journalRepo.SaveEntry(ctx, *entry)
	if err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save journal entry",
				slog.String("entry_type", string(req.EntryType)),
				slog.String("reference", req.Reference))
		}
		return nil, err
	}

	debit, _ := saved.Totals()
	s.LogInfo(ctx, "Journal entry posted",
		slog.Int64("entry_id", saved.EntryID),
		slog.String("entry_type", string(saved.EntryType)),
		slog.String("amount", debit.StringFixed(domain.MoneyPlaces)),
		slog.Int("line_count", len(saved.Lines)))
	return saved, nil
}

// prepare checks the posting preconditions and builds the entry to persist.
func (s *ledgerService) prepare(ctx context.Context, req domain.PostingRequest) (*domain.JournalEntry, error) {
	if !req.EntryType.IsValid() {
		return nil, fmt.Errorf("%w: unknown entry type %q", apperrors.ErrValidation, req.EntryType)
	}
	if req.EntryDate.IsZero() {
		return nil, fmt.Errorf("%w: entry date is required", apperrors.ErrValidation)
	}
	description := strings.TrimSpace(req.Description)
	if description == "" {
		return nil, fmt.Errorf("%w: description is required", apperrors.ErrValidation)
	}

	lines, err := accounting.NormalizeLines(req.Lines)
	if err != nil {
		return nil, err
	}
	if err := accounting.ValidateBalance(lines); err != nil {
		return nil, err
	}

	accounts := make(map[int64]*domain.Account)
	for i := range lines {
		id := lines[i].AccountID
		acc, ok := accounts[id]
		if !ok {
			acc, err = s.accountRepo.FindAccountByID(ctx, id)
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: line %d references unknown account %d", apperrors.ErrValidation, i+1, id)
			}
			if err != nil {
				return nil, fmt.Errorf("failed to load account %d: %w", id, err)
			}
			accounts[id] = acc
		}
		if !acc.IsActive {
			return nil, fmt.Errorf("%w: line %d references inactive account %s", apperrors.ErrValidation, i+1, acc.Code)
		}
		lines[i].AccountCode = acc.Code
		lines[i].AccountName = acc.Name
	}

	now := time.Now()
	return &domain.JournalEntry{
		EntryDate:   domain.DateOnly(req.EntryDate),
		Description: description,
		Reference:   strings.TrimSpace(req.Reference),
		EntryType:   req.EntryType,
		Source:      req.Source,
		IsPosted:    true,
		Notes:       req.Notes,
		Lines:       lines,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}, nil
}

// DeleteEntry removes a manual entry and its lines.
func (s *ledgerService) DeleteEntry(ctx context.Context, entryID int64) error {
	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return err
	}
	if !entry.EntryType.IsDeletable() {
		err := &apperrors.ImmutableEntryError{EntryID: entryID, EntryType: string(entry.EntryType)}
		s.LogWarn(ctx, "Refused to delete journal entry",
			slog.Int64("entry_id", entryID),
			slog.String("entry_type", string(entry.EntryType)))
		return err
	}
	if err := s.journalRepo.DeleteEntry(ctx, entryID); err != nil {
		s.LogError(ctx, err, "Failed to delete journal entry", slog.Int64("entry_id", entryID))
		return err
	}
	s.LogInfo(ctx, "Journal entry deleted", slog.Int64("entry_id", entryID))
	return nil
}

func (s *ledgerService) GetEntry(ctx context.Context, entryID int64) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get journal entry", slog.Int64("entry_id", entryID))
		}
		return nil, err
	}
	return entry, nil
}

func (s *ledgerService) QueryEntries(ctx context.Context, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	filter := params.Filter()
	if filter.EntryType != "" && !filter.EntryType.IsValid() {
		return nil, fmt.Errorf("%w: unknown entry type %q", apperrors.ErrValidation, filter.EntryType)
	}
	if filter.From != nil && filter.To != nil && filter.From.After(*filter.To) {
		return nil, fmt.Errorf("%w: from date is after to date", apperrors.ErrValidation)
	}

	limit := pagination.ClampLimit(params.Limit, defaultPageSize, maxPageSize)
	entries, next, err := s.journalRepo.ListEntries(ctx, filter, limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list journal entries")
		return nil, err
	}
	return &dto.ListEntriesResponse{
		Entries:   dto.ToJournalEntryResponses(entries),
		NextToken: next,
	}, nil
}

func (s *ledgerService) ExistsForSource(ctx context.Context, entryType domain.EntryType, refs domain.SourceRefs) (bool, error) {
	return s.journalRepo.ExistsForSource(ctx, entryType, refs)
}
