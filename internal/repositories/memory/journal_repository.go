package memory

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/SscSPs/books_ledger/internal/apperrors"
	"github.com/SscSPs/books_ledger/internal/core/domain"
	"github.com/SscSPs/books_ledger/internal/utils/pagination"
)

func (s *Store) FindEntryByID(_ context.Context, entryID int64) (*domain.JournalEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[entryID]
	if !ok {
		return nil, &apperrors.NotFoundError{Resource: "journal entry", Key: strconv.FormatInt(entryID, 10)}
	}
	e = copyEntry(e)
	return &e, nil
}

func (s *Store) ListEntries(_ context.Context, filter domain.EntryFilter, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	cursor, err := decodeCursor(nextToken)
	if err != nil {
		return nil, nil, err
	}

	s.mu.RLock()
	matched := make([]domain.JournalEntry, 0)
	for _, e := range s.entries {
		if !e.IsPosted || !matchesFilter(e, filter) {
			continue
		}
		if cursor != nil && !cursor.Before(e.EntryDate, e.EntryID) {
			continue
		}
		matched = append(matched, copyEntry(e))
	}
	s.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].EntryDate.Equal(matched[j].EntryDate) {
			return matched[i].EntryID > matched[j].EntryID
		}
		return matched[i].EntryDate.After(matched[j].EntryDate)
	})

	if limit <= 0 || len(matched) <= limit {
		return matched, nil, nil
	}
	page := matched[:limit]
	last := page[len(page)-1]
	token := pagination.EncodeToken(last.EntryDate, last.EntryID)
	return page, &token, nil
}

func matchesFilter(e domain.JournalEntry, f domain.EntryFilter) bool {
	if f.From != nil && e.EntryDate.Before(domain.DateOnly(*f.From)) {
		return false
	}
	if f.To != nil && e.EntryDate.After(domain.DateOnly(*f.To)) {
		return false
	}
	if f.EntryType != "" && e.EntryType != f.EntryType {
		return false
	}
	if f.AccountID != nil {
		for _, l := range e.Lines {
			if l.AccountID == *f.AccountID {
				return true
			}
		}
		return false
	}
	return true
}

func (s *Store) ExistsForSource(_ context.Context, entryType domain.EntryType, refs domain.SourceRefs) (bool, error) {
	id, keyed := refs.SourceID(entryType)
	if !keyed {
		return false, nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sourceTaken(entryType, id), nil
}

func (s *Store) sourceTaken(entryType domain.EntryType, id int64) bool {
	for _, e := range s.entries {
		if e.EntryType != entryType {
			continue
		}
		if other, ok := e.Source.SourceID(entryType); ok && other == id {
			return true
		}
	}
	return false
}

func (s *Store) SaveEntry(_ context.Context, entry domain.JournalEntry) (*domain.JournalEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry.EntryType == domain.EntryAutoBillPayment && (entry.Source.BillID == nil || entry.Source.PaymentID == nil) {
		return nil, fmt.Errorf("%w: bill payment entry needs a bill and a payment", apperrors.ErrValidation)
	}
	if id, keyed := entry.Source.SourceID(entry.EntryType); keyed && s.sourceTaken(entry.EntryType, id) {
		return nil, fmt.Errorf("%w: %s entry for source %d", apperrors.ErrDuplicate, entry.EntryType, id)
	}
	for _, l := range entry.Lines {
		if _, ok := s.accounts[l.AccountID]; !ok {
			return nil, fmt.Errorf("%w: account %d does not exist", apperrors.ErrValidation, l.AccountID)
		}
	}

	s.nextEntry++
	entry = copyEntry(entry)
	entry.EntryID = s.nextEntry
	now := time.Now()
	entry.CreatedAt = now
	entry.LastUpdatedAt = now
	for i := range entry.Lines {
		s.nextLine++
		entry.Lines[i].LineID = s.nextLine
		entry.Lines[i].EntryID = entry.EntryID
	}
	s.entries[entry.EntryID] = entry

	saved := copyEntry(entry)
	return &saved, nil
}

func (s *Store) DeleteEntry(_ context.Context, entryID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[entryID]; !ok {
		return &apperrors.NotFoundError{Resource: "journal entry", Key: strconv.FormatInt(entryID, 10)}
	}
	delete(s.entries, entryID)
	return nil
}

func (s *Store) ListAccountLines(_ context.Context, accountID int64, limit int, nextToken *string) ([]domain.LedgerLine, *string, error) {
	cursor, err := decodeCursor(nextToken)
	if err != nil {
		return nil, nil, err
	}

	s.mu.RLock()
	lines := make([]domain.LedgerLine, 0)
	for _, e := range s.entries {
		if !e.IsPosted {
			continue
		}
		for _, l := range e.Lines {
			if l.AccountID != accountID {
				continue
			}
			if cursor != nil && !cursor.Before(e.EntryDate, l.LineID) {
				continue
			}
			lines = append(lines, domain.LedgerLine{
				JournalLine:      l,
				EntryDate:        e.EntryDate,
				EntryDescription: e.Description,
				Reference:        e.Reference,
				EntryType:        e.EntryType,
			})
		}
	}
	s.mu.RUnlock()

	sort.Slice(lines, func(i, j int) bool {
		if lines[i].EntryDate.Equal(lines[j].EntryDate) {
			return lines[i].LineID > lines[j].LineID
		}
		return lines[i].EntryDate.After(lines[j].EntryDate)
	})

	if limit <= 0 || len(lines) <= limit {
		return lines, nil, nil
	}
	page := lines[:limit]
	last := page[len(page)-1]
	token := pagination.EncodeToken(last.EntryDate, last.LineID)
	return page, &token, nil
}

func decodeCursor(nextToken *string) (*pagination.Cursor, error) {
	if nextToken == nil || *nextToken == "" {
		return nil, nil
	}
	cursor, err := pagination.DecodeToken(*nextToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	return &cursor, nil
}
