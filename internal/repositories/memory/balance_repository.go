package memory

import (
	"context"
	"sort"
	"time"

	"github.com/SscSPs/books_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/books_ledger/internal/core/ports/repositories"
)

func (s *Store) SumLinesByAccount(_ context.Context, q portsrepo.BalanceQuery) (map[int64]domain.LineTotals, error) {
	wanted := make(map[int64]bool, len(q.AccountIDs))
	for _, id := range q.AccountIDs {
		wanted[id] = true
	}
	to := domain.DateOnly(q.To)

	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[int64]domain.LineTotals)
	for _, e := range s.entries {
		if !e.IsPosted || e.EntryDate.After(to) {
			continue
		}
		if q.From != nil && e.EntryDate.Before(domain.DateOnly(*q.From)) {
			continue
		}
		for _, l := range e.Lines {
			if len(wanted) > 0 && !wanted[l.AccountID] {
				continue
			}
			t := out[l.AccountID]
			t.Debit = t.Debit.Add(l.Debit)
			t.Credit = t.Credit.Add(l.Credit)
			out[l.AccountID] = t
		}
	}
	return out, nil
}

func (s *Store) SumLinesBySource(_ context.Context, accountID int64, kind domain.AgingKind, asOf time.Time) ([]domain.SourceBalance, error) {
	documentType := domain.EntryAutoInvoice
	if kind == domain.AgingPayables {
		documentType = domain.EntryAutoBill
	}
	asOf = domain.DateOnly(asOf)

	s.mu.RLock()
	defer s.mu.RUnlock()
	groups := make(map[int64]*domain.SourceBalance)
	documents := make(map[int64]bool)
	for _, e := range s.entries {
		if !e.IsPosted || e.EntryDate.After(asOf) {
			continue
		}
		sourceID := sourceFor(e.Source, kind)
		for _, l := range e.Lines {
			if l.AccountID != accountID {
				continue
			}
			g, ok := groups[sourceID]
			if !ok {
				g = &domain.SourceBalance{SourceID: sourceID, DocumentDate: e.EntryDate, Reference: e.Reference}
				groups[sourceID] = g
			}
			// the document entry dates the group, other entries only fill in when it is missing
			if e.EntryType == documentType && !documents[sourceID] {
				g.DocumentDate = e.EntryDate
				g.Reference = e.Reference
				documents[sourceID] = true
			} else if !documents[sourceID] && e.EntryDate.Before(g.DocumentDate) {
				g.DocumentDate = e.EntryDate
				g.Reference = e.Reference
			}
			g.Totals.Debit = g.Totals.Debit.Add(l.Debit)
			g.Totals.Credit = g.Totals.Credit.Add(l.Credit)
		}
	}

	out := make([]domain.SourceBalance, 0, len(groups))
	for _, g := range groups {
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SourceID < out[j].SourceID })
	return out, nil
}

func sourceFor(refs domain.SourceRefs, kind domain.AgingKind) int64 {
	ref := refs.InvoiceID
	if kind == domain.AgingPayables {
		ref = refs.BillID
	}
	if ref == nil {
		return 0
	}
	return *ref
}
