package dto

import (
	"time"

	"github.com/SscSPs/books_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// JournalLineRequest is one line of a manual entry.
type JournalLineRequest struct {
	AccountID   int64           `json:"accountID" binding:"required,gt=0"`
	Description string          `json:"description"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// CreateJournalEntryRequest defines the data needed to post a manual or adjusting entry.
type CreateJournalEntryRequest struct {
	EntryDate   time.Time            `json:"entryDate" binding:"required"`
	Description string               `json:"description" binding:"required,max=500"`
	Reference   string               `json:"reference" binding:"max=100"`
	EntryType   domain.EntryType     `json:"entryType" binding:"omitempty,oneof=manual adjustment"`
	Notes       string               `json:"notes"`
	Lines       []JournalLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// ToPostingRequest converts the request into a ledger posting request.
func (r CreateJournalEntryRequest) ToPostingRequest() domain.PostingRequest {
	entryType := r.EntryType
	if entryType == "" {
		entryType = domain.EntryManual
	}
	lines := make([]domain.JournalLine, len(r.Lines))
	for i, l := range r.Lines {
		lines[i] = domain.JournalLine{
			AccountID:   l.AccountID,
			Description: l.Description,
			Debit:       l.Debit,
			Credit:      l.Credit,
		}
	}
	return domain.PostingRequest{
		EntryDate:   r.EntryDate,
		Description: r.Description,
		Reference:   r.Reference,
		EntryType:   entryType,
		Notes:       r.Notes,
		Lines:       lines,
	}
}

// JournalLineResponse defines the data returned for a journal line.
type JournalLineResponse struct {
	LineID      int64           `json:"lineID"`
	AccountID   int64           `json:"accountID"`
	AccountCode string          `json:"accountCode,omitempty"`
	AccountName string          `json:"accountName,omitempty"`
	Description string          `json:"description,omitempty"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// JournalEntryResponse defines the data returned for a journal entry.
type JournalEntryResponse struct {
	EntryID     int64                 `json:"entryID"`
	EntryDate   string                `json:"entryDate"`
	Description string                `json:"description"`
	Reference   string                `json:"reference,omitempty"`
	EntryType   domain.EntryType      `json:"entryType"`
	Source      domain.SourceRefs     `json:"source"`
	IsPosted    bool                  `json:"isPosted"`
	Notes       string                `json:"notes,omitempty"`
	TotalDebit  decimal.Decimal       `json:"totalDebit"`
	TotalCredit decimal.Decimal       `json:"totalCredit"`
	Lines       []JournalLineResponse `json:"lines"`
	CreatedAt   time.Time             `json:"createdAt"`
}

// ToJournalEntryResponse converts a domain.JournalEntry to JournalEntryResponse DTO.
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	lines := make([]JournalLineResponse, len(e.Lines))
	for i, l := range e.Lines {
		lines[i] = JournalLineResponse{
			LineID:      l.LineID,
			AccountID:   l.AccountID,
			AccountCode: l.AccountCode,
			AccountName: l.AccountName,
			Description: l.Description,
			Debit:       l.Debit,
			Credit:      l.Credit,
		}
	}
	debit, credit := e.Totals()
	return JournalEntryResponse{
		EntryID:     e.EntryID,
		EntryDate:   e.EntryDate.Format("2006-01-02"),
		Description: e.Description,
		Reference:   e.Reference,
		EntryType:   e.EntryType,
		Source:      e.Source,
		IsPosted:    e.IsPosted,
		Notes:       e.Notes,
		TotalDebit:  debit,
		TotalCredit: credit,
		Lines:       lines,
		CreatedAt:   e.CreatedAt,
	}
}

// ToJournalEntryResponses converts a slice of entries.
func ToJournalEntryResponses(entries []domain.JournalEntry) []JournalEntryResponse {
	res := make([]JournalEntryResponse, len(entries))
	for i := range entries {
		res[i] = ToJournalEntryResponse(&entries[i])
	}
	return res
}

// ListEntriesParams defines query parameters for listing journal entries.
type ListEntriesParams struct {
	From      *time.Time `form:"from" time_format:"2006-01-02"`
	To        *time.Time `form:"to" time_format:"2006-01-02"`
	AccountID *int64     `form:"accountID"`
	EntryType string     `form:"entryType"`
	Limit     int        `form:"limit"`
	NextToken *string    `form:"nextToken"`
}

// Filter extracts the domain filter.
func (p ListEntriesParams) Filter() domain.EntryFilter {
	return domain.EntryFilter{
		From:      p.From,
		To:        p.To,
		AccountID: p.AccountID,
		EntryType: domain.EntryType(p.EntryType),
	}
}

// ListEntriesResponse is one page of journal entries.
type ListEntriesResponse struct {
	Entries   []JournalEntryResponse `json:"entries"`
	NextToken *string                `json:"nextToken,omitempty"`
}
