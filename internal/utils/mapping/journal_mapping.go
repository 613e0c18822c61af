package mapping

import (
	"github.com/SscSPs/books_ledger/internal/core/domain"
	"github.com/SscSPs/books_ledger/internal/models"
)

// ToModelJournalEntry converts a domain JournalEntry header to a model JournalEntry
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:       d.EntryID,
		EntryDate:     d.EntryDate,
		Description:   d.Description,
		Reference:     d.Reference,
		EntryType:     string(d.EntryType),
		TransactionID: d.Source.TransactionID,
		InvoiceID:     d.Source.InvoiceID,
		BillID:        d.Source.BillID,
		PaymentID:     d.Source.PaymentID,
		IsPosted:      d.IsPosted,
		Notes:         d.Notes,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalEntry converts a model JournalEntry and its lines to a domain JournalEntry
func ToDomainJournalEntry(m models.JournalEntry, lines []models.JournalLine) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:     m.EntryID,
		EntryDate:   domain.DateOnly(m.EntryDate),
		Description: m.Description,
		Reference:   m.Reference,
		EntryType:   domain.EntryType(m.EntryType),
		Source: domain.SourceRefs{
			TransactionID: m.TransactionID,
			InvoiceID:     m.InvoiceID,
			BillID:        m.BillID,
			PaymentID:     m.PaymentID,
		},
		IsPosted:    m.IsPosted,
		Notes:       m.Notes,
		Lines:       ToDomainJournalLineSlice(lines),
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelJournalLine converts a domain JournalLine to a model JournalLine
func ToModelJournalLine(d domain.JournalLine) models.JournalLine {
	return models.JournalLine{
		LineID:      d.LineID,
		EntryID:     d.EntryID,
		AccountID:   d.AccountID,
		AccountCode: d.AccountCode,
		AccountName: d.AccountName,
		Description: d.Description,
		Debit:       d.Debit,
		Credit:      d.Credit,
	}
}

// ToDomainJournalLine converts a model JournalLine to a domain JournalLine
func ToDomainJournalLine(m models.JournalLine) domain.JournalLine {
	return domain.JournalLine{
		LineID:      m.LineID,
		EntryID:     m.EntryID,
		AccountID:   m.AccountID,
		AccountCode: m.AccountCode,
		AccountName: m.AccountName,
		Description: m.Description,
		Debit:       m.Debit,
		Credit:      m.Credit,
	}
}

// ToDomainJournalLineSlice converts a slice of model JournalLines to domain JournalLines
func ToDomainJournalLineSlice(ms []models.JournalLine) []domain.JournalLine {
	ds := make([]domain.JournalLine, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainJournalLine(m)
	}
	return ds
}

// ToDomainLedgerLine converts a joined model LedgerLine to a domain LedgerLine
func ToDomainLedgerLine(m models.LedgerLine) domain.LedgerLine {
	return domain.LedgerLine{
		JournalLine:      ToDomainJournalLine(m.JournalLine),
		EntryDate:        domain.DateOnly(m.EntryDate),
		EntryDescription: m.EntryDescription,
		Reference:        m.Reference,
		EntryType:        domain.EntryType(m.EntryType),
	}
}
