package mapping

import (
	"github.com/SscSPs/books_ledger/internal/core/domain"
	"github.com/SscSPs/books_ledger/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:       d.AccountID,
		Code:            d.Code,
		Name:            d.Name,
		AccountType:     models.AccountType(d.AccountType),
		SubType:         d.SubType,
		TaxCode:         d.TaxCode,
		Description:     d.Description,
		ParentAccountID: d.ParentAccountID,
		IsActive:        d.IsActive,
		IsSystem:        d.IsSystem,
		NormalBalance:   string(d.NormalBalance),
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:       m.AccountID,
		Code:            m.Code,
		Name:            m.Name,
		AccountType:     domain.AccountType(m.AccountType),
		SubType:         m.SubType,
		TaxCode:         m.TaxCode,
		Description:     m.Description,
		ParentAccountID: m.ParentAccountID,
		IsActive:        m.IsActive,
		IsSystem:        m.IsSystem,
		NormalBalance:   domain.NormalBalance(m.NormalBalance),
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAccountSlice converts a slice of model Accounts to a slice of domain Accounts
func ToDomainAccountSlice(ms []models.Account) []domain.Account {
	ds := make([]domain.Account, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccount(m)
	}
	return ds
}
