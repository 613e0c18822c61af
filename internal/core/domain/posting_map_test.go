package domain_test

import (
	"testing"

	"github.com/SscSPs/books_ledger/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestPostingMap_Lookups(t *testing.T) {
	pm := domain.DefaultPostingMap()

	assert.Equal(t, "5250", pm.ExpenseAccountFor("office_supplies"))
	assert.Equal(t, "5950", pm.ExpenseAccountFor("yacht_parts"))
	assert.Equal(t, "5950", pm.ExpenseAccountFor(""))
	assert.Equal(t, "1000", pm.PaymentAccountFor("cash"))
	assert.Equal(t, "2300", pm.PaymentAccountFor("credit_card"))
	assert.Equal(t, "1050", pm.PaymentAccountFor("crypto"))
}

func TestPostingMap_IsolatedFromSpec(t *testing.T) {
	spec := domain.DefaultPostingMapSpec()
	pm := domain.NewPostingMap(spec)

	spec.Categories["office_supplies"] = "9999"
	assert.Equal(t, "5250", pm.ExpenseAccountFor("office_supplies"))

	out := pm.Spec()
	out.PaymentMethods["cash"] = "9999"
	assert.Equal(t, "1000", pm.PaymentAccountFor("cash"))
}
