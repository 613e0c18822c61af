package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/books_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCashTransaction_IsPostable(t *testing.T) {
	tests := []struct {
		name     string
		category string
		want     bool
	}{
		{name: "expense", category: domain.CategoryExpense, want: true},
		{name: "revenue", category: domain.CategoryRevenue, want: true},
		{name: "asset transfer", category: "asset", want: false},
		{name: "liability", category: "liability", want: false},
		{name: "empty", category: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txn := domain.CashTransaction{Category: tt.category}
			assert.Equal(t, tt.want, txn.IsPostable())
		})
	}
}

func TestCashTransaction_Amounts(t *testing.T) {
	txn := domain.CashTransaction{
		TransactionID: 42,
		Date:          time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Amount:        decimal.RequireFromString("-100.004"),
		TaxAmount:     decimal.RequireFromString("5.005"),
		Category:      domain.CategoryExpense,
	}

	assert.True(t, decimal.RequireFromString("100.00").Equal(txn.NetAmount()))
	assert.True(t, decimal.RequireFromString("5.01").Equal(txn.Tax()))
	assert.Equal(t, "TXN-42", txn.Reference())
	assert.Equal(t, domain.EntryAutoExpense, txn.EntryType())

	txn.Category = domain.CategoryRevenue
	assert.Equal(t, domain.EntryAutoRevenue, txn.EntryType())
}
