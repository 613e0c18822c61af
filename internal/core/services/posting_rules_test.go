package services_test

import (
	"testing"

	"github.com/SscSPs/books_ledger/internal/apperrors"
	"github.com/SscSPs/books_ledger/internal/core/domain"
	"github.com/SscSPs/books_ledger/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seededChart numbers the default chart from 1 in seed order.
func seededChart() ([]domain.Account, map[string]domain.Account) {
	seeds := domain.DefaultChartOfAccounts()
	accounts := make([]domain.Account, len(seeds))
	byCode := make(map[string]domain.Account, len(seeds))
	for i, s := range seeds {
		accounts[i] = domain.Account{
			AccountID:     int64(i + 1),
			Code:          s.Code,
			Name:          s.Name,
			AccountType:   s.AccountType,
			SubType:       s.SubType,
			TaxCode:       s.TaxCode,
			NormalBalance: s.NormalBalance,
			IsActive:      true,
			IsSystem:      true,
		}
		byCode[s.Code] = accounts[i]
	}
	return accounts, byCode
}

func withInactive(accounts []domain.Account, codes ...string) []domain.Account {
	out := append([]domain.Account(nil), accounts...)
	for i := range out {
		for _, c := range codes {
			if out[i].Code == c {
				out[i].IsActive = false
			}
		}
	}
	return out
}

type lineView struct {
	Code   string
	Debit  string
	Credit string
}

func viewLines(lines []domain.JournalLine) []lineView {
	out := make([]lineView, len(lines))
	for i, l := range lines {
		out[i] = lineView{Code: l.AccountCode, Debit: l.Debit.StringFixed(2), Credit: l.Credit.StringFixed(2)}
	}
	return out
}

func TestCashTransactionPosting(t *testing.T) {
	accounts, _ := seededChart()
	chart := services.NewChartSnapshot(accounts)
	m := domain.DefaultPostingMap()

	tests := []struct {
		name      string
		txn       domain.CashTransaction
		wantType  domain.EntryType
		wantLines []lineView
	}{
		{
			name: "expense with GST on card",
			txn: domain.CashTransaction{
				TransactionID: 1, Date: day(2024, 3, 1), Description: "Printer paper",
				Amount: dec("-100"), TaxAmount: dec("5"), Category: "expense",
				Subcategory: "office_supplies", PaymentMethod: "credit_card",
			},
			wantType: domain.EntryAutoExpense,
			wantLines: []lineView{
				{"5250", "100.00", "0.00"},
				{"1300", "5.00", "0.00"},
				{"2300", "0.00", "105.00"},
			},
		},
		{
			name: "expense without tax and unknown subcategory",
			txn: domain.CashTransaction{
				TransactionID: 2, Date: day(2024, 3, 1), Description: "Misc",
				Amount: dec("42.5"), Category: "expense", Subcategory: "mystery",
			},
			wantType: domain.EntryAutoExpense,
			wantLines: []lineView{
				{"5950", "42.50", "0.00"},
				{"1050", "0.00", "42.50"},
			},
		},
		{
			name: "revenue with GST",
			txn: domain.CashTransaction{
				TransactionID: 3, Date: day(2024, 3, 2), Description: "Consulting",
				Amount: dec("1000"), TaxAmount: dec("50"), Category: "revenue",
			},
			wantType: domain.EntryAutoRevenue,
			wantLines: []lineView{
				{"1050", "1050.00", "0.00"},
				{"4000", "0.00", "1000.00"},
				{"2100", "0.00", "50.00"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := services.CashTransactionPosting(m, chart, tt.txn)
			require.NoError(t, err)
			assert.Equal(t, tt.wantType, req.EntryType)
			assert.Equal(t, tt.wantLines, viewLines(req.Lines))
			require.NotNil(t, req.Source.TransactionID)
			assert.Equal(t, tt.txn.TransactionID, *req.Source.TransactionID)
			debit, credit := domain.SumLines(req.Lines)
			assert.True(t, debit.Equal(credit))
		})
	}
}

func TestCashTransactionPosting_Rejections(t *testing.T) {
	accounts, _ := seededChart()
	m := domain.DefaultPostingMap()
	txn := domain.CashTransaction{
		TransactionID: 9, Date: day(2024, 3, 1), Description: "Paper",
		Amount: dec("10"), TaxAmount: dec("0.50"), Category: "expense", Subcategory: "office_supplies",
	}

	transfer := txn
	transfer.Category = "transfer"
	_, err := services.CashTransactionPosting(m, services.NewChartSnapshot(accounts), transfer)
	assert.ErrorIs(t, err, apperrors.ErrNotPostable)

	_, err = services.CashTransactionPosting(m, services.NewChartSnapshot(withInactive(accounts, "1300")), txn)
	var mappingErr *apperrors.MappingError
	require.ErrorAs(t, err, &mappingErr)
	assert.Equal(t, "1300", mappingErr.AccountCode)
	assert.Equal(t, int64(9), mappingErr.SourceID)

	zero := txn
	zero.Amount = dec("0")
	_, err = services.CashTransactionPosting(m, services.NewChartSnapshot(accounts), zero)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestInvoicePostings(t *testing.T) {
	accounts, _ := seededChart()
	chart := services.NewChartSnapshot(accounts)
	m := domain.DefaultPostingMap()
	paid := day(2024, 4, 20)
	inv := domain.Invoice{
		InvoiceID: 11, InvoiceNumber: "INV-011", InvoiceDate: day(2024, 4, 1), PaidDate: &paid,
		Status: domain.InvoicePaid, Subtotal: dec("2000"), GSTAmount: dec("100"), Total: dec("2100"),
	}

	sent, err := services.InvoiceSentPosting(m, chart, inv)
	require.NoError(t, err)
	assert.Equal(t, domain.EntryAutoInvoice, sent.EntryType)
	assert.Equal(t, "Invoice INV-011 sent", sent.Description)
	assert.Equal(t, []lineView{
		{"1100", "2100.00", "0.00"},
		{"4000", "0.00", "2000.00"},
		{"2100", "0.00", "100.00"},
	}, viewLines(sent.Lines))

	payment, err := services.InvoicePaymentPosting(m, chart, inv, domain.Payment{})
	require.NoError(t, err)
	assert.Equal(t, domain.EntryAutoPayment, payment.EntryType)
	assert.Equal(t, paid, payment.EntryDate, "falls back to the paid date")
	assert.Equal(t, []lineView{
		{"1050", "2100.00", "0.00"},
		{"1100", "0.00", "2100.00"},
	}, viewLines(payment.Lines))

	partial, err := services.InvoicePaymentPosting(m, chart, inv, domain.Payment{Amount: dec("500"), Date: day(2024, 4, 5)})
	require.NoError(t, err)
	assert.Equal(t, "500.00", partial.Lines[0].Debit.StringFixed(2))
	assert.Equal(t, day(2024, 4, 5), partial.EntryDate)

	_, err = services.InvoiceSentPosting(m, services.NewChartSnapshot(withInactive(accounts, "1100")), inv)
	assert.ErrorIs(t, err, apperrors.ErrMapping)
}

func TestBillReceivedPosting(t *testing.T) {
	accounts, byCode := seededChart()
	chart := services.NewChartSnapshot(accounts)
	m := domain.DefaultPostingMap()
	rent := byCode["5350"].AccountID

	bill := domain.Bill{
		BillID: 21, BillNumber: "B-21", BillDate: day(2024, 5, 1), Status: domain.BillReceived,
		Subtotal: dec("100"), GSTAmount: dec("5"), Total: dec("105"),
		Items: []domain.BillItem{
			{Description: "Office rent", Amount: dec("60"), AccountID: &rent},
			{Description: "Sundries", Amount: dec("40")},
		},
	}

	req, err := services.BillReceivedPosting(m, chart, bill)
	require.NoError(t, err)
	assert.Equal(t, domain.EntryAutoBill, req.EntryType)
	assert.Equal(t, "Bill B-21 received", req.Description)
	assert.Equal(t, []lineView{
		{"5350", "60.00", "0.00"},
		{"5950", "40.00", "0.00"},
		{"1300", "5.00", "0.00"},
		{"2000", "0.00", "105.00"},
	}, viewLines(req.Lines))

	// bill-level account catches items without their own
	supplies := byCode["5250"].AccountID
	bill.ExpenseAccountID = &supplies
	req, err = services.BillReceivedPosting(m, chart, bill)
	require.NoError(t, err)
	assert.Equal(t, "5250", req.Lines[1].AccountCode)

	// an inactive item account falls through to the next candidate
	req, err = services.BillReceivedPosting(m, services.NewChartSnapshot(withInactive(accounts, "5350")), bill)
	require.NoError(t, err)
	assert.Equal(t, "5250", req.Lines[0].AccountCode)

	// no items: one line for the subtotal
	bill.Items = nil
	bill.ExpenseAccountID = nil
	req, err = services.BillReceivedPosting(m, chart, bill)
	require.NoError(t, err)
	assert.Equal(t, []lineView{
		{"5950", "100.00", "0.00"},
		{"1300", "5.00", "0.00"},
		{"2000", "0.00", "105.00"},
	}, viewLines(req.Lines))

	// items that do not add up to the subtotal leave the entry unbalanced
	bill.Items = []domain.BillItem{{Description: "Short", Amount: dec("90")}}
	_, err = services.BillReceivedPosting(m, chart, bill)
	assert.ErrorIs(t, err, apperrors.ErrUnbalanced)
}

func TestBillPaymentPosting(t *testing.T) {
	accounts, _ := seededChart()
	chart := services.NewChartSnapshot(accounts)
	m := domain.DefaultPostingMap()
	bill := domain.Bill{
		BillID: 31, BillNumber: "B-31", BillDate: day(2024, 5, 1), Status: domain.BillReceived,
		Total: dec("105"), AmountPaid: dec("5"),
	}

	req, err := services.BillPaymentPosting(m, chart, bill, domain.Payment{PaymentID: 7, Amount: dec("100"), Date: day(2024, 5, 10), Reference: "CHQ 55"})
	require.NoError(t, err)
	assert.Equal(t, domain.EntryAutoBillPayment, req.EntryType)
	assert.Equal(t, "CHQ 55", req.Notes)
	paymentID, keyed := req.Source.SourceID(domain.EntryAutoBillPayment)
	assert.True(t, keyed)
	assert.Equal(t, int64(7), paymentID)
	assert.Equal(t, int64(31), *req.Source.BillID)
	assert.Equal(t, []lineView{
		{"2000", "100.00", "0.00"},
		{"1050", "0.00", "100.00"},
	}, viewLines(req.Lines))

	_, err = services.BillPaymentPosting(m, chart, bill, domain.Payment{PaymentID: 7, Amount: dec("100.01"), Date: day(2024, 5, 10)})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	// without a payment id a retried payment could not be recognized
	_, err = services.BillPaymentPosting(m, chart, bill, domain.Payment{Amount: dec("100"), Date: day(2024, 5, 10)})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	bill.Status = domain.BillPaid
	_, err = services.BillPaymentPosting(m, chart, bill, domain.Payment{PaymentID: 8, Amount: dec("1"), Date: day(2024, 5, 10)})
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestManualPosting(t *testing.T) {
	lines := []domain.JournalLine{
		{AccountID: 1, Debit: dec("10")},
		{AccountID: 2, Credit: dec("10")},
	}

	req, err := services.ManualPosting(domain.PostingRequest{EntryDate: day(2024, 1, 1), Description: "x", Lines: lines})
	require.NoError(t, err)
	assert.Equal(t, domain.EntryManual, req.EntryType)

	_, err = services.ManualPosting(domain.PostingRequest{EntryType: domain.EntryAutoExpense, Lines: lines})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = services.ManualPosting(domain.PostingRequest{Source: domain.SourceRefs{BillID: ptr(int64(1))}, Lines: lines})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = services.ManualPosting(domain.PostingRequest{Lines: []domain.JournalLine{
		{AccountID: 1, Debit: dec("10")},
		{AccountID: 2, Credit: dec("9.99")},
	}})
	assert.ErrorIs(t, err, apperrors.ErrUnbalanced)
}
