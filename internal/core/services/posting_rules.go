package services

import (
	"fmt"

	"github.com/SscSPs/books_ledger/internal/apperrors"
	"github.com/SscSPs/books_ledger/internal/core/domain"
	"github.com/SscSPs/books_ledger/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// Event names used in mapping errors and logs.
const (
	EventCashTransaction = "transaction"
	EventInvoiceSent     = "invoice"
	EventInvoicePayment  = "invoice payment"
	EventBillReceived    = "bill"
	EventBillPayment     = "bill payment"
)

// ChartSnapshot is a read-only view of the chart of accounts used by the posting rules.
type ChartSnapshot struct {
	byCode map[string]domain.Account
	byID   map[int64]domain.Account
}

// NewChartSnapshot indexes accounts by code and id.
func NewChartSnapshot(accounts []domain.Account) ChartSnapshot {
	snap := ChartSnapshot{
		byCode: make(map[string]domain.Account, len(accounts)),
		byID:   make(map[int64]domain.Account, len(accounts)),
	}
	for _, acc := range accounts {
		snap.byCode[acc.Code] = acc
		snap.byID[acc.AccountID] = acc
	}
	return snap
}

// ActiveByCode returns the active account with code.
func (c ChartSnapshot) ActiveByCode(code string) (domain.Account, bool) {
	acc, ok := c.byCode[code]
	return acc, ok && acc.IsActive
}

// ActiveByID returns the active account with id.
func (c ChartSnapshot) ActiveByID(id int64) (domain.Account, bool) {
	acc, ok := c.byID[id]
	return acc, ok && acc.IsActive
}

type ruleContext struct {
	chart    ChartSnapshot
	event    string
	sourceID int64
}

func (r ruleContext) require(code, role string) (domain.Account, error) {
	if code == "" {
		return domain.Account{}, &apperrors.MappingError{Event: r.event, SourceID: r.sourceID, Role: role}
	}
	acc, ok := r.chart.ActiveByCode(code)
	if !ok {
		return domain.Account{}, &apperrors.MappingError{Event: r.event, SourceID: r.sourceID, AccountCode: code, Role: role}
	}
	return acc, nil
}

func debitLine(acc domain.Account, amount decimal.Decimal, description string) domain.JournalLine {
	return domain.JournalLine{
		AccountID:   acc.AccountID,
		AccountCode: acc.Code,
		AccountName: acc.Name,
		Description: description,
		Debit:       domain.RoundMoney(amount),
		Credit:      decimal.Zero,
	}
}

func creditLine(acc domain.Account, amount decimal.Decimal, description string) domain.JournalLine {
	return domain.JournalLine{
		AccountID:   acc.AccountID,
		AccountCode: acc.Code,
		AccountName: acc.Name,
		Description: description,
		Debit:       decimal.Zero,
		Credit:      domain.RoundMoney(amount),
	}
}

func int64Ptr(v int64) *int64 { return &v }

// balanced runs the line checks the ledger store will run again, so a rule never hands over a bad set.
func balanced(req domain.PostingRequest) (domain.PostingRequest, error) {
	lines, err := accounting.NormalizeLines(req.Lines)
	if err != nil {
		return domain.PostingRequest{}, err
	}
	if err := accounting.ValidateBalance(lines); err != nil {
		return domain.PostingRequest{}, err
	}
	req.Lines = lines
	return req, nil
}

// CashTransactionPosting maps an expense or revenue transaction.
//
//	expense: Dr expense (net), Dr GST receivable (tax), Cr payment account (net+tax)
//	revenue: Dr bank (net+tax), Cr revenue (net), Cr GST payable (tax)
//
// Any other category yields apperrors.ErrNotPostable.
func CashTransactionPosting(m domain.PostingMap, chart ChartSnapshot, txn domain.CashTransaction) (domain.PostingRequest, error) {
	if !txn.IsPostable() {
		return domain.PostingRequest{}, fmt.Errorf("%w: transaction %d has category %q", apperrors.ErrNotPostable, txn.TransactionID, txn.Category)
	}
	net := txn.NetAmount()
	tax := txn.Tax()
	if !net.IsPositive() {
		return domain.PostingRequest{}, fmt.Errorf("%w: transaction %d has no amount", apperrors.ErrValidation, txn.TransactionID)
	}
	if tax.IsNegative() {
		return domain.PostingRequest{}, fmt.Errorf("%w: transaction %d has a negative tax amount", apperrors.ErrValidation, txn.TransactionID)
	}
	rc := ruleContext{chart: chart, event: EventCashTransaction, sourceID: txn.TransactionID}
	gross := net.Add(tax)
	taxDescription := "GST on " + txn.Description

	var lines []domain.JournalLine
	if txn.Category == domain.CategoryExpense {
		expense, err := rc.require(m.ExpenseAccountFor(txn.Subcategory), "expense")
		if err != nil {
			return domain.PostingRequest{}, err
		}
		payment, err := rc.require(m.PaymentAccountFor(txn.PaymentMethod), "payment")
		if err != nil {
			return domain.PostingRequest{}, err
		}
		lines = append(lines, debitLine(expense, net, txn.Description))
		if tax.IsPositive() {
			gst, err := rc.require(m.GSTReceivable(), "GST receivable")
			if err != nil {
				return domain.PostingRequest{}, err
			}
			lines = append(lines, debitLine(gst, tax, taxDescription))
		}
		lines = append(lines, creditLine(payment, gross, txn.Description))
	} else {
		revenue, err := rc.require(m.Revenue(), "revenue")
		if err != nil {
			return domain.PostingRequest{}, err
		}
		bank, err := rc.require(m.Bank(), "bank")
		if err != nil {
			return domain.PostingRequest{}, err
		}
		lines = append(lines, debitLine(bank, gross, txn.Description))
		lines = append(lines, creditLine(revenue, net, txn.Description))
		if tax.IsPositive() {
			gst, err := rc.require(m.GSTPayable(), "GST payable")
			if err != nil {
				return domain.PostingRequest{}, err
			}
			lines = append(lines, creditLine(gst, tax, taxDescription))
		}
	}

	return balanced(domain.PostingRequest{
		EntryDate:   txn.Date,
		Description: txn.Description,
		Reference:   txn.Reference(),
		EntryType:   txn.EntryType(),
		Source:      domain.SourceRefs{TransactionID: int64Ptr(txn.TransactionID)},
		Lines:       lines,
	})
}

// InvoiceSentPosting maps an invoice leaving draft: Dr receivable (total), Cr revenue (subtotal), Cr GST payable (tax).
func InvoiceSentPosting(m domain.PostingMap, chart ChartSnapshot, inv domain.Invoice) (domain.PostingRequest, error) {
	rc := ruleContext{chart: chart, event: EventInvoiceSent, sourceID: inv.InvoiceID}
	receivable, err := rc.require(m.Receivable(), "accounts receivable")
	if err != nil {
		return domain.PostingRequest{}, err
	}
	revenue, err := rc.require(m.Revenue(), "revenue")
	if err != nil {
		return domain.PostingRequest{}, err
	}

	label := "Invoice " + inv.InvoiceNumber
	lines := []domain.JournalLine{
		debitLine(receivable, inv.Total, label),
		creditLine(revenue, inv.Subtotal, label),
	}
	if domain.RoundMoney(inv.GSTAmount).IsPositive() {
		gst, err := rc.require(m.GSTPayable(), "GST payable")
		if err != nil {
			return domain.PostingRequest{}, err
		}
		lines = append(lines, creditLine(gst, inv.GSTAmount, "GST on "+inv.InvoiceNumber))
	}

	return balanced(domain.PostingRequest{
		EntryDate:   inv.InvoiceDate,
		Description: label + " sent",
		Reference:   inv.InvoiceNumber,
		EntryType:   domain.EntryAutoInvoice,
		Source:      domain.SourceRefs{InvoiceID: int64Ptr(inv.InvoiceID)},
		Lines:       lines,
	})
}

// InvoicePaymentPosting maps money received on an invoice: Dr bank, Cr receivable.
// A zero payment amount means the invoice total; a zero date falls back to the invoice paid date.
func InvoicePaymentPosting(m domain.PostingMap, chart ChartSnapshot, inv domain.Invoice, p domain.Payment) (domain.PostingRequest, error) {
	rc := ruleContext{chart: chart, event: EventInvoicePayment, sourceID: inv.InvoiceID}
	bank, err := rc.require(m.Bank(), "bank")
	if err != nil {
		return domain.PostingRequest{}, err
	}
	receivable, err := rc.require(m.Receivable(), "accounts receivable")
	if err != nil {
		return domain.PostingRequest{}, err
	}

	amount := domain.RoundMoney(p.Amount)
	if amount.IsZero() {
		amount = domain.RoundMoney(inv.Total)
	}
	if !amount.IsPositive() {
		return domain.PostingRequest{}, fmt.Errorf("%w: payment amount must be positive", apperrors.ErrValidation)
	}
	date := p.Date
	if date.IsZero() && inv.PaidDate != nil {
		date = *inv.PaidDate
	}
	if date.IsZero() {
		return domain.PostingRequest{}, fmt.Errorf("%w: payment date is required", apperrors.ErrValidation)
	}

	label := "Payment for " + inv.InvoiceNumber
	return balanced(domain.PostingRequest{
		EntryDate:   date,
		Description: "Payment received for " + inv.InvoiceNumber,
		Reference:   inv.InvoiceNumber,
		EntryType:   domain.EntryAutoPayment,
		Source:      domain.SourceRefs{InvoiceID: int64Ptr(inv.InvoiceID)},
		Lines: []domain.JournalLine{
			debitLine(bank, amount, label),
			creditLine(receivable, amount, label),
		},
	})
}

// BillReceivedPosting maps a received bill: one expense debit per item, Dr GST receivable (tax), Cr payable (total).
// Item accounts fall back to the bill-level account and then to the default expense account.
func BillReceivedPosting(m domain.PostingMap, chart ChartSnapshot, bill domain.Bill) (domain.PostingRequest, error) {
	rc := ruleContext{chart: chart, event: EventBillReceived, sourceID: bill.BillID}
	payable, err := rc.require(m.Payable(), "accounts payable")
	if err != nil {
		return domain.PostingRequest{}, err
	}

	expenseFor := func(accountIDs ...*int64) (domain.Account, error) {
		for _, id := range accountIDs {
			if id == nil {
				continue
			}
			if acc, ok := chart.ActiveByID(*id); ok {
				return acc, nil
			}
		}
		return rc.require(m.DefaultExpense(), "default expense")
	}

	var lines []domain.JournalLine
	for _, item := range bill.Items {
		acc, err := expenseFor(item.AccountID, bill.ExpenseAccountID)
		if err != nil {
			return domain.PostingRequest{}, err
		}
		lines = append(lines, debitLine(acc, item.Amount, item.Description))
	}
	label := "Bill " + bill.BillNumber
	if len(lines) == 0 {
		acc, err := expenseFor(bill.ExpenseAccountID)
		if err != nil {
			return domain.PostingRequest{}, err
		}
		lines = append(lines, debitLine(acc, bill.Subtotal, label))
	}
	if domain.RoundMoney(bill.GSTAmount).IsPositive() {
		gst, err := rc.require(m.GSTReceivable(), "GST receivable")
		if err != nil {
			return domain.PostingRequest{}, err
		}
		lines = append(lines, debitLine(gst, bill.GSTAmount, "GST on "+bill.BillNumber))
	}
	lines = append(lines, creditLine(payable, bill.Total, label))

	return balanced(domain.PostingRequest{
		EntryDate:   bill.BillDate,
		Description: label + " received",
		Reference:   bill.BillNumber,
		EntryType:   domain.EntryAutoBill,
		Source:      domain.SourceRefs{BillID: int64Ptr(bill.BillID)},
		Lines:       lines,
	})
}

// BillPaymentPosting maps a payment made on a bill: Dr payable, Cr bank.
// The bill must be received or overdue and the amount may not exceed the balance due.
func BillPaymentPosting(m domain.PostingMap, chart ChartSnapshot, bill domain.Bill, p domain.Payment) (domain.PostingRequest, error) {
	if !bill.Status.AcceptsPayment() {
		return domain.PostingRequest{}, fmt.Errorf("%w: bill %s is %s", apperrors.ErrConflict, bill.BillNumber, bill.Status)
	}
	amount := domain.RoundMoney(p.Amount)
	if !amount.IsPositive() {
		return domain.PostingRequest{}, fmt.Errorf("%w: payment amount must be positive", apperrors.ErrValidation)
	}
	if amount.GreaterThan(bill.BalanceDue()) {
		return domain.PostingRequest{}, fmt.Errorf("%w: payment %s exceeds balance due %s on bill %s",
			apperrors.ErrValidation, amount.StringFixed(2), bill.BalanceDue().StringFixed(2), bill.BillNumber)
	}
	if p.Date.IsZero() {
		return domain.PostingRequest{}, fmt.Errorf("%w: payment date is required", apperrors.ErrValidation)
	}
	if p.PaymentID <= 0 {
		return domain.PostingRequest{}, fmt.Errorf("%w: payment id is required", apperrors.ErrValidation)
	}

	rc := ruleContext{chart: chart, event: EventBillPayment, sourceID: bill.BillID}
	payable, err := rc.require(m.Payable(), "accounts payable")
	if err != nil {
		return domain.PostingRequest{}, err
	}
	bank, err := rc.require(m.Bank(), "bank")
	if err != nil {
		return domain.PostingRequest{}, err
	}

	label := "Payment for " + bill.BillNumber
	return balanced(domain.PostingRequest{
		EntryDate:   p.Date,
		Description: "Payment for bill " + bill.BillNumber,
		Reference:   bill.BillNumber,
		EntryType:   domain.EntryAutoBillPayment,
		Source:      domain.SourceRefs{BillID: int64Ptr(bill.BillID), PaymentID: int64Ptr(p.PaymentID)},
		Notes:       p.Reference,
		Lines: []domain.JournalLine{
			debitLine(payable, amount, label),
			creditLine(bank, amount, label),
		},
	})
}

// ManualPosting accepts a caller-supplied line set for a manual or adjusting entry and only checks balance.
func ManualPosting(req domain.PostingRequest) (domain.PostingRequest, error) {
	if req.EntryType == "" {
		req.EntryType = domain.EntryManual
	}
	if req.EntryType != domain.EntryManual && req.EntryType != domain.EntryAdjustment {
		return domain.PostingRequest{}, fmt.Errorf("%w: entry type %q cannot be posted manually", apperrors.ErrValidation, req.EntryType)
	}
	if !req.Source.IsEmpty() {
		return domain.PostingRequest{}, fmt.Errorf("%w: manual entries cannot link a source record", apperrors.ErrValidation)
	}
	return balanced(req)
}
