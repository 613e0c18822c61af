package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineTotals is the raw Σdebit/Σcredit of an account's posted lines.
type LineTotals struct {
	Debit  decimal.Decimal
	Credit decimal.Decimal
}

// Signed returns the balance in the direction of the normal balance.
func (t LineTotals) Signed(nb NormalBalance) decimal.Decimal {
	if nb == CreditBalance {
		return t.Credit.Sub(t.Debit)
	}
	return t.Debit.Sub(t.Credit)
}

// AccountBalance is an account with its normalized balance.
type AccountBalance struct {
	Account Account
	Balance decimal.Decimal
}

// TrialBalanceRow represents a single row in a trial balance report.
type TrialBalanceRow struct {
	AccountID   int64           `json:"accountID"`
	Code        string          `json:"code"`
	AccountName string          `json:"accountName"`
	AccountType AccountType     `json:"accountType"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// TrialBalance lists every non-zero active account split into debit and credit columns.
type TrialBalance struct {
	AsOf        time.Time         `json:"asOf"`
	Rows        []TrialBalanceRow `json:"rows"`
	TotalDebit  decimal.Decimal   `json:"totalDebit"`
	TotalCredit decimal.Decimal   `json:"totalCredit"`
	IsBalanced  bool              `json:"isBalanced"`
}

// AccountAmount represents an account with its amount in a financial report.
type AccountAmount struct {
	AccountID int64           `json:"accountID,omitempty"`
	Code      string          `json:"code,omitempty"`
	Name      string          `json:"name"`
	SubType   string          `json:"subType,omitempty"`
	Amount    decimal.Decimal `json:"amount"`
}

// ReportSection groups accounts of one sub type.
type ReportSection struct {
	SubType  string          `json:"subType"`
	Accounts []AccountAmount `json:"accounts"`
	Total    decimal.Decimal `json:"total"`
}

// NetIncomeLineName labels the synthetic current-period earnings line of the balance sheet.
const NetIncomeLineName = "Net Income (Current Period)"

// BalanceSheet is the statement of financial position as of a date.
type BalanceSheet struct {
	AsOf             time.Time       `json:"asOf"`
	Assets           []ReportSection `json:"assets"`
	Liabilities      []ReportSection `json:"liabilities"`
	Equity           []ReportSection `json:"equity"`
	TotalAssets      decimal.Decimal `json:"totalAssets"`
	TotalLiabilities decimal.Decimal `json:"totalLiabilities"`
	TotalEquity      decimal.Decimal `json:"totalEquity"`
	NetIncome        decimal.Decimal `json:"netIncome"`
	IsBalanced       bool            `json:"isBalanced"`
}

// ProfitAndLoss is the income statement for a period.
type ProfitAndLoss struct {
	From             time.Time       `json:"from"`
	To               time.Time       `json:"to"`
	Revenue          []AccountAmount `json:"revenue"`
	CostOfGoodsSold  []AccountAmount `json:"costOfGoodsSold"`
	Expenses         []AccountAmount `json:"expenses"`
	TotalRevenue     decimal.Decimal `json:"totalRevenue"`
	TotalCostOfGoods decimal.Decimal `json:"totalCostOfGoods"`
	GrossProfit      decimal.Decimal `json:"grossProfit"`
	TotalExpenses    decimal.Decimal `json:"totalExpenses"`
	NetIncome        decimal.Decimal `json:"netIncome"`
}

// AgingKind selects receivables or payables.
type AgingKind string

const (
	AgingReceivables AgingKind = "receivables"
	AgingPayables    AgingKind = "payables"
)

// AgingBucket names an age band.
type AgingBucket string

const (
	AgingCurrent AgingBucket = "current"
	Aging31To60  AgingBucket = "31_60"
	Aging61To90  AgingBucket = "61_90"
	AgingOver90  AgingBucket = "over_90"
)

// AgingBuckets lists the bands in display order.
var AgingBuckets = []AgingBucket{AgingCurrent, Aging31To60, Aging61To90, AgingOver90}

// BucketForAge returns the band for a document that is days old.
func BucketForAge(days int) AgingBucket {
	switch {
	case days <= 30:
		return AgingCurrent
	case days <= 60:
		return Aging31To60
	case days <= 90:
		return Aging61To90
	default:
		return AgingOver90
	}
}

// SourceBalance is the control-account activity attributed to one source document.
type SourceBalance struct {
	SourceID     int64
	Reference    string
	DocumentDate time.Time
	Totals       LineTotals
}

// AgingRow is one open document.
type AgingRow struct {
	SourceID    int64           `json:"sourceID"`
	Reference   string          `json:"reference"`
	Date        time.Time       `json:"date"`
	DaysOpen    int             `json:"daysOpen"`
	Bucket      AgingBucket     `json:"bucket"`
	Outstanding decimal.Decimal `json:"outstanding"`
}

// AgingReport lists open receivables or payables by age.
type AgingReport struct {
	Kind           AgingKind                       `json:"kind"`
	AsOf           time.Time                       `json:"asOf"`
	Rows           []AgingRow                      `json:"rows"`
	BucketTotals   map[AgingBucket]decimal.Decimal `json:"bucketTotals"`
	Total          decimal.Decimal                 `json:"total"`
	ControlBalance decimal.Decimal                 `json:"controlBalance"`
	IsBalanced     bool                            `json:"isBalanced"`
}

// GSTWorksheet mirrors the GST34 return lines.
type GSTWorksheet struct {
	From     time.Time       `json:"from"`
	To       time.Time       `json:"to"`
	Line101  decimal.Decimal `json:"line101"` // GST/HST collected
	Line106  decimal.Decimal `json:"line106"` // input tax credits
	Line109  decimal.Decimal `json:"line109"` // net tax
	Line110  decimal.Decimal `json:"line110"` // instalments paid
	Line113  decimal.Decimal `json:"line113"` // balance owing, negative is a refund
	IsRefund bool            `json:"isRefund"`
}

// T2125Line aggregates expense accounts sharing a tax form line.
type T2125Line struct {
	TaxCode  string          `json:"taxCode"`
	Accounts []AccountAmount `json:"accounts"`
	Amount   decimal.Decimal `json:"amount"`
}

// T2125Worksheet maps period activity to the self-employment form.
type T2125Worksheet struct {
	From          time.Time       `json:"from"`
	To            time.Time       `json:"to"`
	GrossIncome   decimal.Decimal `json:"grossIncome"`
	CostOfGoods   decimal.Decimal `json:"costOfGoods"`
	Lines         []T2125Line     `json:"lines"`
	Unmapped      []AccountAmount `json:"unmapped"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	NetIncome     decimal.Decimal `json:"netIncome"`
}
