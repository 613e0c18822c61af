// Package export renders financial reports as xlsx workbooks.
package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/SscSPs/books_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// ContentType is the MIME type of the rendered workbooks.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const dateLayout = "2006-01-02"

// sheet writes rows top to bottom on a single worksheet.
type sheet struct {
	f     *excelize.File
	name  string
	row   int
	money int
	bold  int
	err   error
}

func newSheet(title string) (*sheet, error) {
	f := excelize.NewFile()
	// rename the default sheet so the workbook has exactly one
	if err := f.SetSheetName("Sheet1", title); err != nil {
		return nil, err
	}
	money, err := f.NewStyle(&excelize.Style{CustomNumFmt: ptr("#,##0.00;-#,##0.00")})
	if err != nil {
		return nil, err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	if err := f.SetColWidth(title, "A", "A", 14); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(title, "B", "B", 40); err != nil {
		return nil, err
	}
	return &sheet{f: f, name: title, row: 1, money: money, bold: bold}, nil
}

func ptr[T any](v T) *T { return &v }

// add writes one row. Decimals become numbers with the money format, times become dates.
func (s *sheet) add(values ...any) {
	if s.err != nil {
		return
	}
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, s.row)
		if err != nil {
			s.err = err
			return
		}
		switch val := v.(type) {
		case decimal.Decimal:
			if err := s.f.SetCellFloat(s.name, cell, val.InexactFloat64(), 2, 64); err != nil {
				s.err = err
				return
			}
			if err := s.f.SetCellStyle(s.name, cell, cell, s.money); err != nil {
				s.err = err
				return
			}
		case time.Time:
			s.err = s.f.SetCellStr(s.name, cell, val.Format(dateLayout))
		default:
			s.err = s.f.SetCellValue(s.name, cell, val)
		}
		if s.err != nil {
			return
		}
	}
	s.row++
}

// heading writes a bold row.
func (s *sheet) heading(values ...any) {
	start := s.row
	s.add(values...)
	if s.err != nil || len(values) == 0 {
		return
	}
	first, _ := excelize.CoordinatesToCellName(1, start)
	last, _ := excelize.CoordinatesToCellName(len(values), start)
	s.err = s.f.SetCellStyle(s.name, first, last, s.bold)
}

func (s *sheet) blank() { s.row++ }

func (s *sheet) done() (*excelize.File, error) {
	if s.err != nil {
		return nil, fmt.Errorf("failed to render %s: %w", s.name, s.err)
	}
	return s.f, nil
}

// TrialBalance renders a trial balance.
func TrialBalance(tb *domain.TrialBalance) (*excelize.File, error) {
	s, err := newSheet("Trial Balance")
	if err != nil {
		return nil, err
	}
	s.heading("Trial Balance as of", tb.AsOf)
	s.blank()
	s.heading("Code", "Account", "Type", "Debit", "Credit")
	for _, r := range tb.Rows {
		s.add(r.Code, r.AccountName, string(r.AccountType), r.Debit, r.Credit)
	}
	s.heading("", "Total", "", tb.TotalDebit, tb.TotalCredit)
	s.add("", "Balanced", "", tb.IsBalanced)
	return s.done()
}

// BalanceSheet renders a balance sheet with one block per section.
func BalanceSheet(bs *domain.BalanceSheet) (*excelize.File, error) {
	s, err := newSheet("Balance Sheet")
	if err != nil {
		return nil, err
	}
	s.heading("Balance Sheet as of", bs.AsOf)
	writeSections := func(title string, sections []domain.ReportSection, total decimal.Decimal) {
		s.blank()
		s.heading(title)
		for _, sec := range sections {
			s.add("", sectionTitle(sec.SubType))
			for _, a := range sec.Accounts {
				s.add(a.Code, a.Name, a.Amount)
			}
			s.add("", "Total "+sectionTitle(sec.SubType), sec.Total)
		}
		s.heading("", "Total "+title, total)
	}
	writeSections("Assets", bs.Assets, bs.TotalAssets)
	writeSections("Liabilities", bs.Liabilities, bs.TotalLiabilities)
	writeSections("Equity", bs.Equity, bs.TotalEquity)
	s.blank()
	s.heading("", "Total Liabilities and Equity", bs.TotalLiabilities.Add(bs.TotalEquity))
	s.add("", "Balanced", bs.IsBalanced)
	return s.done()
}

// ProfitAndLoss renders an income statement.
func ProfitAndLoss(pl *domain.ProfitAndLoss) (*excelize.File, error) {
	s, err := newSheet("Profit and Loss")
	if err != nil {
		return nil, err
	}
	s.heading("Profit and Loss", pl.From, pl.To)
	block := func(title string, accounts []domain.AccountAmount, total decimal.Decimal) {
		s.blank()
		s.heading(title)
		for _, a := range accounts {
			s.add(a.Code, a.Name, a.Amount)
		}
		s.heading("", "Total "+title, total)
	}
	block("Revenue", pl.Revenue, pl.TotalRevenue)
	block("Cost of Goods Sold", pl.CostOfGoodsSold, pl.TotalCostOfGoods)
	s.heading("", "Gross Profit", pl.GrossProfit)
	block("Expenses", pl.Expenses, pl.TotalExpenses)
	s.blank()
	s.heading("", "Net Income", pl.NetIncome)
	return s.done()
}

// Aging renders a receivables or payables aging report.
func Aging(r *domain.AgingReport) (*excelize.File, error) {
	title := "AR Aging"
	if r.Kind == domain.AgingPayables {
		title = "AP Aging"
	}
	s, err := newSheet(title)
	if err != nil {
		return nil, err
	}
	s.heading(title+" as of", r.AsOf)
	s.blank()
	s.heading("Reference", "Document Date", "Days Open", "Bucket", "Outstanding")
	for _, row := range r.Rows {
		s.add(row.Reference, row.Date, row.DaysOpen, string(row.Bucket), row.Outstanding)
	}
	s.blank()
	for _, b := range domain.AgingBuckets {
		s.add("", "", "", string(b), r.BucketTotals[b])
	}
	s.heading("", "", "", "Total", r.Total)
	s.add("", "", "", "Control account", r.ControlBalance)
	s.add("", "", "", "Balanced", r.IsBalanced)
	return s.done()
}

// GST renders a GST34 worksheet.
func GST(w *domain.GSTWorksheet) (*excelize.File, error) {
	s, err := newSheet("GST34")
	if err != nil {
		return nil, err
	}
	s.heading("GST/HST Return", w.From, w.To)
	s.blank()
	s.heading("Line", "Description", "Amount")
	s.add("101", "GST/HST collected", w.Line101)
	s.add("106", "Input tax credits", w.Line106)
	s.add("109", "Net tax", w.Line109)
	s.add("110", "Instalments paid", w.Line110)
	s.heading("113", "Balance", w.Line113)
	if w.IsRefund {
		s.add("", "Refund claimed", w.Line113.Neg())
	}
	return s.done()
}

// T2125 renders the self-employment worksheet.
func T2125(w *domain.T2125Worksheet) (*excelize.File, error) {
	s, err := newSheet("T2125")
	if err != nil {
		return nil, err
	}
	s.heading("T2125 Statement of Business Activities", w.From, w.To)
	s.blank()
	s.add("", "Gross income", w.GrossIncome)
	s.add("", "Cost of goods sold", w.CostOfGoods)
	s.blank()
	s.heading("Line", "Accounts", "Amount")
	for _, l := range w.Lines {
		names := make([]string, len(l.Accounts))
		for i, a := range l.Accounts {
			names[i] = a.Name
		}
		s.add(l.TaxCode, strings.Join(names, ", "), l.Amount)
	}
	for _, a := range w.Unmapped {
		s.add("unmapped", a.Name, a.Amount)
	}
	s.heading("", "Total expenses", w.TotalExpenses)
	s.heading("", "Net income", w.NetIncome)
	return s.done()
}

// Write renders report and writes the workbook to w.
func Write(w io.Writer, report any) error {
	var (
		f   *excelize.File
		err error
	)
	switch r := report.(type) {
	case *domain.TrialBalance:
		f, err = TrialBalance(r)
	case *domain.BalanceSheet:
		f, err = BalanceSheet(r)
	case *domain.ProfitAndLoss:
		f, err = ProfitAndLoss(r)
	case *domain.AgingReport:
		f, err = Aging(r)
	case *domain.GSTWorksheet:
		f, err = GST(r)
	case *domain.T2125Worksheet:
		f, err = T2125(r)
	default:
		return fmt.Errorf("no xlsx layout for %T", report)
	}
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Write(w)
}

func sectionTitle(subType string) string {
	words := strings.Split(subType, "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
