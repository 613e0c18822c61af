package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// Export formats accepted by the report endpoints.
const (
	FormatJSON = "json"
	FormatXLSX = "xlsx"
)

// AsOfReportParams selects a point-in-time report.
type AsOfReportParams struct {
	AsOf   time.Time `form:"asOf" time_format:"2006-01-02" binding:"required"`
	Format string    `form:"format" binding:"omitempty,oneof=json xlsx"`
}

// RangeReportParams selects a period report.
type RangeReportParams struct {
	From   time.Time `form:"from" time_format:"2006-01-02" binding:"required"`
	To     time.Time `form:"to" time_format:"2006-01-02" binding:"required"`
	Format string    `form:"format" binding:"omitempty,oneof=json xlsx"`
}

// GSTWorksheetParams selects a GST period either by explicit range or by a date and filing frequency.
type GSTWorksheetParams struct {
	From         *time.Time      `form:"from" time_format:"2006-01-02"`
	To           *time.Time      `form:"to" time_format:"2006-01-02"`
	PeriodOf     *time.Time      `form:"periodOf" time_format:"2006-01-02"`
	Frequency    string          `form:"frequency" binding:"omitempty,oneof=monthly quarterly annual"`
	Installments decimal.Decimal `form:"installments"`
	Format       string          `form:"format" binding:"omitempty,oneof=json xlsx"`
}

// BalanceParams selects a point-in-time or range balance.
type BalanceParams struct {
	AsOf *time.Time `form:"asOf" time_format:"2006-01-02"`
	From *time.Time `form:"from" time_format:"2006-01-02"`
	To   *time.Time `form:"to" time_format:"2006-01-02"`
}
