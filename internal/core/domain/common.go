package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AuditFields holds standard audit timestamps for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// MoneyPlaces is the number of decimal places money is stored with.
const MoneyPlaces = 2

// BalanceTolerance is the largest debit/credit difference still considered balanced.
var BalanceTolerance = decimal.New(1, -MoneyPlaces)

// RoundMoney rounds to cents, half away from zero.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyPlaces)
}

// IsZeroMoney reports whether |d| is below one cent.
func IsZeroMoney(d decimal.Decimal) bool {
	return d.Abs().LessThan(BalanceTolerance)
}

// DateOnly truncates t to midnight UTC of the same calendar day.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
