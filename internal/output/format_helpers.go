package output

import (
	"github.com/shopspring/decimal"
)

// FormatYears formats a year count with one decimal.
func FormatYears(years float64) string {
	return decimal.NewFromFloat(years).StringFixed(1) + " years"
}
