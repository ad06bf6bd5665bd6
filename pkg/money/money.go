// Package money formats yuan amounts for reports and the terminal UI.
package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const symbol = "¥"

var (
	thousand = decimal.NewFromInt(1000)
	million  = decimal.NewFromInt(1000000)
)

// Format renders a whole-yuan amount with locale digit grouping, e.g. ¥12,346.
func Format(amount decimal.Decimal) string {
	p := message.NewPrinter(language.Chinese)
	whole := amount.Round(0)
	if whole.IsNegative() {
		return "-" + symbol + p.Sprintf("%d", whole.Neg().IntPart())
	}
	return symbol + p.Sprintf("%d", whole.IntPart())
}

// FormatFixed renders an amount with two decimals and no grouping, e.g. ¥1234.50.
func FormatFixed(amount decimal.Decimal) string {
	if amount.IsNegative() {
		return "-" + symbol + amount.Neg().StringFixed(2)
	}
	return symbol + amount.StringFixed(2)
}

// FormatCompact renders an amount in thousands or millions, e.g. ¥82.3K.
func FormatCompact(amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}
	switch {
	case amount.GreaterThanOrEqual(million):
		return sign + symbol + amount.Div(million).StringFixed(2) + "M"
	case amount.GreaterThanOrEqual(thousand):
		return sign + symbol + amount.Div(thousand).StringFixed(1) + "K"
	default:
		return sign + symbol + amount.StringFixed(0)
	}
}
