// Package money formats currency amounts and quantities for display.
package money

import (
	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// Format renders d as dollars with two decimals and thousands separators,
// e.g. $1,234.50.
func Format(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	return sign + "$" + humanize.FormatFloat("#,###.##", d.Round(2).InexactFloat64())
}

// Rate renders a unit rate keeping up to three decimals, so a 0.725
// mileage rate shows as $0.725 while $50 shows as $50.00.
func Rate(d decimal.Decimal) string {
	if d.Round(2).Equal(d) {
		return Format(d)
	}
	return "$" + d.StringFixed(3)
}

// Quantity renders d with a fixed number of decimals.
func Quantity(d decimal.Decimal, places int32) string {
	return d.StringFixed(places)
}

// Plain renders a currency amount with two decimals and no symbol, for
// machine-readable exports.
func Plain(d decimal.Decimal) string {
	return d.StringFixed(2)
}
