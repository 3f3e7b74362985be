// Package totals reduces a set of entries to category sums and the
// reimbursement figures derived from them.
package totals

import (
	"github.com/shopspring/decimal"

	"github.com/Tiliavir/contractor-time-tracker/internal/model"
)

// DefaultMileageRate is the IRS standard mileage rate for 2026, in dollars
// per mile. The effective rate comes from configuration.
var DefaultMileageRate = decimal.RequireFromString("0.725")

// Totals is the summed view of an entry set.
type Totals struct {
	Hours              map[model.HourCategory]decimal.Decimal
	TotalHours         decimal.Decimal
	Mileage            decimal.Decimal
	PerDiem            decimal.Decimal
	OtherExpense       decimal.Decimal
	MileageRate        decimal.Decimal
	MileagePayment     decimal.Decimal
	TotalReimbursement decimal.Decimal
	Entries            int
}

// MileagePayment is the single place miles are converted to money.
func MileagePayment(miles, rate decimal.Decimal) decimal.Decimal {
	return miles.Mul(rate)
}

// Compute sums entries. Absent numeric fields count as zero; the input is
// not modified.
func Compute(entries []model.Entry, mileageRate decimal.Decimal) Totals {
	t := Totals{
		Hours:       make(map[model.HourCategory]decimal.Decimal, len(model.HourCategories)),
		MileageRate: mileageRate,
		Entries:     len(entries),
	}
	for _, c := range model.HourCategories {
		t.Hours[c] = decimal.Zero
	}

	for _, e := range entries {
		for _, c := range model.HourCategories {
			t.Hours[c] = t.Hours[c].Add(e.Hours(c).OrZero())
		}
		t.Mileage = t.Mileage.Add(e.Mileage.OrZero())
		t.PerDiem = t.PerDiem.Add(e.PerDiem.OrZero())
		t.OtherExpense = t.OtherExpense.Add(e.OtherExpense.OrZero())
	}

	for _, c := range model.HourCategories {
		t.TotalHours = t.TotalHours.Add(t.Hours[c])
	}
	t.MileagePayment = MileagePayment(t.Mileage, mileageRate)
	t.TotalReimbursement = t.MileagePayment.Add(t.PerDiem).Add(t.OtherExpense)
	return t
}

// HoursFor returns the summed hours of category c.
func (t Totals) HoursFor(c model.HourCategory) decimal.Decimal {
	return t.Hours[c]
}

// Earnings sums hours times rate over the categories present in rates.
func (t Totals) Earnings(rates model.RateTable) decimal.Decimal {
	sum := decimal.Zero
	for _, c := range model.HourCategories {
		if !rates.Has(c) {
			continue
		}
		sum = sum.Add(t.Hours[c].Mul(rates.Rate(c)))
	}
	return sum
}
