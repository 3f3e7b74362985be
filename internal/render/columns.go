// Package render turns already computed entries, totals and invoices into
// downloadable documents. Nothing here sums or multiplies on its own except
// the per-row mileage payment, which goes through totals.MileagePayment.
package render

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/Tiliavir/contractor-time-tracker/internal/model"
	"github.com/Tiliavir/contractor-time-tracker/internal/money"
	"github.com/Tiliavir/contractor-time-tracker/internal/totals"
)

// Columns is the fixed tabular export layout shared by CSV and XLSX.
func Columns() []string {
	cols := []string{"Date", "Project"}
	for _, c := range model.HourCategories {
		cols = append(cols, c.Column())
	}
	return append(cols,
		"Mileage",
		"Mileage Payment",
		"Per Diem",
		"Other Expense",
		"Expense Category",
		"Expense Description",
		"Notes",
		"Receipt",
	)
}

// cell is one exported value; numeric cells keep their decimal so the
// spreadsheet writer can store a real number.
type cell struct {
	text string
	num  *decimal.Decimal
}

func textCell(s string) cell { return cell{text: s} }

func numCell(d decimal.Decimal, text string) cell { return cell{text: text, num: &d} }

func entryRow(e model.Entry, mileageRate decimal.Decimal) []cell {
	row := []cell{textCell(e.Date), textCell(e.ProjectName)}
	for _, c := range model.HourCategories {
		h := e.Hours(c).OrZero()
		row = append(row, numCell(h, h.String()))
	}
	miles := e.Mileage.OrZero()
	pay := totals.MileagePayment(miles, mileageRate)
	receipt := "No"
	if e.ReceiptImage != "" {
		receipt = "Yes"
	}
	return append(row,
		numCell(miles, miles.String()),
		numCell(pay, money.Plain(pay)),
		numCell(e.PerDiem.OrZero(), money.Plain(e.PerDiem.OrZero())),
		numCell(e.OtherExpense.OrZero(), money.Plain(e.OtherExpense.OrZero())),
		textCell(e.ExpenseCategory),
		textCell(e.ExpenseDescription),
		textCell(e.Notes),
		textCell(receipt),
	)
}

// metadata is the leading key/value block of a tabular export.
func metadata(profile model.ContractorProfile, mileageRate decimal.Decimal, generated string) [][2]string {
	rows := [][2]string{{"Contractor Report", ""}}
	if profile.Name != "" {
		rows = append(rows, [2]string{"Contractor", profile.Name})
	}
	if profile.BusinessName != "" {
		rows = append(rows, [2]string{"Business", profile.BusinessName})
	}
	return append(rows,
		[2]string{"Generated", generated},
		[2]string{"Mileage Rate", mileageRate.String()},
	)
}

// byDate returns a copy of entries sorted ascending by date; equal dates
// keep store order.
func byDate(entries []model.Entry) []model.Entry {
	out := slices.Clone(entries)
	slices.SortStableFunc(out, func(a, b model.Entry) int {
		return strings.Compare(a.Date, b.Date)
	})
	return out
}

// truncate shortens s to n characters, appending "..." when cut.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n]) + "..."
}
