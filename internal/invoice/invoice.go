// Package invoice turns a selection of entries and a rate table into
// ordered invoice line items.
package invoice

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/Tiliavir/contractor-time-tracker/internal/model"
	"github.com/Tiliavir/contractor-time-tracker/internal/money"
	"github.com/Tiliavir/contractor-time-tracker/internal/totals"
)

// Disclaimer is printed verbatim on every rendered invoice.
const Disclaimer = "1099 Independent Contractor - No taxes have been withheld from this invoice. " +
	"The client is responsible for any tax reporting; the contractor is responsible for " +
	"their own income and self-employment taxes."

var (
	ErrEmptySelection = errors.New("select at least one entry to invoice")
	ErrMissingClient  = errors.New("client name is required")
	ErrZeroTotal      = errors.New("invoice total is zero")
)

// Kind separates labor from reimbursement lines.
type Kind int

const (
	KindLabor Kind = iota
	KindReimbursement
)

// LineItem is one invoice row. Quantity and Rate are nil for lump sums.
type LineItem struct {
	Kind        Kind
	Category    model.HourCategory
	Description string
	Quantity    *decimal.Decimal
	Unit        string
	Rate        *decimal.Decimal
	Amount      decimal.Decimal
}

// Invoice is the computed content of one invoice.
type Invoice struct {
	LineItems           []LineItem
	LaborTotal          decimal.Decimal
	ReimbursementsTotal decimal.Decimal
	GrandTotal          decimal.Decimal
	Totals              totals.Totals
}

// Build computes line items for the selected entries. Categories whose
// summed hours are zero get no line at all.
func Build(selected []model.Entry, rates model.RateTable, mileageRate decimal.Decimal) Invoice {
	t := totals.Compute(selected, mileageRate)
	inv := Invoice{Totals: t}

	for _, c := range model.HourCategories {
		hours := t.HoursFor(c)
		if !hours.IsPositive() {
			continue
		}
		rate := rates.Rate(c)
		inv.add(LineItem{
			Kind:        KindLabor,
			Category:    c,
			Description: c.Label(),
			Quantity:    &hours,
			Unit:        "hr",
			Rate:        &rate,
			Amount:      hours.Mul(rate),
		})
	}

	if t.Mileage.IsPositive() {
		miles, rate := t.Mileage, t.MileageRate
		inv.add(LineItem{
			Kind:        KindReimbursement,
			Description: "Mileage",
			Quantity:    &miles,
			Unit:        "mi",
			Rate:        &rate,
			Amount:      t.MileagePayment,
		})
	}
	if t.PerDiem.IsPositive() {
		inv.add(LineItem{Kind: KindReimbursement, Description: "Per Diem", Amount: t.PerDiem})
	}
	if t.OtherExpense.IsPositive() {
		inv.add(LineItem{Kind: KindReimbursement, Description: "Other Expenses", Amount: t.OtherExpense})
	}

	inv.GrandTotal = inv.LaborTotal.Add(inv.ReimbursementsTotal)
	return inv
}

// Figures renders the quantity and unit rate of a line, hours with two
// decimals and miles with one. Lump sums show neither.
func (li LineItem) Figures() (qty, rate string) {
	if li.Quantity == nil || li.Rate == nil {
		return "", ""
	}
	places := int32(2)
	if li.Unit == "mi" {
		places = 1
	}
	return money.Quantity(*li.Quantity, places) + " " + li.Unit, money.Rate(*li.Rate) + "/" + li.Unit
}

func (inv *Invoice) add(item LineItem) {
	inv.LineItems = append(inv.LineItems, item)
	switch item.Kind {
	case KindLabor:
		inv.LaborTotal = inv.LaborTotal.Add(item.Amount)
	case KindReimbursement:
		inv.ReimbursementsTotal = inv.ReimbursementsTotal.Add(item.Amount)
	}
}

// Labor returns the labor lines in order.
func (inv Invoice) Labor() []LineItem { return inv.kind(KindLabor) }

// Reimbursements returns the non-labor lines in order.
func (inv Invoice) Reimbursements() []LineItem { return inv.kind(KindReimbursement) }

func (inv Invoice) kind(k Kind) []LineItem {
	var out []LineItem
	for _, li := range inv.LineItems {
		if li.Kind == k {
			out = append(out, li)
		}
	}
	return out
}

// Validate applies the checks that must pass before an invoice is rendered.
func Validate(draft model.InvoiceDraft, selected []model.Entry, inv Invoice) error {
	switch {
	case len(selected) == 0:
		return ErrEmptySelection
	case draft.ClientName == "":
		return ErrMissingClient
	case inv.GrandTotal.IsZero():
		return ErrZeroTotal
	}
	return nil
}
