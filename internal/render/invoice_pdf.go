package render

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/Tiliavir/contractor-time-tracker/internal/invoice"
	"github.com/Tiliavir/contractor-time-tracker/internal/model"
	"github.com/Tiliavir/contractor-time-tracker/internal/money"
	"github.com/Tiliavir/contractor-time-tracker/internal/timecalc"
)

// InvoiceData is the input of the PDF invoice. Invoice must have been built
// from Entries.
type InvoiceData struct {
	Entries []model.Entry
	Profile model.ContractorProfile
	Draft   model.InvoiceDraft
	Invoice invoice.Invoice
	Issued  time.Time
}

// WriteInvoicePDF renders the from and bill-to blocks, the line items in
// builder order, the totals, the contractor disclaimer and optional terms
// and notes.
func WriteInvoicePDF(w io.Writer, data InvoiceData) error {
	doc := buildInvoice(data)
	if err := doc.Output(w); err != nil {
		return fmt.Errorf("rendering invoice pdf: %w", err)
	}
	return nil
}

// Table column right edges, in mm from the left page edge.
const (
	colQtyEnd    = 125.0
	colRateEnd   = 158.0
	colAmountEnd = 190.0
)

func buildInvoice(data InvoiceData) *fpdf.Fpdf {
	p := newPage()
	d := data.Draft

	issue := d.IssueDate
	if issue == "" {
		issue = timecalc.FormatDate(data.Issued)
	}
	sub := []string{"Date: " + timecalc.DisplayDate(issue)}
	if d.Number != "" {
		sub[0] = "Invoice #: " + d.Number + "    " + sub[0]
	}
	if d.DueDate != "" {
		sub = append(sub, "Due: "+timecalc.DisplayDate(d.DueDate))
	}
	p.band("INVOICE", sub...)

	invoiceParties(p, data.Profile, d)

	if from, to, ok := workPeriod(data.Entries); ok {
		p.font("", 10)
		p.line(0, 10, fmt.Sprintf("Work Period: %s - %s", timecalc.DisplayDate(from), timecalc.DisplayDate(to)))
	}

	invoiceTable(p, data.Invoice)
	invoiceFooter(p, d)
	return p.doc
}

func invoiceParties(p *page, profile model.ContractorProfile, d model.InvoiceDraft) {
	from := nonEmpty(append([]string{profile.BusinessName, profile.Name},
		append(strings.Split(profile.Address, "\n"), profile.Email, profile.Phone)...)...)
	billTo := nonEmpty(append([]string{d.ClientName}, strings.Split(d.ClientAddress, "\n")...)...)

	mid := p.width / 2
	top := p.y
	p.color(colorInk)
	p.font("B", 11)
	p.text(pdfMargin, top, "FROM")
	p.text(mid, top, "BILL TO")

	p.font("", 10)
	y := top + 7
	for _, s := range from {
		p.text(pdfMargin, y, s)
		y += 5
	}
	y2 := top + 7
	for _, s := range billTo {
		p.text(mid, y2, s)
		y2 += 5
	}
	p.y = max(y, y2) + 8
}

func invoiceTable(p *page, inv invoice.Invoice) {
	p.fill(colorInk)
	p.doc.Rect(pdfMargin-5, p.y-5, p.width-2*pdfMargin+10, 8, "F")
	p.color(colorWhite)
	p.font("B", 10)
	p.text(pdfMargin, p.y, "Description")
	p.right(colQtyEnd, p.y, "Quantity")
	p.right(colRateEnd, p.y, "Rate")
	p.right(colAmountEnd, p.y, "Amount")
	p.y += 9

	p.color(colorInk)
	p.font("", 10)
	for i, li := range inv.LineItems {
		p.breakIfLow()
		if i%2 == 1 {
			p.fill(colorBlock)
			p.doc.Rect(pdfMargin-5, p.y-5, p.width-2*pdfMargin+10, 7, "F")
		}
		qty, rate := li.Figures()
		p.text(pdfMargin, p.y, li.Description)
		p.right(colQtyEnd, p.y, qty)
		p.right(colRateEnd, p.y, rate)
		p.right(colAmountEnd, p.y, money.Format(li.Amount))
		p.y += 7
	}

	p.y += 4
	p.doc.SetDrawColor(colorInk.r, colorInk.g, colorInk.b)
	p.doc.Line(colQtyEnd, p.y-5, colAmountEnd, p.y-5)
	p.breakIfLow()
	p.right(colRateEnd, p.y, "Labor Subtotal")
	p.right(colAmountEnd, p.y, money.Format(inv.LaborTotal))
	p.y += 6
	p.right(colRateEnd, p.y, "Reimbursements")
	p.right(colAmountEnd, p.y, money.Format(inv.ReimbursementsTotal))
	p.y += 8
	p.font("B", 12)
	p.right(colRateEnd, p.y, "TOTAL DUE")
	p.right(colAmountEnd, p.y, money.Format(inv.GrandTotal))
	p.y += 14
}

func invoiceFooter(p *page, d model.InvoiceDraft) {
	p.breakIfLow()
	p.color(colorMuted)
	p.font("I", 8)
	p.doc.SetXY(pdfMargin, p.y-3)
	p.doc.MultiCell(p.width-2*pdfMargin, 4, p.tr(invoice.Disclaimer), "", "L", false)
	p.y = p.doc.GetY() + 8

	p.color(colorInk)
	for _, block := range []struct{ title, body string }{
		{"PAYMENT TERMS", d.PaymentTerms},
		{"NOTES", d.Notes},
	} {
		if block.body == "" {
			continue
		}
		p.breakIfLow()
		p.font("B", 10)
		p.line(0, 2, block.title)
		p.font("", 10)
		p.doc.SetXY(pdfMargin, p.y)
		p.doc.MultiCell(p.width-2*pdfMargin, 5, p.tr(block.body), "", "L", false)
		p.y = p.doc.GetY() + 8
	}
}

// workPeriod returns the earliest and latest well-formed entry dates.
func workPeriod(entries []model.Entry) (from, to string, ok bool) {
	for _, e := range entries {
		if _, err := timecalc.ParseDate(e.Date); err != nil {
			continue
		}
		if !ok || e.Date < from {
			from = e.Date
		}
		if !ok || e.Date > to {
			to = e.Date
		}
		ok = true
	}
	return from, to, ok
}

func nonEmpty(ss ...string) []string {
	var out []string
	for _, s := range ss {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
