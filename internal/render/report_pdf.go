package render

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/Tiliavir/contractor-time-tracker/internal/model"
	"github.com/Tiliavir/contractor-time-tracker/internal/money"
	"github.com/Tiliavir/contractor-time-tracker/internal/timecalc"
	"github.com/Tiliavir/contractor-time-tracker/internal/totals"
)

const notesLimit = 60

// ReportData is the input of the PDF report. Totals must have been
// computed from Entries.
type ReportData struct {
	Entries   []model.Entry
	Profile   model.ContractorProfile
	Totals    totals.Totals
	Project   string
	Generated time.Time
}

// WriteReportPDF renders the summary followed by one block per entry,
// oldest first.
func WriteReportPDF(w io.Writer, data ReportData) error {
	doc := buildReport(data)
	if err := doc.Output(w); err != nil {
		return fmt.Errorf("rendering report pdf: %w", err)
	}
	return nil
}

func buildReport(data ReportData) *fpdf.Fpdf {
	p := newPage()

	sub := []string{"Generated: " + data.Generated.Format("Jan 2, 2006")}
	if data.Project != "" {
		sub = append(sub, "Project: "+data.Project)
	}
	p.band("CONTRACTOR REPORT", sub...)

	if data.Profile.Name != "" || data.Profile.BusinessName != "" {
		p.heading("CONTRACTOR INFORMATION")
		p.font("", 10)
		if data.Profile.Name != "" {
			p.line(0, 6, "Name: "+data.Profile.Name)
		}
		if data.Profile.BusinessName != "" {
			p.line(0, 6, "Business: "+data.Profile.BusinessName)
		}
		p.y += 5
	}

	reportSummary(p, data.Totals, data.Profile.DefaultRates)

	p.heading("DETAILED ENTRIES")
	p.y += 2
	for _, e := range byDate(data.Entries) {
		reportEntry(p, e)
	}
	return p.doc
}

// reportSummary lists earnings only when the profile carries default rates.
func reportSummary(p *page, t totals.Totals, rates model.RateTable) {
	var lines []string
	for _, c := range model.HourCategories {
		if h := t.HoursFor(c); h.IsPositive() {
			lines = append(lines, fmt.Sprintf("%s: %s", c.Column(), money.Quantity(h, 2)))
		}
	}
	lines = append(lines,
		"Total Hours: "+money.Quantity(t.TotalHours, 2),
		fmt.Sprintf("Total Mileage: %s miles (%s at %s/mi)",
			money.Quantity(t.Mileage, 1), money.Format(t.MileagePayment), money.Rate(t.MileageRate)),
		"Total Per Diem: "+money.Format(t.PerDiem),
		"Total Other Expenses: "+money.Format(t.OtherExpense),
	)
	if rates.Any() {
		lines = append(lines, "Total Earnings: "+money.Format(t.Earnings(rates)))
	}

	p.panel(colorPanel, 17+7*float64(len(lines)+1))
	p.color(colorInk)
	p.font("B", 12)
	p.text(pdfMargin, p.y+5, "SUMMARY")
	p.y += 15

	p.font("", 10)
	for _, l := range lines {
		p.line(0, 7, l)
	}
	p.font("B", 10)
	p.line(0, 15, "TOTAL REIMBURSEMENT: "+money.Format(t.TotalReimbursement))
}

func reportEntry(p *page, e model.Entry) {
	p.breakIfLow()

	var details []string
	var hours []string
	for _, c := range model.HourCategories {
		if h := e.Hours(c).OrZero(); h.IsPositive() {
			hours = append(hours, fmt.Sprintf("%s %s", h, strings.ToLower(strings.TrimSuffix(c.Column(), " Hours"))))
		}
	}
	if len(hours) > 0 {
		details = append(details, "Hours: "+strings.Join(hours, ", "))
	}
	if m := e.Mileage.OrZero(); m.IsPositive() {
		details = append(details, fmt.Sprintf("Mileage: %s miles", m))
	}
	if d := e.PerDiem.OrZero(); d.IsPositive() {
		details = append(details, "Per Diem: "+money.Format(d))
	}
	if x := e.OtherExpense.OrZero(); x.IsPositive() {
		s := "Other Expense: " + money.Format(x)
		if e.ExpenseCategory != "" {
			s += " (" + e.ExpenseCategory + ")"
		}
		if e.ExpenseDescription != "" {
			s += " - " + e.ExpenseDescription
		}
		details = append(details, s)
	}
	if e.ReceiptImage != "" {
		details = append(details, "Receipt attached")
	}

	height := 18 + 6*float64(len(details))
	if e.Notes != "" {
		height += 6
	}
	p.panel(colorBlock, height)

	p.color(colorInk)
	p.font("B", 11)
	title := timecalc.DisplayDate(e.Date)
	if e.ProjectName != "" {
		title += "  " + e.ProjectName
	}
	p.text(pdfMargin, p.y+3, title)
	p.y += 10

	p.font("", 9)
	for _, d := range details {
		p.line(5, 6, d)
	}
	if e.Notes != "" {
		p.font("", 8)
		p.color(colorMuted)
		p.line(5, 6, "Notes: "+truncate(e.Notes, notesLimit))
		p.color(colorInk)
	}
	p.y += 8
}
