package render

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/Tiliavir/contractor-time-tracker/internal/invoice"
	"github.com/Tiliavir/contractor-time-tracker/internal/model"
	"github.com/Tiliavir/contractor-time-tracker/internal/totals"
)

var (
	rate      = decimal.RequireFromString("0.725")
	generated = time.Date(2025, 6, 15, 9, 30, 0, 0, time.UTC)
	profile   = model.ContractorProfile{Name: "Sam Rivera", BusinessName: "Rivera Concrete LLC", Email: "sam@example.com"}
)

func sampleEntries() []model.Entry {
	return []model.Entry{
		{
			ID:            "b",
			Date:          "2025-06-02",
			ProjectName:   "Bridge",
			OvertimeHours: model.NumberFromFloat(2),
			Mileage:       model.NumberFromFloat(10),
			Notes:         "Poured the east footing, waited two hours for the second truck to arrive",
		},
		{
			ID:                 "a",
			Date:               "2025-06-01",
			ProjectName:        "Bridge, North",
			StandardHours:      model.NumberFromFloat(8),
			Mileage:            model.NumberFromFloat(20),
			OtherExpense:       model.ParseNumber("12.5"),
			ExpenseCategory:    "Fuel",
			ExpenseDescription: `Diesel "red"`,
			ReceiptImage:       "data:image/png;base64,AAAA",
		},
	}
}

func TestColumns(t *testing.T) {
	cols := Columns()
	if len(cols) != 17 {
		t.Fatalf("len(Columns) = %d, want 17", len(cols))
	}
	if cols[0] != "Date" || cols[2] != "Driving Hours" || cols[8] != "Weekend OT Hours" || cols[10] != "Mileage Payment" {
		t.Errorf("Columns = %v", cols)
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sampleEntries(), profile, rate, "2025-06-15"); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	r := csv.NewReader(&buf)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		t.Fatalf("reading back: %v", err)
	}

	// metadata (5 rows), header, 2 entries; the blank separator is skipped by the reader
	if len(records) != 8 {
		t.Fatalf("got %d records: %q", len(records), records)
	}
	if records[1][1] != "Sam Rivera" || records[4][0] != "Mileage Rate" || records[4][1] != "0.725" {
		t.Errorf("metadata = %q", records[:5])
	}
	if strings.Join(records[5], "|") != strings.Join(Columns(), "|") {
		t.Errorf("header = %q", records[5])
	}

	first := records[6]
	if first[0] != "2025-06-02" {
		t.Errorf("rows must keep input order, got %q first", first[0])
	}
	if first[9] != "10" || first[10] != "7.25" {
		t.Errorf("mileage / payment = %q / %q, want 10 / 7.25", first[9], first[10])
	}

	second := records[7]
	if second[1] != "Bridge, North" || second[14] != `Diesel "red"` {
		t.Errorf("quoted fields = %q", second)
	}
	if second[3] != "8" || second[12] != "12.50" || second[16] != "Yes" {
		t.Errorf("second row = %q", second)
	}
	if second[10] != "14.50" {
		t.Errorf("mileage payment = %q, want 14.50", second[10])
	}
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteXLSX(&buf, sampleEntries(), profile, rate, "2025-06-15"); err != nil {
		t.Fatalf("WriteXLSX: %v", err)
	}
	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(xlsxSheet)
	if err != nil {
		t.Fatal(err)
	}
	// metadata (5), blank, header, 2 entries
	if len(rows) != 9 {
		t.Fatalf("got %d rows", len(rows))
	}
	if rows[6][0] != "Date" {
		t.Errorf("header row = %v", rows[6])
	}
	if rows[8][1] != "Bridge, North" || rows[8][10] != "14.5" {
		t.Errorf("entry row = %v", rows[8])
	}

	idx, err := f.GetCellStyle(xlsxSheet, "Q7")
	if err != nil {
		t.Fatal(err)
	}
	style, err := f.GetStyle(idx)
	if err != nil {
		t.Fatal(err)
	}
	if style.Font == nil || !style.Font.Bold {
		t.Error("header row is not bold")
	}
	if w, err := f.GetColWidth(xlsxSheet, "P"); err != nil || w != 48 {
		t.Errorf("notes column width = %v, %v", w, err)
	}
}

func TestReportPDF(t *testing.T) {
	entries := sampleEntries()
	data := ReportData{
		Entries:   entries,
		Profile:   profile,
		Totals:    totals.Compute(entries, rate),
		Project:   "Bridge",
		Generated: generated,
	}

	doc := buildReport(data)
	doc.SetCompression(false)
	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		t.Fatalf("Output: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "%PDF-") {
		t.Fatal("not a PDF")
	}
	for _, want := range []string{
		"CONTRACTOR REPORT",
		"Project: Bridge",
		"Name: Sam Rivera",
		"Total Hours: 10.00",
		"TOTAL REIMBURSEMENT: $34.25",
		"Notes: Poured the east footing, waited two hours for the second tru...",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q", want)
		}
	}
	if a, b := strings.Index(out, "Jun 1, 2025"), strings.Index(out, "Jun 2, 2025"); a < 0 || b < 0 || a > b {
		t.Errorf("entries not in date order (Jun 1 at %d, Jun 2 at %d)", a, b)
	}
	if strings.Contains(out, "Total Earnings") {
		t.Error("earnings shown without profile rates")
	}
}

func TestReportPDFEarnings(t *testing.T) {
	entries := sampleEntries()
	withRates := profile
	withRates.DefaultRates = model.RateTable{
		model.HourStandard: model.NumberFromFloat(50),
		model.HourOvertime: model.NumberFromFloat(75),
	}
	doc := buildReport(ReportData{
		Entries:   entries,
		Profile:   withRates,
		Totals:    totals.Compute(entries, rate),
		Generated: generated,
	})
	doc.SetCompression(false)
	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		t.Fatalf("Output: %v", err)
	}
	if !strings.Contains(buf.String(), "Total Earnings: $550.00") {
		t.Error("report missing earnings at profile rates")
	}
}

func TestReportPDFPaginates(t *testing.T) {
	var entries []model.Entry
	for i := 0; i < 40; i++ {
		entries = append(entries, model.Entry{Date: "2025-06-01", StandardHours: model.NumberFromFloat(1), Notes: "n"})
	}
	doc := buildReport(ReportData{Entries: entries, Totals: totals.Compute(entries, rate), Generated: generated})
	if doc.Err() {
		t.Fatal(doc.Error())
	}
	if doc.PageCount() < 2 {
		t.Errorf("PageCount = %d, want a page break", doc.PageCount())
	}
}

func TestInvoicePDF(t *testing.T) {
	entries := sampleEntries()[1:]
	entries[0].OtherExpense = model.Number{}
	inv := invoice.Build(entries, model.RateTable{model.HourStandard: model.NumberFromFloat(50)}, rate)

	doc := buildInvoice(InvoiceData{
		Entries: entries,
		Profile: profile,
		Draft: model.InvoiceDraft{
			Number:       "2025-007",
			ClientName:   "Acme Builders",
			PaymentTerms: "Net 30",
		},
		Invoice: inv,
		Issued:  generated,
	})
	doc.SetCompression(false)
	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		t.Fatalf("Output: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"INVOICE",
		"Invoice #: 2025-007",
		"Acme Builders",
		"Rivera Concrete LLC",
		"Work Period: Jun 1, 2025 - Jun 1, 2025",
		"Standard Labor", "8.00 hr", "$50.00/hr", "$400.00",
		"Mileage", "20.0 mi", "$0.725/mi", "$14.50",
		"$414.50",
		"1099 Independent Contractor",
		"Net 30",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("invoice missing %q", want)
		}
	}
	if strings.Index(out, "Standard Labor") > strings.Index(out, "20.0 mi") {
		t.Error("labor line must precede mileage")
	}
	if strings.Contains(out, "Per Diem") || strings.Contains(out, "NOTES") {
		t.Error("zero lines and empty notes must be omitted")
	}
}

func TestWorkPeriod(t *testing.T) {
	from, to, ok := workPeriod([]model.Entry{{Date: "2025-06-09"}, {Date: "bad"}, {Date: "2025-06-02"}, {Date: "2025-06-05"}})
	if !ok || from != "2025-06-02" || to != "2025-06-09" {
		t.Errorf("workPeriod = %q, %q, %v", from, to, ok)
	}
	if _, _, ok := workPeriod([]model.Entry{{Date: ""}}); ok {
		t.Error("no valid dates should report !ok")
	}
}

func TestFilenames(t *testing.T) {
	tests := []struct {
		got, want string
	}{
		{ReportFilename(generated, ""), "contractor_report_2025-06-15.pdf"},
		{ReportFilename(generated, "Bridge North/East"), "contractor_report_2025-06-15_Bridge_North_East.pdf"},
		{InvoiceFilename("2025-007", generated), "invoice_2025-007.pdf"},
		{InvoiceFilename("", generated), "invoice_1749979800000.pdf"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("got %q, want %q", tt.got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 60); got != "short" {
		t.Errorf("truncate = %q", got)
	}
	long := strings.Repeat("é", 61)
	if got := truncate(long, 60); got != strings.Repeat("é", 60)+"..." {
		t.Errorf("truncate = %q", got)
	}
}
