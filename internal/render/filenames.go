package render

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/Tiliavir/contractor-time-tracker/internal/timecalc"
)

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

func safeName(s string) string {
	return strings.Trim(unsafeName.ReplaceAllString(strings.TrimSpace(s), "_"), "_")
}

// ReportFilename is contractor_report_<YYYY-MM-DD>[_<project>].pdf.
func ReportFilename(generated time.Time, project string) string {
	name := "contractor_report_" + timecalc.FormatDate(generated)
	if p := safeName(project); p != "" {
		name += "_" + p
	}
	return name + ".pdf"
}

// InvoiceFilename is invoice_<number>.pdf, falling back to the Unix
// millisecond timestamp when the invoice has no number.
func InvoiceFilename(number string, now time.Time) string {
	n := safeName(number)
	if n == "" {
		n = strconv.FormatInt(now.UnixMilli(), 10)
	}
	return "invoice_" + n + ".pdf"
}
