package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/Tiliavir/contractor-time-tracker/internal/filter"
	"github.com/Tiliavir/contractor-time-tracker/internal/model"
	"github.com/Tiliavir/contractor-time-tracker/internal/money"
	"github.com/Tiliavir/contractor-time-tracker/internal/render"
	"github.com/Tiliavir/contractor-time-tracker/internal/totals"
)

func newReportCmd() *cobra.Command {
	var (
		filters *filterFlags
		format  string
		outDir  string
	)
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show aggregated totals, or write the PDF report",
		Args:  cobra.NoArgs,
		RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			entries, c, err := filters.apply(cmd, a)
			if err != nil {
				return err
			}
			t := totals.Compute(entries, a.cfg.MileageRate)
			rates := a.ledger.Profile().DefaultRates
			w := cmd.OutOrStdout()

			switch format {
			case "json":
				return writeReportJSON(w, c, t, rates)
			case "pdf":
				project := ""
				if c.Project != nil {
					project = *c.Project
				}
				path := filepath.Join(outDir, render.ReportFilename(a.now(), project))
				err := writeFile(path, func(f io.Writer) error {
					return render.WriteReportPDF(f, render.ReportData{
						Entries:   entries,
						Profile:   a.ledger.Profile(),
						Totals:    t,
						Project:   project,
						Generated: a.now(),
					})
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "Wrote %s (%d entries).\n", path, len(entries))
				return nil
			case "md", "":
				printReport(w, paletteFor(a.ledger.Theme()), c, t, rates)
				return nil
			}
			return fmt.Errorf("unknown format %q (want md, json or pdf)", format)
		}),
	}
	filters = bindFilterFlags(cmd, filter.RangeAll)
	cmd.Flags().StringVar(&format, "format", "md", "Output format: md, json, pdf")
	cmd.Flags().StringVar(&outDir, "out", ".", "Directory the PDF is written to")
	return cmd
}

func printReport(w io.Writer, pal palette, c filter.Criteria, t totals.Totals, rates model.RateTable) {
	title := "Report: " + string(c.Range)
	if c.Range == filter.RangeCustom {
		title += fmt.Sprintf(" %s..%s", c.From, c.To)
	}
	if c.Project != nil {
		title += " / " + *c.Project
	}
	fmt.Fprintln(w, pal.title(title))

	var rows [][]string
	for _, cat := range model.HourCategories {
		if h := t.HoursFor(cat); h.IsPositive() {
			rows = append(rows, []string{cat.Label(), money.Quantity(h, 2) + " h"})
		}
	}
	rows = append(rows,
		[]string{"Total Hours", money.Quantity(t.TotalHours, 2) + " h"},
		[]string{"Mileage", fmt.Sprintf("%s mi x %s = %s",
			money.Quantity(t.Mileage, 1), money.Rate(t.MileageRate), money.Format(t.MileagePayment))},
		[]string{"Per Diem", money.Format(t.PerDiem)},
		[]string{"Other Expenses", money.Format(t.OtherExpense)},
		[]string{"Total Reimbursement", money.Format(t.TotalReimbursement)},
	)
	if rates.Any() {
		rows = append(rows, []string{"Earnings at profile rates", money.Format(t.Earnings(rates))})
	}
	fmt.Fprintln(w, pal.table([]string{"", fmt.Sprintf("%d entries", t.Entries)}, rows, 1))
}

type reportJSON struct {
	Range              filter.Range               `json:"range"`
	From               string                     `json:"from,omitempty"`
	To                 string                     `json:"to,omitempty"`
	Project            *string                    `json:"project,omitempty"`
	Entries            int                        `json:"entries"`
	Hours              map[string]decimal.Decimal `json:"hours"`
	TotalHours         decimal.Decimal            `json:"totalHours"`
	Mileage            decimal.Decimal            `json:"mileage"`
	MileageRate        decimal.Decimal            `json:"mileageRate"`
	MileagePayment     decimal.Decimal            `json:"mileagePayment"`
	PerDiem            decimal.Decimal            `json:"perDiem"`
	OtherExpense       decimal.Decimal            `json:"otherExpense"`
	TotalReimbursement decimal.Decimal            `json:"totalReimbursement"`
	Earnings           *decimal.Decimal           `json:"earnings,omitempty"`
}

func writeReportJSON(w io.Writer, c filter.Criteria, t totals.Totals, rates model.RateTable) error {
	out := reportJSON{
		Range:              c.Range,
		Project:            c.Project,
		Entries:            t.Entries,
		Hours:              make(map[string]decimal.Decimal, len(t.Hours)),
		TotalHours:         t.TotalHours,
		Mileage:            t.Mileage,
		MileageRate:        t.MileageRate,
		MileagePayment:     t.MileagePayment,
		PerDiem:            t.PerDiem,
		OtherExpense:       t.OtherExpense,
		TotalReimbursement: t.TotalReimbursement,
	}
	if c.Range == filter.RangeCustom {
		out.From, out.To = c.From, c.To
	}
	if rates.Any() {
		earnings := t.Earnings(rates)
		out.Earnings = &earnings
	}
	for cat, h := range t.Hours {
		out.Hours[string(cat)] = h
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// writeFile creates path and streams write into it, removing the file again
// when rendering fails.
func writeFile(path string, write func(io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}
