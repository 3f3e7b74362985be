package cmd

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/contractor-time-tracker/internal/filter"
	"github.com/Tiliavir/contractor-time-tracker/internal/model"
	"github.com/Tiliavir/contractor-time-tracker/internal/timecalc"
)

// hourFlags names the per-category hour flags.
var hourFlags = map[model.HourCategory]string{
	model.HourDriving:         "driving",
	model.HourStandard:        "standard",
	model.HourOvertime:        "overtime",
	model.HourNight:           "night",
	model.HourNightOvertime:   "night-overtime",
	model.HourWeekend:         "weekend",
	model.HourWeekendOvertime: "weekend-overtime",
}

// entryFlags binds the entry form fields to command flags. Numbers are
// taken as strings so an explicit "" can clear a field on edit.
type entryFlags struct {
	date        string
	project     string
	hours       map[model.HourCategory]*string
	mileage     string
	perDiem     string
	expense     string
	category    string
	description string
	notes       string
	receipt     string
}

func bindEntryFlags(cmd *cobra.Command) *entryFlags {
	f := &entryFlags{hours: map[model.HourCategory]*string{}}
	fs := cmd.Flags()
	fs.StringVar(&f.date, "date", "", "Entry date (YYYY-MM-DD, default today)")
	fs.StringVar(&f.project, "project", "", "Project name")
	for _, c := range model.HourCategories {
		f.hours[c] = fs.String(hourFlags[c], "", c.Label()+" hours")
	}
	fs.StringVar(&f.mileage, "mileage", "", "Miles driven")
	fs.StringVar(&f.perDiem, "per-diem", "", "Per diem amount")
	fs.StringVar(&f.expense, "expense", "", "Other expense amount")
	fs.StringVar(&f.category, "category", "", "Expense category")
	fs.StringVar(&f.description, "description", "", "Expense description")
	fs.StringVar(&f.notes, "notes", "", "Free-form notes")
	fs.StringVar(&f.receipt, "receipt", "", "Receipt image file to attach")
	return f
}

// apply copies the flags the user set onto e. With onlyChanged false every
// flag is applied, which is what add wants.
func (f *entryFlags) apply(cmd *cobra.Command, e *model.Entry, onlyChanged bool) error {
	set := func(name string) bool {
		return !onlyChanged || cmd.Flags().Changed(name)
	}
	if set("date") && (f.date != "" || onlyChanged) {
		e.Date = f.date
	}
	if set("project") {
		e.ProjectName = strings.TrimSpace(f.project)
	}
	for _, c := range model.HourCategories {
		if !set(hourFlags[c]) {
			continue
		}
		n, err := parseAmount(hourFlags[c], *f.hours[c])
		if err != nil {
			return err
		}
		e.SetHours(c, n)
	}
	for _, nf := range []struct {
		name string
		val  string
		dst  *model.Number
	}{
		{"mileage", f.mileage, &e.Mileage},
		{"per-diem", f.perDiem, &e.PerDiem},
		{"expense", f.expense, &e.OtherExpense},
	} {
		if !set(nf.name) {
			continue
		}
		n, err := parseAmount(nf.name, nf.val)
		if err != nil {
			return err
		}
		*nf.dst = n
	}
	if set("category") {
		e.ExpenseCategory = strings.TrimSpace(f.category)
	}
	if set("description") {
		e.ExpenseDescription = f.description
	}
	if set("notes") {
		e.Notes = f.notes
	}
	if set("receipt") {
		switch {
		case f.receipt != "":
			img, err := readReceipt(f.receipt)
			if err != nil {
				return err
			}
			e.ReceiptImage = img
		case onlyChanged:
			e.ReceiptImage = ""
		}
	}
	return nil
}

// parseAmount accepts a blank value as absent but rejects anything else
// that is not a number.
func parseAmount(flag, s string) (model.Number, error) {
	n := model.ParseNumber(s)
	if strings.TrimSpace(s) != "" && !n.Valid {
		return n, fmt.Errorf("--%s: %q is not a number", flag, s)
	}
	return n, nil
}

// readReceipt loads an image file as a data URL.
func readReceipt(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading receipt: %w", err)
	}
	mime := http.DetectContentType(data)
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// filterFlags binds the shared range and project selection.
type filterFlags struct {
	rng     string
	from    string
	to      string
	project string
}

func bindFilterFlags(cmd *cobra.Command, defaultRange filter.Range) *filterFlags {
	f := &filterFlags{}
	fs := cmd.Flags()
	fs.StringVar(&f.rng, "range", string(defaultRange), "Date range: all, today, week, month, custom")
	fs.StringVar(&f.from, "from", "", "Custom range start (YYYY-MM-DD)")
	fs.StringVar(&f.to, "to", "", "Custom range end (YYYY-MM-DD)")
	fs.StringVar(&f.project, "project", "", "Only entries of this project")
	return f
}

func (f *filterFlags) criteria(cmd *cobra.Command) (filter.Criteria, error) {
	r, err := filter.ParseRange(f.rng)
	if err != nil {
		return filter.Criteria{}, err
	}
	if (f.from != "" || f.to != "") && !cmd.Flags().Changed("range") {
		r = filter.RangeCustom
	}
	c := filter.Criteria{Range: r, From: f.from, To: f.to}
	if cmd.Flags().Changed("project") {
		p := f.project
		c.Project = &p
	}
	return c, nil
}

// apply filters the ledger's entries.
func (f *filterFlags) apply(cmd *cobra.Command, a *app) ([]model.Entry, filter.Criteria, error) {
	c, err := f.criteria(cmd)
	if err != nil {
		return nil, c, err
	}
	return filter.Apply(a.ledger.Entries(), c, a.now()), c, nil
}

// parseRates reads repeated category=rate pairs.
func parseRates(pairs []string) (model.RateTable, error) {
	rates := model.RateTable{}
	for _, p := range pairs {
		name, value, ok := strings.Cut(p, "=")
		if !ok {
			return nil, fmt.Errorf("--rate %q: want category=amount", p)
		}
		c, err := parseCategoryFlag(strings.TrimSpace(name))
		if err != nil {
			return nil, err
		}
		n, err := parseAmount("rate", value)
		if err != nil {
			return nil, err
		}
		if n.IsNegative() {
			return nil, model.ErrNegativeValue
		}
		rates[c] = n
	}
	return rates, nil
}

// parseCategoryFlag accepts either a flag name (night-overtime) or a
// category name (nightOvertime).
func parseCategoryFlag(s string) (model.HourCategory, error) {
	for c, name := range hourFlags {
		if strings.EqualFold(s, name) {
			return c, nil
		}
	}
	return model.ParseHourCategory(s)
}

func today(a *app) string {
	return timecalc.FormatDate(timecalc.Today(a.now()))
}
