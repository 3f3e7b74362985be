package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/contractor-time-tracker/internal/filter"
	"github.com/Tiliavir/contractor-time-tracker/internal/model"
	"github.com/Tiliavir/contractor-time-tracker/internal/money"
	"github.com/Tiliavir/contractor-time-tracker/internal/timecalc"
	"github.com/Tiliavir/contractor-time-tracker/internal/totals"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show today's entries and the past week's totals",
		Args:  cobra.NoArgs,
		RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			w := cmd.OutOrStdout()
			pal := paletteFor(a.ledger.Theme())
			now := a.now()
			all := a.ledger.Entries()

			todays := datedOn(all, timecalc.Today(now))
			week := totals.Compute(filter.Apply(all, filter.Criteria{Range: filter.RangeWeek}, now), a.cfg.MileageRate)

			fmt.Fprintln(w, pal.title("Today, "+today(a)))
			if len(todays) == 0 {
				fmt.Fprintln(w, "No entries logged today.")
			} else {
				t := totals.Compute(todays, a.cfg.MileageRate)
				for _, c := range model.HourCategories {
					if h := t.HoursFor(c); h.IsPositive() {
						fmt.Fprintf(w, "  %-22s %s h\n", c.Label(), money.Quantity(h, 2))
					}
				}
				fmt.Fprintf(w, "  %-22s %s mi\n", "Mileage", money.Quantity(t.Mileage, 1))
			}

			fmt.Fprintln(w)
			fmt.Fprintln(w, pal.title("Past week"))
			fmt.Fprintf(w, "  %-22s %s h\n", "Hours", money.Quantity(week.TotalHours, 2))
			fmt.Fprintf(w, "  %-22s %s\n", "Reimbursement", money.Format(week.TotalReimbursement))
			fmt.Fprintf(w, "  %-22s %d\n", "Entries", week.Entries)
			return nil
		}),
	}
}

// datedOn keeps the entries dated exactly day; future-dated entries are
// left out.
func datedOn(entries []model.Entry, day time.Time) []model.Entry {
	var out []model.Entry
	for _, e := range entries {
		if d, err := timecalc.ParseDate(e.Date); err == nil && timecalc.SameDay(d, day) {
			out = append(out, e)
		}
	}
	return out
}
