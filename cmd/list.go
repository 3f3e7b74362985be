package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/Tiliavir/contractor-time-tracker/internal/filter"
	"github.com/Tiliavir/contractor-time-tracker/internal/model"
	"github.com/Tiliavir/contractor-time-tracker/internal/money"
	"github.com/Tiliavir/contractor-time-tracker/internal/totals"
)

func newListCmd() *cobra.Command {
	var (
		filters  *filterFlags
		projects bool
	)
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List entries",
		Args:    cobra.NoArgs,
		RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			w := cmd.OutOrStdout()
			pal := paletteFor(a.ledger.Theme())
			if projects {
				for _, p := range filter.Projects(a.ledger.Entries()) {
					fmt.Fprintln(w, p)
				}
				return nil
			}
			entries, _, err := filters.apply(cmd, a)
			if err != nil {
				return err
			}
			printList(w, pal, entries)
			if len(entries) > 0 {
				printTotalsLine(w, pal, totals.Compute(entries, a.cfg.MileageRate))
			}
			return nil
		}),
	}
	filters = bindFilterFlags(cmd, filter.RangeAll)
	cmd.Flags().BoolVar(&projects, "projects", false, "List distinct project names instead")
	return cmd
}

// printList prints entries in store order as a table.
func printList(w io.Writer, pal palette, entries []model.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No entries found.")
		return
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		hours := decimal.Zero
		for _, c := range model.HourCategories {
			hours = hours.Add(e.Hours(c).OrZero())
		}
		notes := e.Notes
		if e.ReceiptImage != "" {
			notes = strings.TrimSpace("[receipt] " + notes)
		}
		rows = append(rows, []string{
			e.ID,
			e.Date,
			e.ProjectName,
			money.Quantity(hours, 2),
			money.Quantity(e.Mileage.OrZero(), 1),
			money.Format(e.PerDiem.OrZero()),
			expenseLabel(e),
			clip(notes, 32),
		})
	}
	fmt.Fprintln(w, pal.table(
		[]string{"ID", "Date", "Project", "Hours", "Miles", "Per Diem", "Expense", "Notes"},
		rows, 3, 4, 5,
	))
}

func expenseLabel(e model.Entry) string {
	amount := e.OtherExpense.OrZero()
	if amount.IsZero() {
		return ""
	}
	s := money.Format(amount)
	if e.ExpenseCategory != "" {
		s += " " + e.ExpenseCategory
	}
	return s
}

func printTotalsLine(w io.Writer, pal palette, t totals.Totals) {
	fmt.Fprintln(w, pal.dim(fmt.Sprintf("%d entries  %s h  %s mi (%s)  reimbursement %s",
		t.Entries,
		money.Quantity(t.TotalHours, 2),
		money.Quantity(t.Mileage, 1),
		money.Format(t.MileagePayment),
		money.Format(t.TotalReimbursement),
	)))
}

func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
