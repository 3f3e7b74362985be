package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/contractor-time-tracker/internal/model"
)

func newAddCmd() *cobra.Command {
	var flags *entryFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a new time and expense entry",
		Example: `  ctt add --project "Elm St" --standard 8 --mileage 20
  ctt add --date 2025-06-01 --overtime 2.5 --expense 42.10 --category Fuel --receipt pump.jpg`,
		Args: cobra.NoArgs,
		RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			e := model.Entry{Date: today(a)}
			if err := flags.apply(cmd, &e, false); err != nil {
				return err
			}
			added, err := a.ledger.AddEntry(cmd.Context(), e, a.now())
			if !keepIfUnsaved(err) {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added entry %s for %s.\n", added.ID, added.Date)
			return err
		}),
	}
	flags = bindEntryFlags(cmd)
	return cmd
}
