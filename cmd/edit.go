package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newEditCmd() *cobra.Command {
	var flags *entryFlags
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change fields of an existing entry",
		Long: `Only the flags given are changed. Pass an empty value to clear a field,
e.g. --overtime "".`,
		Args: cobra.ExactArgs(1),
		RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			e, err := a.ledger.Entry(args[0])
			if err != nil {
				return err
			}
			if err := flags.apply(cmd, &e, true); err != nil {
				return err
			}
			updated, err := a.ledger.UpdateEntry(cmd.Context(), args[0], e)
			if !keepIfUnsaved(err) {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated entry %s.\n", updated.ID)
			return err
		}),
	}
	flags = bindEntryFlags(cmd)
	return cmd
}

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete an entry",
		Args:    cobra.ExactArgs(1),
		RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			err := a.ledger.DeleteEntry(cmd.Context(), args[0])
			if !keepIfUnsaved(err) {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted entry %s.\n", args[0])
			return err
		}),
	}
}
