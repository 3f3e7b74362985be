package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/contractor-time-tracker/internal/model"
)

func newCategoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "category",
		Short: "List or add expense categories",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List expense categories",
			Args:  cobra.NoArgs,
			RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
				for _, c := range a.ledger.Categories() {
					fmt.Fprintln(cmd.OutOrStdout(), c)
				}
				return nil
			}),
		},
		&cobra.Command{
			Use:   "add <label>",
			Short: "Add an expense category",
			Args:  cobra.ExactArgs(1),
			RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
				added, err := a.ledger.AddCategory(cmd.Context(), args[0])
				if !keepIfUnsaved(err) {
					return err
				}
				if added {
					fmt.Fprintf(cmd.OutOrStdout(), "Added category %q.\n", args[0])
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "Category %q already exists.\n", args[0])
				}
				return err
			}),
		},
	)
	return cmd
}

func newThemeCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "theme [light|dark]",
		Short:     "Show or set the display theme",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{string(model.ThemeLight), string(model.ThemeDark)},
		RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			if len(args) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), a.ledger.Theme())
				return nil
			}
			theme, err := model.ParseTheme(args[0])
			if err != nil {
				return err
			}
			err = a.ledger.SetTheme(cmd.Context(), theme)
			if !keepIfUnsaved(err) {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Theme set to %s.\n", theme)
			return err
		}),
	}
}
