package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/contractor-time-tracker/internal/model"
	"github.com/Tiliavir/contractor-time-tracker/internal/money"
)

func newProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or change the contractor profile",
	}
	cmd.AddCommand(newProfileShowCmd(), newProfileSetCmd())
	return cmd
}

func newProfileShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the contractor profile",
		Args:  cobra.NoArgs,
		RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			printProfile(cmd.OutOrStdout(), paletteFor(a.ledger.Theme()), a.ledger.Profile())
			return nil
		}),
	}
}

func printProfile(w io.Writer, pal palette, p model.ContractorProfile) {
	rows := [][]string{
		{"Name", p.Name},
		{"Business", p.BusinessName},
		{"Email", p.Email},
		{"Phone", p.Phone},
		{"Address", p.Address},
		{"Default client", p.DefaultClient},
		{"Client address", p.ClientAddress},
	}
	for _, c := range model.HourCategories {
		if p.DefaultRates.Has(c) {
			rows = append(rows, []string{c.Label() + " rate", money.Rate(p.DefaultRates.Rate(c)) + "/hr"})
		}
	}
	fmt.Fprintln(w, pal.table([]string{"Profile", ""}, rows))
}

func newProfileSetCmd() *cobra.Command {
	var (
		fields = map[string]*string{}
		rates  []string
	)
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change profile fields; only the given flags are updated",
		Example: `  ctt profile set --name "Sam Rivera" --business "Rivera Concrete LLC"
  ctt profile set --rate standard=50 --rate overtime=75`,
		Args: cobra.NoArgs,
		RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			p := a.ledger.Profile()
			targets := map[string]*string{
				"name":           &p.Name,
				"business":       &p.BusinessName,
				"email":          &p.Email,
				"phone":          &p.Phone,
				"address":        &p.Address,
				"client":         &p.DefaultClient,
				"client-address": &p.ClientAddress,
			}
			for name, dst := range targets {
				if cmd.Flags().Changed(name) {
					*dst = *fields[name]
				}
			}
			if len(rates) > 0 {
				overrides, err := parseRates(rates)
				if err != nil {
					return err
				}
				p.DefaultRates = overrides.Merge(p.DefaultRates)
			}
			err := a.ledger.SetProfile(cmd.Context(), p)
			if !keepIfUnsaved(err) {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Profile updated.")
			return err
		}),
	}
	fs := cmd.Flags()
	for name, usage := range map[string]string{
		"name":           "Contractor name",
		"business":       "Business name",
		"email":          "Email address",
		"phone":          "Phone number",
		"address":        "Postal address",
		"client":         "Default client for invoices",
		"client-address": "Default client address",
	} {
		fields[name] = fs.String(name, "", usage)
	}
	fs.StringArrayVar(&rates, "rate", nil, "Default hourly rate as category=amount, repeatable")
	return cmd
}
