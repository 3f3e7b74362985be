package cmd

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/contractor-time-tracker/internal/filter"
	"github.com/Tiliavir/contractor-time-tracker/internal/invoice"
	"github.com/Tiliavir/contractor-time-tracker/internal/model"
	"github.com/Tiliavir/contractor-time-tracker/internal/money"
	"github.com/Tiliavir/contractor-time-tracker/internal/render"
)

type invoiceFlags struct {
	filters       *filterFlags
	selectIDs     []string
	allFiltered   bool
	number        string
	client        string
	clientAddress string
	issue         string
	due           string
	terms         string
	notes         string
	rates         []string
	outDir        string
	preview       bool
}

func newInvoiceCmd() *cobra.Command {
	f := &invoiceFlags{}
	cmd := &cobra.Command{
		Use:   "invoice",
		Short: "Build a 1099 invoice PDF from selected entries",
		Long: `Invoice bills the selected entries at the given hourly rates plus mileage,
per diem and other expenses. Rates not given with --rate come from the last
invoice, then from the profile defaults. No tax is withheld or computed.`,
		Example: `  ctt invoice --select 0197...,0197... --client "Acme Builders" --rate standard=50
  ctt invoice --all-filtered --range month --project "Elm St" --number 2025-007 --terms "Net 30"`,
		Args: cobra.NoArgs,
		RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			return runInvoice(cmd, a, f)
		}),
	}
	f.filters = bindFilterFlags(cmd, filter.RangeAll)
	fs := cmd.Flags()
	fs.StringSliceVar(&f.selectIDs, "select", nil, "Entry ids to invoice (comma separated)")
	fs.BoolVar(&f.allFiltered, "all-filtered", false, "Invoice every entry matching the range and project filters")
	fs.StringVar(&f.number, "number", "", "Invoice number")
	fs.StringVar(&f.client, "client", "", "Client name (default from profile)")
	fs.StringVar(&f.clientAddress, "client-address", "", "Client address (default from profile)")
	fs.StringVar(&f.issue, "issue", "", "Issue date (YYYY-MM-DD, default today)")
	fs.StringVar(&f.due, "due", "", "Due date (YYYY-MM-DD)")
	fs.StringVar(&f.terms, "terms", "", "Payment terms (default from the last invoice)")
	fs.StringVar(&f.notes, "notes", "", "Notes printed on the invoice")
	fs.StringArrayVar(&f.rates, "rate", nil, "Hourly rate as category=amount, repeatable")
	fs.StringVar(&f.outDir, "out", ".", "Directory the PDF is written to")
	fs.BoolVar(&f.preview, "preview", false, "Print the line items without writing a PDF")
	cmd.MarkFlagsMutuallyExclusive("select", "all-filtered")
	return cmd
}

func runInvoice(cmd *cobra.Command, a *app, f *invoiceFlags) error {
	selected, err := f.selection(cmd, a)
	if err != nil {
		return err
	}
	overrides, err := parseRates(f.rates)
	if err != nil {
		return err
	}

	profile := a.ledger.Profile()
	memo := a.ledger.Memo()
	draft := model.InvoiceDraft{
		Number:        f.number,
		ClientName:    firstNonEmpty(f.client, profile.DefaultClient),
		ClientAddress: firstNonEmpty(f.clientAddress, profile.ClientAddress),
		IssueDate:     firstNonEmpty(f.issue, today(a)),
		DueDate:       f.due,
		PaymentTerms:  firstNonEmpty(f.terms, memo.PaymentTerms),
		Notes:         f.notes,
		Rates:         a.ledger.DraftRates(overrides),
	}
	for _, e := range selected {
		draft.EntryIDs = append(draft.EntryIDs, e.ID)
	}

	inv := invoice.Build(selected, draft.Rates, a.cfg.MileageRate)
	if err := invoice.Validate(draft, selected, inv); err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	printInvoice(w, paletteFor(a.ledger.Theme()), inv)
	if f.preview {
		return nil
	}

	path := filepath.Join(f.outDir, render.InvoiceFilename(draft.Number, a.now()))
	err = writeFile(path, func(out io.Writer) error {
		return render.WriteInvoicePDF(out, render.InvoiceData{
			Entries: selected,
			Profile: profile,
			Draft:   draft,
			Invoice: inv,
			Issued:  a.now(),
		})
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Wrote %s.\n", path)
	return a.ledger.RememberInvoice(cmd.Context(), draft)
}

func (f *invoiceFlags) selection(cmd *cobra.Command, a *app) ([]model.Entry, error) {
	switch {
	case len(f.selectIDs) > 0:
		return a.ledger.Select(f.selectIDs)
	case f.allFiltered:
		entries, _, err := f.filters.apply(cmd, a)
		return entries, err
	}
	return nil, fmt.Errorf("%w (use --select or --all-filtered)", invoice.ErrEmptySelection)
}

func printInvoice(w io.Writer, pal palette, inv invoice.Invoice) {
	rows := make([][]string, 0, len(inv.LineItems)+3)
	lines := func(items []invoice.LineItem) {
		for _, li := range items {
			qty, rate := li.Figures()
			rows = append(rows, []string{li.Description, qty, rate, money.Format(li.Amount)})
		}
	}
	lines(inv.Labor())
	rows = append(rows, []string{"Labor Subtotal", "", "", money.Format(inv.LaborTotal)})
	lines(inv.Reimbursements())
	rows = append(rows,
		[]string{"Reimbursements", "", "", money.Format(inv.ReimbursementsTotal)},
		[]string{"TOTAL DUE", "", "", money.Format(inv.GrandTotal)},
	)
	fmt.Fprintln(w, pal.table([]string{"Description", "Quantity", "Rate", "Amount"}, rows, 1, 2, 3))
	fmt.Fprintln(w, pal.dim(invoice.Disclaimer))
}

func firstNonEmpty(ss ...string) string {
	for _, s := range ss {
		if s != "" {
			return s
		}
	}
	return ""
}
