package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/contractor-time-tracker/internal/filter"
	"github.com/Tiliavir/contractor-time-tracker/internal/model"
	"github.com/Tiliavir/contractor-time-tracker/internal/render"
)

func newExportCmd() *cobra.Command {
	var (
		filters *filterFlags
		format  string
		out     string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export entries as CSV, XLSX or JSON",
		Long: `Export writes the filtered entries to --out, or to stdout when --out is
not given. XLSX always goes to a file. A JSON export can be read back with
ctt import.`,
		Args: cobra.NoArgs,
		RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			entries, _, err := filters.apply(cmd, a)
			if err != nil {
				return err
			}
			generated := today(a)

			var write func(io.Writer) error
			switch format {
			case "csv", "":
				write = func(w io.Writer) error {
					return render.WriteCSV(w, entries, a.ledger.Profile(), a.cfg.MileageRate, generated)
				}
			case "xlsx":
				if out == "" {
					out = "contractor_export_" + generated + ".xlsx"
				}
				write = func(w io.Writer) error {
					return render.WriteXLSX(w, entries, a.ledger.Profile(), a.cfg.MileageRate, generated)
				}
			case "json":
				write = func(w io.Writer) error { return writeEntriesJSON(w, entries) }
			default:
				return fmt.Errorf("unknown format %q (want csv, xlsx or json)", format)
			}

			if out == "" {
				return write(cmd.OutOrStdout())
			}
			if err := writeFile(out, write); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d entries to %s.\n", len(entries), out)
			return nil
		}),
	}
	filters = bindFilterFlags(cmd, filter.RangeAll)
	cmd.Flags().StringVar(&format, "format", "csv", "Output format: csv, xlsx, json")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default stdout)")
	return cmd
}

func writeEntriesJSON(w io.Writer, entries []model.Entry) error {
	if entries == nil {
		entries = []model.Entry{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding entries: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.json>",
		Short: "Merge entries from a JSON export",
		Long: `Import reads a JSON array of entries, as written by ctt export --format json.
Entries whose id already exists replace the stored entry; the rest are added.
Unknown expense categories are added to the category list.`,
		Args: cobra.ExactArgs(1),
		RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading import file: %w", err)
			}
			var entries []model.Entry
			if err := json.Unmarshal(data, &entries); err != nil {
				return fmt.Errorf("parsing %s: %w", args[0], err)
			}
			added, replaced, err := a.ledger.ImportEntries(cmd.Context(), entries, a.now())
			if !keepIfUnsaved(err) {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d entries (%d new, %d replaced).\n", added+replaced, added, replaced)
			return err
		}),
	}
}
