package render

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/shopspring/decimal"

	"github.com/Tiliavir/contractor-time-tracker/internal/model"
)

// WriteCSV writes a metadata block, a blank line, the column header and one
// row per entry in the order given.
func WriteCSV(w io.Writer, entries []model.Entry, profile model.ContractorProfile, mileageRate decimal.Decimal, generated string) error {
	cw := csv.NewWriter(w)
	for _, kv := range metadata(profile, mileageRate, generated) {
		if err := cw.Write(kv[:]); err != nil {
			return fmt.Errorf("writing csv metadata: %w", err)
		}
	}
	if err := cw.Write(nil); err != nil {
		return fmt.Errorf("writing csv metadata: %w", err)
	}
	if err := cw.Write(Columns()); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	for _, e := range entries {
		row := entryRow(e, mileageRate)
		record := make([]string, len(row))
		for i, c := range row {
			record[i] = c.text
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing csv row %s: %w", e.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
