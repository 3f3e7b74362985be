package render

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/Tiliavir/contractor-time-tracker/internal/model"
)

const xlsxSheet = "Entries"

// WriteXLSX writes the same layout as WriteCSV as a workbook. Numeric
// columns are stored as numbers.
func WriteXLSX(w io.Writer, entries []model.Entry, profile model.ContractorProfile, mileageRate decimal.Decimal, generated string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", xlsxSheet); err != nil {
		return fmt.Errorf("xlsx sheet: %w", err)
	}

	set := func(col, row int, v any) error {
		name, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return err
		}
		return f.SetCellValue(xlsxSheet, name, v)
	}

	row := 1
	for _, kv := range metadata(profile, mileageRate, generated) {
		if err := set(1, row, kv[0]); err != nil {
			return fmt.Errorf("xlsx metadata: %w", err)
		}
		if err := set(2, row, kv[1]); err != nil {
			return fmt.Errorf("xlsx metadata: %w", err)
		}
		row++
	}
	row++

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("xlsx style: %w", err)
	}
	header := Columns()
	for i, h := range header {
		if err := set(i+1, row, h); err != nil {
			return fmt.Errorf("xlsx header: %w", err)
		}
	}
	first, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("xlsx header: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(len(header), row)
	if err != nil {
		return fmt.Errorf("xlsx header: %w", err)
	}
	if err := f.SetCellStyle(xlsxSheet, first, last, bold); err != nil {
		return fmt.Errorf("xlsx header style: %w", err)
	}
	row++

	for _, e := range entries {
		for i, c := range entryRow(e, mileageRate) {
			var v any = c.text
			if c.num != nil {
				v = c.num.InexactFloat64()
			}
			if err := set(i+1, row, v); err != nil {
				return fmt.Errorf("xlsx row %s: %w", e.ID, err)
			}
		}
		row++
	}

	for _, cw := range []struct {
		from, to string
		width    float64
	}{
		{"A", "A", 14}, // date
		{"B", "B", 22}, // project
		{"C", "M", 14}, // hours and amounts
		{"N", "O", 24}, // category, description
		{"P", "P", 48}, // notes
	} {
		if err := f.SetColWidth(xlsxSheet, cw.from, cw.to, cw.width); err != nil {
			return fmt.Errorf("xlsx column width %s: %w", cw.from, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("xlsx write: %w", err)
	}
	return nil
}
