package bsreshape

import (
	"errors"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// ExportSheet is the worksheet name used by ExportXLSX.
const ExportSheet = "BalanceSheet"

// ExportXLSX writes header and rows as a single-sheet Excel workbook.
// Amount cells are stored as numbers, percentage cells keep their text, and
// blank cells are left empty.
func ExportXLSX(w io.Writer, header []string, rows []Row, layout Layout) error {
	if len(header) == 0 {
		return errors.New("no headers to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), ExportSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	headerCells := make([]any, len(header))
	for i, h := range header {
		headerCells[i] = h
	}
	if err := f.SetSheetRow(ExportSheet, "A1", &headerCells); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, row := range rows {
		cells := make([]any, 0, 1+len(row.Values))
		cells = append(cells, row.Label)
		for j, v := range row.Values {
			cells = append(cells, xlsxCell(v, layout.IsPercentage(j)))
		}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(ExportSheet, cell, &cells); err != nil {
			return fmt.Errorf("failed to write row %q: %w", row.Label, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write XLSX: %w", err)
	}
	return nil
}

// xlsxCell converts a formatted cell back to a typed value.
func xlsxCell(v string, percentage bool) any {
	if v == "" {
		return nil
	}
	if percentage {
		return v
	}
	n, err := ParseValue(v)
	if err != nil {
		return v
	}
	return n
}
