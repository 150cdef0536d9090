// Package fetcher reads the dealer roster workbook into raw rows for the
// importer to validate and clean.
package fetcher

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

// ReadSheet opens an XLSX workbook and returns every row of the named
// sheet as a string slice. The roster sheets have no header row, so rows
// are returned as-is.
func ReadSheet(path, sheetName string) ([][]string, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "xlsx: open %s", path)
	}

	sheet, ok := f.Sheet[sheetName]
	if !ok {
		return nil, eris.Errorf("xlsx: sheet %q not found in %s", sheetName, path)
	}

	rows := make([][]string, 0, len(sheet.Rows))
	for _, row := range sheet.Rows {
		cells := make([]string, len(row.Cells))
		for j, cell := range row.Cells {
			cells[j] = cell.String()
		}
		rows = append(rows, cells)
	}

	return rows, nil
}

// PadRow right-pads cells with empty strings to width. XLSX omits
// trailing empty cells, so short rows are normal; a row wider than the
// schema is a layout mismatch the caller should reject.
func PadRow(cells []string, width int) ([]string, error) {
	if len(cells) > width {
		return nil, eris.Errorf("xlsx: row has %d cells, schema allows %d", len(cells), width)
	}
	if len(cells) == width {
		return cells, nil
	}
	padded := make([]string, width)
	copy(padded, cells)
	return padded, nil
}
