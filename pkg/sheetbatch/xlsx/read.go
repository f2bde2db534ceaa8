package xlsx

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"github.com/xuri/excelize/v2"
)

// ReadColumn returns the values of one column of the named worksheet,
// from the 1-based row fromRow down to the last non-empty value. Empty
// cells in between are returned as "".
func (w *Workbook) ReadColumn(ctx context.Context, spreadsheetID, sheet, column string, fromRow int) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	col, err := excelize.ColumnNameToNumber(column)
	if err != nil {
		return nil, err
	}
	if fromRow < 1 {
		return nil, fmt.Errorf("invalid start row %d", fromRow)
	}

	rows, err := w.file.GetRows(sheet)
	if err != nil {
		return nil, err
	}

	var values []string
	last := -1
	for rowIdx := fromRow - 1; rowIdx < len(rows); rowIdx++ {
		row := rows[rowIdx]
		value := ""
		if col <= len(row) {
			value = row[col-1]
		}
		values = append(values, value)
		if value != "" {
			last = len(values) - 1
		}
	}
	values = values[:last+1]

	w.logger.Debug("read column", "sheet", sheet, "column", column, "values", len(values))
	return values, nil
}

// parseValue converts pasted text to the value stored in the cell.
// Returns int64 for integers, float64 for decimals, bool for TRUE or
// FALSE, or the original string.
func parseValue(s string) interface{} {
	// Try integer first
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	// Try float
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
		return f
	}
	switch s {
	case "TRUE":
		return true
	case "FALSE":
		return false
	}
	// Return as string
	return s
}
