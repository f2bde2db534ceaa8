package xlsx

import (
	"fmt"
	"strings"

	"github.com/ukaji3/sheetbatch-go/pkg/sheetbatch/ops"
	"github.com/xuri/excelize/v2"
)

// RangeRefs converts a bounded grid range to its top-left and
// bottom-right cell names, e.g. B2 and D2.
func RangeRefs(g ops.GridRange) (string, string, error) {
	if g.Whole() || g.EndRow <= g.StartRow || g.EndColumn <= g.StartColumn {
		return "", "", fmt.Errorf("range %+v is not a bounded rectangle", g)
	}

	top, err := excelize.CoordinatesToCellName(g.StartColumn+1, g.StartRow+1)
	if err != nil {
		return "", "", err
	}
	bottom, err := excelize.CoordinatesToCellName(g.EndColumn, g.EndRow)
	if err != nil {
		return "", "", err
	}
	return top, bottom, nil
}

// ParseRange parses a reference such as 'Sheet'!$A$1:$D$10, A1:D10 or
// a single cell A1 into its sheet name (possibly empty) and a grid range.
func ParseRange(ref string) (string, ops.GridRange, error) {
	var sheet string
	// Split by ! to separate sheet name and range
	if idx := strings.LastIndex(ref, "!"); idx >= 0 {
		sheet = strings.Trim(ref[:idx], "'")
		ref = ref[idx+1:]
	}

	// Remove $ signs
	ref = strings.ReplaceAll(ref, "$", "")

	parts := strings.Split(ref, ":")
	if len(parts) == 1 {
		parts = append(parts, parts[0])
	}
	if len(parts) != 2 {
		return "", ops.GridRange{}, fmt.Errorf("invalid range %q", ref)
	}

	startCol, startRow, err := excelize.CellNameToCoordinates(parts[0])
	if err != nil {
		return "", ops.GridRange{}, err
	}
	endCol, endRow, err := excelize.CellNameToCoordinates(parts[1])
	if err != nil {
		return "", ops.GridRange{}, err
	}

	return sheet, ops.GridRange{
		StartRow:    startRow - 1,
		EndRow:      endRow,
		StartColumn: startCol - 1,
		EndColumn:   endCol,
	}, nil
}

// Merges returns the merged ranges of a worksheet.
func (w *Workbook) Merges(sheet string) ([]ops.GridRange, error) {
	merged, err := w.file.GetMergeCells(sheet)
	if err != nil {
		return nil, err
	}
	ranges := make([]ops.GridRange, 0, len(merged))
	for _, mc := range merged {
		_, g, err := ParseRange(mc.GetStartAxis() + ":" + mc.GetEndAxis())
		if err != nil {
			return nil, err
		}
		ranges = append(ranges, g)
	}
	return ranges, nil
}
