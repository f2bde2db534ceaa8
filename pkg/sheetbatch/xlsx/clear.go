package xlsx

import (
	"context"

	"github.com/ukaji3/sheetbatch-go/pkg/sheetbatch/ops"
	"github.com/xuri/excelize/v2"
)

// ClearSheets resets every bound worksheet among sheetIDs: merges are
// split, data validations removed, panes unfrozen and every used cell
// emptied and unstyled. Unbound ids are ignored.
func (w *Workbook) ClearSheets(ctx context.Context, spreadsheetID string, sheetIDs []int64) error {
	for _, id := range sheetIDs {
		if err := ctx.Err(); err != nil {
			return err
		}
		sheet, ok := w.names[id]
		if !ok {
			continue
		}
		if err := w.clearSheet(sheet); err != nil {
			return err
		}
		w.logger.Debug("clear sheet", "sheet_id", id, "name", sheet)
	}
	return nil
}

func (w *Workbook) clearSheet(sheet string) error {
	if err := w.unmergeAll(sheet); err != nil {
		return err
	}
	if err := w.file.DeleteDataValidation(sheet); err != nil {
		return err
	}
	if err := w.file.SetPanes(sheet, &excelize.Panes{}); err != nil {
		return err
	}
	return w.clearCells(sheet, true)
}

func (w *Workbook) unmergeAll(sheet string) error {
	merged, err := w.file.GetMergeCells(sheet)
	if err != nil {
		return err
	}
	for _, mc := range merged {
		if err := w.file.UnmergeCell(sheet, mc.GetStartAxis(), mc.GetEndAxis()); err != nil {
			return err
		}
	}
	return nil
}

// clearCells resets the style of every used cell and, when values is
// set, empties it too.
func (w *Workbook) clearCells(sheet string, values bool) error {
	g, ok, err := w.usedRange(sheet)
	if err != nil || !ok {
		return err
	}
	top, bottom, err := RangeRefs(g)
	if err != nil {
		return err
	}
	if err := w.file.SetCellStyle(sheet, top, bottom, 0); err != nil {
		return err
	}
	if !values {
		return nil
	}
	for row := g.StartRow; row < g.EndRow; row++ {
		for col := g.StartColumn; col < g.EndColumn; col++ {
			ref, err := excelize.CoordinatesToCellName(col+1, row+1)
			if err != nil {
				return err
			}
			if err := w.file.SetCellValue(sheet, ref, nil); err != nil {
				return err
			}
		}
	}
	return nil
}

// usedRange returns the bounded range covering the worksheet dimension,
// every non-empty value and every merge, or false when there is none.
func (w *Workbook) usedRange(sheet string) (ops.GridRange, bool, error) {
	var bounds []ops.GridRange

	dim, err := w.file.GetSheetDimension(sheet)
	if err != nil {
		return ops.GridRange{}, false, err
	}
	if dim != "" {
		if _, g, err := ParseRange(dim); err == nil {
			bounds = append(bounds, g)
		}
	}

	rows, err := w.file.GetRows(sheet)
	if err != nil {
		return ops.GridRange{}, false, err
	}
	if minRow, maxRow, minCol, maxCol := findDataBounds(rows); minRow >= 0 {
		bounds = append(bounds, ops.GridRange{
			StartRow:    minRow,
			EndRow:      maxRow + 1,
			StartColumn: minCol,
			EndColumn:   maxCol + 1,
		})
	}

	merges, err := w.Merges(sheet)
	if err != nil {
		return ops.GridRange{}, false, err
	}
	bounds = append(bounds, merges...)

	if len(bounds) == 0 {
		return ops.GridRange{}, false, nil
	}
	union := bounds[0]
	for _, g := range bounds[1:] {
		union.StartRow = min(union.StartRow, g.StartRow)
		union.EndRow = max(union.EndRow, g.EndRow)
		union.StartColumn = min(union.StartColumn, g.StartColumn)
		union.EndColumn = max(union.EndColumn, g.EndColumn)
	}
	return union, true, nil
}

// findDataBounds finds the bounding box of non-empty cells.
func findDataBounds(rows [][]string) (minRow, maxRow, minCol, maxCol int) {
	minRow, maxRow = -1, -1
	minCol, maxCol = -1, -1

	for rowIdx, row := range rows {
		for colIdx, cell := range row {
			if cell != "" {
				if minRow < 0 || rowIdx < minRow {
					minRow = rowIdx
				}
				if maxRow < 0 || rowIdx > maxRow {
					maxRow = rowIdx
				}
				if minCol < 0 || colIdx < minCol {
					minCol = colIdx
				}
				if maxCol < 0 || colIdx > maxCol {
					maxCol = colIdx
				}
			}
		}
	}

	return
}
