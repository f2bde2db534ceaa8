package xlsx

import (
	"context"
	"encoding/csv"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/ukaji3/sheetbatch-go/pkg/sheetbatch/ops"
	"github.com/xuri/excelize/v2"
)

// cellKey addresses one cell of one sheet.
type cellKey struct {
	sheetID int64
	row     int
	column  int
}

// cellFormat is the formatting accumulated for one cell while a batch
// is applied. Style and number format come from separate requests, so
// they are merged before the excelize style is created.
type cellFormat struct {
	style  *ops.CellStyle
	numFmt string
}

// BatchUpdate applies every request of batch to the workbook in order.
func (w *Workbook) BatchUpdate(ctx context.Context, spreadsheetID string, batch *ops.Batch) error {
	formats := make(map[cellKey]*cellFormat)
	var order []cellKey

	format := func(key cellKey) *cellFormat {
		f, ok := formats[key]
		if !ok {
			f = &cellFormat{}
			formats[key] = f
			order = append(order, key)
		}
		return f
	}

	for i, op := range batch.Requests {
		if err := ctx.Err(); err != nil {
			return err
		}

		var err error
		switch o := op.(type) {
		case ops.CellStyle:
			err = eachCell(o.Range, func(key cellKey) {
				style := o
				format(key).style = &style
			})
		case ops.DateTimeFormat:
			err = eachCell(o.Range, func(key cellKey) {
				format(key).numFmt = o.Pattern
			})
		case ops.ClearFormat:
			for key := range formats {
				if key.sheetID == o.Range.SheetID && contains(o.Range, key) {
					delete(formats, key)
				}
			}
			err = w.applySheetOp(op)
		default:
			err = w.applySheetOp(op)
		}
		if err != nil {
			return fmt.Errorf("request %d (%s): %w", i, op.Kind(), err)
		}
	}

	for _, key := range pending(order, formats) {
		if err := w.setFormat(key, formats[key]); err != nil {
			return err
		}
	}

	w.logger.Info("apply batch", "requests", batch.Len(), "formatted_cells", len(formats))
	return nil
}

// applySheetOp applies a request that does not touch cell formats.
func (w *Workbook) applySheetOp(op ops.Operation) error {
	switch o := op.(type) {
	case ops.MergeCells:
		sheet, top, bottom, err := w.refs(o.Range)
		if err != nil {
			return err
		}
		return w.file.MergeCell(sheet, top, bottom)

	case ops.UnmergeCells:
		sheet, err := w.SheetName(o.Range.SheetID)
		if err != nil {
			return err
		}
		if o.Range.Whole() {
			return w.unmergeAll(sheet)
		}
		top, bottom, err := RangeRefs(o.Range)
		if err != nil {
			return err
		}
		return w.file.UnmergeCell(sheet, top, bottom)

	case ops.ClearFormat:
		sheet, err := w.SheetName(o.Range.SheetID)
		if err != nil {
			return err
		}
		if o.Range.Whole() {
			return w.clearCells(sheet, false)
		}
		top, bottom, err := RangeRefs(o.Range)
		if err != nil {
			return err
		}
		return w.file.SetCellStyle(sheet, top, bottom, 0)

	case ops.Checkbox:
		sheet, top, bottom, err := w.refs(o.Range)
		if err != nil {
			return err
		}
		dv := excelize.NewDataValidation(true)
		dv.Sqref = top + ":" + bottom
		if err := dv.SetDropList([]string{"TRUE", "FALSE"}); err != nil {
			return err
		}
		return w.file.AddDataValidation(sheet, dv)

	case ops.FreezeRows:
		sheet, err := w.SheetName(o.SheetID)
		if err != nil {
			return err
		}
		if o.Rows <= 0 {
			return w.file.SetPanes(sheet, &excelize.Panes{})
		}
		topLeft, err := excelize.CoordinatesToCellName(1, o.Rows+1)
		if err != nil {
			return err
		}
		return w.file.SetPanes(sheet, &excelize.Panes{
			Freeze:      true,
			YSplit:      o.Rows,
			TopLeftCell: topLeft,
			ActivePane:  "bottomLeft",
		})

	case ops.Unfreeze:
		sheet, err := w.SheetName(o.SheetID)
		if err != nil {
			return err
		}
		return w.file.SetPanes(sheet, &excelize.Panes{})

	case ops.RowValues:
		return w.pasteRow(o)
	}
	return fmt.Errorf("unsupported request kind %q", op.Kind())
}

// pasteRow writes the fields of a delimited line across a row,
// starting at the first column.
func (w *Workbook) pasteRow(o ops.RowValues) error {
	sheet, err := w.SheetName(o.SheetID)
	if err != nil {
		return err
	}

	fields, err := splitLine(o.CSV(), o.Delimiter)
	if err != nil {
		return err
	}
	values := make([]interface{}, len(fields))
	formulas := make(map[int]string)
	for i, field := range fields {
		if formula, ok := strings.CutPrefix(field, "="); ok && formula != "" {
			formulas[i] = formula
			continue
		}
		values[i] = parseValue(field)
	}

	start, err := excelize.CoordinatesToCellName(1, o.Row+1)
	if err != nil {
		return err
	}
	if err := w.file.SetSheetRow(sheet, start, &values); err != nil {
		return err
	}

	// Pasted text starting with = is entered as a formula.
	for col, formula := range formulas {
		ref, err := excelize.CoordinatesToCellName(col+1, o.Row+1)
		if err != nil {
			return err
		}
		if err := w.file.SetCellFormula(sheet, ref, formula); err != nil {
			return err
		}
	}
	return nil
}

// splitLine parses one CSV line. Quotes in the middle of a field are
// kept literally.
func splitLine(line, delimiter string) ([]string, error) {
	r := csv.NewReader(strings.NewReader(line))
	if delimiter != "" {
		comma, _ := utf8.DecodeRuneInString(delimiter)
		r.Comma = comma
	}
	r.LazyQuotes = true
	r.FieldsPerRecord = -1

	record, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("parse row data %q: %w", line, err)
	}
	return record, nil
}

func (w *Workbook) setFormat(key cellKey, f *cellFormat) error {
	sheet, err := w.SheetName(key.sheetID)
	if err != nil {
		return err
	}
	ref, err := excelize.CoordinatesToCellName(key.column+1, key.row+1)
	if err != nil {
		return err
	}

	style := &excelize.Style{}
	if s := f.style; s != nil {
		style.Fill = excelize.Fill{
			Type:    "pattern",
			Pattern: 1,
			Color:   []string{hexColor(s.Background)},
		}
		style.Font = &excelize.Font{
			Bold:   s.Bold,
			Italic: s.Italic,
			Strike: s.Strikethrough,
			Size:   float64(s.FontSize),
			Color:  hexColor(s.Foreground),
		}
		style.Alignment = &excelize.Alignment{
			Horizontal: strings.ToLower(s.Alignment),
		}
	}
	if f.numFmt != "" {
		numFmt := f.numFmt
		style.CustomNumFmt = &numFmt
	}

	id, err := w.file.NewStyle(style)
	if err != nil {
		return err
	}
	return w.file.SetCellStyle(sheet, ref, ref, id)
}

// pending returns the keys of order still present in formats, each once
// and in first-seen order. A key cleared and styled again appears twice
// in order.
func pending(order []cellKey, formats map[cellKey]*cellFormat) []cellKey {
	seen := make(map[cellKey]bool, len(formats))
	keys := make([]cellKey, 0, len(formats))
	for _, key := range order {
		if _, ok := formats[key]; !ok || seen[key] {
			continue
		}
		seen[key] = true
		keys = append(keys, key)
	}
	return keys
}

func (w *Workbook) refs(g ops.GridRange) (sheet, top, bottom string, err error) {
	sheet, err = w.SheetName(g.SheetID)
	if err != nil {
		return "", "", "", err
	}
	top, bottom, err = RangeRefs(g)
	return sheet, top, bottom, err
}

// eachCell calls fn for every cell of a bounded range.
func eachCell(g ops.GridRange, fn func(cellKey)) error {
	if g.Whole() {
		return fmt.Errorf("range %+v is not a bounded rectangle", g)
	}
	for row := g.StartRow; row < g.EndRow; row++ {
		for col := g.StartColumn; col < g.EndColumn; col++ {
			fn(cellKey{g.SheetID, row, col})
		}
	}
	return nil
}

func contains(g ops.GridRange, key cellKey) bool {
	if g.Whole() {
		return true
	}
	return key.row >= g.StartRow && key.row < g.EndRow &&
		key.column >= g.StartColumn && key.column < g.EndColumn
}

// hexColor renders a normalised colour as RRGGBB. Alpha is dropped.
func hexColor(c ops.Color) string {
	col := colorful.Color{R: c.Red, G: c.Green, B: c.Blue}.Clamped()
	return strings.ToUpper(strings.TrimPrefix(col.Hex(), "#"))
}
