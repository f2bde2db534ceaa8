package models

import (
	"slices"
	"strings"

	"github.com/ukaji3/sheetbatch-go/pkg/sheetbatch/ops"
)

// Delimiter separates the fields of a row's delimited line.
const Delimiter = ","

// slot is one column of a row. Filler slots back the trailing columns
// of a merged cell.
type slot struct {
	cell   Cell
	filler bool
}

// Row is an ordered sequence of cells forming one grid line. Every slot
// occupies exactly one column, so the column of a cell is its position
// and equals the sum of the span lengths of the real cells before it.
type Row struct {
	sheetID int64
	row     int
	slots   []slot
}

// NewRow creates an unplaced row and appends cells to it in order.
func NewRow(cells ...Cell) (*Row, error) {
	r := &Row{row: Unassigned}
	for _, c := range cells {
		if err := r.AppendCell(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// SheetID returns the id of the sheet the row belongs to.
func (r *Row) SheetID() int64 { return r.sheetID }

// Index returns the 0-based row index, or Unassigned.
func (r *Row) Index() int { return r.row }

// Len returns the number of occupied columns, filler cells included.
func (r *Row) Len() int { return len(r.slots) }

// Cell returns the cell at column i.
func (r *Row) Cell(i int) Cell { return r.slots[i].cell }

// IsFiller reports whether column i holds a synthetic merge filler.
func (r *Row) IsFiller(i int) bool { return r.slots[i].filler }

// Cells returns every cell in column order, filler cells included.
func (r *Row) Cells() []Cell {
	cells := make([]Cell, len(r.slots))
	for i, s := range r.slots {
		cells[i] = s.cell
	}
	return cells
}

// RealCells returns the cells that were inserted by callers, in column
// order.
func (r *Row) RealCells() []Cell {
	var cells []Cell
	for _, s := range r.slots {
		if !s.filler {
			cells = append(cells, s.cell)
		}
	}
	return cells
}

// InsertCell places cell at column at. The cell takes the row's sheet
// and row index; every cell at or after at moves right by the inserted
// cell's length, and length-1 filler cells are added right after it.
func (r *Row) InsertCell(cell Cell, at int) error {
	if cell.style.Length < 1 {
		return &ValidationError{Field: "length", Value: cell.style.Length}
	}
	if at < 0 || at > len(r.slots) || (at < len(r.slots) && r.slots[at].filler) {
		return &PositionError{Index: at, Len: len(r.slots)}
	}

	cell.sheetID = r.sheetID
	cell.row = r.row
	cell.column = at

	inserted := make([]slot, cell.style.Length)
	inserted[0] = slot{cell: cell}
	for i := 1; i < cell.style.Length; i++ {
		inserted[i] = slot{cell: filler(r.sheetID, r.row, at+i), filler: true}
	}
	r.slots = slices.Insert(r.slots, at, inserted...)
	r.reindex(at + len(inserted))
	return nil
}

// AppendCell places cell after the last column.
func (r *Row) AppendCell(cell Cell) error {
	return r.InsertCell(cell, len(r.slots))
}

// PrependCell places cell at the first column.
func (r *Row) PrependCell(cell Cell) error {
	return r.InsertCell(cell, 0)
}

// reindex recomputes the column of every slot from position from on.
func (r *Row) reindex(from int) {
	for i := from; i < len(r.slots); i++ {
		r.slots[i].cell.column = i
	}
}

// SetRow moves the row, and every cell in it, to row index row.
func (r *Row) SetRow(row int) {
	for i := range r.slots {
		r.slots[i].cell.row = row
	}
	r.row = row
}

// SetSheetID moves the row, and every cell in it, to sheet sheetID.
func (r *Row) SetSheetID(sheetID int64) {
	for i := range r.slots {
		r.slots[i].cell.sheetID = sheetID
	}
	r.sheetID = sheetID
}

// DelimitedLine joins the escaped text of every cell with Delimiter.
// An empty row gives a single delimiter, i.e. two empty fields.
func (r *Row) DelimitedLine() string {
	if len(r.slots) == 0 {
		return Delimiter
	}
	fields := make([]string, len(r.slots))
	for i, s := range r.slots {
		fields[i] = s.cell.text
	}
	return strings.Join(fields, Delimiter)
}

// Operations returns the row data request followed by the formatting
// requests of each cell in column order.
func (r *Row) Operations() ([]ops.Operation, error) {
	ret := []ops.Operation{ops.RowValues{
		SheetID:   r.sheetID,
		Row:       r.row,
		Data:      r.DelimitedLine(),
		Delimiter: Delimiter,
	}}
	for _, s := range r.slots {
		cellOps, err := s.cell.Operations()
		if err != nil {
			return nil, err
		}
		ret = append(ret, cellOps...)
	}
	return ret, nil
}
