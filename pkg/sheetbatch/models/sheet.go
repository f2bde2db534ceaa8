package models

import (
	"slices"

	"github.com/ukaji3/sheetbatch-go/pkg/sheetbatch/ops"
)

// HeaderRows is the number of frozen rows at the top of every sheet.
const HeaderRows = 1

// Sheet is a frozen header row followed by data rows. The header sits
// at row index 0 and data row k at index k+1.
type Sheet struct {
	id     int64
	name   string
	header *Row
	rows   []*Row
}

// NewSheet creates a sheet owning header and rows. The header is moved
// to row 0 of this sheet and rows are appended in order.
func NewSheet(sheetID int64, header *Row, rows ...*Row) (*Sheet, error) {
	if header == nil {
		header = &Row{}
	}
	s := &Sheet{id: sheetID, header: header}
	s.header.SetSheetID(sheetID)
	s.header.SetRow(0)
	for _, row := range rows {
		if err := s.AppendRow(row); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// ID returns the sheet id.
func (s *Sheet) ID() int64 { return s.id }

// Name returns the sheet title, if one was set.
func (s *Sheet) Name() string { return s.name }

// SetName sets the sheet title used to address the sheet by name.
func (s *Sheet) SetName(name string) { s.name = name }

// Header returns the frozen header row.
func (s *Sheet) Header() *Row { return s.header }

// Len returns the number of data rows.
func (s *Sheet) Len() int { return len(s.rows) }

// Row returns data row i (0-based, header excluded).
func (s *Sheet) Row(i int) *Row { return s.rows[i] }

// Rows returns the data rows in order.
func (s *Sheet) Rows() []*Row { return slices.Clone(s.rows) }

// InsertRow places a fresh row built from the real cells of row at data
// position at, i.e. row index at+1. Rows at or after at move down by one.
func (s *Sheet) InsertRow(row *Row, at int) error {
	if at < 0 || at > len(s.rows) {
		return &PositionError{Index: at, Len: len(s.rows)}
	}

	fresh := &Row{sheetID: s.id, row: at + HeaderRows}
	if row != nil {
		for _, c := range row.RealCells() {
			if err := fresh.AppendCell(c); err != nil {
				return err
			}
		}
	}

	for _, r := range s.rows[at:] {
		r.SetRow(r.row + 1)
	}
	s.rows = slices.Insert(s.rows, at, fresh)
	return nil
}

// AppendRow places row after the last data row.
func (s *Sheet) AppendRow(row *Row) error {
	return s.InsertRow(row, len(s.rows))
}

// PrependRow places row right below the header.
func (s *Sheet) PrependRow(row *Row) error {
	return s.InsertRow(row, 0)
}

// Operations returns the freeze request, the header requests and the
// requests of each data row in order.
func (s *Sheet) Operations() ([]ops.Operation, error) {
	ret := []ops.Operation{ops.FreezeRows{SheetID: s.id, Rows: HeaderRows}}

	headerOps, err := s.header.Operations()
	if err != nil {
		return nil, err
	}
	ret = append(ret, headerOps...)

	for _, r := range s.rows {
		rowOps, err := r.Operations()
		if err != nil {
			return nil, err
		}
		ret = append(ret, rowOps...)
	}
	return ret, nil
}
