package models

import "github.com/ukaji3/sheetbatch-go/pkg/sheetbatch/ops"

// Unassigned is the row and column of a cell not yet placed in a row.
const Unassigned = -1

// Style holds the formatting attributes of a cell.
type Style struct {
	// FontSize is the font size in points.
	FontSize int `json:"fontSize"`
	// TextColour is the font colour.
	TextColour Colour `json:"textColour"`
	// CellColour is the background colour.
	CellColour Colour `json:"cellColour"`
	// Bold, Italic and Strikethrough toggle the font decorations.
	Bold          bool `json:"bold"`
	Italic        bool `json:"italic"`
	Strikethrough bool `json:"strikethrough"`
	// Length is the number of columns the cell spans (at least 1).
	Length int `json:"length"`
	// Alignment is the horizontal text alignment.
	Alignment Alignment `json:"alignment"`
	// DateTime is a date/time display pattern; empty means none.
	DateTime string `json:"datetime,omitempty"`
	// Checkbox renders the cell as a checkbox.
	Checkbox bool `json:"checkbox"`
}

// DefaultStyle returns the unstyled baseline: 10pt black text on white,
// left aligned, spanning one column.
func DefaultStyle() Style {
	return Style{
		FontSize:   10,
		TextColour: Black,
		CellColour: White,
		Length:     1,
		Alignment:  Left,
	}
}

// Cell is a single styled grid entry. Its coordinates are assigned by
// the Row that contains it. Cell is comparable: two cells are equal
// when every attribute, coordinates included, matches.
type Cell struct {
	text    string
	sheetID int64
	row     int
	column  int
	style   Style
}

// NewCell creates an unplaced cell holding the escaped form of text.
func NewCell(text string, style Style) (Cell, error) {
	if style.Length < 1 {
		return Cell{}, &ValidationError{Field: "length", Value: style.Length}
	}
	return Cell{
		text:   EscapeText(text),
		row:    Unassigned,
		column: Unassigned,
		style:  style,
	}, nil
}

// Text creates an unplaced, unstyled cell.
func Text(text string) Cell {
	c, _ := NewCell(text, DefaultStyle())
	return c
}

// filler returns the empty span-1 cell backing a column of a merge.
func filler(sheetID int64, row, column int) Cell {
	c := Text("")
	c.sheetID = sheetID
	c.row = row
	c.column = column
	return c
}

// Text returns the escaped text.
func (c Cell) Text() string { return c.text }

// SheetID returns the id of the sheet the cell belongs to.
func (c Cell) SheetID() int64 { return c.sheetID }

// Row returns the 0-based row index, or Unassigned.
func (c Cell) Row() int { return c.row }

// Column returns the 0-based column index, or Unassigned.
func (c Cell) Column() int { return c.column }

// Style returns the formatting attributes.
func (c Cell) Style() Style { return c.style }

// Length returns the number of columns the cell spans.
func (c Cell) Length() int { return c.style.Length }

// Equal reports whether every attribute of c and o matches.
func (c Cell) Equal(o Cell) bool {
	return c == o
}

// CompareCell compares c against an arbitrary value, which must be a
// Cell or *Cell.
func CompareCell(c Cell, other any) (bool, error) {
	switch o := other.(type) {
	case Cell:
		return c.Equal(o), nil
	case *Cell:
		if o == nil {
			return false, &EqualityTypeError{Got: other}
		}
		return c.Equal(*o), nil
	default:
		return false, &EqualityTypeError{Got: other}
	}
}

// IsDefault reports whether the cell carries no styling, i.e. equals a
// default-styled cell with the same text and coordinates.
func (c Cell) IsDefault() bool {
	d := c
	d.style = DefaultStyle()
	return c.Equal(d)
}

// Range returns the single-cell range at the cell's coordinates.
func (c Cell) Range() ops.GridRange {
	return ops.CellRange(c.sheetID, c.row, c.column)
}

// Operations returns the requests describing the cell's formatting, in
// order: merge, date/time format, checkbox, style. Unstyled cells yield
// none.
func (c Cell) Operations() ([]ops.Operation, error) {
	if c.IsDefault() {
		return nil, nil
	}

	style, err := c.styleOperation()
	if err != nil {
		return nil, err
	}

	var ret []ops.Operation
	if c.style.Length > 1 {
		r := c.Range()
		r.EndColumn = c.column + c.style.Length
		ret = append(ret, ops.MergeCells{Range: r})
	}
	if c.style.DateTime != "" {
		ret = append(ret, ops.DateTimeFormat{Range: c.Range(), Pattern: c.style.DateTime})
	}
	if c.style.Checkbox {
		ret = append(ret, ops.Checkbox{Range: c.Range()})
	}
	ret = append(ret, style)
	return ret, nil
}

func (c Cell) styleOperation() (ops.CellStyle, error) {
	background, err := LookupColour(c.style.CellColour)
	if err != nil {
		return ops.CellStyle{}, err
	}
	foreground, err := LookupColour(c.style.TextColour)
	if err != nil {
		return ops.CellStyle{}, err
	}
	alignment, err := LookupAlignment(c.style.Alignment)
	if err != nil {
		return ops.CellStyle{}, err
	}
	return ops.CellStyle{
		Range:         c.Range(),
		Background:    background.Normalized(),
		Foreground:    foreground.Normalized(),
		FontSize:      c.style.FontSize,
		Bold:          c.style.Bold,
		Italic:        c.style.Italic,
		Strikethrough: c.style.Strikethrough,
		Alignment:     alignment,
	}, nil
}
