// Package ops defines the update operations a compiled spreadsheet model
// is made of. Each operation renders itself in the Google Sheets
// batchUpdate request shape.
package ops

import (
	"encoding/json"
	"strings"
)

// Kind identifies the variant of an Operation.
type Kind string

const (
	// KindMergeCells merges a range into one cell.
	KindMergeCells Kind = "mergeCells"
	// KindUnmergeCells splits every merge inside a range.
	KindUnmergeCells Kind = "unmergeCells"
	// KindCellStyle sets colours, font and alignment on a range.
	KindCellStyle Kind = "cellStyle"
	// KindClearFormat resets the user entered format of a range.
	KindClearFormat Kind = "clearFormat"
	// KindCheckbox turns a range into checkboxes.
	KindCheckbox Kind = "checkbox"
	// KindDateTimeFormat sets a date/time display pattern on a range.
	KindDateTimeFormat Kind = "dateTimeFormat"
	// KindFreezeRows pins the leading rows of a sheet.
	KindFreezeRows Kind = "freezeRows"
	// KindUnfreeze removes frozen rows and columns from a sheet.
	KindUnfreeze Kind = "unfreeze"
	// KindRowValues writes one delimited line into a row.
	KindRowValues Kind = "rowValues"
)

// Operation is one atomic instruction of a Batch.
type Operation interface {
	json.Marshaler
	Kind() Kind
}

// Color is an RGBA colour with every channel in [0, 1].
type Color struct {
	Red   float64 `json:"red"`
	Green float64 `json:"green"`
	Blue  float64 `json:"blue"`
	Alpha float64 `json:"alpha"`
}

// GridRange is a half-open rectangle of a sheet. Zero end indices leave
// that side unbounded, so GridRange{SheetID: id} covers the whole sheet.
type GridRange struct {
	SheetID     int64 `json:"sheetId"`
	StartRow    int   `json:"startRowIndex,omitempty"`
	EndRow      int   `json:"endRowIndex,omitempty"`
	StartColumn int   `json:"startColumnIndex,omitempty"`
	EndColumn   int   `json:"endColumnIndex,omitempty"`
}

// CellRange returns the range covering the single cell at row, column.
func CellRange(sheetID int64, row, column int) GridRange {
	return GridRange{
		SheetID:     sheetID,
		StartRow:    row,
		EndRow:      row + 1,
		StartColumn: column,
		EndColumn:   column + 1,
	}
}

// Whole reports whether the range covers its entire sheet.
func (g GridRange) Whole() bool {
	return g.EndRow == 0 && g.EndColumn == 0
}

// MergeCells merges Range into one cell.
type MergeCells struct {
	Range GridRange
}

func (MergeCells) Kind() Kind { return KindMergeCells }

func (o MergeCells) MarshalJSON() ([]byte, error) {
	return wrap("mergeCells", struct {
		Range     GridRange `json:"range"`
		MergeType string    `json:"mergeType"`
	}{o.Range, "MERGE_ALL"})
}

// UnmergeCells splits every merged region inside Range.
type UnmergeCells struct {
	Range GridRange
}

func (UnmergeCells) Kind() Kind { return KindUnmergeCells }

func (o UnmergeCells) MarshalJSON() ([]byte, error) {
	return wrap("unmergeCells", struct {
		Range GridRange `json:"range"`
	}{o.Range})
}

// CellStyle sets the background, text format and horizontal alignment
// of every cell in Range.
type CellStyle struct {
	Range         GridRange
	Background    Color
	Foreground    Color
	FontSize      int
	Bold          bool
	Italic        bool
	Strikethrough bool
	// Alignment is a Sheets horizontal alignment keyword (LEFT, CENTER, RIGHT).
	Alignment string
}

func (CellStyle) Kind() Kind { return KindCellStyle }

type textFormat struct {
	ForegroundColor Color `json:"foregroundColor"`
	FontSize        int   `json:"fontSize"`
	Bold            bool  `json:"bold"`
	Italic          bool  `json:"italic"`
	Strikethrough   bool  `json:"strikethrough"`
}

type numberFormat struct {
	Type    string `json:"type"`
	Pattern string `json:"pattern"`
}

type cellFormat struct {
	BackgroundColor     *Color        `json:"backgroundColor,omitempty"`
	HorizontalAlignment string        `json:"horizontalAlignment,omitempty"`
	TextFormat          *textFormat   `json:"textFormat,omitempty"`
	NumberFormat        *numberFormat `json:"numberFormat,omitempty"`
}

type repeatCell struct {
	Range GridRange `json:"range"`
	Cell  struct {
		UserEnteredFormat cellFormat `json:"userEnteredFormat"`
	} `json:"cell"`
	Fields string `json:"fields"`
}

func (o CellStyle) MarshalJSON() ([]byte, error) {
	var r repeatCell
	r.Range = o.Range
	r.Cell.UserEnteredFormat = cellFormat{
		BackgroundColor:     &o.Background,
		HorizontalAlignment: o.Alignment,
		TextFormat: &textFormat{
			ForegroundColor: o.Foreground,
			FontSize:        o.FontSize,
			Bold:            o.Bold,
			Italic:          o.Italic,
			Strikethrough:   o.Strikethrough,
		},
	}
	r.Fields = "userEnteredFormat(backgroundColor,horizontalAlignment,textFormat)"
	return wrap("repeatCell", r)
}

// ClearFormat resets the user entered format of Range.
type ClearFormat struct {
	Range GridRange
}

func (ClearFormat) Kind() Kind { return KindClearFormat }

func (o ClearFormat) MarshalJSON() ([]byte, error) {
	var r repeatCell
	r.Range = o.Range
	r.Fields = "userEnteredFormat"
	return wrap("repeatCell", r)
}

// Checkbox applies a boolean data validation rule to Range.
type Checkbox struct {
	Range GridRange
}

func (Checkbox) Kind() Kind { return KindCheckbox }

func (o Checkbox) MarshalJSON() ([]byte, error) {
	type condition struct {
		Type string `json:"type"`
	}
	type rule struct {
		Condition condition `json:"condition"`
	}
	return wrap("setDataValidation", struct {
		Range GridRange `json:"range"`
		Rule  rule      `json:"rule"`
	}{o.Range, rule{condition{"BOOLEAN"}}})
}

// DateTimeFormat displays Range with a date/time Pattern such as
// "ddd h:mm AM/PM".
type DateTimeFormat struct {
	Range   GridRange
	Pattern string
}

func (DateTimeFormat) Kind() Kind { return KindDateTimeFormat }

func (o DateTimeFormat) MarshalJSON() ([]byte, error) {
	var r repeatCell
	r.Range = o.Range
	r.Cell.UserEnteredFormat.NumberFormat = &numberFormat{
		Type:    "DATE_TIME",
		Pattern: o.Pattern,
	}
	r.Fields = "userEnteredFormat.numberFormat"
	return wrap("repeatCell", r)
}

type gridProperties struct {
	FrozenRowCount    int  `json:"frozenRowCount"`
	FrozenColumnCount *int `json:"frozenColumnCount,omitempty"`
}

type sheetProperties struct {
	SheetID        int64          `json:"sheetId"`
	GridProperties gridProperties `json:"gridProperties"`
}

// FreezeRows pins the first Rows rows of a sheet.
type FreezeRows struct {
	SheetID int64
	Rows    int
}

func (FreezeRows) Kind() Kind { return KindFreezeRows }

func (o FreezeRows) MarshalJSON() ([]byte, error) {
	return wrap("updateSheetProperties", struct {
		Properties sheetProperties `json:"properties"`
		Fields     string          `json:"fields"`
	}{
		sheetProperties{o.SheetID, gridProperties{FrozenRowCount: o.Rows}},
		"gridProperties.frozenRowCount",
	})
}

// Unfreeze clears the frozen rows and columns of a sheet.
type Unfreeze struct {
	SheetID int64
}

func (Unfreeze) Kind() Kind { return KindUnfreeze }

func (o Unfreeze) MarshalJSON() ([]byte, error) {
	zero := 0
	return wrap("updateSheetProperties", struct {
		Properties sheetProperties `json:"properties"`
		Fields     string          `json:"fields"`
	}{
		sheetProperties{o.SheetID, gridProperties{FrozenColumnCount: &zero}},
		"gridProperties.frozenRowCount,gridProperties.frozenColumnCount",
	})
}

// RowValues pastes one delimited line into row Row of a sheet, starting
// at the first column. Data holds the escaped line as produced by the
// model; CSV returns what the remote side parses.
type RowValues struct {
	SheetID   int64
	Row       int
	Data      string
	Delimiter string
}

func (RowValues) Kind() Kind { return KindRowValues }

// CSV decodes the escaped quotes of Data, giving a plain delimited line
// with CSV quoting.
func (o RowValues) CSV() string {
	return strings.ReplaceAll(o.Data, `\"`, `"`)
}

func (o RowValues) MarshalJSON() ([]byte, error) {
	type coordinate struct {
		SheetID     int64 `json:"sheetId"`
		RowIndex    int   `json:"rowIndex"`
		ColumnIndex int   `json:"columnIndex"`
	}
	delimiter := o.Delimiter
	if delimiter == "" {
		delimiter = ","
	}
	return wrap("pasteData", struct {
		Coordinate coordinate `json:"coordinate"`
		Data       string     `json:"data"`
		Type       string     `json:"type"`
		Delimiter  string     `json:"delimiter"`
	}{coordinate{o.SheetID, o.Row, 0}, o.CSV(), "PASTE_NORMAL", delimiter})
}

// wrap renders body under its request key, e.g. {"mergeCells": {...}}.
func wrap(key string, body any) ([]byte, error) {
	return json.Marshal(map[string]any{key: body})
}
