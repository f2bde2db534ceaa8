// Package layout loads spreadsheet layouts written in CUE and builds the
// corresponding models.
//
// A layout file looks like:
//
//	spreadsheet: "1V6LoRB9yLSjy9yhGqRE22ge9v2v3FHlIk6pwzfX_1-Q"
//	sheets: [{
//		id:   72756875
//		name: "Game"
//		header: [{text: "Match"}, {text: "Red", cellColour: "Red", length: 3, alignment: "Center"}]
//		rows: [[{text: "Qualification 1"}, {text: "2056", cellColour: "Red", bold: true}]]
//	}]
//
// Every style field is optional and defaults to the unstyled baseline.
package layout

import (
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/ukaji3/sheetbatch-go/pkg/sheetbatch"
	"github.com/ukaji3/sheetbatch-go/pkg/sheetbatch/models"
)

// Schema constrains layout files and supplies style defaults.
const Schema = `
#Colour:    "White" | "Black" | "Red" | "Blue"
#Alignment: "Left" | "Center" | "Right"

#Cell: {
	text:          string | *""
	fontSize:      int & >0 | *10
	textColour:    #Colour | *"Black"
	cellColour:    #Colour | *"White"
	bold:          bool | *false
	italic:        bool | *false
	strikethrough: bool | *false
	length:        int | *1
	alignment:     #Alignment | *"Left"
	datetime?:     string
	checkbox:      bool | *false
}

#Sheet: {
	id:    int
	name?: string
	header: [...#Cell] | *[]
	rows: [...[...#Cell]] | *[]
}

spreadsheet?: string
credentials?: string
proxy?:       string
sheets: [...#Sheet] | *[]
`

// Cell is the decoded form of one layout cell.
type Cell struct {
	Text string `json:"text"`
	models.Style
}

// Sheet is the decoded form of one layout sheet.
type Sheet struct {
	ID     int64    `json:"id"`
	Name   string   `json:"name,omitempty"`
	Header []Cell   `json:"header"`
	Rows   [][]Cell `json:"rows"`
}

// File is the decoded form of a layout file.
type File struct {
	Spreadsheet string  `json:"spreadsheet,omitempty"`
	Credentials string  `json:"credentials,omitempty"`
	Proxy       string  `json:"proxy,omitempty"`
	Sheets      []Sheet `json:"sheets"`
}

// Load reads and validates the layout file at path.
func Load(path string) (*File, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(content, path)
}

// Parse validates CUE source against Schema and decodes it. filename is
// only used in error messages.
func Parse(src []byte, filename string) (*File, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString("close({"+Schema+"})", cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}

	value := ctx.CompileBytes(src, cue.Filename(filename))
	if err := value.Err(); err != nil {
		return nil, err
	}

	unified := schema.Unify(value)
	if err := unified.Validate(); err != nil {
		return nil, err
	}

	var f File
	if err := unified.Decode(&f); err != nil {
		return nil, err
	}
	return &f, nil
}

// BuildSheet converts a decoded sheet into a model sheet.
func BuildSheet(s Sheet) (*models.Sheet, error) {
	header, err := buildRow(s.Header)
	if err != nil {
		return nil, fmt.Errorf("sheet %d header: %w", s.ID, err)
	}
	sheet, err := models.NewSheet(s.ID, header)
	if err != nil {
		return nil, err
	}
	sheet.SetName(s.Name)

	for i, cells := range s.Rows {
		row, err := buildRow(cells)
		if err != nil {
			return nil, fmt.Errorf("sheet %d row %d: %w", s.ID, i+1, err)
		}
		if err := sheet.AppendRow(row); err != nil {
			return nil, err
		}
	}
	return sheet, nil
}

func buildRow(cells []Cell) (*models.Row, error) {
	built := make([]models.Cell, 0, len(cells))
	for _, c := range cells {
		cell, err := models.NewCell(c.Text, c.Style)
		if err != nil {
			return nil, err
		}
		built = append(built, cell)
	}
	return models.NewRow(built...)
}

// Build creates the spreadsheet model described by f.
func (f *File) Build(opts ...sheetbatch.Option) (*sheetbatch.Spreadsheet, error) {
	s := sheetbatch.New(f.Spreadsheet, opts...)
	for _, sh := range f.Sheets {
		sheet, err := BuildSheet(sh)
		if err != nil {
			return nil, err
		}
		s.AddSheet(sheet)
	}
	return s, nil
}
