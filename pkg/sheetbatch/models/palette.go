// Package models defines the styled spreadsheet model: cells, rows and
// sheets, and the operations they compile to.
package models

import "github.com/ukaji3/sheetbatch-go/pkg/sheetbatch/ops"

// Colour is a symbolic colour name resolved through the palette.
type Colour string

const (
	White Colour = "White"
	Black Colour = "Black"
	Red   Colour = "Red"
	Blue  Colour = "Blue"
)

// Alignment is a symbolic horizontal alignment.
type Alignment string

const (
	Left   Alignment = "Left"
	Center Alignment = "Center"
	Right  Alignment = "Right"
)

// RGBA is a palette colour with 0-255 channels and a separate alpha.
type RGBA struct {
	Red   uint8
	Green uint8
	Blue  uint8
	Alpha float64
}

// Normalized converts the colour to the 0-1 channel range used by
// operations. Alpha is passed through unchanged.
func (c RGBA) Normalized() ops.Color {
	return ops.Color{
		Red:   float64(c.Red) / 255,
		Green: float64(c.Green) / 255,
		Blue:  float64(c.Blue) / 255,
		Alpha: c.Alpha,
	}
}

var colours = map[Colour]RGBA{
	White: {255, 255, 255, 1},
	Black: {0, 0, 0, 1},
	Red:   {234, 153, 153, 1},
	Blue:  {164, 194, 244, 1},
}

var alignments = map[Alignment]string{
	Left:   "LEFT",
	Center: "CENTER",
	Right:  "RIGHT",
}

// LookupColour resolves a colour name.
func LookupColour(name Colour) (RGBA, error) {
	c, ok := colours[name]
	if !ok {
		return RGBA{}, &LookupError{Kind: "colour", Name: string(name)}
	}
	return c, nil
}

// LookupAlignment resolves an alignment name to its keyword.
func LookupAlignment(name Alignment) (string, error) {
	a, ok := alignments[name]
	if !ok {
		return "", &LookupError{Kind: "alignment", Name: string(name)}
	}
	return a, nil
}

// Colours returns every colour name known to the palette.
func Colours() []Colour {
	return []Colour{White, Black, Red, Blue}
}

// Alignments returns every alignment name known to the palette.
func Alignments() []Alignment {
	return []Alignment{Left, Center, Right}
}
