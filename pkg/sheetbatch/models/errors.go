package models

import (
	"errors"
	"fmt"
)

// ErrInvalidLength indicates a cell span length below one.
var ErrInvalidLength = errors.New("cell length must be at least one")

// ErrNotACell indicates a cell was compared against a value of another type.
var ErrNotACell = errors.New("not a cell")

// ErrUnknownName indicates a colour or alignment name missing from the palette.
var ErrUnknownName = errors.New("unknown palette name")

// ErrPosition indicates an insertion index outside a row or sheet.
var ErrPosition = errors.New("invalid position")

// ValidationError represents a cell attribute rejected at construction.
type ValidationError struct {
	Field string
	Value int
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid cell %s %d: %v", e.Field, e.Value, ErrInvalidLength)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidLength
}

// EqualityTypeError represents a cell compared against a non-cell value.
type EqualityTypeError struct {
	Got any
}

func (e *EqualityTypeError) Error() string {
	return fmt.Sprintf("cannot compare cell with %T: %v", e.Got, ErrNotACell)
}

func (e *EqualityTypeError) Unwrap() error {
	return ErrNotACell
}

// LookupError represents a symbolic name absent from the palette.
type LookupError struct {
	Kind string // "colour" or "alignment"
	Name string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Kind, e.Name, ErrUnknownName)
}

func (e *LookupError) Unwrap() error {
	return ErrUnknownName
}

// PositionError represents an insertion index outside [0, Len] or one
// that would split a merged span.
type PositionError struct {
	Index int
	Len   int
}

func (e *PositionError) Error() string {
	return fmt.Sprintf("position %d of %d: %v", e.Index, e.Len, ErrPosition)
}

func (e *PositionError) Unwrap() error {
	return ErrPosition
}
