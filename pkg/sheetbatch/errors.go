package sheetbatch

import (
	"errors"
	"fmt"
)

// ErrSheetNotFound indicates no sheet with the requested name exists.
var ErrSheetNotFound = errors.New("sheet not found")

// ErrNoTransport indicates a network-facing call was made without a transport.
var ErrNoTransport = errors.New("no transport")

// TransportError represents a failure reported by a transport.
type TransportError struct {
	SpreadsheetID string
	Op            string // "clear", "batch_update", "read", "sheet_ids"
	Err           error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error on spreadsheet %q (%s): %v", e.SpreadsheetID, e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// NewTransportError creates a new TransportError.
func NewTransportError(spreadsheetID, op string, err error) *TransportError {
	return &TransportError{
		SpreadsheetID: spreadsheetID,
		Op:            op,
		Err:           err,
	}
}
