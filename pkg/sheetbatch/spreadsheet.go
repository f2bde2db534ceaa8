package sheetbatch

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ukaji3/sheetbatch-go/pkg/sheetbatch/models"
	"github.com/ukaji3/sheetbatch-go/pkg/sheetbatch/ops"
)

// Spreadsheet is an ordered collection of sheets targeting one remote
// spreadsheet. It compiles its sheets into a Batch and leaves all I/O to
// a Transport.
type Spreadsheet struct {
	id     string
	sheets []*models.Sheet
	opts   Options
	logger *slog.Logger
}

// New creates an empty spreadsheet model for spreadsheetID.
func New(spreadsheetID string, opts ...Option) *Spreadsheet {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Spreadsheet{
		id:     spreadsheetID,
		opts:   o,
		logger: o.logger().With("spreadsheet", spreadsheetID),
	}
}

// ID returns the target spreadsheet id.
func (s *Spreadsheet) ID() string { return s.id }

// AddSheet appends sheet to the model.
func (s *Spreadsheet) AddSheet(sheet *models.Sheet) {
	s.sheets = append(s.sheets, sheet)
}

// Sheets returns the sheets in order.
func (s *Spreadsheet) Sheets() []*models.Sheet {
	return append([]*models.Sheet(nil), s.sheets...)
}

// SheetIDs returns the ids of the managed sheets in order.
func (s *Spreadsheet) SheetIDs() []int64 {
	ids := make([]int64, len(s.sheets))
	for i, sheet := range s.sheets {
		ids[i] = sheet.ID()
	}
	return ids
}

// Requests concatenates the operations of every sheet in sheet order.
func (s *Spreadsheet) Requests() ([]ops.Operation, error) {
	var ret []ops.Operation
	for _, sheet := range s.sheets {
		sheetOps, err := sheet.Operations()
		if err != nil {
			return nil, fmt.Errorf("sheet %d: %w", sheet.ID(), err)
		}
		ret = append(ret, sheetOps...)
	}
	return ret, nil
}

// Compile returns the complete, ordered batch for the model. Compiling
// has no side effects and may be repeated.
func (s *Spreadsheet) Compile() (*ops.Batch, error) {
	requests, err := s.Requests()
	if err != nil {
		return nil, err
	}
	return ops.NewBatch(requests), nil
}

// Write compiles the model, resets the managed sheets and sends the batch.
func (s *Spreadsheet) Write(ctx context.Context, t Transport) error {
	if t == nil {
		return ErrNoTransport
	}

	batch, err := s.Compile()
	if err != nil {
		return fmt.Errorf("compile: %w", err)
	}

	if s.opts.ShouldClearBeforeWrite() {
		if err := t.ClearSheets(ctx, s.id, s.SheetIDs()); err != nil {
			s.logger.Error("clear sheets", "error", err)
			return NewTransportError(s.id, "clear", err)
		}
	}

	if err := t.BatchUpdate(ctx, s.id, batch); err != nil {
		s.logger.Error("batch update", "requests", batch.Len(), "error", err)
		return NewTransportError(s.id, "batch_update", err)
	}
	s.logger.Info("batch update", "sheets", len(s.sheets), "requests", batch.Len())
	return nil
}

// ReadList returns the values of one column of the named sheet, starting
// below the header.
func (s *Spreadsheet) ReadList(ctx context.Context, t Transport, sheet, column string) ([]string, error) {
	if t == nil {
		return nil, ErrNoTransport
	}
	values, err := t.ReadColumn(ctx, s.id, sheet, column, s.opts.firstDataRow())
	if err != nil {
		s.logger.Error("read column", "sheet", sheet, "column", column, "error", err)
		return nil, NewTransportError(s.id, "read", err)
	}
	return values, nil
}

// SheetIDByName looks up the id of the sheet titled name.
func (s *Spreadsheet) SheetIDByName(ctx context.Context, t Transport, name string) (int64, error) {
	if t == nil {
		return 0, ErrNoTransport
	}
	ids, err := t.SheetIDs(ctx, s.id)
	if err != nil {
		return 0, NewTransportError(s.id, "sheet_ids", err)
	}
	id, ok := ids[name]
	if !ok {
		return 0, fmt.Errorf("sheet %q: %w", name, ErrSheetNotFound)
	}
	return id, nil
}
