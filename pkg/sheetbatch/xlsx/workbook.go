// Package xlsx applies compiled batches to a local Excel workbook, so a
// layout can be rendered and read back without the network.
package xlsx

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ukaji3/sheetbatch-go/pkg/sheetbatch/models"
	"github.com/xuri/excelize/v2"
)

// ErrUnknownSheet indicates an operation targets a sheet id that was
// never bound to a worksheet.
var ErrUnknownSheet = errors.New("unknown sheet id")

// Workbook is a transport backed by an excelize file. Sheet ids are
// mapped to worksheet names with Bind. The spreadsheet id passed to the
// transport methods is ignored.
type Workbook struct {
	file   *excelize.File
	names  map[int64]string
	fresh  bool
	logger *slog.Logger
}

// NewWorkbook creates an empty workbook.
func NewWorkbook(logger *slog.Logger) *Workbook {
	return newWorkbook(excelize.NewFile(), true, logger)
}

// Open opens the workbook at path.
func Open(path string, logger *slog.Logger) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	return newWorkbook(f, false, logger), nil
}

func newWorkbook(f *excelize.File, fresh bool, logger *slog.Logger) *Workbook {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Workbook{
		file:   f,
		names:  make(map[int64]string),
		fresh:  fresh,
		logger: logger,
	}
}

// File returns the underlying excelize file.
func (w *Workbook) File() *excelize.File {
	return w.file
}

// Bind maps sheetID to the worksheet called name, creating it when
// missing. The first bind on a new workbook renames its default sheet.
func (w *Workbook) Bind(sheetID int64, name string) error {
	if name == "" {
		name = fmt.Sprintf("Sheet%d", sheetID)
	}

	idx, err := w.file.GetSheetIndex(name)
	if err != nil {
		return err
	}
	switch {
	case idx >= 0:
	case w.fresh:
		list := w.file.GetSheetList()
		if err := w.file.SetSheetName(list[0], name); err != nil {
			return err
		}
	default:
		if _, err := w.file.NewSheet(name); err != nil {
			return err
		}
	}
	w.fresh = false
	w.names[sheetID] = name
	w.logger.Debug("bind sheet", "sheet_id", sheetID, "name", name)
	return nil
}

// BindSheets binds every sheet by its id and name.
func (w *Workbook) BindSheets(sheets []*models.Sheet) error {
	for _, s := range sheets {
		if err := w.Bind(s.ID(), s.Name()); err != nil {
			return err
		}
	}
	return nil
}

// SheetName returns the worksheet bound to sheetID.
func (w *Workbook) SheetName(sheetID int64) (string, error) {
	name, ok := w.names[sheetID]
	if !ok {
		return "", fmt.Errorf("sheet %d: %w", sheetID, ErrUnknownSheet)
	}
	return name, nil
}

// SheetIDs maps the bound worksheet names to their sheet ids.
func (w *Workbook) SheetIDs(ctx context.Context, spreadsheetID string) (map[string]int64, error) {
	ids := make(map[string]int64, len(w.names))
	for id, name := range w.names {
		ids[name] = id
	}
	return ids, nil
}

// SaveAs writes the workbook to path.
func (w *Workbook) SaveAs(path string) error {
	return w.file.SaveAs(path)
}

// Close releases the workbook.
func (w *Workbook) Close() error {
	return w.file.Close()
}
