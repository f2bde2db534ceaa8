package sheetbatch

import (
	"context"

	"github.com/ukaji3/sheetbatch-go/pkg/sheetbatch/ops"
)

// Transport applies compiled batches to a spreadsheet store and reads
// values back. Implementations: gsheets.Client (Google Sheets API) and
// xlsx.Workbook (local workbook file).
type Transport interface {
	// BatchUpdate applies every request of batch atomically, in order.
	BatchUpdate(ctx context.Context, spreadsheetID string, batch *ops.Batch) error
	// ClearSheets unmerges, unformats, unfreezes and empties the sheets
	// with the given ids. Unknown ids are ignored.
	ClearSheets(ctx context.Context, spreadsheetID string, sheetIDs []int64) error
	// ReadColumn returns the values of column (a letter such as "A") of
	// the named sheet, from the 1-based row fromRow down.
	ReadColumn(ctx context.Context, spreadsheetID, sheet, column string, fromRow int) ([]string, error)
	// SheetIDs maps sheet titles to sheet ids.
	SheetIDs(ctx context.Context, spreadsheetID string) (map[string]int64, error)
}
