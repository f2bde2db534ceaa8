package sheetbatch

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/ukaji3/sheetbatch-go/pkg/sheetbatch/models"
	"github.com/ukaji3/sheetbatch-go/pkg/sheetbatch/ops"
)

type recordingTransport struct {
	calls   []string
	fromRow int
	cleared []int64
	batch   *ops.Batch
	column  []string
	ids     map[string]int64
	err     error
}

func (r *recordingTransport) BatchUpdate(ctx context.Context, spreadsheetID string, batch *ops.Batch) error {
	r.calls = append(r.calls, "batch_update")
	r.batch = batch
	return r.err
}

func (r *recordingTransport) ClearSheets(ctx context.Context, spreadsheetID string, sheetIDs []int64) error {
	r.calls = append(r.calls, "clear")
	r.cleared = sheetIDs
	return nil
}

func (r *recordingTransport) ReadColumn(ctx context.Context, spreadsheetID, sheet, column string, fromRow int) ([]string, error) {
	r.calls = append(r.calls, "read:"+sheet+"!"+column)
	r.fromRow = fromRow
	return r.column, r.err
}

func (r *recordingTransport) SheetIDs(ctx context.Context, spreadsheetID string) (map[string]int64, error) {
	return r.ids, r.err
}

func testSheet(t *testing.T, id int64, texts ...string) *models.Sheet {
	t.Helper()
	header, err := models.NewRow(models.Text("header"))
	if err != nil {
		t.Fatal(err)
	}
	s, err := models.NewSheet(id, header)
	if err != nil {
		t.Fatal(err)
	}
	for _, text := range texts {
		style := models.DefaultStyle()
		style.Bold = true
		c, err := models.NewCell(text, style)
		if err != nil {
			t.Fatal(err)
		}
		row, err := models.NewRow(c)
		if err != nil {
			t.Fatal(err)
		}
		if err := s.AppendRow(row); err != nil {
			t.Fatal(err)
		}
	}
	return s
}

func sheetOf(op ops.Operation) int64 {
	switch o := op.(type) {
	case ops.FreezeRows:
		return o.SheetID
	case ops.RowValues:
		return o.SheetID
	case ops.CellStyle:
		return o.Range.SheetID
	}
	return -1
}

func TestCompileKeepsSheetsContiguous(t *testing.T) {
	s := New("spreadsheet")
	s.AddSheet(testSheet(t, 1, "a", "b"))
	s.AddSheet(testSheet(t, 2, "c"))

	batch, err := s.Compile()
	if err != nil {
		t.Fatal(err)
	}
	if batch.IncludeSpreadsheetInResponse {
		t.Error("expected IncludeSpreadsheetInResponse to be false")
	}

	var sheets []int64
	for _, op := range batch.Requests {
		sheets = append(sheets, sheetOf(op))
	}
	expected := []int64{1, 1, 1, 1, 1, 1, 2, 2, 2, 2}
	if !reflect.DeepEqual(sheets, expected) {
		t.Errorf("request sheets = %v, expected %v", sheets, expected)
	}
	if batch.Requests[0].Kind() != ops.KindFreezeRows || batch.Requests[6].Kind() != ops.KindFreezeRows {
		t.Errorf("expected every sheet block to start with a freeze request: %v", batch.Kinds())
	}

	again, err := s.Compile()
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(again.Kinds(), batch.Kinds()) {
		t.Error("expected repeated compiles to give the same batch")
	}
}

func TestCompileUnknownColour(t *testing.T) {
	style := models.DefaultStyle()
	style.CellColour = "Green"
	c, err := models.NewCell("x", style)
	if err != nil {
		t.Fatal(err)
	}
	header, _ := models.NewRow(c)
	sheet, err := models.NewSheet(4, header)
	if err != nil {
		t.Fatal(err)
	}
	s := New("spreadsheet")
	s.AddSheet(sheet)
	if _, err := s.Compile(); !errors.Is(err, models.ErrUnknownName) {
		t.Errorf("expected ErrUnknownName, got %v", err)
	}
}

func TestWrite(t *testing.T) {
	s := New("spreadsheet")
	s.AddSheet(testSheet(t, 10, "a"))
	s.AddSheet(testSheet(t, 20))

	tr := &recordingTransport{}
	if err := s.Write(context.Background(), tr); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(tr.calls, []string{"clear", "batch_update"}) {
		t.Errorf("calls = %v, expected clear then batch_update", tr.calls)
	}
	if !reflect.DeepEqual(tr.cleared, []int64{10, 20}) {
		t.Errorf("cleared = %v, expected [10 20]", tr.cleared)
	}
	if tr.batch == nil || tr.batch.Len() == 0 {
		t.Error("expected a non-empty batch")
	}

	tr = &recordingTransport{}
	s = New("spreadsheet", WithClearBeforeWrite(false))
	if err := s.Write(context.Background(), tr); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(tr.calls, []string{"batch_update"}) {
		t.Errorf("calls = %v, expected batch_update only", tr.calls)
	}
}

func TestWriteErrors(t *testing.T) {
	s := New("spreadsheet")
	if err := s.Write(context.Background(), nil); !errors.Is(err, ErrNoTransport) {
		t.Errorf("expected ErrNoTransport, got %v", err)
	}

	cause := errors.New("quota exceeded")
	err := s.Write(context.Background(), &recordingTransport{err: cause})
	var transportErr *TransportError
	if !errors.As(err, &transportErr) || transportErr.Op != "batch_update" || !errors.Is(err, cause) {
		t.Errorf("expected batch_update TransportError wrapping the cause, got %v", err)
	}
}

func TestReadList(t *testing.T) {
	s := New("spreadsheet")
	tr := &recordingTransport{column: []string{"TRUE", "FALSE"}}
	values, err := s.ReadList(context.Background(), tr, "Game", "A")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(values, []string{"TRUE", "FALSE"}) {
		t.Errorf("ReadList() = %v", values)
	}
	if !reflect.DeepEqual(tr.calls, []string{"read:Game!A"}) {
		t.Errorf("calls = %v", tr.calls)
	}
}

func TestReadListFirstDataRow(t *testing.T) {
	tests := []struct {
		opts     []Option
		expected int
	}{
		{nil, 2},
		{[]Option{WithFirstDataRow(0)}, 2},
		{[]Option{WithFirstDataRow(5)}, 5},
	}

	for _, tt := range tests {
		tr := &recordingTransport{}
		if _, err := New("spreadsheet", tt.opts...).ReadList(context.Background(), tr, "Game", "A"); err != nil {
			t.Fatal(err)
		}
		if tr.fromRow != tt.expected {
			t.Errorf("ReadList read from row %d, expected %d", tr.fromRow, tt.expected)
		}
	}
}

func TestSheetIDByName(t *testing.T) {
	s := New("spreadsheet")
	tr := &recordingTransport{ids: map[string]int64{"Game": 123}}

	id, err := s.SheetIDByName(context.Background(), tr, "Game")
	if err != nil || id != 123 {
		t.Errorf("SheetIDByName(Game) = %d, %v, expected 123", id, err)
	}
	if _, err := s.SheetIDByName(context.Background(), tr, "Missing"); !errors.Is(err, ErrSheetNotFound) {
		t.Errorf("expected ErrSheetNotFound, got %v", err)
	}
}
