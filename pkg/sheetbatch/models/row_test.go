package models

import (
	"errors"
	"reflect"
	"testing"

	"github.com/ukaji3/sheetbatch-go/pkg/sheetbatch/ops"
)

func spanCell(t *testing.T, text string, length int) Cell {
	return mustCell(t, text, func(s *Style) { s.Length = length })
}

func mustRow(t *testing.T, cells ...Cell) *Row {
	t.Helper()
	r, err := NewRow(cells...)
	if err != nil {
		t.Fatalf("NewRow failed: %v", err)
	}
	return r
}

// checkColumns verifies every slot sits at its position and every real
// cell sits at the sum of the lengths of the real cells before it.
func checkColumns(t *testing.T, r *Row) {
	t.Helper()
	sum := 0
	for i := 0; i < r.Len(); i++ {
		c := r.Cell(i)
		if c.Column() != i {
			t.Errorf("cell %d has column %d", i, c.Column())
		}
		if r.IsFiller(i) {
			continue
		}
		if c.Column() != sum {
			t.Errorf("real cell %q at column %d, expected %d", c.Text(), c.Column(), sum)
		}
		sum += c.Length()
	}
	if sum != r.Len() {
		t.Errorf("row occupies %d columns, real lengths sum to %d", r.Len(), sum)
	}
}

func TestAppendCellColumns(t *testing.T) {
	r := mustRow(t,
		Text("Match"),
		spanCell(t, "Red", 3),
		Text("Red Score"),
		Text("Blue Score"),
		spanCell(t, "Blue", 3),
		Text("TBA Breakdown"),
	)
	checkColumns(t, r)

	expected := map[int]string{0: "Match", 1: "Red", 4: "Red Score", 5: "Blue Score", 6: "Blue", 9: "TBA Breakdown"}
	for column, text := range expected {
		if r.Cell(column).Text() != text || r.IsFiller(column) {
			t.Errorf("column %d = %q (filler %v), expected %q", column, r.Cell(column).Text(), r.IsFiller(column), text)
		}
	}
	for _, column := range []int{2, 3, 7, 8} {
		if !r.IsFiller(column) || r.Cell(column).Text() != "" || r.Cell(column).Length() != 1 {
			t.Errorf("column %d expected to be an empty span-1 filler", column)
		}
	}
	if len(r.RealCells()) != 6 {
		t.Errorf("RealCells() has %d cells, expected 6", len(r.RealCells()))
	}
}

// Shifted cells move by the span length of the inserted cell, not by
// their own span length.
func TestInsertCellShiftsByInsertedLength(t *testing.T) {
	r := mustRow(t, Text("a"), spanCell(t, "b", 2), Text("c"))
	if err := r.InsertCell(spanCell(t, "new", 3), 1); err != nil {
		t.Fatal(err)
	}
	checkColumns(t, r)

	expected := []struct {
		text   string
		column int
	}{
		{"a", 0},
		{"new", 1},
		{"b", 4},
		{"c", 6},
	}
	placed := r.RealCells()
	if len(placed) != len(expected) {
		t.Fatalf("RealCells() = %d cells, expected %d", len(placed), len(expected))
	}
	for i, e := range expected {
		if placed[i].Text() != e.text || placed[i].Column() != e.column {
			t.Errorf("real cell %d = %q at %d, expected %q at %d", i, placed[i].Text(), placed[i].Column(), e.text, e.column)
		}
	}
	for _, column := range []int{2, 3} {
		if !r.IsFiller(column) {
			t.Errorf("expected filler after inserted cell at column %d", column)
		}
	}
	if r.Len() != 7 {
		t.Errorf("Len() = %d, expected 7", r.Len())
	}
}

func TestPrependCell(t *testing.T) {
	r := mustRow(t, Text("b"), Text("c"))
	if err := r.PrependCell(spanCell(t, "a", 2)); err != nil {
		t.Fatal(err)
	}
	checkColumns(t, r)
	if r.DelimitedLine() != "a,,b,c" {
		t.Errorf("DelimitedLine() = %q, expected %q", r.DelimitedLine(), "a,,b,c")
	}
}

func TestInsertCellPositionErrors(t *testing.T) {
	r := mustRow(t, spanCell(t, "a", 2), Text("b"))
	tests := []int{-1, 4, 1}
	for _, at := range tests {
		err := r.InsertCell(Text("x"), at)
		var posErr *PositionError
		if !errors.As(err, &posErr) || !errors.Is(err, ErrPosition) {
			t.Errorf("InsertCell at %d: expected *PositionError, got %v", at, err)
		}
	}
	if r.Len() != 3 {
		t.Errorf("failed inserts changed the row: Len() = %d", r.Len())
	}

	if err := r.AppendCell(Cell{}); !errors.Is(err, ErrInvalidLength) {
		t.Errorf("AppendCell(Cell{}) expected ErrInvalidLength, got %v", err)
	}
}

func TestSetRowAndSheetPropagate(t *testing.T) {
	r := mustRow(t, spanCell(t, "a", 2), Text("b"))
	r.SetRow(7)
	r.SetSheetID(99)
	if r.Index() != 7 || r.SheetID() != 99 {
		t.Errorf("row at %d/%d, expected 7/99", r.Index(), r.SheetID())
	}
	for i, c := range r.Cells() {
		if c.Row() != 7 || c.SheetID() != 99 {
			t.Errorf("cell %d at row %d sheet %d, expected 7/99", i, c.Row(), c.SheetID())
		}
	}

	// cells inserted later take the row's coordinates
	if err := r.AppendCell(Text("c")); err != nil {
		t.Fatal(err)
	}
	c := r.Cell(3)
	if c.Row() != 7 || c.SheetID() != 99 || c.Column() != 3 {
		t.Errorf("appended cell at %d/%d/%d", c.SheetID(), c.Row(), c.Column())
	}
}

func TestDelimitedLine(t *testing.T) {
	tests := []struct {
		cells    []Cell
		expected string
	}{
		{nil, ","},
		{[]Cell{Text("")}, ""},
		{[]Cell{Text("A"), Text("B,C"), Text("D")}, `A,\"B,C\",D`},
		{[]Cell{Text(`say "hi"`)}, `say \"hi\"`},
	}

	for _, tt := range tests {
		r := mustRow(t, tt.cells...)
		if result := r.DelimitedLine(); result != tt.expected {
			t.Errorf("DelimitedLine() = %q, expected %q", result, tt.expected)
		}
	}
}

func TestRowOperations(t *testing.T) {
	r := mustRow(t,
		Text("A"),
		mustCell(t, "B", func(s *Style) { s.Bold = true }),
		spanCell(t, "C", 2),
	)
	r.SetSheetID(5)
	r.SetRow(2)

	operations, err := r.Operations()
	if err != nil {
		t.Fatal(err)
	}
	expected := []ops.Kind{ops.KindRowValues, ops.KindCellStyle, ops.KindMergeCells, ops.KindCellStyle}
	if !reflect.DeepEqual(kinds(operations), expected) {
		t.Fatalf("Operations() = %v, expected %v", kinds(operations), expected)
	}

	values := operations[0].(ops.RowValues)
	if values.SheetID != 5 || values.Row != 2 || values.Data != "A,B,C," {
		t.Errorf("unexpected row values %+v", values)
	}
	if operations[1].(ops.CellStyle).Range.StartColumn != 1 {
		t.Error("expected bold style on column 1")
	}
	if operations[3].(ops.CellStyle).Range.StartColumn != 2 {
		t.Error("expected merged style on column 2")
	}
}

func TestSpanOneCellsEmitNoMerge(t *testing.T) {
	r := mustRow(t, Text("A"), mustCell(t, "B,C", func(s *Style) { s.Italic = true }), Text("D"))
	operations, err := r.Operations()
	if err != nil {
		t.Fatal(err)
	}
	for _, op := range operations {
		if op.Kind() == ops.KindMergeCells {
			t.Errorf("unexpected merge request %+v", op)
		}
	}
}
