package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

const teamsLayout = `
spreadsheet: "doc"
sheets: [{
	id:   5
	name: "Teams"
	header: [
		{text: "Team", bold: true},
		{text: "Region", cellColour: "Blue", length: 2},
	]
	rows: [
		[{text: "2056"}, {text: "Ontario"}],
		[{text: "1114"}, {text: "Ontario"}],
	]
}]
`

func writeLayout(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "teams.cue")
	if err := os.WriteFile(path, []byte(teamsLayout), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), err
}

func TestCompile(t *testing.T) {
	out, err := execute(t, "compile", writeLayout(t), "--log-level", "error")
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}

	var body struct {
		Requests []map[string]json.RawMessage `json:"requests"`
	}
	if err := json.Unmarshal([]byte(out), &body); err != nil {
		t.Fatalf("Output is not JSON: %v\n%s", err, out)
	}
	// freeze, header data, bold style, merge, blue style, two data rows
	if len(body.Requests) != 7 {
		t.Errorf("Expected 7 requests, got %d", len(body.Requests))
	}
}

func TestCompileSheetsDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "sheets")
	out, err := execute(t, "compile", writeLayout(t), "--sheets-dir", dir, "--pretty")
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	if out != "" {
		t.Errorf("Expected nothing on stdout, got %q", out)
	}
	if _, err := os.Stat(filepath.Join(dir, "Teams.json")); err != nil {
		t.Errorf("Expected Teams.json: %v", err)
	}
}

func TestCompileInvalidLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.cue")
	if err := os.WriteFile(path, []byte(`sheets: [{id: 1, header: [{cellColour: "Green"}]}]`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := execute(t, "compile", path); err == nil {
		t.Error("Expected an invalid layout to fail")
	}
}

func TestRenderAndRead(t *testing.T) {
	dir := t.TempDir()
	book := filepath.Join(dir, "teams.xlsx")
	logFile := filepath.Join(dir, "sheetbatch.log")

	if _, err := execute(t, "render", writeLayout(t), "-o", book, "--log-file", logFile); err != nil {
		t.Fatalf("render failed: %v", err)
	}

	f, err := excelize.OpenFile(book)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if v, _ := f.GetCellValue("Teams", "B1"); v != "Region" {
		t.Errorf("B1 = %q, expected Region", v)
	}
	if merged, _ := f.GetMergeCells("Teams"); len(merged) != 1 {
		t.Errorf("Expected 1 merge, got %d", len(merged))
	}

	logs, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(logs), `"msg":"rendered"`) {
		t.Errorf("Expected a JSON record for the render, got %s", logs)
	}

	out, err := execute(t, "read", "--xlsx", book, "--sheet", "Teams", "--column", "A")
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if out != "2056\n1114\n" {
		t.Errorf("read = %q", out)
	}

	// rendering again over the existing workbook keeps a single merge
	if _, err := execute(t, "render", writeLayout(t), "-o", book); err != nil {
		t.Fatalf("second render failed: %v", err)
	}
	f2, err := excelize.OpenFile(book)
	if err != nil {
		t.Fatal(err)
	}
	defer f2.Close()
	if merged, _ := f2.GetMergeCells("Teams"); len(merged) != 1 {
		t.Errorf("Expected 1 merge after re-render, got %d", len(merged))
	}
}

func TestReadRequiresSource(t *testing.T) {
	if _, err := execute(t, "read", "--sheet", "Teams"); err == nil {
		t.Error("Expected read without --xlsx or --spreadsheet to fail")
	}
}

func TestRequiredFlags(t *testing.T) {
	tests := []struct {
		args []string
		flag string
	}{
		{[]string{"render", writeLayout(t)}, "output"},
		{[]string{"read", "--xlsx", "teams.xlsx"}, "sheet"},
	}
	for _, tt := range tests {
		_, err := execute(t, tt.args...)
		if err == nil || !strings.Contains(err.Error(), `"`+tt.flag+`"`) {
			t.Errorf("%s without --%s: err = %v, expected a required flag error", tt.args[0], tt.flag, err)
		}
	}
}

func TestInvalidLogLevel(t *testing.T) {
	if _, err := execute(t, "compile", writeLayout(t), "--log-level", "loud"); err == nil {
		t.Error("Expected an invalid log level to fail")
	}
}
