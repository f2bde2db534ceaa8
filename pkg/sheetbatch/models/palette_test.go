package models

import (
	"errors"
	"testing"

	"github.com/ukaji3/sheetbatch-go/pkg/sheetbatch/ops"
)

func TestLookupColour(t *testing.T) {
	tests := []struct {
		name     Colour
		expected RGBA
	}{
		{White, RGBA{255, 255, 255, 1}},
		{Black, RGBA{0, 0, 0, 1}},
		{Red, RGBA{234, 153, 153, 1}},
		{Blue, RGBA{164, 194, 244, 1}},
	}

	for _, tt := range tests {
		result, err := LookupColour(tt.name)
		if err != nil {
			t.Errorf("LookupColour(%q) failed: %v", tt.name, err)
			continue
		}
		if result != tt.expected {
			t.Errorf("LookupColour(%q) = %v, expected %v", tt.name, result, tt.expected)
		}
	}

	for _, name := range Colours() {
		if _, err := LookupColour(name); err != nil {
			t.Errorf("Colours() lists %q but it does not resolve: %v", name, err)
		}
	}
}

func TestLookupUnknownName(t *testing.T) {
	_, err := LookupColour("Green")
	var lookupErr *LookupError
	if !errors.As(err, &lookupErr) {
		t.Fatalf("expected *LookupError, got %v", err)
	}
	if lookupErr.Kind != "colour" || lookupErr.Name != "Green" {
		t.Errorf("unexpected error fields: %+v", lookupErr)
	}
	if !errors.Is(err, ErrUnknownName) {
		t.Error("expected error to wrap ErrUnknownName")
	}

	_, err = LookupAlignment("Justify")
	if !errors.As(err, &lookupErr) || lookupErr.Kind != "alignment" {
		t.Errorf("expected alignment *LookupError, got %v", err)
	}
}

func TestLookupAlignment(t *testing.T) {
	tests := []struct {
		name     Alignment
		expected string
	}{
		{Left, "LEFT"},
		{Center, "CENTER"},
		{Right, "RIGHT"},
	}

	for _, tt := range tests {
		result, err := LookupAlignment(tt.name)
		if err != nil || result != tt.expected {
			t.Errorf("LookupAlignment(%q) = %q, %v, expected %q", tt.name, result, err, tt.expected)
		}
	}
	if len(Alignments()) != len(tests) {
		t.Errorf("Alignments() = %v, expected %d entries", Alignments(), len(tests))
	}
}

func TestNormalized(t *testing.T) {
	result := RGBA{255, 0, 51, 1}.Normalized()
	expected := ops.Color{Red: 1, Green: 0, Blue: 0.2, Alpha: 1}
	if result != expected {
		t.Errorf("Normalized() = %v, expected %v", result, expected)
	}
}
