package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestMaxLineWidth(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  int
	}{
		{"empty", []string{}, 0},
		{"single", []string{"hello"}, 5},
		{"multiple", []string{"hi", "hello", "hey"}, 5},
		{"with ansi", []string{"\x1b[31mred\x1b[0m"}, 3}, // visual width is 3
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := maxLineWidth(tt.lines)
			if got != tt.want {
				t.Errorf("maxLineWidth() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCompositeRow(t *testing.T) {
	tests := []struct {
		name       string
		bgLine     string
		panelLine  string
		startX     int
		panelWidth int
		totalWidth int
		want       string // after stripping ANSI
	}{
		{"middle", "abcdefghij", "XY", 3, 2, 10, "abcXYfghij"},
		{"left edge", "abcdefghij", "XY", 0, 2, 10, "XYcdefghij"},
		{"short background", "ab", "XY", 5, 2, 10, "ab   XY"},
		{"short panel line", "abcdefghij", "X", 3, 3, 10, "abcX  ghij"},
		{"styled background", "\x1b[31mabcdef\x1b[0m", "X", 2, 1, 6, "abXdef"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ansi.Strip(compositeRow(tt.bgLine, tt.panelLine, tt.startX, tt.panelWidth, tt.totalWidth))
			if got != tt.want {
				t.Errorf("compositeRow() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPlaceAt(t *testing.T) {
	bg := "0000000000\n1111111111\n2222222222\n3333333333"
	panel := "AB\nCD"

	got := strings.Split(ansi.Strip(PlaceAt(bg, panel, 8, 1, 10, 4)), "\n")
	want := []string{"0000000000", "11111111AB", "22222222CD", "3333333333"}
	if len(got) != len(want) {
		t.Fatalf("got %d lines, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestPlaceAt_ShiftsLeftAtEdge(t *testing.T) {
	got := strings.Split(ansi.Strip(PlaceAt("abcdef", "XYZ", 5, 0, 6, 1)), "\n")
	if got[0] != "abcXYZ" {
		t.Errorf("line = %q, want abcXYZ", got[0])
	}
}

func TestPlaceAt_PadsBackground(t *testing.T) {
	got := strings.Split(PlaceAt("", "P", 0, 2, 4, 3), "\n")
	if len(got) != 3 {
		t.Fatalf("got %d lines, want 3", len(got))
	}
	if !strings.Contains(got[2], "P") {
		t.Errorf("panel missing from line 2: %q", got[2])
	}
}
