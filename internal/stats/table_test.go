package stats

import (
	"strings"
	"testing"
)

func TestFormatTableAlignment(t *testing.T) {
	headers := []string{"Char", "Count"}
	rows := [][]string{
		{"a", "5"},
		{"<space>", "123"},
	}
	lines := formatTable(headers, rows, map[int]bool{1: true})
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Char     Count" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != "a            5" {
		t.Errorf("row 1 = %q", lines[1])
	}
	if lines[2] != "<space>    123" {
		t.Errorf("row 2 = %q", lines[2])
	}
}

func TestFormatTableEmpty(t *testing.T) {
	if got := formatTable(nil, nil, nil); got != nil {
		t.Errorf("expected nil for empty input, got %v", got)
	}
}

func TestFormatTableShortRow(t *testing.T) {
	lines := formatTable([]string{"A", "B"}, [][]string{{"only"}}, nil)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if strings.TrimRight(lines[1], " ") != "only" {
		t.Errorf("short row = %q", lines[1])
	}
}
