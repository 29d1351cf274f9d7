package ui

import (
	"strings"
	"testing"
)

func TestPadLine(t *testing.T) {
	if got := padLine("ab", 5); got != "ab   " {
		t.Errorf("padLine = %q", got)
	}
	if got := padLine("abcdef", 3); got != "abcdef" {
		t.Errorf("padLine must not truncate: %q", got)
	}
}

func TestFitLines(t *testing.T) {
	got := fitLines("a\nb\nc", 3, 2)
	lines := strings.Split(got, "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if lines[0] != "a  " {
		t.Errorf("line 0 = %q", lines[0])
	}

	got = fitLines("a", 2, 3)
	lines = strings.Split(got, "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3 (padded)", len(lines))
	}
	if lines[2] != "  " {
		t.Errorf("pad line = %q", lines[2])
	}
}

func TestTruncateCell(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"exactly ok", 10, "exactly ok"},
		{"much too long", 6, "much …"},
		{"x", 0, "x"},
	}
	for _, tt := range tests {
		if got := truncateCell(tt.in, tt.width); got != tt.want {
			t.Errorf("truncateCell(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}
