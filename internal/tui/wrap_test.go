package tui

import (
	"strings"
	"testing"
)

func plainSegments(items ...string) []segment {
	out := make([]segment, 0, len(items))
	for _, item := range items {
		out = append(out, newSegment(item))
	}
	return out
}

func TestWrapSegmentsBreaksAtWidth(t *testing.T) {
	lines := wrapSegments(plainSegments("1 stopwords", "2 pronouns", "3 conjunctions"), "  ", 24)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), lines)
	}
	if lines[0] != "1 stopwords  2 pronouns" {
		t.Fatalf("unexpected first line %q", lines[0])
	}
	if lines[1] != "3 conjunctions" {
		t.Fatalf("unexpected second line %q", lines[1])
	}
}

func TestWrapSegmentsOversizedSegment(t *testing.T) {
	lines := wrapSegments(plainSegments("a", "abcdefghij", "b"), " ", 4)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %q", len(lines), lines)
	}
	if lines[1] != "abcdefghij" {
		t.Fatalf("expected oversized segment alone, got %q", lines[1])
	}
}

func TestWrapSegmentsNoWidth(t *testing.T) {
	lines := wrapSegments(plainSegments("a", "b", "c"), " ", 0)
	if len(lines) != 1 || lines[0] != "a b c" {
		t.Fatalf("expected single line, got %q", lines)
	}
	if wrapSegments(nil, " ", 10) != nil {
		t.Fatalf("expected no lines for no segments")
	}
}

func TestFitLines(t *testing.T) {
	out := fitLines("ab\ncdef\nx\ny", 5, 3)
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	for _, line := range lines {
		if len(line) != 5 {
			t.Fatalf("expected padded width 5, got %q", line)
		}
	}
	if got := fitLines("a", 2, 2); got != "a \n  " {
		t.Fatalf("unexpected padding %q", got)
	}
}

func TestTruncateLine(t *testing.T) {
	if got := truncateLine("elephant", 6); got != "ele..." {
		t.Fatalf("unexpected truncation %q", got)
	}
	if got := truncateLine("elephant", 3); got != "ele" {
		t.Fatalf("unexpected short truncation %q", got)
	}
	if got := truncateLine("cat", 6); got != "cat" {
		t.Fatalf("expected untouched text, got %q", got)
	}
}
