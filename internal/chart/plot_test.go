package chart

import (
	"bytes"
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
)

func TestDrawSharesScaleAcrossSeries(t *testing.T) {
	canvas := Draw([]Series{
		{Name: "actual", Values: []float64{8, 4, 2, 1}},
		{Name: "ideal", Values: []float64{16, 8, 4, 2}},
	}, Options{Width: 4, Height: 3, Marker: -1})
	if canvas.Min != 1 || canvas.Max != 16 {
		t.Fatalf("expected shared range 1..16, got %v..%v", canvas.Min, canvas.Max)
	}
	if got := canvas.Owner(0, 0); got != 1 {
		t.Fatalf("expected the ideal series to own the top-left cell, got %d", got)
	}
}

func TestDrawZeroBased(t *testing.T) {
	canvas := Draw([]Series{{Values: []float64{5, 3}}}, Options{Width: 2, Height: 2, ZeroBased: true, Marker: -1})
	if canvas.Min != 0 || canvas.Max != 5 {
		t.Fatalf("expected range 0..5, got %v..%v", canvas.Min, canvas.Max)
	}
	flat := Draw([]Series{{Values: []float64{2, 2}}}, Options{Width: 2, Height: 2, Marker: -1})
	if flat.Min != 1 || flat.Max != 3 {
		t.Fatalf("expected widened range 1..3, got %v..%v", flat.Min, flat.Max)
	}
}

func TestDrawMarker(t *testing.T) {
	canvas := Draw([]Series{{Values: []float64{5, 3, 1}}}, Options{Width: 3, Height: 2, ZeroBased: true, Marker: 0})
	if got := canvas.Owner(0, 0); got != MarkerOwner {
		t.Fatalf("expected marker at top-left, got owner %d", got)
	}
	lines := canvas.Lines(nil)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if first := []rune(lines[0])[0]; first != '\u28FF' {
		t.Fatalf("expected full braille cell for marker, got %q", first)
	}

	none := Draw([]Series{{Values: []float64{5, 3, 1}}}, Options{Width: 3, Height: 2, Marker: 7})
	for y := 0; y < none.Height; y++ {
		for x := 0; x < none.Width; x++ {
			if none.Owner(x, y) == MarkerOwner {
				t.Fatalf("unexpected marker for out of range index")
			}
		}
	}
}

func TestLinesPaintsRunsByOwner(t *testing.T) {
	canvas := Draw([]Series{{Values: []float64{1, 1, 1, 1}}}, Options{Width: 4, Height: 1, Marker: -1})
	calls := 0
	lines := canvas.Lines(func(owner int, s string) string {
		calls++
		if owner != 0 {
			t.Fatalf("expected series 0, got %d", owner)
		}
		return "[" + s + "]"
	})
	if calls != 1 {
		t.Fatalf("expected one painted run, got %d", calls)
	}
	if !strings.HasPrefix(lines[0], "[") || !strings.HasSuffix(lines[0], "]") {
		t.Fatalf("unexpected line %q", lines[0])
	}
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, "Rank/frequency", []Series{
		{Name: "actual", Values: []float64{9, 4, 3, 2, 1}},
		{Name: "zipf", Values: []float64{9, 4.5, 3, 2.25, 1.8}},
		{Name: "empty"},
	}, Options{Width: 12, Height: 4, ZeroBased: true, Marker: -1}, false)
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	out := buf.String()
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("expected no color codes for a buffer")
	}
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 1+4+1 {
		t.Fatalf("expected 6 lines, got %d:\n%s", len(lines), out)
	}
	if lines[0] != "Rank/frequency" {
		t.Fatalf("unexpected title %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "       9"+axisSeparator) {
		t.Fatalf("unexpected top axis label in %q", lines[1])
	}
	if !strings.HasPrefix(lines[4], "       0"+axisSeparator) {
		t.Fatalf("unexpected bottom axis label in %q", lines[4])
	}
	if !strings.Contains(lines[5], "actual (solid)") || !strings.Contains(lines[5], "zipf (dotted)") {
		t.Fatalf("unexpected legend %q", lines[5])
	}
	if strings.Contains(lines[5], "empty") {
		t.Fatalf("empty series should be skipped")
	}
}

func TestWriteNothingToPlot(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, "title", nil, Options{}, false); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}
}

func TestPlotWidthFor(t *testing.T) {
	expected := 80 - axisLabelWidth - runewidth.StringWidth(axisSeparator)
	if got := PlotWidthFor(80); got != expected {
		t.Fatalf("expected width %d, got %d", expected, got)
	}
	if got := PlotWidthFor(0); got != minPlotWidth {
		t.Fatalf("expected min width %d, got %d", minPlotWidth, got)
	}
}

func TestColumnFor(t *testing.T) {
	if got := columnFor(55, 100, 10); got != 5 {
		t.Fatalf("expected column 5, got %d", got)
	}
	if got := columnFor(1, 3, 5); got != 2 {
		t.Fatalf("expected column 2, got %d", got)
	}
	if got := columnFor(0, 1, 5); got != 0 {
		t.Fatalf("expected column 0, got %d", got)
	}
}

func TestFormatValue(t *testing.T) {
	cases := map[float64]string{
		3:      "3",
		1500.4: "1500",
		12.34:  "12.3",
		0.5:    "0.50",
	}
	for in, want := range cases {
		if got := FormatValue(in); got != want {
			t.Fatalf("FormatValue(%v) = %q, want %q", in, got, want)
		}
	}
}
