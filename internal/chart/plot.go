// Package chart draws rank/frequency series as braille text plots.
package chart

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

// Series is a named run of values sampled at consecutive ranks.
type Series struct {
	Name   string
	Values []float64
}

// Options controls plot geometry.
type Options struct {
	Width  int
	Height int
	// ZeroBased pins the bottom of the axis at zero for non-negative data.
	ZeroBased bool
	// Marker is an index into the first series to highlight, -1 for none.
	Marker int
}

// Owner values for cells that no series drew.
const (
	NoOwner     = -1
	MarkerOwner = -2
)

type lineStyle struct {
	name   string
	period int
	on     int
}

type ansiColor struct {
	name string
	code string
}

const (
	defaultPlotHeight   = 10
	minPlotWidth        = 10
	axisLabelWidth      = 8
	axisSeparator       = " │ "
	colorReset          = "\x1b[0m"
	markerColor         = "\x1b[1;33m"
	terminalWidthBackup = 80
)

var lineStyles = []lineStyle{
	{name: "solid", period: 1, on: 1},
	{name: "dotted", period: 4, on: 1},
	{name: "dashed", period: 6, on: 3},
	{name: "dashdot", period: 8, on: 3},
}

var colorPalette = []ansiColor{
	{name: "cyan", code: "\x1b[36m"},
	{name: "red", code: "\x1b[31m"},
	{name: "magenta", code: "\x1b[35m"},
	{name: "green", code: "\x1b[32m"},
	{name: "blue", code: "\x1b[34m"},
}

// Canvas is a drawn plot. All series share one value axis so that an ideal
// curve can be compared against the observed one.
type Canvas struct {
	Width  int
	Height int
	Min    float64
	Max    float64

	cells  [][]uint8
	owners [][]int
}

// Draw plots series onto a canvas of opts.Width x opts.Height cells.
func Draw(series []Series, opts Options) Canvas {
	width := opts.Width
	if width < 1 {
		width = 1
	}
	height := opts.Height
	if height <= 0 {
		height = defaultPlotHeight
	}
	minVal, maxVal := seriesRange(series, opts.ZeroBased)
	c := Canvas{
		Width:  width,
		Height: height,
		Min:    minVal,
		Max:    maxVal,
		cells:  makeCells(height, width),
		owners: makeOwners(height, width),
	}

	for si, s := range series {
		values := resampleSeries(s.Values, width)
		if len(values) == 0 {
			continue
		}
		style := lineStyles[si%len(lineStyles)]
		layer := makeCells(height, width)
		prevX, prevY := -1, -1
		for x, v := range values {
			px := x * 2
			py := valueToRow(v, minVal, maxVal, height*4)
			if prevX >= 0 {
				drawLine(prevX, prevY, px, py, func(dx, dy int) {
					if style.shouldPlot(dx) {
						setBrailleDot(layer, dx, dy)
					}
				})
			} else if style.shouldPlot(px) {
				setBrailleDot(layer, px, py)
			}
			prevX, prevY = px, py
		}
		c.merge(layer, si)
	}

	if len(series) > 0 && opts.Marker >= 0 && opts.Marker < len(series[0].Values) {
		col := columnFor(opts.Marker, len(series[0].Values), width)
		row := valueToRow(series[0].Values[opts.Marker], minVal, maxVal, height*4) / 4
		c.cells[row][col] = 0xFF
		c.owners[row][col] = MarkerOwner
	}
	return c
}

// Lines renders the canvas. paint, when set, wraps each run of cells drawn
// by the same owner; it is how callers add color.
func (c Canvas) Lines(paint func(owner int, s string) string) []string {
	lines := make([]string, 0, c.Height)
	for y := 0; y < c.Height; y++ {
		var b strings.Builder
		var run strings.Builder
		owner := NoOwner
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if paint != nil {
				b.WriteString(paint(owner, run.String()))
			} else {
				b.WriteString(run.String())
			}
			run.Reset()
		}
		for x := 0; x < c.Width; x++ {
			if c.owners[y][x] != owner {
				flush()
				owner = c.owners[y][x]
			}
			run.WriteRune(brailleFromMask(c.cells[y][x]))
		}
		flush()
		lines = append(lines, b.String())
	}
	return lines
}

// Owner returns the series index that drew the cell first, NoOwner or
// MarkerOwner.
func (c Canvas) Owner(x, y int) int {
	if y < 0 || y >= len(c.owners) || x < 0 || x >= len(c.owners[y]) {
		return NoOwner
	}
	return c.owners[y][x]
}

func (c Canvas) merge(layer [][]uint8, si int) {
	for y := range layer {
		for x, mask := range layer[y] {
			if mask == 0 {
				continue
			}
			c.cells[y][x] |= mask
			if c.owners[y][x] == NoOwner {
				c.owners[y][x] = si
			}
		}
	}
}

// Write renders a plot with a title, a labelled value axis and a legend.
// A non-positive width fits the plot to the terminal.
func Write(w io.Writer, title string, series []Series, opts Options, forceColor bool) error {
	series = filterSeries(series)
	if len(series) == 0 {
		return nil
	}
	if opts.Width <= 0 {
		opts.Width = PlotWidthFor(terminalWidth())
	}
	if opts.Width < minPlotWidth {
		opts.Width = minPlotWidth
	}
	canvas := Draw(series, opts)
	useColor := shouldUseColor(w, forceColor)

	var paint func(int, string) string
	if useColor {
		paint = func(owner int, s string) string {
			switch {
			case owner == MarkerOwner:
				return markerColor + s + colorReset
			case owner >= 0:
				return colorPalette[owner%len(colorPalette)].code + s + colorReset
			default:
				return s
			}
		}
	}

	if title != "" {
		if _, err := fmt.Fprintln(w, title); err != nil {
			return err
		}
	}
	labels := makeAxisLabels(canvas.Height, canvas.Min, canvas.Max)
	for y, line := range canvas.Lines(paint) {
		label := runewidth.FillLeft(runewidth.Truncate(labels[y], axisLabelWidth, ""), axisLabelWidth)
		if _, err := fmt.Fprintln(w, label+axisSeparator+line); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, renderLegend(series, useColor)); err != nil {
		return err
	}
	return nil
}

// PlotWidthFor computes a plot width that fits within the total available width.
func PlotWidthFor(totalWidth int) int {
	if totalWidth <= 0 {
		return minPlotWidth
	}
	plotWidth := totalWidth - axisLabelWidth - runewidth.StringWidth(axisSeparator)
	if plotWidth < minPlotWidth {
		plotWidth = minPlotWidth
	}
	return plotWidth
}

// FormatValue renders an axis value compactly.
func FormatValue(v float64) string {
	switch {
	case math.Abs(v) >= 1000 || v == math.Trunc(v):
		return fmt.Sprintf("%.0f", v)
	case math.Abs(v) >= 10:
		return fmt.Sprintf("%.1f", v)
	default:
		return fmt.Sprintf("%.2f", v)
	}
}

func filterSeries(series []Series) []Series {
	out := make([]Series, 0, len(series))
	for _, s := range series {
		if len(s.Values) == 0 {
			continue
		}
		out = append(out, s)
	}
	return out
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

func shouldUseColor(w io.Writer, force bool) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if force {
		return true
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}

func makeAxisLabels(height int, minVal, maxVal float64) []string {
	labels := make([]string, height)
	if height <= 0 {
		return labels
	}
	labels[0] = FormatValue(maxVal)
	if height > 2 {
		labels[height/2] = FormatValue((minVal + maxVal) / 2)
	}
	if height > 1 {
		labels[height-1] = FormatValue(minVal)
	}
	return labels
}

// Range returns the value range Draw uses for series.
func Range(series []Series, zeroBased bool) (float64, float64) {
	return seriesRange(series, zeroBased)
}

func seriesRange(series []Series, zeroBased bool) (float64, float64) {
	minVal := math.Inf(1)
	maxVal := math.Inf(-1)
	for _, s := range series {
		for _, v := range s.Values {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			minVal = math.Min(minVal, v)
			maxVal = math.Max(maxVal, v)
		}
	}
	if math.IsInf(minVal, 1) {
		return 0, 1
	}
	if zeroBased && minVal > 0 {
		minVal = 0
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		minVal--
		maxVal++
	}
	return minVal, maxVal
}

func makeCells(height, width int) [][]uint8 {
	cells := make([][]uint8, height)
	for y := 0; y < height; y++ {
		cells[y] = make([]uint8, width)
	}
	return cells
}

func makeOwners(height, width int) [][]int {
	owners := make([][]int, height)
	for y := 0; y < height; y++ {
		owners[y] = make([]int, width)
		for x := range owners[y] {
			owners[y][x] = NoOwner
		}
	}
	return owners
}

func (ls lineStyle) shouldPlot(x int) bool {
	if ls.period <= 1 {
		return true
	}
	if x < 0 {
		x = -x
	}
	return x%ls.period < ls.on
}

// columnFor maps index i of n samples to the cell column resampleSeries puts it in.
func columnFor(i, n, width int) int {
	if n <= 1 || width <= 1 {
		return 0
	}
	if n > width {
		return i * width / n
	}
	return int(math.Round(float64(i) * float64(width-1) / float64(n-1)))
}

func resampleSeries(values []float64, width int) []float64 {
	if len(values) == 0 || width <= 0 {
		return nil
	}
	if len(values) == width {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, width)
	if len(values) > width {
		for i := 0; i < width; i++ {
			start := i * len(values) / width
			end := (i + 1) * len(values) / width
			if end <= start {
				end = start + 1
			}
			if end > len(values) {
				end = len(values)
			}
			var sum float64
			for _, v := range values[start:end] {
				sum += v
			}
			out[i] = sum / float64(end-start)
		}
		return out
	}
	if width == 1 || len(values) == 1 {
		for i := range out {
			out[i] = values[0]
		}
		return out
	}
	for i := 0; i < width; i++ {
		pos := float64(i) * float64(len(values)-1) / float64(width-1)
		idx := int(math.Floor(pos))
		if idx >= len(values)-1 {
			out[i] = values[len(values)-1]
			continue
		}
		frac := pos - float64(idx)
		out[i] = values[idx]*(1-frac) + values[idx+1]*frac
	}
	return out
}

func valueToRow(v, minVal, maxVal float64, height int) int {
	if height <= 1 {
		return 0
	}
	pos := (v - minVal) / (maxVal - minVal)
	row := int(math.Round((1 - pos) * float64(height-1)))
	if row < 0 {
		row = 0
	}
	if row >= height {
		row = height - 1
	}
	return row
}

func renderLegend(series []Series, useColor bool) string {
	parts := make([]string, 0, len(series))
	marker := brailleFromMask(0x01)
	for i, s := range series {
		label := fmt.Sprintf("%c %s (%s)", marker, s.Name, lineStyles[i%len(lineStyles)].name)
		if useColor {
			label = colorPalette[i%len(colorPalette)].code + label + colorReset
		}
		parts = append(parts, label)
	}
	return "Legend: " + strings.Join(parts, "  ")
}

func drawLine(x0, y0, x1, y1 int, plot func(x, y int)) {
	dx := absInt(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -absInt(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			if x0 == x1 {
				break
			}
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			if y0 == y1 {
				break
			}
			err += dx
			y0 += sy
		}
	}
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func setBrailleDot(cells [][]uint8, x, y int) {
	if y < 0 || x < 0 {
		return
	}
	cellY := y / 4
	cellX := x / 2
	if cellY >= len(cells) || cellX >= len(cells[cellY]) {
		return
	}
	cells[cellY][cellX] |= brailleDotMask(x%2, y%4)
}

// brailleDotMask maps a dot position inside a 2x4 cell to its Unicode bit.
func brailleDotMask(x, y int) uint8 {
	switch {
	case x == 0 && y == 0:
		return 0x01
	case x == 0 && y == 1:
		return 0x02
	case x == 0 && y == 2:
		return 0x04
	case x == 0 && y == 3:
		return 0x40
	case x == 1 && y == 0:
		return 0x08
	case x == 1 && y == 1:
		return 0x10
	case x == 1 && y == 2:
		return 0x20
	case x == 1 && y == 3:
		return 0x80
	default:
		return 0
	}
}

func brailleFromMask(mask uint8) rune {
	return rune(0x2800 + int(mask))
}
