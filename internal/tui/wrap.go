package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

type segment struct {
	s     string
	width int
}

func newSegment(rendered string) segment {
	return segment{s: rendered, width: lipgloss.Width(rendered)}
}

// wrapSegments lays segments out greedily on lines of at most width cells,
// joined by sep. A segment wider than width gets a line of its own.
func wrapSegments(segments []segment, sep string, width int) []string {
	if len(segments) == 0 {
		return nil
	}
	sepWidth := runewidth.StringWidth(sep)
	var lines []string
	var line strings.Builder
	lineWidth := 0
	for _, seg := range segments {
		if lineWidth > 0 && width > 0 && lineWidth+sepWidth+seg.width > width {
			lines = append(lines, line.String())
			line.Reset()
			lineWidth = 0
		}
		if lineWidth > 0 {
			line.WriteString(sep)
			lineWidth += sepWidth
		}
		line.WriteString(seg.s)
		lineWidth += seg.width
	}
	lines = append(lines, line.String())
	return lines
}

func padLines(s string, width int) string {
	if width <= 0 || s == "" {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	return strings.Join(lines, "\n")
}

func padLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if lineWidth < width {
		return line + strings.Repeat(" ", width-lineWidth)
	}
	return line
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

// truncateLine shortens plain text to width cells.
func truncateLine(s string, width int) string {
	if width <= 0 {
		return s
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	if width <= 3 {
		return runewidth.Truncate(s, width, "")
	}
	return runewidth.Truncate(s, width, "...")
}
