package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/zipfr/internal/chart"
	"github.com/verte-zerg/zipfr/internal/model"
	"github.com/verte-zerg/zipfr/internal/session"
	"github.com/verte-zerg/zipfr/internal/zipf"
)

const (
	minChartWidth = 16
	tagGlyph      = "●"
	maxTagGlyphs  = 4
)

var classStyles = map[zipf.Class]lipgloss.Style{
	zipf.ClassNominal:  lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C")),
	zipf.ClassMild:     lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")),
	zipf.ClassModerate: lipgloss.NewStyle().Foreground(lipgloss.Color("#FF8C42")),
	zipf.ClassExtreme:  lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F")).Bold(true),
}

func (m *Model) renderHeader(vm session.ViewModel) string {
	h := vm.Header
	if h.Count == 0 {
		return titleStyle.Render("zipfr") + "  " + errorStyle.Render("no datasets loaded")
	}
	first := strings.Join([]string{
		titleStyle.Render("zipfr"),
		valueStyle.Render(h.Name) + headerStyle.Render(fmt.Sprintf(" [%d/%d]", h.Index, h.Count)),
		headerStyle.Render("Total ") + valueStyle.Render(strconv.Itoa(h.TotalWords)),
		headerStyle.Render("Unique ") + valueStyle.Render(strconv.Itoa(h.UniqueWords)),
		headerStyle.Render("Filtered ") + valueStyle.Render(fmt.Sprintf("%d/%d", h.FilteredWords, h.FilteredUnique)),
	}, "  ")
	second := fmt.Sprintf("Parse %s · Analysis %s · %.0f words/sec",
		formatDuration(h.ParseDuration), formatDuration(h.AnalyzeDuration), h.WordsPerSecond)
	if h.Path != "" {
		second += " · " + h.Path
	}
	return first + "\n" + headerStyle.Render(truncateLine(second, m.width))
}

func (m *Model) renderBody(vm session.ViewModel, height int) string {
	listWidth, chartWidth := m.layoutWidths()
	list := fitLines(renderList(vm, listWidth, height), listWidth, height)
	if chartWidth < minChartWidth {
		return list
	}
	var right string
	switch vm.Status.Mode {
	case session.ModeFilterTag, session.ModeFilterAction:
		right = renderPicker(vm.Status, chartWidth)
	default:
		right = renderChart(vm.Chart, chartWidth, height)
	}
	right = fitLines(right, chartWidth, height)
	return lipgloss.JoinHorizontal(lipgloss.Top, list, " ", right)
}

type listLayout struct {
	rank  int
	word  int
	value int
	fit   int
	tags  int
}

func renderList(vm session.ViewModel, width, height int) string {
	if len(vm.Rows) == 0 {
		msg := "no words match the current filters"
		if vm.Header.TotalWords == 0 {
			msg = "no words"
		}
		return mutedStyle.Render(truncateLine(msg, width))
	}

	values := make([]string, len(vm.Rows))
	layout := listLayout{rank: 4, value: 5}
	for i, row := range vm.Rows {
		values[i] = formatValue(row, vm.Status.Values)
		layout.rank = maxInt(layout.rank, len(strconv.Itoa(row.Rank)))
		layout.value = maxInt(layout.value, len(values[i]))
		if row.HasFit {
			layout.fit = 5
		}
		layout.tags = maxInt(layout.tags, minInt(len(row.Tags), maxTagGlyphs))
	}
	used := layout.rank + 1 + 1 + layout.value
	if layout.fit > 0 {
		used += layout.fit + 1
	}
	if layout.tags > 0 {
		used += layout.tags + 1
	}
	layout.word = maxInt(4, width-used)

	lines := make([]string, 0, len(vm.Rows)+1)
	lines = append(lines, headerStyle.Render(listHeader(layout)))
	for i, row := range vm.Rows {
		lines = append(lines, renderRow(row, values[i], layout))
	}
	return strings.Join(lines, "\n")
}

func listHeader(layout listLayout) string {
	parts := []string{
		runewidth.FillLeft("#", layout.rank),
		runewidth.FillRight("word", layout.word),
		runewidth.FillLeft("count", layout.value),
	}
	if layout.fit > 0 {
		parts = append(parts, runewidth.FillLeft("fit", layout.fit))
	}
	if layout.tags > 0 {
		parts = append(parts, runewidth.FillRight("tag", layout.tags))
	}
	return strings.Join(parts, " ")
}

func renderRow(row session.Row, value string, layout listLayout) string {
	rank := runewidth.FillLeft(strconv.Itoa(row.Rank), layout.rank)
	word := runewidth.FillRight(truncateLine(row.Word, layout.word), layout.word)
	val := runewidth.FillLeft(value, layout.value)
	fit := ""
	if layout.fit > 0 {
		fit = strings.Repeat(" ", layout.fit)
		if row.HasFit {
			fit = runewidth.FillLeft(formatFit(row.Fit), layout.fit)
		}
	}
	tags := row.Tags
	if len(tags) > maxTagGlyphs {
		tags = tags[:maxTagGlyphs]
	}

	if row.Selected {
		plain := []string{rank, word, val}
		if layout.fit > 0 {
			plain = append(plain, fit)
		}
		if layout.tags > 0 {
			plain = append(plain, runewidth.FillRight(strings.Repeat(tagGlyph, len(tags)), layout.tags))
		}
		return selectedStyle.Render(strings.Join(plain, " "))
	}

	wordStyle := rowStyle
	if row.Match {
		wordStyle = matchStyle
	}
	parts := []string{mutedStyle.Render(rank), wordStyle.Render(word), rowStyle.Render(val)}
	if layout.fit > 0 {
		style := mutedStyle
		if row.HasFit {
			style = classStyles[row.Class]
		}
		parts = append(parts, style.Render(fit))
	}
	if layout.tags > 0 {
		var b strings.Builder
		for _, tag := range tags {
			b.WriteString(tagStyle(tag).Render(tagGlyph))
		}
		b.WriteString(strings.Repeat(" ", layout.tags-len(tags)))
		parts = append(parts, b.String())
	}
	return strings.Join(parts, " ")
}

func tagStyle(tag model.Tag) lipgloss.Style {
	if tag.Color == "" {
		return mutedStyle
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(tag.Color))
}

func renderChart(c session.Chart, width, height int) string {
	title := titleStyle.Render(truncateLine(c.Title, width))
	if len(c.Actual) == 0 {
		return title + "\n" + mutedStyle.Render("nothing to plot")
	}
	plotHeight := height - 2
	if plotHeight < 1 {
		return title
	}

	actual := make([]float64, len(c.Actual))
	for i, p := range c.Actual {
		actual[i] = p.Value
	}
	series := []chart.Series{{Name: "actual", Values: actual}}
	if len(c.Overlay) > 0 {
		overlay := make([]float64, len(c.Overlay))
		for i, p := range c.Overlay {
			overlay[i] = p.Value
		}
		series = append(series, chart.Series{Name: "zipf", Values: overlay})
	}

	minVal, maxVal := chart.Range(series, !c.LogScale)
	top, bottom := chart.FormatValue(maxVal), chart.FormatValue(minVal)
	gutter := maxInt(runewidth.StringWidth(top), runewidth.StringWidth(bottom))
	plotWidth := width - gutter - 2
	if plotWidth < 4 {
		return title
	}
	canvas := chart.Draw(series, chart.Options{
		Width:     plotWidth,
		Height:    plotHeight,
		ZeroBased: !c.LogScale,
		Marker:    c.Marker,
	})
	lines := canvas.Lines(func(owner int, s string) string {
		switch {
		case owner == chart.MarkerOwner:
			return markerStyle.Render(s)
		case owner == 0:
			return actualStyle.Render(s)
		case owner == 1:
			return overlayStyle.Render(s)
		default:
			return s
		}
	})

	out := make([]string, 0, len(lines)+2)
	out = append(out, title)
	for y, line := range lines {
		label := ""
		switch y {
		case 0:
			label = top
		case len(lines) - 1:
			label = bottom
		}
		out = append(out, mutedStyle.Render(runewidth.FillLeft(label, gutter)+" │")+line)
	}

	axis := fmt.Sprintf("rank %d-%d", c.Actual[0].Rank, c.Actual[len(c.Actual)-1].Rank)
	legend := []string{mutedStyle.Render(axis), actualStyle.Render(tagGlyph + " actual")}
	if len(c.Overlay) > 0 {
		legend = append(legend, overlayStyle.Render(tagGlyph+" zipf"))
	}
	if c.Marker >= 0 {
		legend = append(legend, markerStyle.Render("⣿ selected"))
	}
	out = append(out, strings.Repeat(" ", gutter+2)+strings.Join(legend, "  "))
	return strings.Join(out, "\n")
}

func renderPicker(st session.Status, width int) string {
	if st.Mode == session.ModeFilterAction {
		lines := []string{
			titleStyle.Render("Filter: " + st.Pending.Name),
			pickerKeyStyle.Render("e") + mutedStyle.Render(" exclude"),
			pickerKeyStyle.Render("i") + mutedStyle.Render(" include only"),
			pickerKeyStyle.Render("x") + mutedStyle.Render(" remove"),
			pickerKeyStyle.Render("esc") + mutedStyle.Render(" cancel"),
		}
		return strings.Join(lines, "\n")
	}
	lines := []string{titleStyle.Render("Filter by tag") + mutedStyle.Render("  number + enter · c clears all · esc cancels")}
	if len(st.Picker) == 0 {
		lines = append(lines, mutedStyle.Render("no tags loaded"))
	}
	for _, opt := range st.Picker {
		state := ""
		switch {
		case opt.Excluded:
			state = errorStyle.Render(" excluded")
		case opt.Included:
			state = valueStyle.Render(" include-only")
		}
		desc := ""
		if opt.Tag.Description != "" {
			desc = "  " + opt.Tag.Description
		}
		text := fmt.Sprintf("%3d ", opt.Ordinal)
		line := pickerKeyStyle.Render(text) + tagStyle(opt.Tag).Render(tagGlyph) + " " + opt.Tag.Name + state +
			mutedStyle.Render(truncateLine(desc, maxInt(0, width-runewidth.StringWidth(text+opt.Tag.Name)-16)))
		lines = append(lines, line)
	}
	lines = append(lines, mutedStyle.Render("tag #: ")+valueStyle.Render(st.PickBuffer+"_"))
	return strings.Join(lines, "\n")
}

func (m *Model) renderFooter(vm session.ViewModel) string {
	lines := wrapSegments(statusSegments(vm.Status), "  ", m.width)
	lines = append(lines, m.renderHelp(vm.Status.Mode))
	return strings.Join(lines, "\n")
}

func statusSegments(st session.Status) []segment {
	segs := []segment{newSegment(modeStyle.Render(st.Mode.String()))}
	switch st.Mode {
	case session.ModeSearch:
		segs = append(segs, newSegment(valueStyle.Render("/"+st.Query+"_")))
		segs = append(segs, searchSegments(st)...)
	case session.ModeNumberInput:
		segs = append(segs, newSegment(mutedStyle.Render("line ")+valueStyle.Render(st.Digits)))
	default:
		if st.Query != "" {
			segs = append(segs, newSegment(valueStyle.Render("/"+st.Query)))
			segs = append(segs, searchSegments(st)...)
		}
	}
	segs = append(segs, newSegment(footerStyle.Render("filters: "+st.Filters)))
	if st.Zipf != "" {
		segs = append(segs, newSegment(overlayStyle.Render(st.Zipf)))
	}
	if st.LogScale {
		segs = append(segs, newSegment(markerStyle.Render("LOG")))
	}
	scope := "window"
	if st.Scope == zipf.ScopeAbsolute {
		scope = "all"
	}
	segs = append(segs, newSegment(footerStyle.Render("chart: "+scope)))
	segs = append(segs, newSegment(footerStyle.Render("values: "+st.Values.String())))
	return segs
}

func searchSegments(st session.Status) []segment {
	if st.Matches == 0 {
		segs := []segment{newSegment(errorStyle.Render("no match"))}
		if st.Suggestion != "" {
			segs = append(segs, newSegment(mutedStyle.Render("did you mean ")+valueStyle.Render(st.Suggestion)+mutedStyle.Render("?")))
		}
		return segs
	}
	return []segment{newSegment(footerStyle.Render(fmt.Sprintf("%d/%d matches", st.MatchCursor, st.Matches)))}
}

func (m *Model) renderHelp(mode session.Mode) string {
	switch mode {
	case session.ModeSearch:
		return footerStyle.Render("type to search · enter: jump to best match · esc: cancel")
	case session.ModeNumberInput:
		return footerStyle.Render("g: go to line · G: go to line · esc: cancel")
	case session.ModeFilterTag:
		return footerStyle.Render("digits: pick tag · enter: confirm · c: clear all · esc: cancel")
	case session.ModeFilterAction:
		return footerStyle.Render("e: exclude · i: include only · x: remove · esc: cancel")
	default:
		return m.help.View(m.keys)
	}
}

func formatValue(row session.Row, mode session.ValueMode) string {
	if mode == session.ValuesPercent {
		return fmt.Sprintf("%.2f%%", row.Value)
	}
	return strconv.Itoa(row.Count)
}

func formatFit(ratio float64) string {
	if ratio >= 100 {
		return ">99"
	}
	return fmt.Sprintf("%.2f", ratio)
}

func formatDuration(d time.Duration) string {
	switch {
	case d <= 0:
		return "0s"
	case d < time.Millisecond:
		return d.Round(time.Microsecond).String()
	default:
		return d.Round(10 * time.Microsecond).String()
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
