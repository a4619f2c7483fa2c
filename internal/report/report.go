// Package report renders analyzed datasets as plain text.
package report

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/verte-zerg/zipfr/internal/chart"
	"github.com/verte-zerg/zipfr/internal/model"
	"github.com/verte-zerg/zipfr/internal/zipf"
)

const (
	resultsTitle   = "Zipfian Text Analysis Results"
	defaultHeight  = 10
	minLogValue    = 0.1
	durationFormat = 10 * time.Microsecond
)

// Options controls the static report.
type Options struct {
	Top int
	// Width is the total plot width including the axis; zero fits the terminal.
	Width      int
	Height     int
	LogScale   bool
	Zipf       bool
	ForceColor bool
}

// Render prints a summary, the top words and a rank/frequency plot for each
// dataset.
func Render(w io.Writer, datasets []*model.Dataset, opts Options) error {
	if len(datasets) == 0 {
		_, err := fmt.Fprintln(w, "No datasets loaded.")
		return err
	}
	for i, ds := range datasets {
		if i > 0 {
			if _, err := fmt.Fprintln(w, ""); err != nil {
				return err
			}
		}
		if err := RenderSummary(w, ds); err != nil {
			return err
		}
		if err := RenderTop(w, ds, opts.Top); err != nil {
			return err
		}
		if err := RenderPlot(w, ds, opts); err != nil {
			return err
		}
	}
	return nil
}

// RenderSummary prints totals and timings for one dataset.
func RenderSummary(w io.Writer, ds *model.Dataset) error {
	lines := []string{
		resultsTitle,
		strings.Repeat("=", len(resultsTitle)),
		"Dataset: " + ds.Name,
	}
	if ds.Path != "" {
		lines = append(lines, "Path: "+ds.Path)
	}
	lines = append(lines,
		fmt.Sprintf("Total words: %d", ds.TotalWords),
		fmt.Sprintf("Unique words: %d", ds.UniqueWords),
		"",
		"Performance Metrics:",
		"  File parsing: "+formatDuration(ds.ParseDuration),
		"  Word analysis: "+formatDuration(ds.AnalyzeDuration),
		"  Total processing: "+formatDuration(ds.ParseDuration+ds.AnalyzeDuration),
		fmt.Sprintf("  Words per second: %.0f", ds.WordsPerSecond()),
		"",
	)
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderTop prints an aligned table of the top n words with their Zipf fit
// against the most frequent word.
func RenderTop(w io.Writer, ds *model.Dataset, n int) error {
	words := topWords(ds, n)
	if len(words) == 0 {
		_, err := fmt.Fprintln(w, "No words found.")
		return err
	}
	state := zipf.State{Enabled: true}
	headers := []string{"Rank", "Word", "Count", "Percent", "Zipf", "Tags"}
	rows := make([][]string, 0, len(words))
	for _, wc := range words {
		fit := "-"
		if ratio, ok := zipf.Fit(wc, words, ds.Words, state, zipf.ScopeAbsolute); ok {
			fit = fmt.Sprintf("%.2f", ratio)
		}
		rows = append(rows, []string{
			strconv.Itoa(wc.Rank),
			wc.Word,
			strconv.Itoa(wc.Count),
			fmt.Sprintf("%.2f%%", percent(wc.Count, ds.TotalWords)),
			fit,
			tagNames(wc.Tags),
		})
	}
	for _, line := range formatTable(headers, rows, map[int]bool{0: true, 2: true, 3: true, 4: true}) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderPlot draws counts of the top words by rank, with the ideal Zipf curve
// when opts.Zipf is set.
func RenderPlot(w io.Writer, ds *model.Dataset, opts Options) error {
	words := topWords(ds, opts.Top)
	if len(words) < 2 {
		return nil
	}
	actual := make([]float64, len(words))
	for i, wc := range words {
		actual[i] = scaleValue(float64(wc.Count), opts.LogScale)
	}
	series := []chart.Series{{Name: "actual", Values: actual}}
	if opts.Zipf {
		ideal := zipf.Overlay(words, ds.Words, zipf.State{Enabled: true}, zipf.ScopeAbsolute)
		for i := range ideal {
			ideal[i] = scaleValue(ideal[i], opts.LogScale)
		}
		series = append(series, chart.Series{Name: "zipf", Values: ideal})
	}

	title := "Zipf Distribution"
	if opts.LogScale {
		title += " (Log Scale)"
	}
	height := opts.Height
	if height <= 0 {
		height = defaultHeight
	}
	width := 0
	if opts.Width > 0 {
		width = chart.PlotWidthFor(opts.Width)
	}
	return chart.Write(w, title, series, chart.Options{
		Width:     width,
		Height:    height,
		ZeroBased: !opts.LogScale,
		Marker:    -1,
	}, opts.ForceColor)
}

// WriteResults writes the full ranking of every dataset in a stable,
// line-oriented format.
func WriteResults(w io.Writer, datasets []*model.Dataset) error {
	for i, ds := range datasets {
		var b strings.Builder
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(resultsTitle + "\n")
		b.WriteString(strings.Repeat("=", len(resultsTitle)) + "\n")
		fmt.Fprintf(&b, "Dataset: %s\n", ds.Name)
		fmt.Fprintf(&b, "Total words: %d\n", ds.TotalWords)
		fmt.Fprintf(&b, "Unique words: %d\n", ds.UniqueWords)
		b.WriteString("\n")
		fmt.Fprintf(&b, "%4s,%-20s,%8s\n", "Rank", "Word", "Count")
		if _, err := io.WriteString(w, b.String()); err != nil {
			return fmt.Errorf("failed to write results: %w", err)
		}
		for _, wc := range ds.Words {
			if _, err := fmt.Fprintf(w, "%d,%s,%d\n", wc.Rank, wc.Word, wc.Count); err != nil {
				return fmt.Errorf("failed to write results: %w", err)
			}
		}
	}
	return nil
}

func topWords(ds *model.Dataset, n int) []model.WordCount {
	if n <= 0 || n > len(ds.Words) {
		n = len(ds.Words)
	}
	return ds.Words[:n]
}

func percent(count, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(count) / float64(total) * 100
}

func scaleValue(v float64, logScale bool) float64 {
	if !logScale {
		return v
	}
	if v <= 0 {
		return minLogValue
	}
	return max(math.Log(v), minLogValue)
}

func tagNames(tags []model.Tag) string {
	names := make([]string, len(tags))
	for i, t := range tags {
		names[i] = t.Name
	}
	return strings.Join(names, ",")
}

func formatDuration(d time.Duration) string {
	if d <= 0 {
		return "0s"
	}
	if d < time.Millisecond {
		return d.Round(time.Microsecond).String()
	}
	return d.Round(durationFormat).String()
}
