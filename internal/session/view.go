package session

import (
	"math"
	"time"

	"github.com/verte-zerg/zipfr/internal/model"
	"github.com/verte-zerg/zipfr/internal/zipf"
)

// minLogValue is the floor of log-scaled chart values.
const minLogValue = 0.1

// ViewModel is a read-only snapshot of everything a renderer draws.
type ViewModel struct {
	Header Header
	Rows   []Row
	Chart  Chart
	Status Status
}

// Header carries dataset identity and aggregate statistics.
type Header struct {
	Name            string
	Path            string
	Index           int // 1-based
	Count           int
	TotalWords      int
	UniqueWords     int
	FilteredWords   int
	FilteredUnique  int
	ParseDuration   time.Duration
	AnalyzeDuration time.Duration
	WordsPerSecond  float64
}

// Row is one visible entry of the filtered list.
type Row struct {
	Rank     int
	Word     string
	Count    int
	Value    float64
	Tags     []model.Tag
	Fit      float64
	HasFit   bool
	Class    zipf.Class
	Selected bool
	Match    bool
}

// Point is a chart sample at a rank.
type Point struct {
	Rank  int
	Value float64
}

// Chart carries the plotted series. Values are already scaled.
type Chart struct {
	Title    string
	Actual   []Point
	Overlay  []Point
	Marker   int // index into Actual, -1 when the selection is not plotted
	LogScale bool
	Scope    zipf.Scope
	Values   ValueMode
}

// PickerOption is one tag offered by the filter picker.
type PickerOption struct {
	Ordinal  int
	Tag      model.Tag
	Excluded bool
	Included bool
}

// Status is footer state.
type Status struct {
	Mode        Mode
	Query       string
	Matches     int
	MatchCursor int // 1-based, 0 when there are no matches
	Suggestion  string
	Digits      string
	Filters     string
	Zipf        string
	LogScale    bool
	Scope       zipf.Scope
	Values      ValueMode
	Picker      []PickerOption
	PickBuffer  string
	Pending     model.Tag
}

// View builds the snapshot for the current state.
func (c *Controller) View() ViewModel {
	vm := ViewModel{Status: c.status(), Chart: Chart{Marker: -1, LogScale: c.logScale, Scope: c.scope, Values: c.values}}
	ds := c.Dataset()
	if ds == nil {
		vm.Chart.Title = c.chartTitle()
		return vm
	}
	words := c.Filtered()
	cur := c.Cursor()

	vm.Header = Header{
		Name:            ds.Name,
		Path:            ds.Path,
		Index:           c.active + 1,
		Count:           len(c.datasets),
		TotalWords:      ds.TotalWords,
		UniqueWords:     ds.UniqueWords,
		FilteredUnique:  len(words),
		ParseDuration:   ds.ParseDuration,
		AnalyzeDuration: ds.AnalyzeDuration,
		WordsPerSecond:  ds.WordsPerSecond(),
	}
	for _, wc := range words {
		vm.Header.FilteredWords += wc.Count
	}

	start, end := c.window(len(words), cur)
	visible := words[start:end]
	chartWords := visible
	if c.scope == zipf.ScopeAbsolute {
		chartWords = words
	}
	reference := words
	if c.zipf.Basis == zipf.BasisUnfiltered {
		reference = ds.Words
	}

	matches := make(map[int]struct{}, len(c.search.results))
	for _, r := range c.search.results {
		matches[r.Index] = struct{}{}
	}

	vm.Rows = make([]Row, 0, len(visible))
	for i, wc := range visible {
		idx := start + i
		row := Row{
			Rank:     wc.Rank,
			Word:     wc.Word,
			Count:    wc.Count,
			Value:    c.value(float64(wc.Count), ds),
			Tags:     wc.Tags,
			Selected: idx == cur.Selected,
		}
		if _, ok := matches[idx]; ok {
			row.Match = true
		}
		if ratio, ok := zipf.Fit(wc, chartWords, reference, c.zipf, c.scope); ok {
			row.Fit = ratio
			row.HasFit = true
			row.Class = zipf.Classify(ratio)
		}
		vm.Rows = append(vm.Rows, row)
	}

	vm.Chart.Title = c.chartTitle()
	vm.Chart.Actual = make([]Point, 0, len(chartWords))
	for _, wc := range chartWords {
		vm.Chart.Actual = append(vm.Chart.Actual, Point{Rank: wc.Rank, Value: c.plotValue(float64(wc.Count), ds)})
	}
	for i, ideal := range zipf.Overlay(chartWords, reference, c.zipf, c.scope) {
		vm.Chart.Overlay = append(vm.Chart.Overlay, Point{Rank: chartWords[i].Rank, Value: c.plotValue(ideal, ds)})
	}
	if cur.Selected >= 0 {
		marker := cur.Selected
		if c.scope == zipf.ScopeRelative {
			marker -= start
		}
		if marker >= 0 && marker < len(vm.Chart.Actual) {
			vm.Chart.Marker = marker
		}
	}
	return vm
}

// window returns the visible range [start, end) of a list of length n.
func (c *Controller) window(n int, cur Cursor) (int, int) {
	if n == 0 {
		return 0, 0
	}
	start := clampInt(cur.Offset, 0, n-1)
	return start, minInt(n, start+c.page)
}

func (c *Controller) value(count float64, ds *model.Dataset) float64 {
	if c.values == ValuesPercent {
		if ds.TotalWords == 0 {
			return 0
		}
		return count / float64(ds.TotalWords) * 100
	}
	return count
}

func (c *Controller) plotValue(count float64, ds *model.Dataset) float64 {
	v := c.value(count, ds)
	if c.logScale {
		return LogValue(v)
	}
	return v
}

// LogValue is the log-axis transform, floored so that counts of one stay
// visible above the axis.
func LogValue(v float64) float64 {
	if v <= 0 {
		return minLogValue
	}
	return math.Max(math.Log(v), minLogValue)
}

func (c *Controller) chartTitle() string {
	title := "Zipf Distribution"
	if c.logScale {
		title += " (Log Scale)"
	}
	if c.zipf.Enabled {
		if c.zipf.Reference == zipf.ReferenceRelative {
			title += " + Relative"
		} else {
			title += " + Absolute"
		}
	}
	if c.scope == zipf.ScopeAbsolute {
		title += " [all]"
	}
	return title
}

func (c *Controller) status() Status {
	st := Status{
		Mode:       c.mode,
		Query:      c.search.query,
		Matches:    len(c.search.results),
		Suggestion: c.search.suggestion,
		Digits:     c.digits,
		Filters:    c.filters.Summary(),
		Zipf:       c.zipf.Label(),
		LogScale:   c.logScale,
		Scope:      c.scope,
		Values:     c.values,
		PickBuffer: c.pick,
		Pending:    c.pending,
	}
	if st.Matches > 0 {
		st.MatchCursor = c.search.cursor + 1
	}
	if c.mode == ModeFilterTag || c.mode == ModeFilterAction {
		st.Picker = make([]PickerOption, 0, len(c.catalog))
		for i, tag := range c.catalog {
			st.Picker = append(st.Picker, PickerOption{
				Ordinal:  i + 1,
				Tag:      tag,
				Excluded: c.filters.IsExcluded(tag),
				Included: c.filters.IsIncluded(tag),
			})
		}
	}
	return st
}
