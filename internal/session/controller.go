// Package session holds the interactive analysis state and the key-driven
// state machine that mutates it.
//
// The controller knows nothing about terminals. Renderers feed it events
// through Dispatch and read a ViewModel snapshot back after every event.
package session

import (
	"github.com/verte-zerg/zipfr/internal/filter"
	"github.com/verte-zerg/zipfr/internal/model"
	"github.com/verte-zerg/zipfr/internal/search"
	"github.com/verte-zerg/zipfr/internal/zipf"
)

// DefaultPageSize is used until the renderer reports a list height.
const DefaultPageSize = 20

// DefaultStopwordsTag is the tag toggled by the stop-words shortcut.
const DefaultStopwordsTag = "stopwords"

// maxDigits bounds the line-jump buffer so it always parses as an int.
const maxDigits = 9

// Mode is the active input mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModeSearch
	ModeNumberInput
	ModeFilterTag
	ModeFilterAction
)

func (m Mode) String() string {
	switch m {
	case ModeSearch:
		return "SEARCH"
	case ModeNumberInput:
		return "LINE"
	case ModeFilterTag:
		return "FILTER"
	case ModeFilterAction:
		return "FILTER-ACTION"
	default:
		return "NORMAL"
	}
}

// ValueMode selects how counts are shown.
type ValueMode int

const (
	ValuesRaw ValueMode = iota
	ValuesPercent
)

func (v ValueMode) String() string {
	if v == ValuesPercent {
		return "percent"
	}
	return "raw"
}

// TagLookup resolves a tag name against a catalog.
type TagLookup interface {
	Lookup(name string) (model.Tag, bool)
}

// Options seeds the display state of a new controller.
type Options struct {
	StopwordsTag string
	// Tags resolves the stop-words tag. Defaults to a scan of the catalog.
	Tags         TagLookup
	Zipf         zipf.State
	Scope        zipf.Scope
	Values       ValueMode
	LogScale     bool
}

// Cursor is the per-dataset selection and scroll position. Selected is -1
// when the filtered list is empty.
type Cursor struct {
	Selected int
	Offset   int
}

type searchState struct {
	query      string
	results    []search.Result
	cursor     int
	suggestion string
}

// Controller owns all session state. It is not safe for concurrent use.
type Controller struct {
	datasets []*model.Dataset
	active   int
	cursors  []Cursor

	catalog   []model.Tag
	tags      TagLookup
	stopwords string
	filters   filter.Set
	engine    *filter.Engine

	search searchState

	zipf     zipf.State
	scope    zipf.Scope
	values   ValueMode
	logScale bool

	mode    Mode
	digits  string
	pick    string
	pending model.Tag

	page int
	done bool
}

// New builds a controller over datasets. catalog is the ordered tag list
// offered by the filter picker.
func New(datasets []*model.Dataset, catalog []model.Tag, opts Options) *Controller {
	stopwords := opts.StopwordsTag
	if stopwords == "" {
		stopwords = DefaultStopwordsTag
	}
	lookup := opts.Tags
	if lookup == nil {
		lookup = catalogLookup(catalog)
	}
	c := &Controller{
		datasets:  datasets,
		cursors:   make([]Cursor, len(datasets)),
		catalog:   catalog,
		tags:      lookup,
		stopwords: stopwords,
		engine:    filter.NewEngine(),
		zipf:      opts.Zipf,
		scope:     opts.Scope,
		values:    opts.Values,
		logScale:  opts.LogScale,
		page:      DefaultPageSize,
	}
	c.engine.Prime(c.datasets, c.filters)
	for i := range c.cursors {
		c.clampCursor(i)
	}
	return c
}

// Dispatch applies one event.
func (c *Controller) Dispatch(ev Event) {
	switch ev := ev.(type) {
	case ResizeEvent:
		c.resize(ev.Height)
	case KeyEvent:
		c.handleKey(ev)
	}
}

// Done reports whether a quit command was received.
func (c *Controller) Done() bool { return c.done }

// Mode returns the active input mode.
func (c *Controller) Mode() Mode { return c.mode }

// ActiveIndex returns the index of the active dataset.
func (c *Controller) ActiveIndex() int { return c.active }

// Dataset returns the active dataset, or nil when none is loaded.
func (c *Controller) Dataset() *model.Dataset {
	if len(c.datasets) == 0 {
		return nil
	}
	return c.datasets[c.active]
}

// Filtered returns the active filtered list. Callers must not modify it.
func (c *Controller) Filtered() []model.WordCount {
	return c.filtered(c.active)
}

// Cursor returns the active dataset's cursor.
func (c *Controller) Cursor() Cursor {
	if len(c.cursors) == 0 {
		return Cursor{Selected: -1}
	}
	return c.cursors[c.active]
}

// Filters returns a copy of the global filter set.
func (c *Controller) Filters() filter.Set { return c.filters.Clone() }

// Zipf returns the overlay state.
func (c *Controller) Zipf() zipf.State { return c.zipf }

// Scope returns the chart scope.
func (c *Controller) Scope() zipf.Scope { return c.scope }

// Values returns the value display mode.
func (c *Controller) Values() ValueMode { return c.values }

// LogScale reports whether the chart uses a log axis.
func (c *Controller) LogScale() bool { return c.logScale }

// PageSize returns the last measured list height.
func (c *Controller) PageSize() int { return c.page }

// Query returns the current search text.
func (c *Controller) Query() string { return c.search.query }

// Results returns the current search results.
func (c *Controller) Results() []search.Result { return c.search.results }

// Digits returns the pending line-jump buffer.
func (c *Controller) Digits() string { return c.digits }

func (c *Controller) filtered(idx int) []model.WordCount {
	if idx < 0 || idx >= len(c.datasets) {
		return nil
	}
	return c.engine.Filtered(idx, c.datasets[idx], c.filters)
}

func (c *Controller) handleKey(k KeyEvent) {
	if k.Code == KeyCtrlC {
		c.done = true
		return
	}
	switch c.mode {
	case ModeSearch:
		c.searchKey(k)
	case ModeNumberInput:
		c.numberKey(k)
	case ModeFilterTag:
		c.filterTagKey(k)
	case ModeFilterAction:
		c.filterActionKey(k)
	default:
		c.normalKey(k)
	}
}

func (c *Controller) normalKey(k KeyEvent) {
	switch k.Code {
	case KeyDown:
		c.moveBy(1)
	case KeyUp:
		c.moveBy(-1)
	case KeyHome:
		c.moveTo(0)
	case KeyEnd:
		c.moveToEnd()
	case KeyCtrlD:
		c.moveBy(c.halfPage())
	case KeyCtrlU:
		c.moveBy(-c.halfPage())
	case KeyCtrlF, KeyPgDown:
		c.moveBy(c.page)
	case KeyCtrlB, KeyPgUp:
		c.moveBy(-c.page)
	case KeyTab:
		c.switchDataset(1)
	case KeyShiftTab:
		c.switchDataset(-1)
	case KeyEsc:
		c.digits = ""
		c.clearSearch()
	case KeyRune:
		c.normalRune(k.Rune)
	}
}

func (c *Controller) normalRune(r rune) {
	if r >= '0' && r <= '9' {
		c.digits = string(r)
		c.mode = ModeNumberInput
		return
	}
	switch r {
	case 'j', 'l':
		c.moveBy(1)
	case 'k', 'h':
		c.moveBy(-1)
	case 'g':
		c.moveTo(0)
	case 'G':
		c.moveToEnd()
	case ']':
		c.switchDataset(1)
	case '[':
		c.switchDataset(-1)
	case '/':
		c.startSearch()
	case 'n':
		c.cycleMatch(1)
	case 'N':
		c.cycleMatch(-1)
	case 'f':
		c.pick = ""
		c.mode = ModeFilterTag
	case 'C':
		c.clearFilters()
	case 'S':
		c.filters.ToggleSingletons()
		c.filtersChanged()
	case 'W':
		c.toggleStopwords()
	case 'L':
		c.logScale = !c.logScale
	case 'Z':
		c.zipf.Enabled = !c.zipf.Enabled
	case 'B':
		if c.zipf.Basis == zipf.BasisFiltered {
			c.zipf.Basis = zipf.BasisUnfiltered
		} else {
			c.zipf.Basis = zipf.BasisFiltered
		}
	case 'R':
		if c.zipf.Reference == zipf.ReferenceAbsolute {
			c.zipf.Reference = zipf.ReferenceRelative
		} else {
			c.zipf.Reference = zipf.ReferenceAbsolute
		}
	case 'A':
		if c.scope == zipf.ScopeRelative {
			c.scope = zipf.ScopeAbsolute
		} else {
			c.scope = zipf.ScopeRelative
		}
	case 'P':
		if c.values == ValuesRaw {
			c.values = ValuesPercent
		} else {
			c.values = ValuesRaw
		}
	case 'q':
		c.done = true
	}
}

func (c *Controller) halfPage() int {
	return maxInt(1, c.page/2)
}

func (c *Controller) resize(height int) {
	c.page = maxInt(1, height)
	for i := range c.cursors {
		c.clampCursor(i)
	}
}

func (c *Controller) moveBy(delta int) {
	if len(c.cursors) == 0 || c.cursors[c.active].Selected < 0 {
		return
	}
	c.moveTo(c.cursors[c.active].Selected + delta)
}

func (c *Controller) moveToEnd() {
	c.moveTo(len(c.Filtered()) - 1)
}

// moveTo selects idx in the active list, clamped into range.
func (c *Controller) moveTo(idx int) {
	if len(c.Filtered()) == 0 {
		return
	}
	c.cursors[c.active].Selected = idx
	c.clampCursor(c.active)
}

// clampCursor keeps the selection in range and scrolls the window the
// minimum distance needed to keep it visible.
func (c *Controller) clampCursor(idx int) {
	n := len(c.filtered(idx))
	cur := &c.cursors[idx]
	if n == 0 {
		cur.Selected = -1
		cur.Offset = 0
		return
	}
	cur.Selected = clampInt(cur.Selected, 0, n-1)
	if cur.Selected < cur.Offset {
		cur.Offset = cur.Selected
	}
	if cur.Selected >= cur.Offset+c.page {
		cur.Offset = cur.Selected - c.page + 1
	}
	cur.Offset = clampInt(cur.Offset, 0, maxInt(0, n-c.page))
}

func (c *Controller) switchDataset(delta int) {
	n := len(c.datasets)
	if n <= 1 {
		return
	}
	c.active = ((c.active+delta)%n + n) % n
	c.clampCursor(c.active)
	c.refreshSearch()
}

func (c *Controller) clearFilters() {
	c.filters.Clear()
	c.filtersChanged()
}

func (c *Controller) toggleStopwords() {
	tag, ok := c.tags.Lookup(c.stopwords)
	if !ok {
		return
	}
	c.filters.ToggleExclude(tag)
	c.filtersChanged()
}

type catalogLookup []model.Tag

func (l catalogLookup) Lookup(name string) (model.Tag, bool) {
	key := model.TagKey(model.Tag{Name: name})
	for _, tag := range l {
		if model.TagKey(tag) == key {
			return tag, true
		}
	}
	return model.Tag{}, false
}

// filtersChanged rebuilds every dataset, since filters are global, and
// restores the invariants that depend on the filtered lists.
func (c *Controller) filtersChanged() {
	c.engine.Prime(c.datasets, c.filters)
	for i := range c.cursors {
		c.clampCursor(i)
	}
	c.refreshSearch()
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
