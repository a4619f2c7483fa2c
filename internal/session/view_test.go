package session

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/zipfr/internal/model"
	"github.com/verte-zerg/zipfr/internal/zipf"
)

func TestViewHeaderTotals(t *testing.T) {
	c := New([]*model.Dataset{foxDataset(), flatDataset("w", 3)}, nil, Options{})
	h := c.View().Header
	assert.Equal(t, "fox", h.Name)
	assert.Equal(t, 1, h.Index)
	assert.Equal(t, 2, h.Count)
	assert.Equal(t, 10, h.TotalWords)
	assert.Equal(t, 8, h.UniqueWords)
	assert.Equal(t, 10, h.FilteredWords)
	assert.Equal(t, 8, h.FilteredUnique)

	typeText(c, "S")
	h = c.View().Header
	assert.Equal(t, 10, h.TotalWords, "raw totals ignore filters")
	assert.Equal(t, 3, h.FilteredWords)
	assert.Equal(t, 1, h.FilteredUnique)
}

func TestViewRowsFollowWindow(t *testing.T) {
	c := New([]*model.Dataset{flatDataset("w", 10)}, nil, Options{})
	c.Dispatch(ResizeEvent{Height: 3})
	typeText(c, "6g")

	rows := c.View().Rows
	require.Len(t, rows, 3)
	assert.Equal(t, []int{4, 5, 6}, []int{rows[0].Rank, rows[1].Rank, rows[2].Rank})
	assert.False(t, rows[0].Selected)
	assert.True(t, rows[2].Selected)

	typeText(c, "k")
	rows = c.View().Rows
	assert.Equal(t, 4, rows[0].Rank, "window does not move while the selection stays visible")
	assert.True(t, rows[1].Selected)
}

func TestViewPercentValues(t *testing.T) {
	c := New([]*model.Dataset{foxDataset()}, []model.Tag{stopTag}, Options{})
	rows := c.View().Rows
	assert.InDelta(t, 3.0, rows[0].Value, 1e-9)

	typeText(c, "P")
	rows = c.View().Rows
	assert.InDelta(t, 30.0, rows[0].Value, 1e-9)
	assert.InDelta(t, 10.0, rows[1].Value, 1e-9)

	typeText(c, "W")
	rows = c.View().Rows
	assert.Equal(t, "quick", rows[0].Word)
	assert.InDelta(t, 10.0, rows[0].Value, 1e-9, "percent is relative to the dataset total")
}

func TestViewReferenceWordFitIsOne(t *testing.T) {
	ds := countsDataset("a", 50, 20, 16, 9, 3)
	c := New([]*model.Dataset{ds}, nil, Options{Zipf: zipf.State{Enabled: true}})

	for _, scope := range []string{"", "A"} {
		typeText(c, scope)
		rows := c.View().Rows
		require.True(t, rows[0].HasFit)
		assert.Equal(t, 1.0, rows[0].Fit)
		assert.Equal(t, zipf.ClassNominal, rows[0].Class)
	}

	typeText(c, "B")
	assert.Equal(t, 1.0, c.View().Rows[0].Fit)
}

func TestViewFitClasses(t *testing.T) {
	c := New([]*model.Dataset{foxDataset()}, nil, Options{})
	assert.False(t, c.View().Rows[0].HasFit)

	typeText(c, "Z")
	rows := c.View().Rows
	require.Len(t, rows, 8)
	assert.InDelta(t, 1.0/1.5, rows[1].Fit, 1e-9)
	assert.Equal(t, zipf.ClassModerate, rows[1].Class)
	assert.InDelta(t, 8.0/3.0, rows[7].Fit, 1e-9)
	assert.Equal(t, zipf.ClassExtreme, rows[7].Class)
}

func TestViewFitBasis(t *testing.T) {
	c := New([]*model.Dataset{foxDataset()}, []model.Tag{stopTag}, Options{Zipf: zipf.State{Enabled: true}})
	typeText(c, "W")
	rows := c.View().Rows
	assert.Equal(t, "quick", rows[0].Word)
	assert.Equal(t, 1.0, rows[0].Fit, "filtered basis anchors on the filtered list")

	typeText(c, "B")
	rows = c.View().Rows
	assert.InDelta(t, 1.0/3.0, rows[0].Fit, 1e-9, "unfiltered basis anchors on the raw rank-1 word")
}

func TestViewRelativeReferenceAnchorsOnWindow(t *testing.T) {
	c := New([]*model.Dataset{countsDataset("a", 80, 30, 20, 12, 10, 6)}, nil, Options{
		Zipf: zipf.State{Enabled: true, Reference: zipf.ReferenceRelative},
	})
	c.Dispatch(ResizeEvent{Height: 2})
	typeText(c, "4g")

	rows := c.View().Rows
	require.Len(t, rows, 2)
	assert.Equal(t, 3, rows[0].Rank)
	assert.Equal(t, 1.0, rows[0].Fit)
	assert.InDelta(t, 12.0/15.0, rows[1].Fit, 1e-9)

	typeText(c, "A")
	rows = c.View().Rows
	assert.InDelta(t, 0.75, rows[0].Fit, 1e-9, "absolute scope falls back to the absolute curve")
	assert.InDelta(t, 0.6, rows[1].Fit, 1e-9)
}

func TestViewChartScope(t *testing.T) {
	c := New([]*model.Dataset{flatDataset("w", 10)}, nil, Options{})
	c.Dispatch(ResizeEvent{Height: 4})
	typeText(c, "6g")

	chart := c.View().Chart
	require.Len(t, chart.Actual, 4)
	assert.Equal(t, 3, chart.Actual[0].Rank)
	assert.Equal(t, 3, chart.Marker)
	assert.Empty(t, chart.Overlay)

	typeText(c, "A")
	chart = c.View().Chart
	require.Len(t, chart.Actual, 10)
	assert.Equal(t, 5, chart.Marker)
	assert.Equal(t, zipf.ScopeAbsolute, chart.Scope)
}

func TestViewChartOverlayAndLogScale(t *testing.T) {
	c := New([]*model.Dataset{foxDataset()}, nil, Options{})
	typeText(c, "Z")
	chart := c.View().Chart
	require.Len(t, chart.Overlay, 8)
	assert.InDelta(t, 3.0, chart.Overlay[0].Value, 1e-9)
	assert.InDelta(t, 1.5, chart.Overlay[1].Value, 1e-9)
	assert.Equal(t, "Zipf Distribution + Absolute", chart.Title)

	typeText(c, "L")
	chart = c.View().Chart
	assert.True(t, chart.LogScale)
	assert.InDelta(t, math.Log(3), chart.Actual[0].Value, 1e-9)
	assert.InDelta(t, 0.1, chart.Actual[1].Value, 1e-9)
	assert.InDelta(t, math.Log(1.5), chart.Overlay[1].Value, 1e-9)
	assert.Equal(t, "Zipf Distribution (Log Scale) + Absolute", chart.Title)
}

func TestLogValue(t *testing.T) {
	assert.InDelta(t, 0.1, LogValue(0), 1e-9)
	assert.InDelta(t, 0.1, LogValue(1), 1e-9)
	assert.InDelta(t, math.Log(100), LogValue(100), 1e-9)
}

func TestViewMatchesAndStatus(t *testing.T) {
	c := New([]*model.Dataset{foxDataset()}, []model.Tag{animalsTag, stopTag}, Options{})
	typeText(c, "/o")
	vm := c.View()
	assert.Equal(t, ModeSearch, vm.Status.Mode)
	assert.Equal(t, "o", vm.Status.Query)
	assert.Equal(t, 4, vm.Status.Matches)
	assert.Equal(t, 1, vm.Status.MatchCursor)
	var matched []string
	for _, row := range vm.Rows {
		if row.Match {
			matched = append(matched, row.Word)
		}
	}
	assert.Equal(t, []string{"brown", "fox", "over", "dog"}, matched)

	press(c, Key(KeyEsc))
	typeText(c, "SZ")
	vm = c.View()
	assert.Equal(t, "-singletons", vm.Status.Filters)
	assert.Equal(t, "ZIPF-ABS/filtered", vm.Status.Zipf)
	assert.Empty(t, vm.Status.Picker)

	typeText(c, "f")
	vm = c.View()
	require.Len(t, vm.Status.Picker, 2)
	assert.Equal(t, 1, vm.Status.Picker[0].Ordinal)
	assert.Equal(t, "animals", vm.Status.Picker[0].Tag.Name)
	assert.False(t, vm.Status.Picker[1].Excluded)

	typeText(c, "2e")
	typeText(c, "f")
	assert.True(t, c.View().Status.Picker[1].Excluded)
}
