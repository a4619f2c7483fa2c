package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/zipfr/internal/model"
	"github.com/verte-zerg/zipfr/internal/session"
)

func testDataset() *model.Dataset {
	stop := model.Tag{Name: "stopwords", Color: "#8C8C8C"}
	words := []model.WordCount{
		{Word: "the", Count: 40, Rank: 1, Tags: []model.Tag{stop}},
		{Word: "of", Count: 20, Rank: 2, Tags: []model.Tag{stop}},
		{Word: "world", Count: 13, Rank: 3},
		{Word: "word", Count: 10, Rank: 4},
		{Word: "wonder", Count: 8, Rank: 5},
	}
	return &model.Dataset{Name: "sample", Words: words, TotalWords: 91, UniqueWords: 5}
}

func newTestModel(width, height int) *Model {
	catalog := []model.Tag{{Name: "stopwords", Color: "#8C8C8C", Description: "function words"}}
	m := NewModel(session.New([]*model.Dataset{testDataset()}, catalog, session.Options{}))
	m.Update(tea.WindowSizeMsg{Width: width, Height: height})
	return m
}

func typeKeys(m *Model, s string) {
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func TestRenderFooterNormal(t *testing.T) {
	m := newTestModel(120, 30)
	out := m.renderFooter(m.ctrl.View())
	if !containsAll(out, []string{"NORMAL", "filters: none", "chart: window", "values: raw", "quit"}) {
		t.Fatalf("footer missing expected segments: %s", out)
	}
}

func TestRenderFooterSearch(t *testing.T) {
	m := newTestModel(120, 30)
	typeKeys(m, "/wor")
	out := m.renderFooter(m.ctrl.View())
	if !containsAll(out, []string{"SEARCH", "/wor", "1/2 matches", "esc: cancel"}) {
		t.Fatalf("footer missing search segments: %s", out)
	}
}

func TestRenderFooterSuggestion(t *testing.T) {
	m := newTestModel(120, 30)
	typeKeys(m, "/wrold")
	out := m.renderFooter(m.ctrl.View())
	if !containsAll(out, []string{"no match", "did you mean", "world"}) {
		t.Fatalf("footer missing suggestion: %s", out)
	}
}

func TestRenderFooterLineInput(t *testing.T) {
	m := newTestModel(120, 30)
	typeKeys(m, "12")
	out := m.renderFooter(m.ctrl.View())
	if !containsAll(out, []string{"LINE", "line 12", "go to line"}) {
		t.Fatalf("footer missing line input: %s", out)
	}
}

func TestRenderFooterDisplayToggles(t *testing.T) {
	m := newTestModel(120, 30)
	typeKeys(m, "ZLAP")
	out := m.renderFooter(m.ctrl.View())
	if !containsAll(out, []string{"ZIPF-ABS", "LOG", "chart: all", "values: percent"}) {
		t.Fatalf("footer missing display state: %s", out)
	}
}

func TestRenderFooterWrapsOnNarrowTerminal(t *testing.T) {
	m := newTestModel(30, 30)
	out := m.renderFooter(m.ctrl.View())
	if got := strings.Count(out, "\n") + 1; got < 3 {
		t.Fatalf("expected wrapped status, got %d lines: %s", got, out)
	}
}

func containsAll(haystack string, needles []string) bool {
	for _, needle := range needles {
		if !strings.Contains(haystack, needle) {
			return false
		}
	}
	return true
}
