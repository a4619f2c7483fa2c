package zipf

import (
	"math"
	"testing"

	"github.com/verte-zerg/zipfr/internal/model"
)

func ranked(counts ...int) []model.WordCount {
	out := make([]model.WordCount, len(counts))
	for i, c := range counts {
		out[i] = model.WordCount{Word: string(rune('a' + i)), Count: c, Rank: i + 1}
	}
	return out
}

func TestFitDisabled(t *testing.T) {
	words := ranked(100, 50)
	if _, ok := Fit(words[0], words, words, State{}, ScopeRelative); ok {
		t.Fatalf("expected no ratio when disabled")
	}
}

func TestFitEmptyReference(t *testing.T) {
	words := ranked(100, 50)
	state := State{Enabled: true}
	if _, ok := Fit(words[0], words, nil, state, ScopeRelative); ok {
		t.Fatalf("expected no ratio for empty reference")
	}
}

func TestFitAbsoluteReferenceWordIsOne(t *testing.T) {
	words := ranked(97, 40, 33, 7)
	state := State{Enabled: true, Reference: ReferenceAbsolute}
	for _, scope := range []Scope{ScopeRelative, ScopeAbsolute} {
		ratio, ok := Fit(words[0], words[2:], words, state, scope)
		if !ok {
			t.Fatalf("expected ratio for scope %v", scope)
		}
		if ratio != 1.0 {
			t.Fatalf("expected exactly 1.0 for scope %v, got %v", scope, ratio)
		}
	}
}

func TestFitAbsolute(t *testing.T) {
	words := ranked(100, 40, 20)
	state := State{Enabled: true}
	ratio, ok := Fit(words[1], words, words, state, ScopeRelative)
	if !ok {
		t.Fatalf("expected ratio")
	}
	if math.Abs(ratio-0.8) > 1e-9 {
		t.Fatalf("expected 0.8, got %v", ratio)
	}
}

func TestFitRelativeAnchorsOnChartWindow(t *testing.T) {
	words := ranked(100, 60, 30, 24, 10)
	window := words[2:]
	state := State{Enabled: true, Reference: ReferenceRelative}

	anchor, ok := Fit(window[0], window, words, state, ScopeRelative)
	if !ok || anchor != 1.0 {
		t.Fatalf("expected anchor ratio 1.0, got %v (%v)", anchor, ok)
	}
	// constant = 30*3 = 90; ideal at rank 4 = 22.5
	ratio, _ := Fit(window[1], window, words, state, ScopeRelative)
	if math.Abs(ratio-24/22.5) > 1e-9 {
		t.Fatalf("unexpected relative ratio %v", ratio)
	}
}

func TestFitRelativeWithAbsoluteScopeFallsBack(t *testing.T) {
	words := ranked(100, 60, 30)
	unfiltered := ranked(120, 100, 60, 30)
	rel := State{Enabled: true, Reference: ReferenceRelative, Basis: BasisUnfiltered}
	abs := State{Enabled: true, Reference: ReferenceAbsolute, Basis: BasisUnfiltered}

	got, _ := Fit(words[1], words[1:], unfiltered, rel, ScopeAbsolute)
	want, _ := Fit(words[1], words[1:], unfiltered, abs, ScopeAbsolute)
	if got != want {
		t.Fatalf("expected fallback to absolute: got %v want %v", got, want)
	}
}

func TestOverlay(t *testing.T) {
	words := ranked(120, 60, 40)
	got := Overlay(words, words, State{Enabled: true}, ScopeRelative)
	want := []float64{120, 60, 40}
	if len(got) != len(want) {
		t.Fatalf("expected %d points, got %d", len(want), len(got))
	}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Fatalf("point %d: expected %v, got %v", i, want[i], got[i])
		}
	}
	if Overlay(words, words, State{}, ScopeRelative) != nil {
		t.Fatalf("expected no overlay when disabled")
	}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		ratio float64
		want  Class
	}{
		{1.0, ClassNominal},
		{0.9, ClassNominal},
		{1.1, ClassNominal},
		{0.89, ClassMild},
		{0.7, ClassMild},
		{1.3, ClassMild},
		{0.69, ClassModerate},
		{0.5, ClassModerate},
		{2.0, ClassModerate},
		{0.49, ClassExtreme},
		{2.01, ClassExtreme},
	}
	for _, tc := range cases {
		if got := Classify(tc.ratio); got != tc.want {
			t.Fatalf("Classify(%v) = %v, want %v", tc.ratio, got, tc.want)
		}
	}
}

func TestStateLabel(t *testing.T) {
	if (State{}).Label() != "" {
		t.Fatalf("expected empty label when disabled")
	}
	got := State{Enabled: true, Reference: ReferenceRelative, Basis: BasisUnfiltered}.Label()
	if got != "ZIPF-REL/unfiltered" {
		t.Fatalf("unexpected label %q", got)
	}
}
