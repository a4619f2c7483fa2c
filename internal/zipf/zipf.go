// Package zipf compares observed word frequencies with an ideal Zipf curve.
//
// The curve is a visual reference, frequency ≈ C / rank, anchored on a
// reference word. Ratios are presentation hints, not a goodness-of-fit test.
package zipf

import (
	"fmt"

	"github.com/verte-zerg/zipfr/internal/model"
)

// Basis selects which list anchors the Absolute reference.
type Basis int

const (
	// BasisFiltered anchors on the filtered list.
	BasisFiltered Basis = iota
	// BasisUnfiltered anchors on the original dataset.
	BasisUnfiltered
)

func (b Basis) String() string {
	if b == BasisUnfiltered {
		return "unfiltered"
	}
	return "filtered"
}

// Reference selects the anchor word of the curve.
type Reference int

const (
	// ReferenceAbsolute anchors on the rank-1 word of the basis list.
	ReferenceAbsolute Reference = iota
	// ReferenceRelative anchors on the first word of the chart window.
	ReferenceRelative
)

func (r Reference) String() string {
	if r == ReferenceRelative {
		return "relative"
	}
	return "absolute"
}

// Scope is the span of words plotted by the chart.
type Scope int

const (
	// ScopeRelative plots the visible scroll window.
	ScopeRelative Scope = iota
	// ScopeAbsolute plots the whole filtered list.
	ScopeAbsolute
)

func (s Scope) String() string {
	if s == ScopeAbsolute {
		return "absolute"
	}
	return "relative"
}

// State holds the overlay flags.
type State struct {
	Enabled   bool
	Basis     Basis
	Reference Reference
}

// Label is a compact footer tag such as "ZIPF-ABS/filtered".
func (s State) Label() string {
	if !s.Enabled {
		return ""
	}
	ref := "ABS"
	if s.Reference == ReferenceRelative {
		ref = "REL"
	}
	return fmt.Sprintf("ZIPF-%s/%s", ref, s.Basis)
}

// Ideal returns the frequency the curve predicts at rank.
//
// With the Relative reference and an Absolute chart scope there is no window
// to anchor on, so the Absolute formula is used.
func Ideal(rank int, chartWords, referenceWords []model.WordCount, state State, scope Scope) (float64, bool) {
	if !state.Enabled || len(referenceWords) == 0 || rank <= 0 {
		return 0, false
	}
	if state.Reference == ReferenceRelative && scope == ScopeRelative {
		if len(chartWords) == 0 {
			return 0, false
		}
		anchor := chartWords[0]
		constant := float64(anchor.Count) * float64(anchor.Rank)
		return constant / float64(rank), true
	}
	return float64(referenceWords[0].Count) / float64(rank), true
}

// Fit returns observed/ideal for word. The anchor word itself yields exactly 1.
func Fit(word model.WordCount, chartWords, referenceWords []model.WordCount, state State, scope Scope) (float64, bool) {
	ideal, ok := Ideal(word.Rank, chartWords, referenceWords, state, scope)
	if !ok || ideal <= 0 {
		return 0, false
	}
	return float64(word.Count) / ideal, true
}

// Overlay returns the ideal curve evaluated at each chart word's rank.
func Overlay(chartWords, referenceWords []model.WordCount, state State, scope Scope) []float64 {
	if !state.Enabled {
		return nil
	}
	out := make([]float64, 0, len(chartWords))
	for _, wc := range chartWords {
		ideal, ok := Ideal(wc.Rank, chartWords, referenceWords, state, scope)
		if !ok {
			return nil
		}
		out = append(out, ideal)
	}
	return out
}

// Class buckets a fit ratio for display.
type Class int

const (
	ClassNominal Class = iota
	ClassMild
	ClassModerate
	ClassExtreme
)

func (c Class) String() string {
	switch c {
	case ClassNominal:
		return "nominal"
	case ClassMild:
		return "mild"
	case ClassModerate:
		return "moderate"
	default:
		return "extreme"
	}
}

// Classify maps a ratio to its deviation class.
func Classify(ratio float64) Class {
	switch {
	case ratio >= 0.9 && ratio <= 1.1:
		return ClassNominal
	case (ratio >= 0.7 && ratio < 0.9) || (ratio > 1.1 && ratio <= 1.3):
		return ClassMild
	case (ratio >= 0.5 && ratio < 0.7) || (ratio > 1.3 && ratio <= 2.0):
		return ClassModerate
	default:
		return ClassExtreme
	}
}
