// Package model defines shared data structures.
package model

import (
	"sort"
	"strings"
	"time"
)

// Tag is a catalog label attached to words. Identity is the Name.
type Tag struct {
	Name        string
	Color       string
	Description string
}

// TagKey returns the identity key of a tag.
func TagKey(t Tag) string {
	return strings.ToLower(strings.TrimSpace(t.Name))
}

// WordCount is a ranked word entry. Rank is 1-based and dense within the
// list that produced it.
type WordCount struct {
	Word  string
	Count int
	Rank  int
	Tags  []Tag
}

// HasTag reports whether the word carries a tag with the given key.
func (wc WordCount) HasTag(key string) bool {
	for _, t := range wc.Tags {
		if TagKey(t) == key {
			return true
		}
	}
	return false
}

// Dataset is an analyzed corpus. It is never modified after construction.
type Dataset struct {
	Name            string
	Path            string
	Words           []WordCount
	TotalWords      int
	UniqueWords     int
	ParseDuration   time.Duration
	AnalyzeDuration time.Duration
	ContentHash     uint64
}

// WordsPerSecond reports throughput over parse and analyze time.
func (d *Dataset) WordsPerSecond() float64 {
	elapsed := (d.ParseDuration + d.AnalyzeDuration).Seconds()
	if elapsed <= 0 {
		return 0
	}
	return float64(d.TotalWords) / elapsed
}

// SortTags orders tags by key and drops duplicates keyed by name.
func SortTags(tags []Tag) []Tag {
	if len(tags) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(tags))
	out := make([]Tag, 0, len(tags))
	for _, t := range tags {
		key := TagKey(t)
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		return TagKey(out[i]) < TagKey(out[j])
	})
	return out
}

// RunRecord summarizes one analyzed dataset for the history store.
type RunRecord struct {
	ID              int64
	RecordedAt      time.Time
	Dataset         string
	Path            string
	ContentHash     uint64
	TotalWords      int
	UniqueWords     int
	ParseDurationMs int64
	AnalyzeMs       int64
}
