// Package wordfreq builds ranked word frequency tables from token streams.
package wordfreq

import (
	"sort"

	"github.com/verte-zerg/zipfr/internal/model"
)

// Tagger attaches catalog tags to words.
type Tagger interface {
	TagsFor(word string) []model.Tag
}

// Table is a ranked frequency table.
type Table struct {
	Words       []model.WordCount
	TotalWords  int
	UniqueWords int
}

// Build counts tokens and ranks them by descending count. Words with equal
// counts keep the order in which they first appeared in the stream, so the
// ranking is deterministic. Ranks start at 1. A nil tagger leaves tags empty.
func Build(tokens []string, tagger Tagger) Table {
	index := make(map[string]int)
	entries := make([]model.WordCount, 0)
	for _, tok := range tokens {
		if tok == "" {
			continue
		}
		if i, ok := index[tok]; ok {
			entries[i].Count++
			continue
		}
		index[tok] = len(entries)
		entries = append(entries, model.WordCount{Word: tok, Count: 1})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})

	total := 0
	for i := range entries {
		entries[i].Rank = i + 1
		total += entries[i].Count
		if tagger != nil {
			entries[i].Tags = model.SortTags(tagger.TagsFor(entries[i].Word))
		}
	}
	return Table{
		Words:       entries,
		TotalWords:  total,
		UniqueWords: len(entries),
	}
}

// Rerank assigns dense 1-based ranks in slice order.
func Rerank(words []model.WordCount) {
	for i := range words {
		words[i].Rank = i + 1
	}
}
