// Package search finds words in a ranked list by substring.
package search

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/hbollon/go-edlib"

	"github.com/verte-zerg/zipfr/internal/model"
)

// SuggestThreshold is the minimum Jaro-Winkler similarity for a suggestion.
const SuggestThreshold = 0.80

// Result is a match: an index into the searched list and its score in (0, 1].
type Result struct {
	Index int
	Score float64
}

// Query matches text against words, case-insensitively. A match at position
// p of a word of length n scores 1 - p/n, so prefix matches score 1. Results
// are ordered by descending score; equal scores keep list order.
func Query(text string, words []model.WordCount) []Result {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	needle := strings.ToLower(text)
	var results []Result
	for i, wc := range words {
		word := strings.ToLower(wc.Word)
		pos := strings.Index(word, needle)
		if pos < 0 {
			continue
		}
		length := utf8.RuneCountInString(word)
		if length == 0 {
			continue
		}
		runePos := utf8.RuneCountInString(word[:pos])
		results = append(results, Result{
			Index: i,
			Score: 1 - float64(runePos)/float64(length),
		})
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results
}

// Suggest returns the word most similar to text, if any reaches
// SuggestThreshold. It is meant for queries with no substring match.
func Suggest(text string, words []model.WordCount) (string, bool) {
	needle := strings.ToLower(strings.TrimSpace(text))
	if needle == "" || len(words) == 0 {
		return "", false
	}
	best := ""
	bestScore := float32(0)
	for _, wc := range words {
		score, err := edlib.StringsSimilarity(needle, strings.ToLower(wc.Word), edlib.JaroWinkler)
		if err != nil {
			continue
		}
		if score > bestScore {
			best = wc.Word
			bestScore = score
		}
	}
	if best == "" || float64(bestScore) < SuggestThreshold {
		return "", false
	}
	return best, true
}
