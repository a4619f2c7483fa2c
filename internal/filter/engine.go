package filter

import (
	"github.com/verte-zerg/zipfr/internal/model"
	"github.com/verte-zerg/zipfr/internal/wordfreq"
)

// Apply returns the words accepted by set, in source order, re-ranked from 1.
// The source slice is not modified.
func Apply(set Set, source []model.WordCount) []model.WordCount {
	out := make([]model.WordCount, 0, len(source))
	for _, wc := range source {
		if set.Accept(wc) {
			out = append(out, wc)
		}
	}
	wordfreq.Rerank(out)
	return out
}

type cacheKey struct {
	content uint64
	filter  uint64
}

type cacheEntry struct {
	key   cacheKey
	words []model.WordCount
}

// Engine memoizes filtered lists per dataset slot. An entry is served only
// when both the dataset content hash and the filter fingerprint match, so a
// filter change can never return a stale list.
type Engine struct {
	entries map[int]cacheEntry
	builds  int
}

// NewEngine returns an empty engine.
func NewEngine() *Engine {
	return &Engine{entries: map[int]cacheEntry{}}
}

// Filtered returns the filtered list for the dataset in slot idx.
func (e *Engine) Filtered(idx int, ds *model.Dataset, set Set) []model.WordCount {
	if ds == nil {
		return nil
	}
	key := cacheKey{content: datasetKey(ds), filter: set.Fingerprint()}
	if entry, ok := e.entries[idx]; ok && entry.key == key {
		return entry.words
	}
	words := Apply(set, ds.Words)
	e.entries[idx] = cacheEntry{key: key, words: words}
	e.builds++
	return words
}

// Prime rebuilds every dataset for the given set. Filters are global, so a
// change is applied to all datasets at once to keep comparisons consistent.
func (e *Engine) Prime(datasets []*model.Dataset, set Set) {
	for i, ds := range datasets {
		e.Filtered(i, ds, set)
	}
}

// Builds reports how many lists were computed rather than served from cache.
func (e *Engine) Builds() int {
	return e.builds
}

func datasetKey(ds *model.Dataset) uint64 {
	if ds.ContentHash != 0 {
		return ds.ContentHash
	}
	// Datasets built in memory carry no hash; the slot plus shape is enough
	// because datasets never change after construction.
	return uint64(len(ds.Words))<<32 | uint64(ds.TotalWords)
}
