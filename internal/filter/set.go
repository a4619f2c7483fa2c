// Package filter evaluates tag and singleton filters over ranked word lists.
package filter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/verte-zerg/zipfr/internal/model"
)

// Set is the global filter predicate. A tag is never both excluded and
// include-only; adding it to one side removes it from the other.
type Set struct {
	exclude           map[string]model.Tag
	includeOnly       map[string]model.Tag
	ExcludeSingletons bool
}

// Exclude adds a tag to the exclusion set.
func (s *Set) Exclude(tag model.Tag) {
	key := model.TagKey(tag)
	if key == "" {
		return
	}
	if s.exclude == nil {
		s.exclude = map[string]model.Tag{}
	}
	delete(s.includeOnly, key)
	s.exclude[key] = tag
}

// IncludeOnly adds a tag to the include-only set.
func (s *Set) IncludeOnly(tag model.Tag) {
	key := model.TagKey(tag)
	if key == "" {
		return
	}
	if s.includeOnly == nil {
		s.includeOnly = map[string]model.Tag{}
	}
	delete(s.exclude, key)
	s.includeOnly[key] = tag
}

// Remove drops a tag from both sets.
func (s *Set) Remove(tag model.Tag) {
	key := model.TagKey(tag)
	delete(s.exclude, key)
	delete(s.includeOnly, key)
}

// ToggleExclude excludes the tag, or removes it if already excluded.
func (s *Set) ToggleExclude(tag model.Tag) {
	if s.IsExcluded(tag) {
		s.Remove(tag)
		return
	}
	s.Exclude(tag)
}

// ToggleSingletons flips exclusion of words seen exactly once.
func (s *Set) ToggleSingletons() {
	s.ExcludeSingletons = !s.ExcludeSingletons
}

// Clear resets the set to accept everything.
func (s *Set) Clear() {
	s.exclude = nil
	s.includeOnly = nil
	s.ExcludeSingletons = false
}

// IsExcluded reports whether the tag is in the exclusion set.
func (s Set) IsExcluded(tag model.Tag) bool {
	_, ok := s.exclude[model.TagKey(tag)]
	return ok
}

// IsIncluded reports whether the tag is in the include-only set.
func (s Set) IsIncluded(tag model.Tag) bool {
	_, ok := s.includeOnly[model.TagKey(tag)]
	return ok
}

// IsEmpty reports whether the set accepts every word.
func (s Set) IsEmpty() bool {
	return len(s.exclude) == 0 && len(s.includeOnly) == 0 && !s.ExcludeSingletons
}

// Excluded returns excluded tags sorted by name.
func (s Set) Excluded() []model.Tag {
	return sortedTags(s.exclude)
}

// Included returns include-only tags sorted by name.
func (s Set) Included() []model.Tag {
	return sortedTags(s.includeOnly)
}

// Clone returns an independent copy.
func (s Set) Clone() Set {
	out := Set{ExcludeSingletons: s.ExcludeSingletons}
	for _, t := range s.exclude {
		out.Exclude(t)
	}
	for _, t := range s.includeOnly {
		out.IncludeOnly(t)
	}
	return out
}

// Fingerprint hashes the canonical content of the set. Equal sets hash equal
// regardless of insertion order or descriptive tag fields.
func (s Set) Fingerprint() uint64 {
	var b strings.Builder
	if s.ExcludeSingletons {
		b.WriteString("s1")
	} else {
		b.WriteString("s0")
	}
	b.WriteString("|x:")
	writeKeys(&b, s.exclude)
	b.WriteString("|i:")
	writeKeys(&b, s.includeOnly)
	return xxhash.Sum64String(b.String())
}

// writeKeys length-prefixes each key so names containing separators cannot
// alias another set.
func writeKeys(b *strings.Builder, m map[string]model.Tag) {
	for _, k := range sortedKeys(m) {
		fmt.Fprintf(b, "%d:%s;", len(k), k)
	}
}

// Summary renders a short human description, e.g. "-stopwords +pronouns -singletons".
func (s Set) Summary() string {
	if s.IsEmpty() {
		return "none"
	}
	parts := make([]string, 0, len(s.exclude)+len(s.includeOnly)+1)
	for _, t := range s.Excluded() {
		parts = append(parts, "-"+t.Name)
	}
	for _, t := range s.Included() {
		parts = append(parts, "+"+t.Name)
	}
	if s.ExcludeSingletons {
		parts = append(parts, "-singletons")
	}
	return strings.Join(parts, " ")
}

// Accept evaluates the predicate for one word.
func (s Set) Accept(wc model.WordCount) bool {
	if s.ExcludeSingletons && wc.Count == 1 {
		return false
	}
	for _, t := range wc.Tags {
		if _, ok := s.exclude[model.TagKey(t)]; ok {
			return false
		}
	}
	if len(s.includeOnly) > 0 {
		for _, t := range wc.Tags {
			if _, ok := s.includeOnly[model.TagKey(t)]; ok {
				return true
			}
		}
		return false
	}
	return true
}

func sortedKeys(m map[string]model.Tag) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedTags(m map[string]model.Tag) []model.Tag {
	keys := sortedKeys(m)
	out := make([]model.Tag, 0, len(keys))
	for _, k := range keys {
		out = append(out, m[k])
	}
	return out
}
