package tags

import (
	"sort"
	"strings"

	"github.com/verte-zerg/zipfr/internal/model"
)

// Matcher answers word to tag lookups.
type Matcher struct {
	byWord map[string][]model.Tag
	tags   []model.Tag
}

// NewMatcher flattens a catalog. Definitions sharing a name are merged and the
// first definition's color and description win.
func NewMatcher(cat Catalog) *Matcher {
	ids := make([]string, 0, len(cat.Tags))
	for id := range cat.Tags {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	byKey := make(map[string]model.Tag)
	members := make(map[string]map[string]struct{})
	for _, id := range ids {
		def := cat.Tags[id]
		name := strings.TrimSpace(def.Name)
		if name == "" {
			name = id
		}
		tag := model.Tag{Name: name, Color: def.Color, Description: def.Description}
		key := model.TagKey(tag)
		if key == "" {
			continue
		}
		if _, ok := byKey[key]; !ok {
			byKey[key] = tag
			members[key] = map[string]struct{}{}
		}
		for _, w := range def.Words {
			w = strings.ToLower(strings.TrimSpace(w))
			if w == "" {
				continue
			}
			members[key][w] = struct{}{}
		}
	}

	m := &Matcher{byWord: map[string][]model.Tag{}}
	for key, tag := range byKey {
		m.tags = append(m.tags, tag)
		for w := range members[key] {
			m.byWord[w] = append(m.byWord[w], tag)
		}
	}
	m.tags = model.SortTags(m.tags)
	for w, list := range m.byWord {
		m.byWord[w] = model.SortTags(list)
	}
	return m
}

// TagsFor returns the tags of a word, ignoring case. Unknown words have none.
func (m *Matcher) TagsFor(word string) []model.Tag {
	if m == nil {
		return nil
	}
	return m.byWord[strings.ToLower(word)]
}

// Tags returns all catalog tags sorted by name.
func (m *Matcher) Tags() []model.Tag {
	if m == nil {
		return nil
	}
	return m.tags
}

// Lookup finds a catalog tag by name.
func (m *Matcher) Lookup(name string) (model.Tag, bool) {
	key := model.TagKey(model.Tag{Name: name})
	for _, t := range m.Tags() {
		if model.TagKey(t) == key {
			return t, true
		}
	}
	return model.Tag{}, false
}
