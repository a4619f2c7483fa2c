package session

import (
	"strconv"
	"strings"

	"github.com/verte-zerg/zipfr/internal/search"
)

func (c *Controller) numberKey(k KeyEvent) {
	switch {
	case k.Code == KeyRune && k.Rune >= '0' && k.Rune <= '9':
		if len(c.digits) < maxDigits {
			c.digits += string(k.Rune)
		}
	case k.Code == KeyRune && (k.Rune == 'g' || k.Rune == 'G'):
		c.jumpToLine()
	case k.Code == KeyBackspace:
		if c.digits != "" {
			c.digits = c.digits[:len(c.digits)-1]
		}
		if c.digits == "" {
			c.mode = ModeNormal
		}
	case k.Code == KeyEsc:
		c.digits = ""
		c.mode = ModeNormal
	default:
		c.digits = ""
		c.mode = ModeNormal
		c.normalKey(k)
	}
}

// jumpToLine moves to the 1-based line held in the digit buffer. The buffer
// is always consumed; an unparsable buffer moves nothing.
func (c *Controller) jumpToLine() {
	buf := c.digits
	c.digits = ""
	c.mode = ModeNormal
	line, err := strconv.Atoi(buf)
	if err != nil {
		return
	}
	c.moveTo(line - 1)
}

func (c *Controller) startSearch() {
	c.search = searchState{}
	c.mode = ModeSearch
}

func (c *Controller) searchKey(k KeyEvent) {
	switch k.Code {
	case KeyRune:
		c.search.query += string(k.Rune)
		c.refreshSearch()
	case KeyBackspace:
		if c.search.query == "" {
			return
		}
		runes := []rune(c.search.query)
		c.search.query = string(runes[:len(runes)-1])
		c.refreshSearch()
	case KeyEnter:
		c.mode = ModeNormal
		if len(c.search.results) > 0 {
			c.search.cursor = 0
			c.moveTo(c.search.results[0].Index)
		}
	case KeyEsc:
		c.clearSearch()
		c.mode = ModeNormal
	}
}

// refreshSearch recomputes results against the active filtered list.
func (c *Controller) refreshSearch() {
	words := c.Filtered()
	c.search.results = search.Query(c.search.query, words)
	c.search.cursor = 0
	c.search.suggestion = ""
	if len(c.search.results) == 0 && strings.TrimSpace(c.search.query) != "" {
		if word, ok := search.Suggest(c.search.query, words); ok {
			c.search.suggestion = word
		}
	}
}

func (c *Controller) clearSearch() {
	c.search = searchState{}
}

func (c *Controller) cycleMatch(delta int) {
	n := len(c.search.results)
	if n == 0 {
		return
	}
	c.search.cursor = ((c.search.cursor+delta)%n + n) % n
	c.moveTo(c.search.results[c.search.cursor].Index)
}

func (c *Controller) filterTagKey(k KeyEvent) {
	switch {
	case k.Code == KeyEsc:
		c.pick = ""
		c.mode = ModeNormal
	case k.Code == KeyEnter:
		if ordinal, ok := c.pickOrdinal(); ok {
			c.choose(ordinal)
		}
	case k.Code == KeyBackspace:
		if c.pick != "" {
			c.pick = c.pick[:len(c.pick)-1]
		}
	case k.Code == KeyRune && k.Rune == 'c':
		c.pick = ""
		c.mode = ModeNormal
		c.clearFilters()
	case k.Code == KeyRune && k.Rune >= '0' && k.Rune <= '9':
		c.pick += string(k.Rune)
		ordinal, ok := c.pickOrdinal()
		if !ok {
			c.pick = ""
			return
		}
		// Commit as soon as no longer ordinal can start with the buffer.
		if ordinal*10 > len(c.catalog) {
			c.choose(ordinal)
		}
	}
}

func (c *Controller) pickOrdinal() (int, bool) {
	if c.pick == "" || len(c.pick) > maxDigits {
		return 0, false
	}
	n, err := strconv.Atoi(c.pick)
	if err != nil || n < 1 || n > len(c.catalog) {
		return 0, false
	}
	return n, true
}

func (c *Controller) choose(ordinal int) {
	c.pending = c.catalog[ordinal-1]
	c.pick = ""
	c.mode = ModeFilterAction
}

func (c *Controller) filterActionKey(k KeyEvent) {
	if k.Code == KeyEsc {
		c.mode = ModeNormal
		return
	}
	if k.Code != KeyRune {
		return
	}
	switch k.Rune {
	case 'e':
		c.filters.Exclude(c.pending)
	case 'i':
		c.filters.IncludeOnly(c.pending)
	case 'x':
		c.filters.Remove(c.pending)
	default:
		return
	}
	c.mode = ModeNormal
	c.filtersChanged()
}
