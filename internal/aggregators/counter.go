package aggregators

import (
	"sort"

	"link-rotator/internal/models"
)

// orderedCounter counts keys and remembers the order in which they were first seen.
type orderedCounter struct {
	index   map[string]int
	entries models.CountGroup
}

func newOrderedCounter() *orderedCounter {
	return &orderedCounter{index: make(map[string]int)}
}

func (c *orderedCounter) inc(key string) {
	if i, ok := c.index[key]; ok {
		c.entries[i].Count++
		return
	}
	c.index[key] = len(c.entries)
	c.entries = append(c.entries, models.CountEntry{Key: key, Count: 1})
}

func (c *orderedCounter) len() int {
	return len(c.entries)
}

// byCountDesc ranks by count, ties keep first-seen order.
func (c *orderedCounter) byCountDesc() models.CountGroup {
	out := make(models.CountGroup, len(c.entries))
	copy(out, c.entries)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}

func (c *orderedCounter) byKeyAsc() models.CountGroup {
	out := make(models.CountGroup, len(c.entries))
	copy(out, c.entries)
	sort.Slice(out, func(i, j int) bool {
		return out[i].Key < out[j].Key
	})
	return out
}
