package nlp

import "sort"

// Entry is one row of a frequency table.
type Entry struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// Counter is a frequency table that remembers first-insertion order, so
// ties in MostCommon are broken by which key was seen first.
type Counter struct {
	counts map[string]int
	order  []string
}

// NewCounter returns an empty counter.
func NewCounter() *Counter {
	return &Counter{counts: make(map[string]int)}
}

// Add counts each key once.
func (c *Counter) Add(keys ...string) {
	for _, k := range keys {
		if _, ok := c.counts[k]; !ok {
			c.order = append(c.order, k)
		}
		c.counts[k]++
	}
}

// Count returns how often key was added.
func (c *Counter) Count(key string) int { return c.counts[key] }

// Len returns the number of distinct keys.
func (c *Counter) Len() int { return len(c.order) }

// Total returns the sum of all counts.
func (c *Counter) Total() int {
	n := 0
	for _, v := range c.counts {
		n += v
	}
	return n
}

// MostCommon returns the n most frequent keys, highest first. n <= 0 returns
// every key.
func (c *Counter) MostCommon(n int) []Entry {
	entries := make([]Entry, len(c.order))
	for i, k := range c.order {
		entries[i] = Entry{Key: k, Count: c.counts[k]}
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Count > entries[j].Count })
	if n > 0 && n < len(entries) {
		entries = entries[:n]
	}
	return entries
}
