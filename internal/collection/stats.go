package collection

import (
	"github.com/Geun-Oh/logview/internal/entry"
)

// Stats maps "all", every recognized level name and "unknown" to a count.
type Stats map[string]int

// Total returns the "all" counter.
func (s Stats) Total() int {
	return s[entry.KeyAll]
}

// Stats counts entries per level in one forward pass. Every recognized level
// is present even when its count is zero, and Stats["all"] equals the sum of
// the other counters.
func (c *Collection) Stats() Stats {
	var counters [entry.LevelDebug + 1]int
	total := 0
	for e := range c.All() {
		counters[e.Level()]++
		total++
	}

	levels := c.Levels().List()
	stats := make(Stats, len(levels)+2)
	stats[entry.KeyAll] = total
	for _, l := range levels {
		stats[l.String()] = counters[l]
	}
	stats[entry.KeyUnknown] = counters[entry.LevelUnknown]
	return stats
}

// TreeNode is one row of the level tree.
type TreeNode struct {
	Key   string `json:"key"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Tree returns Stats as ordered rows: "all" first, then recognized levels
// from most to least severe, then "unknown". With translate set, Name is the
// configured display label of the key; otherwise it is the key itself.
func (c *Collection) Tree(translate bool) []TreeNode {
	stats := c.Stats()
	levels := c.Levels()

	keys := []string{entry.KeyAll}
	for _, l := range levels.List() {
		keys = append(keys, l.String())
	}
	keys = append(keys, entry.KeyUnknown)

	tree := make([]TreeNode, 0, len(keys))
	for _, k := range keys {
		name := k
		if translate {
			name = levels.Label(k)
		}
		tree = append(tree, TreeNode{Key: k, Name: name, Count: stats[k]})
	}
	return tree
}
