package fuzzy

import (
	"launcher/internal/index"
)

// Ranked pairs an index item with its match against the current query.
type Ranked struct {
	Result
	Item index.Item
}

// Rank matches query against the search key of every item and returns the
// matching items best-first. Items must be in index key order; equal scores
// keep that order, so ranking the same snapshot twice gives the same result.
func Rank(query string, items []index.Item) []Ranked {
	keys := make(source, len(items))
	for i, it := range items {
		keys[i] = it.Key
	}

	hits := find(query, keys)
	out := make([]Ranked, len(hits))
	for i, h := range hits {
		out[i] = Ranked{Result: h.Result, Item: items[h.index]}
	}
	return out
}

// Top returns the best match, which is the only one eligible for launch.
func Top(ranked []Ranked) (Ranked, bool) {
	if len(ranked) == 0 {
		return Ranked{}, false
	}
	return ranked[0], true
}
