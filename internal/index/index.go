// Package index holds the live candidate index fed by descriptor discovery.
//
// The index is an ordered map from key to Item, populated incrementally by
// draining the discovery channel. Key order is lexicographic and exists only
// to make ranking ties deterministic.
//
// With KeyBySearch (the default) an item is stored under its search key and a
// later item with the same key replaces the earlier one. Which of two
// colliding descriptors survives depends on discovery order, which is not
// fixed across runs. KeyByPath stores each descriptor under its search key
// plus its path, so unrelated descriptors never replace each other.
package index

import (
	"fmt"
	"slices"
	"strings"
)

// DefaultBatchSize is how many items Drain moves per call by default.
const DefaultBatchSize = 60

// KeyMode selects how items are keyed in the index.
type KeyMode int

const (
	KeyBySearch KeyMode = iota
	KeyByPath
)

func (m KeyMode) String() string {
	switch m {
	case KeyByPath:
		return "path"
	default:
		return "search"
	}
}

// ParseKeyMode converts a configuration value into a KeyMode.
func ParseKeyMode(s string) (KeyMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "search":
		return KeyBySearch, nil
	case "path":
		return KeyByPath, nil
	default:
		return KeyBySearch, fmt.Errorf("unknown key mode %q (want search or path)", s)
	}
}

// Index is the candidate index. It is not safe for concurrent use: the
// goroutine that drains it owns it.
type Index struct {
	src   <-chan Item
	mode  KeyMode
	keys  []string // sorted
	items map[string]Item
	done  bool
}

// NewIndex returns an empty index that drains src.
func NewIndex(src <-chan Item, mode KeyMode) *Index {
	return &Index{
		src:   src,
		mode:  mode,
		items: make(map[string]Item),
	}
}

func (x *Index) keyFor(it Item) string {
	if x.mode == KeyByPath {
		return it.Key + "\x00" + it.Path
	}
	return it.Key
}

// Insert adds it to the index, replacing any item stored under the same key.
func (x *Index) Insert(it Item) {
	k := x.keyFor(it)
	if _, exists := x.items[k]; !exists {
		pos, _ := slices.BinarySearch(x.keys, k)
		x.keys = slices.Insert(x.keys, pos, k)
	}
	x.items[k] = it
}

// Drain moves at most max available items from the source into the index
// without blocking, and returns how many were inserted. Items beyond max stay
// queued for the next call. Once the source is closed and empty, Done
// reports true.
func (x *Index) Drain(max int) int {
	if max <= 0 {
		max = DefaultBatchSize
	}
	n := 0
	for n < max && !x.done {
		select {
		case it, ok := <-x.src:
			if !ok {
				x.done = true
				return n
			}
			x.Insert(it)
			n++
		default:
			return n
		}
	}
	return n
}

// DrainAll blocks until the source is closed, inserting everything it
// delivers.
func (x *Index) DrainAll() int {
	n := 0
	if x.done {
		return n
	}
	for it := range x.src {
		x.Insert(it)
		n++
	}
	x.done = true
	return n
}

// Done reports whether discovery has finished and every item was drained.
func (x *Index) Done() bool {
	return x.done || x.src == nil
}

// Len returns the number of indexed items.
func (x *Index) Len() int {
	return len(x.keys)
}

// Snapshot returns the indexed items in key order.
func (x *Index) Snapshot() []Item {
	out := make([]Item, len(x.keys))
	for i, k := range x.keys {
		out[i] = x.items[k]
	}
	return out
}
