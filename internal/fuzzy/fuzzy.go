// Package fuzzy implements smart-case fuzzy subsequence matching and the
// ranking of index snapshots against a query.
//
// A pattern matches a text when every pattern rune occurs in the text in
// order. Patterns without uppercase letters match case-insensitively; a
// single uppercase letter makes the whole match case-sensitive. Scoring is
// done by github.com/sahilm/fuzzy, which rewards first-character, separator
// and camelCase matches and runs of adjacent matches, and penalizes
// unmatched leading characters.
package fuzzy

import (
	"cmp"
	"slices"
	"unicode"

	sfuzzy "github.com/sahilm/fuzzy"
)

// Result is the outcome of a successful match.
type Result struct {
	Score int
	// Positions are the rune offsets of the matched characters in the text.
	Positions []int
}

// CaseSensitive reports whether pattern selects case-sensitive matching,
// which is the case when it contains any uppercase letter.
func CaseSensitive(pattern string) bool {
	for _, r := range pattern {
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}

// Match scores pattern against text. An empty pattern matches anything with
// a score of zero.
func Match(text, pattern string) (Result, bool) {
	hits := find(pattern, source{text})
	if len(hits) == 0 {
		return Result{}, false
	}
	return hits[0].Result, true
}

// source adapts a slice of search keys to sfuzzy.Source.
type source []string

func (s source) String(i int) string { return s[i] }
func (s source) Len() int            { return len(s) }

// hit is a match of the key at index in the searched source.
type hit struct {
	Result
	index int
}

// find matches pattern against every key and returns the hits best-first,
// equal scores in source order.
func find(pattern string, keys source) []hit {
	if pattern == "" {
		hits := make([]hit, len(keys))
		for i := range keys {
			hits[i] = hit{index: i}
		}
		return hits
	}

	// The scorer always folds case, so a case-sensitive pattern first
	// narrows the candidates to exact-case subsequence matches.
	candidates, origin := keys, []int(nil)
	if CaseSensitive(pattern) {
		candidates = make(source, 0, len(keys))
		origin = make([]int, 0, len(keys))
		for i, k := range keys {
			if isSubsequence(k, pattern) {
				candidates = append(candidates, k)
				origin = append(origin, i)
			}
		}
	}

	matches := sfuzzy.FindFrom(pattern, candidates)
	hits := make([]hit, 0, len(matches))
	for _, m := range matches {
		idx := m.Index
		if origin != nil {
			idx = origin[m.Index]
		}
		hits = append(hits, hit{
			Result: Result{Score: m.Score, Positions: runeOffsets(m.Str, m.MatchedIndexes)},
			index:  idx,
		})
	}

	slices.SortStableFunc(hits, func(a, b hit) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return cmp.Compare(a.index, b.index)
	})
	return hits
}

// isSubsequence reports whether every rune of pattern occurs in text in
// order, comparing runes exactly.
func isSubsequence(text, pattern string) bool {
	p := []rune(pattern)
	i := 0
	for _, r := range text {
		if i == len(p) {
			break
		}
		if r == p[i] {
			i++
		}
	}
	return i == len(p)
}

// runeOffsets converts ascending byte offsets into s to rune offsets.
func runeOffsets(s string, byteOffsets []int) []int {
	out := make([]int, 0, len(byteOffsets))
	k, n := 0, 0
	for b := range s {
		if k == len(byteOffsets) {
			break
		}
		if byteOffsets[k] == b {
			out = append(out, n)
			k++
		}
		n++
	}
	return out
}
