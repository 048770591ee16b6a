package fuzzy

import (
	"strings"
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"launcher/internal/desktop"
	"launcher/internal/index"
)

func TestMatch_SmartCase(t *testing.T) {
	key := "Firefox|Browse the web"

	_, ok := Match(key, "ffx")
	assert.True(t, ok, "lowercase query is case-insensitive")

	_, ok = Match(key, "FFX")
	assert.False(t, ok, "uppercase query is case-sensitive")

	_, ok = Match(key, "Fbw")
	assert.False(t, ok)

	_, ok = Match(key, "FBw")
	assert.True(t, ok)
}

func TestMatch_Positions(t *testing.T) {
	res, ok := Match("Firefox", "ffx")
	require.True(t, ok)
	assert.Equal(t, []int{0, 4, 6}, res.Positions)
}

func TestMatch_EmptyPattern(t *testing.T) {
	res, ok := Match("anything", "")
	assert.True(t, ok)
	assert.Zero(t, res.Score)

	_, ok = Match("", "")
	assert.True(t, ok)
}

func TestMatch_NoMatch(t *testing.T) {
	_, ok := Match("abc", "abcd")
	assert.False(t, ok)

	_, ok = Match("abc", "cba")
	assert.False(t, ok)

	_, ok = Match("", "a")
	assert.False(t, ok)
}

func TestMatch_ContiguousBeatsScattered(t *testing.T) {
	tight, ok := Match("firefox", "fire")
	require.True(t, ok)
	loose, ok := Match("fxixrxe", "fire")
	require.True(t, ok)

	assert.Greater(t, tight.Score, loose.Score)
}

func TestMatch_BoundaryBonus(t *testing.T) {
	boundary, ok := Match("visual studio code", "vsc")
	require.True(t, ok)
	inner, ok := Match("avxsxcx", "vsc")
	require.True(t, ok)

	assert.Greater(t, boundary.Score, inner.Score)
}

func TestMatch_Unicode(t *testing.T) {
	res, ok := Match("Éditeur de texte", "édi")
	require.True(t, ok)
	assert.Equal(t, []int{0, 1, 2}, res.Positions)

	_, ok = Match("éditeur", "Édi")
	assert.False(t, ok)
}

func TestMatch_CaseSensitiveScoresFilteredKey(t *testing.T) {
	res, ok := Match("Visual Studio Code", "VSC")
	require.True(t, ok)
	assert.Equal(t, []int{0, 7, 14}, res.Positions)

	_, ok = Match("visual studio code", "VSC")
	assert.False(t, ok)
}

func TestRuneOffsets(t *testing.T) {
	assert.Equal(t, []int{0, 1, 2}, runeOffsets("Éditeur", []int{0, 2, 3}))
	assert.Equal(t, []int{1, 3}, runeOffsets("aébc", []int{1, 4}))
	assert.Empty(t, runeOffsets("abc", nil))
}

func TestIsSubsequence(t *testing.T) {
	assert.True(t, isSubsequence("Firefox", "Ffx"))
	assert.False(t, isSubsequence("Firefox", "FF"))
	assert.True(t, isSubsequence("anything", ""))
	assert.False(t, isSubsequence("", "a"))
}

func TestCaseSensitive(t *testing.T) {
	assert.False(t, CaseSensitive("firefox"))
	assert.False(t, CaseSensitive("123 -_"))
	assert.True(t, CaseSensitive("fireFox"))
	assert.True(t, CaseSensitive("Ééé"))
}

func snapshot(keys ...string) []index.Item {
	x := index.NewIndex(nil, index.KeyBySearch)
	for _, k := range keys {
		x.Insert(index.Item{
			Key:   k,
			Path:  "/apps/" + k,
			Entry: desktop.Entry{Name: k, Exec: strings.ToLower(k), Set: desktop.FieldName | desktop.FieldExec},
		})
	}
	return x.Snapshot()
}

func rankedKeys(r []Ranked) []string {
	out := make([]string, len(r))
	for i, m := range r {
		out[i] = m.Item.Key
	}
	return out
}

func TestRank_OrdersBestFirst(t *testing.T) {
	items := snapshot("Files|Browse files", "Firefox|Browse the web", "LibreOffice Draw", "fxixrxe")

	got := rankedKeys(Rank("fire", items))
	require.NotEmpty(t, got)
	assert.Equal(t, "Firefox|Browse the web", got[0])
	assert.NotContains(t, got, "LibreOffice Draw")
}

func TestRank_EmptyQueryKeepsKeyOrder(t *testing.T) {
	items := snapshot("zeta", "alpha", "Mid")

	ranked := Rank("", items)
	assert.Equal(t, []string{"Mid", "alpha", "zeta"}, rankedKeys(ranked))
	for _, m := range ranked {
		assert.Zero(t, m.Score)
	}
}

func TestRank_TiesFollowKeyOrder(t *testing.T) {
	items := snapshot("ab2", "ab1", "ab3")

	assert.Equal(t, []string{"ab1", "ab2", "ab3"}, rankedKeys(Rank("ab", items)))
}

func TestRank_Deterministic(t *testing.T) {
	items := snapshot("Terminal", "Text Editor", "Tetris", "Settings", "Network Tools", "top")

	first := Rank("te", items)
	second := Rank("te", items)
	assert.Equal(t, first, second)
}

func containsInOrder(text, pattern string, caseSensitive bool) bool {
	t := []rune(text)
	i := 0
	for _, p := range pattern {
		found := false
		for ; i < len(t); i++ {
			a, b := t[i], p
			if !caseSensitive {
				a, b = unicode.ToLower(a), unicode.ToLower(b)
			}
			if a == b {
				found = true
				i++
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func TestRank_OnlySubsequenceMatches(t *testing.T) {
	items := snapshot(
		"Firefox|Browse the web", "GIMP|Image editor", "Terminal", "htop|Process viewer",
		"Visual Studio Code|Code editing", "Calculator", "Files", "Disks",
	)
	queries := []string{"e", "ed", "Ed", "cod", "VSC", "vsc", "fi", "Fi", "xyz", "t|p", "ter"}

	for _, q := range queries {
		cs := CaseSensitive(q)
		matched := map[string]bool{}
		for _, m := range Rank(q, items) {
			matched[m.Item.Key] = true
			assert.True(t, containsInOrder(m.Item.Key, q, cs), "query %q returned %q", q, m.Item.Key)
		}
		for _, it := range items {
			if containsInOrder(it.Key, q, cs) {
				assert.True(t, matched[it.Key], "query %q missed %q", q, it.Key)
			}
		}
	}
}

func TestRank_CaseSensitiveKeepsItemsAligned(t *testing.T) {
	items := snapshot("Firefox", "aaa", "fire", "zz Fire")

	ranked := Rank("Fire", items)
	assert.ElementsMatch(t, []string{"Firefox", "zz Fire"}, rankedKeys(ranked))
	for _, m := range ranked {
		assert.Equal(t, "/apps/"+m.Item.Key, m.Item.Path)
	}
}

func TestRank_UppercaseSwitchesMode(t *testing.T) {
	items := snapshot("firefox", "Firefox|Browse the web")

	assert.Len(t, Rank("fire", items), 2)
	assert.Len(t, Rank("Fire", items), 1)
	// Another uppercase letter keeps the query case-sensitive.
	assert.Len(t, Rank("FirB", items), 1)
}

func TestTop(t *testing.T) {
	_, ok := Top(nil)
	assert.False(t, ok)

	items := snapshot("Terminal", "Tetris")
	top, ok := Top(Rank("tet", items))
	require.True(t, ok)
	assert.Equal(t, "Tetris", top.Item.Key)
}
