package worddiff_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fwojciec/splitdiff"
	"github.com/fwojciec/splitdiff/mock"
	"github.com/fwojciec/splitdiff/worddiff"
)

func TestDiffer_Diff_PartitionsSides(t *testing.T) {
	t.Parallel()

	d := worddiff.NewDiffer()

	left, right := d.Diff(" oldLine", " newLine", splitdiff.CompareChars)

	assert.Equal(t, []splitdiff.Token{
		{Type: splitdiff.CellDefault, Value: " "},
		{Type: splitdiff.CellRemoved, Value: "old"},
		{Type: splitdiff.CellDefault, Value: "Line"},
	}, left)
	assert.Equal(t, []splitdiff.Token{
		{Type: splitdiff.CellDefault, Value: " "},
		{Type: splitdiff.CellAdded, Value: "new"},
		{Type: splitdiff.CellDefault, Value: "Line"},
	}, right)
}

func TestDiffer_Diff_IdenticalLines(t *testing.T) {
	t.Parallel()

	d := worddiff.NewDiffer()

	left, right := d.Diff("same", "same", splitdiff.CompareChars)

	assert.Equal(t, []splitdiff.Token{{Type: splitdiff.CellDefault, Value: "same"}}, left)
	assert.Equal(t, left, right)
}

func TestDiffer_Diff_EmptyLines(t *testing.T) {
	t.Parallel()

	d := worddiff.NewDiffer()

	left, right := d.Diff("", "", splitdiff.CompareChars)

	assert.Nil(t, left)
	assert.Nil(t, right)
}

func TestDiffer_Diff_ReconstructsBothSides(t *testing.T) {
	t.Parallel()

	modes := []splitdiff.CompareMode{
		splitdiff.CompareChars,
		splitdiff.CompareWords,
		splitdiff.CompareWordsWithSpace,
		splitdiff.CompareSentences,
	}
	d := worddiff.NewDiffer()
	old := "the quick brown fox"
	new := "the slow brown dog"

	for _, mode := range modes {
		left, right := d.Diff(old, new, mode)

		var l, r strings.Builder
		for _, tok := range left {
			l.WriteString(tok.Value)
		}
		for _, tok := range right {
			r.WriteString(tok.Value)
		}
		assert.Equal(t, old, l.String())
		assert.Equal(t, new, r.String())
	}
}

func TestDiffer_Diff_StructuralModeFallsBackToChars(t *testing.T) {
	t.Parallel()

	d := worddiff.NewDiffer()

	jsonLeft, jsonRight := d.Diff("abcX", "abcY", splitdiff.CompareJSON)
	charLeft, charRight := d.Diff("abcX", "abcY", splitdiff.CompareChars)

	assert.Equal(t, charLeft, jsonLeft)
	assert.Equal(t, charRight, jsonRight)
}

func TestCache_Diff_ComputesOncePerKey(t *testing.T) {
	t.Parallel()

	differ := &mock.WordDiffer{
		DiffFn: func(old, new string, mode splitdiff.CompareMode) ([]splitdiff.Token, []splitdiff.Token) {
			return []splitdiff.Token{{Type: splitdiff.CellRemoved, Value: old}},
				[]splitdiff.Token{{Type: splitdiff.CellAdded, Value: new}}
		},
	}
	c := worddiff.NewCache(differ)

	first, _ := c.Diff(3, "a", "b", splitdiff.CompareChars)
	second, _ := c.Diff(3, "a", "b", splitdiff.CompareChars)

	assert.Equal(t, first, second)
	assert.Len(t, differ.Calls, 1)
	assert.Equal(t, 1, c.Len())
	assert.Equal(t, worddiff.Metrics{Hits: 1, Misses: 1}, c.Stats())
}

func TestCache_Diff_SameStringsDifferentRowsCacheSeparately(t *testing.T) {
	t.Parallel()

	differ := &mock.WordDiffer{}
	c := worddiff.NewCache(differ)

	c.Diff(1, "a", "b", splitdiff.CompareChars)
	c.Diff(2, "a", "b", splitdiff.CompareChars)

	assert.Len(t, differ.Calls, 2)
	assert.Equal(t, 2, c.Len())
}

func TestCache_Clear(t *testing.T) {
	t.Parallel()

	differ := &mock.WordDiffer{}
	c := worddiff.NewCache(differ)

	c.Diff(1, "a", "b", splitdiff.CompareChars)
	c.Clear()

	assert.Equal(t, 0, c.Len())

	// The next lookup recomputes.
	c.Diff(1, "a", "b", splitdiff.CompareChars)
	assert.Len(t, differ.Calls, 2)
	assert.Equal(t, worddiff.Metrics{Misses: 2}, c.Stats())
}
