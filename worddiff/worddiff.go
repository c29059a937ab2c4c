// Package worddiff computes intra-line token diffs for paired changed lines,
// immediately or on demand through an externally owned cache.
package worddiff

import (
	"github.com/fwojciec/splitdiff"
	"github.com/fwojciec/splitdiff/textdiff"
)

// Compile-time interface verification.
var _ splitdiff.WordDiffer = (*Differ)(nil)

// Differ partitions primitive chunk output into two parallel token
// sequences: unchanged tokens appear on both sides, removed tokens only on
// the left, added tokens only on the right.
type Differ struct{}

// NewDiffer creates a new Differ instance.
func NewDiffer() *Differ {
	return &Differ{}
}

// Diff computes the token sequences for a changed line pair. Concatenating a
// side's token values reconstructs that side's line.
func (d *Differ) Diff(old, new string, mode splitdiff.CompareMode) (left, right []splitdiff.Token) {
	if old == "" && new == "" {
		return nil, nil
	}
	if old == new {
		tok := splitdiff.Token{Type: splitdiff.CellDefault, Value: old}
		return []splitdiff.Token{tok}, []splitdiff.Token{tok}
	}

	chunks := textdiff.Diff(old, new, granularity(mode))
	for _, c := range chunks {
		switch {
		case c.Removed:
			left = append(left, splitdiff.Token{Type: splitdiff.CellRemoved, Value: c.Value})
		case c.Added:
			right = append(right, splitdiff.Token{Type: splitdiff.CellAdded, Value: c.Value})
		default:
			tok := splitdiff.Token{Type: splitdiff.CellDefault, Value: c.Value}
			left = append(left, tok)
			right = append(right, tok)
		}
	}
	return left, right
}

// granularity maps a compare mode to the primitive granularity used for a
// line pair. The structural modes are not valid line-pair comparators and
// fall back to character granularity.
func granularity(mode splitdiff.CompareMode) textdiff.Granularity {
	switch mode {
	case splitdiff.CompareWords:
		return textdiff.Words
	case splitdiff.CompareWordsWithSpace:
		return textdiff.WordsWithSpace
	case splitdiff.CompareLines:
		return textdiff.Lines
	case splitdiff.CompareTrimmedLines:
		return textdiff.TrimmedLines
	case splitdiff.CompareSentences:
		return textdiff.Sentences
	default:
		return textdiff.Chars
	}
}
