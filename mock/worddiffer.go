// Package mock provides test doubles for splitdiff interfaces.
package mock

import "github.com/fwojciec/splitdiff"

// Compile-time interface verification.
var _ splitdiff.WordDiffer = (*WordDiffer)(nil)

// WordDiffer is a mock implementation of splitdiff.WordDiffer.
type WordDiffer struct {
	DiffFn func(old, new string, mode splitdiff.CompareMode) (left, right []splitdiff.Token)

	// Calls records the line pairs passed to Diff.
	Calls [][2]string
}

func (w *WordDiffer) Diff(old, new string, mode splitdiff.CompareMode) (left, right []splitdiff.Token) {
	w.Calls = append(w.Calls, [2]string{old, new})
	if w.DiffFn == nil {
		return nil, nil
	}
	return w.DiffFn(old, new, mode)
}
