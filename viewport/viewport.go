// Package viewport computes the contiguous row range a virtualized view must
// materialize for a scroll position, and maps logical rows into the folded
// render-row space.
package viewport

import (
	"sort"

	"github.com/fwojciec/splitdiff"
)

// Offsets builds the cumulative offset array for rows with the given pixel
// heights. The result has length len(heights)+1: entry i is the offset at
// which row i begins and the final entry is the total content height.
func Offsets(heights []int) []int {
	offsets := make([]int, len(heights)+1)
	for i, h := range heights {
		offsets[i+1] = offsets[i] + h
	}
	return offsets
}

// Range returns the inclusive render-row range overlapping the viewport
// [scrollTop, scrollTop+viewport), expanded by buffer rows on each side and
// clamped to the valid row range. offsets is a cumulative array as produced
// by Offsets; rows may have non-uniform heights. The search is O(log n).
// An empty offsets array (no rows) yields (0, -1).
func Range(scrollTop, viewport int, offsets []int, buffer int) (first, last int) {
	rowCount := len(offsets) - 1
	if rowCount < 1 {
		return 0, -1
	}

	first = rowAt(scrollTop, offsets)
	last = rowAt(scrollTop+viewport, offsets)

	first -= buffer
	if first < 0 {
		first = 0
	}
	last += buffer
	if last > rowCount-1 {
		last = rowCount - 1
	}
	return first, last
}

// rowAt returns the greatest row index whose starting offset is at most y.
func rowAt(y int, offsets []int) int {
	rowCount := len(offsets) - 1
	// First index with offset > y, minus one.
	idx := sort.Search(rowCount+1, func(i int) bool { return offsets[i] > y }) - 1
	if idx < 0 {
		return 0
	}
	if idx > rowCount-1 {
		return rowCount - 1
	}
	return idx
}

// RenderRow is one row of the folded render space: either a logical row or a
// fold indicator standing in for an entire collapsed block.
type RenderRow struct {
	Line  int  // logical row index; for a fold row, the block's first hidden row
	Fold  bool // true when this row stands in for a collapsed block
	Block int  // block index, meaningful only when Fold is set
}

// Flatten maps logical row indices into rendered row indices. Rows inside a
// block whose index is not in expanded are hidden; each such block collapses
// into exactly one fold indicator row. The visible-range computation operates
// on the result, not on raw logical indices.
func Flatten(rowCount int, blocks []splitdiff.Block, blockOf map[int]int, expanded map[int]bool) []RenderRow {
	out := make([]RenderRow, 0, rowCount)
	for row := 0; row < rowCount; row++ {
		b, hidden := blockOf[row]
		if !hidden || expanded[b] {
			out = append(out, RenderRow{Line: row})
			continue
		}
		if row == blocks[b].StartLine {
			out = append(out, RenderRow{Line: row, Fold: true, Block: b})
		}
	}
	return out
}
