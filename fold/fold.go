// Package fold groups long runs of unchanged rows into collapsible blocks.
package fold

import "github.com/fwojciec/splitdiff"

// DefaultMargin is the number of context rows kept visible around each
// changed row.
const DefaultMargin = 3

// Compute scans the row sequence and returns the foldable blocks plus a
// row-to-block map. A row is foldable when it is not changed and not within
// margin rows of any changed row; maximal consecutive runs of foldable rows
// become blocks. Rows outside every block are absent from the map. A
// negative margin is treated as zero; identical inputs always produce
// identical block boundaries.
func Compute(rowCount int, changed []int, margin int) ([]splitdiff.Block, map[int]int) {
	if margin < 0 {
		margin = 0
	}

	visible := make(map[int]bool, len(changed)*(2*margin+1))
	for _, c := range changed {
		for i := c - margin; i <= c+margin; i++ {
			if i >= 0 && i < rowCount {
				visible[i] = true
			}
		}
	}

	var blocks []splitdiff.Block
	blockOf := make(map[int]int)
	start := -1

	flush := func(end int) {
		if start == -1 {
			return
		}
		idx := len(blocks)
		blocks = append(blocks, splitdiff.Block{
			Index:     idx,
			StartLine: start,
			EndLine:   end,
			Lines:     end - start + 1,
		})
		for i := start; i <= end; i++ {
			blockOf[i] = idx
		}
		start = -1
	}

	for row := 0; row < rowCount; row++ {
		if visible[row] {
			flush(row - 1)
			continue
		}
		if start == -1 {
			start = row
		}
	}
	flush(rowCount - 1)

	return blocks, blockOf
}
