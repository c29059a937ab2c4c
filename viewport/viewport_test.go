package viewport_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fwojciec/splitdiff"
	"github.com/fwojciec/splitdiff/viewport"
)

func uniform(n, h int) []int {
	heights := make([]int, n)
	for i := range heights {
		heights[i] = h
	}
	return heights
}

func TestOffsets(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []int{0, 10, 30, 45}, viewport.Offsets([]int{10, 20, 15}))
	assert.Equal(t, []int{0}, viewport.Offsets(nil))
}

func TestRange_UniformHeights(t *testing.T) {
	t.Parallel()

	offsets := viewport.Offsets(uniform(100, 20))

	first, last := viewport.Range(0, 200, offsets, 0)
	assert.Equal(t, 0, first)
	assert.Equal(t, 10, last)

	// Scrolled mid-document: row 5 starts exactly at 100.
	first, last = viewport.Range(100, 200, offsets, 0)
	assert.Equal(t, 5, first)
	assert.Equal(t, 15, last)
}

func TestRange_BufferExpandsAndClamps(t *testing.T) {
	t.Parallel()

	offsets := viewport.Offsets(uniform(100, 20))

	first, last := viewport.Range(100, 200, offsets, 3)
	assert.Equal(t, 2, first)
	assert.Equal(t, 18, last)

	// Near the top the buffer clamps to the first row.
	first, _ = viewport.Range(20, 200, offsets, 5)
	assert.Equal(t, 0, first)

	// Near the bottom it clamps to the last row.
	_, last = viewport.Range(1900, 200, offsets, 5)
	assert.Equal(t, 99, last)
}

func TestRange_NonUniformHeights(t *testing.T) {
	t.Parallel()

	offsets := viewport.Offsets([]int{10, 50, 10, 100, 10})

	// scrollTop 55 lands inside row 1 (offsets 10..60); viewport bottom at
	// 75 lands inside row 3 (70..170).
	first, last := viewport.Range(55, 20, offsets, 0)
	assert.Equal(t, 1, first)
	assert.Equal(t, 3, last)
}

func TestRange_ContainsEveryVisibleRow(t *testing.T) {
	t.Parallel()

	heights := []int{5, 30, 12, 40, 8, 25, 60, 10}
	offsets := viewport.Offsets(heights)
	total := offsets[len(offsets)-1]

	for scroll := 0; scroll < total; scroll += 7 {
		first, last := viewport.Range(scroll, 50, offsets, 0)
		for row := 0; row < len(heights); row++ {
			visible := offsets[row] < scroll+50 && offsets[row+1] > scroll
			if visible {
				assert.GreaterOrEqual(t, row, first, "scroll %d row %d", scroll, row)
				assert.LessOrEqual(t, row, last, "scroll %d row %d", scroll, row)
			}
		}
	}
}

func TestRange_ScrollBeyondContentClamps(t *testing.T) {
	t.Parallel()

	offsets := viewport.Offsets(uniform(10, 20))

	first, last := viewport.Range(10000, 200, offsets, 0)
	assert.Equal(t, 9, first)
	assert.Equal(t, 9, last)
}

func TestRange_Empty(t *testing.T) {
	t.Parallel()

	first, last := viewport.Range(0, 200, viewport.Offsets(nil), 2)
	assert.Equal(t, 0, first)
	assert.Equal(t, -1, last)
}

func TestFlatten_CollapsedBlockBecomesOneFoldRow(t *testing.T) {
	t.Parallel()

	blocks := []splitdiff.Block{{Index: 0, StartLine: 2, EndLine: 6, Lines: 5}}
	blockOf := map[int]int{2: 0, 3: 0, 4: 0, 5: 0, 6: 0}

	rows := viewport.Flatten(9, blocks, blockOf, nil)

	require.Len(t, rows, 5)
	assert.Equal(t, viewport.RenderRow{Line: 0}, rows[0])
	assert.Equal(t, viewport.RenderRow{Line: 1}, rows[1])
	assert.Equal(t, viewport.RenderRow{Line: 2, Fold: true, Block: 0}, rows[2])
	assert.Equal(t, viewport.RenderRow{Line: 7}, rows[3])
	assert.Equal(t, viewport.RenderRow{Line: 8}, rows[4])
}

func TestFlatten_ExpandedBlockShowsAllRows(t *testing.T) {
	t.Parallel()

	blocks := []splitdiff.Block{{Index: 0, StartLine: 2, EndLine: 6, Lines: 5}}
	blockOf := map[int]int{2: 0, 3: 0, 4: 0, 5: 0, 6: 0}

	rows := viewport.Flatten(9, blocks, blockOf, map[int]bool{0: true})

	require.Len(t, rows, 9)
	for i, r := range rows {
		assert.Equal(t, viewport.RenderRow{Line: i}, r)
	}
}

func TestFlatten_NoBlocks(t *testing.T) {
	t.Parallel()

	rows := viewport.Flatten(3, nil, nil, nil)

	require.Len(t, rows, 3)
	assert.Equal(t, viewport.RenderRow{Line: 1}, rows[1])
}
