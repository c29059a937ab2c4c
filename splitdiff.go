// Package splitdiff provides the data model for two-column and unified diff
// views: paired line records with modification detection, intra-line token
// diffs, foldable unchanged blocks, and visible-range computation for
// virtualized rendering.
package splitdiff

import "errors"

// ErrTextOnly is returned when structured (non-string) values are supplied
// under a compare mode that can only operate on text.
var ErrTextOnly = errors.New("both values must be text for this compare mode")

// Chunk is a contiguous run of text with a single classification, as produced
// by a sequence-diff primitive. Chunks are ordered; concatenating the values
// of a line-mode diff reconstructs a merge of both inputs. A chunk with
// neither Added nor Removed set is unchanged.
type Chunk struct {
	Value   string
	Added   bool
	Removed bool
}

// CellType classifies one side of a rendered row.
type CellType int

// Cell types.
const (
	CellDefault CellType = iota
	CellAdded
	CellRemoved
	CellChanged
)

// Token is one segment of an intra-line diff. Concatenating the values of a
// side's tokens reconstructs that side's full line text. Token types are
// limited to CellDefault, CellAdded and CellRemoved.
type Token struct {
	Type  CellType
	Value string
}

// Cell is one side (left or right) of a rendered row.
type Cell struct {
	Number   int      // 1-based line number; 0 when this side has no corresponding line
	Type     CellType
	Value    string   // line text (removed/added/changed empty lines render as a single space)
	Tokens   []Token  // intra-line diff, set when word diffing ran immediately
	Raw      string   // original line text, stored when word diffing was deferred
	Deferred bool     // word diff must be computed on demand from Raw
}

// Row pairs the left and right cells of one rendered row. Exactly one of the
// following holds: both sides populated (default or changed pairing), left
// only (removed), or right only (added).
type Row struct {
	Left  Cell
	Right Cell
}

// Block is a maximal run of consecutive unchanged rows outside every context
// margin, eligible for collapsed display.
type Block struct {
	Index     int // position in the block list
	StartLine int // first row index in the run
	EndLine   int // last row index in the run
	Lines     int // number of rows in the run
}

// CompareMode selects the comparison granularity for intra-line diffs and,
// for the structural modes, how the top-level inputs are interpreted.
type CompareMode int

// Compare modes.
const (
	CompareChars CompareMode = iota
	CompareWords
	CompareWordsWithSpace
	CompareLines
	CompareTrimmedLines
	CompareSentences
	CompareJSON
	CompareYAML
)

// Structural reports whether the mode diffs parsed tree structure rather
// than raw text.
func (m CompareMode) Structural() bool {
	return m == CompareJSON || m == CompareYAML
}

// Comparator is a custom chunk-level comparison function over two texts. It
// replaces the built-in compare modes and requires string inputs.
type Comparator func(old, new string) []Chunk

// WordDiffer computes intra-line token diffs between two line strings. The
// left sequence reconstructs old, the right sequence reconstructs new;
// unchanged tokens appear on both sides.
type WordDiffer interface {
	Diff(old, new string, mode CompareMode) (left, right []Token)
}
