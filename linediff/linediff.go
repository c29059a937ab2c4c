// Package linediff turns a raw comparison of two values into ordered, paired
// line records with modification detection. It is the pipeline stage between
// the chunk-producing primitives and the fold/viewport consumers.
package linediff

import (
	"sort"
	"strconv"
	"unicode/utf8"

	"github.com/fwojciec/splitdiff"
	"github.com/fwojciec/splitdiff/structdiff"
	"github.com/fwojciec/splitdiff/textdiff"
	"github.com/fwojciec/splitdiff/worddiff"
)

// MaxWordDiffLen is the line length in characters beyond which word-level
// diffing is skipped and changed lines render as whole strings: token-level
// comparison cost can grow quadratically on adversarial inputs.
const MaxWordDiffLen = 500

// Options configure a line diff computation. The zero value compares text
// line by line with character-level intra-line diffs.
type Options struct {
	// Mode selects the intra-line comparison granularity and, for
	// CompareJSON/CompareYAML, structural interpretation of the inputs.
	Mode splitdiff.CompareMode

	// Comparator, when set, replaces the built-in modes with a custom
	// chunk-level comparison. It requires string inputs.
	Comparator splitdiff.Comparator

	// DisableWordDiff renders changed lines as whole strings without token
	// sequences.
	DisableWordDiff bool

	// DeferWordDiff stores the raw strings on changed rows instead of
	// computing token sequences; consumers compute them on demand, typically
	// through a worddiff.Cache.
	DeferWordDiff bool

	// LineOffset shifts the starting line number on both sides; the first
	// line is numbered LineOffset+1.
	LineOffset int

	// AlwaysShow forces rows into the changed set by line identifier of the
	// form "L-<n>" or "R-<n>".
	AlwaysShow []string

	// WordDiffer overrides the intra-line differ. Defaults to
	// worddiff.NewDiffer().
	WordDiffer splitdiff.WordDiffer
}

// Result is the display-ready line model.
type Result struct {
	Rows    []splitdiff.Row
	Changed []int // sorted indices of rows that represent a genuine difference
}

// Compute compares old and new and expands the result into paired line
// records. String inputs are diffed line by line, or through the structural
// text path for the structural modes; non-string inputs require a structural
// mode and otherwise fail with splitdiff.ErrTextOnly. Malformed structured
// text never fails: it degrades to a plain line diff.
func Compute(old, new any, opts Options) (Result, error) {
	chunks, err := dispatch(old, new, opts)
	if err != nil {
		return Result{}, err
	}
	return expand(chunks, opts), nil
}

func dispatch(old, new any, opts Options) ([]splitdiff.Chunk, error) {
	oldS, oldOK := old.(string)
	newS, newOK := new.(string)
	textual := oldOK && newOK

	if opts.Comparator != nil {
		if !textual {
			return nil, splitdiff.ErrTextOnly
		}
		return opts.Comparator(oldS, newS), nil
	}

	switch opts.Mode {
	case splitdiff.CompareJSON, splitdiff.CompareYAML:
		format := structdiff.JSON
		if opts.Mode == splitdiff.CompareYAML {
			format = structdiff.YAML
		}
		if !textual {
			return structdiff.Compare(old, new, format), nil
		}
		chunks, err := structdiff.CompareText(oldS, newS, format)
		if err != nil {
			// Malformed structured text degrades to a plain line diff.
			return textdiff.Diff(oldS, newS, textdiff.Lines), nil
		}
		return chunks, nil
	default:
		if !textual {
			return nil, splitdiff.ErrTextOnly
		}
		return textdiff.Diff(oldS, newS, textdiff.Lines), nil
	}
}

// expand walks the chunk sequence in order, maintaining independent left and
// right line counters. A removed chunk immediately followed by an added chunk
// pairs line by line into modification rows; added lines consumed by pairing
// are skipped when their chunk is processed directly.
func expand(chunks []splitdiff.Chunk, opts Options) Result {
	differ := opts.WordDiffer
	if differ == nil {
		differ = worddiff.NewDiffer()
	}

	var (
		rows    []splitdiff.Row
		changed []int
		left    = opts.LineOffset
		right   = opts.LineOffset
		skip    int // lines of the next added chunk already consumed by pairing
	)

	for i := 0; i < len(chunks); i++ {
		c := chunks[i]
		lines := textdiff.SplitLines(c.Value)

		switch {
		case c.Removed:
			var addedLines []string
			if i+1 < len(chunks) && chunks[i+1].Added {
				addedLines = textdiff.SplitLines(chunks[i+1].Value)
			}
			skip = 0
			for j, line := range lines {
				left++
				if j >= len(addedLines) {
					changed = append(changed, len(rows))
					rows = append(rows, splitdiff.Row{
						Left: splitdiff.Cell{Number: left, Type: splitdiff.CellRemoved, Value: display(line)},
					})
					continue
				}
				right++
				skip = j + 1
				newLine := addedLines[j]
				if line == newLine {
					// Identical after pairing: both sides demote to default.
					rows = append(rows, splitdiff.Row{
						Left:  splitdiff.Cell{Number: left, Type: splitdiff.CellDefault, Value: line},
						Right: splitdiff.Cell{Number: right, Type: splitdiff.CellDefault, Value: newLine},
					})
					continue
				}
				changed = append(changed, len(rows))
				rows = append(rows, changedRow(left, right, line, newLine, differ, opts))
			}

		case c.Added:
			for j, line := range lines {
				if j < skip {
					continue
				}
				right++
				changed = append(changed, len(rows))
				rows = append(rows, splitdiff.Row{
					Right: splitdiff.Cell{Number: right, Type: splitdiff.CellAdded, Value: display(line)},
				})
			}
			skip = 0

		default:
			skip = 0
			for _, line := range lines {
				left++
				right++
				rows = append(rows, splitdiff.Row{
					Left:  splitdiff.Cell{Number: left, Type: splitdiff.CellDefault, Value: line},
					Right: splitdiff.Cell{Number: right, Type: splitdiff.CellDefault, Value: line},
				})
			}
		}
	}

	return Result{Rows: rows, Changed: forceShown(rows, changed, opts.AlwaysShow)}
}

// changedRow builds a modification pair. Depending on options the intra-line
// diff is computed immediately, deferred via the raw strings, or skipped
// entirely (disabled, or either line exceeds MaxWordDiffLen).
func changedRow(leftNum, rightNum int, oldLine, newLine string, differ splitdiff.WordDiffer, opts Options) splitdiff.Row {
	lc := splitdiff.Cell{Number: leftNum, Type: splitdiff.CellChanged, Value: display(oldLine)}
	rc := splitdiff.Cell{Number: rightNum, Type: splitdiff.CellChanged, Value: display(newLine)}

	switch {
	case opts.DisableWordDiff ||
		utf8.RuneCountInString(oldLine) > MaxWordDiffLen ||
		utf8.RuneCountInString(newLine) > MaxWordDiffLen:
		// Whole-line values only.
	case opts.DeferWordDiff:
		lc.Raw, lc.Deferred = oldLine, true
		rc.Raw, rc.Deferred = newLine, true
	default:
		lc.Tokens, rc.Tokens = differ.Diff(oldLine, newLine, opts.Mode)
	}
	return splitdiff.Row{Left: lc, Right: rc}
}

// display renders an empty removed/added/changed line as a single space so
// it stays visually distinguishable. Unchanged empty lines keep the empty
// string; the two are not equivalent.
func display(line string) string {
	if line == "" {
		return " "
	}
	return line
}

// forceShown merges rows named by AlwaysShow identifiers into the changed
// set. Identifiers address a side's line number: "L-3" is the row whose left
// side is line 3.
func forceShown(rows []splitdiff.Row, changed []int, ids []string) []int {
	if len(ids) == 0 {
		return changed
	}
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	seen := make(map[int]bool, len(changed))
	for _, idx := range changed {
		seen[idx] = true
	}
	for idx, row := range rows {
		if seen[idx] {
			continue
		}
		if (row.Left.Number > 0 && want["L-"+strconv.Itoa(row.Left.Number)]) ||
			(row.Right.Number > 0 && want["R-"+strconv.Itoa(row.Right.Number)]) {
			changed = append(changed, idx)
			seen[idx] = true
		}
	}
	sort.Ints(changed)
	return changed
}
