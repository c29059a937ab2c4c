// Package textdiff adapts a Myers-style sequence-diff primitive to the chunk
// model used by the rest of the pipeline. It supports several comparison
// granularities; callers pick one per compare mode.
package textdiff

import (
	"strings"
	"unicode/utf8"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/fwojciec/splitdiff"
)

// Granularity selects the unit of comparison.
type Granularity int

// Granularities.
const (
	Chars Granularity = iota
	Words
	WordsWithSpace
	Lines
	TrimmedLines
	Sentences
)

// Diff compares old and new at the given granularity and returns ordered
// chunks whose concatenated values reconstruct a merge of both inputs.
func Diff(old, new string, g Granularity) []splitdiff.Chunk {
	switch g {
	case Chars:
		d := diffmatchpatch.New()
		diffs := d.DiffMain(old, new, false)
		diffs = d.DiffCleanupMerge(diffs)
		return toChunks(diffs)
	case Words:
		return diffTokens(tokenizeWords(old, false), tokenizeWords(new, false), identity)
	case WordsWithSpace:
		return diffTokens(tokenizeWords(old, true), tokenizeWords(new, true), identity)
	case Lines:
		return diffLines(old, new)
	case TrimmedLines:
		return diffTokens(splitPreserveEOL(old), splitPreserveEOL(new), strings.TrimSpace)
	case Sentences:
		return diffTokens(tokenizeSentences(old), tokenizeSentences(new), identity)
	default:
		return diffLines(old, new)
	}
}

// diffLines runs the primitive in line mode using its line-to-rune encoding.
func diffLines(old, new string) []splitdiff.Chunk {
	d := diffmatchpatch.New()
	rOld, rNew, lineArray := d.DiffLinesToRunes(old, new)
	diffs := d.DiffMainRunes(rOld, rNew, false)
	diffs = d.DiffCleanupMerge(diffs)

	chunks := make([]splitdiff.Chunk, 0, len(diffs))
	for _, df := range diffs {
		var b strings.Builder
		for _, r := range df.Text {
			if idx := int(r); idx >= 0 && idx < len(lineArray) {
				b.WriteString(lineArray[idx])
			}
		}
		if b.Len() == 0 {
			continue
		}
		chunks = append(chunks, chunk(b.String(), df.Type))
	}
	return chunks
}

// diffTokens interns tokens as runes by comparison identity, runs the
// primitive over the rune strings, and decodes positionally against the
// original token slices: delete runs consume old tokens, insert runs consume
// new tokens, equal runs consume both and render the new side's spelling.
// key maps a token to its comparison identity (trimmed text for
// TrimmedLines, otherwise the token itself); removed and added chunks always
// carry their own side's original text even under a lossy key.
func diffTokens(oldTokens, newTokens []string, key func(string) string) []splitdiff.Chunk {
	index := make(map[string]rune, len(oldTokens)+len(newTokens))
	intern := func(tokens []string) []rune {
		rs := make([]rune, 0, len(tokens))
		for _, t := range tokens {
			k := key(t)
			r, ok := index[k]
			if !ok {
				r = indexRune(len(index) + 1) // rune 0 reserved
				index[k] = r
			}
			rs = append(rs, r)
		}
		return rs
	}
	rOld := intern(oldTokens)
	rNew := intern(newTokens)

	d := diffmatchpatch.New()
	diffs := d.DiffMainRunes(rOld, rNew, false)
	diffs = d.DiffCleanupMerge(diffs)

	var oi, ni int
	chunks := make([]splitdiff.Chunk, 0, len(diffs))
	for _, df := range diffs {
		n := utf8.RuneCountInString(df.Text)
		if n == 0 {
			continue
		}
		var b strings.Builder
		switch df.Type {
		case diffmatchpatch.DiffDelete:
			for _, t := range oldTokens[oi : oi+n] {
				b.WriteString(t)
			}
			oi += n
		case diffmatchpatch.DiffInsert:
			for _, t := range newTokens[ni : ni+n] {
				b.WriteString(t)
			}
			ni += n
		default:
			for _, t := range newTokens[ni : ni+n] {
				b.WriteString(t)
			}
			oi += n
			ni += n
		}
		chunks = append(chunks, chunk(b.String(), df.Type))
	}
	return chunks
}

// indexRune maps an interning index to a rune, skipping the surrogate range
// which cannot round-trip through a Go string.
func indexRune(i int) rune {
	if i >= 0xD800 {
		i += 0x800
	}
	return rune(i)
}

func toChunks(diffs []diffmatchpatch.Diff) []splitdiff.Chunk {
	chunks := make([]splitdiff.Chunk, 0, len(diffs))
	for _, df := range diffs {
		if df.Text == "" {
			continue
		}
		chunks = append(chunks, chunk(df.Text, df.Type))
	}
	return chunks
}

func chunk(value string, op diffmatchpatch.Operation) splitdiff.Chunk {
	switch op {
	case diffmatchpatch.DiffDelete:
		return splitdiff.Chunk{Value: value, Removed: true}
	case diffmatchpatch.DiffInsert:
		return splitdiff.Chunk{Value: value, Added: true}
	default:
		return splitdiff.Chunk{Value: value}
	}
}

func identity(s string) string { return s }

// SplitLines splits text into display lines. Every newline terminates a line
// and is not part of the returned line; an unterminated trailing remainder is
// its own line. SplitLines("a\n\n") is ["a", ""] and SplitLines("a\n") is
// ["a"].
func SplitLines(text string) []string {
	raw := splitPreserveEOL(text)
	if len(raw) == 0 {
		return nil
	}
	lines := make([]string, len(raw))
	for i, l := range raw {
		lines[i] = strings.TrimSuffix(l, "\n")
	}
	return lines
}

// splitPreserveEOL splits text into lines that keep their trailing newline,
// except possibly the last.
func splitPreserveEOL(text string) []string {
	if text == "" {
		return nil
	}
	var lines []string
	for {
		idx := strings.IndexByte(text, '\n')
		if idx == -1 {
			lines = append(lines, text)
			break
		}
		lines = append(lines, text[:idx+1])
		text = text[idx+1:]
		if text == "" {
			break
		}
	}
	return lines
}
