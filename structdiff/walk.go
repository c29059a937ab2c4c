package structdiff

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/fwojciec/splitdiff"
	"github.com/fwojciec/splitdiff/textdiff"
)

// walker emits canonical rendered text for a pair of structured values,
// recursing only where the two sides differ. Chunks produced by a recursive
// call leave their first line unindented: the caller concatenates it onto a
// prefix (key label, sequence marker, indentation) already at the right
// column.
type walker struct {
	format Format
}

func newWalker(f Format) *walker { return &walker{format: f} }

func (w *walker) render(v any, depth int) string {
	if w.format == JSON {
		return renderJSON(v, depth)
	}
	return reindent(marshalYAML(v), depth)
}

func (w *walker) diff(old, new any, depth int) []splitdiff.Chunk {
	so := w.render(old, depth)
	sn := w.render(new, depth)
	if so == sn {
		return []splitdiff.Chunk{{Value: sn + "\n"}}
	}
	if om, ok := old.(map[string]any); ok {
		if nm, ok := new.(map[string]any); ok {
			return w.diffMap(om, nm, depth)
		}
	}
	if oa, ok := old.([]any); ok {
		if na, ok := new.([]any); ok {
			return w.diffSlice(oa, na, depth)
		}
	}
	// Changed leaf or mismatched types: the serialized forms are compared
	// with the line primitive, already re-indented to the current depth.
	return textdiff.Diff(so+"\n", sn+"\n", textdiff.Lines)
}

func (w *walker) diffMap(old, new map[string]any, depth int) []splitdiff.Chunk {
	keys := orderedKeys(old, new)
	if w.format == JSON {
		return w.diffMapJSON(old, new, keys, depth)
	}
	return w.diffMapYAML(old, new, keys, depth)
}

func (w *walker) diffSlice(old, new []any, depth int) []splitdiff.Chunk {
	if w.format == JSON {
		return w.diffSliceJSON(old, new, depth)
	}
	return w.diffSliceYAML(old, new, depth)
}

func (w *walker) diffMapJSON(old, new map[string]any, keys []string, depth int) []splitdiff.Chunk {
	inner := indent(depth + 1)
	chunks := []splitdiff.Chunk{{Value: "{\n"}}
	for i, k := range keys {
		label := inner + jsonKey(k) + ": "
		suffix := ""
		if i < len(keys)-1 {
			suffix = ","
		}
		ov, inOld := old[k]
		nv, inNew := new[k]
		switch {
		case !inNew:
			chunks = append(chunks, splitdiff.Chunk{Value: label + w.render(ov, depth+1) + suffix + "\n", Removed: true})
		case !inOld:
			chunks = append(chunks, splitdiff.Chunk{Value: label + w.render(nv, depth+1) + suffix + "\n", Added: true})
		default:
			chunks = append(chunks, affix(label, suffix, w.diff(ov, nv, depth+1))...)
		}
	}
	return append(chunks, splitdiff.Chunk{Value: indent(depth) + "}\n"})
}

func (w *walker) diffSliceJSON(old, new []any, depth int) []splitdiff.Chunk {
	inner := indent(depth + 1)
	n := max(len(old), len(new))
	chunks := []splitdiff.Chunk{{Value: "[\n"}}
	for i := 0; i < n; i++ {
		suffix := ""
		if i < n-1 {
			suffix = ","
		}
		switch {
		case i >= len(new):
			chunks = append(chunks, splitdiff.Chunk{Value: inner + w.render(old[i], depth+1) + suffix + "\n", Removed: true})
		case i >= len(old):
			chunks = append(chunks, splitdiff.Chunk{Value: inner + w.render(new[i], depth+1) + suffix + "\n", Added: true})
		default:
			chunks = append(chunks, affix(inner, suffix, w.diff(old[i], new[i], depth+1))...)
		}
	}
	return append(chunks, splitdiff.Chunk{Value: indent(depth) + "]\n"})
}

func (w *walker) diffMapYAML(old, new map[string]any, keys []string, depth int) []splitdiff.Chunk {
	var chunks []splitdiff.Chunk
	for i, k := range keys {
		pref := indent(depth)
		if i == 0 {
			pref = "" // first line is the caller's to indent
		}
		ov, inOld := old[k]
		nv, inNew := new[k]
		switch {
		case !inNew:
			chunks = append(chunks, splitdiff.Chunk{Value: pref + renderEntryYAML(k, ov, depth), Removed: true})
		case !inOld:
			chunks = append(chunks, splitdiff.Chunk{Value: pref + renderEntryYAML(k, nv, depth), Added: true})
		case isComposite(ov) || isComposite(nv):
			chunks = append(chunks, splitdiff.Chunk{Value: pref + yamlKey(k) + ":\n"})
			chunks = append(chunks, affix(indent(depth+1), "", w.diff(ov, nv, depth+1))...)
		default:
			chunks = append(chunks, affix(pref+yamlKey(k)+": ", "", w.diff(ov, nv, depth+1))...)
		}
	}
	return chunks
}

func (w *walker) diffSliceYAML(old, new []any, depth int) []splitdiff.Chunk {
	var chunks []splitdiff.Chunk
	n := max(len(old), len(new))
	for i := 0; i < n; i++ {
		pref := indent(depth)
		if i == 0 {
			pref = ""
		}
		switch {
		case i >= len(new):
			chunks = append(chunks, splitdiff.Chunk{Value: pref + reindent(marshalYAML([]any{old[i]}), depth) + "\n", Removed: true})
		case i >= len(old):
			chunks = append(chunks, splitdiff.Chunk{Value: pref + reindent(marshalYAML([]any{new[i]}), depth) + "\n", Added: true})
		default:
			chunks = append(chunks, affix(pref+"- ", "", w.diff(old[i], new[i], depth+1))...)
		}
	}
	return chunks
}

// affix applies a pending prefix and suffix to a freshly produced chunk
// sequence without touching previously emitted data. The prefix lands on the
// first chunk's first line; when the element opens with a removed/added pair
// (a replaced first line) both sides receive it, so the key label stays
// attached on each side. The suffix is inserted before the final newline of
// the last physical chunk.
func affix(prefix, suffix string, chunks []splitdiff.Chunk) []splitdiff.Chunk {
	if len(chunks) == 0 {
		return chunks
	}
	out := make([]splitdiff.Chunk, len(chunks))
	copy(out, chunks)
	out[0].Value = prefix + out[0].Value
	if out[0].Removed && len(out) > 1 && out[1].Added {
		out[1].Value = prefix + out[1].Value
	}
	if suffix != "" {
		last := len(out) - 1
		out[last].Value = beforeFinalNewline(out[last].Value, suffix)
	}
	return out
}

func beforeFinalNewline(s, suffix string) string {
	if strings.HasSuffix(s, "\n") {
		return s[:len(s)-1] + suffix + "\n"
	}
	return s + suffix
}

// orderedKeys walks the new value's keys first, then keys present only in
// old. Parsed Go maps carry no document order, so each group is sorted.
func orderedKeys(old, new map[string]any) []string {
	keys := make([]string, 0, len(new))
	for k := range new {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var extra []string
	for k := range old {
		if _, ok := new[k]; !ok {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	return append(keys, extra...)
}

func isComposite(v any) bool {
	switch v.(type) {
	case map[string]any, []any:
		return true
	}
	return false
}

// renderJSON serializes v with canonical two-space indentation. Continuation
// lines carry the indentation for depth; the first line does not.
func renderJSON(v any, depth int) string {
	data, err := json.MarshalIndent(v, indent(depth), "  ")
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}

func jsonKey(k string) string {
	b, err := json.Marshal(k)
	if err != nil {
		return fmt.Sprintf("%q", k)
	}
	return string(b)
}

// renderEntryYAML renders a single key/value entry as a canonical YAML block
// ending in a newline, with continuation lines indented for depth.
func renderEntryYAML(k string, v any, depth int) string {
	return reindent(marshalYAML(map[string]any{k: v}), depth) + "\n"
}

func yamlKey(k string) string {
	return marshalYAML(k)
}

// marshalYAML is the library-default normalized dump with two-space indent,
// without the trailing newline.
func marshalYAML(v any) string {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Sprintf("%v", v)
	}
	_ = enc.Close()
	return strings.TrimSuffix(buf.String(), "\n")
}

// reindent prefixes every line after the first with the indentation for
// depth.
func reindent(s string, depth int) string {
	if depth == 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	pref := indent(depth)
	for i := 1; i < len(lines); i++ {
		lines[i] = pref + lines[i]
	}
	return strings.Join(lines, "\n")
}

func indent(depth int) string {
	return strings.Repeat("  ", depth)
}
