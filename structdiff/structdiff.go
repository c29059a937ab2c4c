// Package structdiff diffs tree-structured data (JSON or YAML) by walking
// substructure and running the expensive text primitive only on leaves that
// actually changed. Its output is the same chunk model the line engine
// consumes, rendered as canonical serialized text.
package structdiff

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"gopkg.in/yaml.v3"

	"github.com/fwojciec/splitdiff"
	"github.com/fwojciec/splitdiff/textdiff"
)

// Format selects the structured-data encoding.
type Format int

// Formats.
const (
	JSON Format = iota
	YAML
)

// Compare diffs two parsed structured values. Unchanged subtrees become
// single unchanged chunks of their canonical serialization; changed leaves
// are diffed with the line-mode primitive and re-indented to their nesting
// depth.
func Compare(old, new any, f Format) []splitdiff.Chunk {
	w := newWalker(f)
	if w.render(old, 0) == w.render(new, 0) {
		return []splitdiff.Chunk{{Value: w.render(new, 0) + "\n"}}
	}
	return w.diff(old, new, 0)
}

// CompareText diffs two strings containing encoded structured data. It parses
// only to test structural equality: equal documents return the original old
// text as a single unchanged chunk, preserving its formatting; unequal
// documents are diffed as plain text so original formatting and key order
// survive in the result. A parse failure is returned as an error and the
// caller is expected to fall back to a plain line diff.
func CompareText(old, new string, f Format) ([]splitdiff.Chunk, error) {
	switch f {
	case JSON:
		if !gjson.Valid(old) {
			return nil, fmt.Errorf("old value: %w", errInvalidJSON)
		}
		if !gjson.Valid(new) {
			return nil, fmt.Errorf("new value: %w", errInvalidJSON)
		}
		// Canonical form is the whitespace-normalized document with key
		// order preserved.
		if bytes.Equal(pretty.Ugly([]byte(old)), pretty.Ugly([]byte(new))) {
			return []splitdiff.Chunk{{Value: old}}, nil
		}
	case YAML:
		var o, n any
		if err := yaml.Unmarshal([]byte(old), &o); err != nil {
			return nil, fmt.Errorf("parse old YAML: %w", err)
		}
		if err := yaml.Unmarshal([]byte(new), &n); err != nil {
			return nil, fmt.Errorf("parse new YAML: %w", err)
		}
		w := newWalker(YAML)
		if w.render(o, 0) == w.render(n, 0) {
			return []splitdiff.Chunk{{Value: old}}, nil
		}
	}
	return textdiff.Diff(old, new, textdiff.Lines), nil
}

var errInvalidJSON = errors.New("invalid JSON")
