package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/fwojciec/splitdiff"
	"github.com/fwojciec/splitdiff/fold"
	"github.com/fwojciec/splitdiff/linediff"
)

// ErrUnknownMode is returned for a -mode value outside the supported set.
var ErrUnknownMode = errors.New("unknown compare mode")

var modes = map[string]splitdiff.CompareMode{
	"chars":         splitdiff.CompareChars,
	"words":         splitdiff.CompareWords,
	"words-space":   splitdiff.CompareWordsWithSpace,
	"lines":         splitdiff.CompareLines,
	"trimmed-lines": splitdiff.CompareTrimmedLines,
	"sentences":     splitdiff.CompareSentences,
	"json":          splitdiff.CompareJSON,
	"yaml":          splitdiff.CompareYAML,
}

// Output is the document printed for one comparison.
type Output struct {
	Rows    []splitdiff.Row   `json:"rows"`
	Changed []int             `json:"changed"`
	Blocks  []splitdiff.Block `json:"blocks"`
}

// App encapsulates the application logic for testing.
type App struct {
	Mode   string
	Margin int
	Out    io.Writer
}

// Run compares old and new and writes the row model, changed set and
// foldable blocks as an indented JSON document.
func (a *App) Run(old, new string) error {
	mode, ok := modes[a.Mode]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownMode, a.Mode)
	}

	res, err := linediff.Compute(old, new, linediff.Options{Mode: mode})
	if err != nil {
		return err
	}
	blocks, _ := fold.Compute(len(res.Rows), res.Changed, a.Margin)

	enc := json.NewEncoder(a.Out)
	enc.SetIndent("", "  ")
	return enc.Encode(Output{Rows: res.Rows, Changed: res.Changed, Blocks: blocks})
}

func main() {
	mode := flag.String("mode", "chars", "compare mode: chars, words, words-space, lines, trimmed-lines, sentences, json, yaml")
	margin := flag.Int("margin", fold.DefaultMargin, "context rows kept visible around each change")
	flag.Parse()

	if flag.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "Usage: splitdiff [flags] <old-file> <new-file>")
		os.Exit(1)
	}

	old, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	new, err := os.ReadFile(flag.Arg(1))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	app := &App{Mode: *mode, Margin: *margin, Out: os.Stdout}
	if err := app.Run(string(old), string(new)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
