package main

import (
	"errors"
	"fmt"

	"github.com/google/go-cmp/cmp"
	"github.com/sergi/go-diff/diffmatchpatch"
)

var errRoundTrip = errors.New("round trip changed the document")

// check compares the loaded container with the one the engine produced. On
// a mismatch the YAML renderings are diffed character by character.
func (p *printer) check(in, out map[string]any) error {
	if cmp.Equal(in, out) {
		p.ok.Fprintln(p.w, "ok: encoded container matches the input")
		return nil
	}

	before, err := renderYAML(in)
	if err != nil {
		return err
	}
	after, err := renderYAML(out)
	if err != nil {
		return err
	}
	p.diff(before, after)
	return errRoundTrip
}

func (p *printer) diff(before, after string) {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(before, after, false)
	diffs = dmp.DiffCleanupSemantic(diffs)
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			p.insert.Fprint(p.w, d.Text)
		case diffmatchpatch.DiffDelete:
			p.remove.Fprint(p.w, d.Text)
		case diffmatchpatch.DiffEqual:
			fmt.Fprint(p.w, d.Text)
		}
	}
	if n := len(after); n == 0 || after[n-1] != '\n' {
		fmt.Fprintln(p.w)
	}
}
