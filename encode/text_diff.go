package encode

import (
	"bytes"
	"io"
	"strings"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"

	"github.com/signadot/go-mutate/ir"
)

// TextDiff writes a line diff of the encodings of from and to.  Removed
// lines are prefixed with "-", added ones with "+" and common ones with
// a space.
func TextDiff(from, to *ir.Node, w io.Writer, opts ...EncodeOption) error {
	colors := newEncState(opts).colors
	plain := append(opts[:len(opts):len(opts)], EncodeColors(nil))
	a, b := bytes.NewBuffer(nil), bytes.NewBuffer(nil)
	if err := Encode(from, a, plain...); err != nil {
		return err
	}
	if err := Encode(to, b, plain...); err != nil {
		return err
	}
	dmp := diffpatch.New()
	ca, cb, lines := dmp.DiffLinesToChars(a.String(), b.String())
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(ca, cb, false), lines)
	out := bytes.NewBuffer(nil)
	for _, d := range diffs {
		prefix, paint := " ", func(s string, _ ...any) string { return s }
		switch d.Type {
		case diffpatch.DiffInsert:
			prefix = "+"
			if colors != nil {
				paint = colors.Insert
			}
		case diffpatch.DiffDelete:
			prefix = "-"
			if colors != nil {
				paint = colors.Delete
			}
		}
		for _, ln := range strings.SplitAfter(d.Text, "\n") {
			if ln == "" {
				continue
			}
			out.WriteString(paint(prefix + strings.TrimSuffix(ln, "\n")))
			out.WriteByte('\n')
		}
	}
	_, err := w.Write(out.Bytes())
	return err
}
