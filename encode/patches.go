package encode

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/signadot/go-mutate/ir"
	"github.com/signadot/go-mutate/patch"
)

// EncodePatches writes the wire form of patches.
func EncodePatches(ps []*patch.Patch, w io.Writer, opts ...EncodeOption) error {
	return Encode(patch.ListToNode(ps), w, opts...)
}

// View writes one line per leaf of patches: the top-level index on the
// first leaf of each patch, the action, the addressed location and the
// payload as compact JSON.
//
//	0  set  /0/0       0
//	   set  /0/length  1
func View(ps []*patch.Patch, w io.Writer, opts ...EncodeOption) error {
	es := newEncState(opts)
	es.compact = true
	rows := []viewRow{}
	for i, p := range ps {
		n := len(rows)
		err := patch.Walk(p, func(path []string, leaf *patch.Patch) error {
			row := viewRow{action: leaf.Action, addr: address(path, leaf)}
			if len(rows) == n {
				row.idx = fmt.Sprint(i)
			}
			if leaf.V != nil {
				buf := bytes.NewBuffer(nil)
				if err := es.writeJSON(buf, leaf.V, 0); err != nil {
					return err
				}
				row.payload = buf.String()
			}
			rows = append(rows, row)
			return nil
		})
		if err != nil {
			return err
		}
		if len(rows) == n {
			rows = append(rows, viewRow{idx: fmt.Sprint(i), action: patch.ActionNested, addr: "/"})
		}
	}
	var wIdx, wAction, wAddr int
	for _, r := range rows {
		wIdx = max(wIdx, len(r.idx))
		wAction = max(wAction, len(r.action.String()))
		wAddr = max(wAddr, len(r.addr))
	}
	buf := bytes.NewBuffer(nil)
	for _, r := range rows {
		action, addr := r.action.String(), r.addr
		pad := func(s string, n int) string { return strings.Repeat(" ", n-len(s)+2) }
		aPad, addrPad := pad(action, wAction), pad(addr, wAddr)
		if es.colors != nil {
			action = es.colors.Action(r.action)
			addr = es.colors.Color(ir.RecordType, FieldColor, addr)
		}
		line := r.idx + pad(r.idx, wIdx) + action + aPad + addr + addrPad + r.payload
		buf.WriteString(strings.TrimRight(line, " "))
		buf.WriteByte('\n')
	}
	_, err := w.Write(buf.Bytes())
	return err
}

type viewRow struct {
	idx     string
	action  patch.Action
	addr    string
	payload string
}

// address renders the location a leaf acts on as a slash separated path.
func address(path []string, leaf *patch.Patch) string {
	keys := path
	if !leaf.Action.OnContainer() {
		keys = append(path[:len(path):len(path)], leaf.P)
	}
	return "/" + strings.Join(keys, "/")
}
