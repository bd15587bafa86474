package patch

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/signadot/go-mutate/ir"
)

// JSONOp is one RFC 6902 operation.
type JSONOp struct {
	Op    string   `json:"op"`
	Path  string   `json:"path"`
	Value *ir.Node `json:"value,omitempty"`
}

// ToJSONPatch translates patches meant for base into an RFC 6902 JSON
// Patch.  Only records, sequences and scalars have a JSON Patch form, so
// map and set actions give ErrUnsupportedPatch.  Index dependent actions
// are spelled out against the state of base as the patches are applied.
func ToJSONPatch(base *ir.Node, patches []*Patch) ([]JSONOp, error) {
	x := &jsonExporter{}
	cur := base
	for i, p := range patches {
		if err := Validate(p); err != nil {
			return nil, fmt.Errorf("patch %d: %w", i, err)
		}
		var err error
		if isSelf(p) {
			cur, err = x.all(cur, p.Next, "")
		} else {
			cur, err = x.all(cur, []*Patch{p}, "")
		}
		if err != nil {
			return nil, fmt.Errorf("patch %d: %w", i, err)
		}
	}
	return x.ops, nil
}

// MarshalJSONPatch is ToJSONPatch followed by JSON encoding.
func MarshalJSONPatch(base *ir.Node, patches []*Patch) ([]byte, error) {
	ops, err := ToJSONPatch(base, patches)
	if err != nil {
		return nil, err
	}
	return json.Marshal(ops)
}

type jsonExporter struct {
	ops []JSONOp
}

func (x *jsonExporter) emit(op, ptr string, v *ir.Node) {
	x.ops = append(x.ops, JSONOp{Op: op, Path: ptr, Value: v})
}

func (x *jsonExporter) all(node *ir.Node, ps []*Patch, ptr string) (*ir.Node, error) {
	res := node
	for _, p := range ps {
		var err error
		res, err = x.one(res, p, ptr)
		if err != nil {
			return nil, err
		}
	}
	return res, nil
}

// one emits the operations for p acting on node and returns node with p
// applied.
func (x *jsonExporter) one(node *ir.Node, p *Patch, ptr string) (*ir.Node, error) {
	switch p.Action {
	case ActionMapSet, ActionMapDelete, ActionMapClear,
		ActionSetAdd, ActionSetDelete, ActionSetClear:
		return nil, fmt.Errorf("%w: %s has no json patch form", ErrUnsupportedPatch, p.Action)
	case ActionNested:
		child, ok := node.Child(p.P)
		if !ok || !child.IsContainer() {
			return nil, fmt.Errorf("%w: no container at %s", ErrPathNotFound, jsonPointer(ptr, p.P))
		}
		sub, err := x.all(child, p.Next, jsonPointer(ptr, p.P))
		if err != nil {
			return nil, err
		}
		res := node.ShallowCopy()
		res.SetChild(p.P, sub)
		return res, nil
	case ActionReplace:
		x.emit("replace", ptr, p.V)
		return p.V, nil
	}
	if node.Type == ir.SequenceType {
		x.sequence(node, p, ptr)
	} else if node.Type == ir.RecordType {
		switch p.Action {
		case ActionSet:
			x.emit("add", jsonPointer(ptr, p.P), p.V)
		case ActionDelete:
			if node.KeyIndex(p.P) != -1 {
				x.emit("remove", jsonPointer(ptr, p.P), nil)
			}
		}
	}
	return applyAll(node, []*Patch{p}, nil)
}

func (x *jsonExporter) sequence(node *ir.Node, p *Patch, ptr string) {
	n := len(node.Values)
	switch p.Action {
	case ActionSet:
		if p.P == "length" {
			m, ok := p.V.Int()
			if !ok {
				return
			}
			for i := n - 1; i >= m; i-- {
				x.emit("remove", jsonPointer(ptr, strconv.Itoa(i)), nil)
			}
			x.pad(ptr, n, m)
			return
		}
		i, ok := ir.ParseIndex(p.P)
		if !ok {
			return
		}
		if i < n {
			x.emit("replace", jsonPointer(ptr, p.P), p.V)
			return
		}
		x.pad(ptr, n, i)
		x.emit("add", jsonPointer(ptr, p.P), p.V)
	case ActionDelete:
		if i, ok := ir.ParseIndex(p.P); ok && i < n {
			x.emit("replace", jsonPointer(ptr, p.P), ir.Null())
		}
	case ActionArraySplice:
		start, removed, inserted, _ := spliceArgs(p.V)
		if start+len(removed) > n {
			return
		}
		for range removed {
			x.emit("remove", jsonPointer(ptr, strconv.Itoa(start)), nil)
		}
		for j, v := range inserted {
			x.emit("add", jsonPointer(ptr, strconv.Itoa(start+j)), v)
		}
	case ActionArrayReverse:
		for i := range n / 2 {
			j := n - 1 - i
			x.emit("replace", jsonPointer(ptr, strconv.Itoa(i)), node.Values[j])
			x.emit("replace", jsonPointer(ptr, strconv.Itoa(j)), node.Values[i])
		}
	}
}

// pad appends nulls to grow a sequence from length n to length m.
func (x *jsonExporter) pad(ptr string, n, m int) {
	for i := n; i < m; i++ {
		x.emit("add", jsonPointer(ptr, strconv.Itoa(i)), ir.Null())
	}
}

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

func jsonPointer(ptr, key string) string {
	return ptr + "/" + pointerEscaper.Replace(key)
}
