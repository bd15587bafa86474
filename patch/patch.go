package patch

import (
	"github.com/signadot/go-mutate/ir"
)

// Patch is a node in a patch forest.  A NESTED patch descends into the
// child P of the current container and applies Next there.  Every other
// action is a leaf carrying its payload in V.
type Patch struct {
	P      string
	Action Action
	V      *ir.Node
	Next   []*Patch
}

func Leaf(p string, a Action, v *ir.Node) *Patch {
	return &Patch{P: p, Action: a, V: v}
}

func Nested(p string, next ...*Patch) *Patch {
	if next == nil {
		next = []*Patch{}
	}
	return &Patch{P: p, Action: ActionNested, Next: next}
}

func Set(key string, v *ir.Node) *Patch       { return Leaf(key, ActionSet, v) }
func Delete(key string, old *ir.Node) *Patch  { return Leaf(key, ActionDelete, old) }
func MapSet(key string, v *ir.Node) *Patch    { return Leaf(key, ActionMapSet, v) }
func MapDelete(key string, v *ir.Node) *Patch { return Leaf(key, ActionMapDelete, v) }
func SetAdd(elem *ir.Node) *Patch             { return Leaf("", ActionSetAdd, elem) }
func SetDelete(elem *ir.Node) *Patch          { return Leaf("", ActionSetDelete, elem) }
func Reverse(n int) *Patch                    { return Leaf("", ActionArrayReverse, ir.FromInt(int64(n))) }
func Replace(v *ir.Node) *Patch               { return Leaf("", ActionReplace, v) }

// MapClear replaces the content of a map by entries.
func MapClear(entries []ir.KeyVal) *Patch {
	return Leaf("", ActionMapClear, ir.NewMap(entries).Entries())
}

// SetClear replaces the content of a set by elems.
func SetClear(elems []*ir.Node) *Patch {
	return Leaf("", ActionSetClear, ir.FromSlice(elems))
}

// Splice removes len(removed) elements at start and inserts inserted in
// their place.  removed is carried so the splice can be inverted.
func Splice(start int, removed, inserted []*ir.Node) *Patch {
	return Leaf("", ActionArraySplice, SplicePayload(start, removed, inserted))
}

func SplicePayload(start int, removed, inserted []*ir.Node) *ir.Node {
	return ir.FromKeyVals([]ir.KeyVal{
		{Key: "start", Val: ir.FromInt(int64(start))},
		{Key: "removed", Val: ir.FromSlice(removed)},
		{Key: "inserted", Val: ir.FromSlice(inserted)},
	})
}

// Group wraps the leaves of one statement acting on the container at path
// into a single top-level patch.  At the top level a NESTED patch with an
// empty P stands for the root, so a path starting with the key "" and a
// bare NESTED leaf for the key "" are wrapped once more.
func Group(path []string, leaves []*Patch) *Patch {
	if len(path) == 0 {
		if len(leaves) == 1 && !isSelf(leaves[0]) {
			return leaves[0]
		}
		return Nested("", leaves...)
	}
	next := leaves
	for i := len(path) - 1; i >= 0; i-- {
		next = []*Patch{Nested(path[i], next...)}
	}
	res := next[0]
	if path[0] == "" {
		res = Nested("", res)
	}
	return res
}

func isSelf(p *Patch) bool {
	return p != nil && p.Action == ActionNested && p.P == ""
}

// Walk calls f on every leaf of a top-level patch with the keys of the
// container the leaf acts on.
func Walk(p *Patch, f func(path []string, leaf *Patch) error) error {
	if isSelf(p) {
		return walk(p.Next, []string{}, f)
	}
	return walk([]*Patch{p}, []string{}, f)
}

func walk(ps []*Patch, path []string, f func([]string, *Patch) error) error {
	for _, p := range ps {
		if p.Action != ActionNested {
			if err := f(path, p); err != nil {
				return err
			}
			continue
		}
		sub := append(path[:len(path):len(path)], p.P)
		if err := walk(p.Next, sub, f); err != nil {
			return err
		}
	}
	return nil
}

func (p *Patch) String() string {
	d, err := p.MarshalJSON()
	if err != nil {
		return "<" + err.Error() + ">"
	}
	return string(d)
}
