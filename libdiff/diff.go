package libdiff

import (
	"github.com/signadot/go-mutate/debug"
	"github.com/signadot/go-mutate/ir"
	"github.com/signadot/go-mutate/patch"
)

// Diff returns the patch leaves which, applied to the root of from, give
// a value equal to to.  Untouched children shared by pointer produce no
// leaves.
func Diff(from, to *ir.Node) []*patch.Patch {
	res := []*patch.Patch{}
	if from == to {
		return res
	}
	if from.Type != to.Type || !from.IsContainer() {
		if !ir.Equal(from, to) {
			res = append(res, patch.Replace(to))
		}
		return res
	}
	res = diffContainer(from, to)
	if debug.Diff() {
		debug.Logf("diff %s -> %s: %d leaves\n", from, to, len(res))
	}
	return res
}

// Group is Diff wrapped as a single top-level patch.
func Group(from, to *ir.Node) *patch.Patch {
	return patch.Group(nil, Diff(from, to))
}

// diffContainer diffs two containers of the same type.
func diffContainer(from, to *ir.Node) []*patch.Patch {
	switch from.Type {
	case ir.RecordType:
		return DiffKeyed(from, to, patch.ActionSet, patch.ActionDelete)
	case ir.MapType:
		return DiffKeyed(from, to, patch.ActionMapSet, patch.ActionMapDelete)
	case ir.SequenceType:
		return DiffSequence(from, to)
	case ir.SetType:
		return DiffSet(from, to)
	}
	return nil
}

// diffChild returns the patch for the slot key whose value changes from
// from to to, or nil if nothing changed.  Containers of the same type are
// descended into, anything else is set.
func diffChild(key string, from, to *ir.Node, set patch.Action) *patch.Patch {
	if from == to {
		return nil
	}
	if from.Type == to.Type && from.IsContainer() {
		next := diffContainer(from, to)
		if len(next) == 0 {
			return nil
		}
		return patch.Nested(key, next...)
	}
	if ir.Equal(from, to) {
		return nil
	}
	return patch.Leaf(key, set, to)
}
