package patch

import (
	"fmt"
	"slices"

	"github.com/signadot/go-mutate/debug"
	"github.com/signadot/go-mutate/ir"
)

// Apply applies patches in order to base and returns the result.  base is
// not modified and untouched parts of it are shared with the result.
//
// Each top-level patch is validated before it is applied, and applied
// entirely or not at all.  On failure Apply returns the value with all
// preceding patches applied together with the error.
func Apply(base *ir.Node, patches []*Patch) (*ir.Node, error) {
	cur := base
	for i, p := range patches {
		next, err := ApplyOne(cur, p)
		if err != nil {
			return cur, fmt.Errorf("patch %d: %w", i, err)
		}
		cur = next
	}
	return cur, nil
}

// ApplyOne validates and applies a single top-level patch.
func ApplyOne(root *ir.Node, p *Patch) (*ir.Node, error) {
	if err := Validate(p); err != nil {
		return nil, err
	}
	if debug.Patch() {
		debug.Logf("apply %s to %s\n", p, root)
	}
	if isSelf(p) {
		return applyAll(root, p.Next, nil)
	}
	return applyAll(root, []*Patch{p}, nil)
}

// applyAll applies ps to the container node, copying it at most once.
func applyAll(node *ir.Node, ps []*Patch, path ir.Path) (*ir.Node, error) {
	res := node
	owned := false
	for _, p := range ps {
		if p.Action == ActionReplace {
			res, owned = p.V, false
			continue
		}
		if !owned {
			res, owned = res.ShallowCopy(), true
		}
		if err := applyLeaf(res, p, path); err != nil {
			return nil, err
		}
	}
	return res, nil
}

func applyLeaf(res *ir.Node, p *Patch, path ir.Path) error {
	switch p.Action {
	case ActionNested:
		child, ok := res.Child(p.P)
		if !ok || !child.IsContainer() {
			return newError(path, p.Action, ErrPathNotFound, "no container at %q in %s", p.P, res.Type)
		}
		sub, err := applyAll(child, p.Next, path.Append(segment(res, p.P)))
		if err != nil {
			return err
		}
		res.SetChild(p.P, sub)
	case ActionSet:
		return applySet(res, p, path)
	case ActionDelete:
		return applyDelete(res, p, path)
	case ActionMapSet:
		if res.Type != ir.MapType {
			return mismatch(res, p, path, ir.MapType)
		}
		res.SetChild(p.P, p.V)
	case ActionMapDelete:
		if res.Type != ir.MapType {
			return mismatch(res, p, path, ir.MapType)
		}
		res.RemoveKey(p.P)
	case ActionMapClear:
		if res.Type != ir.MapType {
			return mismatch(res, p, path, ir.MapType)
		}
		entries, _ := ir.EntryPairs(p.V)
		m := ir.NewMap(entries)
		res.Keys, res.Values = m.Keys, m.Values
	case ActionSetAdd:
		if res.Type != ir.SetType {
			return mismatch(res, p, path, ir.SetType)
		}
		if res.SetIndex(p.V) == -1 {
			res.Values = append(res.Values, p.V)
		}
	case ActionSetDelete:
		if res.Type != ir.SetType {
			return mismatch(res, p, path, ir.SetType)
		}
		i := res.SetIndex(p.V)
		if i == -1 {
			i = slices.IndexFunc(res.Values, func(e *ir.Node) bool { return ir.Equal(e, p.V) })
		}
		if i != -1 {
			res.Values = slices.Delete(res.Values, i, i+1)
		}
	case ActionSetClear:
		if res.Type != ir.SetType {
			return mismatch(res, p, path, ir.SetType)
		}
		res.Values = ir.NewSet(p.V.Values).Values
	case ActionArraySplice:
		if res.Type != ir.SequenceType {
			return mismatch(res, p, path, ir.SequenceType)
		}
		start, removed, inserted, _ := spliceArgs(p.V)
		if start > len(res.Values) || start+len(removed) > len(res.Values) {
			return newError(path, p.Action, ErrPathNotFound,
				"splice of %d at %d on length %d", len(removed), start, len(res.Values))
		}
		res.Values = slices.Replace(res.Values, start, start+len(removed), inserted...)
	case ActionArrayReverse:
		if res.Type != ir.SequenceType {
			return mismatch(res, p, path, ir.SequenceType)
		}
		slices.Reverse(res.Values)
	default:
		return newError(path, p.Action, ErrUnsupportedPatch, "")
	}
	return nil
}

// MaxGrowth bounds how far past its end one patch may grow a sequence.
const MaxGrowth = 1 << 20

func applySet(res *ir.Node, p *Patch, path ir.Path) error {
	switch res.Type {
	case ir.RecordType:
		res.SetChild(p.P, p.V)
	case ir.SequenceType:
		if p.P == "length" {
			n, ok := p.V.Int()
			if !ok || n < 0 {
				return newError(path, p.Action, ErrMalformedPatch, "bad length %s", p.V)
			}
			if n-len(res.Values) > MaxGrowth {
				return newError(path, p.Action, ErrMalformedPatch, "length %d is more than %d past length %d", n, MaxGrowth, len(res.Values))
			}
			res.Resize(n)
			return nil
		}
		i, ok := ir.ParseIndex(p.P)
		if !ok {
			return newError(path, p.Action, ErrTypeMismatch, "%q is not a sequence index", p.P)
		}
		if i-len(res.Values) >= MaxGrowth {
			return newError(path, p.Action, ErrMalformedPatch, "index %d is more than %d past length %d", i, MaxGrowth, len(res.Values))
		}
		res.SetChild(p.P, p.V)
	default:
		return mismatch(res, p, path, ir.RecordType, ir.SequenceType)
	}
	return nil
}

func applyDelete(res *ir.Node, p *Patch, path ir.Path) error {
	switch res.Type {
	case ir.RecordType:
		res.RemoveKey(p.P)
	case ir.SequenceType:
		i, ok := ir.ParseIndex(p.P)
		if !ok {
			return newError(path, p.Action, ErrTypeMismatch, "%q is not a sequence index", p.P)
		}
		if i < len(res.Values) {
			res.Values[i] = ir.Null()
		}
	default:
		return mismatch(res, p, path, ir.RecordType, ir.SequenceType)
	}
	return nil
}

func mismatch(res *ir.Node, p *Patch, path ir.Path, want ...ir.Type) error {
	return newError(path, p.Action, ErrTypeMismatch, "expected %v, got %s", want, res.Type)
}

func segment(container *ir.Node, key string) ir.Segment {
	if container.Type == ir.SequenceType {
		if i, ok := ir.ParseIndex(key); ok {
			return ir.IndexSegment(i)
		}
	}
	return ir.FieldSegment(key)
}
