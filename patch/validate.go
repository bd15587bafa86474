package patch

import (
	"errors"

	"github.com/signadot/go-mutate/ir"
)

// Validate checks the structure of a top-level patch without regard to
// any value it might be applied to.
func Validate(p *Patch) error {
	if isSelf(p) {
		if p.V != nil {
			return newError(nil, p.Action, ErrMalformedPatch, "nested patch with a value")
		}
		return validateAll(p.Next, nil, true)
	}
	return validate(p, nil, true)
}

func validateAll(ps []*Patch, path ir.Path, atRoot bool) error {
	for _, p := range ps {
		if err := validate(p, path, atRoot); err != nil {
			return err
		}
	}
	return nil
}

func validate(p *Patch, path ir.Path, atRoot bool) error {
	if p == nil {
		return newError(path, 0, ErrMalformedPatch, "nil patch")
	}
	if !p.Action.Valid() {
		return newError(path, p.Action, ErrUnsupportedPatch, "")
	}
	if p.Action == ActionNested {
		if p.V != nil {
			return newError(path, p.Action, ErrMalformedPatch, "nested patch with a value")
		}
		if p.Next == nil {
			return newError(path, p.Action, ErrMalformedPatch, "nested patch without next")
		}
		return validateAll(p.Next, path.Append(ir.FieldSegment(p.P)), false)
	}
	if p.Next != nil {
		return newError(path, p.Action, ErrMalformedPatch, "leaf patch with next")
	}
	if p.V == nil {
		return newError(path, p.Action, ErrMalformedPatch, "leaf patch without a value")
	}
	if p.Action.OnContainer() && p.P != "" {
		return newError(path, p.Action, ErrMalformedPatch, "container patch with key %q", p.P)
	}
	switch p.Action {
	case ActionMapClear:
		if p.V.Type != ir.SequenceType {
			return newError(path, p.Action, ErrMalformedPatch, "expected entry list, got %s", p.V.Type)
		}
		if _, err := ir.EntryPairs(p.V); err != nil {
			return newError(path, p.Action, ErrMalformedPatch, "%v", err)
		}
	case ActionSetClear:
		if p.V.Type != ir.SequenceType {
			return newError(path, p.Action, ErrMalformedPatch, "expected element list, got %s", p.V.Type)
		}
	case ActionArraySplice:
		if _, _, _, err := spliceArgs(p.V); err != nil {
			return newError(path, p.Action, ErrMalformedPatch, "%v", err)
		}
	case ActionReplace:
		if !atRoot {
			return newError(path, p.Action, ErrMalformedPatch, "replace below the root")
		}
	}
	return nil
}

// spliceArgs reads a splice payload.
func spliceArgs(v *ir.Node) (start int, removed, inserted []*ir.Node, err error) {
	if v.Type != ir.RecordType {
		return 0, nil, nil, errors.New("splice payload is not a record")
	}
	s, ok := ir.Get(v, "start").Int()
	if !ok || s < 0 {
		return 0, nil, nil, errors.New("splice start is not a non-negative integer")
	}
	r := ir.Get(v, "removed")
	i := ir.Get(v, "inserted")
	if r == nil || r.Type != ir.SequenceType || i == nil || i.Type != ir.SequenceType {
		return 0, nil, nil, errors.New("splice removed and inserted must be lists")
	}
	return s, r.Values, i.Values, nil
}
