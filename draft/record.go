package draft

import (
	"slices"

	"github.com/signadot/go-mutate/ir"
	"github.com/signadot/go-mutate/patch"
)

// Record is a draft of a record.
type Record struct {
	*node
}

func (r *Record) Len() (int, error) {
	if err := r.m.checkRead(); err != nil {
		return 0, err
	}
	return len(r.value().Keys), nil
}

func (r *Record) Keys() ([]string, error) {
	if err := r.m.checkRead(); err != nil {
		return nil, err
	}
	return slices.Clone(r.value().Keys), nil
}

func (r *Record) Has(key string) (bool, error) {
	if err := r.m.checkRead(); err != nil {
		return false, err
	}
	return r.value().KeyIndex(key) != -1, nil
}

// Get returns the value at key, or nil if key is absent.
func (r *Record) Get(key string) (*ir.Node, error) {
	if err := r.m.checkRead(); err != nil {
		return nil, err
	}
	v := ir.Get(r.value(), key)
	if v == nil {
		return nil, nil
	}
	return r.snapshot(v), nil
}

func (r *Record) Set(key string, v *ir.Node) error {
	if err := r.writable(); err != nil {
		return err
	}
	v = r.m.resolve(v)
	old, existed := r.copy.Child(key)
	fwd := patch.Set(key, v)
	var inv *patch.Patch
	if existed {
		inv = patch.Set(key, r.snapshot(old))
		r.detach(old)
	} else {
		inv = patch.Delete(key, v)
	}
	r.copy.SetChild(key, v)
	r.record([]*patch.Patch{fwd}, []*patch.Patch{inv})
	return nil
}

func (r *Record) Delete(key string) error {
	if err := r.writable(); err != nil {
		return err
	}
	old, existed := r.copy.Child(key)
	if !existed {
		r.record([]*patch.Patch{patch.Delete(key, ir.Null())}, []*patch.Patch{patch.Delete(key, ir.Null())})
		return nil
	}
	snap := r.snapshot(old)
	r.detach(old)
	r.copy.RemoveKey(key)
	r.record([]*patch.Patch{patch.Delete(key, snap)}, []*patch.Patch{patch.Set(key, snap)})
	return nil
}

// Child returns the draft of the value at key.
func (r *Record) Child(key string) (Draft, error) {
	return r.child(key)
}

func (r *Record) RecordAt(key string) (*Record, error) {
	return childAs[*Record](r.node, key, ir.RecordType)
}

func (r *Record) SequenceAt(key string) (*Sequence, error) {
	return childAs[*Sequence](r.node, key, ir.SequenceType)
}

func (r *Record) MapAt(key string) (*Map, error) {
	return childAs[*Map](r.node, key, ir.MapType)
}

func (r *Record) SetAt(key string) (*Set, error) {
	return childAs[*Set](r.node, key, ir.SetType)
}
