package draft

import (
	"slices"

	"github.com/signadot/go-mutate/ir"
	"github.com/signadot/go-mutate/patch"
)

// Map is a draft of a map.  Entries keep insertion order.
type Map struct {
	*node
}

func (m *Map) Len() (int, error) {
	if err := m.m.checkRead(); err != nil {
		return 0, err
	}
	return len(m.value().Keys), nil
}

func (m *Map) Keys() ([]string, error) {
	if err := m.m.checkRead(); err != nil {
		return nil, err
	}
	return slices.Clone(m.value().Keys), nil
}

func (m *Map) Has(key string) (bool, error) {
	if err := m.m.checkRead(); err != nil {
		return false, err
	}
	return m.value().KeyIndex(key) != -1, nil
}

// Get returns the value at key, or nil if key is absent.
func (m *Map) Get(key string) (*ir.Node, error) {
	if err := m.m.checkRead(); err != nil {
		return nil, err
	}
	v := ir.Get(m.value(), key)
	if v == nil {
		return nil, nil
	}
	return m.snapshot(v), nil
}

// Entries returns a snapshot of the entries in order.
func (m *Map) Entries() ([]ir.KeyVal, error) {
	if err := m.m.checkRead(); err != nil {
		return nil, err
	}
	return m.entries(), nil
}

func (m *Map) entries() []ir.KeyVal {
	cur := m.value()
	res := make([]ir.KeyVal, len(cur.Keys))
	for i, k := range cur.Keys {
		res[i] = ir.KeyVal{Key: k, Val: m.snapshot(cur.Values[i])}
	}
	return res
}

func (m *Map) Set(key string, v *ir.Node) error {
	if err := m.writable(); err != nil {
		return err
	}
	v = m.m.resolve(v)
	old, existed := m.copy.Child(key)
	var inv *patch.Patch
	if existed {
		inv = patch.MapSet(key, m.snapshot(old))
		m.detach(old)
	} else {
		inv = patch.MapDelete(key, v)
	}
	m.copy.SetChild(key, v)
	m.record([]*patch.Patch{patch.MapSet(key, v)}, []*patch.Patch{inv})
	return nil
}

func (m *Map) Delete(key string) error {
	if err := m.writable(); err != nil {
		return err
	}
	old, existed := m.copy.Child(key)
	if !existed {
		m.record([]*patch.Patch{patch.MapDelete(key, ir.Null())}, []*patch.Patch{patch.MapDelete(key, ir.Null())})
		return nil
	}
	snap := m.snapshot(old)
	m.detach(old)
	m.copy.RemoveKey(key)
	m.record([]*patch.Patch{patch.MapDelete(key, snap)}, []*patch.Patch{patch.MapSet(key, snap)})
	return nil
}

// Clear removes every entry.  The inverse restores the prior entries in
// their order.
func (m *Map) Clear() error {
	if err := m.writable(); err != nil {
		return err
	}
	prior := m.entries()
	m.detachAll()
	m.copy.Keys, m.copy.Values = []string{}, []*ir.Node{}
	m.record([]*patch.Patch{patch.MapClear(nil)}, []*patch.Patch{patch.MapClear(prior)})
	return nil
}

// Child returns the draft of the value at key.
func (m *Map) Child(key string) (Draft, error) {
	return m.child(key)
}

func (m *Map) RecordAt(key string) (*Record, error) {
	return childAs[*Record](m.node, key, ir.RecordType)
}

func (m *Map) SequenceAt(key string) (*Sequence, error) {
	return childAs[*Sequence](m.node, key, ir.SequenceType)
}

func (m *Map) MapAt(key string) (*Map, error) {
	return childAs[*Map](m.node, key, ir.MapType)
}

func (m *Map) SetAt(key string) (*Set, error) {
	return childAs[*Set](m.node, key, ir.SetType)
}
