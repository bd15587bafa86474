package draft

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/signadot/go-mutate/ir"
	"github.com/signadot/go-mutate/patch"
)

// Sequence is a draft of a sequence.
type Sequence struct {
	*node
}

func (s *Sequence) Len() (int, error) {
	if err := s.m.checkRead(); err != nil {
		return 0, err
	}
	return len(s.value().Values), nil
}

func (s *Sequence) Get(i int) (*ir.Node, error) {
	if err := s.m.checkRead(); err != nil {
		return nil, err
	}
	vs := s.value().Values
	if i < 0 || i >= len(vs) {
		return nil, fmt.Errorf("%w: %d on %s of length %d", ErrIndex, i, s.path(), len(vs))
	}
	return s.snapshot(vs[i]), nil
}

// Values returns a snapshot of every element.
func (s *Sequence) Values() ([]*ir.Node, error) {
	if err := s.m.checkRead(); err != nil {
		return nil, err
	}
	vs := s.value().Values
	res := make([]*ir.Node, len(vs))
	for i, v := range vs {
		res[i] = s.snapshot(v)
	}
	return res, nil
}

// Set assigns v at index i.  Assigning past the end grows the sequence,
// filling holes with null.
func (s *Sequence) Set(i int, v *ir.Node) error {
	if i < 0 {
		return fmt.Errorf("%w: %d on %s", ErrIndex, i, s.path())
	}
	if err := s.writable(); err != nil {
		return err
	}
	v = s.m.resolve(v)
	key := strconv.Itoa(i)
	n := len(s.copy.Values)
	if i < n {
		old := s.copy.Values[i]
		inv := patch.Set(key, s.snapshot(old))
		s.detach(old)
		s.copy.Values[i] = v
		s.record([]*patch.Patch{patch.Set(key, v)}, []*patch.Patch{inv})
		return nil
	}
	s.copy.SetChild(key, v)
	s.record(
		[]*patch.Patch{patch.Set(key, v)},
		[]*patch.Patch{patch.Delete(key, v), setLength(n)},
	)
	return nil
}

// SetLen truncates the sequence or grows it with nulls.
func (s *Sequence) SetLen(m int) error {
	if m < 0 {
		return fmt.Errorf("%w: length %d on %s", ErrIndex, m, s.path())
	}
	if err := s.writable(); err != nil {
		return err
	}
	n := len(s.copy.Values)
	inv := []*patch.Patch{}
	for i := m; i < n; i++ {
		v := s.copy.Values[i]
		inv = append(inv, patch.Set(strconv.Itoa(i), s.snapshot(v)))
		s.detach(v)
	}
	inv = append(inv, setLength(n))
	s.copy.Resize(m)
	s.record([]*patch.Patch{setLength(m)}, inv)
	return nil
}

// Push appends vs.  The call is recorded as one SET per new index and a
// SET of the new length.
func (s *Sequence) Push(vs ...*ir.Node) error {
	if err := s.writable(); err != nil {
		return err
	}
	n := len(s.copy.Values)
	fwd := make([]*patch.Patch, 0, len(vs)+1)
	inv := make([]*patch.Patch, 0, len(vs)+1)
	for j, v := range vs {
		v = s.m.resolve(v)
		key := strconv.Itoa(n + j)
		s.copy.Values = append(s.copy.Values, v)
		fwd = append(fwd, patch.Set(key, v))
		inv = append(inv, patch.Delete(key, v))
	}
	fwd = append(fwd, setLength(len(s.copy.Values)))
	inv = append(inv, setLength(n))
	s.record(fwd, inv)
	return nil
}

// Splice removes up to count elements at start and inserts items in
// their place, returning the removed elements.  A start past the end is
// taken as the end.
func (s *Sequence) Splice(start, count int, items ...*ir.Node) ([]*ir.Node, error) {
	if start < 0 || count < 0 {
		return nil, fmt.Errorf("%w: splice(%d, %d) on %s", ErrIndex, start, count, s.path())
	}
	if err := s.writable(); err != nil {
		return nil, err
	}
	n := len(s.copy.Values)
	start = min(start, n)
	count = min(count, n-start)
	inserted := make([]*ir.Node, len(items))
	for j, v := range items {
		inserted[j] = s.m.resolve(v)
	}
	removed := make([]*ir.Node, count)
	for j, v := range s.copy.Values[start : start+count] {
		removed[j] = s.snapshot(v)
		s.detach(v)
	}
	s.copy.Values = slices.Replace(s.copy.Values, start, start+count, inserted...)
	s.rekey()
	s.record(
		[]*patch.Patch{patch.Splice(start, removed, inserted)},
		[]*patch.Patch{patch.Splice(start, inserted, removed)},
	)
	return removed, nil
}

// Pop removes and returns the last element, or returns nil if the
// sequence is empty.
func (s *Sequence) Pop() (*ir.Node, error) {
	n, err := s.Len()
	if err != nil {
		return nil, err
	}
	removed, err := s.Splice(max(n-1, 0), 1)
	return first(removed), err
}

// Shift removes and returns the first element, or returns nil if the
// sequence is empty.
func (s *Sequence) Shift() (*ir.Node, error) {
	removed, err := s.Splice(0, 1)
	return first(removed), err
}

func (s *Sequence) Unshift(vs ...*ir.Node) error {
	_, err := s.Splice(0, 0, vs...)
	return err
}

// Insert inserts vs before index i.
func (s *Sequence) Insert(i int, vs ...*ir.Node) error {
	n, err := s.Len()
	if err != nil {
		return err
	}
	if i > n {
		return fmt.Errorf("%w: insert at %d on %s of length %d", ErrIndex, i, s.path(), n)
	}
	_, err = s.Splice(i, 0, vs...)
	return err
}

func (s *Sequence) Reverse() error {
	if err := s.writable(); err != nil {
		return err
	}
	n := len(s.copy.Values)
	slices.Reverse(s.copy.Values)
	s.rekey()
	s.record([]*patch.Patch{patch.Reverse(n)}, []*patch.Patch{patch.Reverse(n)})
	return nil
}

// Child returns the draft of the element at i.
func (s *Sequence) Child(i int) (Draft, error) {
	if i < 0 {
		return nil, fmt.Errorf("%w: %d on %s", ErrIndex, i, s.path())
	}
	return s.child(strconv.Itoa(i))
}

func (s *Sequence) RecordAt(i int) (*Record, error) {
	if i < 0 {
		return nil, fmt.Errorf("%w: %d on %s", ErrIndex, i, s.path())
	}
	return childAs[*Record](s.node, strconv.Itoa(i), ir.RecordType)
}

func (s *Sequence) SequenceAt(i int) (*Sequence, error) {
	if i < 0 {
		return nil, fmt.Errorf("%w: %d on %s", ErrIndex, i, s.path())
	}
	return childAs[*Sequence](s.node, strconv.Itoa(i), ir.SequenceType)
}

func (s *Sequence) MapAt(i int) (*Map, error) {
	if i < 0 {
		return nil, fmt.Errorf("%w: %d on %s", ErrIndex, i, s.path())
	}
	return childAs[*Map](s.node, strconv.Itoa(i), ir.MapType)
}

func (s *Sequence) SetAt(i int) (*Set, error) {
	if i < 0 {
		return nil, fmt.Errorf("%w: %d on %s", ErrIndex, i, s.path())
	}
	return childAs[*Set](s.node, strconv.Itoa(i), ir.SetType)
}

func setLength(n int) *patch.Patch {
	return patch.Set("length", ir.FromInt(int64(n)))
}

func first(vs []*ir.Node) *ir.Node {
	if len(vs) == 0 {
		return nil
	}
	return vs[0]
}
