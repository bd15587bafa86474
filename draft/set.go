package draft

import (
	"slices"

	"github.com/signadot/go-mutate/ir"
	"github.com/signadot/go-mutate/patch"
)

// Set is a draft of a set.  Elements are plain values: they are matched
// by identity (see ir.Same) and are not drafted themselves.
type Set struct {
	*node
}

func (s *Set) Len() (int, error) {
	if err := s.m.checkRead(); err != nil {
		return 0, err
	}
	return len(s.value().Values), nil
}

func (s *Set) Has(v *ir.Node) (bool, error) {
	if err := s.m.checkRead(); err != nil {
		return false, err
	}
	return s.value().SetIndex(v) != -1, nil
}

// Values returns the elements in insertion order.
func (s *Set) Values() ([]*ir.Node, error) {
	if err := s.m.checkRead(); err != nil {
		return nil, err
	}
	return slices.Clone(s.value().Values), nil
}

// Add adds v unless an element which is the Same is present.  The call is
// recorded either way.
func (s *Set) Add(v *ir.Node) error {
	if err := s.writable(); err != nil {
		return err
	}
	v = s.m.resolve(v)
	if s.copy.SetIndex(v) != -1 {
		s.record([]*patch.Patch{patch.SetAdd(v)}, []*patch.Patch{patch.SetAdd(v)})
		return nil
	}
	s.copy.Values = append(s.copy.Values, v)
	s.record([]*patch.Patch{patch.SetAdd(v)}, []*patch.Patch{patch.SetDelete(v)})
	return nil
}

// Delete removes the element which is the Same as v, or failing that one
// which is Equal to it.
func (s *Set) Delete(v *ir.Node) error {
	if err := s.writable(); err != nil {
		return err
	}
	v = s.m.resolve(v)
	i := s.copy.SetIndex(v)
	if i == -1 {
		i = slices.IndexFunc(s.copy.Values, func(e *ir.Node) bool { return ir.Equal(e, v) })
	}
	if i == -1 {
		s.record([]*patch.Patch{patch.SetDelete(v)}, []*patch.Patch{patch.SetDelete(v)})
		return nil
	}
	elem := s.copy.Values[i]
	s.copy.Values = slices.Delete(s.copy.Values, i, i+1)
	s.record([]*patch.Patch{patch.SetDelete(elem)}, []*patch.Patch{patch.SetAdd(elem)})
	return nil
}

// Clear removes every element.  The inverse restores the very same
// elements in order.
func (s *Set) Clear() error {
	if err := s.writable(); err != nil {
		return err
	}
	prior := slices.Clone(s.copy.Values)
	s.copy.Values = []*ir.Node{}
	s.record([]*patch.Patch{patch.SetClear(nil)}, []*patch.Patch{patch.SetClear(prior)})
	return nil
}
