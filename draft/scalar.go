package draft

import "github.com/signadot/go-mutate/ir"

// Scalar is a read-only draft of a null, bool, number or string.  A scalar
// is changed by setting it in its parent, or at the root by returning a
// replacement from the recipe.
type Scalar struct {
	m      *Manager
	value  *ir.Node
	parent *node
	key    string
}

func (s *Scalar) Node() *ir.Node {
	return s.value
}

func (s *Scalar) Type() ir.Type {
	return s.value.Type
}

func (s *Scalar) Path() ir.Path {
	if s.parent == nil {
		return ir.Path{}
	}
	return s.parent.path().Append(segment(s.parent.base.Type, s.key))
}

func (s *Scalar) Value() (*ir.Node, error) {
	if err := s.m.checkRead(); err != nil {
		return nil, err
	}
	return s.value, nil
}
