package draft

import (
	"fmt"
	"strconv"

	"github.com/signadot/go-mutate/debug"
	"github.com/signadot/go-mutate/ir"
	"github.com/signadot/go-mutate/patch"
)

// Draft is a mutable view of a value during a recipe execution.  The
// concrete types are *Record, *Sequence, *Map, *Set and *Scalar.
type Draft interface {
	// Node returns a placeholder standing for the draft.  It may be
	// embedded in values written to other drafts or returned from a
	// recipe, and is resolved to the state of the draft.
	Node() *ir.Node
	Type() ir.Type
	Path() ir.Path
}

// Current returns a snapshot of the present state of d.
func Current(d Draft) (*ir.Node, error) {
	if s, ok := d.(*Scalar); ok {
		if err := s.m.checkRead(); err != nil {
			return nil, err
		}
		return s.value, nil
	}
	n := nodeOf(d)
	if n == nil {
		return nil, fmt.Errorf("%w: unknown draft %T", ErrNotContainer, d)
	}
	if err := n.m.checkRead(); err != nil {
		return nil, err
	}
	return n.current(), nil
}

func nodeOf(d Draft) *node {
	switch x := d.(type) {
	case *Record:
		return x.node
	case *Sequence:
		return x.node
	case *Map:
		return x.node
	case *Set:
		return x.node
	}
	return nil
}

// node is a draft of one container.  Until its first write it reads from
// base and caches child drafts in children.  The first write makes copy,
// a shallow copy of base owned by the draft, and from then on child
// drafts are found by their placeholders in the slots of copy.
type node struct {
	m        *Manager
	parent   *node
	key      string
	base     *ir.Node
	copy     *ir.Node
	ref      *ir.Node
	children map[string]*node
	modified bool
	detached bool
	draft    Draft
}

func (n *node) Node() *ir.Node {
	return n.ref
}

func (n *node) Type() ir.Type {
	return n.base.Type
}

func (n *node) Path() ir.Path {
	return n.path()
}

func (n *node) path() ir.Path {
	if n.parent == nil {
		return ir.Path{}
	}
	return n.parent.path().Append(segment(n.parent.base.Type, n.key))
}

func (n *node) keys() []string {
	if n.parent == nil {
		return []string{}
	}
	return append(n.parent.keys(), n.key)
}

func segment(t ir.Type, key string) ir.Segment {
	if t == ir.SequenceType {
		i, _ := ir.ParseIndex(key)
		return ir.IndexSegment(i)
	}
	return ir.FieldSegment(key)
}

func (n *node) value() *ir.Node {
	if n.copy != nil {
		return n.copy
	}
	return n.base
}

// snapshot resolves v, a slot value of n, to an immutable value.
func (n *node) snapshot(v *ir.Node) *ir.Node {
	if c := n.m.byRef[v]; c != nil {
		return c.current()
	}
	return v
}

// current returns the state of n as an immutable value.  An unmodified
// draft returns its base.
func (n *node) current() *ir.Node {
	if n.copy == nil {
		return n.base
	}
	res := n.copy.ShallowCopy()
	for i, v := range res.Values {
		if c := n.m.byRef[v]; c != nil && c.parent == n {
			res.Values[i] = c.current()
		}
	}
	return res
}

// writable checks that n may be written and marks it and its ancestors
// modified.
func (n *node) writable() error {
	if err := n.m.checkWrite(); err != nil {
		return err
	}
	for x := n; x != nil; x = x.parent {
		if x.detached {
			return fmt.Errorf("%w: %s", ErrDetached, n.path())
		}
	}
	for x := n; x != nil && !x.modified; x = x.parent {
		x.modified = true
		x.prepareCopy()
	}
	return nil
}

func (n *node) prepareCopy() {
	if n.copy != nil {
		return
	}
	n.copy = n.base.ShallowCopy()
	for key, c := range n.children {
		n.copy.SetChild(key, c.ref)
	}
	n.children = nil
	if debug.Draft() {
		debug.Logf("copy %s\n", n.path())
	}
}

// child returns the draft of the container at key.
func (n *node) child(key string) (Draft, error) {
	if err := n.m.checkRead(); err != nil {
		return nil, err
	}
	if n.copy == nil {
		if c, ok := n.children[key]; ok {
			return c.draft, nil
		}
	}
	v, ok := n.value().Child(key)
	if !ok {
		if n.base.Type == ir.SequenceType {
			return nil, fmt.Errorf("%w: %s has no index %s", ErrIndex, n.path(), key)
		}
		return nil, fmt.Errorf("%w: %s has no key %q", ErrKeyNotFound, n.path(), key)
	}
	if c := n.m.byRef[v]; c != nil {
		return c.draft, nil
	}
	if !v.IsContainer() {
		return &Scalar{m: n.m, value: v, parent: n, key: key}, nil
	}
	c := n.m.newNode(n, key, v)
	if n.copy == nil {
		if n.children == nil {
			n.children = map[string]*node{}
		}
		n.children[key] = c
	} else {
		n.copy.SetChild(key, c.ref)
	}
	return c.draft, nil
}

// detach marks the child draft in slot v, if any, as detached.  n must
// have a copy.
func (n *node) detach(v *ir.Node) {
	if c := n.m.byRef[v]; c != nil && c.parent == n {
		c.detached = true
		if debug.Draft() {
			debug.Logf("detach %s\n", c.path())
		}
	}
}

func (n *node) detachKey(key string) {
	if v, ok := n.copy.Child(key); ok {
		n.detach(v)
	}
}

func (n *node) detachAll() {
	for _, v := range n.copy.Values {
		n.detach(v)
	}
}

// rekey updates the keys of child drafts after sequence slots moved.
func (n *node) rekey() {
	for i, v := range n.copy.Values {
		if c := n.m.byRef[v]; c != nil && c.parent == n {
			c.key = strconv.Itoa(i)
		}
	}
}

func (n *node) record(fwd, inv []*patch.Patch) {
	n.m.record(n.keys(), fwd, inv)
}

func childAs[T Draft](n *node, key string, want ir.Type) (T, error) {
	var zero T
	d, err := n.child(key)
	if err != nil {
		return zero, err
	}
	t, ok := d.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %s is a %s, not a %s", ErrNotContainer, d.Path(), d.Type(), want)
	}
	return t, nil
}
