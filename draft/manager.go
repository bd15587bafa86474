package draft

import (
	"context"
	"slices"

	"github.com/signadot/go-mutate/debug"
	"github.com/signadot/go-mutate/ir"
	"github.com/signadot/go-mutate/libdiff"
	"github.com/signadot/go-mutate/patch"
)

// Manager owns the drafts of one recipe execution.  A Manager is not safe
// for concurrent use.
type Manager struct {
	ctx  context.Context
	opts options
	base *ir.Node
	root Draft
	// byRef maps placeholders to the drafts they stand for.
	byRef     map[*ir.Node]*node
	forward   []*patch.Patch
	inverse   []*patch.Patch
	finalized bool
}

// New wraps base as the root of a new draft tree.
func New(ctx context.Context, base *ir.Node, opts ...Option) *Manager {
	m := &Manager{
		ctx:   ctx,
		opts:  options{record: true},
		base:  base,
		byRef: map[*ir.Node]*node{},
	}
	for _, o := range opts {
		o(&m.opts)
	}
	if base.IsContainer() {
		m.root = m.newNode(nil, "", base).draft
	} else {
		m.root = &Scalar{m: m, value: base}
	}
	return m
}

// Root returns the draft of the base value.
func (m *Manager) Root() Draft {
	return m.root
}

func (m *Manager) newNode(parent *node, key string, base *ir.Node) *node {
	n := &node{
		m:      m,
		parent: parent,
		key:    key,
		base:   base,
		ref:    &ir.Node{Type: base.Type},
	}
	switch base.Type {
	case ir.RecordType:
		n.draft = &Record{n}
	case ir.SequenceType:
		n.draft = &Sequence{n}
	case ir.MapType:
		n.draft = &Map{n}
	case ir.SetType:
		n.draft = &Set{n}
	}
	m.byRef[n.ref] = n
	if debug.Draft() {
		debug.Logf("draft %s %s\n", base.Type, n.path())
	}
	return n
}

// resolve replaces placeholders within v by snapshots of their drafts.  v
// itself is returned when it holds no placeholder.
func (m *Manager) resolve(v *ir.Node) *ir.Node {
	if v == nil {
		return ir.Null()
	}
	if n := m.byRef[v]; n != nil {
		return n.current()
	}
	if !v.IsContainer() {
		return v
	}
	var res *ir.Node
	for i, e := range v.Values {
		r := m.resolve(e)
		if r == e {
			continue
		}
		if res == nil {
			res = v.ShallowCopy()
		}
		res.Values[i] = r
	}
	if res == nil {
		return v
	}
	return res
}

func (m *Manager) record(path []string, fwd, inv []*patch.Patch) {
	if !m.opts.record {
		return
	}
	f, i := patch.Group(path, fwd), patch.Group(path, inv)
	if debug.Record() {
		debug.Logf("record %s\n   inverse %s\n", f, i)
	}
	m.forward = append(m.forward, f)
	m.inverse = append(m.inverse, i)
}

func (m *Manager) checkRead() error {
	if m.finalized {
		return ErrUseAfterFinalize
	}
	return nil
}

func (m *Manager) checkWrite() error {
	if m.finalized {
		return ErrUseAfterFinalize
	}
	if m.opts.checkContext {
		if err := m.ctx.Err(); err != nil {
			return err
		}
	}
	return nil
}

// Finalize ends the execution and revokes every draft.  If ret is nil or
// the placeholder of the root draft, the result is the root draft's
// state and the recorded patches are returned.  Otherwise ret, with
// placeholders resolved, replaces the root and the patches are a diff of
// the base and the replacement.
//
// The inverse patches undo the forward ones when applied in the order
// given.
func (m *Manager) Finalize(ret *ir.Node) (*ir.Node, []*patch.Patch, []*patch.Patch, error) {
	if m.finalized {
		return nil, nil, nil, ErrUseAfterFinalize
	}
	defer m.revoke()
	if err := m.ctx.Err(); err != nil {
		return nil, nil, nil, err
	}
	if ret == nil || ret == m.root.Node() {
		res := m.current()
		if !m.opts.record {
			return res, nil, nil, nil
		}
		inverse := slices.Clone(m.inverse)
		slices.Reverse(inverse)
		forward := m.forward
		if forward == nil {
			forward, inverse = []*patch.Patch{}, []*patch.Patch{}
		}
		return res, forward, inverse, nil
	}
	res := m.resolve(ret)
	if !m.opts.record {
		return res, nil, nil, nil
	}
	return res, []*patch.Patch{libdiff.Group(m.base, res)}, []*patch.Patch{libdiff.Group(res, m.base)}, nil
}

// Abort revokes every draft without producing a result.
func (m *Manager) Abort() {
	if !m.finalized {
		m.revoke()
	}
}

func (m *Manager) current() *ir.Node {
	if s, ok := m.root.(*Scalar); ok {
		return s.value
	}
	return m.byRef[m.root.Node()].current()
}

func (m *Manager) revoke() {
	m.finalized = true
	for _, n := range m.byRef {
		n.children = nil
		n.copy = nil
	}
	m.byRef = nil
	m.forward, m.inverse = nil, nil
}
