package draft

import (
	"context"
	"errors"
	"testing"

	"github.com/signadot/go-mutate/ir"
	"github.com/signadot/go-mutate/patch"
)

func TestStructuralSharing(t *testing.T) {
	base := mustNode(t, `{"a":{"x":[1]},"b":{"y":[2]},"c":[{"z":3},{"z":4}]}`)
	res, _, _, err := Produce(context.Background(), base, Func(func(d Draft) error {
		r := d.(*Record)
		b, err := r.RecordAt("b")
		if err != nil {
			return err
		}
		if _, err := b.SequenceAt("y"); err != nil {
			return err
		}
		c, err := r.SequenceAt("c")
		if err != nil {
			return err
		}
		z, err := c.RecordAt(1)
		if err != nil {
			return err
		}
		return z.Set("z", ir.FromInt(5))
	}))
	if err != nil {
		t.Fatal(err)
	}
	if res == base {
		t.Error("root not reallocated")
	}
	if ir.Get(res, "a") != ir.Get(base, "a") {
		t.Error("untouched a not shared")
	}
	if ir.Get(res, "b") != ir.Get(base, "b") {
		t.Error("read-only b not shared")
	}
	rc, bc := ir.Get(res, "c"), ir.Get(base, "c")
	if rc == bc {
		t.Error("written c shared")
	}
	if rc.Values[0] != bc.Values[0] {
		t.Error("untouched c[0] not shared")
	}
	if rc.Values[1] == bc.Values[1] {
		t.Error("written c[1] shared")
	}
}

func TestNoWrites(t *testing.T) {
	base := mustNode(t, `{"a":[1]}`)
	res, patches, inverse, err := Produce(context.Background(), base, Func(func(d Draft) error {
		_, err := d.(*Record).SequenceAt("a")
		return err
	}))
	if err != nil {
		t.Fatal(err)
	}
	if res != base {
		t.Error("unmodified result is not the base")
	}
	if len(patches) != 0 || len(inverse) != 0 {
		t.Errorf("unexpected patches %v %v", patches, inverse)
	}
}

func TestEqualOverwriteReallocates(t *testing.T) {
	base := mustNode(t, `{"a":{"b":1}}`)
	res, patches, _, err := Produce(context.Background(), base, Func(func(d Draft) error {
		a, err := d.(*Record).RecordAt("a")
		if err != nil {
			return err
		}
		return a.Set("b", ir.FromInt(1))
	}))
	if err != nil {
		t.Fatal(err)
	}
	if res == base || ir.Get(res, "a") == ir.Get(base, "a") {
		t.Error("written path shared")
	}
	if len(patches) != 1 {
		t.Errorf("expected 1 patch, got %d", len(patches))
	}
}

func TestChildIdentity(t *testing.T) {
	m := New(context.Background(), mustNode(t, `{"a":{"b":1}}`))
	r := m.Root().(*Record)
	a1, err := r.RecordAt("a")
	check(t, err)
	check(t, r.Set("c", ir.FromInt(1)))
	a2, err := r.RecordAt("a")
	check(t, err)
	if a1 != a2 {
		t.Error("repeated access gave a new draft")
	}
	if _, err := r.SequenceAt("a"); !errors.Is(err, ErrNotContainer) {
		t.Errorf("expected ErrNotContainer, got %v", err)
	}
	if _, err := r.RecordAt("zz"); !errors.Is(err, ErrKeyNotFound) {
		t.Errorf("expected ErrKeyNotFound, got %v", err)
	}
	if got := a1.Path().String(); got != "$.a" {
		t.Errorf("path %s", got)
	}
}

func TestUseAfterFinalize(t *testing.T) {
	var kept *Record
	var keptSeq *Sequence
	_, _, _, err := Produce(context.Background(), mustNode(t, `{"s":[1]}`), Func(func(d Draft) error {
		kept = d.(*Record)
		var err error
		keptSeq, err = kept.SequenceAt("s")
		return err
	}))
	if err != nil {
		t.Fatal(err)
	}
	checks := map[string]error{
		"set":     kept.Set("a", ir.Null()),
		"delete":  kept.Delete("s"),
		"push":    keptSeq.Push(ir.Null()),
		"reverse": keptSeq.Reverse(),
	}
	_, err = kept.Get("s")
	checks["get"] = err
	_, err = keptSeq.Len()
	checks["len"] = err
	_, err = kept.RecordAt("s")
	checks["child"] = err
	_, err = Current(kept)
	checks["current"] = err
	for name, err := range checks {
		if !errors.Is(err, ErrUseAfterFinalize) {
			t.Errorf("%s: expected ErrUseAfterFinalize, got %v", name, err)
		}
	}
}

func TestDetached(t *testing.T) {
	tests := []struct {
		name   string
		base   string
		detach func(t *testing.T, parent Draft)
	}{
		{"record overwrite", `{"a":{"x":1}}`, func(t *testing.T, p Draft) {
			check(t, p.(*Record).Set("a", ir.FromInt(1)))
		}},
		{"record delete", `{"a":{"x":1}}`, func(t *testing.T, p Draft) {
			check(t, p.(*Record).Delete("a"))
		}},
		{"splice", `[{"x":1}]`, func(t *testing.T, p Draft) {
			_, err := p.(*Sequence).Splice(0, 1)
			check(t, err)
		}},
		{"map clear", `{"!map":[["a",{"x":1}]]}`, func(t *testing.T, p Draft) {
			check(t, p.(*Map).Clear())
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New(context.Background(), mustNode(t, tt.base))
			var child *Record
			var err error
			switch root := m.Root().(type) {
			case *Record:
				child, err = root.RecordAt("a")
			case *Sequence:
				child, err = root.RecordAt(0)
			case *Map:
				child, err = root.RecordAt("a")
			}
			check(t, err)
			check(t, child.Set("y", ir.FromInt(2)))
			tt.detach(t, m.Root())
			if err := child.Set("z", ir.Null()); !errors.Is(err, ErrDetached) {
				t.Errorf("expected ErrDetached, got %v", err)
			}
			res, patches, inverse, err := m.Finalize(nil)
			check(t, err)
			back, err := patch.Apply(res, inverse)
			check(t, err)
			if want := mustNode(t, tt.base); !ir.Equal(back, want) {
				t.Errorf("inverse gave %s, want %s", back, want)
			}
			fwd, err := patch.Apply(mustNode(t, tt.base), patches)
			check(t, err)
			if !ir.Equal(fwd, res) {
				t.Errorf("forward gave %s, want %s", fwd, res)
			}
		})
	}
}

func TestRekey(t *testing.T) {
	base := mustNode(t, `[{"n":0},{"n":1},{"n":2}]`)
	res, patches, inverse, err := Produce(context.Background(), base, Func(func(d Draft) error {
		s := d.(*Sequence)
		last, err := s.RecordAt(2)
		if err != nil {
			return err
		}
		if _, err := s.Shift(); err != nil {
			return err
		}
		if got := last.Path().String(); got != "$[1]" {
			t.Errorf("path after shift %s", got)
		}
		if err := s.Reverse(); err != nil {
			return err
		}
		if got := last.Path().String(); got != "$[0]" {
			t.Errorf("path after reverse %s", got)
		}
		return last.Set("n", ir.FromInt(20))
	}))
	if err != nil {
		t.Fatal(err)
	}
	if want := mustNode(t, `[{"n":20},{"n":1}]`); !ir.Equal(res, want) {
		t.Fatalf("result %s, want %s", res, want)
	}
	tail := patches[len(patches)-1]
	if tail.P != "0" {
		t.Errorf("last patch addresses %q, want 0", tail.P)
	}
	fwd, err := patch.Apply(base, patches)
	check(t, err)
	if !ir.Equal(fwd, res) {
		t.Errorf("forward gave %s", fwd)
	}
	back, err := patch.Apply(res, inverse)
	check(t, err)
	if !ir.Equal(back, base) {
		t.Errorf("inverse gave %s", back)
	}
}

func TestSequenceHelpers(t *testing.T) {
	base := mustNode(t, `[1,2,3]`)
	res, patches, inverse, err := Produce(context.Background(), base, Func(func(d Draft) error {
		s := d.(*Sequence)
		v, err := s.Pop()
		if err != nil {
			return err
		}
		if !ir.Equal(v, ir.FromInt(3)) {
			t.Errorf("pop gave %s", v)
		}
		if err := s.Unshift(ir.FromInt(0)); err != nil {
			return err
		}
		if err := s.Insert(2, ir.FromString("x")); err != nil {
			return err
		}
		if err := s.SetLen(5); err != nil {
			return err
		}
		if err := s.SetLen(2); err != nil {
			return err
		}
		if err := s.Insert(9); !errors.Is(err, ErrIndex) {
			t.Errorf("expected ErrIndex, got %v", err)
		}
		if _, err := s.Get(-1); !errors.Is(err, ErrIndex) {
			t.Errorf("expected ErrIndex, got %v", err)
		}
		return nil
	}))
	if err != nil {
		t.Fatal(err)
	}
	if want := mustNode(t, `[0,1]`); !ir.Equal(res, want) {
		t.Fatalf("result %s", res)
	}
	if len(patches) != 5 {
		t.Errorf("expected 5 patches, got %d", len(patches))
	}
	back, err := patch.Apply(res, inverse)
	check(t, err)
	if !ir.Equal(back, base) {
		t.Errorf("inverse gave %s", back)
	}
}

func TestReplacement(t *testing.T) {
	base := mustNode(t, `[0]`)
	res, patches, inverse, err := Produce(context.Background(), base, func(_ context.Context, d Draft) (*ir.Node, error) {
		v, err := d.(*Sequence).Get(0)
		if err != nil {
			return nil, err
		}
		return ir.FromSlice([]*ir.Node{v, ir.FromInt(1)}), nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if want := mustNode(t, `[0,1]`); !ir.Equal(res, want) {
		t.Fatalf("result %s", res)
	}
	if res.Values[0] != base.Values[0] {
		t.Error("element taken from the draft not shared")
	}
	if len(patches) != 1 || len(inverse) != 1 {
		t.Fatalf("expected one group each way, got %d and %d", len(patches), len(inverse))
	}
	fwd, err := patch.Apply(mustNode(t, `[0]`), patches)
	check(t, err)
	if !ir.Equal(fwd, res) {
		t.Errorf("forward gave %s", fwd)
	}
	back, err := patch.Apply(fwd, inverse)
	check(t, err)
	if !ir.Equal(back, base) {
		t.Errorf("inverse gave %s", back)
	}
}

func TestReplacementWithPlaceholder(t *testing.T) {
	base := mustNode(t, `{"a":{"x":1},"b":2}`)
	res, patches, _, err := Produce(context.Background(), base, func(_ context.Context, d Draft) (*ir.Node, error) {
		a, err := d.(*Record).RecordAt("a")
		if err != nil {
			return nil, err
		}
		if err := a.Set("x", ir.FromInt(2)); err != nil {
			return nil, err
		}
		return ir.FromKeyVals([]ir.KeyVal{{Key: "wrapped", Val: a.Node()}}), nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if want := mustNode(t, `{"wrapped":{"x":2}}`); !ir.Equal(res, want) {
		t.Fatalf("result %s", res)
	}
	fwd, err := patch.Apply(base, patches)
	check(t, err)
	if !ir.Equal(fwd, res) {
		t.Errorf("forward gave %s", fwd)
	}
}

func TestPlaceholderWrite(t *testing.T) {
	base := mustNode(t, `{"a":{"x":1}}`)
	res, patches, inverse, err := Produce(context.Background(), base, Func(func(d Draft) error {
		r := d.(*Record)
		a, err := r.RecordAt("a")
		if err != nil {
			return err
		}
		if err := r.Set("b", a.Node()); err != nil {
			return err
		}
		return a.Set("x", ir.FromInt(2))
	}))
	if err != nil {
		t.Fatal(err)
	}
	if want := mustNode(t, `{"a":{"x":2},"b":{"x":1}}`); !ir.Equal(res, want) {
		t.Fatalf("result %s", res)
	}
	fwd, err := patch.Apply(base, patches)
	check(t, err)
	if !ir.Equal(fwd, res) {
		t.Errorf("forward gave %s", fwd)
	}
	back, err := patch.Apply(res, inverse)
	check(t, err)
	if !ir.Equal(back, base) {
		t.Errorf("inverse gave %s", back)
	}
}

func TestScalarRoot(t *testing.T) {
	base := ir.FromInt(1)
	res, patches, inverse, err := Produce(context.Background(), base, func(_ context.Context, d Draft) (*ir.Node, error) {
		s, ok := d.(*Scalar)
		if !ok {
			t.Fatalf("root draft is %T", d)
		}
		v, err := s.Value()
		if err != nil {
			return nil, err
		}
		n, _ := v.Int()
		return ir.FromInt(int64(n + 1)), nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if !ir.Equal(res, ir.FromInt(2)) {
		t.Errorf("result %s", res)
	}
	if patches[0].Action != patch.ActionReplace || inverse[0].Action != patch.ActionReplace {
		t.Errorf("expected replace, got %s / %s", patches[0], inverse[0])
	}
}

func TestRecipeError(t *testing.T) {
	boom := errors.New("boom")
	var kept *Record
	res, patches, _, err := Produce(context.Background(), mustNode(t, `{}`), Func(func(d Draft) error {
		kept = d.(*Record)
		if err := kept.Set("a", ir.Null()); err != nil {
			return err
		}
		return boom
	}))
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if res != nil || patches != nil {
		t.Error("failed recipe produced a result")
	}
	if err := kept.Set("b", ir.Null()); !errors.Is(err, ErrUseAfterFinalize) {
		t.Errorf("expected ErrUseAfterFinalize, got %v", err)
	}
}

func TestContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	_, _, _, err := Produce(ctx, mustNode(t, `{}`), Func(func(d Draft) error {
		cancel()
		return d.(*Record).Set("a", ir.Null())
	}))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled at finalize, got %v", err)
	}

	ctx, cancel = context.WithCancel(context.Background())
	_, _, _, err = Produce(ctx, mustNode(t, `{}`), Func(func(d Draft) error {
		cancel()
		return d.(*Record).Set("a", ir.Null())
	}), CheckContext())
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled from write, got %v", err)
	}
}

func TestWithoutPatches(t *testing.T) {
	res, patches, inverse, err := Produce(context.Background(), mustNode(t, `{}`), Func(func(d Draft) error {
		return d.(*Record).Set("a", ir.FromInt(1))
	}), WithoutPatches())
	if err != nil {
		t.Fatal(err)
	}
	if patches != nil || inverse != nil {
		t.Error("patches recorded")
	}
	if !ir.Equal(res, mustNode(t, `{"a":1}`)) {
		t.Errorf("result %s", res)
	}
}

func TestSetDraft(t *testing.T) {
	elem := mustNode(t, `{"A":1}`)
	base := ir.NewSet([]*ir.Node{elem, ir.FromInt(2)})
	res, patches, inverse, err := Produce(context.Background(), base, Func(func(d Draft) error {
		s := d.(*Set)
		if err := s.Add(ir.FromInt(2)); err != nil {
			return err
		}
		if err := s.Delete(mustNode(t, `{"A":1}`)); err != nil {
			return err
		}
		if err := s.Delete(ir.FromInt(7)); err != nil {
			return err
		}
		has, err := s.Has(ir.FromFloat(2))
		if err != nil {
			return err
		}
		if !has {
			t.Error("Has(2.0) is false")
		}
		return nil
	}))
	if err != nil {
		t.Fatal(err)
	}
	if !ir.Equal(res, ir.NewSet([]*ir.Node{ir.FromInt(2)})) {
		t.Fatalf("result %s", res)
	}
	if patches[1].V != elem {
		t.Error("delete did not record the stored element")
	}
	back, err := patch.Apply(res, inverse)
	check(t, err)
	if !ir.Equal(back, base) || back.Len() != 2 {
		t.Errorf("inverse gave %s", back)
	}
}
