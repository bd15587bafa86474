package mutate_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/signadot/go-mutate"
	"github.com/signadot/go-mutate/draft"
	"github.com/signadot/go-mutate/ir"
	"github.com/signadot/go-mutate/patch"
)

func node(t *testing.T, s string) *ir.Node {
	t.Helper()
	n, err := ir.ParseJSON([]byte(s))
	if err != nil {
		t.Fatal(err)
	}
	return n
}

type roundTripTest struct {
	name   string
	base   func(t *testing.T) *ir.Node
	recipe draft.Recipe
	res    string
}

func TestRoundTrip(t *testing.T) {
	elems := []*ir.Node{
		ir.FromKeyVals([]ir.KeyVal{{Key: "A", Val: ir.FromInt(1)}}),
		ir.FromKeyVals([]ir.KeyVal{{Key: "A", Val: ir.FromInt(2)}}),
		ir.FromKeyVals([]ir.KeyVal{{Key: "A", Val: ir.FromInt(3)}}),
	}
	fromJSON := func(s string) func(t *testing.T) *ir.Node {
		return func(t *testing.T) *ir.Node { return node(t, s) }
	}
	tests := []roundTripTest{
		{
			name: "object and array",
			base: fromJSON(`[{"A":1}]`),
			recipe: draft.Func(func(d draft.Draft) error {
				s := d.(*draft.Sequence)
				r, err := s.RecordAt(0)
				if err != nil {
					return err
				}
				if err := r.Delete("A"); err != nil {
					return err
				}
				if err := r.Set("B", ir.FromInt(2)); err != nil {
					return err
				}
				return s.Push(ir.FromKeyVals([]ir.KeyVal{{Key: "C", Val: ir.FromInt(3)}}))
			}),
			res: `[{"B":2},{"C":3}]`,
		},
		{
			name:   "array reverse",
			base:   fromJSON(`[{"A":1},{"A":2}]`),
			recipe: draft.Func(func(d draft.Draft) error { return d.(*draft.Sequence).Reverse() }),
			res:    `[{"A":2},{"A":1}]`,
		},
		{
			name: "array splice",
			base: fromJSON(`[{"A":1},{"A":4}]`),
			recipe: draft.Func(func(d draft.Draft) error {
				_, err := d.(*draft.Sequence).Splice(1, 0,
					ir.FromKeyVals([]ir.KeyVal{{Key: "A", Val: ir.FromInt(2)}}),
					ir.FromKeyVals([]ir.KeyVal{{Key: "A", Val: ir.FromInt(3)}}))
				return err
			}),
			res: `[{"A":1},{"A":2},{"A":3},{"A":4}]`,
		},
		{
			name: "producer return",
			base: fromJSON(`[0]`),
			recipe: func(_ context.Context, d draft.Draft) (*ir.Node, error) {
				v, err := d.(*draft.Sequence).Get(0)
				if err != nil {
					return nil, err
				}
				return ir.FromSlice([]*ir.Node{v, ir.FromInt(1)}), nil
			},
			res: `[0,1]`,
		},
		{
			name: "map",
			base: fromJSON(`[{"!map":[]}]`),
			recipe: draft.Func(func(d draft.Draft) error {
				m, err := d.(*draft.Sequence).MapAt(0)
				if err != nil {
					return err
				}
				return m.Set("A", ir.FromInt(1))
			}),
			res: `[{"!map":[["A",1]]}]`,
		},
		{
			name: "set",
			base: fromJSON(`[{"!set":[]}]`),
			recipe: draft.Func(func(d draft.Draft) error {
				s, err := d.(*draft.Sequence).SetAt(0)
				if err != nil {
					return err
				}
				return s.Add(ir.FromKeyVals([]ir.KeyVal{{Key: "A", Val: ir.FromInt(1)}}))
			}),
			res: `[{"!set":[{"A":1}]}]`,
		},
		{
			name:   "map clear",
			base:   fromJSON(`{"!map":[["A",1],["B",2],["C",3]]}`),
			recipe: draft.Func(func(d draft.Draft) error { return d.(*draft.Map).Clear() }),
			res:    `{"!map":[]}`,
		},
		{
			name:   "set clear",
			base:   func(*testing.T) *ir.Node { return ir.NewSet(elems) },
			recipe: draft.Func(func(d draft.Draft) error { return d.(*draft.Set).Clear() }),
			res:    `{"!set":[]}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, patches, inverse, err := mutate.ProduceWithPatches(context.Background(), tt.base(t), tt.recipe)
			if err != nil {
				t.Fatal(err)
			}
			res, err := mutate.ApplyPatches(tt.base(t), patches)
			if err != nil {
				t.Fatal(err)
			}
			if want := node(t, tt.res); !ir.Equal(res, want) {
				t.Errorf("applied %s, want %s", res, want)
			}
			undone, err := mutate.ApplyPatches(res, inverse)
			if err != nil {
				t.Fatal(err)
			}
			if want := tt.base(t); !ir.Equal(undone, want) {
				t.Errorf("undone %s, want %s", undone, want)
			}

			// the same through the wire form
			d, err := json.Marshal(patches)
			if err != nil {
				t.Fatal(err)
			}
			decoded, err := patch.ParseJSON(d)
			if err != nil {
				t.Fatal(err)
			}
			again, err := mutate.ApplyPatches(tt.base(t), decoded)
			if err != nil {
				t.Fatal(err)
			}
			if !ir.Equal(again, res) {
				t.Errorf("decoded patches gave %s, want %s", again, res)
			}
		})
	}
}

func TestProduce(t *testing.T) {
	base := node(t, `{"a":{"b":1},"c":{"d":2}}`)
	res, err := mutate.Produce(context.Background(), base, draft.Func(func(d draft.Draft) error {
		a, err := d.(*draft.Record).RecordAt("a")
		if err != nil {
			return err
		}
		return a.Set("b", ir.FromInt(5))
	}))
	if err != nil {
		t.Fatal(err)
	}
	got, err := json.Marshal(res)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(`{"a":{"b":5},"c":{"d":2}}`, string(got)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if ir.Get(res, "c") != ir.Get(base, "c") {
		t.Error("c not shared")
	}
}

func TestDiff(t *testing.T) {
	from := node(t, `{"a":[1,2,3],"b":{"!set":[1,2]},"c":"x"}`)
	to := node(t, `{"a":[1,3],"b":{"!set":[2,3]},"d":null}`)
	patches, inverse := mutate.Diff(from, to)
	got, err := mutate.ApplyPatches(from, patches)
	if err != nil {
		t.Fatal(err)
	}
	if !ir.Equal(got, to) {
		t.Errorf("forward gave %s, want %s", got, to)
	}
	back, err := mutate.ApplyPatches(to, inverse)
	if err != nil {
		t.Fatal(err)
	}
	if !ir.Equal(back, from) {
		t.Errorf("inverse gave %s, want %s", back, from)
	}
}

func TestApplyErrors(t *testing.T) {
	base := node(t, `{"a":[1]}`)
	tests := []struct {
		name    string
		patches string
		want    error
	}{
		{"missing path", `[{"p":"x","action":8,"next":[{"p":"y","action":0,"v":1}]}]`, mutate.ErrPathNotFound},
		{"kind mismatch", `[{"p":"a","action":8,"next":[{"p":"k","action":2,"v":1}]}]`, mutate.ErrTypeMismatch},
		{"malformed", `[{"p":"a","action":0,"v":1,"next":[]}]`, mutate.ErrMalformedPatch},
		{"unknown action", `[{"p":"a","action":42,"v":1}]`, mutate.ErrUnsupportedPatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			patches, err := patch.ParseJSON([]byte(tt.patches))
			if err == nil {
				_, err = mutate.ApplyPatches(base, patches)
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestStale(t *testing.T) {
	var kept *draft.Record
	_, _, _, err := mutate.ProduceWithPatches(context.Background(), node(t, `{}`), draft.Func(func(d draft.Draft) error {
		kept = d.(*draft.Record)
		return nil
	}))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := kept.Get("a"); !errors.Is(err, mutate.ErrUseAfterFinalize) {
		t.Errorf("expected ErrUseAfterFinalize, got %v", err)
	}
}
