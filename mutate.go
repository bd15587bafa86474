// Package mutate produces new immutable values from recipes which mutate
// drafts, along with the patches describing the change and the patches
// undoing it.
//
//	res, patches, inverse, err := mutate.ProduceWithPatches(ctx, base,
//		draft.Func(func(d draft.Draft) error {
//			items, err := d.(*draft.Record).SequenceAt("items")
//			if err != nil {
//				return err
//			}
//			return items.Push(ir.FromString("x"))
//		}))
//
// ApplyPatches replays either list against any compatible value.
package mutate

import (
	"context"

	"github.com/signadot/go-mutate/draft"
	"github.com/signadot/go-mutate/ir"
	"github.com/signadot/go-mutate/libdiff"
	"github.com/signadot/go-mutate/patch"
)

// ProduceWithPatches runs recipe against a draft of base.  It returns the
// result, which shares every untouched value with base, the forward
// patches and the inverse patches.  Applying the inverse patches to the
// result in the order given gives back base.
func ProduceWithPatches(ctx context.Context, base *ir.Node, recipe draft.Recipe, opts ...draft.Option) (*ir.Node, []*patch.Patch, []*patch.Patch, error) {
	return draft.Produce(ctx, base, recipe, opts...)
}

// Produce is ProduceWithPatches without recording.
func Produce(ctx context.Context, base *ir.Node, recipe draft.Recipe, opts ...draft.Option) (*ir.Node, error) {
	opts = append(opts[:len(opts):len(opts)], draft.WithoutPatches())
	res, _, _, err := draft.Produce(ctx, base, recipe, opts...)
	return res, err
}

// ApplyPatches applies patches to base in order.  On failure, the value
// with every preceding top-level patch applied is returned along with the
// error; nothing of the failing patch is applied.
func ApplyPatches(base *ir.Node, patches []*patch.Patch) (*ir.Node, error) {
	return patch.Apply(base, patches)
}

// Diff synthesizes a patch taking from to to, and its inverse.  Each list
// holds one top-level patch.
func Diff(from, to *ir.Node) (patches, inverse []*patch.Patch) {
	return []*patch.Patch{libdiff.Group(from, to)}, []*patch.Patch{libdiff.Group(to, from)}
}
