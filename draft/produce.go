package draft

import (
	"context"

	"github.com/signadot/go-mutate/ir"
	"github.com/signadot/go-mutate/patch"
)

// Recipe describes a change by mutating d.  Returning nil, or d.Node(),
// keeps the mutated draft as the result.  Returning any other value
// replaces the root with it.
type Recipe func(ctx context.Context, d Draft) (*ir.Node, error)

// Func adapts a recipe which only mutates its draft.
func Func(f func(d Draft) error) Recipe {
	return func(_ context.Context, d Draft) (*ir.Node, error) {
		return nil, f(d)
	}
}

// Produce runs recipe against a draft of base and finalizes it.  If the
// recipe fails, every draft is revoked and its error is returned as is.
func Produce(ctx context.Context, base *ir.Node, recipe Recipe, opts ...Option) (*ir.Node, []*patch.Patch, []*patch.Patch, error) {
	m := New(ctx, base, opts...)
	ret, err := recipe(ctx, m.Root())
	if err != nil {
		m.Abort()
		return nil, nil, nil, err
	}
	return m.Finalize(ret)
}
