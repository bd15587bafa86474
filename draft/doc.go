// Package draft implements copy-on-write drafts over immutable values and
// records the patches describing each change.
//
// # Drafts
//
// A Manager wraps a base value as a root draft.  Child drafts are created
// on first access and repeated access returns the same draft.  A draft
// copies its value on its first write, and a write marks every ancestor
// as modified too, so that finalizing reuses every untouched value of the
// base by pointer.
//
//	m := draft.New(ctx, base)
//	rec := m.Root().(*draft.Record)
//	seq, err := rec.SequenceAt("items")
//	...
//	err = seq.Push(ir.FromInt(3))
//	res, patches, inverse, err := m.Finalize(nil)
//
// # Recording
//
// Every mutating call records one top-level patch and one inverse patch,
// even when it changes nothing.  Inverse patches are returned in reverse
// order, so applying them in the order given undoes the forward patches.
//
// # Lifetime
//
// Once finalized, every draft fails with ErrUseAfterFinalize.  A draft
// whose slot was overwritten, deleted, spliced out or cleared is detached
// and writes to it fail with ErrDetached.
package draft
