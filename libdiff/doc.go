// Package libdiff synthesizes patches describing the change from one
// value to another.
//
// # Usage
//
//	// leaves acting on the root of from
//	leaves := libdiff.Diff(from, to)
//
//	// the same wrapped as one top-level patch
//	p := libdiff.Group(from, to)
//	res, err := patch.ApplyOne(from, p)
//
// Diffs use the same patch actions as patches recorded from drafts, so the
// applier needs no special case for them.
//
// # Related Packages
//
//   - github.com/signadot/go-mutate/patch - patch representation and applier
//   - github.com/signadot/go-mutate/draft - recorded patches
package libdiff
