package libdiff

import (
	"github.com/signadot/go-mutate/ir"
	"github.com/signadot/go-mutate/patch"
)

// DiffSet diffs two sets.  Elements are matched by identity first, and
// leftovers are then paired by deep equality so that sets decoded from
// separate documents do not churn.
func DiffSet(from, to *ir.Node) []*patch.Patch {
	fromUsed := make([]bool, len(from.Values))
	toUsed := make([]bool, len(to.Values))
	for i, f := range from.Values {
		if j := indexUnused(to.Values, toUsed, f, ir.Same); j != -1 {
			fromUsed[i], toUsed[j] = true, true
		}
	}
	for i, f := range from.Values {
		if fromUsed[i] {
			continue
		}
		if j := indexUnused(to.Values, toUsed, f, ir.Equal); j != -1 {
			fromUsed[i], toUsed[j] = true, true
		}
	}
	res := []*patch.Patch{}
	for i, f := range from.Values {
		if !fromUsed[i] {
			res = append(res, patch.SetDelete(f))
		}
	}
	for j, t := range to.Values {
		if !toUsed[j] {
			res = append(res, patch.SetAdd(t))
		}
	}
	return res
}

func indexUnused(vs []*ir.Node, used []bool, e *ir.Node, eq func(a, b *ir.Node) bool) int {
	for i, v := range vs {
		if !used[i] && eq(v, e) {
			return i
		}
	}
	return -1
}
