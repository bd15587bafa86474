package libdiff

import (
	"github.com/signadot/go-mutate/ir"
	"github.com/signadot/go-mutate/patch"
)

// DiffKeyed diffs two records or two maps.  Removed keys come first, in
// the order of from, then added or changed keys in the order of to.
func DiffKeyed(from, to *ir.Node, set, del patch.Action) []*patch.Patch {
	res := []*patch.Patch{}
	for i, k := range from.Keys {
		if to.KeyIndex(k) == -1 {
			res = append(res, patch.Leaf(k, del, from.Values[i]))
		}
	}
	for i, k := range to.Keys {
		j := from.KeyIndex(k)
		if j == -1 {
			res = append(res, patch.Leaf(k, set, to.Values[i]))
			continue
		}
		if p := diffChild(k, from.Values[j], to.Values[i], set); p != nil {
			res = append(res, p)
		}
	}
	return res
}
