package libdiff

import (
	"strconv"

	"github.com/signadot/go-mutate/ir"
	"github.com/signadot/go-mutate/patch"
)

// DiffSequence compares two sequences index by index.  Indices past the
// end of from are set, and a length change ends with a SET of "length".
func DiffSequence(from, to *ir.Node) []*patch.Patch {
	res := []*patch.Patch{}
	n, m := len(from.Values), len(to.Values)
	for i := range m {
		key := strconv.Itoa(i)
		if i >= n {
			res = append(res, patch.Set(key, to.Values[i]))
			continue
		}
		if p := diffChild(key, from.Values[i], to.Values[i], patch.ActionSet); p != nil {
			res = append(res, p)
		}
	}
	if n != m {
		res = append(res, patch.Set("length", ir.FromInt(int64(m))))
	}
	return res
}
