package ir

import "slices"

// Equal reports whether a and b are deeply equal.  Records, maps and sets
// compare regardless of entry order, sequences compare in order and
// numbers compare by numeric value.
func Equal(a, b *Node) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if a.Type != b.Type {
		return false
	}
	switch a.Type {
	case NullType:
		return true
	case BoolType:
		return a.Bool == b.Bool
	case StringType:
		return a.String == b.String
	case NumberType:
		return equalNumbers(a, b)
	case SequenceType:
		return slices.EqualFunc(a.Values, b.Values, Equal)
	case RecordType, MapType:
		return equalKeyed(a, b)
	case SetType:
		return equalSets(a, b)
	}
	return false
}

// Same reports whether a and b are the same set element: equal scalars,
// or the very same container.
func Same(a, b *Node) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if a.IsContainer() || b.IsContainer() {
		return false
	}
	return Equal(a, b)
}

func equalNumbers(a, b *Node) bool {
	if a.Int64 != nil && b.Int64 != nil {
		return *a.Int64 == *b.Int64
	}
	return a.Float() == b.Float()
}

func equalKeyed(a, b *Node) bool {
	if len(a.Keys) != len(b.Keys) {
		return false
	}
	for i, k := range a.Keys {
		j := b.KeyIndex(k)
		if j == -1 {
			return false
		}
		if !Equal(a.Values[i], b.Values[j]) {
			return false
		}
	}
	return true
}

func equalSets(a, b *Node) bool {
	if len(a.Values) != len(b.Values) {
		return false
	}
	used := make([]bool, len(b.Values))
outer:
	for _, av := range a.Values {
		for j, bv := range b.Values {
			if used[j] || !Equal(av, bv) {
				continue
			}
			used[j] = true
			continue outer
		}
		return false
	}
	return true
}
