package ir

import (
	"math"
	"slices"
	"strconv"
)

type Node struct {
	Type   Type
	Keys   []string
	Values []*Node

	String  string
	Bool    bool
	Int64   *int64
	Float64 *float64
}

// ShallowCopy returns a node with the same scalar content and fresh
// Keys/Values slices referring to the same children.
func (y *Node) ShallowCopy() *Node {
	res := &Node{
		Type:    y.Type,
		String:  y.String,
		Bool:    y.Bool,
		Int64:   y.Int64,
		Float64: y.Float64,
	}
	if y.Keys != nil {
		res.Keys = slices.Clone(y.Keys)
	}
	if y.Values != nil {
		res.Values = slices.Clone(y.Values)
	}
	return res
}

// Clone returns a deep copy of y.  Set element identities are not
// preserved by Clone.
func (y *Node) Clone() *Node {
	res := y.ShallowCopy()
	for i, v := range res.Values {
		res.Values[i] = v.Clone()
	}
	if y.Int64 != nil {
		i := *y.Int64
		res.Int64 = &i
	}
	if y.Float64 != nil {
		f := *y.Float64
		res.Float64 = &f
	}
	return res
}

func (y *Node) IsContainer() bool {
	return !y.Type.IsLeaf()
}

func FromString(v string) *Node {
	return &Node{Type: StringType, String: v}
}

func FromInt(v int64) *Node {
	return &Node{
		Type:  NumberType,
		Int64: &v,
	}
}

func FromFloat(f float64) *Node {
	return &Node{
		Type:    NumberType,
		Float64: &f,
	}
}

func FromBool(v bool) *Node {
	return &Node{
		Type: BoolType,
		Bool: v,
	}
}

func Null() *Node {
	return &Node{Type: NullType}
}

type KeyVal struct {
	Key string
	Val *Node
}

// FromKeyVals makes a record with the given entries in order.  Later
// duplicates replace earlier ones in place.
func FromKeyVals(kvs []KeyVal) *Node {
	return fromKeyVals(RecordType, kvs)
}

// NewMap makes a map with the given entries in order.
func NewMap(kvs []KeyVal) *Node {
	return fromKeyVals(MapType, kvs)
}

func fromKeyVals(t Type, kvs []KeyVal) *Node {
	res := &Node{
		Type:   t,
		Keys:   make([]string, 0, len(kvs)),
		Values: make([]*Node, 0, len(kvs)),
	}
	for _, kv := range kvs {
		res.SetChild(kv.Key, kv.Val)
	}
	return res
}

func FromSlice(ySlice []*Node) *Node {
	return &Node{
		Type:   SequenceType,
		Values: slices.Clone(ySlice),
	}
}

// NewSet makes a set of the given elements, dropping elements which are
// the Same as an earlier one.
func NewSet(elems []*Node) *Node {
	res := &Node{Type: SetType, Values: make([]*Node, 0, len(elems))}
	for _, e := range elems {
		if res.SetIndex(e) != -1 {
			continue
		}
		res.Values = append(res.Values, e)
	}
	return res
}

func (y *Node) Len() int {
	return len(y.Values)
}

// KeyIndex returns the position of key in a record or map, or -1.
func (y *Node) KeyIndex(key string) int {
	if !y.Type.IsKeyed() {
		return -1
	}
	return slices.Index(y.Keys, key)
}

// SetIndex returns the position of an element which is the Same as e in a
// set, or -1.
func (y *Node) SetIndex(e *Node) int {
	for i, v := range y.Values {
		if Same(v, e) {
			return i
		}
	}
	return -1
}

func Get(y *Node, key string) *Node {
	i := y.KeyIndex(key)
	if i == -1 {
		return nil
	}
	return y.Values[i]
}

// Child returns the child of y at key, where key is a record or map key
// or a decimal sequence index.
func (y *Node) Child(key string) (*Node, bool) {
	switch y.Type {
	case RecordType, MapType:
		i := y.KeyIndex(key)
		if i == -1 {
			return nil, false
		}
		return y.Values[i], true
	case SequenceType:
		i, ok := ParseIndex(key)
		if !ok || i >= len(y.Values) {
			return nil, false
		}
		return y.Values[i], true
	default:
		return nil, false
	}
}

// SetChild sets the child of y at key in place.  Records and maps append
// missing keys.  Sequences grow with nulls to reach the index.  SetChild
// returns false if y has no slot named key.
func (y *Node) SetChild(key string, v *Node) bool {
	switch y.Type {
	case RecordType, MapType:
		i := y.KeyIndex(key)
		if i == -1 {
			y.Keys = append(y.Keys, key)
			y.Values = append(y.Values, v)
			return true
		}
		y.Values[i] = v
		return true
	case SequenceType:
		i, ok := ParseIndex(key)
		if !ok {
			return false
		}
		y.Resize(max(i+1, len(y.Values)))
		y.Values[i] = v
		return true
	default:
		return false
	}
}

// RemoveKey removes key from a record or map in place, keeping the order
// of the remaining entries.
func (y *Node) RemoveKey(key string) bool {
	i := y.KeyIndex(key)
	if i == -1 {
		return false
	}
	y.Keys = slices.Delete(y.Keys, i, i+1)
	y.Values = slices.Delete(y.Values, i, i+1)
	return true
}

// Resize truncates or null-pads the values of y in place.
func (y *Node) Resize(n int) {
	if n <= len(y.Values) {
		clear(y.Values[n:])
		y.Values = y.Values[:n]
		return
	}
	for len(y.Values) < n {
		y.Values = append(y.Values, Null())
	}
}

// Int returns the value of an integral number node.
func (y *Node) Int() (int, bool) {
	if y == nil || y.Type != NumberType {
		return 0, false
	}
	if y.Int64 != nil {
		return int(*y.Int64), true
	}
	if y.Float64 != nil {
		f := *y.Float64
		if f == math.Trunc(f) && !math.IsInf(f, 0) {
			return int(f), true
		}
	}
	return 0, false
}

// Float returns the value of a number node as a float64.
func (y *Node) Float() float64 {
	if y.Int64 != nil {
		return float64(*y.Int64)
	}
	if y.Float64 != nil {
		return *y.Float64
	}
	return math.NaN()
}

// ParseIndex parses a sequence index path segment.
func ParseIndex(key string) (int, bool) {
	if key == "" || (len(key) > 1 && key[0] == '0') {
		return 0, false
	}
	u, err := strconv.ParseUint(key, 10, 31)
	if err != nil {
		return 0, false
	}
	return int(u), true
}
