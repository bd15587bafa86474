package ir

import (
	"fmt"
	"maps"
	"slices"
)

// FromAny converts plain go values, as produced by encoding/json or an
// expression evaluator, into a node.  Go maps become records with sorted
// keys, and tagged records become maps and sets as in JSON.
func FromAny(v any) (*Node, error) {
	raw, err := fromAny(v)
	if err != nil {
		return nil, err
	}
	return Untag(raw)
}

func fromAny(v any) (*Node, error) {
	switch x := v.(type) {
	case nil:
		return Null(), nil
	case *Node:
		return x, nil
	case bool:
		return FromBool(x), nil
	case string:
		return FromString(x), nil
	case int:
		return FromInt(int64(x)), nil
	case int8:
		return FromInt(int64(x)), nil
	case int16:
		return FromInt(int64(x)), nil
	case int32:
		return FromInt(int64(x)), nil
	case int64:
		return FromInt(x), nil
	case uint:
		return FromInt(int64(x)), nil
	case uint8:
		return FromInt(int64(x)), nil
	case uint16:
		return FromInt(int64(x)), nil
	case uint32:
		return FromInt(int64(x)), nil
	case uint64:
		if x > 1<<63-1 {
			return FromFloat(float64(x)), nil
		}
		return FromInt(int64(x)), nil
	case float32:
		return FromFloat(float64(x)), nil
	case float64:
		return FromFloat(x), nil
	case []*Node:
		return FromSlice(x), nil
	case []any:
		vs := make([]*Node, len(x))
		for i := range x {
			n, err := fromAny(x[i])
			if err != nil {
				return nil, err
			}
			vs[i] = n
		}
		return FromSlice(vs), nil
	case map[string]any:
		kvs := make([]KeyVal, 0, len(x))
		for _, k := range slices.Sorted(maps.Keys(x)) {
			n, err := fromAny(x[k])
			if err != nil {
				return nil, err
			}
			kvs = append(kvs, KeyVal{Key: k, Val: n})
		}
		return FromKeyVals(kvs), nil
	default:
		return nil, fmt.Errorf("%w: cannot convert %T", ErrBadValue, v)
	}
}

// ToAny converts a node to plain go values.  Records and maps become
// map[string]any and sets become []any.
func ToAny(y *Node) any {
	switch y.Type {
	case NullType:
		return nil
	case BoolType:
		return y.Bool
	case StringType:
		return y.String
	case NumberType:
		if y.Int64 != nil {
			return *y.Int64
		}
		if y.Float64 != nil {
			return *y.Float64
		}
		return nil
	case SequenceType, SetType:
		res := make([]any, len(y.Values))
		for i, v := range y.Values {
			res[i] = ToAny(v)
		}
		return res
	case RecordType, MapType:
		res := make(map[string]any, len(y.Keys))
		for i, k := range y.Keys {
			res[k] = ToAny(y.Values[i])
		}
		return res
	}
	return nil
}
