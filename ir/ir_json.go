package ir

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// Tags used to carry maps and sets through JSON and YAML objects.
const (
	MapTag    = "!map"
	SetTag    = "!set"
	RecordTag = "!record"
)

func (y *Node) MarshalJSON() ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := y.writeJSON(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Format writes y as compact JSON for every verb, so nodes print
// readably in errors and logs.
func (y *Node) Format(f fmt.State, _ rune) {
	if y == nil {
		io.WriteString(f, "<nil>")
		return
	}
	buf := bytes.NewBuffer(nil)
	if err := y.writeJSON(buf); err != nil {
		fmt.Fprintf(f, "<%s: %v>", y.Type, err)
		return
	}
	f.Write(buf.Bytes())
}

func (y *Node) writeJSON(buf *bytes.Buffer) error {
	switch y.Type {
	case NullType:
		buf.WriteString("null")
	case BoolType:
		buf.WriteString(strconv.FormatBool(y.Bool))
	case NumberType:
		switch {
		case y.Int64 != nil:
			buf.WriteString(strconv.FormatInt(*y.Int64, 10))
		case y.Float64 != nil:
			f := *y.Float64
			if math.IsNaN(f) || math.IsInf(f, 0) {
				return fmt.Errorf("%w: %v is not representable in json", ErrBadValue, f)
			}
			buf.WriteString(strconv.FormatFloat(f, 'g', -1, 64))
		default:
			return fmt.Errorf("%w: number without value", ErrBadValue)
		}
	case StringType:
		writeJSONString(buf, y.String)
	case SequenceType:
		return writeJSONValues(buf, y.Values)
	case SetType:
		buf.WriteString(`{"` + SetTag + `":`)
		if err := writeJSONValues(buf, y.Values); err != nil {
			return err
		}
		buf.WriteByte('}')
	case MapType:
		buf.WriteString(`{"` + MapTag + `":[`)
		for i, k := range y.Keys {
			if i != 0 {
				buf.WriteByte(',')
			}
			buf.WriteByte('[')
			writeJSONString(buf, k)
			buf.WriteByte(',')
			if err := y.Values[i].writeJSON(buf); err != nil {
				return err
			}
			buf.WriteByte(']')
		}
		buf.WriteString("]}")
	case RecordType:
		escape := len(y.Keys) == 1 && strings.HasPrefix(y.Keys[0], "!")
		if escape {
			buf.WriteString(`{"` + RecordTag + `":`)
		}
		buf.WriteByte('{')
		for i, k := range y.Keys {
			if i != 0 {
				buf.WriteByte(',')
			}
			writeJSONString(buf, k)
			buf.WriteByte(':')
			if err := y.Values[i].writeJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		if escape {
			buf.WriteByte('}')
		}
	default:
		return fmt.Errorf("%w: unknown type %d", ErrBadValue, y.Type)
	}
	return nil
}

func writeJSONValues(buf *bytes.Buffer, vs []*Node) error {
	buf.WriteByte('[')
	for i, v := range vs {
		if i != 0 {
			buf.WriteByte(',')
		}
		if err := v.writeJSON(buf); err != nil {
			return err
		}
	}
	buf.WriteByte(']')
	return nil
}

func writeJSONString(buf *bytes.Buffer, s string) {
	d, _ := json.Marshal(s)
	buf.Write(d)
}

func (y *Node) UnmarshalJSON(d []byte) error {
	dec := json.NewDecoder(bytes.NewReader(d))
	dec.UseNumber()
	raw, err := decodeJSON(dec)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrParse, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: trailing data after value", ErrParse)
	}
	res, err := Untag(raw)
	if err != nil {
		return err
	}
	*y = *res
	return nil
}

// ParseJSON decodes a single JSON value.
func ParseJSON(d []byte) (*Node, error) {
	res := &Node{}
	if err := res.UnmarshalJSON(d); err != nil {
		return nil, err
	}
	return res, nil
}

func decodeJSON(dec *json.Decoder) (*Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch x := tok.(type) {
	case nil:
		return Null(), nil
	case bool:
		return FromBool(x), nil
	case string:
		return FromString(x), nil
	case json.Number:
		return FromNumberString(string(x))
	case json.Delim:
		switch x {
		case '[':
			res := &Node{Type: SequenceType, Values: []*Node{}}
			for dec.More() {
				v, err := decodeJSON(dec)
				if err != nil {
					return nil, err
				}
				res.Values = append(res.Values, v)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return res, nil
		case '{':
			kvs := []KeyVal{}
			for dec.More() {
				kt, err := dec.Token()
				if err != nil {
					return nil, err
				}
				k, ok := kt.(string)
				if !ok {
					return nil, fmt.Errorf("unexpected object key %v", kt)
				}
				v, err := decodeJSON(dec)
				if err != nil {
					return nil, err
				}
				kvs = append(kvs, KeyVal{Key: k, Val: v})
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return FromKeyVals(kvs), nil
		}
	}
	return nil, fmt.Errorf("unexpected token %v", tok)
}

// FromNumberString parses a decimal number, preferring int64.
func FromNumberString(s string) (*Node, error) {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return FromInt(i), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: bad number %q", ErrBadValue, s)
	}
	return FromFloat(f), nil
}

// Untag converts a tree decoded from a plain object model, in which maps
// and sets are still tagged records, into its typed form.
func Untag(y *Node) (*Node, error) {
	switch y.Type {
	case SequenceType:
		return untagValues(y)
	case RecordType:
		if len(y.Keys) != 1 || !strings.HasPrefix(y.Keys[0], "!") {
			return untagValues(y)
		}
	default:
		return y, nil
	}
	val := y.Values[0]
	switch y.Keys[0] {
	case RecordTag:
		if val.Type != RecordType {
			return nil, fmt.Errorf("%w: %s expects an object, got %s", ErrBadValue, RecordTag, val.Type)
		}
		return untagValues(val)
	case SetTag:
		if val.Type != SequenceType {
			return nil, fmt.Errorf("%w: %s expects a list, got %s", ErrBadValue, SetTag, val.Type)
		}
		elems, err := untagValues(val)
		if err != nil {
			return nil, err
		}
		return NewSet(elems.Values), nil
	case MapTag:
		if val.Type != SequenceType {
			return nil, fmt.Errorf("%w: %s expects a list, got %s", ErrBadValue, MapTag, val.Type)
		}
		entries, err := EntryPairs(val)
		if err != nil {
			return nil, err
		}
		for i := range entries {
			v, err := Untag(entries[i].Val)
			if err != nil {
				return nil, err
			}
			entries[i].Val = v
		}
		return NewMap(entries), nil
	}
	return untagValues(y)
}

func untagValues(y *Node) (*Node, error) {
	res := y.ShallowCopy()
	for i, v := range res.Values {
		u, err := Untag(v)
		if err != nil {
			return nil, err
		}
		res.Values[i] = u
	}
	return res, nil
}

// EntryPairs reads a sequence of [key, value] pairs.
func EntryPairs(seq *Node) ([]KeyVal, error) {
	res := make([]KeyVal, len(seq.Values))
	for i, pair := range seq.Values {
		if pair.Type != SequenceType || len(pair.Values) != 2 || pair.Values[0].Type != StringType {
			return nil, fmt.Errorf("%w: entry %d is not a [string, value] pair", ErrBadValue, i)
		}
		res[i] = KeyVal{Key: pair.Values[0].String, Val: pair.Values[1]}
	}
	return res, nil
}

// Entries returns the entries of a map as a sequence of [key, value]
// pairs, the inverse of EntryPairs.
func (y *Node) Entries() *Node {
	res := &Node{Type: SequenceType, Values: make([]*Node, len(y.Keys))}
	for i, k := range y.Keys {
		res.Values[i] = FromSlice([]*Node{FromString(k), y.Values[i]})
	}
	return res
}
