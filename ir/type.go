package ir

import "fmt"

type Type int

const (
	NullType Type = iota
	NumberType
	StringType
	BoolType
	RecordType
	SequenceType
	MapType
	SetType
)

func (t Type) String() string {
	s, ok := map[Type]string{
		RecordType:   "Record",
		SequenceType: "Sequence",
		MapType:      "Map",
		SetType:      "Set",
		StringType:   "String",
		NumberType:   "Number",
		BoolType:     "Bool",
		NullType:     "Null",
	}[t]
	if ok {
		return s
	}
	return "<unknown type>"
}

func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Type) UnmarshalText(d []byte) error {
	tt, ok := map[string]Type{
		"Null":     NullType,
		"Bool":     BoolType,
		"Number":   NumberType,
		"String":   StringType,
		"Record":   RecordType,
		"Sequence": SequenceType,
		"Map":      MapType,
		"Set":      SetType,
	}[string(d)]
	if !ok {
		return fmt.Errorf("unrecognized type %q", d)
	}
	*t = tt
	return nil
}

func Types() []Type {
	return []Type{
		NullType,
		NumberType,
		StringType,
		BoolType,
		RecordType,
		SequenceType,
		MapType,
		SetType,
	}
}

func (t Type) IsLeaf() bool {
	switch t {
	case RecordType, SequenceType, MapType, SetType:
		return false
	default:
		return true
	}
}

// IsKeyed reports whether children of t are addressed by string keys.
func (t Type) IsKeyed() bool {
	return t == RecordType || t == MapType
}
