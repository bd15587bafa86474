// Package ir provides the value tree which drafts, patches and diffs
// operate on.
//
// # Node Structure
//
// A Node is a recursive tagged union.  Values are placed in fields
// depending on the node type:
//
//   - NullType: no content
//   - BoolType: Bool
//   - NumberType: Int64 if integral, otherwise Float64
//   - StringType: String
//   - RecordType: Keys[i] is the key of Values[i], ordered by insertion
//   - SequenceType: Values
//   - MapType: like RecordType, but keys are map keys
//   - SetType: Values holds unique elements, ordered by insertion
//
// # Immutability
//
// Nodes are treated as immutable once they are shared.  Functions which
// change a node in place, such as SetChild, RemoveKey and Resize, are only
// used on fresh shallow copies.  Untouched children are shared by pointer
// between an old value and a new one.
//
// # Equality
//
// Equal compares deeply: records, maps and sets compare regardless of
// order and numbers compare by value.  Same is the identity used for set
// elements: scalars compare by value and containers by pointer.
//
// # JSON Interoperability
//
// Records and sequences map to JSON objects and arrays.  Maps and sets are
// carried as tagged objects:
//
//	{"!map": [["k", 1], ["j", 2]]}
//	{"!set": [1, 2, 3]}
//
// A record whose only key starts with "!" is escaped as {"!record": {...}}.
//
// # Paths
//
// Path is a JSONPath-style path ("$.foo[0].'odd key'") used in errors and
// by the command line tool.
package ir
