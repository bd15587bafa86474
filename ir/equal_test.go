package ir

import "testing"

func TestEqual(t *testing.T) {
	shared := FromSlice([]*Node{FromInt(1)})
	tests := []struct {
		name     string
		a, b     *Node
		expected bool
	}{
		{"null", Null(), Null(), true},
		{"null != false", Null(), FromBool(false), false},
		{"int == float", FromInt(1), FromFloat(1.0), true},
		{"int != int", FromInt(1), FromInt(2), false},
		{"string", FromString("a"), FromString("a"), true},
		{"sequence order", FromSlice([]*Node{FromInt(1), FromInt(2)}), FromSlice([]*Node{FromInt(2), FromInt(1)}), false},
		{"record order",
			FromKeyVals([]KeyVal{{Key: "a", Val: FromInt(1)}, {Key: "b", Val: FromInt(2)}}),
			FromKeyVals([]KeyVal{{Key: "b", Val: FromInt(2)}, {Key: "a", Val: FromInt(1)}}),
			true},
		{"record value",
			FromKeyVals([]KeyVal{{Key: "a", Val: FromInt(1)}}),
			FromKeyVals([]KeyVal{{Key: "a", Val: FromInt(2)}}),
			false},
		{"record vs map",
			FromKeyVals([]KeyVal{{Key: "a", Val: FromInt(1)}}),
			NewMap([]KeyVal{{Key: "a", Val: FromInt(1)}}),
			false},
		{"set order", NewSet([]*Node{FromInt(1), FromInt(2)}), NewSet([]*Node{FromInt(2), FromInt(1)}), true},
		{"set size", NewSet([]*Node{FromInt(1)}), NewSet([]*Node{FromInt(1), FromInt(2)}), false},
		{"set of containers",
			NewSet([]*Node{shared, FromSlice([]*Node{FromInt(1)})}),
			NewSet([]*Node{FromSlice([]*Node{FromInt(1)}), shared}),
			true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Equal(tt.a, tt.b); got != tt.expected {
				t.Errorf("Equal() = %v, want %v", got, tt.expected)
			}
			if got := Equal(tt.b, tt.a); got != tt.expected {
				t.Errorf("Equal(b, a) = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestSame(t *testing.T) {
	a := FromKeyVals([]KeyVal{{Key: "x", Val: FromInt(1)}})
	b := FromKeyVals([]KeyVal{{Key: "x", Val: FromInt(1)}})
	if !Same(a, a) {
		t.Error("container not Same as itself")
	}
	if Same(a, b) {
		t.Error("distinct equal containers are Same")
	}
	if !Same(FromString("q"), FromString("q")) {
		t.Error("equal scalars are not Same")
	}
	set := NewSet([]*Node{a, b, FromInt(3), FromFloat(3)})
	if set.Len() != 3 {
		t.Errorf("NewSet kept %d elements, want 3", set.Len())
	}
}
