package ir

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSetChild(t *testing.T) {
	seq := FromSlice([]*Node{FromInt(0)})
	if !seq.SetChild("3", FromInt(3)) {
		t.Fatal("SetChild failed")
	}
	if seq.Len() != 4 || seq.Values[1].Type != NullType || seq.Values[2].Type != NullType {
		t.Errorf("expected null holes, got %d values", seq.Len())
	}
	if seq.SetChild("x", Null()) {
		t.Error("SetChild on sequence with field key succeeded")
	}
	rec := FromKeyVals(nil)
	rec.SetChild("b", FromInt(1))
	rec.SetChild("a", FromInt(2))
	rec.SetChild("b", FromInt(3))
	if diff := cmp.Diff([]string{"b", "a"}, rec.Keys); diff != "" {
		t.Errorf("keys (-want +got):\n%s", diff)
	}
	if v, _ := rec.Child("b"); !Equal(v, FromInt(3)) {
		t.Errorf("b = %v", v)
	}
	if !rec.RemoveKey("b") || rec.RemoveKey("b") {
		t.Error("RemoveKey")
	}
}

func TestShallowCopy(t *testing.T) {
	child := FromString("c")
	orig := FromSlice([]*Node{child})
	cp := orig.ShallowCopy()
	cp.Values[0] = FromString("d")
	if orig.Values[0] != child {
		t.Error("ShallowCopy shares Values slice")
	}
	deep := orig.Clone()
	if deep.Values[0] == child || !Equal(deep, orig) {
		t.Error("Clone")
	}
}

func TestParseIndex(t *testing.T) {
	tests := []struct {
		in string
		i  int
		ok bool
	}{
		{"0", 0, true},
		{"12", 12, true},
		{"", 0, false},
		{"01", 0, false},
		{"-1", 0, false},
		{"length", 0, false},
	}
	for _, tt := range tests {
		i, ok := ParseIndex(tt.in)
		if i != tt.i || ok != tt.ok {
			t.Errorf("ParseIndex(%q) = %d, %v", tt.in, i, ok)
		}
	}
}
