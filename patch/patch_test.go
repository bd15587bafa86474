package patch

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/signadot/go-mutate/ir"
)

func TestGroup(t *testing.T) {
	one := ir.FromInt(1)
	tests := []struct {
		name   string
		path   []string
		leaves []*Patch
		want   string
	}{
		{
			name:   "root single leaf",
			leaves: []*Patch{Set("a", one)},
			want:   `{"p":"a","action":0,"v":1}`,
		},
		{
			name:   "root several leaves",
			leaves: []*Patch{Set("0", one), Set("length", one)},
			want:   `{"p":"","action":8,"next":[{"p":"0","action":0,"v":1},{"p":"length","action":0,"v":1}]}`,
		},
		{
			name:   "nested",
			path:   []string{"0"},
			leaves: []*Patch{Set("0", one), Set("length", one)},
			want:   `{"p":"0","action":8,"next":[{"p":"0","action":0,"v":1},{"p":"length","action":0,"v":1}]}`,
		},
		{
			name:   "deep",
			path:   []string{"a", "b"},
			leaves: []*Patch{Delete("c", one)},
			want:   `{"p":"a","action":8,"next":[{"p":"b","action":8,"next":[{"p":"c","action":1,"v":1}]}]}`,
		},
		{
			name:   "empty root key",
			path:   []string{""},
			leaves: []*Patch{Set("x", one)},
			want:   `{"p":"","action":8,"next":[{"p":"","action":8,"next":[{"p":"x","action":0,"v":1}]}]}`,
		},
		{
			name:   "bare nested empty key",
			leaves: []*Patch{Nested("", Set("x", one))},
			want:   `{"p":"","action":8,"next":[{"p":"","action":8,"next":[{"p":"x","action":0,"v":1}]}]}`,
		},
		{
			name: "no leaves",
			want: `{"p":"","action":8,"next":[]}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Group(tt.path, tt.leaves).String()
			if got != tt.want {
				t.Errorf("got\n%s\nwant\n%s", got, tt.want)
			}
		})
	}
}

func TestWalk(t *testing.T) {
	g := Group([]string{"a"}, []*Patch{Set("x", ir.Null()), SetAdd(ir.FromInt(1))})
	var paths [][]string
	var actions []Action
	err := Walk(g, func(path []string, leaf *Patch) error {
		paths = append(paths, path)
		actions = append(actions, leaf.Action)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([][]string{{"a"}, {"a"}}, paths); diff != "" {
		t.Errorf("paths (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]Action{ActionSet, ActionSetAdd}, actions); diff != "" {
		t.Errorf("actions (-want +got):\n%s", diff)
	}
}

func TestActionNames(t *testing.T) {
	for a := ActionSet; a <= ActionReplace; a++ {
		got, err := ParseAction(a.String())
		if err != nil {
			t.Fatal(err)
		}
		if got != a {
			t.Errorf("ParseAction(%q) = %d, want %d", a.String(), got, a)
		}
	}
	if got, _ := ParseAction("8"); got != ActionNested {
		t.Errorf("ParseAction(8) = %s", got)
	}
	if Action(42).Valid() {
		t.Error("action 42 is valid")
	}
	if ActionSet != 0 || ActionNested != 8 {
		t.Error("wire numbers changed")
	}
}
