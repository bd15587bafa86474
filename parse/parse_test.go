package parse

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/signadot/go-mutate/ir"
	"github.com/signadot/go-mutate/patch"
)

type parseTest struct {
	in   string
	json string
	e    error
}

func TestParseYAML(t *testing.T) {
	pts := []parseTest{
		{in: `null`, json: `null`},
		{in: `true`, json: `true`},
		{in: `22`, json: `22`},
		{in: `1.5`, json: `1.5`},
		{in: `hello`, json: `"hello"`},
		{in: `[a, [b, [c]]]`, json: `["a",["b",["c"]]]`},
		{in: "b: 1\na: 2\n", json: `{"b":1,"a":2}`},
		{in: "a:\n  - x: 1\n  - []\n", json: `{"a":[{"x":1},[]]}`},
		{in: "\"!set\": [1, 2]\n", json: `{"!set":[1,2]}`},
		{in: "\"!map\":\n  - [k, 1]\n  - [j, {z: null}]\n", json: `{"!map":[["k",1],["j",{"z":null}]]}`},
		{in: "\"!record\":\n  \"!set\": 3\n", json: `{"!record":{"!set":3}}`},
		{in: "1: one\ntrue: x\n", json: `{"1":"one","true":"x"}`},
		{in: "\"!set\": 1\n", e: ErrParse},
		{in: "a: [1\n", e: ErrParse},
	}
	for _, pt := range pts {
		y, err := Parse([]byte(pt.in), ParseYAML())
		if pt.e != nil {
			if !errors.Is(err, pt.e) {
				t.Errorf("%q: expected %v, got %v", pt.in, pt.e, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("%q: %v", pt.in, err)
			continue
		}
		d, err := y.MarshalJSON()
		if err != nil {
			t.Errorf("%q: %v", pt.in, err)
			continue
		}
		if string(d) != pt.json {
			t.Errorf("%q: got %s, want %s", pt.in, d, pt.json)
		}
	}
}

func TestParseJSON(t *testing.T) {
	y, err := Parse([]byte(`{"!set":[{"a":1}]}`))
	if err != nil {
		t.Fatal(err)
	}
	if y.Type != ir.SetType || y.Len() != 1 {
		t.Errorf("got %s", y)
	}
	if _, err := Parse([]byte(`{`)); !errors.Is(err, ErrParse) {
		t.Errorf("expected ErrParse, got %v", err)
	}
}

func TestParsePatches(t *testing.T) {
	in := `
- p: "0"
  action: nested
  next:
    - {p: "0", action: set, v: 0}
    - {p: length, action: 0, v: 1}
`
	ps, err := ParsePatches([]byte(in), ParseYAML())
	if err != nil {
		t.Fatal(err)
	}
	res, err := patch.Apply(ir.FromSlice([]*ir.Node{ir.FromSlice(nil)}), ps)
	if err != nil {
		t.Fatal(err)
	}
	if want := `[[0]]`; mustJSON(t, res) != want {
		t.Errorf("got %s, want %s", res, want)
	}
	if _, err := ParsePatches([]byte(`[{"action":0}]`)); !errors.Is(err, patch.ErrMalformedPatch) {
		t.Errorf("expected ErrMalformedPatch, got %v", err)
	}
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.yaml")
	if err := os.WriteFile(path, []byte("a: [1, 2]\n"), 0644); err != nil {
		t.Fatal(err)
	}
	y, err := ParseFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := mustJSON(t, y); got != `{"a":[1,2]}` {
		t.Errorf("got %s", got)
	}
	if _, err := ParseFile(filepath.Join(dir, "missing.json")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected ErrNotExist, got %v", err)
	}
}

func mustJSON(t *testing.T, y *ir.Node) string {
	t.Helper()
	d, err := y.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	return string(d)
}
