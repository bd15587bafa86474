package parse

import (
	"fmt"
	"io"
	"maps"
	"os"
	"slices"

	"github.com/goccy/go-yaml"

	"github.com/signadot/go-mutate/format"
	"github.com/signadot/go-mutate/ir"
	"github.com/signadot/go-mutate/patch"
)

// Parse reads a single document, JSON unless ParseYAML is given.
func Parse(d []byte, opts ...ParseOption) (*ir.Node, error) {
	o := &parseOpts{}
	for _, opt := range opts {
		opt(o)
	}
	switch o.format {
	case format.JSONFormat:
		n, err := ir.ParseJSON(d)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrParse, err)
		}
		return n, nil
	case format.YAMLFormat:
		return parseYAML(d)
	}
	return nil, fmt.Errorf("%w: %s", format.ErrBadFormat, o.format)
}

// ParseReader reads all of r and parses it.
func ParseReader(r io.Reader, opts ...ParseOption) (*ir.Node, error) {
	d, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(d, opts...)
}

// ParseFile parses the file at path in the format given by its extension.
// Options given override the extension.
func ParseFile(path string, opts ...ParseOption) (*ir.Node, error) {
	d, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	opts = append([]ParseOption{ParseFormat(format.FromPath(path))}, opts...)
	n, err := Parse(d, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return n, nil
}

// ParsePatches reads a list of patches in wire form.
func ParsePatches(d []byte, opts ...ParseOption) ([]*patch.Patch, error) {
	n, err := Parse(d, opts...)
	if err != nil {
		return nil, err
	}
	return patch.ListFromNode(n)
}

func parseYAML(d []byte) (*ir.Node, error) {
	var v any
	if err := yaml.UnmarshalWithOptions(d, &v, yaml.UseOrderedMap()); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	raw, err := fromYAML(v)
	if err != nil {
		return nil, err
	}
	n, err := ir.Untag(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return n, nil
}

// fromYAML converts decoded yaml to nodes, leaving tagged records for
// ir.Untag.
func fromYAML(v any) (*ir.Node, error) {
	switch x := v.(type) {
	case yaml.MapSlice:
		kvs := make([]ir.KeyVal, len(x))
		for i, item := range x {
			k, err := yamlKey(item.Key)
			if err != nil {
				return nil, err
			}
			val, err := fromYAML(item.Value)
			if err != nil {
				return nil, err
			}
			kvs[i] = ir.KeyVal{Key: k, Val: val}
		}
		return ir.FromKeyVals(kvs), nil
	case []any:
		vs := make([]*ir.Node, len(x))
		for i := range x {
			n, err := fromYAML(x[i])
			if err != nil {
				return nil, err
			}
			vs[i] = n
		}
		return ir.FromSlice(vs), nil
	case map[string]any:
		kvs := make([]ir.KeyVal, 0, len(x))
		for _, k := range slices.Sorted(maps.Keys(x)) {
			val, err := fromYAML(x[k])
			if err != nil {
				return nil, err
			}
			kvs = append(kvs, ir.KeyVal{Key: k, Val: val})
		}
		return ir.FromKeyVals(kvs), nil
	case nil, bool, string, int, int64, uint64, float64:
		return ir.FromAny(x)
	}
	return nil, fmt.Errorf("%w: unsupported yaml value %T", ErrParse, v)
}

func yamlKey(k any) (string, error) {
	switch x := k.(type) {
	case string:
		return x, nil
	case nil:
		return "null", nil
	case bool, int, int64, uint64, float64:
		return fmt.Sprint(x), nil
	}
	return "", fmt.Errorf("%w: %T", ErrKeyTag, k)
}
