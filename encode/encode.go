package encode

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/goccy/go-yaml/lexer"

	"github.com/signadot/go-mutate/format"
	"github.com/signadot/go-mutate/ir"
)

type EncState struct {
	indent  int
	compact bool
	format  format.Format
	colors  *Colors
}

func newEncState(opts []EncodeOption) *EncState {
	es := &EncState{indent: 2}
	for _, opt := range opts {
		opt(es)
	}
	return es
}

// Encode writes node followed by a newline, as indented JSON unless
// another format is given.
func Encode(node *ir.Node, w io.Writer, opts ...EncodeOption) error {
	es := newEncState(opts)
	switch es.format {
	case format.JSONFormat:
		buf := bytes.NewBuffer(nil)
		if err := es.writeJSON(buf, node, 0); err != nil {
			return err
		}
		buf.WriteByte('\n')
		_, err := w.Write(buf.Bytes())
		return err
	case format.YAMLFormat:
		return es.writeYAML(w, node)
	}
	return fmt.Errorf("%w: %s", format.ErrBadFormat, es.format)
}

func (es *EncState) color(t ir.Type, a ColorAttr, s string) string {
	if es.colors == nil {
		return s
	}
	return es.colors.Color(t, a, s)
}

func (es *EncState) newline(buf *bytes.Buffer, depth int) {
	if es.compact {
		return
	}
	buf.WriteByte('\n')
	buf.WriteString(strings.Repeat(" ", depth*es.indent))
}

func (es *EncState) writeJSON(buf *bytes.Buffer, y *ir.Node, depth int) error {
	switch y.Type {
	case ir.RecordType:
		if len(y.Keys) == 1 && strings.HasPrefix(y.Keys[0], "!") {
			return es.writeTagged(buf, y.Type, ir.RecordTag, depth, func(depth int) error {
				return es.writeFields(buf, y, depth)
			})
		}
		return es.writeFields(buf, y, depth)
	case ir.SequenceType:
		return es.writeList(buf, y.Type, len(y.Values), depth, func(i, depth int) error {
			return es.writeJSON(buf, y.Values[i], depth)
		})
	case ir.SetType:
		return es.writeTagged(buf, y.Type, ir.SetTag, depth, func(depth int) error {
			return es.writeList(buf, y.Type, len(y.Values), depth, func(i, depth int) error {
				return es.writeJSON(buf, y.Values[i], depth)
			})
		})
	case ir.MapType:
		return es.writeTagged(buf, y.Type, ir.MapTag, depth, func(depth int) error {
			return es.writeList(buf, y.Type, len(y.Keys), depth, func(i, depth int) error {
				buf.WriteString(es.color(y.Type, SepColor, "["))
				buf.WriteString(es.color(y.Type, FieldColor, quote(y.Keys[i])))
				buf.WriteString(es.color(y.Type, SepColor, ","))
				if !es.compact {
					buf.WriteByte(' ')
				}
				if err := es.writeJSON(buf, y.Values[i], depth); err != nil {
					return err
				}
				buf.WriteString(es.color(y.Type, SepColor, "]"))
				return nil
			})
		})
	}
	d, err := y.MarshalJSON()
	if err != nil {
		return err
	}
	buf.WriteString(es.color(y.Type, ValueColor, string(d)))
	return nil
}

func (es *EncState) writeFields(buf *bytes.Buffer, y *ir.Node, depth int) error {
	if len(y.Keys) == 0 {
		buf.WriteString(es.color(y.Type, SepColor, "{}"))
		return nil
	}
	buf.WriteString(es.color(y.Type, SepColor, "{"))
	for i, k := range y.Keys {
		if i > 0 {
			buf.WriteString(es.color(y.Type, SepColor, ","))
		}
		es.newline(buf, depth+1)
		buf.WriteString(es.color(y.Type, FieldColor, quote(k)))
		buf.WriteString(es.color(y.Type, SepColor, ":"))
		if !es.compact {
			buf.WriteByte(' ')
		}
		if err := es.writeJSON(buf, y.Values[i], depth+1); err != nil {
			return err
		}
	}
	es.newline(buf, depth)
	buf.WriteString(es.color(y.Type, SepColor, "}"))
	return nil
}

func (es *EncState) writeList(buf *bytes.Buffer, t ir.Type, n, depth int, elem func(i, depth int) error) error {
	if n == 0 {
		buf.WriteString(es.color(t, SepColor, "[]"))
		return nil
	}
	buf.WriteString(es.color(t, SepColor, "["))
	for i := range n {
		if i > 0 {
			buf.WriteString(es.color(t, SepColor, ","))
		}
		es.newline(buf, depth+1)
		if err := elem(i, depth+1); err != nil {
			return err
		}
	}
	es.newline(buf, depth)
	buf.WriteString(es.color(t, SepColor, "]"))
	return nil
}

func (es *EncState) writeTagged(buf *bytes.Buffer, t ir.Type, tag string, depth int, inner func(depth int) error) error {
	buf.WriteString(es.color(t, SepColor, "{"))
	es.newline(buf, depth+1)
	buf.WriteString(es.color(t, TagColor, quote(tag)))
	buf.WriteString(es.color(t, SepColor, ":"))
	if !es.compact {
		buf.WriteByte(' ')
	}
	if err := inner(depth + 1); err != nil {
		return err
	}
	es.newline(buf, depth)
	buf.WriteString(es.color(t, SepColor, "}"))
	return nil
}

func quote(s string) string {
	d, _ := ir.FromString(s).MarshalJSON()
	return string(d)
}

func (es *EncState) writeYAML(w io.Writer, node *ir.Node) error {
	d, err := yaml.MarshalWithOptions(ToYAML(node), yaml.Indent(es.indent))
	if err != nil {
		return err
	}
	if es.colors != nil {
		s := yamlPrinter().PrintTokens(lexer.Tokenize(string(d)))
		d = []byte(strings.TrimRight(s, "\n") + "\n")
	}
	_, err = w.Write(d)
	return err
}

// ToYAML converts node to values goccy/go-yaml encodes in order, with
// maps, sets and escaped records carried as tagged mappings.
func ToYAML(node *ir.Node) any {
	switch node.Type {
	case ir.NullType:
		return nil
	case ir.BoolType:
		return node.Bool
	case ir.StringType:
		return node.String
	case ir.NumberType:
		if node.Int64 != nil {
			return *node.Int64
		}
		if node.Float64 != nil {
			return *node.Float64
		}
		return nil
	case ir.SequenceType:
		return yamlValues(node.Values)
	case ir.SetType:
		return yaml.MapSlice{{Key: ir.SetTag, Value: yamlValues(node.Values)}}
	case ir.MapType:
		entries := make([]any, len(node.Keys))
		for i, k := range node.Keys {
			entries[i] = []any{k, ToYAML(node.Values[i])}
		}
		return yaml.MapSlice{{Key: ir.MapTag, Value: entries}}
	case ir.RecordType:
		res := make(yaml.MapSlice, len(node.Keys))
		for i, k := range node.Keys {
			res[i] = yaml.MapItem{Key: k, Value: ToYAML(node.Values[i])}
		}
		if len(node.Keys) == 1 && strings.HasPrefix(node.Keys[0], "!") {
			return yaml.MapSlice{{Key: ir.RecordTag, Value: res}}
		}
		return res
	}
	return nil
}

func yamlValues(vs []*ir.Node) []any {
	res := make([]any, len(vs))
	for i, v := range vs {
		res[i] = ToYAML(v)
	}
	return res
}
