package encode

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/goccy/go-yaml/printer"

	"github.com/signadot/go-mutate/ir"
	"github.com/signadot/go-mutate/patch"
)

type Colorable struct {
	Type ir.Type
	Attr ColorAttr
}

type ColorAttr int

const (
	TagColor ColorAttr = iota
	FieldColor
	ValueColor
	SepColor
)

type Colors struct {
	Default func(string, ...any) string
	Map     map[Colorable]func(string, ...any) string
	// Actions colors action names when rendering patches.
	Actions map[patch.Action]func(string, ...any) string
	Insert  func(string, ...any) string
	Delete  func(string, ...any) string
}

func NewColors() *Colors {
	colors := &Colors{
		Default: colorDefault,
		Map:     map[Colorable]func(string, ...any) string{},
		Actions: map[patch.Action]func(string, ...any) string{},
		Insert:  color.GreenString,
		Delete:  color.RedString,
	}
	for _, t := range ir.Types() {
		able := Colorable{
			Type: t,
			Attr: TagColor,
		}
		colors.Map[able] = color.RGB(74, 92, 138).SprintfFunc()
		able.Attr = SepColor
		colors.Map[able] = color.RGB(255, 0, 196).SprintfFunc()
	}
	able := Colorable{Attr: ValueColor}

	able.Type = ir.NumberType
	colors.Map[able] = color.RGB(128, 216, 236).SprintfFunc()

	able.Type = ir.NullType
	colors.Map[able] = color.RGB(168, 0, 196).SprintfFunc()

	able.Type = ir.BoolType
	colors.Map[able] = color.CyanString

	able.Type = ir.StringType
	colors.Map[able] = color.RGB(8, 196, 16).SprintfFunc()

	able.Attr = FieldColor
	for _, t := range []ir.Type{ir.RecordType, ir.MapType} {
		able.Type = t
		colors.Map[able] = color.RGB(128, 168, 196).SprintfFunc()
	}
	able.Type = ir.SequenceType
	colors.Map[able] = color.RGB(196, 96, 16).SprintfFunc()

	for _, a := range []patch.Action{patch.ActionSet, patch.ActionMapSet, patch.ActionSetAdd} {
		colors.Actions[a] = color.GreenString
	}
	for _, a := range []patch.Action{patch.ActionDelete, patch.ActionMapDelete, patch.ActionSetDelete,
		patch.ActionMapClear, patch.ActionSetClear} {
		colors.Actions[a] = color.RedString
	}
	for _, a := range []patch.Action{patch.ActionArraySplice, patch.ActionArrayReverse, patch.ActionReplace} {
		colors.Actions[a] = color.YellowString
	}
	colors.Actions[patch.ActionNested] = color.RGB(96, 96, 96).SprintfFunc()

	for k, f := range colors.Map {
		colors.Map[k] = escapePercent(f)
	}
	for k, f := range colors.Actions {
		colors.Actions[k] = escapePercent(f)
	}
	colors.Insert = escapePercent(colors.Insert)
	colors.Delete = escapePercent(colors.Delete)
	return colors
}

func escapePercent(f func(string, ...any) string) func(string, ...any) string {
	return func(v string, _ ...any) string {
		return f(strings.Replace(v, "%", "%%", -1))
	}
}

func colorDefault(v string, _ ...any) string { return v }

func (c *Colors) Color(t ir.Type, a ColorAttr, s string) string {
	res := c.Get(t, a)(s)
	return res
}

func (c *Colors) Get(t ir.Type, a ColorAttr) func(string, ...any) string {
	f := c.Map[Colorable{Type: t, Attr: a}]
	if f == nil {
		return c.Default
	}
	return f
}

func (c *Colors) Action(a patch.Action) string {
	f := c.Actions[a]
	if f == nil {
		f = c.Default
	}
	return f(a.String())
}

// yamlPrinter colors yaml tokens with ansi escapes matching NewColors.
func yamlPrinter() *printer.Printer {
	prop := func(attrs ...color.Attribute) func() *printer.Property {
		codes := make([]string, len(attrs))
		for i, a := range attrs {
			codes[i] = fmt.Sprint(int(a))
		}
		p := &printer.Property{
			Prefix: "\x1b[" + strings.Join(codes, ";") + "m",
			Suffix: "\x1b[0m",
		}
		return func() *printer.Property { return p }
	}
	return &printer.Printer{
		MapKey: prop(color.FgHiCyan),
		Anchor: prop(color.FgHiYellow),
		Alias:  prop(color.FgHiYellow),
		Bool:   prop(color.FgCyan),
		String: prop(color.FgGreen),
		Number: prop(color.FgHiBlue),
	}
}
