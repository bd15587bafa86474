package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/scott-cotton/cli"

	"github.com/signadot/go-mutate"
	"github.com/signadot/go-mutate/draft"
	"github.com/signadot/go-mutate/encode"
	"github.com/signadot/go-mutate/ir"
	"github.com/signadot/go-mutate/patch"
)

var errBadStep = errors.New("bad step")

// stepEnv binds doc and at in step expressions.
type stepEnv struct {
	Doc any `expr:"doc"`
	At  any `expr:"at"`
}

// step is one recipe step given by -e.
type step struct {
	op   string
	path ir.Path
	src  string
	prog *vm.Program
}

func (s *step) String() string {
	res := s.op + " " + s.path.String()
	if s.src != "" {
		res += " " + s.src
	}
	return res
}

var stepArgs = map[string]bool{
	"set":     true,
	"delete":  false,
	"push":    true,
	"insert":  true,
	"pop":     false,
	"shift":   false,
	"reverse": false,
	"len":     true,
	"add":     true,
	"remove":  true,
	"clear":   false,
	"replace": true,
}

func parseStep(a string) (*step, error) {
	op, rest, _ := strings.Cut(strings.TrimSpace(a), " ")
	needsExpr, ok := stepArgs[op]
	if !ok {
		return nil, fmt.Errorf("%w: unknown op %q", errBadStep, op)
	}
	ps, src := cutPath(strings.TrimSpace(rest))
	path, err := ir.ParsePath(ps)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errBadStep, err)
	}
	s := &step{op: op, path: path, src: src}
	switch {
	case needsExpr && src == "":
		return nil, fmt.Errorf("%w: %s requires an expression", errBadStep, op)
	case !needsExpr && src != "":
		return nil, fmt.Errorf("%w: %s takes no expression, got %q", errBadStep, op, src)
	case needsExpr:
		prog, err := expr.Compile(src, expr.Env(stepEnv{}))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", errBadStep, err)
		}
		s.prog = prog
	}
	switch op {
	case "set", "delete", "insert":
		if len(path) == 0 {
			return nil, fmt.Errorf("%w: %s requires a path below $", errBadStep, op)
		}
	case "replace":
		if len(path) != 0 {
			return nil, fmt.Errorf("%w: replace only applies to $", errBadStep)
		}
	}
	if op == "insert" && path[len(path)-1].Index == nil {
		return nil, fmt.Errorf("%w: insert requires an index, got %s", errBadStep, path)
	}
	return s, nil
}

// cutPath splits a at the first blank outside a quoted field.
func cutPath(a string) (string, string) {
	quoted, escaped := false, false
	for i := 0; i < len(a); i++ {
		c := a[i]
		switch {
		case escaped:
			escaped = false
		case c == '\\':
			escaped = quoted
		case c == '\'':
			quoted = !quoted
		case !quoted && (c == ' ' || c == '\t'):
			return a[:i], strings.TrimSpace(a[i+1:])
		}
	}
	return a, ""
}

func (cfg *ProduceConfig) stepOpt(_ *cli.Context, a string) (any, error) {
	s, err := parseStep(a)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	cfg.Steps = append(cfg.Steps, s)
	return s, nil
}

func produce(cfg *ProduceConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Produce.Parse(cc, args)
	if err != nil {
		cfg.Produce.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(cfg.Steps) == 0 {
		return fmt.Errorf("%w: produce requires at least one -e step", cli.ErrUsage)
	}
	if len(args) > 1 {
		return fmt.Errorf("%w: produce takes at most one document, got %v", cli.ErrUsage, args)
	}
	doc := "-"
	if len(args) == 1 {
		doc = args[0]
	}
	base, err := getObjFile(cc, cfg.MainConfig, doc)
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", doc, err)
	}
	res, ps, inv, err := runSteps(context.Background(), base, cfg.Steps)
	if err != nil {
		return err
	}
	return writeProduced(cc.Out, res, ps, inv, cfg.View, cfg.encOpts(cc.Out))
}

func runSteps(ctx context.Context, base *ir.Node, steps []*step) (*ir.Node, []*patch.Patch, []*patch.Patch, error) {
	return mutate.ProduceWithPatches(ctx, base, func(_ context.Context, d draft.Draft) (*ir.Node, error) {
		var ret *ir.Node
		for i, s := range steps {
			if ret != nil {
				return nil, fmt.Errorf("%w: step %d: replace must be the last step", errBadStep, i)
			}
			r, err := s.run(d)
			if err != nil {
				return nil, fmt.Errorf("step %d (%s): %w", i, s, err)
			}
			ret = r
		}
		return ret, nil
	}, draft.CheckContext())
}

func writeProduced(w io.Writer, res *ir.Node, ps, inv []*patch.Patch, view bool, opts []encode.EncodeOption) error {
	if !view {
		out := ir.FromKeyVals([]ir.KeyVal{
			{Key: "result", Val: res},
			{Key: "patches", Val: patch.ListToNode(ps)},
			{Key: "inverse", Val: patch.ListToNode(inv)},
		})
		return encode.Encode(out, w, opts...)
	}
	if err := encode.Encode(res, w, opts...); err != nil {
		return err
	}
	if _, err := io.WriteString(w, "--- patches\n"); err != nil {
		return err
	}
	if err := encode.View(ps, w, opts...); err != nil {
		return err
	}
	if _, err := io.WriteString(w, "--- inverse\n"); err != nil {
		return err
	}
	return encode.View(inv, w, opts...)
}

// value evaluates the step's expression against the current state of root.
func (s *step) value(root draft.Draft) (*ir.Node, error) {
	cur, err := draft.Current(root)
	if err != nil {
		return nil, err
	}
	env := stepEnv{Doc: ir.ToAny(cur)}
	if at, err := cur.GetPath(s.path); err == nil && at != nil {
		env.At = ir.ToAny(at)
	}
	out, err := expr.Run(s.prog, env)
	if err != nil {
		return nil, err
	}
	return ir.FromAny(out)
}

// run applies the step to the draft root.  A replace step returns the
// new root.
func (s *step) run(root draft.Draft) (*ir.Node, error) {
	var v *ir.Node
	if s.prog != nil {
		x, err := s.value(root)
		if err != nil {
			return nil, err
		}
		v = x
	}
	switch s.op {
	case "replace":
		return v, nil
	case "set", "delete", "insert":
		parent, err := draftAt(root, s.path[:len(s.path)-1])
		if err != nil {
			return nil, err
		}
		return nil, s.runParent(parent, s.path[len(s.path)-1], v)
	}
	d, err := draftAt(root, s.path)
	if err != nil {
		return nil, err
	}
	switch x := d.(type) {
	case *draft.Sequence:
		return nil, s.runSequence(x, v)
	case *draft.Set:
		return nil, s.runSet(x, v)
	case *draft.Map:
		if s.op == "clear" {
			return nil, x.Clear()
		}
	}
	return nil, fmt.Errorf("%w: %s does not apply to %s at %s", draft.ErrNotContainer, s.op, d.Type(), s.path)
}

func (s *step) runParent(parent draft.Draft, seg ir.Segment, v *ir.Node) error {
	switch x := parent.(type) {
	case *draft.Record:
		if seg.Field == nil {
			break
		}
		if s.op == "set" {
			return x.Set(*seg.Field, v)
		}
		if s.op == "delete" {
			return x.Delete(*seg.Field)
		}
	case *draft.Map:
		if seg.Field == nil {
			break
		}
		if s.op == "set" {
			return x.Set(*seg.Field, v)
		}
		if s.op == "delete" {
			return x.Delete(*seg.Field)
		}
	case *draft.Sequence:
		if seg.Index == nil {
			break
		}
		i := *seg.Index
		switch s.op {
		case "set":
			return x.Set(i, v)
		case "delete":
			_, err := x.Splice(i, 1)
			return err
		case "insert":
			return x.Insert(i, v)
		}
	}
	return fmt.Errorf("%w: cannot %s %s in %s", draft.ErrNotContainer, s.op, seg, parent.Type())
}

func (s *step) runSequence(seq *draft.Sequence, v *ir.Node) error {
	switch s.op {
	case "push":
		return seq.Push(v)
	case "pop":
		_, err := seq.Pop()
		return err
	case "shift":
		_, err := seq.Shift()
		return err
	case "reverse":
		return seq.Reverse()
	case "len":
		n, ok := v.Int()
		if !ok || n < 0 {
			return fmt.Errorf("%w: len requires a non-negative integer, got %s", errBadStep, v)
		}
		return seq.SetLen(n)
	}
	return fmt.Errorf("%w: %s does not apply to a sequence", draft.ErrNotContainer, s.op)
}

func (s *step) runSet(set *draft.Set, v *ir.Node) error {
	switch s.op {
	case "add":
		return set.Add(v)
	case "remove":
		return set.Delete(v)
	case "clear":
		return set.Clear()
	}
	return fmt.Errorf("%w: %s does not apply to a set", draft.ErrNotContainer, s.op)
}

// draftAt descends from root along p.
func draftAt(root draft.Draft, p ir.Path) (draft.Draft, error) {
	d := root
	for i, seg := range p {
		var (
			next draft.Draft
			err  error
		)
		switch x := d.(type) {
		case *draft.Record:
			if seg.Field != nil {
				next, err = x.Child(*seg.Field)
			}
		case *draft.Map:
			if seg.Field != nil {
				next, err = x.Child(*seg.Field)
			}
		case *draft.Sequence:
			if seg.Index != nil {
				next, err = x.Child(*seg.Index)
			}
		}
		if err != nil {
			return nil, fmt.Errorf("at %s: %w", p[:i+1], err)
		}
		if next == nil {
			return nil, fmt.Errorf("%w: cannot descend %s into %s at %s", draft.ErrNotContainer, seg, d.Type(), p[:i])
		}
		d = next
	}
	return d, nil
}
