package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, []*cli.Opt{
		&cli.Opt{
			Name:        "o",
			Description: "output file (default stdout)",
			Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
		},
		&cli.Opt{
			Name:        "I",
			Aliases:     []string{"ifmt"},
			Description: "input format: json/j, yaml/y (default from file extension)",
			Type:        cli.NamedFuncOpt(cfg.fmtFunc(&cfg.InFormat), "(format)"),
		}, &cli.Opt{
			Name:        "O",
			Aliases:     []string{"ofmt"},
			Description: "output format: json/j, yaml/y",
			Type:        cli.NamedFuncOpt(cfg.fmtFunc(&cfg.OutFormat), "(format)"),
		}}...)

	return cli.NewCommandAt(&cfg.Main, "mut").
		WithSynopsis("mut [opts] command [opts]").
		WithDescription("mut produces, applies and inspects patches between documents.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return mutMain(cfg, cc, args)
		}).
		WithSubs(
			ApplyCommand(cfg),
			DiffCommand(cfg),
			ProduceCommand(cfg),
			ViewCommand(cfg),
			WatchCommand(cfg))
}

func ApplyCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ApplyConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Apply, "apply").
		WithAliases("a", "ap").
		WithSynopsis("apply [-r] [-jsonpatch] <patches> [file]").
		WithDescription(applyDescription).
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return apply(cfg, cc, args)
		})
}

const applyDescription = `apply applies a list of patches to a document.

The patches file holds either a list of patches or the output of produce,
a record with fields result, patches and inverse.  In the latter case -r
applies the inverse patches.  The document defaults to stdin.

With -jsonpatch, the patches are converted to an RFC 6902 JSON patch
against the document and output instead of the result.`

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Diff, "diff").
		WithAliases("d", "di").
		WithOpts(opts...).
		WithSynopsis("diff [-r] [-text] [-v] a b").
		WithDescription("diff synthesizes the patches taking document a to document b. It exits 1 if they differ.").
		WithRun(func(cc *cli.Context, args []string) error {
			return diff(cfg, cc, args)
		})
}

func ProduceCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ProduceConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts = append(opts, &cli.Opt{
		Name:        "e",
		Description: "a recipe step: op path [expr]",
		Type:        cli.NamedFuncOpt(cli.FuncOpt(cfg.stepOpt), "(step)"),
	})
	return cli.NewCommandAt(&cfg.Produce, "produce").
		WithAliases("p", "pr").
		WithSynopsis("produce -e 'op path [expr]' [-e ...] [file]").
		WithDescription(produceDescription).
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return produce(cfg, cc, args)
		})
}

const produceDescription = `produce runs a recipe of steps against a document and outputs the
result with its patches and inverse patches.

Each step is 'op path [expr]'.  Paths look like $.a[0].b and exprs are
expr-lang expressions evaluated with doc bound to the current document
and at bound to the current value at path, if any.

  set $.a.b 1 + 2        set a record/map key or sequence index
  delete $.a.b           delete a key, or remove a sequence element
  push $.items "x"       append to a sequence
  insert $.items[0] 0    insert into a sequence before an index
  pop $.items            remove the last element
  shift $.items          remove the first element
  reverse $.items        reverse a sequence
  len $.items 2          truncate or pad a sequence
  add $.tags "t"         add a set element
  remove $.tags "t"      delete a set element
  clear $.m              clear a map or set
  replace $ {"a": doc}   replace the whole document`

func ViewCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ViewConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.View, "view").
		WithAliases("v").
		WithOpts(opts...).
		WithSynopsis("view [files]").
		WithDescription("view patch files one leaf per line, in color on terminals").
		WithRun(func(cc *cli.Context, args []string) error {
			return view(cfg, cc, args)
		})
}

func WatchCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &WatchConfig{MainConfig: mainCfg, Limit: -1}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Watch, "watch").
		WithAliases("w").
		WithOpts(opts...).
		WithSynopsis("watch [-v] [-n count] file").
		WithDescription("watch outputs the patches from each saved version of file to the next").
		WithRun(func(cc *cli.Context, args []string) error {
			return watch(cfg, cc, args)
		})
}
