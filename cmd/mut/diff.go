package main

import (
	"fmt"
	"io"

	"github.com/scott-cotton/cli"

	"github.com/signadot/go-mutate"
	"github.com/signadot/go-mutate/encode"
	"github.com/signadot/go-mutate/ir"
	"github.com/signadot/go-mutate/patch"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires 2 args, got %v", cli.ErrUsage, args)
	}
	y1, err := getObjFile(cc, cfg.MainConfig, args[0])
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", args[0], err)
	}
	y2, err := getObjFile(cc, cfg.MainConfig, args[1])
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", args[1], err)
	}
	differs, err := diffInputs(cfg, cc.Out, y1, y2)
	if err != nil {
		return err
	}
	if differs {
		return cli.ExitCodeErr(1)
	}
	return nil
}

func diffInputs(cfg *DiffConfig, w io.Writer, a, b *ir.Node) (bool, error) {
	if ir.Equal(a, b) {
		return false, nil
	}
	opts := cfg.encOpts(w)
	if cfg.Text {
		return true, encode.TextDiff(a, b, w, opts...)
	}
	ps, inv := mutate.Diff(a, b)
	if cfg.Reverse {
		ps = inv
	}
	return true, writePatches(w, ps, cfg.View, opts)
}

func writePatches(w io.Writer, ps []*patch.Patch, view bool, opts []encode.EncodeOption) error {
	if view {
		return encode.View(ps, w, opts...)
	}
	return encode.EncodePatches(ps, w, opts...)
}
