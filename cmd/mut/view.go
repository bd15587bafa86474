package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/signadot/go-mutate/encode"
)

func view(cfg *ViewConfig, cc *cli.Context, args []string) error {
	args, err := cfg.View.Parse(cc, args)
	if err != nil {
		cfg.View.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		args = []string{"-"}
	}
	opts := cfg.encOpts(cc.Out)
	for _, arg := range args {
		n, err := getObjFile(cc, cfg.MainConfig, arg)
		if err != nil {
			return fmt.Errorf("error decoding %s: %w", arg, err)
		}
		ps, err := patchList(n, false)
		if err != nil {
			return fmt.Errorf("%s: %w", arg, err)
		}
		if len(args) > 1 {
			fmt.Fprintf(cc.Out, "--- %s\n", arg)
		}
		if err := encode.View(ps, cc.Out, opts...); err != nil {
			return err
		}
	}
	return nil
}
