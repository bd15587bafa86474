package main

import (
	"fmt"
	"io"
	"os"

	"github.com/scott-cotton/cli"

	"github.com/signadot/go-mutate/format"
	"github.com/signadot/go-mutate/ir"
	"github.com/signadot/go-mutate/parse"
)

func readObjFile(cc *cli.Context, path string) ([]byte, error) {
	var r io.Reader
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	} else {
		r = cc.In
	}
	d, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading %q: %w", path, err)
	}
	return d, nil
}

// getObjFile parses path, "-" meaning stdin.  Without an explicit
// input format, the path's extension decides.
func getObjFile(cc *cli.Context, cfg *MainConfig, path string) (*ir.Node, error) {
	d, err := readObjFile(cc, path)
	if err != nil {
		return nil, err
	}
	return parse.Parse(d, cfg.parseOpts(path)...)
}

func (cfg *MainConfig) inFormat(path string) format.Format {
	switch {
	case cfg.InFormat != nil:
		return *cfg.InFormat
	case cfg.Y:
		return format.YAMLFormat
	case cfg.J:
		return format.JSONFormat
	}
	return format.FromPath(path)
}
