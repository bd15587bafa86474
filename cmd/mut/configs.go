package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"

	"github.com/signadot/go-mutate/encode"
	"github.com/signadot/go-mutate/format"
	"github.com/signadot/go-mutate/parse"
)

type MainConfig struct {
	Color   bool `cli:"name=color desc='encode with color'"`
	Compact bool `cli:"name=c aliases=compact desc='output json on one line'"`

	J bool `cli:"name=j aliases=json desc='do i/o in json'"`
	Y bool `cli:"name=y aliases=yaml desc='do i/o in yaml'"`

	InFormat, OutFormat *format.Format

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) fmtFunc(fps ...**format.Format) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := format.ParseFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		for _, fp := range fps {
			*fp = &f
		}
		return f, nil
	})
}

func (cfg *MainConfig) parseOpts(path string) []parse.ParseOption {
	return []parse.ParseOption{parse.ParseFormat(cfg.inFormat(path))}
}

func (cfg *MainConfig) outFormat() format.Format {
	switch {
	case cfg.OutFormat != nil:
		return *cfg.OutFormat
	case cfg.Y:
		return format.YAMLFormat
	}
	return format.JSONFormat
}

func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	res := []encode.EncodeOption{
		encode.EncodeFormat(cfg.outFormat()),
		encode.Compact(cfg.Compact),
	}
	if cfg.Color {
		res = append(res, encode.EncodeColors(encode.NewColors()))
		return res
	}
	if cfg.colorSet() {
		return res
	}
	f, ok := w.(*os.File)
	if !ok {
		return res
	}
	if isatty.IsTerminal(f.Fd()) {
		res = append(res, encode.EncodeColors(encode.NewColors()))
		return res
	}
	return res
}

// colorSet reports whether -color was given, possibly as false.
func (cfg *MainConfig) colorSet() bool {
	if cfg.Main == nil {
		return false
	}
	for _, opt := range cfg.Main.Opts {
		if opt.Name == "color" {
			return opt.Value != nil
		}
	}
	return false
}

type ApplyConfig struct {
	*MainConfig
	Reverse   bool `cli:"name=r desc='apply the inverse patches of produce output'"`
	JSONPatch bool `cli:"name=jsonpatch desc='output the patches as an rfc 6902 json patch'"`

	Apply *cli.Command
}

type DiffConfig struct {
	*MainConfig
	Reverse bool `cli:"name=r desc='output the inverse patches'"`
	Text    bool `cli:"name=text desc='output a line diff of the documents'"`
	View    bool `cli:"name=v aliases=view desc='render patches one leaf per line'"`

	Diff *cli.Command
}

type ProduceConfig struct {
	*MainConfig
	Steps []*step
	View  bool `cli:"name=v aliases=view desc='render patches one leaf per line'"`

	Produce *cli.Command
}

type ViewConfig struct {
	*MainConfig

	View *cli.Command
}

type WatchConfig struct {
	*MainConfig
	View  bool `cli:"name=v aliases=view desc='render patches one leaf per line'"`
	Limit int  `cli:"name=n desc='stop after n changes'"`

	Watch *cli.Command
}
