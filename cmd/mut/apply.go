package main

import (
	"fmt"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/scott-cotton/cli"

	"github.com/signadot/go-mutate"
	"github.com/signadot/go-mutate/encode"
	"github.com/signadot/go-mutate/ir"
	"github.com/signadot/go-mutate/patch"
)

func apply(cfg *ApplyConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Apply.Parse(cc, args)
	if err != nil {
		cfg.Apply.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) < 1 || len(args) > 2 {
		return fmt.Errorf("%w: apply requires a patches file and optionally a document", cli.ErrUsage)
	}
	doc := "-"
	if len(args) == 2 {
		doc = args[1]
	}
	if args[0] == "-" && doc == "-" {
		return fmt.Errorf("%w: patches and document cannot both be stdin", cli.ErrUsage)
	}
	pn, err := getObjFile(cc, cfg.MainConfig, args[0])
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", args[0], err)
	}
	ps, err := patchList(pn, cfg.Reverse)
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}
	target, err := getObjFile(cc, cfg.MainConfig, doc)
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", doc, err)
	}
	if cfg.JSONPatch {
		d, err := checkedJSONPatch(target, ps)
		if err != nil {
			return err
		}
		_, err = cc.Out.Write(append(d, '\n'))
		return err
	}
	res, err := mutate.ApplyPatches(target, ps)
	if err != nil {
		return fmt.Errorf("error patching %s: %w", doc, err)
	}
	if err := encode.Encode(res, cc.Out, cfg.encOpts(cc.Out)...); err != nil {
		return fmt.Errorf("error encoding result: %w", err)
	}
	return nil
}

// patchList reads either a patch list or the output of produce.
func patchList(n *ir.Node, inverse bool) ([]*patch.Patch, error) {
	switch n.Type {
	case ir.SequenceType:
		if inverse {
			return nil, fmt.Errorf("%w: -r requires produce output, got a patch list", cli.ErrUsage)
		}
		return patch.ListFromNode(n)
	case ir.RecordType:
		key := "patches"
		if inverse {
			key = "inverse"
		}
		v := ir.Get(n, key)
		if v == nil {
			return nil, fmt.Errorf("%w: no %s field", patch.ErrMalformedPatch, key)
		}
		return patch.ListFromNode(v)
	}
	return nil, fmt.Errorf("%w: expected a patch list or produce output, got %s", patch.ErrMalformedPatch, n.Type)
}

// checkedJSONPatch exports ps as a JSON patch against target and checks
// that applying it gives the same document as applying ps.
func checkedJSONPatch(target *ir.Node, ps []*patch.Patch) ([]byte, error) {
	d, err := patch.MarshalJSONPatch(target, ps)
	if err != nil {
		return nil, err
	}
	want, err := mutate.ApplyPatches(target, ps)
	if err != nil {
		return nil, err
	}
	jp, err := jsonpatch.DecodePatch(d)
	if err != nil {
		return nil, fmt.Errorf("error decoding exported json patch: %w", err)
	}
	doc, err := target.MarshalJSON()
	if err != nil {
		return nil, err
	}
	out, err := jp.Apply(doc)
	if err != nil {
		return nil, fmt.Errorf("error applying exported json patch: %w", err)
	}
	got, err := ir.ParseJSON(out)
	if err != nil {
		return nil, err
	}
	if !ir.Equal(got, want) {
		return nil, fmt.Errorf("exported json patch gives %s, want %s", got, want)
	}
	return d, nil
}
