package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/scott-cotton/cli"

	"github.com/signadot/go-mutate"
	"github.com/signadot/go-mutate/encode"
	"github.com/signadot/go-mutate/ir"
	"github.com/signadot/go-mutate/parse"
)

func watch(cfg *WatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Watch.Parse(cc, args)
	if err != nil {
		cfg.Watch.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 1 || args[0] == "-" {
		return fmt.Errorf("%w: watch requires exactly one file", cli.ErrUsage)
	}
	path := args[0]
	d, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	wt := &watchState{
		w:     cc.Out,
		view:  cfg.View,
		pOpts: cfg.parseOpts(path),
		eOpts: cfg.encOpts(cc.Out),
	}
	if _, err := wt.update(d); err != nil {
		return fmt.Errorf("error decoding %s: %w", path, err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer fw.Close()
	// editors often replace the file, so watch its directory.
	if err := fw.Add(filepath.Dir(path)); err != nil {
		return err
	}
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	return wt.loop(ctx, fw, path, cfg.Limit)
}

func (wt *watchState) loop(ctx context.Context, fw *fsnotify.Watcher, path string, limit int) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	for n := 0; limit < 0 || n < limit; {
		select {
		case <-ctx.Done():
			return nil
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			theLog.Warn("watch error", "error", err)
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			if name, err := filepath.Abs(ev.Name); err != nil || name != abs {
				continue
			}
			d, err := os.ReadFile(path)
			if err != nil {
				theLog.Warn("error reading", "file", path, "error", err)
				continue
			}
			changed, err := wt.update(d)
			if err != nil {
				// half-written saves are common; wait for the next one.
				theLog.Warn("error decoding", "file", path, "error", err)
				continue
			}
			if changed {
				theLog.Info("changed", "file", path, "version", wt.version)
				n++
			}
		}
	}
	return nil
}

// watchState holds the last version of a watched document.
type watchState struct {
	w       io.Writer
	view    bool
	pOpts   []parse.ParseOption
	eOpts   []encode.EncodeOption
	last    *ir.Node
	version int
}

// update parses d as the next version and writes the patches from the last
// version to it.  The first version is recorded without output.
func (wt *watchState) update(d []byte) (bool, error) {
	n, err := parse.Parse(d, wt.pOpts...)
	if err != nil {
		return false, err
	}
	prev := wt.last
	if prev != nil && ir.Equal(prev, n) {
		return false, nil
	}
	wt.last = n
	if prev == nil {
		return false, nil
	}
	wt.version++
	ps, _ := mutate.Diff(prev, n)
	return true, writePatches(wt.w, ps, wt.view, wt.eOpts)
}
