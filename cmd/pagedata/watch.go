package main

import (
	"context"
	"fmt"

	"github.com/fwojciec/pagedata"
	"github.com/fwojciec/pagedata/fs"
	"github.com/fwojciec/pagedata/fsnotify"
)

// Run executes the watch command. It searches every file once, then again
// each time a file changes, until interrupted.
func (c *WatchCmd) Run(deps *Dependencies) error {
	if c.Query == "" {
		err := pagedata.Errorf(pagedata.EINVALID, "query must not be empty")
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagedata.ErrorMessage(err))
		return err
	}

	files, err := fs.ExpandTargets(c.Files)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagedata.ErrorMessage(err))
		return err
	}
	for _, f := range files {
		if fs.IsRemote(f) {
			err := pagedata.Errorf(pagedata.EINVALID, "cannot watch remote target %s", f)
			fmt.Fprintf(deps.Stderr, "error: %s\n", pagedata.ErrorMessage(err))
			return err
		}
	}

	w, err := fsnotify.NewWatcher(files, fsnotify.WithLogger(deps.Logger))
	if err != nil {
		return err
	}

	c.search(deps.Ctx, deps, files)
	fmt.Fprintf(deps.Stderr, "Watching %d files. Press Ctrl+C to stop.\n", len(files))

	err = w.Run(deps.Ctx, func(ctx context.Context, paths []string) {
		c.search(ctx, deps, paths)
	})
	if err != nil && deps.Ctx.Err() == nil {
		return err
	}
	return nil
}

// search harvests paths and prints one report per file. Failures are
// reported and the watch continues.
func (c *WatchCmd) search(ctx context.Context, deps *Dependencies, paths []string) {
	results, err := deps.Harvester.HarvestAll(ctx, paths, nil)
	if err != nil {
		return
	}
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(deps.Stderr, "  skip %s: %s\n", r.Target, pagedata.ErrorMessage(r.Err))
			continue
		}
		result := pagedata.Search(r.Doc, c.Query, c.CaseSensitive)
		if err := writeSearchResult(deps.Stdout, r.Target, c.Query, result, c.JSON, true); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		}
	}
}
