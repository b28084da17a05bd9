package main

import (
	"fmt"

	"github.com/fwojciec/pagedata"
	"github.com/fwojciec/pagedata/fs"
	"github.com/fwojciec/pagedata/harvest"
)

// harvestTargets expands globs in targets and harvests the result, reporting
// failed targets on stderr.
func harvestTargets(deps *Dependencies, targets []string) ([]*harvest.Result, error) {
	expanded, err := fs.ExpandTargets(targets)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagedata.ErrorMessage(err))
		return nil, err
	}

	progress := func(event harvest.ProgressEvent) {
		if event.Type == harvest.ProgressFailed {
			fmt.Fprintf(deps.Stderr, "  skip %s: %s\n", event.Target, pagedata.ErrorMessage(event.Error))
		}
	}
	return deps.Harvester.HarvestAll(deps.Ctx, expanded, progress)
}

// succeeded returns the results without an error.
func succeeded(results []*harvest.Result) []*harvest.Result {
	var ok []*harvest.Result
	for _, r := range results {
		if r != nil && r.Err == nil {
			ok = append(ok, r)
		}
	}
	return ok
}
