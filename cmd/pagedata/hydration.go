package main

import (
	"fmt"

	"github.com/fwojciec/pagedata"
	"github.com/fwojciec/pagedata/harvest"
	"github.com/fwojciec/pagedata/json"
)

// Run executes the hydration command.
func (c *HydrationCmd) Run(deps *Dependencies) error {
	page, err := harvest.CaptureWithRetryDelays(deps.Ctx, c.Target, deps.Source.Capture, deps.Logger, harvest.DefaultRetryDelays())
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagedata.ErrorMessage(err))
		return err
	}

	enc := json.NewEncoder(deps.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(pagedata.CollectHydration(page.Globals))
}
