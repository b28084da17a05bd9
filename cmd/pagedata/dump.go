package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/pagedata"
	"github.com/fwojciec/pagedata/fs"
	"github.com/fwojciec/pagedata/harvest"
	"github.com/fwojciec/pagedata/json"
)

// exportDirName is the directory created under --out-dir.
const exportDirName = "pagedata"

// Run executes the dump command.
func (c *DumpCmd) Run(deps *Dependencies) error {
	if c.Out != "" && c.OutDir != "" {
		err := pagedata.Errorf(pagedata.EINVALID, "--out and --out-dir are mutually exclusive")
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagedata.ErrorMessage(err))
		return err
	}

	results, err := harvestTargets(deps, c.Targets)
	if err != nil {
		return err
	}
	ok := succeeded(results)
	if len(ok) == 0 {
		return pagedata.Errorf(pagedata.EINTERNAL, "no target could be captured")
	}

	switch {
	case c.Out != "":
		if len(results) > 1 {
			err := pagedata.Errorf(pagedata.EINVALID, "--out accepts a single target, got %d", len(results))
			fmt.Fprintf(deps.Stderr, "error: %s\n", pagedata.ErrorMessage(err))
			return err
		}
		data, err := encodeEnvelope(ok[0])
		if err != nil {
			return err
		}
		if err := fs.WriteFileAtomic(c.Out, data); err != nil {
			return fmt.Errorf("writing %s: %w", c.Out, err)
		}
		fmt.Fprintf(deps.Stdout, "Wrote %s (%s)\n", c.Out, harvest.FormatBytes(len(data)))

	case c.OutDir != "":
		store := fs.NewFileStore(c.OutDir, exportDirName)
		var total int
		for _, r := range ok {
			data, err := encodeEnvelope(r)
			if err != nil {
				_ = store.Abort()
				return err
			}
			if err := store.Save(r.Target, data); err != nil {
				_ = store.Abort()
				return fmt.Errorf("saving %s: %w", r.Target, err)
			}
			total += len(data)
		}
		if err := store.Commit(); err != nil {
			return fmt.Errorf("committing export: %w", err)
		}
		fmt.Fprintf(deps.Stdout, "Saved %d documents (%s)\n", len(ok), harvest.FormatBytes(total))

	default:
		for _, r := range ok {
			data, err := encodeEnvelope(r)
			if err != nil {
				return err
			}
			if _, err := deps.Stdout.Write(data); err != nil {
				return err
			}
		}
	}
	return nil
}

// envelope wraps a harvested document with its capture metadata. The digest
// is the hash of the compact encoding of the document.
func envelope(r *harvest.Result) (*pagedata.Record, error) {
	data, err := json.Marshal(r.Doc)
	if err != nil {
		return nil, err
	}
	return pagedata.NewRecord(pagedata.ShapeObject).
		Set("id", pagedata.String(r.Page.ID)).
		Set("url", pagedata.String(r.Page.URL)).
		Set("capturedAt", pagedata.String(r.Page.CapturedAt.UTC().Format(time.RFC3339))).
		Set("digest", pagedata.String(harvest.ComputeHash(data))).
		Set("data", r.Doc), nil
}

func encodeEnvelope(r *harvest.Result) ([]byte, error) {
	env, err := envelope(r)
	if err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
