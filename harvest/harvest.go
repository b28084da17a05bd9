// Package harvest captures and aggregates many targets concurrently.
package harvest

import (
	"context"
	"log/slog"
	"net/url"
	"time"

	"github.com/fwojciec/pagedata"
	"github.com/fwojciec/pagedata/bloom"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of targets captured at once when
// Harvester.Concurrency is not set.
const DefaultConcurrency = 4

// dedupeFalsePositiveRate sizes the target filter.
const dedupeFalsePositiveRate = 0.001

// Harvester captures targets from a page source and aggregates each page.
type Harvester struct {
	Source      pagedata.PageSource
	Aggregator  *pagedata.Aggregator
	RateLimiter pagedata.DomainLimiter
	Concurrency int
	RetryDelays []time.Duration
	Logger      *slog.Logger
}

// Result holds the outcome of harvesting one target.
type Result struct {
	Position int
	Target   string
	Page     *pagedata.Page
	Doc      *pagedata.Record
	Err      error
}

// ProgressEvent reports progress during a harvest.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	Target    string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting harvest progress.
type ProgressFunc func(event ProgressEvent)

// HarvestAll captures every distinct target and returns one result per
// target in input order. A failing target is reported in its Result and
// through progress; it never stops the others. The returned error is
// non-nil only when ctx is canceled.
func (h *Harvester) HarvestAll(ctx context.Context, targets []string, progress ProgressFunc) ([]*Result, error) {
	targets = dedupe(targets)
	total := len(targets)

	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	concurrency := h.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	resultCh := make(chan *Result, total)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, target := range targets {
			g.Go(func() error {
				resultCh <- h.harvest(gctx, i, target)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	results := make([]*Result, total)
	completed := 0
	for result := range resultCh {
		completed++
		results[result.Position] = result
		if progress == nil {
			continue
		}
		event := ProgressEvent{
			Type:      ProgressCompleted,
			Completed: completed,
			Total:     total,
			Target:    result.Target,
		}
		if result.Err != nil {
			event.Type = ProgressFailed
			event.Error = result.Err
		}
		progress(event)
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	}

	return results, ctx.Err()
}

func (h *Harvester) harvest(ctx context.Context, position int, target string) *Result {
	result := &Result{Position: position, Target: target}

	if h.RateLimiter != nil {
		if err := h.RateLimiter.Wait(ctx, hostOf(target)); err != nil {
			result.Err = err
			return result
		}
	}

	delays := h.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	page, err := CaptureWithRetryDelays(ctx, target, h.Source.Capture, h.Logger, delays)
	if err != nil {
		result.Err = err
		return result
	}

	result.Page = page
	result.Doc = h.Aggregator.Aggregate(page)
	return result
}

func dedupe(targets []string) []string {
	seen := bloom.NewFilter(uint(max(len(targets), 1)), dedupeFalsePositiveRate)
	out := make([]string, 0, len(targets))
	for _, t := range targets {
		if seen.Seen(t) {
			continue
		}
		seen.Add(t)
		out = append(out, t)
	}
	return out
}

// hostOf returns the host of a remote target, or "" for local files.
func hostOf(target string) string {
	u, err := url.Parse(target)
	if err != nil || u.Scheme == "file" {
		return ""
	}
	return u.Host
}
