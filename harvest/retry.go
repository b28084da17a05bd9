package harvest

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/pagedata"
)

// CaptureFunc is the signature for a capture function.
type CaptureFunc func(ctx context.Context, target string) (*pagedata.Page, error)

// DefaultRetryDelays returns the backoff delays for capture retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// CaptureWithRetryDelays calls capture until it succeeds, waiting delays[i]
// before attempt i+2. Invalid and missing targets are not retried.
func CaptureWithRetryDelays(ctx context.Context, target string, capture CaptureFunc, logger *slog.Logger, delays []time.Duration) (*pagedata.Page, error) {
	maxAttempts := len(delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		page, err := capture(ctx, target)
		if err == nil {
			return page, nil
		}
		lastErr = err

		if !retryable(err) || attempt >= maxAttempts-1 {
			break
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		if logger != nil {
			logger.Info("retry", "target", target, "attempt", attempt+2, "err", err)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return nil, lastErr
}

func retryable(err error) bool {
	switch pagedata.ErrorCode(err) {
	case pagedata.EINVALID, pagedata.ENOTFOUND:
		return false
	}
	return true
}
