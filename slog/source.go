package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/pagedata"
)

// Ensure LoggingSource implements pagedata.PageSource.
var _ pagedata.PageSource = (*LoggingSource)(nil)

// LoggingSource wraps a PageSource with capture logging.
type LoggingSource struct {
	next   pagedata.PageSource
	logger *slog.Logger
}

// NewLoggingSource creates a new LoggingSource.
func NewLoggingSource(next pagedata.PageSource, logger *slog.Logger) *LoggingSource {
	return &LoggingSource{next: next, logger: logger}
}

// Capture delegates to the wrapped source and logs the number of globals seen.
func (s *LoggingSource) Capture(ctx context.Context, target string) (page *pagedata.Page, err error) {
	defer func(begin time.Time) {
		var globals int
		if page != nil {
			globals = len(page.Globals)
		}
		s.logger.Info("capture",
			"url", target,
			"globals", globals,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Capture(ctx, target)
}

// Close delegates to the wrapped source.
func (s *LoggingSource) Close() error {
	return s.next.Close()
}
