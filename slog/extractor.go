package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/pagedata"
)

// Ensure LoggingExtractor implements pagedata.Extractor.
var _ pagedata.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with debug logging of fragment sizes.
type LoggingExtractor struct {
	next   pagedata.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next pagedata.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Name returns the wrapped extractor's name.
func (e *LoggingExtractor) Name() string {
	return e.next.Name()
}

// Extract delegates to the wrapped extractor and logs the fragment keys.
func (e *LoggingExtractor) Extract(page *pagedata.Page) (frag *pagedata.Record, err error) {
	defer func(begin time.Time) {
		var keys []string
		if frag != nil {
			keys = frag.Keys()
		}
		e.logger.Debug("extract",
			"extractor", e.next.Name(),
			"url", page.URL,
			"keys", keys,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Extract(page)
}

// WrapExtractors wraps each extractor with a LoggingExtractor.
func WrapExtractors(logger *slog.Logger, extractors ...pagedata.Extractor) []pagedata.Extractor {
	wrapped := make([]pagedata.Extractor, len(extractors))
	for i, e := range extractors {
		wrapped[i] = NewLoggingExtractor(e, logger)
	}
	return wrapped
}
