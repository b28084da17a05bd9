package pagedata

import (
	"context"
	"time"
)

// Page is a single capture of a host page: its document markup and the
// global bindings visible to scripts once the page settled.
type Page struct {
	ID         string
	URL        string
	HTML       string
	Globals    Namespace
	CapturedAt time.Time
}

// PageSource captures pages from a host environment.
// The namespace is enumerated exactly once per capture.
type PageSource interface {
	// Capture loads target and returns its markup and globals.
	Capture(ctx context.Context, target string) (*Page, error)

	// Close releases host resources such as browser processes.
	Close() error
}
