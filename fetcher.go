package pagedata

import "context"

// Fetcher retrieves raw HTML for a target.
// Implementations may read from the network or the local filesystem.
type Fetcher interface {
	// Fetch returns the HTML served at target.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, target string) (html string, err error)

	// Close releases any resources held by the fetcher.
	Close() error
}
