// Package http provides an HTTP-based implementation of pagedata.Fetcher
// for pages that are served as static HTML.
package http

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/fwojciec/pagedata"
	"github.com/fwojciec/pagedata/goquery"
	"github.com/hashicorp/go-retryablehttp"
)

// Default configuration values.
const (
	DefaultFetchTimeout = 10 * time.Second
	DefaultRetryMax     = 3
	DefaultRetryWaitMin = 1 * time.Second
	DefaultRetryWaitMax = 4 * time.Second
)

// Ensure Fetcher implements pagedata.Fetcher at compile time.
var _ pagedata.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML over HTTP. Connection failures and 5xx responses
// are retried with exponential backoff. Bodies are converted to UTF-8.
type Fetcher struct {
	client *retryablehttp.Client

	timeout      time.Duration
	retryMax     int
	retryWaitMin time.Duration
	retryWaitMax time.Duration
	logger       *slog.Logger
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout of a single HTTP attempt.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithRetry sets the number of retries and the backoff bounds.
func WithRetry(max int, waitMin, waitMax time.Duration) Option {
	return func(f *Fetcher) {
		f.retryMax = max
		f.retryWaitMin = waitMin
		f.retryWaitMax = waitMax
	}
}

// WithLogger routes retry diagnostics to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Fetcher) {
		f.logger = logger
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:      DefaultFetchTimeout,
		retryMax:     DefaultRetryMax,
		retryWaitMin: DefaultRetryWaitMin,
		retryWaitMax: DefaultRetryWaitMax,
	}
	for _, opt := range opts {
		opt(f)
	}

	client := retryablehttp.NewClient()
	client.HTTPClient.Timeout = f.timeout
	client.RetryMax = f.retryMax
	client.RetryWaitMin = f.retryWaitMin
	client.RetryWaitMax = f.retryWaitMax
	client.Logger = nil
	if f.logger != nil {
		client.Logger = f.logger
	}
	f.client = client

	return f
}

// Fetch retrieves the HTML content from the given URL.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", pagedata.Errorf(pagedata.EINVALID, "invalid URL %q: %v", url, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", pagedata.Errorf(pagedata.ENOTFOUND, "HTTP %d for %s", resp.StatusCode, url)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	return goquery.DecodeHTML(body, resp.Header.Get("Content-Type"))
}

// Close releases idle connections.
func (f *Fetcher) Close() error {
	f.client.HTTPClient.CloseIdleConnections()
	return nil
}
