// Package goja captures pages without a browser by running their inline
// scripts in an embedded JavaScript engine.
package goja

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/dop251/goja"
	"github.com/fwojciec/pagedata"
	"github.com/google/uuid"
)

// Default configuration values.
const (
	DefaultTimeout  = 10 * time.Second
	DefaultMaxNodes = 100000
)

// Ensure Source implements pagedata.PageSource at compile time.
var _ pagedata.PageSource = (*Source)(nil)

// Source fetches HTML with a Fetcher and evaluates the page's classic inline
// scripts in a fresh VM whose global object stands in for window. The globals
// the scripts define become the page namespace.
type Source struct {
	fetcher  pagedata.Fetcher
	timeout  time.Duration
	maxNodes int
	logger   *slog.Logger
}

// Option configures a Source.
type Option func(*Source)

// WithTimeout bounds script execution per page.
func WithTimeout(d time.Duration) Option {
	return func(s *Source) {
		s.timeout = d
	}
}

// WithMaxNodes caps the number of composite values and array elements
// converted per page. Values past the cap are reported as opaque, as is any
// array whose length alone would exceed it.
func WithMaxNodes(n int) Option {
	return func(s *Source) {
		s.maxNodes = n
	}
}

// WithLogger sets the logger receiving script failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Source) {
		s.logger = logger
	}
}

// NewSource creates a Source reading HTML through fetcher.
func NewSource(fetcher pagedata.Fetcher, opts ...Option) *Source {
	s := &Source{
		fetcher:  fetcher,
		timeout:  DefaultTimeout,
		maxNodes: DefaultMaxNodes,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Capture fetches target and evaluates its scripts.
func (s *Source) Capture(ctx context.Context, target string) (*pagedata.Page, error) {
	html, err := s.fetcher.Fetch(ctx, target)
	if err != nil {
		return nil, err
	}
	globals, err := s.Evaluate(ctx, target, html)
	if err != nil {
		return nil, err
	}
	return &pagedata.Page{
		ID:         uuid.New().String(),
		URL:        target,
		HTML:       html,
		Globals:    globals,
		CapturedAt: time.Now(),
	}, nil
}

// Evaluate runs the inline scripts of html as if loaded from target and
// returns the globals they defined, in definition order. A script that throws
// is logged and skipped; running out of time or a canceled context aborts
// the capture.
func (s *Source) Evaluate(ctx context.Context, target, html string) (pagedata.Namespace, error) {
	scripts, err := InlineScripts(html)
	if err != nil {
		return nil, err
	}

	vm := goja.New()
	w := installWindow(vm, target)
	baseline := make(map[string]bool)
	for _, key := range vm.GlobalObject().Keys() {
		baseline[key] = true
	}

	timer := time.NewTimer(s.timeout)
	defer timer.Stop()
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-timer.C:
			vm.Interrupt("execution timeout exceeded")
		case <-ctx.Done():
			vm.Interrupt("context canceled")
		case <-done:
		}
	}()

	for i, src := range scripts {
		if _, err := vm.RunString(src); err != nil {
			var interrupted *goja.InterruptedError
			if errors.As(err, &interrupted) {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return nil, ctxErr
				}
				return nil, pagedata.Errorf(pagedata.EINVALID, "script execution exceeded %s", s.timeout)
			}
			s.logger.Warn("script failed", "url", target, "script", i, "err", err)
		}
	}

	c := newConverter(vm, w, s.maxNodes)
	var ns pagedata.Namespace
	for _, key := range vm.GlobalObject().Keys() {
		if baseline[key] {
			continue
		}
		ns = append(ns, pagedata.Binding{Name: key, Value: c.global(key)})
	}
	return ns, nil
}

// Close closes the underlying fetcher.
func (s *Source) Close() error {
	return s.fetcher.Close()
}
