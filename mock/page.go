package mock

import (
	"context"

	"github.com/fwojciec/pagedata"
)

// Compile-time interface verification.
var (
	_ pagedata.PageSource    = (*PageSource)(nil)
	_ pagedata.DomainLimiter = (*DomainLimiter)(nil)
)

// PageSource is a mock implementation of pagedata.PageSource.
type PageSource struct {
	CaptureFn func(ctx context.Context, target string) (*pagedata.Page, error)
	CloseFn   func() error
}

func (s *PageSource) Capture(ctx context.Context, target string) (*pagedata.Page, error) {
	return s.CaptureFn(ctx, target)
}

func (s *PageSource) Close() error {
	return s.CloseFn()
}

// DomainLimiter is a mock implementation of pagedata.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}
