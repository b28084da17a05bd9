// Package rod captures pages in headless Chrome.
package rod

import (
	"context"
	"log/slog"
	"time"

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

// Source renders pages in a real browser and reads the globals left on
// window once the load event fired.
// Source is safe for concurrent use by multiple goroutines.
type Source struct {
	manager  *BrowserManager
	timeout  time.Duration
	maxNodes int
	logger   *slog.Logger
}

// Option configures a Source.
type Option func(*Source)

// WithTimeout bounds navigation, load and serialization per page.
func WithTimeout(d time.Duration) Option {
	return func(s *Source) {
		s.timeout = d
	}
}

// WithMaxNodes caps the number of composites and array elements serialized
// per page. An array longer than the remaining budget is reported as opaque.
func WithMaxNodes(n int) Option {
	return func(s *Source) {
		s.maxNodes = n
	}
}

// WithLogger sets the logger for browser lifecycle events.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Source) {
		s.logger = logger
	}
}

// NewSource launches a browser and returns a Source using it.
// Returns an error if Chrome cannot be found or launched.
func NewSource(opts ...Option) (*Source, error) {
	s := &Source{
		timeout:  DefaultTimeout,
		maxNodes: DefaultMaxNodes,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}

	manager, err := NewBrowserManager(WithManagerLogger(s.logger))
	if err != nil {
		return nil, err
	}
	s.manager = manager
	return s, nil
}

// Capture navigates to target, waits for the load event and returns the
// rendered markup together with the serialized globals.
func (s *Source) Capture(ctx context.Context, target string) (*pagedata.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.manager.closed.Load() {
		return nil, pagedata.Errorf(pagedata.EINVALID, "source is closed")
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	tab, err := s.manager.NewPage()
	if err != nil {
		return nil, err
	}
	defer tab.Close()

	page := tab.Context(ctx)
	if err := page.Navigate(target); err != nil {
		return nil, err
	}
	if err := page.WaitLoad(); err != nil {
		return nil, err
	}

	html, err := page.HTML()
	if err != nil {
		return nil, err
	}

	res, err := page.Eval(serializeWindow, s.maxNodes)
	if err != nil {
		return nil, err
	}
	globals, err := DecodeGraph([]byte(res.Value.Str()))
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

// Close shuts the browser down. Calling Close more than once is a no-op.
func (s *Source) Close() error {
	return s.manager.Close()
}
