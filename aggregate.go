package pagedata

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Aggregator merges the fragments of its extractors into one document.
type Aggregator struct {
	// Extractors run in order; on key collisions the later fragment wins.
	Extractors []Extractor

	// Logger receives one record per skipped fragment. Nil discards.
	Logger *slog.Logger
}

// NewAggregator returns an aggregator running extractors in order.
func NewAggregator(logger *slog.Logger, extractors ...Extractor) *Aggregator {
	return &Aggregator{Extractors: extractors, Logger: logger}
}

// Aggregate runs every extractor over page and merges the fragments by
// top-level key. An extractor that fails or panics contributes nothing.
func (a *Aggregator) Aggregate(page *Page) *Record {
	doc := NewRecord(ShapeObject)
	for _, e := range a.Extractors {
		frag, err := safeExtract(e, page)
		if err != nil {
			a.logger().Warn("extractor skipped",
				"extractor", e.Name(),
				"url", page.URL,
				"err", err,
			)
			continue
		}
		if frag == nil {
			continue
		}
		for k, v := range frag.All() {
			doc.Set(k, v)
		}
	}
	return doc
}

// Search aggregates page and searches the result for query.
func (a *Aggregator) Search(page *Page, query string, caseSensitive bool) *SearchResult {
	return Search(a.Aggregate(page), query, caseSensitive)
}

func (a *Aggregator) logger() *slog.Logger {
	if a.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return a.Logger
}

func safeExtract(e Extractor, page *Page) (frag *Record, err error) {
	defer func() {
		if r := recover(); r != nil {
			frag, err = nil, fmt.Errorf("extractor panic: %v", r)
		}
	}()
	return e.Extract(page)
}

// Capture loads target from src and aggregates it.
func (a *Aggregator) Capture(ctx context.Context, src PageSource, target string) (*Page, *Record, error) {
	begin := time.Now()
	page, err := src.Capture(ctx, target)
	if err != nil {
		return nil, nil, err
	}
	doc := a.Aggregate(page)
	a.logger().Debug("aggregate",
		"url", page.URL,
		"keys", doc.Len(),
		"duration", time.Since(begin),
	)
	return page, doc, nil
}

// Ensure HydrationExtractor implements Extractor at compile time.
var _ Extractor = (*HydrationExtractor)(nil)

// HydrationExtractor contributes the "hydration" section: the page's
// hydration map narrowed to entries that look like structured data.
type HydrationExtractor struct {
	Classifier *Classifier
}

// NewHydrationExtractor returns an extractor using c, or the default
// classifier when c is nil.
func NewHydrationExtractor(c *Classifier) *HydrationExtractor {
	if c == nil {
		c = NewClassifier()
	}
	return &HydrationExtractor{Classifier: c}
}

func (e *HydrationExtractor) Name() string { return "hydration" }

// Extract keeps hydration entries that look like structured data. An entry
// that does not is reduced to those of its own members that do, and dropped
// if none do. The section is always present.
func (e *HydrationExtractor) Extract(page *Page) (*Record, error) {
	filtered := NewRecord(ShapeObject)
	for key, value := range CollectHydration(page.Globals).All() {
		if e.Classifier.LooksLikeStructuredData(value, key) {
			filtered.Set(key, value)
			continue
		}
		r, ok := value.(*Record)
		if !ok {
			continue
		}
		nested := NewRecord(ShapeObject)
		for nk, nv := range r.All() {
			if e.Classifier.LooksLikeStructuredData(nv, nk) {
				nested.Set(nk, nv)
			}
		}
		if nested.Len() > 0 {
			filtered.Set(key, nested)
		}
	}
	return NewRecord(ShapeObject).Set("hydration", filtered), nil
}

// KnownGlobal maps a well-known global state slot to its section key.
type KnownGlobal struct {
	Global string
	Key    string
}

// DefaultKnownGlobals returns the framework state slots looked up by default.
func DefaultKnownGlobals() []KnownGlobal {
	return []KnownGlobal{
		{Global: "__NEXT_DATA__", Key: "nextData"},
		{Global: "__NUXT__", Key: "nuxtData"},
		{Global: "__INITIAL_STATE__", Key: "initialState"},
		{Global: "__PRELOADED_STATE__", Key: "preloadedState"},
		{Global: "__APOLLO_STATE__", Key: "apolloState"},
		{Global: "REDUX_STATE", Key: "reduxState"},
		{Global: "APP_INITIAL_STATE", Key: "appInitialState"},
	}
}

// Ensure KnownGlobalsExtractor implements Extractor at compile time.
var _ Extractor = (*KnownGlobalsExtractor)(nil)

// KnownGlobalsExtractor copies well-known framework state slots verbatim.
type KnownGlobalsExtractor struct {
	Globals []KnownGlobal
}

// NewKnownGlobalsExtractor returns an extractor over globals, or the
// default table when globals is empty.
func NewKnownGlobalsExtractor(globals ...KnownGlobal) *KnownGlobalsExtractor {
	if len(globals) == 0 {
		globals = DefaultKnownGlobals()
	}
	return &KnownGlobalsExtractor{Globals: globals}
}

func (e *KnownGlobalsExtractor) Name() string { return "globals" }

// Extract copies each slot bound to a record or sequence. Slots holding
// anything else, including null, are ignored.
func (e *KnownGlobalsExtractor) Extract(page *Page) (*Record, error) {
	frag := NewRecord(ShapeObject)
	for _, g := range e.Globals {
		v, ok := page.Globals.Lookup(g.Global)
		if !ok {
			continue
		}
		switch v.Kind() {
		case KindRecord, KindSequence:
			frag.Set(g.Key, v)
		}
	}
	return frag, nil
}
