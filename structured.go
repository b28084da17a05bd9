package pagedata

import (
	"regexp"
	"slices"
)

// Pattern tags a key expression in the structured-data pattern table.
type Pattern struct {
	Tag  string
	Expr *regexp.Regexp
}

// NewPattern compiles expr as a case-insensitive substring pattern.
func NewPattern(tag, expr string) (Pattern, error) {
	re, err := regexp.Compile("(?i)" + expr)
	if err != nil {
		return Pattern{}, Errorf(EINVALID, "invalid pattern %q for %q: %v", expr, tag, err)
	}
	return Pattern{Tag: tag, Expr: re}, nil
}

func mustPattern(tag, expr string) Pattern {
	p, err := NewPattern(tag, expr)
	if err != nil {
		panic(err)
	}
	return p
}

// DefaultPatterns returns the built-in key pattern table.
func DefaultPatterns() []Pattern {
	return []Pattern{
		mustPattern("schema", "schema|jsonld|structureddata"),
		mustPattern("product", "product|item|offering"),
		mustPattern("page", "page|content|article"),
		mustPattern("user", "user|profile|account"),
		mustPattern("seo", "seo|meta"),
		mustPattern("config", "config|settings"),
		mustPattern("graph", "graph|knowledge"),
		mustPattern("entity", "entity|thing"),
		mustPattern("breadcrumb", "breadcrumb|navigation"),
		mustPattern("review", "review|rating"),
		mustPattern("event", "event|calendar"),
		mustPattern("location", "location|place|address"),
	}
}

// DefaultMarkers returns the built-in marker keys.
func DefaultMarkers() []string {
	return []string{
		"@type", "@context", "type", "id", "name", "url",
		"description", "image", "offers", "author", "publisher",
	}
}

// Classifier decides whether a keyed value is likely structured data.
//
// The decision is a best-effort heuristic: it produces both false positives
// and false negatives and must not be relied on for exact filtering.
type Classifier struct {
	Patterns []Pattern
	Markers  []string
}

// NewClassifier returns a classifier using the default tables.
func NewClassifier() *Classifier {
	return &Classifier{
		Patterns: DefaultPatterns(),
		Markers:  DefaultMarkers(),
	}
}

// MatchKey returns the tag of the first pattern matching key.
func (c *Classifier) MatchKey(key string) (string, bool) {
	for _, p := range c.Patterns {
		if p.Expr.MatchString(key) {
			return p.Tag, true
		}
	}
	return "", false
}

// HasMarker reports whether v is a record with at least one marker key.
func (c *Classifier) HasMarker(v Value) bool {
	r, ok := v.(*Record)
	if !ok || r == nil {
		return false
	}
	return slices.ContainsFunc(c.Markers, func(m string) bool {
		_, ok := r.index[m]
		return ok
	})
}

// LooksLikeStructuredData reports whether key matches the pattern table or
// value is a record carrying a marker key.
func (c *Classifier) LooksLikeStructuredData(value Value, key string) bool {
	if _, ok := c.MatchKey(key); ok {
		return true
	}
	return c.HasMarker(value)
}

var defaultClassifier = NewClassifier()

// LooksLikeStructuredData classifies with the default tables.
func LooksLikeStructuredData(value Value, key string) bool {
	return defaultClassifier.LooksLikeStructuredData(value, key)
}
