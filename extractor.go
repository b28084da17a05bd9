package pagedata

// Extractor turns one aspect of a page into a structured-data fragment.
//
// The fragment's top-level keys become top-level keys of the aggregated
// document. Extractors skip malformed input (such as invalid JSON) rather
// than failing; a returned error means the whole fragment is unusable.
type Extractor interface {
	// Name identifies the extractor in logs.
	Name() string

	// Extract returns the fragment contributed by page.
	Extract(page *Page) (*Record, error)
}
