package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/pagedata"
	"github.com/fwojciec/pagedata/json"
)

var _ pagedata.Extractor = (*DataAttributeExtractor)(nil)

// DataAttributeExtractor collects JSON payloads stored in data-* attributes
// into the "dataAttributes" section, keyed by attribute name without the
// data- prefix. Later elements overwrite earlier ones with the same name.
type DataAttributeExtractor struct {
	Classifier *pagedata.Classifier
}

// NewDataAttributeExtractor creates an extractor using c, or the default
// classifier when c is nil.
func NewDataAttributeExtractor(c *pagedata.Classifier) *DataAttributeExtractor {
	if c == nil {
		c = pagedata.NewClassifier()
	}
	return &DataAttributeExtractor{Classifier: c}
}

// Name returns the extractor's identifier.
func (e *DataAttributeExtractor) Name() string {
	return "dataAttributes"
}

// Extract keeps attribute values that parse as a JSON object or array and
// look like structured data.
func (e *DataAttributeExtractor) Extract(page *pagedata.Page) (*pagedata.Record, error) {
	doc, err := newDocument(page.HTML)
	if err != nil {
		return nil, err
	}

	found := pagedata.NewRecord(pagedata.ShapeObject)
	doc.Find("*").Each(func(_ int, sel *goquery.Selection) {
		for _, attr := range sel.Get(0).Attr {
			name, ok := strings.CutPrefix(attr.Key, "data-")
			if !ok {
				continue
			}
			if !strings.HasPrefix(attr.Val, "{") && !strings.HasPrefix(attr.Val, "[") {
				continue
			}
			v, err := json.Unmarshal([]byte(attr.Val))
			if err != nil {
				continue
			}
			if e.Classifier.LooksLikeStructuredData(v, name) {
				found.Set(name, v)
			}
		}
	})

	frag := pagedata.NewRecord(pagedata.ShapeObject)
	if found.Len() > 0 {
		frag.Set("dataAttributes", found)
	}
	return frag, nil
}
