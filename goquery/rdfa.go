package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/pagedata"
)

var _ pagedata.Extractor = (*RDFaExtractor)(nil)

// RDFaExtractor collects elements carrying RDFa typeof or property
// attributes into the "rdfaData" section.
type RDFaExtractor struct{}

// NewRDFaExtractor creates a new RDFaExtractor.
func NewRDFaExtractor() *RDFaExtractor {
	return &RDFaExtractor{}
}

// Name returns the extractor's identifier.
func (e *RDFaExtractor) Name() string {
	return "rdfa"
}

// Extract returns {rdfaData: [...]}, or an empty fragment when the page has
// no RDFa annotations.
func (e *RDFaExtractor) Extract(page *pagedata.Page) (*pagedata.Record, error) {
	doc, err := newDocument(page.HTML)
	if err != nil {
		return nil, err
	}

	items := pagedata.NewSequence()
	doc.Find("[typeof], [property]").Each(func(_ int, sel *goquery.Selection) {
		item := pagedata.NewRecord(pagedata.ShapeObject)
		if typeOf := sel.AttrOr("typeof", ""); typeOf != "" {
			item.Set("type", pagedata.String(typeOf))
		}
		if property := sel.AttrOr("property", ""); property != "" {
			item.Set("property", pagedata.String(property))
			content := sel.AttrOr("content", "")
			if content == "" {
				content = strings.TrimSpace(sel.Text())
			}
			item.Set("content", pagedata.String(content))
		}
		if resource := sel.AttrOr("resource", ""); resource != "" {
			item.Set("resource", pagedata.String(resource))
		}
		if item.Len() > 0 {
			items.Append(item)
		}
	})

	frag := pagedata.NewRecord(pagedata.ShapeObject)
	if items.Len() > 0 {
		frag.Set("rdfaData", items)
	}
	return frag, nil
}
