// Package htmlquery extracts data from HTML using XPath expressions.
package htmlquery

import (
	"strings"

	"github.com/antchfx/htmlquery"
	"github.com/fwojciec/pagedata"
	"github.com/fwojciec/pagedata/goquery"
)

var _ pagedata.Extractor = (*CommentExtractor)(nil)

// CommentExtractor collects JSON found inside HTML comments into the
// "commentData" section, in document order.
type CommentExtractor struct{}

// NewCommentExtractor creates a new CommentExtractor.
func NewCommentExtractor() *CommentExtractor {
	return &CommentExtractor{}
}

// Name returns the extractor's identifier.
func (e *CommentExtractor) Name() string {
	return "commentData"
}

// Extract parses the first JSON-looking span of every comment containing
// braces. Comments whose span does not parse are ignored.
func (e *CommentExtractor) Extract(page *pagedata.Page) (*pagedata.Record, error) {
	doc, err := htmlquery.Parse(strings.NewReader(page.HTML))
	if err != nil {
		return nil, pagedata.Errorf(pagedata.EINVALID, "failed to parse HTML: %v", err)
	}
	nodes, err := htmlquery.QueryAll(doc, "//comment()")
	if err != nil {
		return nil, pagedata.Errorf(pagedata.EINTERNAL, "comment query: %v", err)
	}

	found := pagedata.NewSequence()
	for _, n := range nodes {
		if !strings.Contains(n.Data, "{") || !strings.Contains(n.Data, "}") {
			continue
		}
		if v, ok := goquery.ParseEmbeddedJSON(n.Data); ok {
			found.Append(v)
		}
	}

	frag := pagedata.NewRecord(pagedata.ShapeObject)
	if found.Len() > 0 {
		frag.Set("commentData", found)
	}
	return frag, nil
}
