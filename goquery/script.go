package goquery

import (
	"regexp"
	"strconv"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/pagedata"
)

var (
	dataScriptID   = regexp.MustCompile(`(?i)data|config|settings|state|props|initial`)
	dataScriptType = regexp.MustCompile(`(?i)json|application/json|text/plain`)
)

var _ pagedata.Extractor = (*ScriptExtractor)(nil)

// ScriptExtractor collects JSON embedded in inline data scripts into the
// "scriptData" section. A script qualifies when its id or type suggests it
// carries data; JSON-LD blocks are left to MetaExtractor.
type ScriptExtractor struct{}

// NewScriptExtractor creates a new ScriptExtractor.
func NewScriptExtractor() *ScriptExtractor {
	return &ScriptExtractor{}
}

// Name returns the extractor's identifier.
func (e *ScriptExtractor) Name() string {
	return "scriptData"
}

// Extract keys each payload by the script id, or script_<n> where n is the
// number of payloads found so far.
func (e *ScriptExtractor) Extract(page *pagedata.Page) (*pagedata.Record, error) {
	doc, err := newDocument(page.HTML)
	if err != nil {
		return nil, err
	}

	found := pagedata.NewRecord(pagedata.ShapeObject)
	doc.Find(`script:not([type="application/ld+json"])`).Each(func(_ int, sel *goquery.Selection) {
		if _, ok := sel.Attr("src"); ok {
			return
		}
		id := sel.AttrOr("id", "")
		typ := sel.AttrOr("type", "")
		if !dataScriptID.MatchString(id) && !dataScriptType.MatchString(typ) {
			return
		}
		v, ok := ParseEmbeddedJSON(sel.Text())
		if !ok {
			return
		}
		key := id
		if key == "" {
			key = "script_" + strconv.Itoa(found.Len())
		}
		found.Set(key, v)
	})

	frag := pagedata.NewRecord(pagedata.ShapeObject)
	if found.Len() > 0 {
		frag.Set("scriptData", found)
	}
	return frag, nil
}
