package goquery

import (
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/pagedata"
	"github.com/fwojciec/pagedata/json"
)

var _ pagedata.Extractor = (*MetaExtractor)(nil)

// MetaExtractor collects document metadata into the "meta" section: plain
// meta tags, OpenGraph and Twitter card properties, JSON-LD blocks and
// microdata items. Empty subsections are omitted.
type MetaExtractor struct {
	Logger *slog.Logger
}

// NewMetaExtractor creates a new MetaExtractor.
func NewMetaExtractor(logger *slog.Logger) *MetaExtractor {
	return &MetaExtractor{Logger: logger}
}

// Name returns the extractor's identifier.
func (e *MetaExtractor) Name() string {
	return "meta"
}

// Extract parses the page HTML and returns {meta: ...}.
func (e *MetaExtractor) Extract(page *pagedata.Page) (*pagedata.Record, error) {
	doc, err := newDocument(page.HTML)
	if err != nil {
		return nil, err
	}

	meta := pagedata.NewRecord(pagedata.ShapeObject)
	openGraph := pagedata.NewRecord(pagedata.ShapeObject)
	twitter := pagedata.NewRecord(pagedata.ShapeObject)
	doc.Find("meta").Each(func(_ int, sel *goquery.Selection) {
		content := sel.AttrOr("content", "")
		if content == "" {
			return
		}
		if name := sel.AttrOr("name", ""); name != "" {
			meta.Set(name, pagedata.String(content))
			return
		}
		property := sel.AttrOr("property", "")
		switch {
		case property == "":
		case strings.HasPrefix(property, "og:"):
			openGraph.Set(strings.TrimPrefix(property, "og:"), pagedata.String(content))
		case strings.HasPrefix(property, "twitter:"):
			twitter.Set(strings.TrimPrefix(property, "twitter:"), pagedata.String(content))
		default:
			meta.Set(property, pagedata.String(content))
		}
	})

	jsonLd := pagedata.NewSequence()
	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, sel *goquery.Selection) {
		text := sel.Text()
		if text == "" {
			text = "{}"
		}
		v, err := json.Unmarshal([]byte(text))
		if err != nil {
			e.logger().Warn("skipping JSON-LD block", "url", page.URL, "err", err)
			return
		}
		jsonLd.Append(v)
	})

	microdata := pagedata.NewSequence()
	doc.Find("[itemscope]").Each(func(_ int, sel *goquery.Selection) {
		if sel.Parent().Closest("[itemscope]").Length() > 0 {
			return
		}
		microdata.Append(microdataItem(sel))
	})

	section := pagedata.NewRecord(pagedata.ShapeObject)
	if meta.Len() > 0 {
		section.Set("meta", meta)
	}
	if jsonLd.Len() > 0 {
		section.Set("jsonLd", jsonLd)
	}
	if openGraph.Len() > 0 {
		section.Set("openGraph", openGraph)
	}
	if twitter.Len() > 0 {
		section.Set("twitter", twitter)
	}
	if microdata.Len() > 0 {
		section.Set("microdata", microdata)
	}
	return pagedata.NewRecord(pagedata.ShapeObject).Set("meta", section), nil
}

func (e *MetaExtractor) logger() *slog.Logger {
	if e.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return e.Logger
}

// microdataItem describes one itemscope or itemprop element. Nested itemprop
// elements belong to their nearest enclosing itemscope.
func microdataItem(sel *goquery.Selection) *pagedata.Record {
	item := pagedata.NewRecord(pagedata.ShapeObject)
	if itemtype := sel.AttrOr("itemtype", ""); itemtype != "" {
		item.Set("type", pagedata.String(itemtype))
	}
	if itemprop := sel.AttrOr("itemprop", ""); itemprop != "" {
		item.Set("property", pagedata.String(itemprop))
		item.Set("value", microdataValue(sel))
	}

	self := sel.Get(0)
	children := pagedata.NewSequence()
	sel.Find("[itemprop]").Each(func(_ int, child *goquery.Selection) {
		if child.Parent().Closest("[itemscope]").Get(0) != self {
			return
		}
		children.Append(microdataItem(child))
	})
	if children.Len() > 0 {
		item.Set("children", children)
	}
	return item
}

func microdataValue(sel *goquery.Selection) pagedata.Value {
	attr := func(name string) pagedata.Value {
		v, ok := sel.Attr(name)
		if !ok {
			return pagedata.Null{}
		}
		return pagedata.String(v)
	}
	switch goquery.NodeName(sel) {
	case "meta":
		return attr("content")
	case "img":
		return attr("src")
	case "a":
		return attr("href")
	case "time":
		if dt := sel.AttrOr("datetime", ""); dt != "" {
			return pagedata.String(dt)
		}
		return pagedata.String(sel.Text())
	default:
		return pagedata.String(strings.TrimSpace(sel.Text()))
	}
}
