// Package goquery extracts structured data from HTML documents using
// CSS selectors.
package goquery

import (
	"bytes"
	"io"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/pagedata"
	"github.com/fwojciec/pagedata/json"
	"github.com/saintfish/chardet"
	"golang.org/x/net/html/charset"
)

// minConfidence is the lowest chardet confidence trusted over UTF-8.
const minConfidence = 50

func newDocument(html string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, pagedata.Errorf(pagedata.EINVALID, "failed to parse HTML: %v", err)
	}
	return doc, nil
}

// DecodeHTML converts body to UTF-8. The charset comes from contentType or a
// <meta> declaration when present, and is otherwise detected from the bytes.
func DecodeHTML(body []byte, contentType string) (string, error) {
	label := "utf-8"
	if _, name, certain := charset.DetermineEncoding(body, contentType); certain {
		label = name
	} else if res, err := chardet.NewTextDetector().DetectBest(body); err == nil && res.Confidence >= minConfidence {
		label = res.Charset
	}

	r, err := charset.NewReaderLabel(label, bytes.NewReader(body))
	if err != nil {
		// Unknown label; fall back to the raw bytes.
		return string(body), nil
	}
	decoded, err := io.ReadAll(r)
	if err != nil {
		return "", pagedata.Errorf(pagedata.EINVALID, "failed to decode %s content: %v", label, err)
	}
	return string(decoded), nil
}

var jsonSpan = regexp.MustCompile(`(?s)\{.*\}|\[.*\]`)

// ParseEmbeddedJSON parses the first span of text that looks like a JSON
// object or array.
func ParseEmbeddedJSON(text string) (pagedata.Value, bool) {
	span := jsonSpan.FindString(text)
	if span == "" {
		return nil, false
	}
	v, err := json.Unmarshal([]byte(span))
	if err != nil {
		return nil, false
	}
	return v, true
}
