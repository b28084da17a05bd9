package goja

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/pagedata"
)

var classicScriptType = regexp.MustCompile(`(?i)^((text|application)/(x-)?(javascript|ecmascript)|text/jscript)$`)

// InlineScripts returns the source of every inline classic script in html,
// in document order. External, module and data scripts are skipped.
func InlineScripts(html string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, pagedata.Errorf(pagedata.EINVALID, "failed to parse HTML: %v", err)
	}

	var scripts []string
	doc.Find("script").Each(func(_ int, sel *goquery.Selection) {
		if _, ok := sel.Attr("src"); ok {
			return
		}
		typ := strings.TrimSpace(sel.AttrOr("type", ""))
		if typ != "" && !classicScriptType.MatchString(typ) {
			return
		}
		if src := sel.Text(); strings.TrimSpace(src) != "" {
			scripts = append(scripts, src)
		}
	})
	return scripts, nil
}
