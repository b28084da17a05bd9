package main

import (
	"fmt"
	"io"

	"github.com/bytedance/sonic"
	"github.com/fwojciec/pagedata"
	"github.com/fwojciec/pagedata/fs"
	"github.com/fwojciec/pagedata/json"
)

// searchReport is the JSON form of one target's search result.
type searchReport struct {
	Target string                  `json:"target"`
	Query  string                  `json:"query"`
	Total  int                     `json:"total"`
	Roots  []*pagedata.RootMatches `json:"roots"`
}

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	if c.Query == "" {
		err := pagedata.Errorf(pagedata.EINVALID, "query must not be empty")
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagedata.ErrorMessage(err))
		return err
	}

	if c.Doc != "" {
		doc, err := readDocument(c.Doc)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", pagedata.ErrorMessage(err))
			return err
		}
		result := pagedata.Search(doc, c.Query, c.CaseSensitive)
		return writeSearchResult(deps.Stdout, c.Doc, c.Query, result, c.JSON, false)
	}

	if len(c.Targets) == 0 {
		err := pagedata.Errorf(pagedata.EINVALID, "at least one target or --doc is required")
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagedata.ErrorMessage(err))
		return err
	}

	results, err := harvestTargets(deps, c.Targets)
	if err != nil {
		return err
	}
	ok := succeeded(results)
	if len(ok) == 0 {
		return pagedata.Errorf(pagedata.EINTERNAL, "no target could be captured")
	}

	labelled := len(results) > 1
	for _, r := range ok {
		result := pagedata.Search(r.Doc, c.Query, c.CaseSensitive)
		if err := writeSearchResult(deps.Stdout, r.Target, c.Query, result, c.JSON, labelled); err != nil {
			return err
		}
	}
	return nil
}

// readDocument loads a JSON document from path.
func readDocument(path string) (*pagedata.Record, error) {
	data, err := fs.ReadText(path)
	if err != nil {
		return nil, err
	}
	return json.UnmarshalRecord(data)
}

// writeSearchResult prints result as a report or, with asJSON, as one JSON
// line. Labelled reports are preceded by the target.
func writeSearchResult(w io.Writer, target, query string, result *pagedata.SearchResult, asJSON, labelled bool) error {
	if asJSON {
		roots := result.Roots()
		if roots == nil {
			roots = []*pagedata.RootMatches{}
		}
		data, err := sonic.Marshal(searchReport{
			Target: target,
			Query:  query,
			Total:  result.Total(),
			Roots:  roots,
		})
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%s\n", data)
		return err
	}

	if labelled {
		if _, err := fmt.Fprintf(w, "== %s ==\n", target); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, pagedata.FormatSearchResult(query, result))
	return err
}
