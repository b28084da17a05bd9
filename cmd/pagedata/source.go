package main

import (
	"context"
	"errors"
	"log/slog"

	"github.com/fwojciec/pagedata"
	"github.com/fwojciec/pagedata/config"
	"github.com/fwojciec/pagedata/fs"
	"github.com/fwojciec/pagedata/goja"
	"github.com/fwojciec/pagedata/goquery"
	pdhttp "github.com/fwojciec/pagedata/http"
	"github.com/fwojciec/pagedata/htmlquery"
	"github.com/fwojciec/pagedata/rod"
	pdslog "github.com/fwojciec/pagedata/slog"
)

// Ensure TargetFetcher implements pagedata.Fetcher at compile time.
var _ pagedata.Fetcher = (*TargetFetcher)(nil)

// TargetFetcher sends http(s) targets to Remote and everything else to Local.
type TargetFetcher struct {
	Remote pagedata.Fetcher
	Local  pagedata.Fetcher
}

// Fetch delegates to the fetcher serving target.
func (f *TargetFetcher) Fetch(ctx context.Context, target string) (string, error) {
	if fs.IsRemote(target) {
		return f.Remote.Fetch(ctx, target)
	}
	return f.Local.Fetch(ctx, target)
}

// Close closes both fetchers.
func (f *TargetFetcher) Close() error {
	return errors.Join(f.Remote.Close(), f.Local.Close())
}

// newSource builds the page source selected by cfg.Engine.
func newSource(cfg *config.Config, logger *slog.Logger) (pagedata.PageSource, error) {
	if cfg.Engine == config.EngineBrowser {
		src, err := rod.NewSource(
			rod.WithTimeout(cfg.Timeout),
			rod.WithMaxNodes(cfg.MaxNodes),
			rod.WithLogger(logger),
		)
		if err != nil {
			return nil, err
		}
		return pdslog.NewLoggingSource(src, logger), nil
	}

	fetcher := &TargetFetcher{
		Remote: pdslog.NewLoggingFetcher(pdhttp.NewFetcher(
			pdhttp.WithTimeout(cfg.Timeout),
			pdhttp.WithLogger(logger),
		), logger),
		Local: fs.NewFetcher(),
	}
	src := goja.NewSource(fetcher,
		goja.WithTimeout(cfg.Timeout),
		goja.WithMaxNodes(cfg.MaxNodes),
		goja.WithLogger(logger),
	)
	return pdslog.NewLoggingSource(src, logger), nil
}

// newExtractors returns the extractors in aggregation order.
func newExtractors(cfg *config.Config, classifier *pagedata.Classifier, logger *slog.Logger) []pagedata.Extractor {
	return []pagedata.Extractor{
		goquery.NewMetaExtractor(logger),
		pagedata.NewHydrationExtractor(classifier),
		goquery.NewDataAttributeExtractor(classifier),
		goquery.NewScriptExtractor(),
		htmlquery.NewCommentExtractor(),
		pagedata.NewKnownGlobalsExtractor(cfg.KnownGlobalTable()...),
		goquery.NewRDFaExtractor(),
	}
}
