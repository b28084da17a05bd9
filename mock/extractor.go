package mock

import "github.com/fwojciec/pagedata"

var _ pagedata.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of pagedata.Extractor.
type Extractor struct {
	NameFn    func() string
	ExtractFn func(page *pagedata.Page) (*pagedata.Record, error)
}

func (e *Extractor) Name() string {
	if e.NameFn == nil {
		return "mock"
	}
	return e.NameFn()
}

func (e *Extractor) Extract(page *pagedata.Page) (*pagedata.Record, error) {
	return e.ExtractFn(page)
}
