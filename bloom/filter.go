// Package bloom provides target deduplication backed by Bloom filters.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Filter remembers which targets have been seen. The Bloom filter is a
// pre-filter: it answers definite misses on its own and sends possible hits
// to the exact set. Seen therefore gives the same answers as the exact set
// and never reports a false positive. Test exposes the raw probabilistic
// answer.
type Filter struct {
	f     *bloom.BloomFilter
	exact map[string]struct{}
}

// NewFilter creates a new filter sized for n expected targets with the given
// Bloom false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f:     bloom.NewWithEstimates(n, fpRate),
		exact: make(map[string]struct{}),
	}
}

// Add records target.
func (f *Filter) Add(target string) {
	f.f.AddString(target)
	f.exact[target] = struct{}{}
}

// Test returns true if target might have been added.
// False positives are possible; false negatives are not.
func (f *Filter) Test(target string) bool {
	return f.f.TestString(target)
}

// Seen reports whether target was added. Only Bloom hits reach the exact set.
func (f *Filter) Seen(target string) bool {
	if !f.f.TestString(target) {
		return false
	}
	_, ok := f.exact[target]
	return ok
}

// EstimatedCount returns the approximate number of targets in the filter.
func (f *Filter) EstimatedCount() uint {
	return uint(f.f.ApproximatedSize())
}
