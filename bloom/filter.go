// Package bloom tracks visited page paths with a Bloom filter.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Filter is a probabilistic set of page paths.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected paths
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add records a path.
func (f *Filter) Add(path string) {
	f.f.AddString(path)
}

// Test returns true if the path might have been recorded.
// False positives are possible; false negatives are not.
func (f *Filter) Test(path string) bool {
	return f.f.TestString(path)
}

// TestAndAdd records path and reports whether it might have been
// recorded before.
func (f *Filter) TestAndAdd(path string) bool {
	return f.f.TestAndAddString(path)
}

// EstimatedCount returns the approximate number of recorded paths.
func (f *Filter) EstimatedCount() uint {
	return uint(f.f.ApproximatedSize())
}
