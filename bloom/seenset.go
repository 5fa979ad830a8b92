// Package bloom provides discovered-page deduplication using Bloom filters.
// The discovery walk trades a small false-positive rate (a page wrongly
// considered seen) for constant memory across large sections.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// SeenSet tracks which page URLs the discovery walk has already visited.
type SeenSet struct {
	f *bloom.BloomFilter
}

// NewSeenSet creates a seen-set sized for n expected pages with the given
// false positive rate.
func NewSeenSet(n uint, fpRate float64) *SeenSet {
	return &SeenSet{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add records a page URL as visited.
func (s *SeenSet) Add(url string) {
	s.f.AddString(url)
}

// Seen returns true if the URL might have been visited.
// False positives are possible; false negatives are not.
func (s *SeenSet) Seen(url string) bool {
	return s.f.TestString(url)
}

// EstimatedCount returns the approximate number of visited pages.
func (s *SeenSet) EstimatedCount() uint {
	return uint(s.f.ApproximatedSize())
}
