// Package bloom detects duplicate page content during imports.
package bloom

import (
	"encoding/binary"
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/cespare/xxhash/v2"
)

// Deduper reports whether content has been seen before. A Bloom filter
// answers most first sightings without touching the exact set of content
// hashes; possible repeats are confirmed against that set, so there are no
// false positives. Deduper is safe for concurrent use.
type Deduper struct {
	mu     sync.Mutex
	filter *bloom.BloomFilter
	sums   map[uint64]string
}

// NewDeduper creates a Deduper sized for n expected pages with the given
// false positive rate for the pre-filter.
func NewDeduper(n uint, fpRate float64) *Deduper {
	if n == 0 {
		n = 1
	}
	return &Deduper{
		filter: bloom.NewWithEstimates(n, fpRate),
		sums:   make(map[uint64]string, n),
	}
}

// Seen records content under name and reports whether identical content
// was recorded before, returning the name it was first recorded under.
func (d *Deduper) Seen(name, content string) (first string, dup bool) {
	sum := xxhash.Sum64String(content)
	var key [8]byte
	binary.LittleEndian.PutUint64(key[:], sum)

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.filter.Test(key[:]) {
		if prev, ok := d.sums[sum]; ok {
			return prev, true
		}
	}
	d.filter.Add(key[:])
	d.sums[sum] = name
	return "", false
}

// EstimatedCount returns the approximate number of distinct contents seen.
func (d *Deduper) EstimatedCount() uint {
	d.mu.Lock()
	defer d.mu.Unlock()
	return uint(d.filter.ApproximatedSize())
}
