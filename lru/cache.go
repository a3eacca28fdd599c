// Package lru provides an LRU cache decorator for search results.
package lru

import (
	"github.com/fwojciec/anydocs"
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize is the number of distinct searches kept when no size is
// configured.
const DefaultCacheSize = 256

// Ensure CachingIndexService implements anydocs.IndexService.
var _ anydocs.IndexService = (*CachingIndexService)(nil)

// searchKey identifies a search against one published index generation.
type searchKey struct {
	generation uint64
	query      string
	opts       anydocs.SearchOptions
}

// CachingIndexService memoises Search results per index generation.
// Entries for older generations are never served because the generation
// is part of the key; they age out of the cache normally.
type CachingIndexService struct {
	next  anydocs.IndexService
	cache *lru.Cache[searchKey, []*anydocs.Section]
}

// NewCachingIndexService wraps next with a cache holding up to size searches.
func NewCachingIndexService(next anydocs.IndexService, size int) *CachingIndexService {
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, _ := lru.New[searchKey, []*anydocs.Section](size)
	return &CachingIndexService{next: next, cache: cache}
}

// Search returns cached results when the same search already ran against
// the current generation.
func (s *CachingIndexService) Search(query string, opts anydocs.SearchOptions) []*anydocs.Section {
	gen := s.next.Stats().Generation
	if gen == 0 {
		return s.next.Search(query, opts)
	}

	key := searchKey{generation: gen, query: query, opts: opts.WithDefaults()}
	if results, ok := s.cache.Get(key); ok {
		return results
	}
	results := s.next.Search(query, opts)
	s.cache.Add(key, results)
	return results
}

// Len returns the number of cached searches.
func (s *CachingIndexService) Len() int {
	return s.cache.Len()
}

// Purge empties the cache.
func (s *CachingIndexService) Purge() {
	s.cache.Purge()
}

// Overview delegates to the wrapped service.
func (s *CachingIndexService) Overview() string {
	return s.next.Overview()
}

// Files delegates to the wrapped service.
func (s *CachingIndexService) Files() []string {
	return s.next.Files()
}

// FileTOC delegates to the wrapped service.
func (s *CachingIndexService) FileTOC(file string) (string, bool) {
	return s.next.FileTOC(file)
}

// Section delegates to the wrapped service.
func (s *CachingIndexService) Section(id string) (*anydocs.Section, bool) {
	return s.next.Section(id)
}

// SectionsByTitle delegates to the wrapped service.
func (s *CachingIndexService) SectionsByTitle(title, file string) []*anydocs.Section {
	return s.next.SectionsByTitle(title, file)
}

// Stats delegates to the wrapped service.
func (s *CachingIndexService) Stats() anydocs.IndexStats {
	return s.next.Stats()
}
