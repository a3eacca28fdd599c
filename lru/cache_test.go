package lru_test

import (
	"testing"

	"github.com/fwojciec/anydocs"
	"github.com/fwojciec/anydocs/lru"
	"github.com/fwojciec/anydocs/mock"
	"github.com/stretchr/testify/assert"
)

// countingService returns a mock that reports gen as its generation and
// counts Search calls.
func countingService(gen *uint64, calls *int) *mock.IndexService {
	return &mock.IndexService{
		StatsFn: func() anydocs.IndexStats {
			return anydocs.IndexStats{Generation: *gen}
		},
		SearchFn: func(query string, _ anydocs.SearchOptions) []*anydocs.Section {
			*calls++
			return []*anydocs.Section{{ID: query}}
		},
	}
}

func TestCachingIndexService_Search(t *testing.T) {
	t.Parallel()

	t.Run("serves repeated searches from cache", func(t *testing.T) {
		t.Parallel()

		gen, calls := uint64(1), 0
		svc := lru.NewCachingIndexService(countingService(&gen, &calls), 8)

		first := svc.Search("hooks", anydocs.SearchOptions{})
		second := svc.Search("hooks", anydocs.SearchOptions{})

		assert.Equal(t, 1, calls)
		assert.Equal(t, first, second)
		assert.Equal(t, 1, svc.Len())
	})

	t.Run("treats default and explicit options alike", func(t *testing.T) {
		t.Parallel()

		gen, calls := uint64(1), 0
		svc := lru.NewCachingIndexService(countingService(&gen, &calls), 8)

		svc.Search("hooks", anydocs.SearchOptions{})
		svc.Search("hooks", anydocs.SearchOptions{MaxResults: anydocs.DefaultMaxResults, SearchIn: anydocs.SearchAll})

		assert.Equal(t, 1, calls)
	})

	t.Run("keys on options", func(t *testing.T) {
		t.Parallel()

		gen, calls := uint64(1), 0
		svc := lru.NewCachingIndexService(countingService(&gen, &calls), 8)

		svc.Search("hooks", anydocs.SearchOptions{})
		svc.Search("hooks", anydocs.SearchOptions{FileFilter: "api"})
		svc.Search("hooks", anydocs.SearchOptions{SearchIn: anydocs.SearchTitle})

		assert.Equal(t, 3, calls)
	})

	t.Run("misses after a new generation is published", func(t *testing.T) {
		t.Parallel()

		gen, calls := uint64(1), 0
		svc := lru.NewCachingIndexService(countingService(&gen, &calls), 8)

		svc.Search("hooks", anydocs.SearchOptions{})
		gen = 2
		svc.Search("hooks", anydocs.SearchOptions{})

		assert.Equal(t, 2, calls)
	})

	t.Run("bypasses the cache when no index is built", func(t *testing.T) {
		t.Parallel()

		gen, calls := uint64(0), 0
		svc := lru.NewCachingIndexService(countingService(&gen, &calls), 8)

		svc.Search("hooks", anydocs.SearchOptions{})
		svc.Search("hooks", anydocs.SearchOptions{})

		assert.Equal(t, 2, calls)
		assert.Zero(t, svc.Len())
	})

	t.Run("evicts least recently used searches", func(t *testing.T) {
		t.Parallel()

		gen, calls := uint64(1), 0
		svc := lru.NewCachingIndexService(countingService(&gen, &calls), 2)

		svc.Search("a-query", anydocs.SearchOptions{})
		svc.Search("b-query", anydocs.SearchOptions{})
		svc.Search("c-query", anydocs.SearchOptions{})
		svc.Search("a-query", anydocs.SearchOptions{})

		assert.Equal(t, 4, calls)
		assert.Equal(t, 2, svc.Len())

		svc.Purge()
		assert.Zero(t, svc.Len())
	})
}
