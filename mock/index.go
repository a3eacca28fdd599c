package mock

import (
	"context"

	"github.com/fwojciec/anydocs"
)

// Compile-time interface verification.
var (
	_ anydocs.IndexService  = (*IndexService)(nil)
	_ anydocs.IndexBuilder  = (*IndexBuilder)(nil)
	_ anydocs.IndexSwitcher = (*IndexSwitcher)(nil)
)

// IndexService is a mock implementation of anydocs.IndexService.
type IndexService struct {
	SearchFn          func(query string, opts anydocs.SearchOptions) []*anydocs.Section
	OverviewFn        func() string
	FilesFn           func() []string
	FileTOCFn         func(file string) (string, bool)
	SectionFn         func(id string) (*anydocs.Section, bool)
	SectionsByTitleFn func(title, file string) []*anydocs.Section
	StatsFn           func() anydocs.IndexStats
}

func (s *IndexService) Search(query string, opts anydocs.SearchOptions) []*anydocs.Section {
	return s.SearchFn(query, opts)
}

func (s *IndexService) Overview() string {
	return s.OverviewFn()
}

func (s *IndexService) Files() []string {
	return s.FilesFn()
}

func (s *IndexService) FileTOC(file string) (string, bool) {
	return s.FileTOCFn(file)
}

func (s *IndexService) Section(id string) (*anydocs.Section, bool) {
	return s.SectionFn(id)
}

func (s *IndexService) SectionsByTitle(title, file string) []*anydocs.Section {
	return s.SectionsByTitleFn(title, file)
}

func (s *IndexService) Stats() anydocs.IndexStats {
	return s.StatsFn()
}

// IndexBuilder is a mock implementation of anydocs.IndexBuilder.
type IndexBuilder struct {
	BuildIndexFn func(ctx context.Context, dir, name string) (*anydocs.Index, error)
}

func (b *IndexBuilder) BuildIndex(ctx context.Context, dir, name string) (*anydocs.Index, error) {
	return b.BuildIndexFn(ctx, dir, name)
}

// IndexSwitcher is a mock implementation of anydocs.IndexSwitcher.
type IndexSwitcher struct {
	SwitchFn  func(ctx context.Context, dir, name string) error
	RefreshFn func(ctx context.Context) error
}

func (s *IndexSwitcher) Switch(ctx context.Context, dir, name string) error {
	return s.SwitchFn(ctx, dir, name)
}

func (s *IndexSwitcher) Refresh(ctx context.Context) error {
	return s.RefreshFn(ctx)
}
