package mock

import (
	"context"

	"github.com/fwojciec/anydocs"
)

// Compile-time interface verification.
var (
	_ anydocs.PageStore = (*PageStore)(nil)
	_ anydocs.Converter = (*Converter)(nil)
)

// PageStore is a mock implementation of anydocs.PageStore.
type PageStore struct {
	SaveFn   func(ctx context.Context, page *anydocs.Page) error
	CommitFn func() error
	AbortFn  func() error
}

func (s *PageStore) Save(ctx context.Context, page *anydocs.Page) error {
	return s.SaveFn(ctx, page)
}

func (s *PageStore) Commit() error {
	return s.CommitFn()
}

func (s *PageStore) Abort() error {
	return s.AbortFn()
}

// Converter is a mock implementation of anydocs.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
