package mock

import (
	"context"

	"github.com/fwojciec/anydocs"
)

var _ anydocs.DocSetService = (*DocSetService)(nil)

// DocSetService is a mock implementation of anydocs.DocSetService.
type DocSetService struct {
	CreateDocSetFn   func(ctx context.Context, set *anydocs.DocSet) error
	FindDocSetByIDFn func(ctx context.Context, id string) (*anydocs.DocSet, error)
	FindDocSetsFn    func(ctx context.Context, filter anydocs.DocSetFilter) ([]*anydocs.DocSet, error)
	UpdateDocSetFn   func(ctx context.Context, id string, upd anydocs.DocSetUpdate) (*anydocs.DocSet, error)
	DeleteDocSetFn   func(ctx context.Context, id string) error
}

func (s *DocSetService) CreateDocSet(ctx context.Context, set *anydocs.DocSet) error {
	return s.CreateDocSetFn(ctx, set)
}

func (s *DocSetService) FindDocSetByID(ctx context.Context, id string) (*anydocs.DocSet, error) {
	return s.FindDocSetByIDFn(ctx, id)
}

func (s *DocSetService) FindDocSets(ctx context.Context, filter anydocs.DocSetFilter) ([]*anydocs.DocSet, error) {
	return s.FindDocSetsFn(ctx, filter)
}

func (s *DocSetService) UpdateDocSet(ctx context.Context, id string, upd anydocs.DocSetUpdate) (*anydocs.DocSet, error) {
	return s.UpdateDocSetFn(ctx, id, upd)
}

func (s *DocSetService) DeleteDocSet(ctx context.Context, id string) error {
	return s.DeleteDocSetFn(ctx, id)
}
