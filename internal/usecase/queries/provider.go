package queries

import (
	"context"

	"github.com/google/uuid"
)

type ProviderQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*ProviderView, error)
	ListActive(ctx context.Context) ([]*ProviderView, error)
}

type providerQueriesImpl struct {
	store ProviderReadStore
}

func NewProviderQueries(store ProviderReadStore) ProviderQueries {
	return &providerQueriesImpl{store: store}
}

func (q *providerQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*ProviderView, error) {
	return q.store.FindByID(ctx, id)
}

func (q *providerQueriesImpl) ListActive(ctx context.Context) ([]*ProviderView, error) {
	return q.store.ListActive(ctx)
}
