package neighborhoods

import (
	"context"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/uptrace/bun"
)

// BunNeighborhoodRepository persists neighborhoods through go-repository-bun
// with an optional read-through cache.
type BunNeighborhoodRepository struct {
	repo repository.Repository[*Neighborhood]
}

func NewBunNeighborhoodRepository(db *bun.DB) *BunNeighborhoodRepository {
	return NewBunNeighborhoodRepositoryWithCache(db, nil, nil)
}

func NewBunNeighborhoodRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunNeighborhoodRepository {
	base := NewNeighborhoodRepository(db)
	wrapped := wrapWithCache(base, cacheService, keySerializer)
	return &BunNeighborhoodRepository{repo: wrapped}
}

func (r *BunNeighborhoodRepository) Create(ctx context.Context, record *Neighborhood) (*Neighborhood, error) {
	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("neighborhood repository error: %w", err)
	}
	return created, nil
}

func (r *BunNeighborhoodRepository) GetByKey(ctx context.Context, key string) (*Neighborhood, error) {
	result, err := r.repo.GetByIdentifier(ctx, key)
	if err != nil {
		return nil, mapRepositoryError(err, "neighborhood", key)
	}
	return result, nil
}

func (r *BunNeighborhoodRepository) List(ctx context.Context) ([]*Neighborhood, error) {
	records, _, err := r.repo.List(ctx)
	return records, err
}

func mapRepositoryError(err error, resource, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{
			Resource: resource,
			Key:      key,
		}
	}
	return fmt.Errorf("%s repository error: %w", resource, err)
}

func wrapWithCache[T any](base repository.Repository[T], cacheService cache.CacheService, keySerializer cache.KeySerializer) repository.Repository[T] {
	if cacheService == nil || keySerializer == nil {
		return base
	}
	return repositorycache.New(base, cacheService, keySerializer)
}
