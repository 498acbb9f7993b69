package containers

import (
	"context"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// BunContainerRepository persists containers through go-repository-bun with
// an optional read-through cache.
type BunContainerRepository struct {
	repo repository.Repository[*Container]
}

func NewBunContainerRepository(db *bun.DB) *BunContainerRepository {
	return NewBunContainerRepositoryWithCache(db, nil, nil)
}

func NewBunContainerRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunContainerRepository {
	base := NewContainerRepository(db)
	wrapped := wrapWithCache(base, cacheService, keySerializer)
	return &BunContainerRepository{repo: wrapped}
}

func (r *BunContainerRepository) Create(ctx context.Context, record *Container) (*Container, error) {
	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("container repository error: %w", err)
	}
	return created, nil
}

func (r *BunContainerRepository) GetByID(ctx context.Context, id uuid.UUID) (*Container, error) {
	result, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "container", id.String())
	}
	return result, nil
}

func (r *BunContainerRepository) GetByCode(ctx context.Context, code string) (*Container, error) {
	result, err := r.repo.GetByIdentifier(ctx, code)
	if err != nil {
		return nil, mapRepositoryError(err, "container", code)
	}
	return result, nil
}

func (r *BunContainerRepository) List(ctx context.Context) ([]*Container, error) {
	records, _, err := r.repo.List(ctx)
	return records, err
}

func (r *BunContainerRepository) Update(ctx context.Context, record *Container) (*Container, error) {
	updated, err := r.repo.Update(ctx, record)
	if err != nil {
		return nil, mapRepositoryError(err, "container", record.ID.String())
	}
	return updated, nil
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
