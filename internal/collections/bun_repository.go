package collections

import (
	"context"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/uptrace/bun"
)

// BunCollectionRecordRepository persists collection records through
// go-repository-bun with an optional read-through cache.
type BunCollectionRecordRepository struct {
	repo repository.Repository[*CollectionRecord]
}

func NewBunCollectionRecordRepository(db *bun.DB) *BunCollectionRecordRepository {
	return NewBunCollectionRecordRepositoryWithCache(db, nil, nil)
}

func NewBunCollectionRecordRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunCollectionRecordRepository {
	base := NewCollectionRecordRepository(db)
	wrapped := wrapWithCache(base, cacheService, keySerializer)
	return &BunCollectionRecordRepository{repo: wrapped}
}

func (r *BunCollectionRecordRepository) Upsert(ctx context.Context, record *CollectionRecord) (*CollectionRecord, error) {
	existing, err := r.repo.GetByIdentifier(ctx, record.RecordKey)
	if err == nil {
		existing.Tons = record.Tons
		existing.UpdatedAt = record.UpdatedAt
		return r.repo.Update(ctx, existing)
	}
	if !goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return nil, fmt.Errorf("collection record repository error: %w", err)
	}
	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("collection record repository error: %w", err)
	}
	return created, nil
}

func (r *BunCollectionRecordRepository) GetByKey(ctx context.Context, key string) (*CollectionRecord, error) {
	result, err := r.repo.GetByIdentifier(ctx, key)
	if err != nil {
		return nil, mapRepositoryError(err, "collection record", key)
	}
	return result, nil
}

func (r *BunCollectionRecordRepository) List(ctx context.Context) ([]*CollectionRecord, error) {
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
