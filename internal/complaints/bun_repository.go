package complaints

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

// BunComplaintRepository persists complaints through go-repository-bun with
// an optional read-through cache.
type BunComplaintRepository struct {
	repo repository.Repository[*Complaint]
}

func NewBunComplaintRepository(db *bun.DB) *BunComplaintRepository {
	return NewBunComplaintRepositoryWithCache(db, nil, nil)
}

func NewBunComplaintRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunComplaintRepository {
	base := NewComplaintRepository(db)
	wrapped := wrapWithCache(base, cacheService, keySerializer)
	return &BunComplaintRepository{repo: wrapped}
}

func (r *BunComplaintRepository) Create(ctx context.Context, record *Complaint) (*Complaint, error) {
	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("complaint repository error: %w", err)
	}
	return created, nil
}

func (r *BunComplaintRepository) GetByID(ctx context.Context, id uuid.UUID) (*Complaint, error) {
	result, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "complaint", id.String())
	}
	return result, nil
}

func (r *BunComplaintRepository) List(ctx context.Context) ([]*Complaint, error) {
	records, _, err := r.repo.List(ctx)
	return records, err
}

func (r *BunComplaintRepository) Update(ctx context.Context, record *Complaint) (*Complaint, error) {
	updated, err := r.repo.Update(ctx, record)
	if err != nil {
		return nil, mapRepositoryError(err, "complaint", record.ID.String())
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
