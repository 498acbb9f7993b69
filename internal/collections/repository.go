package collections

import (
	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

func NewCollectionRecordRepository(db *bun.DB) repository.Repository[*CollectionRecord] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*CollectionRecord]{
		NewRecord: func() *CollectionRecord { return &CollectionRecord{} },
		GetID: func(r *CollectionRecord) uuid.UUID {
			return r.ID
		},
		SetID: func(r *CollectionRecord, id uuid.UUID) {
			r.ID = id
		},
		GetIdentifier: func() string {
			return "record_key"
		},
		GetIdentifierValue: func(r *CollectionRecord) string {
			return r.RecordKey
		},
	})
}
