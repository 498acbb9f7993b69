package neighborhoods

import (
	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

func NewNeighborhoodRepository(db *bun.DB) repository.Repository[*Neighborhood] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Neighborhood]{
		NewRecord: func() *Neighborhood { return &Neighborhood{} },
		GetID: func(n *Neighborhood) uuid.UUID {
			return n.ID
		},
		SetID: func(n *Neighborhood, id uuid.UUID) {
			n.ID = id
		},
		GetIdentifier: func() string {
			return "key"
		},
		GetIdentifierValue: func(n *Neighborhood) string {
			return n.Key
		},
	})
}
