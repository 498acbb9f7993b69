package containers

import (
	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

func NewContainerRepository(db *bun.DB) repository.Repository[*Container] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Container]{
		NewRecord: func() *Container { return &Container{} },
		GetID: func(c *Container) uuid.UUID {
			return c.ID
		},
		SetID: func(c *Container, id uuid.UUID) {
			c.ID = id
		},
		GetIdentifier: func() string {
			return "code"
		},
		GetIdentifierValue: func(c *Container) string {
			return c.Code
		},
	})
}
