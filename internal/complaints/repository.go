package complaints

import (
	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

func NewComplaintRepository(db *bun.DB) repository.Repository[*Complaint] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Complaint]{
		NewRecord: func() *Complaint { return &Complaint{} },
		GetID: func(c *Complaint) uuid.UUID {
			return c.ID
		},
		SetID: func(c *Complaint, id uuid.UUID) {
			c.ID = id
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(c *Complaint) string {
			if c == nil {
				return ""
			}
			return c.ID.String()
		},
	})
}
