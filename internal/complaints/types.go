package complaints

import (
	"time"

	"github.com/goliatone/go-wasteops/internal/domain"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Complaint records a resident-reported waste issue.
type Complaint struct {
	bun.BaseModel `bun:"table:complaints,alias:cp"`

	ID              uuid.UUID              `bun:",pk,type:uuid" json:"id"`
	NeighborhoodKey string                 `bun:"neighborhood_key,notnull" json:"neighborhood_key"`
	Neighborhood    string                 `bun:"neighborhood,notnull" json:"neighborhood"`
	Type            domain.ComplaintType   `bun:"type,notnull" json:"type"`
	Description     string                 `bun:"description,notnull" json:"description"`
	Status          domain.ComplaintStatus `bun:"status,notnull,default:'new'" json:"status"`
	ContainerCode   *string                `bun:"container_code" json:"container_code,omitempty"`
	SubmittedAt     time.Time              `bun:"submitted_at,notnull" json:"submitted_at"`
	ResolvedAt      *time.Time             `bun:"resolved_at,nullzero" json:"resolved_at,omitempty"`
	CreatedAt       time.Time              `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt       time.Time              `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// Active reports whether the complaint still requires attention.
func (c *Complaint) Active() bool {
	return c != nil && c.Status != domain.ComplaintResolved
}

// ListQuery narrows complaint listings. An empty status slice means every
// status; a zero limit returns all matches. Results are newest first.
type ListQuery struct {
	Statuses        []domain.ComplaintStatus
	NeighborhoodKey string
	Limit           int
}
