package containers

import (
	"time"

	"github.com/goliatone/go-wasteops/internal/domain"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Container is the canonical record for a deployed waste container.
type Container struct {
	bun.BaseModel `bun:"table:containers,alias:c"`

	ID              uuid.UUID              `bun:",pk,type:uuid" json:"id"`
	Code            string                 `bun:"code,notnull" json:"code"`
	NeighborhoodKey string                 `bun:"neighborhood_key,notnull" json:"neighborhood_key"`
	Neighborhood    string                 `bun:"neighborhood,notnull" json:"neighborhood"`
	Lat             float64                `bun:"lat,notnull" json:"lat"`
	Lon             float64                `bun:"lon,notnull" json:"lon"`
	Type            domain.ContainerType   `bun:"type,notnull" json:"type"`
	WasteCategory   domain.WasteCategory   `bun:"waste_category,notnull" json:"waste_category"`
	FillLevel       int                    `bun:"fill_level,notnull,default:0" json:"fill_level"`
	Status          domain.ContainerStatus `bun:"status,notnull,default:'n/a'" json:"status"`
	CapacityKG      int                    `bun:"capacity_kg,notnull" json:"capacity_kg"`
	LastEmptiedAt   *time.Time             `bun:"last_emptied_at,nullzero" json:"last_emptied_at,omitempty"`
	DeletedAt       *time.Time             `bun:"deleted_at,nullzero" json:"deleted_at,omitempty"`
	CreatedAt       time.Time              `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt       time.Time              `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// IsSmartBin reports whether the container carries a lid sensor.
func (c *Container) IsSmartBin() bool {
	return c != nil && c.Type == domain.TypeSmartBin
}

// SortOrder selects the ordering applied to container listings.
type SortOrder string

const (
	// SortFillLevel orders by fill level, fullest first.
	SortFillLevel SortOrder = "fill_level"
	// SortNeighborhood orders alphabetically by neighborhood name.
	SortNeighborhood SortOrder = "neighborhood"
	// SortWasteCategory orders alphabetically by waste stream.
	SortWasteCategory SortOrder = "waste_category"
	// SortLastEmptied orders by last emptied time, oldest first.
	SortLastEmptied SortOrder = "last_emptied"
)

// ListQuery narrows and orders container listings. Zero values mean
// "all categories" / "all neighborhoods" / insertion order, mirroring the
// dashboard's filter sentinels.
type ListQuery struct {
	WasteCategory   domain.WasteCategory
	NeighborhoodKey string
	Sort            SortOrder
	Limit           int
}
