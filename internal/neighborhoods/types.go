package neighborhoods

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Neighborhood is a city district containers and complaints attach to.
type Neighborhood struct {
	bun.BaseModel `bun:"table:neighborhoods,alias:n"`

	ID   uuid.UUID `bun:"id,pk,type:uuid" json:"id"`
	Key  string    `bun:"key,notnull,unique" json:"key"`
	Name string    `bun:"name,notnull" json:"name"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`
}

// Stats summarizes the operational picture for one district. RecyclingRate is
// the share of containers serving a separated waste stream, 0 to 1.
type Stats struct {
	Key              string  `json:"key"`
	Name             string  `json:"name"`
	ContainerCount   int     `json:"container_count"`
	SmartBins        int     `json:"smart_bins"`
	AverageFill      float64 `json:"average_fill"`
	HighFillCount    int     `json:"high_fill_count"`
	RecyclingRate    float64 `json:"recycling_rate"`
	ComplaintCount   int     `json:"complaint_count"`
	ActiveComplaints int     `json:"active_complaints"`
}

// DefaultNames lists the districts the dashboard ships with.
func DefaultNames() []string {
	return []string{
		"Centrum",
		"Noord",
		"West",
		"Nieuw-West",
		"Zuid",
		"Oost",
		"Zuidoost",
		"Westpoort",
		"Weesp",
		"IJburg",
		"De Pijp",
		"Jordaan",
		"Oud-West",
		"Bos en Lommer",
		"Oud-Zuid",
	}
}
