package collections

import (
	"fmt"
	"time"

	"github.com/goliatone/go-wasteops/internal/domain"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// CollectionRecord stores the tonnage collected for one waste category on one
// calendar day. Records are keyed by day and category so re-imports overwrite
// instead of duplicating.
type CollectionRecord struct {
	bun.BaseModel `bun:"table:collection_records,alias:cr"`

	ID        uuid.UUID            `bun:"id,pk,type:uuid" json:"id"`
	RecordKey string               `bun:"record_key,notnull,unique" json:"record_key"`
	Date      time.Time            `bun:"date,notnull" json:"date"`
	Category  domain.WasteCategory `bun:"category,notnull" json:"category"`
	Tons      float64              `bun:"tons,notnull" json:"tons"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`
}

// RecordKey builds the natural key for a day and category pair.
func RecordKey(date time.Time, category domain.WasteCategory) string {
	return fmt.Sprintf("%s:%s", date.Format(time.DateOnly), category)
}

// DailyTotal aggregates all categories collected on one day.
type DailyTotal struct {
	Date time.Time `json:"date"`
	Tons float64   `json:"tons"`
}

// CategorySeries holds the per-day tonnage for one category over a window,
// ordered oldest first. The chart layer renders one line per series.
type CategorySeries struct {
	Category domain.WasteCategory `json:"category"`
	Points   []DailyTotal         `json:"points"`
}

// WeekComparison compares the most recent seven days against the seven days
// before them.
type WeekComparison struct {
	CurrentTons  float64 `json:"current_tons"`
	PreviousTons float64 `json:"previous_tons"`
	DeltaPercent float64 `json:"delta_percent"`
}
