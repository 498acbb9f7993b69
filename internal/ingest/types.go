package ingest

import "time"

// ContainerPayload is one container row in the upstream dataset.
type ContainerPayload struct {
	ID            string  `json:"id"`
	Neighborhood  string  `json:"neighborhood"`
	Lat           float64 `json:"lat"`
	Lon           float64 `json:"lon"`
	Type          string  `json:"type"`
	WasteCategory string  `json:"waste_category"`
	FillLevel     int     `json:"fill_level"`
	Status        string  `json:"status"`
	LastEmptied   string  `json:"last_emptied,omitempty"`
	CapacityKG    int     `json:"capacity_kg,omitempty"`
}

// Dataset is the document shape the upstream endpoint returns.
type Dataset struct {
	Containers []ContainerPayload `json:"containers"`
}

// Result reports what a refresh run did.
type Result struct {
	FromSource   bool      `json:"from_source"`
	Containers   int       `json:"containers"`
	Created      int       `json:"created"`
	Updated      int       `json:"updated"`
	Skipped      int       `json:"skipped"`
	SnapshotPath string    `json:"snapshot_path"`
	RefreshedAt  time.Time `json:"refreshed_at"`
}

// Status describes the local snapshot without touching the upstream source.
type Status struct {
	SnapshotExists bool      `json:"snapshot_exists"`
	SnapshotPath   string    `json:"snapshot_path"`
	SnapshotAt     time.Time `json:"snapshot_at,omitempty"`
	Containers     int       `json:"containers"`
	Stale          bool      `json:"stale"`
}
