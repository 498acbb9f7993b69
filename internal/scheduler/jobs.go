package scheduler

import "github.com/google/uuid"

const (
	// JobTypeIngestRefresh re-imports the upstream container dataset.
	JobTypeIngestRefresh = "waste.ingest.refresh"
	// JobTypeContainerEmpty dispatches a crew to empty one container.
	JobTypeContainerEmpty = "waste.container.empty"
	// JobTypeComplaintAging sweeps open complaints through the aging rule.
	JobTypeComplaintAging = "waste.complaint.aging"
)

// IngestRefreshJobKey dedupes the recurring dataset refresh.
func IngestRefreshJobKey() string {
	return "ingest:refresh"
}

// ContainerEmptyJobKey dedupes emptying requests per container.
func ContainerEmptyJobKey(id uuid.UUID) string {
	return "container:" + id.String() + ":empty"
}

// ComplaintAgingJobKey dedupes the recurring complaint sweep.
func ComplaintAgingJobKey() string {
	return "complaint:aging"
}
