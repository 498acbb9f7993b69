package reports

import (
	"github.com/goliatone/go-wasteops/internal/collections"
	"github.com/goliatone/go-wasteops/internal/domain"
)

// Summary is the top row of dashboard figures.
type Summary struct {
	TotalContainers  int                         `json:"total_containers"`
	SmartBins        int                         `json:"smart_bins"`
	OpenSmartBins    int                         `json:"open_smart_bins"`
	ClosedSmartBins  int                         `json:"closed_smart_bins"`
	TotalWasteTons   float64                     `json:"total_waste_tons"`
	WeekOverWeek     *collections.WeekComparison `json:"week_over_week"`
	ActiveComplaints int                         `json:"active_complaints"`
	NewComplaints    int                         `json:"new_complaints"`
}

// AdvisoryLevel grades the fullness picture.
type AdvisoryLevel string

const (
	AdvisoryCritical AdvisoryLevel = "critical"
	AdvisoryWarning  AdvisoryLevel = "warning"
	AdvisoryOK       AdvisoryLevel = "ok"
)

// Advisory is the operator-facing message attached to a fullness report.
type Advisory struct {
	Level   AdvisoryLevel `json:"level"`
	Message string        `json:"message"`
}

// FullnessReport buckets containers by fill level.
type FullnessReport struct {
	Total           int      `json:"total"`
	Critical        int      `json:"critical"`
	Warning         int      `json:"warning"`
	OK              int      `json:"ok"`
	CriticalPercent float64  `json:"critical_percent"`
	WarningPercent  float64  `json:"warning_percent"`
	OKPercent       float64  `json:"ok_percent"`
	Advisory        Advisory `json:"advisory"`
}

// FullnessQuery narrows the fullness report to one category or district.
type FullnessQuery struct {
	WasteCategory   domain.WasteCategory
	NeighborhoodKey string
}
