package reports

import (
	"context"
	"fmt"

	"github.com/goliatone/go-wasteops/internal/collections"
	"github.com/goliatone/go-wasteops/internal/containers"
	"github.com/goliatone/go-wasteops/internal/domain"
	"github.com/goliatone/go-wasteops/internal/logging"
	"github.com/goliatone/go-wasteops/pkg/interfaces"
)

const (
	// CriticalFillLevel and WarningFillLevel bound the fullness buckets.
	CriticalFillLevel = 80
	WarningFillLevel  = 60

	// CriticalAdvisoryPercent and WarningAdvisoryPercent trip the operator
	// advisory shown with the fullness report.
	CriticalAdvisoryPercent = 20.0
	WarningAdvisoryPercent  = 30.0

	// CollectionWindowDays is the reporting window for tonnage totals.
	CollectionWindowDays = 30
)

// Service renders dashboard summaries, fullness buckets and map documents.
type Service interface {
	Summary(ctx context.Context) (*Summary, error)
	Fullness(ctx context.Context, query FullnessQuery) (*FullnessReport, error)
	Map(ctx context.Context, query MapQuery) (*MapDocument, error)
}

// ContainerSource is the slice of the container service reporting needs.
type ContainerSource interface {
	List(ctx context.Context, query containers.ListQuery) ([]*containers.Container, error)
}

// ComplaintSource is the slice of the complaint service reporting needs.
type ComplaintSource interface {
	ActiveCount(ctx context.Context) (int, error)
	NewCount(ctx context.Context) (int, error)
}

// CollectionSource is the slice of the collections service reporting needs.
type CollectionSource interface {
	TotalTons(ctx context.Context, days int) (float64, error)
	WeekOverWeek(ctx context.Context) (*collections.WeekComparison, error)
}

// ServiceOption configures the service at construction time.
type ServiceOption func(*service)

// WithLogger attaches a module logger to the service.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithCollectionWindow overrides the trailing window used for tonnage totals.
func WithCollectionWindow(days int) ServiceOption {
	return func(s *service) {
		if days > 0 {
			s.collectionWindow = days
		}
	}
}

type service struct {
	containers       ContainerSource
	complaints       ComplaintSource
	collections      CollectionSource
	logger           interfaces.Logger
	collectionWindow int
}

// NewService constructs a reporting service over the domain services.
func NewService(containerSrc ContainerSource, complaintSrc ComplaintSource, collectionSrc CollectionSource, opts ...ServiceOption) Service {
	s := &service{
		containers:       containerSrc,
		complaints:       complaintSrc,
		collections:      collectionSrc,
		logger:           logging.NoOp(),
		collectionWindow: CollectionWindowDays,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Summary computes the dashboard's headline figures.
func (s *service) Summary(ctx context.Context) (*Summary, error) {
	records, err := s.containers.List(ctx, containers.ListQuery{})
	if err != nil {
		return nil, err
	}

	summary := &Summary{TotalContainers: len(records)}
	for _, rec := range records {
		if !rec.IsSmartBin() {
			continue
		}
		summary.SmartBins++
		switch rec.Status {
		case domain.StatusOpen:
			summary.OpenSmartBins++
		case domain.StatusClosed:
			summary.ClosedSmartBins++
		}
	}

	if s.collections != nil {
		total, err := s.collections.TotalTons(ctx, s.collectionWindow)
		if err != nil {
			return nil, err
		}
		summary.TotalWasteTons = total

		wow, err := s.collections.WeekOverWeek(ctx)
		if err != nil {
			return nil, err
		}
		summary.WeekOverWeek = wow
	}

	if s.complaints != nil {
		active, err := s.complaints.ActiveCount(ctx)
		if err != nil {
			return nil, err
		}
		summary.ActiveComplaints = active

		fresh, err := s.complaints.NewCount(ctx)
		if err != nil {
			return nil, err
		}
		summary.NewComplaints = fresh
	}

	return summary, nil
}

// Fullness buckets the filtered containers into critical, warning and ok
// groups and attaches the advisory message.
func (s *service) Fullness(ctx context.Context, query FullnessQuery) (*FullnessReport, error) {
	records, err := s.containers.List(ctx, containers.ListQuery{
		WasteCategory:   query.WasteCategory,
		NeighborhoodKey: query.NeighborhoodKey,
	})
	if err != nil {
		return nil, err
	}

	report := &FullnessReport{Total: len(records)}
	for _, rec := range records {
		switch {
		case rec.FillLevel >= CriticalFillLevel:
			report.Critical++
		case rec.FillLevel >= WarningFillLevel:
			report.Warning++
		default:
			report.OK++
		}
	}

	if report.Total > 0 {
		total := float64(report.Total)
		report.CriticalPercent = float64(report.Critical) / total * 100
		report.WarningPercent = float64(report.Warning) / total * 100
		report.OKPercent = float64(report.OK) / total * 100
	}
	report.Advisory = advisoryFor(report)
	return report, nil
}

// Map builds the layer document for the requested visualization.
func (s *service) Map(ctx context.Context, query MapQuery) (*MapDocument, error) {
	kind := query.Kind
	if kind == "" {
		kind = LayerPins
	}
	switch kind {
	case LayerPins, LayerHeatmap, LayerCategory, LayerFillLevel:
	default:
		return nil, ErrLayerInvalid
	}

	records, err := s.containers.List(ctx, containers.ListQuery{
		WasteCategory:   query.WasteCategory,
		NeighborhoodKey: query.NeighborhoodKey,
	})
	if err != nil {
		return nil, err
	}

	doc := &MapDocument{Viewport: DefaultViewport()}
	points := make([]Point, 0, len(records))
	for _, rec := range records {
		points = append(points, basePoint(rec))
	}

	switch kind {
	case LayerPins:
		pins := make([]Point, len(points))
		labels := make([]Point, len(points))
		for i := range points {
			pins[i] = points[i]
			pins[i].Color = pinColor
			labels[i] = points[i]
			labels[i].Color = labelColor
		}
		doc.Layers = []Layer{
			{Kind: LayerPins, Points: pins},
			{Kind: "labels", Points: labels},
		}
	case LayerHeatmap:
		for i := range points {
			points[i].Weight = float64(points[i].FillLevel)
		}
		doc.Layers = []Layer{{Kind: LayerHeatmap, Points: points}}
	case LayerCategory:
		for i := range points {
			points[i].Color = CategoryColor(points[i].WasteCategory)
		}
		doc.Layers = []Layer{{Kind: LayerCategory, Points: points}}
	case LayerFillLevel:
		for i := range points {
			points[i].Color = FillColor(points[i].FillLevel)
			points[i].Elevation = FillElevation(points[i].FillLevel)
		}
		doc.Layers = []Layer{{Kind: LayerFillLevel, Points: points}}
	}

	return doc, nil
}

func basePoint(rec *containers.Container) Point {
	return Point{
		Code:          rec.Code,
		Lat:           rec.Lat,
		Lon:           rec.Lon,
		Type:          rec.Type.Display(),
		WasteCategory: rec.WasteCategory,
		FillLevel:     rec.FillLevel,
		Status:        string(rec.Status),
	}
}

func advisoryFor(report *FullnessReport) Advisory {
	switch {
	case report.CriticalPercent > CriticalAdvisoryPercent:
		return Advisory{
			Level:   AdvisoryCritical,
			Message: fmt.Sprintf("%.1f%% of containers need immediate attention", report.CriticalPercent),
		}
	case report.WarningPercent > WarningAdvisoryPercent:
		return Advisory{
			Level:   AdvisoryWarning,
			Message: fmt.Sprintf("%.1f%% of containers filling up quickly", report.WarningPercent),
		}
	default:
		return Advisory{
			Level:   AdvisoryOK,
			Message: "Most containers have adequate capacity",
		}
	}
}
