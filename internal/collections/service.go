package collections

import (
	"context"
	"sort"
	"time"

	"github.com/goliatone/go-wasteops/internal/domain"
	"github.com/goliatone/go-wasteops/internal/identity"
	"github.com/goliatone/go-wasteops/internal/logging"
	"github.com/goliatone/go-wasteops/pkg/interfaces"
	"github.com/google/uuid"
)

// DefaultTrendDays is the window the dashboard charts by default.
const DefaultTrendDays = 10

// Service exposes collection tonnage use-cases.
type Service interface {
	Record(ctx context.Context, req RecordCollectionRequest) (*CollectionRecord, error)
	TotalsByCategory(ctx context.Context, days int) (map[domain.WasteCategory]float64, error)
	Trend(ctx context.Context, days int) ([]CategorySeries, error)
	WeekOverWeek(ctx context.Context) (*WeekComparison, error)
	TotalTons(ctx context.Context, days int) (float64, error)
}

// CollectionRecordRepository abstracts storage for tonnage records.
type CollectionRecordRepository interface {
	Upsert(ctx context.Context, record *CollectionRecord) (*CollectionRecord, error)
	GetByKey(ctx context.Context, key string) (*CollectionRecord, error)
	List(ctx context.Context) ([]*CollectionRecord, error)
}

// RecordCollectionRequest registers the tonnage for one category on one day.
type RecordCollectionRequest struct {
	Date     time.Time
	Category domain.WasteCategory
	Tons     float64
}

// ServiceOption configures the service at construction time.
type ServiceOption func(*service)

// WithClock overrides the clock used to anchor trend and comparison windows.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		if clock != nil {
			s.now = clock
		}
	}
}

// WithIDGenerator overrides the identifier generator.
func WithIDGenerator(generator func(date time.Time, category domain.WasteCategory) uuid.UUID) ServiceOption {
	return func(s *service) {
		if generator != nil {
			s.id = generator
		}
	}
}

// WithLogger attaches a module logger to the service.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithTrendWindow overrides the window used when Trend callers pass zero days.
func WithTrendWindow(days int) ServiceOption {
	return func(s *service) {
		if days > 0 {
			s.trendDays = days
		}
	}
}

type service struct {
	records   CollectionRecordRepository
	now       func() time.Time
	id        func(date time.Time, category domain.WasteCategory) uuid.UUID
	logger    interfaces.Logger
	trendDays int
}

// NewService constructs a collections service with the required dependencies.
func NewService(records CollectionRecordRepository, opts ...ServiceOption) Service {
	s := &service{
		records: records,
		now:     time.Now,
		id: func(date time.Time, category domain.WasteCategory) uuid.UUID {
			return identity.CollectionRecordUUID(date.Format(time.DateOnly), string(category))
		},
		logger:    logging.NoOp(),
		trendDays: DefaultTrendDays,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Record upserts a tonnage entry. Identifiers derive from day and category so
// repeated imports of the same dataset converge on a single row.
func (s *service) Record(ctx context.Context, req RecordCollectionRequest) (*CollectionRecord, error) {
	if req.Date.IsZero() {
		return nil, ErrDateRequired
	}
	if _, ok := domain.ParseWasteCategory(string(req.Category)); !ok {
		return nil, ErrCategoryInvalid
	}
	if req.Tons < 0 {
		return nil, ErrTonsNegative
	}

	day := truncateToDay(req.Date)
	record := &CollectionRecord{
		ID:        s.id(day, req.Category),
		RecordKey: RecordKey(day, req.Category),
		Date:      day,
		Category:  req.Category,
		Tons:      req.Tons,
		CreatedAt: s.now(),
		UpdatedAt: s.now(),
	}
	stored, err := s.records.Upsert(ctx, record)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("collection recorded", "key", stored.RecordKey, "tons", stored.Tons)
	return stored, nil
}

// TotalsByCategory sums tonnage per category over the trailing window. A zero
// window covers all recorded history.
func (s *service) TotalsByCategory(ctx context.Context, days int) (map[domain.WasteCategory]float64, error) {
	records, err := s.windowed(ctx, days)
	if err != nil {
		return nil, err
	}
	totals := map[domain.WasteCategory]float64{}
	for _, rec := range records {
		totals[rec.Category] += rec.Tons
	}
	return totals, nil
}

// Trend returns one ordered series per category covering the trailing window,
// oldest day first. Zero days selects the configured window.
func (s *service) Trend(ctx context.Context, days int) ([]CategorySeries, error) {
	if days == 0 {
		days = s.trendDays
	}
	records, err := s.windowed(ctx, days)
	if err != nil {
		return nil, err
	}

	byCategory := map[domain.WasteCategory][]DailyTotal{}
	for _, rec := range records {
		byCategory[rec.Category] = append(byCategory[rec.Category], DailyTotal{
			Date: rec.Date,
			Tons: rec.Tons,
		})
	}

	series := make([]CategorySeries, 0, len(byCategory))
	for _, category := range domain.WasteCategories() {
		points, ok := byCategory[category]
		if !ok {
			continue
		}
		sort.Slice(points, func(i, j int) bool {
			return points[i].Date.Before(points[j].Date)
		})
		series = append(series, CategorySeries{Category: category, Points: points})
	}
	return series, nil
}

// WeekOverWeek compares the trailing seven days against the seven days before
// them. The delta is a percentage of the previous week and stays zero when the
// previous week has no data.
func (s *service) WeekOverWeek(ctx context.Context) (*WeekComparison, error) {
	records, err := s.records.List(ctx)
	if err != nil {
		return nil, err
	}

	today := truncateToDay(s.now())
	currentStart := today.AddDate(0, 0, -6)
	previousStart := today.AddDate(0, 0, -13)

	comparison := &WeekComparison{}
	for _, rec := range records {
		day := truncateToDay(rec.Date)
		switch {
		case !day.Before(currentStart) && !day.After(today):
			comparison.CurrentTons += rec.Tons
		case !day.Before(previousStart) && day.Before(currentStart):
			comparison.PreviousTons += rec.Tons
		}
	}
	if comparison.PreviousTons > 0 {
		comparison.DeltaPercent = (comparison.CurrentTons - comparison.PreviousTons) / comparison.PreviousTons * 100
	}
	return comparison, nil
}

// TotalTons sums all tonnage over the trailing window.
func (s *service) TotalTons(ctx context.Context, days int) (float64, error) {
	records, err := s.windowed(ctx, days)
	if err != nil {
		return 0, err
	}
	total := 0.0
	for _, rec := range records {
		total += rec.Tons
	}
	return total, nil
}

func (s *service) windowed(ctx context.Context, days int) ([]*CollectionRecord, error) {
	if days < 0 {
		return nil, ErrWindowInvalid
	}
	records, err := s.records.List(ctx)
	if err != nil {
		return nil, err
	}
	if days == 0 {
		return records, nil
	}

	cutoff := truncateToDay(s.now()).AddDate(0, 0, -(days - 1))
	filtered := records[:0:0]
	for _, rec := range records {
		if !truncateToDay(rec.Date).Before(cutoff) {
			filtered = append(filtered, rec)
		}
	}
	return filtered, nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
