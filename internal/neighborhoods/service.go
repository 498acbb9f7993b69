package neighborhoods

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	slug "github.com/goliatone/go-slug"
	"github.com/goliatone/go-wasteops/internal/complaints"
	"github.com/goliatone/go-wasteops/internal/containers"
	"github.com/goliatone/go-wasteops/internal/domain"
	"github.com/goliatone/go-wasteops/internal/identity"
	"github.com/goliatone/go-wasteops/internal/logging"
	"github.com/goliatone/go-wasteops/pkg/interfaces"
	"github.com/google/uuid"
)

// Service exposes district reference data and per-district rollups.
type Service interface {
	EnsureDefaults(ctx context.Context) (int, error)
	Register(ctx context.Context, name string) (*Neighborhood, error)
	Get(ctx context.Context, key string) (*Neighborhood, error)
	List(ctx context.Context) ([]*Neighborhood, error)
	Stats(ctx context.Context) ([]Stats, error)
	TopByContainers(ctx context.Context, limit int) ([]Stats, error)
}

// NeighborhoodRepository abstracts storage for district records.
type NeighborhoodRepository interface {
	Create(ctx context.Context, record *Neighborhood) (*Neighborhood, error)
	GetByKey(ctx context.Context, key string) (*Neighborhood, error)
	List(ctx context.Context) ([]*Neighborhood, error)
}

// ContainerSource is the slice of the container service the rollup needs.
type ContainerSource interface {
	List(ctx context.Context, query containers.ListQuery) ([]*containers.Container, error)
}

// ComplaintSource is the slice of the complaint service the rollup needs.
type ComplaintSource interface {
	List(ctx context.Context, query complaints.ListQuery) ([]*complaints.Complaint, error)
}

// ServiceOption configures the service at construction time.
type ServiceOption func(*service)

// WithClock overrides the clock used for record timestamps.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		if clock != nil {
			s.now = clock
		}
	}
}

// WithIDGenerator overrides the identifier generator.
func WithIDGenerator(generator func(key string) uuid.UUID) ServiceOption {
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

type service struct {
	neighborhoods NeighborhoodRepository
	containerSrc  ContainerSource
	complaintSrc  ComplaintSource
	now           func() time.Time
	id            func(key string) uuid.UUID
	logger        interfaces.Logger
}

// NewService constructs a neighborhood service. The container and complaint
// sources feed the Stats rollup and may be nil when rollups are not needed.
func NewService(repo NeighborhoodRepository, containerSrc ContainerSource, complaintSrc ComplaintSource, opts ...ServiceOption) Service {
	s := &service{
		neighborhoods: repo,
		containerSrc:  containerSrc,
		complaintSrc:  complaintSrc,
		now:           time.Now,
		id:            identity.NeighborhoodUUID,
		logger:        logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// EnsureDefaults registers any of the stock districts that are missing and
// returns how many were created.
func (s *service) EnsureDefaults(ctx context.Context) (int, error) {
	created := 0
	for _, name := range DefaultNames() {
		key := NormalizeKey(name)
		if _, err := s.neighborhoods.GetByKey(ctx, key); err == nil {
			continue
		} else {
			var notFound *NotFoundError
			if !errors.As(err, &notFound) {
				return created, err
			}
		}
		if _, err := s.Register(ctx, name); err != nil {
			return created, err
		}
		created++
	}
	if created > 0 {
		s.logger.Info("registered default neighborhoods", "created", created)
	}
	return created, nil
}

// Register stores a district under its normalized key.
func (s *service) Register(ctx context.Context, name string) (*Neighborhood, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, ErrNameRequired
	}
	key := NormalizeKey(trimmed)
	if key == "" {
		return nil, ErrKeyInvalid
	}

	record := &Neighborhood{
		ID:        s.id(key),
		Key:       key,
		Name:      trimmed,
		CreatedAt: s.now(),
		UpdatedAt: s.now(),
	}
	return s.neighborhoods.Create(ctx, record)
}

func (s *service) Get(ctx context.Context, key string) (*Neighborhood, error) {
	return s.neighborhoods.GetByKey(ctx, NormalizeKey(key))
}

func (s *service) List(ctx context.Context) ([]*Neighborhood, error) {
	return s.neighborhoods.List(ctx)
}

// Stats rolls container fill and open complaints up per district. Districts
// without containers still appear with zeroed figures.
func (s *service) Stats(ctx context.Context) ([]Stats, error) {
	districts, err := s.neighborhoods.List(ctx)
	if err != nil {
		return nil, err
	}

	stats := make([]Stats, 0, len(districts))
	index := map[string]int{}
	for _, district := range districts {
		index[district.Key] = len(stats)
		stats = append(stats, Stats{Key: district.Key, Name: district.Name})
	}

	if s.containerSrc != nil {
		records, err := s.containerSrc.List(ctx, containers.ListQuery{})
		if err != nil {
			return nil, err
		}
		fillSums := map[string]float64{}
		separated := map[string]int{}
		for _, rec := range records {
			pos, ok := index[rec.NeighborhoodKey]
			if !ok {
				continue
			}
			stats[pos].ContainerCount++
			fillSums[rec.NeighborhoodKey] += float64(rec.FillLevel)
			if rec.IsSmartBin() {
				stats[pos].SmartBins++
			}
			if rec.WasteCategory != domain.CategoryGeneral {
				separated[rec.NeighborhoodKey]++
			}
			if rec.FillLevel >= containers.DefaultHighFillThreshold {
				stats[pos].HighFillCount++
			}
		}
		for key, pos := range index {
			if stats[pos].ContainerCount > 0 {
				count := float64(stats[pos].ContainerCount)
				stats[pos].AverageFill = fillSums[key] / count
				stats[pos].RecyclingRate = float64(separated[key]) / count
			}
		}
	}

	if s.complaintSrc != nil {
		records, err := s.complaintSrc.List(ctx, complaints.ListQuery{})
		if err != nil {
			return nil, err
		}
		for _, rec := range records {
			pos, ok := index[rec.NeighborhoodKey]
			if !ok {
				continue
			}
			stats[pos].ComplaintCount++
			if rec.Active() {
				stats[pos].ActiveComplaints++
			}
		}
	}

	return stats, nil
}

// TopByContainers returns the districts with the most containers, busiest
// first. Zero or negative limits return the full ranking.
func (s *service) TopByContainers(ctx context.Context, limit int) ([]Stats, error) {
	stats, err := s.Stats(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].ContainerCount > stats[j].ContainerCount
	})
	if limit > 0 && len(stats) > limit {
		stats = stats[:limit]
	}
	return stats, nil
}

// NormalizeKey turns a district name into its canonical lookup key.
func NormalizeKey(name string) string {
	normalized, err := slug.Normalize(name)
	if err != nil || normalized == "" {
		normalized = strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), " ", "-"))
	}
	return normalized
}
