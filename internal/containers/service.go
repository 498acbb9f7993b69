package containers

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-wasteops/internal/domain"
	"github.com/goliatone/go-wasteops/internal/identity"
	"github.com/goliatone/go-wasteops/internal/logging"
	"github.com/goliatone/go-wasteops/pkg/interfaces"
	"github.com/google/uuid"
)

const (
	// DefaultHighFillThreshold marks containers that need emptying soon.
	DefaultHighFillThreshold = 80
	// DefaultHighFillLimit caps the attention list shown on the dashboard.
	DefaultHighFillLimit = 5
)

// Service exposes container fleet use-cases.
type Service interface {
	Create(ctx context.Context, req CreateContainerRequest) (*Container, error)
	Upsert(ctx context.Context, req CreateContainerRequest) (*Container, bool, error)
	Get(ctx context.Context, id uuid.UUID) (*Container, error)
	GetByCode(ctx context.Context, code string) (*Container, error)
	List(ctx context.Context, query ListQuery) ([]*Container, error)
	Search(ctx context.Context, term string) ([]*Container, error)
	HighFill(ctx context.Context, threshold, limit int) ([]*Container, error)
	UpdateFillLevel(ctx context.Context, id uuid.UUID, level int) (*Container, error)
	SetStatus(ctx context.Context, id uuid.UUID, status domain.ContainerStatus) (*Container, error)
	MarkEmptied(ctx context.Context, id uuid.UUID) (*Container, error)
}

// ContainerRepository abstracts storage operations for container entities.
type ContainerRepository interface {
	Create(ctx context.Context, record *Container) (*Container, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Container, error)
	GetByCode(ctx context.Context, code string) (*Container, error)
	List(ctx context.Context) ([]*Container, error)
	Update(ctx context.Context, record *Container) (*Container, error)
}

// CreateContainerRequest captures the information required to register a container.
type CreateContainerRequest struct {
	Code            string
	Neighborhood    string
	NeighborhoodKey string
	Lat             float64
	Lon             float64
	Type            domain.ContainerType
	WasteCategory   domain.WasteCategory
	FillLevel       int
	Status          domain.ContainerStatus
	LastEmptiedAt   *time.Time
}

// Validate enforces scalar constraints on the request.
func (r CreateContainerRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Code, validation.Required),
		validation.Field(&r.Neighborhood, validation.Required),
		validation.Field(&r.Lat, validation.Min(-90.0), validation.Max(90.0)),
		validation.Field(&r.Lon, validation.Min(-180.0), validation.Max(180.0)),
		validation.Field(&r.FillLevel, validation.Min(0), validation.Max(100)),
	)
}

// ServiceOption configures the service at construction time.
type ServiceOption func(*service)

// WithClock overrides the clock used to stamp records.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		if clock != nil {
			s.now = clock
		}
	}
}

// IDGenerator derives a container identifier from its code.
type IDGenerator func(code string) uuid.UUID

// WithIDGenerator overrides how container identifiers are derived.
func WithIDGenerator(generator IDGenerator) ServiceOption {
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

// WithHighFillDefaults overrides the threshold and limit used when HighFill
// callers pass zero values.
func WithHighFillDefaults(threshold, limit int) ServiceOption {
	return func(s *service) {
		if threshold > 0 && threshold <= 100 {
			s.highFillThreshold = threshold
		}
		if limit > 0 {
			s.highFillLimit = limit
		}
	}
}

type service struct {
	containers        ContainerRepository
	now               func() time.Time
	id                IDGenerator
	logger            interfaces.Logger
	highFillThreshold int
	highFillLimit     int
}

// NewService constructs a container service with the required dependencies.
func NewService(containers ContainerRepository, opts ...ServiceOption) Service {
	s := &service{
		containers:        containers,
		now:               time.Now,
		id:                identity.ContainerUUID,
		logger:            logging.NoOp(),
		highFillThreshold: DefaultHighFillThreshold,
		highFillLimit:     DefaultHighFillLimit,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create registers a container after validating code uniqueness and domain enums.
func (s *service) Create(ctx context.Context, req CreateContainerRequest) (*Container, error) {
	code := strings.TrimSpace(req.Code)
	if code == "" {
		return nil, ErrCodeRequired
	}
	neighborhood := strings.TrimSpace(req.Neighborhood)
	if neighborhood == "" {
		return nil, ErrNeighborhoodRequired
	}
	if _, ok := domain.ParseContainerType(string(req.Type)); !ok {
		return nil, ErrTypeInvalid
	}
	if _, ok := domain.ParseWasteCategory(string(req.WasteCategory)); !ok {
		return nil, ErrCategoryInvalid
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if existing, err := s.containers.GetByCode(ctx, code); err == nil && existing != nil {
		return nil, ErrCodeExists
	} else if err != nil {
		var notFound *NotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	status := req.Status
	if req.Type == domain.TypeSmartBin {
		if status != domain.StatusOpen && status != domain.StatusClosed {
			status = domain.StatusClosed
		}
	} else {
		status = domain.StatusNotApplicable
	}

	key := strings.TrimSpace(req.NeighborhoodKey)
	if key == "" {
		key = strings.ToLower(strings.ReplaceAll(neighborhood, " ", "-"))
	}

	now := s.now()
	record := &Container{
		ID:              s.id(code),
		Code:            code,
		Neighborhood:    neighborhood,
		NeighborhoodKey: key,
		Lat:             req.Lat,
		Lon:             req.Lon,
		Type:            req.Type,
		WasteCategory:   req.WasteCategory,
		FillLevel:       req.FillLevel,
		Status:          status,
		CapacityKG:      req.Type.Capacity(),
		LastEmptiedAt:   req.LastEmptiedAt,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	created, err := s.containers.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("container registered", "code", created.Code, "neighborhood", created.NeighborhoodKey)
	return created, nil
}

// Upsert registers the container or refreshes its mutable fields when the code
// is already known. The second return value reports whether a new record was
// created. Imports lean on this to stay idempotent across refreshes.
func (s *service) Upsert(ctx context.Context, req CreateContainerRequest) (*Container, bool, error) {
	code := strings.TrimSpace(req.Code)
	if code == "" {
		return nil, false, ErrCodeRequired
	}

	existing, err := s.containers.GetByCode(ctx, code)
	if err != nil {
		var notFound *NotFoundError
		if !errors.As(err, &notFound) {
			return nil, false, err
		}
		created, err := s.Create(ctx, req)
		if err != nil {
			return nil, false, err
		}
		return created, true, nil
	}

	if _, ok := domain.ParseContainerType(string(req.Type)); !ok {
		return nil, false, ErrTypeInvalid
	}
	if _, ok := domain.ParseWasteCategory(string(req.WasteCategory)); !ok {
		return nil, false, ErrCategoryInvalid
	}
	if err := req.Validate(); err != nil {
		return nil, false, err
	}

	status := req.Status
	if req.Type == domain.TypeSmartBin {
		if status != domain.StatusOpen && status != domain.StatusClosed {
			status = domain.StatusClosed
		}
	} else {
		status = domain.StatusNotApplicable
	}

	neighborhood := strings.TrimSpace(req.Neighborhood)
	if neighborhood != "" {
		existing.Neighborhood = neighborhood
		key := strings.TrimSpace(req.NeighborhoodKey)
		if key == "" {
			key = strings.ToLower(strings.ReplaceAll(neighborhood, " ", "-"))
		}
		existing.NeighborhoodKey = key
	}
	existing.Lat = req.Lat
	existing.Lon = req.Lon
	existing.Type = req.Type
	existing.WasteCategory = req.WasteCategory
	existing.FillLevel = req.FillLevel
	existing.Status = status
	existing.CapacityKG = req.Type.Capacity()
	if req.LastEmptiedAt != nil {
		existing.LastEmptiedAt = req.LastEmptiedAt
	}
	existing.UpdatedAt = s.now()

	updated, err := s.containers.Update(ctx, existing)
	if err != nil {
		return nil, false, err
	}
	return updated, false, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*Container, error) {
	if id == uuid.Nil {
		return nil, ErrIDRequired
	}
	return s.containers.GetByID(ctx, id)
}

func (s *service) GetByCode(ctx context.Context, code string) (*Container, error) {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return nil, ErrCodeRequired
	}
	return s.containers.GetByCode(ctx, trimmed)
}

// List applies the query's category/neighborhood filters and sort order.
func (s *service) List(ctx context.Context, query ListQuery) ([]*Container, error) {
	records, err := s.containers.List(ctx)
	if err != nil {
		return nil, err
	}

	filtered := records[:0:0]
	for _, rec := range records {
		if rec.DeletedAt != nil {
			continue
		}
		if query.WasteCategory != "" && rec.WasteCategory != query.WasteCategory {
			continue
		}
		if query.NeighborhoodKey != "" && rec.NeighborhoodKey != query.NeighborhoodKey {
			continue
		}
		filtered = append(filtered, rec)
	}

	sortContainers(filtered, query.Sort)

	if query.Limit > 0 && len(filtered) > query.Limit {
		filtered = filtered[:query.Limit]
	}
	return filtered, nil
}

// Search matches the term against container codes and neighborhood names,
// case-insensitively.
func (s *service) Search(ctx context.Context, term string) ([]*Container, error) {
	needle := strings.ToLower(strings.TrimSpace(term))
	records, err := s.List(ctx, ListQuery{})
	if err != nil {
		return nil, err
	}
	if needle == "" {
		return records, nil
	}

	matched := records[:0:0]
	for _, rec := range records {
		if strings.Contains(strings.ToLower(rec.Code), needle) ||
			strings.Contains(strings.ToLower(rec.Neighborhood), needle) {
			matched = append(matched, rec)
		}
	}
	return matched, nil
}

// HighFill returns the fullest containers above the threshold. Zero arguments
// select the configured dashboard defaults.
func (s *service) HighFill(ctx context.Context, threshold, limit int) ([]*Container, error) {
	if threshold <= 0 {
		threshold = s.highFillThreshold
	}
	if limit <= 0 {
		limit = s.highFillLimit
	}

	records, err := s.List(ctx, ListQuery{Sort: SortFillLevel})
	if err != nil {
		return nil, err
	}

	out := records[:0:0]
	for _, rec := range records {
		if rec.FillLevel > threshold {
			out = append(out, rec)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (s *service) UpdateFillLevel(ctx context.Context, id uuid.UUID, level int) (*Container, error) {
	if level < 0 || level > 100 {
		return nil, ErrFillLevelOutOfRange
	}
	record, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	record.FillLevel = level
	record.UpdatedAt = s.now()
	return s.containers.Update(ctx, record)
}

// SetStatus updates the lid state. Underground containers have no sensor, so
// only smart bins accept open/closed.
func (s *service) SetStatus(ctx context.Context, id uuid.UUID, status domain.ContainerStatus) (*Container, error) {
	if status != domain.StatusOpen && status != domain.StatusClosed {
		return nil, ErrStatusInvalid
	}
	record, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !record.IsSmartBin() {
		return nil, ErrStatusNotSupported
	}
	record.Status = status
	record.UpdatedAt = s.now()
	return s.containers.Update(ctx, record)
}

// MarkEmptied resets the fill level and stamps the emptied time.
func (s *service) MarkEmptied(ctx context.Context, id uuid.UUID) (*Container, error) {
	record, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	now := s.now()
	record.FillLevel = 0
	record.LastEmptiedAt = &now
	record.UpdatedAt = now
	updated, err := s.containers.Update(ctx, record)
	if err != nil {
		return nil, err
	}
	s.logger.Info("container emptied", "code", updated.Code)
	return updated, nil
}

func sortContainers(records []*Container, order SortOrder) {
	switch order {
	case SortFillLevel:
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].FillLevel > records[j].FillLevel
		})
	case SortNeighborhood:
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].Neighborhood < records[j].Neighborhood
		})
	case SortWasteCategory:
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].WasteCategory < records[j].WasteCategory
		})
	case SortLastEmptied:
		sort.SliceStable(records, func(i, j int) bool {
			return emptyTime(records[i]).Before(emptyTime(records[j]))
		})
	}
}

func emptyTime(c *Container) time.Time {
	if c.LastEmptiedAt == nil {
		return time.Time{}
	}
	return *c.LastEmptiedAt
}
