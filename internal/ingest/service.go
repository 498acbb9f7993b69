package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/goliatone/go-wasteops/internal/containers"
	"github.com/goliatone/go-wasteops/internal/domain"
	"github.com/goliatone/go-wasteops/internal/logging"
	"github.com/goliatone/go-wasteops/internal/validation"
	"github.com/goliatone/go-wasteops/pkg/interfaces"
)

// DefaultSnapshotTTL is how long a snapshot counts as fresh. Refreshes inside
// the window reuse the snapshot unless forced.
const DefaultSnapshotTTL = 24 * time.Hour

// Service pulls the upstream container dataset into local storage.
type Service interface {
	Refresh(ctx context.Context, opts RefreshOptions) (*Result, error)
	Status(ctx context.Context) (*Status, error)
}

// ContainerImporter is the slice of the container service an import needs.
type ContainerImporter interface {
	Upsert(ctx context.Context, req containers.CreateContainerRequest) (*containers.Container, bool, error)
}

// RefreshOptions tune a single refresh run.
type RefreshOptions struct {
	// Force bypasses the snapshot freshness check and always hits the source.
	Force bool
}

// ServiceOption configures the service at construction time.
type ServiceOption func(*service)

// WithClock overrides the clock used for freshness checks.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		if clock != nil {
			s.now = clock
		}
	}
}

// WithSnapshotTTL overrides the freshness window.
func WithSnapshotTTL(ttl time.Duration) ServiceOption {
	return func(s *service) {
		if ttl > 0 {
			s.ttl = ttl
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
	fetcher  Fetcher
	snapshot *SnapshotStore
	importer ContainerImporter
	ttl      time.Duration
	now      func() time.Time
	logger   interfaces.Logger
}

// NewService wires a fetcher, a snapshot store and the container importer.
func NewService(fetcher Fetcher, snapshot *SnapshotStore, importer ContainerImporter, opts ...ServiceOption) Service {
	s := &service{
		fetcher:  fetcher,
		snapshot: snapshot,
		importer: importer,
		ttl:      DefaultSnapshotTTL,
		now:      time.Now,
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Refresh imports the dataset. A fresh snapshot short-circuits the upstream
// fetch unless the caller forces one; a failed fetch falls back to whatever
// snapshot exists.
func (s *service) Refresh(ctx context.Context, opts RefreshOptions) (*Result, error) {
	logger := logging.WithIngestContext(s.logger, "", s.snapshot.Path(), "refresh")

	if !opts.Force {
		if modTime, ok := s.snapshot.Stat(); ok && s.now().Sub(modTime) < s.ttl {
			data, _, err := s.snapshot.Load()
			if err == nil {
				logger.Info("snapshot is fresh, importing locally", "snapshot_age", s.now().Sub(modTime).String())
				return s.importPayload(ctx, data, false)
			}
		}
	}

	data, err := s.fetcher.Fetch(ctx)
	if err != nil {
		logger.Warn("upstream fetch failed, trying snapshot", "error", err)
		fallback, _, loadErr := s.snapshot.Load()
		if loadErr != nil {
			return nil, err
		}
		return s.importPayload(ctx, fallback, false)
	}

	result, err := s.importPayload(ctx, data, true)
	if err != nil {
		return nil, err
	}
	if err := s.snapshot.Save(data); err != nil {
		logger.Error("snapshot save failed", "error", err)
		return nil, err
	}
	logger.Info("dataset refreshed", "containers", result.Containers, "created", result.Created, "updated", result.Updated)
	return result, nil
}

// Status reports on the local snapshot without contacting the source.
func (s *service) Status(_ context.Context) (*Status, error) {
	status := &Status{SnapshotPath: s.snapshot.Path()}

	data, modTime, err := s.snapshot.Load()
	if err != nil {
		return status, nil
	}
	status.SnapshotExists = true
	status.SnapshotAt = modTime
	status.Stale = s.now().Sub(modTime) >= s.ttl

	var dataset Dataset
	if err := json.Unmarshal(data, &dataset); err == nil {
		status.Containers = len(dataset.Containers)
	}
	return status, nil
}

func (s *service) importPayload(ctx context.Context, data []byte, fromSource bool) (*Result, error) {
	var document any
	if err := json.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPayloadInvalid, err)
	}
	if err := validation.ValidatePayload(DatasetSchema(), document); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPayloadInvalid, err)
	}

	var dataset Dataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPayloadInvalid, err)
	}

	result := &Result{
		FromSource:   fromSource,
		Containers:   len(dataset.Containers),
		SnapshotPath: s.snapshot.Path(),
		RefreshedAt:  s.now(),
	}

	for _, payload := range dataset.Containers {
		req, ok := s.toRequest(payload)
		if !ok {
			result.Skipped++
			continue
		}
		_, created, err := s.importer.Upsert(ctx, req)
		if err != nil {
			s.logger.Warn("container import skipped", "code", payload.ID, "error", err)
			result.Skipped++
			continue
		}
		if created {
			result.Created++
		} else {
			result.Updated++
		}
	}
	return result, nil
}

func (s *service) toRequest(payload ContainerPayload) (containers.CreateContainerRequest, bool) {
	containerType, ok := domain.ParseContainerType(payload.Type)
	if !ok {
		return containers.CreateContainerRequest{}, false
	}
	category, ok := domain.ParseWasteCategory(payload.WasteCategory)
	if !ok {
		return containers.CreateContainerRequest{}, false
	}

	req := containers.CreateContainerRequest{
		Code:          payload.ID,
		Neighborhood:  payload.Neighborhood,
		Lat:           payload.Lat,
		Lon:           payload.Lon,
		Type:          containerType,
		WasteCategory: category,
		FillLevel:     payload.FillLevel,
		Status:        domain.ContainerStatus(normalizeStatus(payload.Status)),
	}
	if payload.LastEmptied != "" {
		if emptied, err := time.Parse(time.DateOnly, payload.LastEmptied); err == nil {
			req.LastEmptiedAt = &emptied
		}
	}
	return req, true
}

func normalizeStatus(value string) string {
	switch value {
	case "Open", "open":
		return string(domain.StatusOpen)
	case "Closed", "closed":
		return string(domain.StatusClosed)
	default:
		return string(domain.StatusNotApplicable)
	}
}
