package complaints

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/goliatone/go-wasteops/internal/domain"
	"github.com/goliatone/go-wasteops/internal/logging"
	"github.com/goliatone/go-wasteops/pkg/interfaces"
	"github.com/google/uuid"
)

const (
	// PendingAfter is how long a complaint stays "new" before the aging sweep
	// moves it to "pending".
	PendingAfter = 48 * time.Hour
	// ResolvedAfter is how long a complaint can age in total before the sweep
	// closes it out.
	ResolvedAfter = 7 * 24 * time.Hour
)

// Service exposes complaint handling use-cases.
type Service interface {
	Report(ctx context.Context, req ReportComplaintRequest) (*Complaint, error)
	Get(ctx context.Context, id uuid.UUID) (*Complaint, error)
	List(ctx context.Context, query ListQuery) ([]*Complaint, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ComplaintStatus) (*Complaint, error)
	ActiveCount(ctx context.Context) (int, error)
	NewCount(ctx context.Context) (int, error)
	AgeStatuses(ctx context.Context) (int, error)
}

// ComplaintRepository abstracts storage operations for complaint entities.
type ComplaintRepository interface {
	Create(ctx context.Context, record *Complaint) (*Complaint, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Complaint, error)
	List(ctx context.Context) ([]*Complaint, error)
	Update(ctx context.Context, record *Complaint) (*Complaint, error)
}

// ReportComplaintRequest captures a resident submission.
type ReportComplaintRequest struct {
	Neighborhood    string
	NeighborhoodKey string
	Type            domain.ComplaintType
	Description     string
	ContainerCode   string
	SubmittedAt     *time.Time
}

// ServiceOption configures the service at construction time.
type ServiceOption func(*service)

// WithClock overrides the clock used to stamp records and drive the aging sweep.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		if clock != nil {
			s.now = clock
		}
	}
}

// WithIDGenerator overrides the identifier generator.
func WithIDGenerator(generator func() uuid.UUID) ServiceOption {
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
	complaints ComplaintRepository
	now        func() time.Time
	id         func() uuid.UUID
	logger     interfaces.Logger
}

// NewService constructs a complaint service with the required dependencies.
func NewService(complaints ComplaintRepository, opts ...ServiceOption) Service {
	s := &service{
		complaints: complaints,
		now:        time.Now,
		id:         uuid.New,
		logger:     logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Report records a new complaint. A blank description defaults to the
// dashboard's canonical phrasing.
func (s *service) Report(ctx context.Context, req ReportComplaintRequest) (*Complaint, error) {
	neighborhood := strings.TrimSpace(req.Neighborhood)
	if neighborhood == "" {
		return nil, ErrNeighborhoodRequired
	}
	if _, ok := domain.ParseComplaintType(string(req.Type)); !ok {
		return nil, ErrTypeInvalid
	}

	submittedAt := s.now()
	if req.SubmittedAt != nil && !req.SubmittedAt.IsZero() {
		submittedAt = *req.SubmittedAt
	}

	description := strings.TrimSpace(req.Description)
	if description == "" {
		description = fmt.Sprintf("Resident reported %s at %s", strings.ToLower(req.Type.Display()), neighborhood)
	}

	key := strings.TrimSpace(req.NeighborhoodKey)
	if key == "" {
		key = strings.ToLower(strings.ReplaceAll(neighborhood, " ", "-"))
	}

	var containerCode *string
	if trimmed := strings.TrimSpace(req.ContainerCode); trimmed != "" && !strings.EqualFold(trimmed, "n/a") {
		containerCode = &trimmed
	}

	record := &Complaint{
		ID:              s.id(),
		Neighborhood:    neighborhood,
		NeighborhoodKey: key,
		Type:            req.Type,
		Description:     description,
		Status:          domain.ComplaintNew,
		ContainerCode:   containerCode,
		SubmittedAt:     submittedAt,
		CreatedAt:       s.now(),
		UpdatedAt:       s.now(),
	}

	created, err := s.complaints.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	s.logger.Info("complaint reported", "type", created.Type, "neighborhood", created.NeighborhoodKey)
	return created, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*Complaint, error) {
	if id == uuid.Nil {
		return nil, ErrIDRequired
	}
	return s.complaints.GetByID(ctx, id)
}

// List returns complaints newest first, applying status and neighborhood filters.
func (s *service) List(ctx context.Context, query ListQuery) ([]*Complaint, error) {
	records, err := s.complaints.List(ctx)
	if err != nil {
		return nil, err
	}

	statuses := map[domain.ComplaintStatus]struct{}{}
	for _, st := range query.Statuses {
		statuses[st] = struct{}{}
	}

	filtered := records[:0:0]
	for _, rec := range records {
		if len(statuses) > 0 {
			if _, ok := statuses[rec.Status]; !ok {
				continue
			}
		}
		if query.NeighborhoodKey != "" && rec.NeighborhoodKey != query.NeighborhoodKey {
			continue
		}
		filtered = append(filtered, rec)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].SubmittedAt.After(filtered[j].SubmittedAt)
	})

	if query.Limit > 0 && len(filtered) > query.Limit {
		filtered = filtered[:query.Limit]
	}
	return filtered, nil
}

// UpdateStatus moves a complaint through its lifecycle. Resolved complaints
// stay resolved.
func (s *service) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ComplaintStatus) (*Complaint, error) {
	switch status {
	case domain.ComplaintNew, domain.ComplaintPending, domain.ComplaintResolved:
	default:
		return nil, ErrStatusInvalid
	}

	record, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !allowedTransition(record.Status, status) {
		return nil, &StatusTransitionError{From: record.Status, To: status}
	}

	record.Status = status
	record.UpdatedAt = s.now()
	if status == domain.ComplaintResolved {
		now := s.now()
		record.ResolvedAt = &now
	}
	return s.complaints.Update(ctx, record)
}

func (s *service) ActiveCount(ctx context.Context) (int, error) {
	records, err := s.complaints.List(ctx)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, rec := range records {
		if rec.Active() {
			count++
		}
	}
	return count, nil
}

func (s *service) NewCount(ctx context.Context) (int, error) {
	records, err := s.complaints.List(ctx)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, rec := range records {
		if rec.Status == domain.ComplaintNew {
			count++
		}
	}
	return count, nil
}

// AgeStatuses applies the aging rule across open complaints: new complaints
// older than two days become pending, and anything older than a week resolves.
// It returns how many records changed.
func (s *service) AgeStatuses(ctx context.Context) (int, error) {
	records, err := s.complaints.List(ctx)
	if err != nil {
		return 0, err
	}

	now := s.now()
	changed := 0
	for _, rec := range records {
		target := agedStatus(rec.Status, now.Sub(rec.SubmittedAt))
		if target == rec.Status {
			continue
		}
		rec.Status = target
		rec.UpdatedAt = now
		if target == domain.ComplaintResolved {
			resolvedAt := now
			rec.ResolvedAt = &resolvedAt
		}
		if _, err := s.complaints.Update(ctx, rec); err != nil {
			return changed, err
		}
		changed++
	}
	if changed > 0 {
		s.logger.Debug("complaint aging sweep applied", "changed", changed)
	}
	return changed, nil
}

func agedStatus(current domain.ComplaintStatus, age time.Duration) domain.ComplaintStatus {
	if current == domain.ComplaintResolved {
		return current
	}
	switch {
	case age >= ResolvedAfter:
		return domain.ComplaintResolved
	case age >= PendingAfter && current == domain.ComplaintNew:
		return domain.ComplaintPending
	default:
		return current
	}
}

func allowedTransition(from, to domain.ComplaintStatus) bool {
	if from == to {
		return true
	}
	switch from {
	case domain.ComplaintNew:
		return to == domain.ComplaintPending || to == domain.ComplaintResolved
	case domain.ComplaintPending:
		return to == domain.ComplaintResolved
	default:
		return false
	}
}
