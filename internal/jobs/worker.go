package jobs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goliatone/go-wasteops/internal/containers"
	"github.com/goliatone/go-wasteops/internal/ingest"
	"github.com/goliatone/go-wasteops/internal/logging"
	wastescheduler "github.com/goliatone/go-wasteops/internal/scheduler"
	"github.com/goliatone/go-wasteops/pkg/interfaces"
	"github.com/google/uuid"
)

const (
	// DefaultRefreshInterval is how often the dataset re-imports itself.
	DefaultRefreshInterval = 24 * time.Hour
	// DefaultAgingInterval is how often open complaints are swept.
	DefaultAgingInterval = time.Hour
)

// ContainerEmptier is the slice of the container service the worker needs.
type ContainerEmptier interface {
	MarkEmptied(ctx context.Context, id uuid.UUID) (*containers.Container, error)
}

// ComplaintAger is the slice of the complaint service the worker needs.
type ComplaintAger interface {
	AgeStatuses(ctx context.Context) (int, error)
}

// Refresher is the slice of the ingest service the worker needs.
type Refresher interface {
	Refresh(ctx context.Context, opts ingest.RefreshOptions) (*ingest.Result, error)
}

// Worker drains due jobs from the scheduler and dispatches them to the domain
// services. Recurring jobs reschedule themselves after a successful run.
type Worker struct {
	scheduler       interfaces.Scheduler
	containers      ContainerEmptier
	complaints      ComplaintAger
	ingest          Refresher
	now             func() time.Time
	batchSize       int
	refreshInterval time.Duration
	agingInterval   time.Duration
	logger          interfaces.Logger
}

// Option configures the worker.
type Option func(*Worker)

// WithClock overrides the clock used to decide which jobs are due.
func WithClock(clock func() time.Time) Option {
	return func(w *Worker) {
		if clock != nil {
			w.now = clock
		}
	}
}

// WithBatchSize caps how many jobs a single Process call drains.
func WithBatchSize(size int) Option {
	return func(w *Worker) {
		if size > 0 {
			w.batchSize = size
		}
	}
}

// WithRefreshInterval overrides the recurring refresh cadence.
func WithRefreshInterval(interval time.Duration) Option {
	return func(w *Worker) {
		if interval > 0 {
			w.refreshInterval = interval
		}
	}
}

// WithAgingInterval overrides the recurring complaint sweep cadence.
func WithAgingInterval(interval time.Duration) Option {
	return func(w *Worker) {
		if interval > 0 {
			w.agingInterval = interval
		}
	}
}

// WithLogger attaches a module logger to the worker.
func WithLogger(logger interfaces.Logger) Option {
	return func(w *Worker) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// NewWorker wires the scheduler to the domain services.
func NewWorker(scheduler interfaces.Scheduler, containerSvc ContainerEmptier, complaintSvc ComplaintAger, ingestSvc Refresher, opts ...Option) *Worker {
	w := &Worker{
		scheduler:       scheduler,
		containers:      containerSvc,
		complaints:      complaintSvc,
		ingest:          ingestSvc,
		now:             time.Now,
		batchSize:       50,
		refreshInterval: DefaultRefreshInterval,
		agingInterval:   DefaultAgingInterval,
		logger:          logging.NoOp(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// ScheduleRecurring enqueues the recurring refresh and aging jobs if they are
// not already pending. Safe to call on every boot.
func (w *Worker) ScheduleRecurring(ctx context.Context) error {
	if w.scheduler == nil {
		return errors.New("jobs: scheduler is nil")
	}
	now := w.now()

	if _, err := w.scheduler.GetByKey(ctx, wastescheduler.IngestRefreshJobKey()); errors.Is(err, interfaces.ErrJobNotFound) {
		if _, err := w.scheduler.Enqueue(ctx, interfaces.JobSpec{
			Key:   wastescheduler.IngestRefreshJobKey(),
			Type:  wastescheduler.JobTypeIngestRefresh,
			RunAt: now.Add(w.refreshInterval),
		}); err != nil {
			return err
		}
	}

	if _, err := w.scheduler.GetByKey(ctx, wastescheduler.ComplaintAgingJobKey()); errors.Is(err, interfaces.ErrJobNotFound) {
		if _, err := w.scheduler.Enqueue(ctx, interfaces.JobSpec{
			Key:   wastescheduler.ComplaintAgingJobKey(),
			Type:  wastescheduler.JobTypeComplaintAging,
			RunAt: now.Add(w.agingInterval),
		}); err != nil {
			return err
		}
	}
	return nil
}

// RequestEmptying schedules a one-shot emptying job for a container.
func (w *Worker) RequestEmptying(ctx context.Context, containerID uuid.UUID, runAt time.Time) (*interfaces.Job, error) {
	if w.scheduler == nil {
		return nil, errors.New("jobs: scheduler is nil")
	}
	if containerID == uuid.Nil {
		return nil, errors.New("jobs: container id is required")
	}
	if runAt.IsZero() {
		runAt = w.now()
	}
	return w.scheduler.Enqueue(ctx, interfaces.JobSpec{
		Key:   wastescheduler.ContainerEmptyJobKey(containerID),
		Type:  wastescheduler.JobTypeContainerEmpty,
		RunAt: runAt,
		Payload: map[string]any{
			"container_id": containerID.String(),
		},
	})
}

// Process drains one batch of due jobs.
func (w *Worker) Process(ctx context.Context) error {
	if w.scheduler == nil {
		return errors.New("jobs: scheduler is nil")
	}
	deadline := w.now()
	due, err := w.scheduler.ListDue(ctx, deadline, w.batchSize)
	if err != nil {
		return err
	}
	for _, job := range due {
		if job == nil {
			continue
		}
		if err := w.handleJob(ctx, job); err != nil {
			w.logger.Warn("job failed", "job_id", job.ID, "job_type", job.Type, "error", err)
			_ = w.scheduler.MarkFailed(ctx, job.ID, err)
			continue
		}
		_ = w.scheduler.MarkDone(ctx, job.ID)
		w.reschedule(ctx, job)
	}
	return nil
}

func (w *Worker) handleJob(ctx context.Context, job *interfaces.Job) error {
	switch job.Type {
	case wastescheduler.JobTypeIngestRefresh:
		return w.processRefresh(ctx, job)
	case wastescheduler.JobTypeContainerEmpty:
		return w.processContainerEmpty(ctx, job)
	case wastescheduler.JobTypeComplaintAging:
		return w.processComplaintAging(ctx)
	default:
		return nil
	}
}

func (w *Worker) processRefresh(ctx context.Context, job *interfaces.Job) error {
	if w.ingest == nil {
		return errors.New("jobs: ingest service is nil")
	}
	force := false
	if raw, ok := job.Payload["force"]; ok {
		if flag, ok := raw.(bool); ok {
			force = flag
		}
	}
	result, err := w.ingest.Refresh(ctx, ingest.RefreshOptions{Force: force})
	if err != nil {
		return err
	}
	w.logger.Info("scheduled refresh completed", "containers", result.Containers, "created", result.Created, "updated", result.Updated)
	return nil
}

func (w *Worker) processContainerEmpty(ctx context.Context, job *interfaces.Job) error {
	if w.containers == nil {
		return errors.New("jobs: container service is nil")
	}
	id, err := parseContainerID(job.Payload)
	if err != nil {
		return err
	}
	rec, err := w.containers.MarkEmptied(ctx, id)
	if err != nil {
		return err
	}
	w.logger.Info("container emptied", "code", rec.Code, "job_id", job.ID)
	return nil
}

func (w *Worker) processComplaintAging(ctx context.Context) error {
	if w.complaints == nil {
		return errors.New("jobs: complaint service is nil")
	}
	changed, err := w.complaints.AgeStatuses(ctx)
	if err != nil {
		return err
	}
	if changed > 0 {
		w.logger.Info("complaint sweep completed", "changed", changed)
	}
	return nil
}

func (w *Worker) reschedule(ctx context.Context, job *interfaces.Job) {
	var interval time.Duration
	switch job.Type {
	case wastescheduler.JobTypeIngestRefresh:
		interval = w.refreshInterval
	case wastescheduler.JobTypeComplaintAging:
		interval = w.agingInterval
	default:
		return
	}
	if _, err := w.scheduler.Enqueue(ctx, interfaces.JobSpec{
		Key:     job.Key,
		Type:    job.Type,
		RunAt:   w.now().Add(interval),
		Payload: job.Payload,
	}); err != nil {
		w.logger.Error("reschedule failed", "job_type", job.Type, "error", err)
	}
}

func parseContainerID(payload map[string]any) (uuid.UUID, error) {
	if payload == nil {
		return uuid.Nil, fmt.Errorf("jobs: missing payload")
	}
	raw, ok := payload["container_id"]
	if !ok {
		return uuid.Nil, fmt.Errorf("jobs: payload missing container_id")
	}
	str, ok := raw.(string)
	if !ok {
		return uuid.Nil, fmt.Errorf("jobs: invalid container_id payload")
	}
	return uuid.Parse(str)
}
