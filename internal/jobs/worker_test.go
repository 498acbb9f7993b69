package jobs_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-wasteops/internal/complaints"
	"github.com/goliatone/go-wasteops/internal/containers"
	"github.com/goliatone/go-wasteops/internal/domain"
	"github.com/goliatone/go-wasteops/internal/ingest"
	"github.com/goliatone/go-wasteops/internal/jobs"
	wastescheduler "github.com/goliatone/go-wasteops/internal/scheduler"
	"github.com/goliatone/go-wasteops/pkg/interfaces"
)

var testNow = time.Date(2025, time.March, 12, 9, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

type stubRefresher struct {
	calls  int
	err    error
	result *ingest.Result
}

func (r *stubRefresher) Refresh(context.Context, ingest.RefreshOptions) (*ingest.Result, error) {
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	if r.result != nil {
		return r.result, nil
	}
	return &ingest.Result{}, nil
}

func newScheduler() interfaces.Scheduler {
	return wastescheduler.NewInMemory(wastescheduler.WithClock(fixedClock))
}

func TestWorkerEmptiesContainer(t *testing.T) {
	sched := newScheduler()
	containerSvc := containers.NewService(
		containers.NewMemoryContainerRepository(),
		containers.WithClock(fixedClock),
	)
	ctx := context.Background()

	rec, err := containerSvc.Create(ctx, containers.CreateContainerRequest{
		Code:          "Cen-001",
		Neighborhood:  "Centrum",
		Lat:           52.37,
		Lon:           4.9,
		Type:          domain.TypeUnderground,
		WasteCategory: domain.CategoryGlass,
		FillLevel:     95,
	})
	if err != nil {
		t.Fatalf("seed container: %v", err)
	}

	worker := jobs.NewWorker(sched, containerSvc, nil, nil, jobs.WithClock(fixedClock))
	job, err := worker.RequestEmptying(ctx, rec.ID, testNow)
	if err != nil {
		t.Fatalf("request emptying: %v", err)
	}

	if err := worker.Process(ctx); err != nil {
		t.Fatalf("process: %v", err)
	}

	emptied, err := containerSvc.Get(ctx, rec.ID)
	if err != nil {
		t.Fatalf("get container: %v", err)
	}
	if emptied.FillLevel != 0 {
		t.Fatalf("expected fill reset got %d", emptied.FillLevel)
	}

	stored, err := sched.Get(ctx, job.ID)
	if err != nil {
		t.Fatalf("get job: %v", err)
	}
	if stored.Status != interfaces.JobStatusCompleted {
		t.Fatalf("expected completed job got %q", stored.Status)
	}
}

func TestWorkerRunsComplaintSweepAndReschedules(t *testing.T) {
	sched := newScheduler()
	complaintSvc := complaints.NewService(
		complaints.NewMemoryComplaintRepository(),
		complaints.WithClock(fixedClock),
	)
	ctx := context.Background()

	old := testNow.Add(-3 * 24 * time.Hour)
	if _, err := complaintSvc.Report(ctx, complaints.ReportComplaintRequest{
		Neighborhood: "Centrum",
		Type:         domain.ComplaintBadSmell,
		SubmittedAt:  &old,
	}); err != nil {
		t.Fatalf("report complaint: %v", err)
	}

	worker := jobs.NewWorker(sched, nil, complaintSvc, nil, jobs.WithClock(fixedClock))

	if _, err := sched.Enqueue(ctx, interfaces.JobSpec{
		Key:   wastescheduler.ComplaintAgingJobKey(),
		Type:  wastescheduler.JobTypeComplaintAging,
		RunAt: testNow,
	}); err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	if err := worker.Process(ctx); err != nil {
		t.Fatalf("process: %v", err)
	}

	list, err := complaintSvc.List(ctx, complaints.ListQuery{})
	if err != nil {
		t.Fatalf("list complaints: %v", err)
	}
	if list[0].Status != domain.ComplaintPending {
		t.Fatalf("expected aged complaint got %q", list[0].Status)
	}

	next, err := sched.GetByKey(ctx, wastescheduler.ComplaintAgingJobKey())
	if err != nil {
		t.Fatalf("expected rescheduled sweep: %v", err)
	}
	if !next.RunAt.After(testNow) {
		t.Fatalf("expected future run got %v", next.RunAt)
	}
}

func TestWorkerRefreshFailureMarksJobFailed(t *testing.T) {
	sched := newScheduler()
	refresher := &stubRefresher{err: errors.New("upstream down")}
	worker := jobs.NewWorker(sched, nil, nil, refresher,
		jobs.WithClock(fixedClock),
	)
	ctx := context.Background()

	job, err := sched.Enqueue(ctx, interfaces.JobSpec{
		Key:         wastescheduler.IngestRefreshJobKey(),
		Type:        wastescheduler.JobTypeIngestRefresh,
		RunAt:       testNow,
		MaxAttempts: 1,
	})
	if err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	if err := worker.Process(ctx); err != nil {
		t.Fatalf("process: %v", err)
	}

	stored, err := sched.Get(ctx, job.ID)
	if err != nil {
		t.Fatalf("get job: %v", err)
	}
	if stored.Status != interfaces.JobStatusFailed {
		t.Fatalf("expected failed job got %q", stored.Status)
	}
	if stored.LastError == "" {
		t.Fatal("expected stored failure message")
	}
}

func TestScheduleRecurringIsIdempotent(t *testing.T) {
	sched := newScheduler()
	worker := jobs.NewWorker(sched, nil, nil, &stubRefresher{}, jobs.WithClock(fixedClock))
	ctx := context.Background()

	if err := worker.ScheduleRecurring(ctx); err != nil {
		t.Fatalf("schedule recurring: %v", err)
	}
	first, err := sched.GetByKey(ctx, wastescheduler.IngestRefreshJobKey())
	if err != nil {
		t.Fatalf("get refresh job: %v", err)
	}

	if err := worker.ScheduleRecurring(ctx); err != nil {
		t.Fatalf("schedule recurring again: %v", err)
	}
	second, err := sched.GetByKey(ctx, wastescheduler.IngestRefreshJobKey())
	if err != nil {
		t.Fatalf("get refresh job again: %v", err)
	}
	if first.ID != second.ID {
		t.Fatal("expected recurring jobs to stay in place")
	}
}
