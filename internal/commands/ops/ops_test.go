package opscmd_test

import (
	"context"
	"testing"
	"time"

	goerrors "github.com/goliatone/go-errors"
	opscmd "github.com/goliatone/go-wasteops/internal/commands/ops"
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

type stubIngest struct {
	calls int
	force bool
}

func (s *stubIngest) Refresh(_ context.Context, opts ingest.RefreshOptions) (*ingest.Result, error) {
	s.calls++
	s.force = opts.Force
	return &ingest.Result{}, nil
}

func (s *stubIngest) Status(context.Context) (*ingest.Status, error) {
	return &ingest.Status{}, nil
}

func TestRefreshDataCommandRunsIngest(t *testing.T) {
	stub := &stubIngest{}
	handler := opscmd.NewRefreshDataHandler(stub, nil)

	if err := handler.Execute(context.Background(), opscmd.RefreshDataCommand{Force: true}); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if stub.calls != 1 || !stub.force {
		t.Fatalf("expected forced refresh, got calls=%d force=%v", stub.calls, stub.force)
	}
}

func TestReportComplaintCommandValidates(t *testing.T) {
	svc := complaints.NewService(
		complaints.NewMemoryComplaintRepository(),
		complaints.WithClock(fixedClock),
	)
	handler := opscmd.NewReportComplaintHandler(svc, nil)

	err := handler.Execute(context.Background(), opscmd.ReportComplaintCommand{
		Neighborhood:  "Centrum",
		ComplaintType: "mystery",
	})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category got %v", err)
	}
}

func TestReportComplaintCommandStoresComplaint(t *testing.T) {
	svc := complaints.NewService(
		complaints.NewMemoryComplaintRepository(),
		complaints.WithClock(fixedClock),
	)
	handler := opscmd.NewReportComplaintHandler(svc, nil)

	err := handler.Execute(context.Background(), opscmd.ReportComplaintCommand{
		Neighborhood:  "Centrum",
		ComplaintType: "bad_smell",
	})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}

	list, err := svc.List(context.Background(), complaints.ListQuery{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].Type != domain.ComplaintBadSmell {
		t.Fatalf("unexpected complaints %+v", list)
	}
}

func TestRequestEmptyingCommandSchedulesJob(t *testing.T) {
	sched := wastescheduler.NewInMemory(wastescheduler.WithClock(fixedClock))
	containerSvc := containers.NewService(
		containers.NewMemoryContainerRepository(),
		containers.WithClock(fixedClock),
	)
	worker := jobs.NewWorker(sched, containerSvc, nil, nil, jobs.WithClock(fixedClock))
	handler := opscmd.NewRequestEmptyingHandler(worker, nil)
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

	if err := handler.Execute(ctx, opscmd.RequestEmptyingCommand{ContainerID: rec.ID}); err != nil {
		t.Fatalf("execute: %v", err)
	}

	job, err := sched.GetByKey(ctx, wastescheduler.ContainerEmptyJobKey(rec.ID))
	if err != nil {
		t.Fatalf("expected scheduled job: %v", err)
	}
	if job.Status != interfaces.JobStatusPending {
		t.Fatalf("expected pending job got %q", job.Status)
	}
}

func TestRequestEmptyingCommandRequiresContainer(t *testing.T) {
	sched := wastescheduler.NewInMemory(wastescheduler.WithClock(fixedClock))
	worker := jobs.NewWorker(sched, nil, nil, nil, jobs.WithClock(fixedClock))
	handler := opscmd.NewRequestEmptyingHandler(worker, nil)

	err := handler.Execute(context.Background(), opscmd.RequestEmptyingCommand{})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category got %v", err)
	}
}
