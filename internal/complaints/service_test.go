package complaints_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-wasteops/internal/complaints"
	"github.com/goliatone/go-wasteops/internal/domain"
)

var testNow = time.Date(2025, time.March, 12, 9, 30, 0, 0, time.UTC)

func newTestService(t *testing.T) complaints.Service {
	t.Helper()
	store := complaints.NewMemoryComplaintRepository()
	return complaints.NewService(store, complaints.WithClock(func() time.Time { return testNow }))
}

func report(t *testing.T, svc complaints.Service, neighborhood string, kind domain.ComplaintType, age time.Duration) *complaints.Complaint {
	t.Helper()
	at := testNow.Add(-age)
	rec, err := svc.Report(context.Background(), complaints.ReportComplaintRequest{
		Neighborhood: neighborhood,
		Type:         kind,
		SubmittedAt:  &at,
	})
	if err != nil {
		t.Fatalf("report complaint: %v", err)
	}
	return rec
}

func TestReportDefaultsDescription(t *testing.T) {
	svc := newTestService(t)

	rec := report(t, svc, "De Pijp", domain.ComplaintBadSmell, 0)

	if rec.Status != domain.ComplaintNew {
		t.Fatalf("expected new status got %q", rec.Status)
	}
	if rec.Description != "Resident reported bad smell at De Pijp" {
		t.Fatalf("unexpected default description %q", rec.Description)
	}
	if rec.NeighborhoodKey != "de-pijp" {
		t.Fatalf("expected derived key de-pijp got %q", rec.NeighborhoodKey)
	}
}

func TestReportRejectsUnknownType(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Report(context.Background(), complaints.ReportComplaintRequest{
		Neighborhood: "Centrum",
		Type:         "alien_invasion",
	})
	if !errors.Is(err, complaints.ErrTypeInvalid) {
		t.Fatalf("expected ErrTypeInvalid got %v", err)
	}
}

func TestReportDropsNotApplicableContainerCode(t *testing.T) {
	svc := newTestService(t)

	rec, err := svc.Report(context.Background(), complaints.ReportComplaintRequest{
		Neighborhood:  "Centrum",
		Type:          domain.ComplaintContainerFull,
		ContainerCode: "N/A",
	})
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if rec.ContainerCode != nil {
		t.Fatalf("expected nil container code got %q", *rec.ContainerCode)
	}
}

func TestListFiltersAndOrdersNewestFirst(t *testing.T) {
	svc := newTestService(t)
	report(t, svc, "Centrum", domain.ComplaintContainerFull, 30*time.Minute)
	report(t, svc, "Noord", domain.ComplaintBadSmell, 2*time.Hour)
	recent := report(t, svc, "Centrum", domain.ComplaintNotCollected, 5*time.Minute)

	ctx := context.Background()

	centrum, err := svc.List(ctx, complaints.ListQuery{NeighborhoodKey: "centrum"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(centrum) != 2 {
		t.Fatalf("expected 2 centrum complaints got %d", len(centrum))
	}
	if centrum[0].ID != recent.ID {
		t.Fatalf("expected newest first, got %s", centrum[0].ID)
	}

	limited, err := svc.List(ctx, complaints.ListQuery{Limit: 1})
	if err != nil {
		t.Fatalf("list limited: %v", err)
	}
	if len(limited) != 1 || limited[0].ID != recent.ID {
		t.Fatalf("expected only the newest complaint, got %+v", limited)
	}
}

func TestUpdateStatusEnforcesLifecycle(t *testing.T) {
	svc := newTestService(t)
	rec := report(t, svc, "Centrum", domain.ComplaintContainerFull, 0)

	pending, err := svc.UpdateStatus(context.Background(), rec.ID, domain.ComplaintPending)
	if err != nil {
		t.Fatalf("to pending: %v", err)
	}
	if pending.Status != domain.ComplaintPending {
		t.Fatalf("expected pending got %q", pending.Status)
	}

	resolved, err := svc.UpdateStatus(context.Background(), rec.ID, domain.ComplaintResolved)
	if err != nil {
		t.Fatalf("to resolved: %v", err)
	}
	if resolved.ResolvedAt == nil {
		t.Fatal("expected resolved stamp")
	}

	_, err = svc.UpdateStatus(context.Background(), rec.ID, domain.ComplaintNew)
	if !errors.Is(err, complaints.ErrStatusTransition) {
		t.Fatalf("expected ErrStatusTransition got %v", err)
	}
}

func TestAgeStatusesAppliesDashboardRule(t *testing.T) {
	svc := newTestService(t)
	fresh := report(t, svc, "Centrum", domain.ComplaintContainerFull, time.Hour)
	stale := report(t, svc, "Noord", domain.ComplaintBadSmell, 3*24*time.Hour)
	ancient := report(t, svc, "West", domain.ComplaintNotCollected, 10*24*time.Hour)

	changed, err := svc.AgeStatuses(context.Background())
	if err != nil {
		t.Fatalf("age statuses: %v", err)
	}
	if changed != 2 {
		t.Fatalf("expected 2 aged complaints got %d", changed)
	}

	assertStatus := func(id interface{ String() string }, want domain.ComplaintStatus) {
		t.Helper()
		list, err := svc.List(context.Background(), complaints.ListQuery{})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		for _, rec := range list {
			if rec.ID.String() == id.String() {
				if rec.Status != want {
					t.Fatalf("complaint %s: expected %q got %q", id, want, rec.Status)
				}
				return
			}
		}
		t.Fatalf("complaint %s not found", id)
	}

	assertStatus(fresh.ID, domain.ComplaintNew)
	assertStatus(stale.ID, domain.ComplaintPending)
	assertStatus(ancient.ID, domain.ComplaintResolved)
}

func TestActiveAndNewCounts(t *testing.T) {
	svc := newTestService(t)
	report(t, svc, "Centrum", domain.ComplaintContainerFull, 0)
	pendingRec := report(t, svc, "Noord", domain.ComplaintBadSmell, 0)
	resolvedRec := report(t, svc, "West", domain.ComplaintNotCollected, 0)

	if _, err := svc.UpdateStatus(context.Background(), pendingRec.ID, domain.ComplaintPending); err != nil {
		t.Fatalf("to pending: %v", err)
	}
	if _, err := svc.UpdateStatus(context.Background(), resolvedRec.ID, domain.ComplaintResolved); err != nil {
		t.Fatalf("to resolved: %v", err)
	}

	active, err := svc.ActiveCount(context.Background())
	if err != nil {
		t.Fatalf("active count: %v", err)
	}
	if active != 2 {
		t.Fatalf("expected 2 active got %d", active)
	}

	fresh, err := svc.NewCount(context.Background())
	if err != nil {
		t.Fatalf("new count: %v", err)
	}
	if fresh != 1 {
		t.Fatalf("expected 1 new got %d", fresh)
	}
}
