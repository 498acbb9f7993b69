package collections_test

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/goliatone/go-wasteops/internal/collections"
	"github.com/goliatone/go-wasteops/internal/domain"
)

var testNow = time.Date(2025, time.March, 12, 14, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) collections.Service {
	t.Helper()
	store := collections.NewMemoryCollectionRecordRepository()
	return collections.NewService(store, collections.WithClock(func() time.Time { return testNow }))
}

func record(t *testing.T, svc collections.Service, daysAgo int, category domain.WasteCategory, tons float64) {
	t.Helper()
	_, err := svc.Record(context.Background(), collections.RecordCollectionRequest{
		Date:     testNow.AddDate(0, 0, -daysAgo),
		Category: category,
		Tons:     tons,
	})
	if err != nil {
		t.Fatalf("record collection: %v", err)
	}
}

func TestRecordValidates(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Record(ctx, collections.RecordCollectionRequest{Category: domain.CategoryGeneral, Tons: 1})
	if !errors.Is(err, collections.ErrDateRequired) {
		t.Fatalf("expected ErrDateRequired got %v", err)
	}

	_, err = svc.Record(ctx, collections.RecordCollectionRequest{Date: testNow, Category: "slag", Tons: 1})
	if !errors.Is(err, collections.ErrCategoryInvalid) {
		t.Fatalf("expected ErrCategoryInvalid got %v", err)
	}

	_, err = svc.Record(ctx, collections.RecordCollectionRequest{Date: testNow, Category: domain.CategoryGeneral, Tons: -2})
	if !errors.Is(err, collections.ErrTonsNegative) {
		t.Fatalf("expected ErrTonsNegative got %v", err)
	}
}

func TestRecordUpsertsSameDayAndCategory(t *testing.T) {
	svc := newTestService(t)
	record(t, svc, 0, domain.CategoryGeneral, 10)
	record(t, svc, 0, domain.CategoryGeneral, 14)

	total, err := svc.TotalTons(context.Background(), 0)
	if err != nil {
		t.Fatalf("total tons: %v", err)
	}
	if total != 14 {
		t.Fatalf("expected upsert to keep single row, total %v", total)
	}
}

func TestTotalsByCategoryWindows(t *testing.T) {
	svc := newTestService(t)
	record(t, svc, 0, domain.CategoryGeneral, 10)
	record(t, svc, 1, domain.CategoryGeneral, 5)
	record(t, svc, 1, domain.CategoryPaper, 3)
	record(t, svc, 20, domain.CategoryGeneral, 100)

	totals, err := svc.TotalsByCategory(context.Background(), 7)
	if err != nil {
		t.Fatalf("totals: %v", err)
	}
	if totals[domain.CategoryGeneral] != 15 {
		t.Fatalf("expected 15 general tons got %v", totals[domain.CategoryGeneral])
	}
	if totals[domain.CategoryPaper] != 3 {
		t.Fatalf("expected 3 paper tons got %v", totals[domain.CategoryPaper])
	}

	all, err := svc.TotalsByCategory(context.Background(), 0)
	if err != nil {
		t.Fatalf("totals all history: %v", err)
	}
	if all[domain.CategoryGeneral] != 115 {
		t.Fatalf("expected zero window to cover all history, got %v", all[domain.CategoryGeneral])
	}
}

func TestTrendOrdersOldestFirst(t *testing.T) {
	svc := newTestService(t)
	record(t, svc, 0, domain.CategoryGlass, 2)
	record(t, svc, 3, domain.CategoryGlass, 4)
	record(t, svc, 1, domain.CategoryGlass, 3)
	record(t, svc, 15, domain.CategoryGlass, 99)

	series, err := svc.Trend(context.Background(), 0)
	if err != nil {
		t.Fatalf("trend: %v", err)
	}
	if len(series) != 1 {
		t.Fatalf("expected 1 series got %d", len(series))
	}
	points := series[0].Points
	if len(points) != 3 {
		t.Fatalf("expected default window to drop the old point, got %d points", len(points))
	}
	for i := 1; i < len(points); i++ {
		if points[i].Date.Before(points[i-1].Date) {
			t.Fatalf("points out of order at %d", i)
		}
	}
}

func TestTrendConfiguredWindow(t *testing.T) {
	store := collections.NewMemoryCollectionRecordRepository()
	svc := collections.NewService(store,
		collections.WithClock(func() time.Time { return testNow }),
		collections.WithTrendWindow(30),
	)
	record(t, svc, 0, domain.CategoryGlass, 2)
	record(t, svc, 15, domain.CategoryGlass, 99)

	series, err := svc.Trend(context.Background(), 0)
	if err != nil {
		t.Fatalf("trend: %v", err)
	}
	if len(series) != 1 || len(series[0].Points) != 2 {
		t.Fatalf("expected configured window to keep both points, got %+v", series)
	}
}

func TestNegativeWindowRejected(t *testing.T) {
	svc := newTestService(t)
	record(t, svc, 0, domain.CategoryGlass, 2)

	if _, err := svc.Trend(context.Background(), -5); !errors.Is(err, collections.ErrWindowInvalid) {
		t.Fatalf("expected ErrWindowInvalid got %v", err)
	}
	if _, err := svc.TotalsByCategory(context.Background(), -1); !errors.Is(err, collections.ErrWindowInvalid) {
		t.Fatalf("expected ErrWindowInvalid got %v", err)
	}
	if _, err := svc.TotalTons(context.Background(), -1); !errors.Is(err, collections.ErrWindowInvalid) {
		t.Fatalf("expected ErrWindowInvalid got %v", err)
	}
}

func TestWeekOverWeek(t *testing.T) {
	svc := newTestService(t)
	record(t, svc, 0, domain.CategoryGeneral, 30)
	record(t, svc, 6, domain.CategoryPaper, 20)
	record(t, svc, 7, domain.CategoryGeneral, 25)
	record(t, svc, 13, domain.CategoryGlass, 15)
	record(t, svc, 14, domain.CategoryGeneral, 500)

	cmp, err := svc.WeekOverWeek(context.Background())
	if err != nil {
		t.Fatalf("week over week: %v", err)
	}
	if cmp.CurrentTons != 50 {
		t.Fatalf("expected 50 current tons got %v", cmp.CurrentTons)
	}
	if cmp.PreviousTons != 40 {
		t.Fatalf("expected 40 previous tons got %v", cmp.PreviousTons)
	}
	if math.Abs(cmp.DeltaPercent-25) > 1e-9 {
		t.Fatalf("expected +25%% delta got %v", cmp.DeltaPercent)
	}
}

func TestWeekOverWeekEmptyPreviousWeek(t *testing.T) {
	svc := newTestService(t)
	record(t, svc, 0, domain.CategoryGeneral, 30)

	cmp, err := svc.WeekOverWeek(context.Background())
	if err != nil {
		t.Fatalf("week over week: %v", err)
	}
	if cmp.DeltaPercent != 0 {
		t.Fatalf("expected zero delta without baseline got %v", cmp.DeltaPercent)
	}
}
