package wasteops_test

import (
	"context"
	"math/rand"
	"testing"
	"time"

	wasteops "github.com/goliatone/go-wasteops"
	"github.com/goliatone/go-wasteops/internal/complaints"
	"github.com/goliatone/go-wasteops/internal/domain"
	"github.com/goliatone/go-wasteops/internal/reports"
)

func TestSeedSampleDataPopulatesModule(t *testing.T) {
	module, err := wasteops.New(wasteops.DefaultConfig())
	if err != nil {
		t.Fatalf("new module: %v", err)
	}

	ctx := context.Background()
	summary, err := module.SeedSampleData(ctx,
		wasteops.WithSeedRand(rand.New(rand.NewSource(7))),
	)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	if summary.Neighborhoods != 15 {
		t.Fatalf("expected 15 seeded neighborhoods got %d", summary.Neighborhoods)
	}
	if summary.Containers < 15 {
		t.Fatalf("expected at least one container per district got %d", summary.Containers)
	}
	if summary.CollectionRecords != 180 {
		t.Fatalf("expected 30 days x 6 categories got %d", summary.CollectionRecords)
	}
	if summary.Complaints != 50 {
		t.Fatalf("expected 50 complaints got %d", summary.Complaints)
	}

	// The aging sweep should leave a mix of lifecycle states across a
	// thirty day backlog.
	list, err := module.Complaints().List(ctx, complaints.ListQuery{})
	if err != nil {
		t.Fatalf("list complaints: %v", err)
	}
	counts := map[domain.ComplaintStatus]int{}
	for _, record := range list {
		counts[record.Status]++
	}
	if counts[domain.ComplaintResolved] == 0 {
		t.Fatalf("expected resolved complaints in backlog, got %v", counts)
	}

	trend, err := module.Collections().Trend(ctx, 30)
	if err != nil {
		t.Fatalf("trend: %v", err)
	}
	if len(trend) != len(domain.WasteCategories()) {
		t.Fatalf("expected a series per category got %d", len(trend))
	}
	for _, series := range trend {
		if len(series.Points) == 0 {
			t.Fatalf("expected points for %s", series.Category)
		}
	}

	fullness, err := module.Reports().Fullness(ctx, reports.FullnessQuery{})
	if err != nil {
		t.Fatalf("fullness: %v", err)
	}
	if fullness.Total != summary.Containers {
		t.Fatalf("expected fullness over %d containers got %d", summary.Containers, fullness.Total)
	}
}

func TestSeedSampleDataIsReproducible(t *testing.T) {
	ctx := context.Background()

	run := func() *wasteops.SeedSummary {
		module, err := wasteops.New(wasteops.DefaultConfig())
		if err != nil {
			t.Fatalf("new module: %v", err)
		}
		summary, err := module.SeedSampleData(ctx,
			wasteops.WithSeedRand(rand.New(rand.NewSource(42))),
			wasteops.WithSeedClock(func() time.Time {
				return time.Date(2026, time.August, 28, 12, 0, 0, 0, time.UTC)
			}),
		)
		if err != nil {
			t.Fatalf("seed: %v", err)
		}
		return summary
	}

	first := run()
	second := run()
	if *first != *second {
		t.Fatalf("expected identical summaries, got %+v and %+v", first, second)
	}
}
