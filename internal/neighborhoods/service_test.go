package neighborhoods_test

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/goliatone/go-wasteops/internal/complaints"
	"github.com/goliatone/go-wasteops/internal/containers"
	"github.com/goliatone/go-wasteops/internal/domain"
	"github.com/goliatone/go-wasteops/internal/neighborhoods"
)

var testNow = time.Date(2025, time.March, 12, 9, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

func TestEnsureDefaultsIsIdempotent(t *testing.T) {
	repo := neighborhoods.NewMemoryNeighborhoodRepository()
	svc := neighborhoods.NewService(repo, nil, nil, neighborhoods.WithClock(fixedClock))
	ctx := context.Background()

	created, err := svc.EnsureDefaults(ctx)
	if err != nil {
		t.Fatalf("ensure defaults: %v", err)
	}
	if created != len(neighborhoods.DefaultNames()) {
		t.Fatalf("expected %d districts got %d", len(neighborhoods.DefaultNames()), created)
	}

	created, err = svc.EnsureDefaults(ctx)
	if err != nil {
		t.Fatalf("ensure defaults second run: %v", err)
	}
	if created != 0 {
		t.Fatalf("expected no new districts got %d", created)
	}
}

func TestRegisterNormalizesKey(t *testing.T) {
	repo := neighborhoods.NewMemoryNeighborhoodRepository()
	svc := neighborhoods.NewService(repo, nil, nil, neighborhoods.WithClock(fixedClock))

	rec, err := svc.Register(context.Background(), "Bos en Lommer")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if rec.Key != "bos-en-lommer" {
		t.Fatalf("unexpected key %q", rec.Key)
	}

	found, err := svc.Get(context.Background(), "Bos en Lommer")
	if err != nil {
		t.Fatalf("get by display name: %v", err)
	}
	if found.ID != rec.ID {
		t.Fatalf("lookup returned different record")
	}
}

func TestStatsRollsUpContainersAndComplaints(t *testing.T) {
	repo := neighborhoods.NewMemoryNeighborhoodRepository()
	ctx := context.Background()

	containerSvc := containers.NewService(
		containers.NewMemoryContainerRepository(),
		containers.WithClock(fixedClock),
	)
	complaintSvc := complaints.NewService(
		complaints.NewMemoryComplaintRepository(),
		complaints.WithClock(fixedClock),
	)
	svc := neighborhoods.NewService(repo, containerSvc, complaintSvc, neighborhoods.WithClock(fixedClock))

	for _, name := range []string{"Centrum", "Noord"} {
		if _, err := svc.Register(ctx, name); err != nil {
			t.Fatalf("register %s: %v", name, err)
		}
	}

	seed := []struct {
		code string
		hood string
		fill int
	}{
		{"Cen-001", "Centrum", 90},
		{"Cen-002", "Centrum", 40},
		{"Noo-001", "Noord", 10},
	}
	for _, c := range seed {
		_, err := containerSvc.Create(ctx, containers.CreateContainerRequest{
			Code:          c.code,
			Neighborhood:  c.hood,
			Type:          domain.TypeUnderground,
			WasteCategory: domain.CategoryGeneral,
			FillLevel:     c.fill,
			Lat:           52.37,
			Lon:           4.9,
		})
		if err != nil {
			t.Fatalf("create container %s: %v", c.code, err)
		}
	}

	if _, err := complaintSvc.Report(ctx, complaints.ReportComplaintRequest{
		Neighborhood: "Centrum",
		Type:         domain.ComplaintContainerFull,
	}); err != nil {
		t.Fatalf("report complaint: %v", err)
	}

	stats, err := svc.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("expected 2 districts got %d", len(stats))
	}

	byKey := map[string]neighborhoods.Stats{}
	for _, st := range stats {
		byKey[st.Key] = st
	}

	centrum := byKey["centrum"]
	if centrum.ContainerCount != 2 {
		t.Fatalf("expected 2 centrum containers got %d", centrum.ContainerCount)
	}
	if math.Abs(centrum.AverageFill-65) > 1e-9 {
		t.Fatalf("expected 65 average fill got %v", centrum.AverageFill)
	}
	if centrum.HighFillCount != 1 {
		t.Fatalf("expected 1 high fill container got %d", centrum.HighFillCount)
	}
	if centrum.ActiveComplaints != 1 {
		t.Fatalf("expected 1 active complaint got %d", centrum.ActiveComplaints)
	}

	noord := byKey["noord"]
	if noord.ContainerCount != 1 || noord.ActiveComplaints != 0 {
		t.Fatalf("unexpected noord stats %+v", noord)
	}
}

func TestStatsTracksSmartBinsAndRecyclingRate(t *testing.T) {
	repo := neighborhoods.NewMemoryNeighborhoodRepository()
	ctx := context.Background()

	containerSvc := containers.NewService(
		containers.NewMemoryContainerRepository(),
		containers.WithClock(fixedClock),
	)
	complaintSvc := complaints.NewService(
		complaints.NewMemoryComplaintRepository(),
		complaints.WithClock(fixedClock),
	)
	svc := neighborhoods.NewService(repo, containerSvc, complaintSvc, neighborhoods.WithClock(fixedClock))

	if _, err := svc.Register(ctx, "Centrum"); err != nil {
		t.Fatalf("register: %v", err)
	}

	seed := []struct {
		code     string
		kind     domain.ContainerType
		category domain.WasteCategory
	}{
		{"Cen-001", domain.TypeSmartBin, domain.CategoryGlass},
		{"Cen-002", domain.TypeUnderground, domain.CategoryGeneral},
		{"Cen-003", domain.TypeUnderground, domain.CategoryPaper},
	}
	for _, c := range seed {
		_, err := containerSvc.Create(ctx, containers.CreateContainerRequest{
			Code:          c.code,
			Neighborhood:  "Centrum",
			Type:          c.kind,
			WasteCategory: c.category,
			FillLevel:     40,
			Lat:           52.37,
			Lon:           4.9,
		})
		if err != nil {
			t.Fatalf("create container %s: %v", c.code, err)
		}
	}

	if _, err := complaintSvc.Report(ctx, complaints.ReportComplaintRequest{
		Neighborhood: "Centrum",
		Type:         domain.ComplaintContainerFull,
	}); err != nil {
		t.Fatalf("report complaint: %v", err)
	}

	stats, err := svc.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	centrum := stats[0]
	if centrum.SmartBins != 1 {
		t.Fatalf("expected 1 smart bin got %d", centrum.SmartBins)
	}
	if math.Abs(centrum.RecyclingRate-2.0/3.0) > 1e-9 {
		t.Fatalf("expected 2/3 recycling rate got %v", centrum.RecyclingRate)
	}
	if centrum.ComplaintCount != 1 {
		t.Fatalf("expected 1 complaint got %d", centrum.ComplaintCount)
	}
}

func TestTopByContainersRanksDistricts(t *testing.T) {
	repo := neighborhoods.NewMemoryNeighborhoodRepository()
	ctx := context.Background()

	containerSvc := containers.NewService(
		containers.NewMemoryContainerRepository(),
		containers.WithClock(fixedClock),
	)
	svc := neighborhoods.NewService(repo, containerSvc, nil, neighborhoods.WithClock(fixedClock))

	for _, name := range []string{"Centrum", "Noord"} {
		if _, err := svc.Register(ctx, name); err != nil {
			t.Fatalf("register %s: %v", name, err)
		}
	}

	seed := []struct {
		code string
		hood string
	}{
		{"Cen-001", "Centrum"},
		{"Cen-002", "Centrum"},
		{"Noo-001", "Noord"},
	}
	for _, c := range seed {
		_, err := containerSvc.Create(ctx, containers.CreateContainerRequest{
			Code:          c.code,
			Neighborhood:  c.hood,
			Type:          domain.TypeUnderground,
			WasteCategory: domain.CategoryGlass,
			FillLevel:     10,
			Lat:           52.37,
			Lon:           4.9,
		})
		if err != nil {
			t.Fatalf("create container %s: %v", c.code, err)
		}
	}

	top, err := svc.TopByContainers(ctx, 1)
	if err != nil {
		t.Fatalf("top by containers: %v", err)
	}
	if len(top) != 1 || top[0].Key != "centrum" {
		t.Fatalf("expected centrum on top got %+v", top)
	}

	all, err := svc.TopByContainers(ctx, 0)
	if err != nil {
		t.Fatalf("top by containers unlimited: %v", err)
	}
	if len(all) != 2 || all[0].ContainerCount < all[1].ContainerCount {
		t.Fatalf("expected full ranking busiest first got %+v", all)
	}
}
