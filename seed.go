package wasteops

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/goliatone/go-wasteops/internal/collections"
	"github.com/goliatone/go-wasteops/internal/complaints"
	"github.com/goliatone/go-wasteops/internal/containers"
	"github.com/goliatone/go-wasteops/internal/domain"
	"github.com/goliatone/go-wasteops/internal/neighborhoods"
)

// Amsterdam city center, the anchor for generated container coordinates.
const (
	seedCenterLat = 52.3676
	seedCenterLon = 4.9041
)

// SeedSummary reports what a sample-data run produced.
type SeedSummary struct {
	Neighborhoods     int
	Containers        int
	CollectionRecords int
	Complaints        int
}

// SeedOption tunes the sample-data generator.
type SeedOption func(*seeder)

// WithSeedRand fixes the random source so runs are reproducible.
func WithSeedRand(r *rand.Rand) SeedOption {
	return func(s *seeder) {
		if r != nil {
			s.rand = r
		}
	}
}

// WithSeedClock overrides the reference time for generated histories.
func WithSeedClock(clock func() time.Time) SeedOption {
	return func(s *seeder) {
		if clock != nil {
			s.now = clock
		}
	}
}

type seeder struct {
	rand *rand.Rand
	now  func() time.Time
}

// SeedSampleData populates the module with a demo fleet: containers across
// every district, thirty days of tonnage history, and a complaint backlog
// whose statuses follow the aging rule.
func (m *Module) SeedSampleData(ctx context.Context, opts ...SeedOption) (*SeedSummary, error) {
	s := &seeder{
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
		now:  time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	summary := &SeedSummary{}

	created, err := m.Neighborhoods().EnsureDefaults(ctx)
	if err != nil {
		return nil, err
	}
	summary.Neighborhoods = created

	if err := s.seedContainers(ctx, m.Containers(), summary); err != nil {
		return nil, err
	}
	if err := s.seedCollections(ctx, m.Collections(), summary); err != nil {
		return nil, err
	}
	if err := s.seedComplaints(ctx, m.Complaints(), summary); err != nil {
		return nil, err
	}

	return summary, nil
}

func (s *seeder) seedContainers(ctx context.Context, svc ContainerService, summary *SeedSummary) error {
	now := s.now()
	categories := domain.WasteCategories()

	for _, name := range neighborhoods.DefaultNames() {
		count := 5 + s.rand.Intn(16)
		baseLat := seedCenterLat + s.uniform(-0.05, 0.05)
		baseLon := seedCenterLon + s.uniform(-0.05, 0.05)

		for i := 0; i < count; i++ {
			req := containers.CreateContainerRequest{
				Code:          fmt.Sprintf("%s-%03d", seedCodePrefix(name), i+1),
				Neighborhood:  name,
				Lat:           baseLat + s.uniform(-0.02, 0.02),
				Lon:           baseLon + s.uniform(-0.02, 0.02),
				WasteCategory: categories[s.rand.Intn(len(categories))],
			}

			if s.rand.Intn(2) == 0 {
				req.Type = domain.TypeSmartBin
				req.FillLevel = s.rand.Intn(101)
				if s.rand.Intn(2) == 0 {
					req.Status = domain.StatusOpen
				} else {
					req.Status = domain.StatusClosed
				}
			} else {
				req.Type = domain.TypeUnderground
				req.FillLevel = 30 + s.rand.Intn(66)
			}

			emptied := now.AddDate(0, 0, -s.rand.Intn(15))
			req.LastEmptiedAt = &emptied

			_, created, err := svc.Upsert(ctx, req)
			if err != nil {
				return err
			}
			if created {
				summary.Containers++
			}
		}
	}
	return nil
}

func (s *seeder) seedCollections(ctx context.Context, svc CollectionService, summary *SeedSummary) error {
	today := s.now()

	for offset := 29; offset >= 0; offset-- {
		date := today.AddDate(0, 0, -offset)
		for _, category := range domain.WasteCategories() {
			kg := 500 + s.rand.Intn(4501)
			if date.Weekday() == time.Tuesday {
				kg += 50
			}
			if category == domain.CategoryGeneral {
				kg += 100
			}

			_, err := svc.Record(ctx, collections.RecordCollectionRequest{
				Date:     date,
				Category: category,
				Tons:     float64(kg) / 1000,
			})
			if err != nil {
				return err
			}
			summary.CollectionRecords++
		}
	}
	return nil
}

func (s *seeder) seedComplaints(ctx context.Context, svc ComplaintService, summary *SeedSummary) error {
	now := s.now()
	names := neighborhoods.DefaultNames()
	kinds := domain.ComplaintTypes()

	for i := 0; i < 50; i++ {
		submitted := now.Add(-time.Duration(s.rand.Intn(31))*24*time.Hour -
			time.Duration(s.rand.Intn(25))*time.Hour)

		req := complaints.ReportComplaintRequest{
			Neighborhood: names[s.rand.Intn(len(names))],
			Type:         kinds[s.rand.Intn(len(kinds))],
			SubmittedAt:  &submitted,
		}
		if s.rand.Float64() > 0.3 {
			req.ContainerCode = fmt.Sprintf("%s-%03d", seedCodePrefix(names[s.rand.Intn(len(names))]), 1+s.rand.Intn(999))
		}

		if _, err := svc.Report(ctx, req); err != nil {
			return err
		}
		summary.Complaints++
	}

	// Every report starts as new; the aging sweep assigns pending/resolved
	// based on submission time.
	if _, err := svc.AgeStatuses(ctx); err != nil {
		return err
	}
	return nil
}

func (s *seeder) uniform(min, max float64) float64 {
	return min + s.rand.Float64()*(max-min)
}

func seedCodePrefix(name string) string {
	runes := []rune(name)
	if len(runes) > 3 {
		runes = runes[:3]
	}
	return string(runes)
}
