package ingest_test

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/goliatone/go-wasteops/internal/containers"
	"github.com/goliatone/go-wasteops/internal/ingest"
)

var testNow = time.Date(2025, time.March, 12, 9, 0, 0, 0, time.UTC)

type stubFetcher struct {
	payload []byte
	err     error
	calls   int
}

func (f *stubFetcher) Fetch(context.Context) ([]byte, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.payload, nil
}

func samplePayload(t *testing.T) []byte {
	t.Helper()
	data, err := json.Marshal(map[string]any{
		"containers": []map[string]any{
			{
				"id":             "Cen-001",
				"neighborhood":   "Centrum",
				"lat":            52.37,
				"lon":            4.9,
				"type":           "Underground Container",
				"waste_category": "Glass",
				"fill_level":     40,
				"status":         "N/A",
				"last_emptied":   "2025-03-10",
				"capacity_kg":    500,
			},
			{
				"id":             "Noo-001",
				"neighborhood":   "Noord",
				"lat":            52.4,
				"lon":            4.92,
				"type":           "Smart Bin",
				"waste_category": "Plastic",
				"fill_level":     85,
				"status":         "Open",
			},
		},
	})
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	return data
}

func newFixture(t *testing.T, fetcher *stubFetcher) (ingest.Service, containers.Service, *ingest.SnapshotStore) {
	t.Helper()
	store := ingest.NewSnapshotStore(filepath.Join(t.TempDir(), "containers.json"))
	containerSvc := containers.NewService(
		containers.NewMemoryContainerRepository(),
		containers.WithClock(func() time.Time { return testNow }),
	)
	svc := ingest.NewService(fetcher, store, containerSvc,
		ingest.WithClock(func() time.Time { return testNow }),
	)
	return svc, containerSvc, store
}

func TestRefreshImportsFromSource(t *testing.T) {
	fetcher := &stubFetcher{payload: samplePayload(t)}
	svc, containerSvc, store := newFixture(t, fetcher)

	result, err := svc.Refresh(context.Background(), ingest.RefreshOptions{Force: true})
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if !result.FromSource {
		t.Fatal("expected source fetch")
	}
	if result.Created != 2 || result.Updated != 0 {
		t.Fatalf("unexpected counts %+v", result)
	}

	if _, ok := store.Stat(); !ok {
		t.Fatal("expected snapshot on disk")
	}

	rec, err := containerSvc.GetByCode(context.Background(), "Noo-001")
	if err != nil {
		t.Fatalf("imported container missing: %v", err)
	}
	if rec.FillLevel != 85 {
		t.Fatalf("unexpected fill %d", rec.FillLevel)
	}
}

func TestRefreshReusesFreshSnapshot(t *testing.T) {
	fetcher := &stubFetcher{payload: samplePayload(t)}
	svc, _, store := newFixture(t, fetcher)

	if err := store.Save(samplePayload(t)); err != nil {
		t.Fatalf("seed snapshot: %v", err)
	}

	result, err := svc.Refresh(context.Background(), ingest.RefreshOptions{})
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if result.FromSource {
		t.Fatal("expected snapshot import")
	}
	if fetcher.calls != 0 {
		t.Fatalf("expected no upstream calls got %d", fetcher.calls)
	}
}

func TestRefreshFallsBackToSnapshotOnFetchFailure(t *testing.T) {
	fetcher := &stubFetcher{err: ingest.ErrSourceUnavailable}
	svc, _, store := newFixture(t, fetcher)

	if err := store.Save(samplePayload(t)); err != nil {
		t.Fatalf("seed snapshot: %v", err)
	}

	// Force skips the freshness check, so the fetch runs and fails.
	result, err := svc.Refresh(context.Background(), ingest.RefreshOptions{Force: true})
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if result.FromSource {
		t.Fatal("expected snapshot fallback")
	}
	if result.Containers != 2 {
		t.Fatalf("expected 2 containers got %d", result.Containers)
	}
}

func TestRefreshFailsWithoutAnyData(t *testing.T) {
	fetcher := &stubFetcher{err: ingest.ErrSourceUnavailable}
	svc, _, _ := newFixture(t, fetcher)

	_, err := svc.Refresh(context.Background(), ingest.RefreshOptions{Force: true})
	if !errors.Is(err, ingest.ErrSourceUnavailable) {
		t.Fatalf("expected ErrSourceUnavailable got %v", err)
	}
}

func TestRefreshRejectsInvalidPayload(t *testing.T) {
	fetcher := &stubFetcher{payload: []byte(`{"containers": [{"id": ""}]}`)}
	svc, _, _ := newFixture(t, fetcher)

	_, err := svc.Refresh(context.Background(), ingest.RefreshOptions{Force: true})
	if !errors.Is(err, ingest.ErrPayloadInvalid) {
		t.Fatalf("expected ErrPayloadInvalid got %v", err)
	}
}

func TestRefreshSkipsUnknownEnums(t *testing.T) {
	payload, err := json.Marshal(map[string]any{
		"containers": []map[string]any{
			{
				"id":             "Cen-001",
				"neighborhood":   "Centrum",
				"lat":            52.37,
				"lon":            4.9,
				"type":           "Teleporter",
				"waste_category": "Glass",
				"fill_level":     40,
			},
		},
	})
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}

	fetcher := &stubFetcher{payload: payload}
	svc, _, _ := newFixture(t, fetcher)

	result, err := svc.Refresh(context.Background(), ingest.RefreshOptions{Force: true})
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if result.Skipped != 1 || result.Created != 0 {
		t.Fatalf("expected skip, got %+v", result)
	}
}

func TestStatusReportsSnapshot(t *testing.T) {
	fetcher := &stubFetcher{payload: samplePayload(t)}
	svc, _, store := newFixture(t, fetcher)

	status, err := svc.Status(context.Background())
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if status.SnapshotExists {
		t.Fatal("expected no snapshot yet")
	}

	if err := store.Save(samplePayload(t)); err != nil {
		t.Fatalf("save snapshot: %v", err)
	}

	status, err = svc.Status(context.Background())
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if !status.SnapshotExists {
		t.Fatal("expected snapshot")
	}
	if status.Containers != 2 {
		t.Fatalf("expected 2 containers got %d", status.Containers)
	}
}
