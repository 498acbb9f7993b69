package reports_test

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-wasteops/internal/domain"
	"github.com/goliatone/go-wasteops/internal/reports"
)

func TestMapDefaultsToPinsWithLabels(t *testing.T) {
	f := newFixture(t)
	f.seedContainer(t, "Cen-001", domain.TypeUnderground, domain.CategoryGeneral, 50, "")
	f.seedContainer(t, "Cen-002", domain.TypeSmartBin, domain.CategoryPlastic, 20, domain.StatusOpen)

	doc, err := f.reports.Map(context.Background(), reports.MapQuery{})
	if err != nil {
		t.Fatalf("map: %v", err)
	}

	if doc.Viewport != reports.DefaultViewport() {
		t.Fatalf("unexpected viewport %+v", doc.Viewport)
	}
	if len(doc.Layers) != 2 {
		t.Fatalf("expected pin and label layers got %d", len(doc.Layers))
	}
	if doc.Layers[0].Kind != reports.LayerPins {
		t.Fatalf("expected pins layer first got %q", doc.Layers[0].Kind)
	}
	if len(doc.Layers[0].Points) != 2 {
		t.Fatalf("expected 2 points got %d", len(doc.Layers[0].Points))
	}
	want := reports.Color{180, 0, 200, 140}
	if doc.Layers[0].Points[0].Color != want {
		t.Fatalf("unexpected pin color %v", doc.Layers[0].Points[0].Color)
	}
}

func TestMapCategoriesUsePalette(t *testing.T) {
	f := newFixture(t)
	f.seedContainer(t, "Cen-001", domain.TypeUnderground, domain.CategoryRecycling, 50, "")

	doc, err := f.reports.Map(context.Background(), reports.MapQuery{Kind: reports.LayerCategory})
	if err != nil {
		t.Fatalf("map: %v", err)
	}
	point := doc.Layers[0].Points[0]
	if point.Color != (reports.Color{46, 139, 87, 255}) {
		t.Fatalf("unexpected recycling color %v", point.Color)
	}
}

func TestMapFillLevelRampAndElevation(t *testing.T) {
	f := newFixture(t)
	f.seedContainer(t, "Cen-001", domain.TypeUnderground, domain.CategoryGeneral, 100, "")
	f.seedContainer(t, "Cen-002", domain.TypeUnderground, domain.CategoryGeneral, 0, "")

	doc, err := f.reports.Map(context.Background(), reports.MapQuery{Kind: reports.LayerFillLevel})
	if err != nil {
		t.Fatalf("map: %v", err)
	}

	byCode := map[string]reports.Point{}
	for _, point := range doc.Layers[0].Points {
		byCode[point.Code] = point
	}

	full := byCode["Cen-001"]
	if full.Color != (reports.Color{255, 0, 0, 180}) {
		t.Fatalf("expected full container to render red got %v", full.Color)
	}
	if full.Elevation != 1000 {
		t.Fatalf("expected 1000m column got %v", full.Elevation)
	}

	empty := byCode["Cen-002"]
	if empty.Color != (reports.Color{0, 255, 0, 180}) {
		t.Fatalf("expected empty container to render green got %v", empty.Color)
	}
	if empty.Elevation != 0 {
		t.Fatalf("expected flat column got %v", empty.Elevation)
	}
}

func TestMapHeatmapWeightsByFill(t *testing.T) {
	f := newFixture(t)
	f.seedContainer(t, "Cen-001", domain.TypeUnderground, domain.CategoryGeneral, 75, "")

	doc, err := f.reports.Map(context.Background(), reports.MapQuery{Kind: reports.LayerHeatmap})
	if err != nil {
		t.Fatalf("map: %v", err)
	}
	if doc.Layers[0].Points[0].Weight != 75 {
		t.Fatalf("expected weight 75 got %v", doc.Layers[0].Points[0].Weight)
	}
}

func TestMapRejectsUnknownLayer(t *testing.T) {
	f := newFixture(t)

	_, err := f.reports.Map(context.Background(), reports.MapQuery{Kind: "voronoi"})
	if !errors.Is(err, reports.ErrLayerInvalid) {
		t.Fatalf("expected ErrLayerInvalid got %v", err)
	}
}
