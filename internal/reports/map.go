package reports

import (
	"github.com/goliatone/go-wasteops/internal/domain"
)

// Viewport is the initial camera the map renders with, centered on Amsterdam.
type Viewport struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Zoom      int     `json:"zoom"`
	Pitch     int     `json:"pitch"`
}

// DefaultViewport returns the stock Amsterdam camera.
func DefaultViewport() Viewport {
	return Viewport{
		Latitude:  52.3676,
		Longitude: 4.9041,
		Zoom:      11,
		Pitch:     50,
	}
}

// LayerKind names the rendering strategies the map supports.
type LayerKind string

const (
	LayerPins      LayerKind = "pins"
	LayerHeatmap   LayerKind = "heatmap"
	LayerCategory  LayerKind = "categories"
	LayerFillLevel LayerKind = "fill_level"
)

// LayerKinds lists the supported map visualizations in menu order.
func LayerKinds() []LayerKind {
	return []LayerKind{LayerPins, LayerHeatmap, LayerCategory, LayerFillLevel}
}

// Color is an RGBA quadruple in the 0-255 range.
type Color [4]int

// Point is one container rendered on a map layer.
type Point struct {
	Code          string               `json:"code"`
	Lat           float64              `json:"lat"`
	Lon           float64              `json:"lon"`
	Type          string               `json:"type"`
	WasteCategory domain.WasteCategory `json:"waste_category"`
	FillLevel     int                  `json:"fill_level"`
	Status        string               `json:"status"`
	Color         Color                `json:"color"`
	Weight        float64              `json:"weight,omitempty"`
	Elevation     float64              `json:"elevation,omitempty"`
}

// Layer is a renderable slice of the map.
type Layer struct {
	Kind   LayerKind `json:"kind"`
	Points []Point   `json:"points"`
}

// MapDocument is the full payload a map client renders.
type MapDocument struct {
	Viewport Viewport `json:"viewport"`
	Layers   []Layer  `json:"layers"`
}

// MapQuery selects the visualization and optional filters.
type MapQuery struct {
	Kind            LayerKind
	WasteCategory   domain.WasteCategory
	NeighborhoodKey string
}

var (
	pinColor      = Color{180, 0, 200, 140}
	labelColor    = Color{0, 0, 0, 255}
	fallbackColor = Color{200, 200, 200, 255}

	categoryColors = map[domain.WasteCategory]Color{
		domain.CategoryRecycling: {46, 139, 87, 255},
		domain.CategoryGeneral:   {128, 128, 128, 255},
		domain.CategoryPaper:     {70, 130, 180, 255},
		domain.CategoryGlass:     {0, 128, 128, 255},
		domain.CategoryOrganic:   {139, 69, 19, 255},
		domain.CategoryPlastic:   {255, 165, 0, 255},
	}
)

// CategoryColor returns the palette entry for a waste stream.
func CategoryColor(category domain.WasteCategory) Color {
	if color, ok := categoryColors[category]; ok {
		return color
	}
	return fallbackColor
}

// FillColor maps a fill percentage onto the green-to-red ramp used by the
// 3D column layer.
func FillColor(fillLevel int) Color {
	r := int(float64(fillLevel) * 2.55)
	if r > 255 {
		r = 255
	}
	g := 255 - int(float64(fillLevel)*2.55)
	if g < 0 {
		g = 0
	}
	return Color{r, g, 0, 180}
}

// FillElevation converts a fill percentage into column height in meters.
func FillElevation(fillLevel int) float64 {
	return float64(fillLevel) * 10
}
