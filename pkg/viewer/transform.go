package viewer

import (
	"math"

	"github.com/3nids/CadInput/pkg/geometry"
)

// MinUnitsPerPixel bounds zooming in
const MinUnitsPerPixel = 1e-6

// MapToPixel converts between map coordinates and device pixels.
// Pixel Y grows downwards, map Y upwards.
type MapToPixel struct {
	Center        geometry.Point // map position shown in the middle of the view
	UnitsPerPixel float64
	Width         float64 // view size in pixels
	Height        float64
}

// NewMapToPixel creates a transform centered on center
func NewMapToPixel(center geometry.Point, unitsPerPixel, width, height float64) MapToPixel {
	return MapToPixel{
		Center:        center,
		UnitsPerPixel: unitsPerPixel,
		Width:         width,
		Height:        height,
	}
}

// Valid reports whether the transform can be used. A view that was not laid
// out yet has no size.
func (m MapToPixel) Valid() bool {
	return m.UnitsPerPixel > 0 && !math.IsInf(m.UnitsPerPixel, 0) &&
		m.Width > 0 && m.Height > 0 &&
		!m.Center.IsNaN()
}

// ToPixel converts a map position to pixel coordinates
func (m MapToPixel) ToPixel(p geometry.Point) (float64, float64) {
	x := (p.X-m.Center.X)/m.UnitsPerPixel + m.Width/2
	y := m.Height/2 - (p.Y-m.Center.Y)/m.UnitsPerPixel
	return x, y
}

// ToPixelPoint is ToPixel returning a point
func (m MapToPixel) ToPixelPoint(p geometry.Point) geometry.Point {
	return geometry.NewPoint(m.ToPixel(p))
}

// ToMap converts pixel coordinates to a map position
func (m MapToPixel) ToMap(x, y float64) geometry.Point {
	return geometry.Point{
		X: m.Center.X + (x-m.Width/2)*m.UnitsPerPixel,
		Y: m.Center.Y - (y-m.Height/2)*m.UnitsPerPixel,
	}
}

// MapUnits converts a length in pixels to map units
func (m MapToPixel) MapUnits(px float64) float64 {
	return px * m.UnitsPerPixel
}

// Pixels converts a length in map units to pixels
func (m MapToPixel) Pixels(units float64) float64 {
	return units / m.UnitsPerPixel
}

// Resize changes the view size, keeping the center
func (m *MapToPixel) Resize(width, height float64) {
	m.Width = width
	m.Height = height
}

// Pan moves the view by a drag of (dx, dy) pixels
func (m *MapToPixel) Pan(dx, dy float64) {
	m.Center.X -= dx * m.UnitsPerPixel
	m.Center.Y += dy * m.UnitsPerPixel
}

// Zoom scales the view by factor (< 1 zooms in) keeping anchor in place
func (m *MapToPixel) Zoom(factor float64, anchor geometry.Point) {
	if factor <= 0 {
		return
	}
	upp := m.UnitsPerPixel * factor
	if upp < MinUnitsPerPixel {
		upp = MinUnitsPerPixel
		factor = upp / m.UnitsPerPixel
	}
	m.Center = anchor.Add(m.Center.Sub(anchor).Mul(factor))
	m.UnitsPerPixel = upp
}

// Fit centers the view on bbox, leaving margin pixels around it
func (m *MapToPixel) Fit(bbox geometry.BoundingBox, margin float64) {
	if bbox.IsEmpty() || m.Width <= 2*margin || m.Height <= 2*margin {
		return
	}
	m.Center = bbox.Center()

	size := bbox.Size()
	upp := math.Max(size.X/(m.Width-2*margin), size.Y/(m.Height-2*margin))
	if upp > 0 {
		m.UnitsPerPixel = upp
	}
}
