package viewer

import (
	"image/color"
	"math"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	"github.com/3nids/CadInput/internal/session"
	"github.com/3nids/CadInput/pkg/geometry"
	"github.com/3nids/CadInput/pkg/layer"
	"github.com/3nids/CadInput/pkg/snapping"
)

var (
	featureColor      = color.RGBA{180, 180, 180, 255}
	currentColor      = color.RGBA{255, 200, 80, 255}
	neutralColor      = color.RGBA{0, 0, 100, 100}
	lockedColor       = color.RGBA{100, 100, 255, 150}
	constructionColor = color.RGBA{100, 255, 100, 225}
)

const (
	zoomStep    = 0.001
	arcSegments = 24
	pointRadius = 3
	fitMargin   = 20
)

// MapCanvas displays vector layers and feeds pointer events to a session
type MapCanvas struct {
	widget.BaseWidget

	mu          sync.Mutex
	transform   MapToPixel
	session     *session.Session
	index       *snapping.Index
	tolerancePx float64
	layers      []layer.Layer
	last        session.Outcome
	panFrom     *fyne.Position
	onOutcome   func(session.Outcome)
}

var (
	_ desktop.Hoverable   = (*MapCanvas)(nil)
	_ desktop.Mouseable   = (*MapCanvas)(nil)
	_ fyne.Scrollable     = (*MapCanvas)(nil)
	_ fyne.WidgetRenderer = (*mapCanvasRenderer)(nil)
)

// NewMapCanvas creates a canvas over the layers of index
func NewMapCanvas(sess *session.Session, index *snapping.Index, transform MapToPixel, tolerancePx float64) *MapCanvas {
	c := &MapCanvas{
		transform:   transform,
		session:     sess,
		index:       index,
		tolerancePx: tolerancePx,
	}
	c.ExtendBaseWidget(c)
	c.updateTolerance()
	return c
}

// SetOnOutcome sets the callback run after every handled pointer event
func (c *MapCanvas) SetOnOutcome(callback func(session.Outcome)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onOutcome = callback
}

// SetLayers replaces the displayed and snappable layers. Safe to call from
// any goroutine.
func (c *MapCanvas) SetLayers(layers []layer.Layer) {
	c.mu.Lock()
	c.layers = layer.Clone(layers)
	c.mu.Unlock()
	c.index.SetLayers(layers)
	fyne.Do(c.Refresh)
}

// AddFeature adds a digitized feature to the view and the snapping index
func (c *MapCanvas) AddFeature(f layer.Feature) {
	c.index.AddFeature(f)

	// the renderer may still iterate the old slice, so swap in a new one
	c.mu.Lock()
	layers := layer.Clone(c.layers)
	found := false
	for i := range layers {
		if layers[i].Name == f.Layer {
			layers[i].AddFeature(f)
			found = true
			break
		}
	}
	if !found {
		l := layer.NewLayer(f.Layer)
		l.AddFeature(f)
		layers = append(layers, *l)
	}
	c.layers = layers
	c.mu.Unlock()
	c.Refresh()
}

// Layers returns a copy of the displayed layers
func (c *MapCanvas) Layers() []layer.Layer {
	c.mu.Lock()
	defer c.mu.Unlock()
	return layer.Clone(c.layers)
}

// Transform returns the current map to pixel transform
func (c *MapCanvas) Transform() MapToPixel {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.transform
}

// FitLayers zooms to the extent of all layers
func (c *MapCanvas) FitLayers() {
	c.mu.Lock()
	c.transform.Fit(layer.Extent(c.layers), fitMargin)
	c.mu.Unlock()
	c.updateTolerance()
	c.Refresh()
}

func (c *MapCanvas) updateTolerance() {
	c.mu.Lock()
	t := c.transform
	c.mu.Unlock()
	if t.Valid() {
		c.index.SetTolerance(t.MapUnits(c.tolerancePx))
	}
}

func (c *MapCanvas) dispatch(kind session.EventKind, pos fyne.Position) {
	c.mu.Lock()
	t := c.transform
	c.mu.Unlock()
	if !t.Valid() {
		return
	}

	out := c.session.HandleEvent(session.Event{
		Kind: kind,
		Pos:  t.ToMap(float64(pos.X), float64(pos.Y)),
	})

	c.mu.Lock()
	c.last = out
	callback := c.onOutcome
	c.mu.Unlock()

	if callback != nil {
		callback(out)
	}
	c.Refresh()
}

// MouseIn is called when the pointer enters the canvas
func (c *MapCanvas) MouseIn(ev *desktop.MouseEvent) {
	c.MouseMoved(ev)
}

// MouseMoved constrains the hover position, or pans while a pan drag is active
func (c *MapCanvas) MouseMoved(ev *desktop.MouseEvent) {
	c.mu.Lock()
	if c.panFrom != nil {
		c.transform.Pan(float64(ev.Position.X-c.panFrom.X), float64(ev.Position.Y-c.panFrom.Y))
		pos := ev.Position
		c.panFrom = &pos
		c.mu.Unlock()
		c.Refresh()
		return
	}
	c.mu.Unlock()
	c.dispatch(session.EventMove, ev.Position)
}

// MouseOut is called when the pointer leaves the canvas
func (c *MapCanvas) MouseOut() {}

// MouseDown starts a click with the primary button and a pan with the others
func (c *MapCanvas) MouseDown(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary {
		c.mu.Lock()
		pos := ev.Position
		c.panFrom = &pos
		c.mu.Unlock()
		return
	}
	c.dispatch(session.EventPress, ev.Position)
}

// MouseUp ends a click or a pan
func (c *MapCanvas) MouseUp(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary {
		c.mu.Lock()
		c.panFrom = nil
		c.mu.Unlock()
		return
	}
	c.dispatch(session.EventRelease, ev.Position)
}

// Scrolled zooms around the pointer
func (c *MapCanvas) Scrolled(ev *fyne.ScrollEvent) {
	c.mu.Lock()
	if c.transform.Valid() {
		anchor := c.transform.ToMap(float64(ev.Position.X), float64(ev.Position.Y))
		c.transform.Zoom(math.Exp(-float64(ev.Scrolled.DY)*zoomStep), anchor)
	}
	c.mu.Unlock()
	c.updateTolerance()
	c.Refresh()
}

// CreateRenderer creates the renderer for the widget
func (c *MapCanvas) CreateRenderer() fyne.WidgetRenderer {
	return &mapCanvasRenderer{
		canvas:  c,
		objects: []fyne.CanvasObject{},
	}
}

// mapCanvasRenderer implements fyne.WidgetRenderer
type mapCanvasRenderer struct {
	canvas  *MapCanvas
	objects []fyne.CanvasObject
}

func (r *mapCanvasRenderer) Layout(size fyne.Size) {
	r.canvas.mu.Lock()
	r.canvas.transform.Resize(float64(size.Width), float64(size.Height))
	r.canvas.mu.Unlock()
	r.canvas.updateTolerance()
	r.Refresh()
}

func (r *mapCanvasRenderer) MinSize() fyne.Size {
	return fyne.NewSize(400, 400)
}

func (r *mapCanvasRenderer) Refresh() {
	c := r.canvas
	c.mu.Lock()
	t := c.transform
	layers := c.layers
	last := c.last
	c.mu.Unlock()

	r.objects = make([]fyne.CanvasObject, 0)
	if !t.Valid() {
		canvas.Refresh(c)
		return
	}

	current := c.index.Current()
	for _, l := range layers {
		col := featureColor
		if l.Name == current {
			col = currentColor
		}
		for _, s := range l.Segments() {
			r.objects = append(r.objects, newLine(t.ToPixelPoint(s.Start), t.ToPixelPoint(s.End), col, 1))
		}
		for _, f := range l.Features {
			if f.Kind == layer.KindPoint && len(f.Points) > 0 {
				r.objects = append(r.objects, newCircle(t.ToPixelPoint(f.Points[0]), pointRadius, col, true))
			}
		}
	}

	overlay := BuildOverlay(OverlayInput{
		Transform:         t,
		Locks:             c.session.Locks(),
		History:           c.session.History(),
		Cursor:            last.Point,
		Segment:           last.Snap.Segment,
		ConstructionLines: c.session.ConstructionLines(),
	})
	for _, l := range overlay.Lines {
		r.objects = append(r.objects, newLine(l.From, l.To, styleColor(l.Style), styleWidth(l.Style)))
	}
	for _, ci := range overlay.Circles {
		r.objects = append(r.objects, newCircle(ci.Center, ci.Radius, styleColor(ci.Style), false))
	}
	for _, a := range overlay.Arcs {
		for _, seg := range arcPolyline(a) {
			r.objects = append(r.objects, newLine(seg.Start, seg.End, styleColor(a.Style), styleWidth(a.Style)))
		}
	}

	canvas.Refresh(c)
}

func (r *mapCanvasRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

func (r *mapCanvasRenderer) Destroy() {}

func styleColor(s Style) color.Color {
	switch s {
	case StyleLocked:
		return lockedColor
	case StyleConstruction:
		return constructionColor
	default:
		return neutralColor
	}
}

func styleWidth(s Style) float32 {
	if s == StyleNeutral {
		return 1
	}
	return 2
}

func newLine(from, to geometry.Point, col color.Color, width float32) *canvas.Line {
	line := canvas.NewLine(col)
	line.StrokeWidth = width
	line.Position1 = fyne.NewPos(float32(from.X), float32(from.Y))
	line.Position2 = fyne.NewPos(float32(to.X), float32(to.Y))
	return line
}

func newCircle(center geometry.Point, radius float64, col color.Color, filled bool) *canvas.Circle {
	circle := canvas.NewCircle(color.Transparent)
	if filled {
		circle.FillColor = col
	}
	circle.StrokeColor = col
	circle.StrokeWidth = 2
	size := float32(2 * radius)
	circle.Resize(fyne.NewSize(size, size))
	circle.Move(fyne.NewPos(float32(center.X-radius), float32(center.Y-radius)))
	return circle
}

// arcPolyline approximates an arc with straight segments
func arcPolyline(a Arc) []geometry.Segment {
	segments := make([]geometry.Segment, 0, arcSegments)
	prev := a.Center.Add(geometry.FromAngle(a.Start).Mul(a.Radius))
	for i := 1; i <= arcSegments; i++ {
		angle := a.Start + a.Sweep*float64(i)/arcSegments
		next := a.Center.Add(geometry.FromAngle(angle).Mul(a.Radius))
		segments = append(segments, geometry.NewSegment(prev, next))
		prev = next
	}
	return segments
}
