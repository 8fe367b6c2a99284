// Package snapping finds vertices and segments of vector layers near the cursor.
package snapping

import (
	"errors"
	"math"
	"sync"

	"github.com/3nids/CadInput/pkg/constraint"
	"github.com/3nids/CadInput/pkg/geometry"
	"github.com/3nids/CadInput/pkg/layer"
)

// ErrTargetHeld is returned when an exclusive target is already active
var ErrTargetHeld = errors.New("exclusive snap target already held")

// Options controls what the index snaps to
type Options struct {
	Tolerance float64 // search radius in map units
	Vertex    bool
	Segment   bool
}

// DefaultOptions snaps to vertices and segments within one map unit
func DefaultOptions() Options {
	return Options{Tolerance: 1, Vertex: true, Segment: true}
}

// Result is the outcome of a snap query. At most one of Point and Segment is set.
type Result struct {
	Point   *geometry.Point
	Segment *constraint.ReferenceSegment
	Layer   string
}

// IsEmpty reports whether nothing was snapped
func (r Result) IsEmpty() bool {
	return r.Point == nil && r.Segment == nil
}

// Index answers snap queries over a set of layers, one of them current
type Index struct {
	mu        sync.Mutex
	opts      Options
	current   string
	layers    []layer.Layer
	exclusive *geometry.Point
}

// NewIndex builds an index over a copy of layers
func NewIndex(layers []layer.Layer, current string, opts Options) *Index {
	return &Index{
		opts:    opts,
		current: current,
		layers:  layer.Clone(layers),
	}
}

// SetLayers replaces the indexed layers with a copy of layers
func (i *Index) SetLayers(layers []layer.Layer) {
	cloned := layer.Clone(layers)
	i.mu.Lock()
	defer i.mu.Unlock()
	i.layers = cloned
}

// AddFeature adds a feature to its layer, creating the layer when missing
func (i *Index) AddFeature(f layer.Feature) {
	f.Points = append([]geometry.Point(nil), f.Points...)
	i.mu.Lock()
	defer i.mu.Unlock()
	for n := range i.layers {
		if i.layers[n].Name == f.Layer {
			i.layers[n].AddFeature(f)
			return
		}
	}
	l := layer.NewLayer(f.Layer)
	l.AddFeature(f)
	i.layers = append(i.layers, *l)
}

// SetCurrent changes the current layer
func (i *Index) SetCurrent(name string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.current = name
}

// Current returns the name of the current layer
func (i *Index) Current() string {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.current
}

// SetTolerance changes the search radius, e.g. after a zoom
func (i *Index) SetTolerance(tolerance float64) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.opts.Tolerance = tolerance
}

// Options returns the active options
func (i *Index) Options() Options {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.opts
}

// Snap looks for, in order: a vertex of the current layer, a vertex of any
// other layer, a segment of the current layer, a segment of any other layer.
// While an exclusive target is held only that target can be snapped.
func (i *Index) Snap(p geometry.Point) Result {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.exclusive != nil {
		target := *i.exclusive
		if p.Distance(target) <= i.opts.Tolerance {
			return Result{Point: &target}
		}
		return Result{}
	}

	if i.opts.Vertex {
		for _, current := range []bool{true, false} {
			if v, name, ok := i.nearestVertex(p, current); ok {
				return Result{Point: &v, Layer: name}
			}
		}
	}
	if i.opts.Segment {
		for _, current := range []bool{true, false} {
			if s, name, ok := i.nearestSegment(p, current); ok {
				return Result{Segment: &s, Layer: name}
			}
		}
	}
	return Result{}
}

// WithExclusiveTarget makes p the only snappable point while fn runs
func (i *Index) WithExclusiveTarget(p geometry.Point, fn func()) error {
	i.mu.Lock()
	if i.exclusive != nil {
		i.mu.Unlock()
		return ErrTargetHeld
	}
	i.exclusive = &p
	i.mu.Unlock()

	defer func() {
		i.mu.Lock()
		i.exclusive = nil
		i.mu.Unlock()
	}()

	fn()
	return nil
}

func (i *Index) nearestVertex(p geometry.Point, current bool) (geometry.Point, string, bool) {
	var nearest geometry.Point
	var name string
	minDistance := math.MaxFloat64

	for _, l := range i.layers {
		if (l.Name == i.current) != current {
			continue
		}
		for _, vertex := range l.Vertices() {
			distance := p.Distance(vertex)
			if distance < minDistance {
				minDistance = distance
				nearest = vertex
				name = l.Name
			}
		}
	}

	return nearest, name, minDistance <= i.opts.Tolerance
}

func (i *Index) nearestSegment(p geometry.Point, current bool) (constraint.ReferenceSegment, string, bool) {
	var nearest constraint.ReferenceSegment
	var name string
	minDistance := math.MaxFloat64

	for _, l := range i.layers {
		if (l.Name == i.current) != current {
			continue
		}
		for _, s := range l.Segments() {
			if s.IsDegenerate() {
				continue
			}
			closest := s.ClosestPoint(p)
			distance := p.Distance(closest)
			if distance < minDistance {
				minDistance = distance
				nearest = constraint.ReferenceSegment{Start: s.Start, End: s.End, Nearest: closest}
				name = l.Name
			}
		}
	}

	return nearest, name, minDistance <= i.opts.Tolerance
}
