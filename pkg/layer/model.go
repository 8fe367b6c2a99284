package layer

import (
	"errors"
	"fmt"

	"github.com/3nids/CadInput/pkg/geometry"
	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when a layer does not exist
	ErrNotFound = errors.New("layer not found")
	// ErrEmptyFeature is returned for features without enough vertices
	ErrEmptyFeature = errors.New("feature has too few points")
)

// Kind is the geometry type of a feature
type Kind string

const (
	KindPoint Kind = "point"
	KindLine  Kind = "line"
)

// Feature is a single digitized geometry
type Feature struct {
	ID     string
	Layer  string
	Kind   Kind
	Points []geometry.Point
}

// NewFeature creates a feature with a fresh ID
func NewFeature(layer string, kind Kind, points ...geometry.Point) Feature {
	return Feature{
		ID:     uuid.NewString(),
		Layer:  layer,
		Kind:   kind,
		Points: points,
	}
}

// Validate checks the vertex count against the feature kind
func (f Feature) Validate() error {
	switch f.Kind {
	case KindPoint:
		if len(f.Points) != 1 {
			return fmt.Errorf("point feature %s has %d points: %w", f.ID, len(f.Points), ErrEmptyFeature)
		}
	case KindLine:
		if len(f.Points) < 2 {
			return fmt.Errorf("line feature %s has %d points: %w", f.ID, len(f.Points), ErrEmptyFeature)
		}
	default:
		return fmt.Errorf("feature %s has unknown kind %q", f.ID, f.Kind)
	}
	return nil
}

// Segments returns the consecutive vertex pairs of a line feature
func (f Feature) Segments() []geometry.Segment {
	if f.Kind != KindLine || len(f.Points) < 2 {
		return nil
	}
	segments := make([]geometry.Segment, 0, len(f.Points)-1)
	for i := 1; i < len(f.Points); i++ {
		segments = append(segments, geometry.NewSegment(f.Points[i-1], f.Points[i]))
	}
	return segments
}

// Layer is a named collection of features
type Layer struct {
	Name     string
	Features []Feature
}

// NewLayer creates a new, empty layer
func NewLayer(name string) *Layer {
	return &Layer{
		Name:     name,
		Features: make([]Feature, 0),
	}
}

// AddFeature adds a feature to the layer
func (l *Layer) AddFeature(f Feature) {
	f.Layer = l.Name
	l.Features = append(l.Features, f)
}

// FeatureCount returns the number of features in the layer
func (l Layer) FeatureCount() int {
	return len(l.Features)
}

// Vertices returns every vertex of every feature
func (l Layer) Vertices() []geometry.Point {
	var vertices []geometry.Point
	for _, f := range l.Features {
		vertices = append(vertices, f.Points...)
	}
	return vertices
}

// Segments returns every segment of every line feature
func (l Layer) Segments() []geometry.Segment {
	var segments []geometry.Segment
	for _, f := range l.Features {
		segments = append(segments, f.Segments()...)
	}
	return segments
}

// BoundingBox calculates the bounding box of the entire layer
func (l Layer) BoundingBox() geometry.BoundingBox {
	bbox := geometry.NewBoundingBox()
	for _, v := range l.Vertices() {
		bbox.Extend(v)
	}
	return bbox
}

// Extent returns the bounding box of several layers
func Extent(layers []Layer) geometry.BoundingBox {
	bbox := geometry.NewBoundingBox()
	for _, l := range layers {
		for _, v := range l.Vertices() {
			bbox.Extend(v)
		}
	}
	return bbox
}

// Clone returns a copy of the layer that shares no feature or point slice
// with the original
func (l Layer) Clone() Layer {
	c := Layer{Name: l.Name, Features: make([]Feature, len(l.Features))}
	for i, f := range l.Features {
		f.Points = append([]geometry.Point(nil), f.Points...)
		c.Features[i] = f
	}
	return c
}

// Clone deep-copies a list of layers
func Clone(layers []Layer) []Layer {
	if layers == nil {
		return nil
	}
	out := make([]Layer, len(layers))
	for i, l := range layers {
		out[i] = l.Clone()
	}
	return out
}

// Merge combines layers of the same name, keeping the order in which names
// first appear. A feature whose ID was already seen in that layer is skipped.
func Merge(layers ...Layer) []Layer {
	var merged []Layer
	byName := make(map[string]int)
	seen := make(map[string]map[string]bool)

	for _, l := range layers {
		n, ok := byName[l.Name]
		if !ok {
			n = len(merged)
			byName[l.Name] = n
			seen[l.Name] = make(map[string]bool)
			merged = append(merged, Layer{Name: l.Name, Features: make([]Feature, 0, len(l.Features))})
		}
		for _, f := range l.Features {
			if f.ID != "" && seen[l.Name][f.ID] {
				continue
			}
			seen[l.Name][f.ID] = true
			merged[n].AddFeature(f)
		}
	}
	return merged
}
