package viewer

import (
	"math"

	"github.com/3nids/CadInput/pkg/constraint"
	"github.com/3nids/CadInput/pkg/geometry"
)

// Style selects the pen of an overlay primitive
type Style int

const (
	StyleNeutral Style = iota
	StyleLocked
	StyleConstruction
)

// Pixel sizes of the fixed overlay parts
const (
	CrossSize       = 5
	AngleArcRadius  = 20
	AngleTickLength = 60
)

// Line is an overlay line in pixel coordinates
type Line struct {
	From, To geometry.Point
	Style    Style
}

// Circle is an overlay circle in pixel coordinates
type Circle struct {
	Center geometry.Point
	Radius float64
	Style  Style
}

// Arc is an overlay arc in pixel coordinates. Angles are in radians,
// measured clockwise on screen from the positive X axis.
type Arc struct {
	Center geometry.Point
	Radius float64
	Start  float64
	Sweep  float64
	Style  Style
}

// Overlay holds the visual aids drawn over the map
type Overlay struct {
	Lines   []Line
	Circles []Circle
	Arcs    []Arc
}

// IsEmpty reports whether nothing is drawn
func (o Overlay) IsEmpty() bool {
	return len(o.Lines) == 0 && len(o.Circles) == 0 && len(o.Arcs) == 0
}

// OverlayInput is everything BuildOverlay needs
type OverlayInput struct {
	Transform         MapToPixel
	Locks             constraint.LockState
	History           constraint.PointHistory
	Cursor            geometry.Point // constrained cursor position
	Segment           *constraint.ReferenceSegment
	ConstructionLines int
}

// BuildOverlay computes the aids for the current locks: the alignment
// segment, angle ray and reference, distance circle, X and Y guide lines,
// construction lines and the cursor cross.
func BuildOverlay(in OverlayInput) Overlay {
	var o Overlay
	t := in.Transform
	if !t.Valid() || !in.Locks.Applies() {
		return o
	}

	last := t.ToPixelPoint(in.History.Last)

	if in.Locks.AlignPending() && in.Segment != nil {
		o.Lines = append(o.Lines, Line{
			From:  t.ToPixelPoint(in.Segment.Start),
			To:    t.ToPixelPoint(in.Segment.End),
			Style: StyleConstruction,
		})
	}

	if angle := in.Locks.Axes[constraint.AxisAngle]; angle.Locked {
		reference := 0.0
		if angle.Relative {
			reference = in.History.LastSegmentAngle()
		}
		a := reference + geometry.Radians(angle.Value)

		// screen angles run clockwise
		o.Arcs = append(o.Arcs, Arc{
			Center: last,
			Radius: AngleArcRadius,
			Start:  -reference,
			Sweep:  -geometry.Radians(angle.Value),
			Style:  StyleNeutral,
		})
		o.Lines = append(o.Lines, Line{
			From:  last,
			To:    last.Add(geometry.NewPoint(math.Cos(-reference), math.Sin(-reference)).Mul(AngleTickLength)),
			Style: StyleNeutral,
		})

		extent := t.Width + t.Height
		dir := geometry.NewPoint(math.Cos(-a), math.Sin(-a)).Mul(extent)
		o.Lines = append(o.Lines, Line{From: last.Sub(dir), To: last.Add(dir), Style: StyleLocked})
	}

	if distance := in.Locks.Axes[constraint.AxisDistance]; distance.Locked {
		o.Circles = append(o.Circles, Circle{
			Center: last,
			Radius: t.Pixels(distance.Value),
			Style:  StyleLocked,
		})
	}

	if x := in.Locks.Axes[constraint.AxisX]; x.Locked {
		value := x.Value
		if x.Relative {
			value += in.History.Last.X
		}
		px, _ := t.ToPixel(geometry.NewPoint(value, 0))
		o.Lines = append(o.Lines, Line{
			From:  geometry.NewPoint(px, 0),
			To:    geometry.NewPoint(px, t.Height),
			Style: StyleLocked,
		})
	}

	if y := in.Locks.Axes[constraint.AxisY]; y.Locked {
		value := y.Value
		if y.Relative {
			value += in.History.Last.Y
		}
		_, py := t.ToPixel(geometry.NewPoint(0, value))
		o.Lines = append(o.Lines, Line{
			From:  geometry.NewPoint(0, py),
			To:    geometry.NewPoint(t.Width, py),
			Style: StyleLocked,
		})
	}

	cursor := t.ToPixelPoint(in.Cursor)
	construction := in.Locks.ConstructionMode
	if construction || in.ConstructionLines > 0 {
		o.Lines = append(o.Lines, Line{From: last, To: cursor, Style: StyleConstruction})
		if construction || in.ConstructionLines > 1 {
			o.Lines = append(o.Lines, Line{
				From:  t.ToPixelPoint(in.History.Previous),
				To:    last,
				Style: StyleConstruction,
			})
		}
	}

	o.Lines = append(o.Lines,
		Line{
			From:  cursor.Add(geometry.NewPoint(-CrossSize, -CrossSize)),
			To:    cursor.Add(geometry.NewPoint(CrossSize, CrossSize)),
			Style: StyleConstruction,
		},
		Line{
			From:  cursor.Add(geometry.NewPoint(-CrossSize, CrossSize)),
			To:    cursor.Add(geometry.NewPoint(CrossSize, -CrossSize)),
			Style: StyleConstruction,
		},
	)

	return o
}
