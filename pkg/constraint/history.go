package constraint

import "github.com/3nids/CadInput/pkg/geometry"

// PointHistory holds the last committed points and the live cursor
type PointHistory struct {
	Previous geometry.Point // committed two clicks ago
	Last     geometry.Point // most recent committed click
	Current  geometry.Point // live cursor
}

// Commit returns the history advanced by one committed point
func (h PointHistory) Commit(p geometry.Point) PointHistory {
	return PointHistory{Previous: h.Last, Last: p, Current: p}
}

// WithCurrent returns the history with an updated live cursor
func (h PointHistory) WithCurrent(p geometry.Point) PointHistory {
	h.Current = p
	return h
}

// LastSegmentAngle returns the direction of the last committed segment in radians
func (h PointHistory) LastSegmentAngle() float64 {
	return h.Last.Sub(h.Previous).Angle()
}

// ReferenceSegment is a segment found near the cursor by the snapping
// collaborator. Nearest is the point of the segment closest to the cursor.
type ReferenceSegment struct {
	Start   geometry.Point
	End     geometry.Point
	Nearest geometry.Point
}

// Line returns the infinite line through both endpoints
func (r ReferenceSegment) Line() geometry.Segment {
	return geometry.NewSegment(r.Start, r.End)
}
