package geometry

// Segment is a pair of endpoints. Depending on the caller it stands for the
// bounded segment or for the infinite line through both endpoints.
type Segment struct {
	Start Point
	End   Point
}

// NewSegment creates a new segment
func NewSegment(start, end Point) Segment {
	return Segment{Start: start, End: end}
}

// Delta returns the vector from the start to the end point
func (s Segment) Delta() Point {
	return s.End.Sub(s.Start)
}

// Length returns the distance between both endpoints
func (s Segment) Length() float64 {
	return s.Start.Distance(s.End)
}

// Angle returns the direction from start to end in radians
func (s Segment) Angle() float64 {
	return s.Delta().Angle()
}

// IsDegenerate reports whether both endpoints coincide
func (s Segment) IsDegenerate() bool {
	return s.Start == s.End
}

// ClosestPoint returns the point of the bounded segment closest to p
func (s Segment) ClosestPoint(p Point) Point {
	v := s.Delta()
	ds := v.LengthSquared()
	if ds == 0 {
		return s.Start
	}
	t := v.Dot(p.Sub(s.Start)) / ds
	switch {
	case t <= 0:
		return s.Start
	case t >= 1:
		return s.End
	default:
		return s.Start.Add(v.Mul(t))
	}
}
