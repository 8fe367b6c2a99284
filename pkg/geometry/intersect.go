package geometry

import "math"

// ParallelTolerance is the angle in degrees under which two lines are
// considered parallel (or collinear) and are not intersected.
const ParallelTolerance = 0.0001

// YAtX returns the ordinate of the infinite line through s at abscissa x.
// A horizontal line yields its own y. A vertical line never crosses the
// vertical x = const and reports false.
func YAtX(s Segment, x float64) (float64, bool) {
	d := s.Delta()
	if d.Y == 0 {
		return s.Start.Y, true
	}
	if d.X == 0 {
		return 0, false
	}
	return s.Start.Y + d.Y*(x-s.Start.X)/d.X, true
}

// XAtY returns the abscissa of the infinite line through s at ordinate y.
// A vertical line yields its own x. A horizontal line reports false.
func XAtY(s Segment, y float64) (float64, bool) {
	d := s.Delta()
	if d.X == 0 {
		return s.Start.X, true
	}
	if d.Y == 0 {
		return 0, false
	}
	return s.Start.X + d.X*(y-s.Start.Y)/d.Y, true
}

// AngleBetween returns the angle in degrees from line a to line b, in [0, 360)
func AngleBetween(a, b Segment) float64 {
	ang := math.Mod(Degrees(b.Angle()-a.Angle()), 360)
	if ang < 0 {
		ang += 360
	}
	return ang
}

// IsParallel reports whether both lines are parallel or collinear within
// ParallelTolerance. Degenerate lines have no direction and count as parallel.
func IsParallel(a, b Segment) bool {
	if a.IsDegenerate() || b.IsDegenerate() {
		return true
	}
	ang := AngleBetween(a, b)
	t := ParallelTolerance
	return ang < t || ang > 360-t || (ang > 180-t && ang < 180+t)
}

// IntersectLines intersects the infinite lines through a and b.
//
// Uses the determinant form:
//
//	denom = d1 × d2
//	t     = (b.Start - a.Start) × d2 / denom
//	P     = a.Start + t·d1
//
// Returns false when the lines are parallel or collinear.
func IntersectLines(a, b Segment) (Point, bool) {
	if IsParallel(a, b) {
		return Point{}, false
	}
	d1 := a.Delta()
	d2 := b.Delta()
	denom := d1.Cross(d2)
	if denom == 0 {
		return Point{}, false
	}
	t := b.Start.Sub(a.Start).Cross(d2) / denom
	return a.Start.Add(d1.Mul(t)), true
}

// IntersectCircleLine intersects the circle (center, radius) with the
// infinite line through the endpoints of line.
//
// With the endpoints expressed relative to the center:
//
//	D    = x1·y2 - x2·y1
//	DISC = r²·dr² - D²
//	x    = (D·dy ± sgn(dy)·dx·√DISC) / dr²
//	y    = (-D·dx ± |dy|·√DISC) / dr²
//
// sgn(0) is 1. DISC <= 0 (miss or tangent) returns false; a tangent point is
// not reported since a single touching root jumps around under tiny cursor moves.
func IntersectCircleLine(center Point, radius float64, line Segment) ([2]Point, bool) {
	p1 := line.Start.Sub(center)
	p2 := line.End.Sub(center)
	d := p2.Sub(p1)
	dr2 := d.LengthSquared()
	if dr2 == 0 {
		return [2]Point{}, false
	}

	cross := p1.Cross(p2)
	disc := radius*radius*dr2 - cross*cross
	if disc <= 0 {
		return [2]Point{}, false
	}

	sq := math.Sqrt(disc)
	sgn := 1.0
	if d.Y < 0 {
		sgn = -1
	}

	a := Point{
		X: (cross*d.Y + sgn*d.X*sq) / dr2,
		Y: (-cross*d.X + math.Abs(d.Y)*sq) / dr2,
	}
	b := Point{
		X: (cross*d.Y - sgn*d.X*sq) / dr2,
		Y: (-cross*d.X - math.Abs(d.Y)*sq) / dr2,
	}
	return [2]Point{center.Add(a), center.Add(b)}, true
}

// Nearest returns the candidate closest to p. The first candidate wins ties.
func Nearest(p Point, candidates [2]Point) Point {
	if candidates[0].DistanceSquared(p) <= candidates[1].DistanceSquared(p) {
		return candidates[0]
	}
	return candidates[1]
}

// ProjectOntoRay projects p onto the line through origin with direction
// angle a (radians). The result lies at the signed scalar projection of
// p - origin, so it may fall behind origin.
func ProjectOntoRay(origin Point, a float64, p Point) Point {
	dir := FromAngle(a)
	vP := dir.Dot(p.Sub(origin))
	return origin.Add(dir.Mul(vP))
}
