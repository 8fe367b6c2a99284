package constraint

import "github.com/3nids/CadInput/pkg/geometry"

// Constrain returns raw constrained by the locks in state, together with a
// copy of state whose unlocked axes hold the read-out values of the result.
//
// segment is optional. When present, every locked axis that leaves another
// axis free additionally snaps the point onto the segment's infinite line.
// Degenerate configurations (zero-length direction, parallel reference,
// missing circle intersection) leave the point unsnapped; Constrain never
// fails.
func Constrain(raw geometry.Point, history PointHistory, state LockState, segment *ReferenceSegment) (geometry.Point, LockState) {
	p := raw
	for _, axis := range ResolutionOrder {
		switch axis {
		case AxisX:
			p = resolveX(p, history, &state, segment)
		case AxisY:
			p = resolveY(p, history, &state, segment)
		case AxisAngle:
			p = resolveAngle(p, history, &state, segment)
		case AxisDistance:
			p = resolveDistance(p, history, &state, segment)
		}
	}
	return p, state
}

func resolveX(p geometry.Point, h PointHistory, s *LockState, segment *ReferenceSegment) geometry.Point {
	lx := s.Axis(AxisX)
	if !lx.Locked {
		lx.Value = p.X
		if lx.Relative {
			lx.Value = p.X - h.Last.X
		}
		return p
	}

	p.X = lx.Value
	if lx.Relative {
		p.X = h.Last.X + lx.Value
	}

	if segment != nil && !s.IsLocked(AxisY) {
		if y, ok := geometry.YAtX(segment.Line(), p.X); ok {
			p.Y = y
		}
	}
	return p
}

func resolveY(p geometry.Point, h PointHistory, s *LockState, segment *ReferenceSegment) geometry.Point {
	ly := s.Axis(AxisY)
	if !ly.Locked {
		ly.Value = p.Y
		if ly.Relative {
			ly.Value = p.Y - h.Last.Y
		}
		return p
	}

	p.Y = ly.Value
	if ly.Relative {
		p.Y = h.Last.Y + ly.Value
	}

	if segment != nil && !s.IsLocked(AxisX) {
		if x, ok := geometry.XAtY(segment.Line(), p.Y); ok {
			p.X = x
		}
	}
	return p
}

func resolveAngle(p geometry.Point, h PointHistory, s *LockState, segment *ReferenceSegment) geometry.Point {
	la := s.Axis(AxisAngle)
	d := p.Sub(h.Last)

	if !la.Locked {
		a := d.Angle()
		if la.Relative {
			a -= h.LastSegmentAngle()
		}
		la.Value = geometry.Degrees(a)
		return p
	}

	a := geometry.Radians(la.Value)
	if la.Relative {
		// 0° is aligned with the last segment
		a += h.LastSegmentAngle()
	}

	// projection onto the locked direction, not a rotation: the distance
	// to last becomes the signed scalar projection
	p = geometry.ProjectOntoRay(h.Last, a, p)

	if segment != nil && !s.IsLocked(AxisDistance) {
		ray := geometry.NewSegment(h.Last, h.Last.Add(geometry.FromAngle(a)))
		if ip, ok := geometry.IntersectLines(ray, segment.Line()); ok {
			p = ip
		}
	}
	return p
}

func resolveDistance(p geometry.Point, h PointHistory, s *LockState, segment *ReferenceSegment) geometry.Point {
	ld := s.Axis(AxisDistance)
	d := p.Sub(h.Last)

	if !ld.Locked {
		ld.Value = d.Length()
		return p
	}

	if d.Length() > 0 {
		p = h.Last.Add(d.Normalize().Mul(ld.Value))
	}

	if segment != nil && !s.IsLocked(AxisAngle) {
		if roots, ok := geometry.IntersectCircleLine(h.Last, ld.Value, segment.Line()); ok {
			p = geometry.Nearest(p, roots)
		}
	}
	return p
}
