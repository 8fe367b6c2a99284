package constraint

import (
	"math"

	"github.com/3nids/CadInput/pkg/geometry"
)

// AlignMode selects how the angle lock relates to a reference segment
type AlignMode int

const (
	AlignParallel AlignMode = iota
	AlignPerpendicular
)

func (m AlignMode) String() string {
	if m == AlignPerpendicular {
		return "perpendicular"
	}
	return "parallel"
}

// AlignAngleToSegment returns the angle lock value, in degrees, that makes
// the next segment parallel or perpendicular to segment. When relative is
// set the value is expressed against the last committed segment.
//
// An angle lock projects onto a line through the last point, so the value is
// only meaningful modulo 180°. It is returned normalised into [0, 180).
func AlignAngleToSegment(segment ReferenceSegment, history PointHistory, mode AlignMode, relative bool) float64 {
	angle := segment.Start.Sub(segment.End).Angle()
	if relative {
		angle -= history.LastSegmentAngle()
	}
	if mode == AlignPerpendicular {
		angle += math.Pi / 2
	}
	return normalizeHalfTurn(geometry.Degrees(angle))
}

// AlignToSegment locks the angle axis to segment, using the axis' own
// relative flag, and returns the new lock value
func (s *LockState) AlignToSegment(segment ReferenceSegment, history PointHistory, mode AlignMode) float64 {
	value := AlignAngleToSegment(segment, history, mode, s.Axes[AxisAngle].Relative)
	s.Lock(AxisAngle, value)
	return value
}

// PendingAlign returns the mode of the pending gesture, if any
func (s LockState) PendingAlign() (AlignMode, bool) {
	switch {
	case s.PerpendicularPending:
		return AlignPerpendicular, true
	case s.ParallelPending:
		return AlignParallel, true
	}
	return AlignParallel, false
}

func normalizeHalfTurn(deg float64) float64 {
	deg = math.Mod(deg, 180)
	if deg < 0 {
		deg += 180
	}
	if deg >= 180 {
		deg -= 180
	}
	return deg
}
