package constraint

import (
	"fmt"
	"math"
	"strings"
)

// Axis identifies one of the four lockable values
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisAngle
	AxisDistance

	axisCount
)

// ResolutionOrder lists the axes in the order Constrain resolves them
var ResolutionOrder = [axisCount]Axis{AxisX, AxisY, AxisAngle, AxisDistance}

var axisNames = [axisCount]string{"x", "y", "angle", "distance"}

func (a Axis) String() string {
	if a < 0 || a >= axisCount {
		return fmt.Sprintf("Axis(%d)", int(a))
	}
	return axisNames[a]
}

// ParseAxis parses an axis name as written by String. "a" and "d" are
// accepted as short forms.
func ParseAxis(s string) (Axis, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "x":
		return AxisX, nil
	case "y":
		return AxisY, nil
	case "a", "angle":
		return AxisAngle, nil
	case "d", "distance":
		return AxisDistance, nil
	}
	return 0, fmt.Errorf("unknown axis %q (expected x, y, angle or distance)", s)
}

// LockAxis holds the lock of a single axis. When Locked is false, Value is
// an output: Constrain overwrites it with the value implied by the cursor.
type LockAxis struct {
	Locked   bool
	Relative bool
	Value    float64
}

// LockState is the full lock configuration of an editing session
type LockState struct {
	Axes [axisCount]LockAxis

	ParallelPending      bool
	PerpendicularPending bool
	ConstructionMode     bool // construction lines only, points are not committed to the canvas

	Active  bool
	Enabled bool
}

// NewLockState returns an active, enabled state with no locks
func NewLockState() LockState {
	return LockState{Active: true, Enabled: true}
}

// Axis returns the lock of axis a
func (s *LockState) Axis(a Axis) *LockAxis {
	return &s.Axes[a]
}

// Lock locks axis a to value. Distances are stored as absolute values.
func (s *LockState) Lock(a Axis, value float64) {
	if a == AxisDistance {
		value = math.Abs(value)
	}
	s.Axes[a].Locked = true
	s.Axes[a].Value = value
}

// Unlock releases axis a, keeping its relative flag
func (s *LockState) Unlock(a Axis) {
	s.Axes[a].Locked = false
}

// UnlockAll releases every axis
func (s *LockState) UnlockAll() {
	for _, a := range ResolutionOrder {
		s.Unlock(a)
	}
}

// SetRelative switches axis a between relative and absolute values
func (s *LockState) SetRelative(a Axis, relative bool) {
	s.Axes[a].Relative = relative
}

// IsLocked reports whether axis a is locked
func (s LockState) IsLocked(a Axis) bool {
	return s.Axes[a].Locked
}

// AnyLocked reports whether at least one axis is locked
func (s LockState) AnyLocked() bool {
	for _, a := range ResolutionOrder {
		if s.Axes[a].Locked {
			return true
		}
	}
	return false
}

// Applies reports whether constraining is switched on
func (s LockState) Applies() bool {
	return s.Active && s.Enabled
}

// AlignPending reports whether a parallel or perpendicular gesture waits for a segment
func (s LockState) AlignPending() bool {
	return s.ParallelPending || s.PerpendicularPending
}

// ClearAlign cancels any pending parallel or perpendicular gesture
func (s *LockState) ClearAlign() {
	s.ParallelPending = false
	s.PerpendicularPending = false
}
