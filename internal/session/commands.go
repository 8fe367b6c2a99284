package session

import (
	"github.com/3nids/CadInput/pkg/constraint"
	"github.com/3nids/CadInput/pkg/geometry"
	"github.com/3nids/CadInput/pkg/snapping"
	"go.uber.org/zap"
)

// LockX locks the X coordinate
func (s *Session) LockX(value float64) { s.lock(constraint.AxisX, value) }

// LockY locks the Y coordinate
func (s *Session) LockY(value float64) { s.lock(constraint.AxisY, value) }

// LockAngle locks the angle in degrees
func (s *Session) LockAngle(value float64) { s.lock(constraint.AxisAngle, value) }

// LockDistance locks the distance to the last point
func (s *Session) LockDistance(value float64) { s.lock(constraint.AxisDistance, value) }

// Lock locks any axis
func (s *Session) Lock(axis constraint.Axis, value float64) { s.lock(axis, value) }

func (s *Session) lock(axis constraint.Axis, value float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.locks.Lock(axis, value)
	s.log.Debug("axis locked", zap.Stringer("axis", axis), zap.Float64("value", value))
}

// Unlock releases one axis
func (s *Session) Unlock(axis constraint.Axis) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.locks.Unlock(axis)
}

// UnlockAll releases every axis
func (s *Session) UnlockAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.locks.UnlockAll()
}

// SetRelative sets whether an axis value is relative to the last point
func (s *Session) SetRelative(axis constraint.Axis, relative bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.locks.SetRelative(axis, relative)
}

// ToggleRelative flips the relative flag of an axis and returns the new value
func (s *Session) ToggleRelative(axis constraint.Axis) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	relative := !s.locks.Axes[axis].Relative
	s.locks.SetRelative(axis, relative)
	return relative
}

// RequestParallel starts a parallel alignment gesture
func (s *Session) RequestParallel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.locks.ParallelPending = true
	s.locks.PerpendicularPending = false
}

// RequestPerpendicular starts a perpendicular alignment gesture
func (s *Session) RequestPerpendicular() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.locks.PerpendicularPending = true
	s.locks.ParallelPending = false
}

// CancelAlign ends any alignment gesture
func (s *Session) CancelAlign() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.locks.ClearAlign()
}

// SetConstruction switches construction mode
func (s *Session) SetConstruction(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.locks.ConstructionMode = on
}

// SetActive switches constraining on or off, e.g. when the edit tool changes
func (s *Session) SetActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.locks.Active = active
}

// SetEnabled enables or disables the session as a whole
func (s *Session) SetEnabled(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.locks.Enabled = enabled
}

// Locks returns a copy of the locks and read-outs
func (s *Session) Locks() constraint.LockState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.locks
}

// History returns the committed points and the live cursor
func (s *Session) History() constraint.PointHistory {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history
}

// Point returns the last constrained position
func (s *Session) Point() geometry.Point {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.point
}

// ConstructionLines returns how many construction lines to draw (0 to 2)
func (s *Session) ConstructionLines() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.construction
}

// State reports whether any axis is locked
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.locks.AnyLocked() {
		return StateConstrained
	}
	return StateIdle
}

// Reset forgets history and locks, keeping the active and enabled flags
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	active, enabled := s.locks.Active, s.locks.Enabled
	s.locks = constraint.NewLockState()
	s.locks.Active, s.locks.Enabled = active, enabled
	s.history = constraint.PointHistory{}
	s.snap = snapping.Result{}
	s.point = geometry.Point{}
	s.construction = 0
}
