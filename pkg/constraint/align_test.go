package constraint

import (
	"testing"

	"github.com/3nids/CadInput/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlignAngleToSegment(t *testing.T) {
	horizontal := ReferenceSegment{Start: geometry.NewPoint(0, 0), End: geometry.NewPoint(10, 0)}
	diagonal := ReferenceSegment{Start: geometry.NewPoint(0, 0), End: geometry.NewPoint(5, 5)}
	northbound := history(geometry.NewPoint(0, 0), geometry.NewPoint(0, 10))

	tests := []struct {
		name     string
		segment  ReferenceSegment
		history  PointHistory
		mode     AlignMode
		relative bool
		expected float64
	}{
		{"parallel absolute", horizontal, PointHistory{}, AlignParallel, false, 0},
		{"perpendicular absolute", horizontal, PointHistory{}, AlignPerpendicular, false, 90},
		{"parallel diagonal", diagonal, PointHistory{}, AlignParallel, false, 45},
		{"perpendicular diagonal", diagonal, PointHistory{}, AlignPerpendicular, false, 135},
		{"parallel relative", horizontal, northbound, AlignParallel, true, 90},
		{"perpendicular relative", horizontal, northbound, AlignPerpendicular, true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AlignAngleToSegment(tt.segment, tt.history, tt.mode, tt.relative)
			assert.InDelta(t, tt.expected, got, eps)
		})
	}
}

func TestAlignToSegmentLocksAngle(t *testing.T) {
	state := NewLockState()
	state.PerpendicularPending = true

	mode, ok := state.PendingAlign()
	require.True(t, ok)
	require.Equal(t, AlignPerpendicular, mode)

	value := state.AlignToSegment(ReferenceSegment{End: geometry.NewPoint(10, 0)}, PointHistory{}, mode)

	assert.InDelta(t, 90.0, value, eps)
	assert.True(t, state.IsLocked(AxisAngle))
	assert.Equal(t, value, state.Axis(AxisAngle).Value)

	// the aligned lock constrains a cursor onto the perpendicular
	p, _ := Constrain(geometry.NewPoint(3, 4), PointHistory{}, state, nil)
	assertPoint(t, geometry.NewPoint(0, 4), p)
}

func TestLockState(t *testing.T) {
	state := NewLockState()
	assert.True(t, state.Applies())
	assert.False(t, state.AnyLocked())

	state.Lock(AxisDistance, -4)
	assert.Equal(t, 4.0, state.Axis(AxisDistance).Value, "distance is stored as a magnitude")
	assert.True(t, state.AnyLocked())

	state.SetRelative(AxisX, true)
	state.Lock(AxisX, 1)
	state.UnlockAll()
	assert.False(t, state.AnyLocked())
	assert.True(t, state.Axis(AxisX).Relative, "unlocking keeps the relative flag")

	state.Enabled = false
	assert.False(t, state.Applies())
}

func TestParseAxis(t *testing.T) {
	for _, a := range ResolutionOrder {
		parsed, err := ParseAxis(a.String())
		require.NoError(t, err)
		assert.Equal(t, a, parsed)
	}

	parsed, err := ParseAxis(" D ")
	require.NoError(t, err)
	assert.Equal(t, AxisDistance, parsed)

	_, err = ParseAxis("z")
	assert.Error(t, err)
}
