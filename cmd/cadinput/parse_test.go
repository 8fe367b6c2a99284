package main

import (
	"testing"

	"github.com/3nids/CadInput/pkg/constraint"
	"github.com/3nids/CadInput/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePoint(t *testing.T) {
	p, err := parsePoint("1.5, -2")
	require.NoError(t, err)
	assert.Equal(t, geometry.NewPoint(1.5, -2), p)

	_, err = parsePoint("1")
	assert.Error(t, err)
	_, err = parsePoint("a,b")
	assert.Error(t, err)
}

func TestParseSegment(t *testing.T) {
	s, err := parseSegment("0,0,10,5")
	require.NoError(t, err)
	assert.Equal(t, geometry.NewPoint(10, 5), s.End)

	_, err = parseSegment("0,0,10")
	assert.Error(t, err)
}

func TestParseAxes(t *testing.T) {
	axes, err := parseAxes([]string{"x", "angle", "d"})
	require.NoError(t, err)
	assert.Equal(t, []constraint.Axis{constraint.AxisX, constraint.AxisAngle, constraint.AxisDistance}, axes)

	_, err = parseAxes([]string{"z"})
	assert.Error(t, err)
}

func TestParseHistory(t *testing.T) {
	h, err := parseHistory("0,0", "10,0")
	require.NoError(t, err)
	assert.Equal(t, geometry.NewPoint(10, 0), h.Last)
	assert.Equal(t, 0.0, h.LastSegmentAngle())

	h, err = parseHistory("", "")
	require.NoError(t, err)
	assert.Equal(t, constraint.PointHistory{}, h)

	_, err = parseHistory("x", "")
	assert.Error(t, err)
}
