package snapping

import (
	"testing"

	"github.com/3nids/CadInput/pkg/geometry"
	"github.com/3nids/CadInput/pkg/layer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLayers() []layer.Layer {
	current := layer.NewLayer("current")
	current.AddFeature(layer.NewFeature("", layer.KindLine,
		geometry.NewPoint(0, 0),
		geometry.NewPoint(10, 0),
	))

	background := layer.NewLayer("background")
	background.AddFeature(layer.NewFeature("", layer.KindPoint, geometry.NewPoint(0.5, 0.5)))
	background.AddFeature(layer.NewFeature("", layer.KindLine,
		geometry.NewPoint(0, 20),
		geometry.NewPoint(10, 20),
	))

	return []layer.Layer{*background, *current}
}

func TestSnapNothingInRange(t *testing.T) {
	idx := NewIndex(testLayers(), "current", DefaultOptions())

	res := idx.Snap(geometry.NewPoint(5, 10))
	assert.True(t, res.IsEmpty())
}

func TestSnapCurrentVertexFirst(t *testing.T) {
	idx := NewIndex(testLayers(), "current", DefaultOptions())

	// the background point is nearer, but current layer vertices win
	res := idx.Snap(geometry.NewPoint(0.4, 0.4))
	require.NotNil(t, res.Point)
	assert.Nil(t, res.Segment)
	assert.Equal(t, geometry.NewPoint(0, 0), *res.Point)
	assert.Equal(t, "current", res.Layer)
}

func TestSnapBackgroundVertexBeforeSegment(t *testing.T) {
	idx := NewIndex(testLayers(), "current", DefaultOptions())

	res := idx.Snap(geometry.NewPoint(1.2, 0.8))
	require.NotNil(t, res.Point)
	assert.Equal(t, geometry.NewPoint(0.5, 0.5), *res.Point)
	assert.Equal(t, "background", res.Layer)
}

func TestSnapCurrentSegment(t *testing.T) {
	idx := NewIndex(testLayers(), "current", DefaultOptions())

	res := idx.Snap(geometry.NewPoint(5, 0.5))
	require.NotNil(t, res.Segment)
	assert.Nil(t, res.Point)
	assert.Equal(t, geometry.NewPoint(0, 0), res.Segment.Start)
	assert.Equal(t, geometry.NewPoint(10, 0), res.Segment.End)
	assert.Equal(t, geometry.NewPoint(5, 0), res.Segment.Nearest)
}

func TestSnapBackgroundSegment(t *testing.T) {
	idx := NewIndex(testLayers(), "current", DefaultOptions())

	res := idx.Snap(geometry.NewPoint(4, 19.5))
	require.NotNil(t, res.Segment)
	assert.Equal(t, geometry.NewPoint(4, 20), res.Segment.Nearest)
	assert.Equal(t, "background", res.Layer)
}

func TestSnapOptions(t *testing.T) {
	idx := NewIndex(testLayers(), "current", Options{Tolerance: 1, Segment: true})

	res := idx.Snap(geometry.NewPoint(0.4, 0.4))
	require.NotNil(t, res.Segment)
	assert.InDelta(t, 0.4, res.Segment.Nearest.X, 1e-12)
	assert.Equal(t, 0.0, res.Segment.Nearest.Y)

	idx = NewIndex(testLayers(), "current", Options{Tolerance: 1, Vertex: true})
	assert.True(t, idx.Snap(geometry.NewPoint(5, 0.5)).IsEmpty())

	idx.SetTolerance(6)
	assert.Equal(t, 6.0, idx.Options().Tolerance)
	assert.False(t, idx.Snap(geometry.NewPoint(5, 0.5)).IsEmpty())
}

func TestSnapSwitchCurrentLayer(t *testing.T) {
	idx := NewIndex(testLayers(), "current", DefaultOptions())
	idx.SetCurrent("background")
	assert.Equal(t, "background", idx.Current())

	res := idx.Snap(geometry.NewPoint(0.4, 0.4))
	require.NotNil(t, res.Point)
	assert.Equal(t, geometry.NewPoint(0.5, 0.5), *res.Point)
}

func TestAddFeature(t *testing.T) {
	idx := NewIndex(nil, "sketch", DefaultOptions())
	assert.True(t, idx.Snap(geometry.NewPoint(3, 3)).IsEmpty())

	idx.AddFeature(layer.NewFeature("sketch", layer.KindPoint, geometry.NewPoint(3, 3)))
	res := idx.Snap(geometry.NewPoint(3.2, 3))
	require.NotNil(t, res.Point)
	assert.Equal(t, geometry.NewPoint(3, 3), *res.Point)

	idx.AddFeature(layer.NewFeature("sketch", layer.KindPoint, geometry.NewPoint(8, 8)))
	assert.False(t, idx.Snap(geometry.NewPoint(8, 8.5)).IsEmpty())
}

func TestIndexCopiesLayers(t *testing.T) {
	layers := testLayers()
	idx := NewIndex(layers, "current", DefaultOptions())

	idx.AddFeature(layer.NewFeature("current", layer.KindPoint, geometry.NewPoint(5, 5)))
	assert.Len(t, layers[1].Features, 1, "AddFeature must not write into the caller's layers")

	// moving the caller's vertex does not move the indexed one
	layers[0].Features[1].Points[0] = geometry.NewPoint(50, 50)
	res := idx.Snap(geometry.NewPoint(0.2, 20))
	require.NotNil(t, res.Point)
	assert.Equal(t, geometry.NewPoint(0, 20), *res.Point)

	replaced := testLayers()
	idx.SetLayers(replaced)
	idx.AddFeature(layer.NewFeature("background", layer.KindPoint, geometry.NewPoint(7, 7)))
	assert.Len(t, replaced[0].Features, 2)
	assert.False(t, idx.Snap(geometry.NewPoint(7, 7)).IsEmpty())
	assert.True(t, idx.Snap(geometry.NewPoint(5, 5.5)).IsEmpty(), "SetLayers drops added features")
}

func TestWithExclusiveTarget(t *testing.T) {
	idx := NewIndex(testLayers(), "current", DefaultOptions())
	target := geometry.NewPoint(3, 0)

	called := false
	err := idx.WithExclusiveTarget(target, func() {
		called = true

		// the layer vertex at the origin is suspended
		assert.True(t, idx.Snap(geometry.NewPoint(0, 0)).IsEmpty())

		res := idx.Snap(geometry.NewPoint(3.5, 0))
		require.NotNil(t, res.Point)
		assert.Equal(t, target, *res.Point)

		assert.ErrorIs(t, idx.WithExclusiveTarget(target, func() {}), ErrTargetHeld)
	})
	require.NoError(t, err)
	assert.True(t, called)

	// released afterwards
	res := idx.Snap(geometry.NewPoint(0, 0))
	require.NotNil(t, res.Point)
	assert.Equal(t, geometry.NewPoint(0, 0), *res.Point)
}

func TestWithExclusiveTargetReleasedOnPanic(t *testing.T) {
	idx := NewIndex(testLayers(), "current", DefaultOptions())

	assert.Panics(t, func() {
		_ = idx.WithExclusiveTarget(geometry.NewPoint(3, 0), func() { panic("boom") })
	})
	assert.False(t, idx.Snap(geometry.NewPoint(0, 0)).IsEmpty())
}
