package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/3nids/CadInput/pkg/geometry"
	"github.com/3nids/CadInput/pkg/layer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestStore creates an in-memory SQLite store for testing
func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(":memory:")
	require.NoError(t, err)

	_, err = store.db.Exec("PRAGMA foreign_keys = ON")
	require.NoError(t, err)

	t.Cleanup(func() {
		store.Close()
	})
	return store
}

func TestAddAndLoadFeatures(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	line := layer.NewFeature("roads", layer.KindLine,
		geometry.NewPoint(0, 0),
		geometry.NewPoint(10.5, -2.25),
	)
	point := layer.NewFeature("roads", layer.KindPoint, geometry.NewPoint(3, 4))

	require.NoError(t, store.AddFeature(ctx, line))
	require.NoError(t, store.AddFeature(ctx, point))

	features, err := store.Features(ctx, "roads")
	require.NoError(t, err)
	require.Len(t, features, 2)
	assert.Equal(t, line, features[0])
	assert.Equal(t, point, features[1])
}

func TestFeaturesUnknownLayer(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Features(context.Background(), "nope")
	assert.ErrorIs(t, err, layer.ErrNotFound)
}

func TestAddFeatureValidation(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	err := store.AddFeature(ctx, layer.NewFeature("roads", layer.KindLine, geometry.NewPoint(0, 0)))
	assert.ErrorIs(t, err, layer.ErrEmptyFeature)

	err = store.AddFeature(ctx, layer.NewFeature("", layer.KindPoint, geometry.NewPoint(0, 0)))
	assert.Error(t, err)

	layers, err := store.Layers(ctx)
	require.NoError(t, err)
	assert.Empty(t, layers)
}

func TestAddFeatureDuplicateID(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	f := layer.NewFeature("roads", layer.KindPoint, geometry.NewPoint(1, 1))
	require.NoError(t, store.AddFeature(ctx, f))
	assert.Error(t, store.AddFeature(ctx, f))
}

func TestImportAndLayers(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	parcels := layer.NewLayer("parcels")
	parcels.AddFeature(layer.NewFeature("", layer.KindLine, geometry.NewPoint(0, 0), geometry.NewPoint(0, 5)))
	trees := layer.NewLayer("trees")
	trees.AddFeature(layer.NewFeature("", layer.KindPoint, geometry.NewPoint(2, 2)))
	trees.AddFeature(layer.NewFeature("", layer.KindPoint, geometry.NewPoint(3, 3)))

	n, err := store.Import(ctx, []layer.Layer{*trees, *parcels})
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	layers, err := store.Layers(ctx)
	require.NoError(t, err)
	require.Len(t, layers, 2)
	assert.Equal(t, "parcels", layers[0].Name)
	assert.Equal(t, "trees", layers[1].Name)
	assert.Len(t, layers[1].Features, 2)
	assert.Len(t, layers[0].Segments(), 1)
}

func TestReopenFileDatabase(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "layers.db")

	store, err := New(path)
	require.NoError(t, err)
	f := layer.NewFeature("sketch", layer.KindPoint, geometry.NewPoint(7, 8))
	require.NoError(t, store.AddFeature(ctx, f))
	require.NoError(t, store.Close())

	store, err = New(path)
	require.NoError(t, err)
	defer store.Close()

	features, err := store.Features(ctx, "sketch")
	require.NoError(t, err)
	require.Len(t, features, 1)
	assert.Equal(t, f, features[0])
}
