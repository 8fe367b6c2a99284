package layer

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Store persists digitized features grouped by layer
type Store interface {
	// Layers returns every layer with its features, ordered by name
	Layers(ctx context.Context) ([]Layer, error)
	// Features returns the features of one layer, or ErrNotFound
	Features(ctx context.Context, layer string) ([]Feature, error)
	// AddFeature stores a feature in f.Layer, creating the layer if needed
	AddFeature(ctx context.Context, f Feature) error
	Close() error
}

// MemoryStore is an in-process Store
type MemoryStore struct {
	mu     sync.RWMutex
	layers map[string][]Feature
}

// NewMemoryStore creates a store pre-filled with layers
func NewMemoryStore(layers ...Layer) *MemoryStore {
	s := &MemoryStore{layers: make(map[string][]Feature)}
	for _, l := range layers {
		features := make([]Feature, 0, len(l.Features))
		for _, f := range l.Features {
			f.Layer = l.Name
			features = append(features, f)
		}
		s.layers[l.Name] = append(s.layers[l.Name], features...)
	}
	return s
}

func (s *MemoryStore) Layers(ctx context.Context) ([]Layer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.layers))
	for name := range s.layers {
		names = append(names, name)
	}
	sort.Strings(names)

	layers := make([]Layer, 0, len(names))
	for _, name := range names {
		layers = append(layers, Layer{
			Name:     name,
			Features: append([]Feature(nil), s.layers[name]...),
		})
	}
	return layers, nil
}

func (s *MemoryStore) Features(ctx context.Context, layer string) ([]Feature, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	features, ok := s.layers[layer]
	if !ok {
		return nil, fmt.Errorf("%s: %w", layer, ErrNotFound)
	}
	return append([]Feature(nil), features...), nil
}

func (s *MemoryStore) AddFeature(ctx context.Context, f Feature) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if f.Layer == "" {
		return fmt.Errorf("feature %s has no layer", f.ID)
	}
	if err := f.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.layers[f.Layer] = append(s.layers[f.Layer], f)
	return nil
}

func (s *MemoryStore) Close() error { return nil }
