// Package sqlite stores digitized layers in a SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/3nids/CadInput/pkg/geometry"
	"github.com/3nids/CadInput/pkg/layer"

	_ "modernc.org/sqlite"
)

// Store implements layer.Store using SQLite
type Store struct {
	db *sql.DB
}

var _ layer.Store = (*Store)(nil)

// New opens (or creates) the database at dbPath and migrates its schema
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// a :memory: database only lives on its own connection
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return s, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS layers (
		name TEXT PRIMARY KEY,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS features (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		layer TEXT NOT NULL,
		kind TEXT NOT NULL,
		points JSON NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (layer) REFERENCES layers(name) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_features_layer ON features(layer);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// Layers loads every layer with its features
func (s *Store) Layers(ctx context.Context) ([]layer.Layer, error) {
	names, err := s.layerNames(ctx)
	if err != nil {
		return nil, err
	}

	layers := make([]layer.Layer, 0, len(names))
	for _, name := range names {
		features, err := s.Features(ctx, name)
		if err != nil {
			return nil, err
		}
		layers = append(layers, layer.Layer{Name: name, Features: features})
	}
	return layers, nil
}

func (s *Store) layerNames(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM layers ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query layers: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan layer: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Features loads the features of one layer in insertion order
func (s *Store) Features(ctx context.Context, name string) ([]layer.Feature, error) {
	var exists int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM layers WHERE name = ?`, name).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("failed to look up layer %s: %w", name, err)
	}
	if exists == 0 {
		return nil, fmt.Errorf("%s: %w", name, layer.ErrNotFound)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, kind, points
		FROM features
		WHERE layer = ?
		ORDER BY seq
	`, name)
	if err != nil {
		return nil, fmt.Errorf("failed to query features: %w", err)
	}
	defer rows.Close()

	features := make([]layer.Feature, 0)
	for rows.Next() {
		var (
			id, kind string
			data     []byte
		)
		if err := rows.Scan(&id, &kind, &data); err != nil {
			return nil, fmt.Errorf("failed to scan feature: %w", err)
		}

		points, err := decodePoints(data)
		if err != nil {
			return nil, fmt.Errorf("feature %s: %w", id, err)
		}
		features = append(features, layer.Feature{
			ID:     id,
			Layer:  name,
			Kind:   layer.Kind(kind),
			Points: points,
		})
	}
	return features, rows.Err()
}

// AddFeature inserts a feature, creating its layer on first use
func (s *Store) AddFeature(ctx context.Context, f layer.Feature) error {
	if f.Layer == "" {
		return fmt.Errorf("feature %s has no layer", f.ID)
	}
	if err := f.Validate(); err != nil {
		return err
	}

	data, err := encodePoints(f.Points)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO layers (name) VALUES (?)`, f.Layer); err != nil {
		return fmt.Errorf("failed to insert layer %s: %w", f.Layer, err)
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO features (id, layer, kind, points)
		VALUES (?, ?, ?, ?)
	`, f.ID, f.Layer, string(f.Kind), data); err != nil {
		return fmt.Errorf("failed to insert feature %s: %w", f.ID, err)
	}

	return tx.Commit()
}

// Import stores every feature of the given layers and returns how many were added
func (s *Store) Import(ctx context.Context, layers []layer.Layer) (int, error) {
	count := 0
	for _, l := range layers {
		for _, f := range l.Features {
			f.Layer = l.Name
			if err := s.AddFeature(ctx, f); err != nil {
				return count, err
			}
			count++
		}
	}
	return count, nil
}

func encodePoints(points []geometry.Point) ([]byte, error) {
	xy := make([][2]float64, len(points))
	for i, p := range points {
		xy[i] = [2]float64{p.X, p.Y}
	}
	data, err := json.Marshal(xy)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal points: %w", err)
	}
	return data, nil
}

func decodePoints(data []byte) ([]geometry.Point, error) {
	var xy [][2]float64
	if err := json.Unmarshal(data, &xy); err != nil {
		return nil, fmt.Errorf("failed to unmarshal points: %w", err)
	}
	points := make([]geometry.Point, len(xy))
	for i, v := range xy {
		points[i] = geometry.NewPoint(v[0], v[1])
	}
	return points, nil
}
