package layer

import (
	"fmt"
	"io"
	"os"

	"github.com/3nids/CadInput/pkg/geometry"
	"gopkg.in/yaml.v3"
)

// fileLayers is the YAML layout of a layer file:
//
//	layers:
//	  - name: parcels
//	    features:
//	      - kind: line
//	        points: [[0, 0], [10, 0], [10, 10]]
type fileLayers struct {
	Layers []fileLayer `yaml:"layers"`
}

type fileLayer struct {
	Name     string        `yaml:"name"`
	Features []fileFeature `yaml:"features"`
}

type fileFeature struct {
	ID     string       `yaml:"id,omitempty"`
	Kind   Kind         `yaml:"kind"`
	Points [][2]float64 `yaml:"points,flow"`
}

// LoadFile reads a YAML layer file
func LoadFile(filename string) ([]Layer, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	layers, err := LoadYAML(file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, err)
	}
	return layers, nil
}

// LoadYAML reads layers from a YAML document
func LoadYAML(r io.Reader) ([]Layer, error) {
	var doc fileLayers
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("error reading layer YAML: %w", err)
	}
	return fromFile(doc.Layers)
}

// LoadNode decodes layers from a YAML sequence node embedded in another document
func LoadNode(node *yaml.Node) ([]Layer, error) {
	var nodes []fileLayer
	if err := node.Decode(&nodes); err != nil {
		return nil, fmt.Errorf("error reading layer YAML: %w", err)
	}
	return fromFile(nodes)
}

// fromFile converts decoded layer nodes, validating and assigning IDs
func fromFile(nodes []fileLayer) ([]Layer, error) {
	layers := make([]Layer, 0, len(nodes))
	for _, fl := range nodes {
		if fl.Name == "" {
			return nil, fmt.Errorf("layer without a name")
		}
		l := NewLayer(fl.Name)
		for _, ff := range fl.Features {
			f := NewFeature(fl.Name, ff.Kind)
			if ff.ID != "" {
				f.ID = ff.ID
			}
			for _, xy := range ff.Points {
				f.Points = append(f.Points, geometry.NewPoint(xy[0], xy[1]))
			}
			if err := f.Validate(); err != nil {
				return nil, fmt.Errorf("layer %s: %w", fl.Name, err)
			}
			l.AddFeature(f)
		}
		layers = append(layers, *l)
	}
	return layers, nil
}

// WriteYAML writes layers in the format read by LoadYAML
func WriteYAML(w io.Writer, layers []Layer) error {
	doc := fileLayers{Layers: make([]fileLayer, 0, len(layers))}
	for _, l := range layers {
		fl := fileLayer{Name: l.Name}
		for _, f := range l.Features {
			ff := fileFeature{ID: f.ID, Kind: f.Kind}
			for _, p := range f.Points {
				ff.Points = append(ff.Points, [2]float64{p.X, p.Y})
			}
			fl.Features = append(fl.Features, ff)
		}
		doc.Layers = append(doc.Layers, fl)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode layers: %w", err)
	}
	return enc.Close()
}
