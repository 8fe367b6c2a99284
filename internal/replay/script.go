// Package replay runs scripted pointer and lock sequences through a session.
package replay

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/3nids/CadInput/pkg/constraint"
	"github.com/3nids/CadInput/pkg/geometry"
	"github.com/3nids/CadInput/pkg/layer"
	"gopkg.in/yaml.v3"
)

// ErrUnknownStep is returned for steps with no or unknown actions
var ErrUnknownStep = errors.New("unknown replay step")

// Script is a replay document:
//
//	layers: parcels.yaml        # or an inline list of layers
//	current_layer: sketch
//	tolerance: 0.5
//	steps:
//	  - click: [0, 0]
//	  - lock: {axis: distance, value: 10}
//	  - lock: {axis: angle, value: 45, relative: true}
//	  - click: [3, 9]
type Script struct {
	Layers       yaml.Node `yaml:"layers"`
	CurrentLayer string    `yaml:"current_layer"`
	Tolerance    *float64  `yaml:"tolerance"`
	Steps        []Step    `yaml:"steps"`

	dir string
}

// Coord is an [x, y] pair
type Coord [2]float64

// Point converts the pair to a point
func (c Coord) Point() geometry.Point {
	return geometry.NewPoint(c[0], c[1])
}

// LockStep locks one axis
type LockStep struct {
	Axis     string  `yaml:"axis"`
	Value    float64 `yaml:"value"`
	Relative *bool   `yaml:"relative"`
}

// Step is a single action. Exactly one field is set.
type Step struct {
	Move          *Coord    `yaml:"move"`
	Press         *Coord    `yaml:"press"`
	Release       *Coord    `yaml:"release"`
	Click         *Coord    `yaml:"click"`
	Lock          *LockStep `yaml:"lock"`
	Unlock        string    `yaml:"unlock"`
	Parallel      bool      `yaml:"parallel"`
	Perpendicular bool      `yaml:"perpendicular"`
	CancelAlign   bool      `yaml:"cancel_align"`
	Construction  *bool     `yaml:"construction"`
}

var stepKeys = map[string]bool{
	"move": true, "press": true, "release": true, "click": true,
	"lock": true, "unlock": true,
	"parallel": true, "perpendicular": true, "cancel_align": true,
	"construction": true,
}

// UnmarshalYAML rejects unknown and combined actions
func (s *Step) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: %w: expected a mapping", node.Line, ErrUnknownStep)
	}
	if len(node.Content) != 2 {
		return fmt.Errorf("line %d: %w: expected exactly one action, got %d", node.Line, ErrUnknownStep, len(node.Content)/2)
	}
	key := node.Content[0].Value
	if !stepKeys[key] {
		return fmt.Errorf("line %d: %w: %q", node.Line, ErrUnknownStep, key)
	}

	type plain Step
	return node.Decode((*plain)(s))
}

// Kind returns the action name of the step
func (s Step) Kind() string {
	switch {
	case s.Move != nil:
		return "move"
	case s.Press != nil:
		return "press"
	case s.Release != nil:
		return "release"
	case s.Click != nil:
		return "click"
	case s.Lock != nil:
		return "lock"
	case s.Unlock != "":
		return "unlock"
	case s.Parallel:
		return "parallel"
	case s.Perpendicular:
		return "perpendicular"
	case s.CancelAlign:
		return "cancel_align"
	case s.Construction != nil:
		return "construction"
	default:
		return ""
	}
}

// Validate checks every step can be executed
func (s *Script) Validate() error {
	for i, step := range s.Steps {
		switch step.Kind() {
		case "":
			return fmt.Errorf("step %d: %w", i+1, ErrUnknownStep)
		case "lock":
			if _, err := constraint.ParseAxis(step.Lock.Axis); err != nil {
				return fmt.Errorf("step %d: %w", i+1, err)
			}
		case "unlock":
			if _, err := constraint.ParseAxis(step.Unlock); err != nil {
				return fmt.Errorf("step %d: %w", i+1, err)
			}
		}
	}
	if s.Tolerance != nil && *s.Tolerance < 0 {
		return fmt.Errorf("tolerance must not be negative, got %v", *s.Tolerance)
	}
	return nil
}

// Parse reads a script. Relative layer file paths are resolved against dir.
func Parse(r io.Reader, dir string) (*Script, error) {
	script := &Script{dir: dir}
	if err := yaml.NewDecoder(r).Decode(script); err != nil {
		if err == io.EOF {
			return script, nil
		}
		return nil, fmt.Errorf("parsing script: %w", err)
	}
	if err := script.Validate(); err != nil {
		return nil, err
	}
	return script, nil
}

// Load reads a script file
func Load(path string) (*Script, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open script: %w", err)
	}
	defer file.Close()

	script, err := Parse(file, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return script, nil
}

// LayerFile returns the resolved path of the layer file, or "" for inline layers
func (s *Script) LayerFile() string {
	if s.Layers.Kind != yaml.ScalarNode {
		return ""
	}
	path := s.Layers.Value
	if !filepath.IsAbs(path) {
		path = filepath.Join(s.dir, path)
	}
	return path
}

// LoadLayers returns the layers named by the script, if any
func (s *Script) LoadLayers() ([]layer.Layer, error) {
	switch s.Layers.Kind {
	case 0:
		return nil, nil
	case yaml.ScalarNode:
		return layer.LoadFile(s.LayerFile())
	case yaml.SequenceNode:
		return layer.LoadNode(&s.Layers)
	default:
		return nil, fmt.Errorf("layers must be a file name or a list of layers")
	}
}
