package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/3nids/CadInput/pkg/constraint"
	"github.com/3nids/CadInput/pkg/geometry"
)

// parseFloats parses n comma separated numbers
func parseFloats(s string, n int) ([]float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != n {
		return nil, fmt.Errorf("expected %d comma separated numbers, got %q", n, s)
	}
	values := make([]float64, n)
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q: %w", part, err)
		}
		values[i] = v
	}
	return values, nil
}

// parsePoint parses "x,y"
func parsePoint(s string) (geometry.Point, error) {
	v, err := parseFloats(s, 2)
	if err != nil {
		return geometry.Point{}, err
	}
	return geometry.NewPoint(v[0], v[1]), nil
}

// parseSegment parses "x1,y1,x2,y2"
func parseSegment(s string) (geometry.Segment, error) {
	v, err := parseFloats(s, 4)
	if err != nil {
		return geometry.Segment{}, err
	}
	return geometry.NewSegment(geometry.NewPoint(v[0], v[1]), geometry.NewPoint(v[2], v[3])), nil
}

// parseAxes parses a list of axis names
func parseAxes(names []string) ([]constraint.Axis, error) {
	axes := make([]constraint.Axis, 0, len(names))
	for _, name := range names {
		a, err := constraint.ParseAxis(name)
		if err != nil {
			return nil, err
		}
		axes = append(axes, a)
	}
	return axes, nil
}

// parseHistory builds a point history from the --previous and --last flags
func parseHistory(previous, last string) (constraint.PointHistory, error) {
	var h constraint.PointHistory
	var err error
	if previous != "" {
		if h.Previous, err = parsePoint(previous); err != nil {
			return h, fmt.Errorf("--previous: %w", err)
		}
	}
	if last != "" {
		if h.Last, err = parsePoint(last); err != nil {
			return h, fmt.Errorf("--last: %w", err)
		}
	}
	return h, nil
}

// formatPoint formats a 2D point
func formatPoint(p geometry.Point) string {
	return fmt.Sprintf("(%.6f, %.6f)", p.X, p.Y)
}
