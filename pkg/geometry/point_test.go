package geometry

import (
	"math"
	"testing"
)

func TestPointAdd(t *testing.T) {
	result := NewPoint(1, 2).Add(NewPoint(4, 5))

	expected := NewPoint(5, 7)
	if result != expected {
		t.Errorf("Add failed: expected %v, got %v", expected, result)
	}
}

func TestPointSub(t *testing.T) {
	result := NewPoint(5, 7).Sub(NewPoint(1, 2))

	expected := NewPoint(4, 5)
	if result != expected {
		t.Errorf("Sub failed: expected %v, got %v", expected, result)
	}
}

func TestPointLength(t *testing.T) {
	length := NewPoint(3, 4).Length()

	if math.Abs(length-5.0) > 1e-10 {
		t.Errorf("Length failed: expected 5, got %v", length)
	}
}

func TestPointDistance(t *testing.T) {
	distance := NewPoint(0, 0).Distance(NewPoint(3, 4))

	if math.Abs(distance-5.0) > 1e-10 {
		t.Errorf("Distance failed: expected 5, got %v", distance)
	}
}

func TestPointNormalize(t *testing.T) {
	normalized := NewPoint(3, 4).Normalize()

	if math.Abs(normalized.Length()-1.0) > 1e-10 {
		t.Errorf("Normalize failed: expected length 1, got %v", normalized.Length())
	}

	zero := Point{}.Normalize()
	if zero != (Point{}) {
		t.Errorf("Normalize of zero vector failed: expected %v, got %v", Point{}, zero)
	}
}

func TestPointCross(t *testing.T) {
	result := NewPoint(1, 0).Cross(NewPoint(0, 1))

	if result != 1 {
		t.Errorf("Cross failed: expected 1, got %v", result)
	}
}

func TestPointDot(t *testing.T) {
	result := NewPoint(1, 2).Dot(NewPoint(4, 5))

	expected := 14.0 // 1*4 + 2*5
	if math.Abs(result-expected) > 1e-10 {
		t.Errorf("Dot failed: expected %v, got %v", expected, result)
	}
}

func TestDegreesRadians(t *testing.T) {
	if math.Abs(Degrees(math.Pi/2)-90) > 1e-10 {
		t.Errorf("Degrees failed: expected 90, got %v", Degrees(math.Pi/2))
	}
	if math.Abs(Radians(180)-math.Pi) > 1e-10 {
		t.Errorf("Radians failed: expected pi, got %v", Radians(180))
	}
}

func TestSegmentClosestPoint(t *testing.T) {
	s := NewSegment(NewPoint(0, 0), NewPoint(10, 0))

	tests := []struct {
		name     string
		p        Point
		expected Point
	}{
		{"inside", NewPoint(4, 3), NewPoint(4, 0)},
		{"before start", NewPoint(-5, 1), NewPoint(0, 0)},
		{"after end", NewPoint(15, -2), NewPoint(10, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.ClosestPoint(tt.p)
			if got != tt.expected {
				t.Errorf("ClosestPoint failed: expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestBoundingBoxExtend(t *testing.T) {
	bbox := NewBoundingBox()
	if !bbox.IsEmpty() {
		t.Errorf("IsEmpty failed: new box should be empty")
	}

	bbox.Extend(NewPoint(1, 2))
	bbox.Extend(NewPoint(4, 5))
	bbox.Extend(NewPoint(-1, 0))

	if bbox.Min != NewPoint(-1, 0) {
		t.Errorf("Min failed: expected %v, got %v", NewPoint(-1, 0), bbox.Min)
	}
	if bbox.Max != NewPoint(4, 5) {
		t.Errorf("Max failed: expected %v, got %v", NewPoint(4, 5), bbox.Max)
	}
	if bbox.Center() != NewPoint(1.5, 2.5) {
		t.Errorf("Center failed: expected %v, got %v", NewPoint(1.5, 2.5), bbox.Center())
	}
}
