package geometry

import (
	"math"
	"testing"
)

func TestYAtX(t *testing.T) {
	tests := []struct {
		name   string
		s      Segment
		x      float64
		wantY  float64
		wantOK bool
	}{
		{"diagonal", NewSegment(NewPoint(0, 0), NewPoint(10, 10)), 3, 3, true},
		{"extension beyond end", NewSegment(NewPoint(0, 1), NewPoint(2, 3)), 10, 11, true},
		{"horizontal", NewSegment(NewPoint(-4, 7), NewPoint(4, 7)), 100, 7, true},
		{"vertical", NewSegment(NewPoint(2, 0), NewPoint(2, 5)), 3, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			y, ok := YAtX(tt.s, tt.x)
			if ok != tt.wantOK {
				t.Fatalf("YAtX ok: expected %v, got %v", tt.wantOK, ok)
			}
			if ok && math.Abs(y-tt.wantY) > 1e-10 {
				t.Errorf("YAtX failed: expected %v, got %v", tt.wantY, y)
			}
		})
	}
}

func TestXAtY(t *testing.T) {
	tests := []struct {
		name   string
		s      Segment
		y      float64
		wantX  float64
		wantOK bool
	}{
		{"diagonal", NewSegment(NewPoint(0, 0), NewPoint(10, 20)), 5, 2.5, true},
		{"vertical", NewSegment(NewPoint(2, 0), NewPoint(2, 5)), 42, 2, true},
		{"horizontal", NewSegment(NewPoint(0, 1), NewPoint(5, 1)), 3, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, ok := XAtY(tt.s, tt.y)
			if ok != tt.wantOK {
				t.Fatalf("XAtY ok: expected %v, got %v", tt.wantOK, ok)
			}
			if ok && math.Abs(x-tt.wantX) > 1e-10 {
				t.Errorf("XAtY failed: expected %v, got %v", tt.wantX, x)
			}
		})
	}
}

func TestIntersectLines(t *testing.T) {
	a := NewSegment(NewPoint(0, 0), NewPoint(1, 1))
	b := NewSegment(NewPoint(10, 0), NewPoint(10, 1))

	p, ok := IntersectLines(a, b)
	if !ok {
		t.Fatalf("IntersectLines failed: expected an intersection")
	}
	if math.Abs(p.X-10) > 1e-10 || math.Abs(p.Y-10) > 1e-10 {
		t.Errorf("IntersectLines failed: expected (10, 10), got %v", p)
	}
}

func TestIntersectLinesParallel(t *testing.T) {
	a := NewSegment(NewPoint(0, 0), NewPoint(10, 0))

	tests := []struct {
		name string
		b    Segment
	}{
		{"parallel", NewSegment(NewPoint(0, 5), NewPoint(10, 5))},
		{"anti-parallel", NewSegment(NewPoint(10, 5), NewPoint(0, 5))},
		{"collinear", NewSegment(NewPoint(20, 0), NewPoint(30, 0))},
		{"nearly parallel", NewSegment(NewPoint(0, 5), NewPoint(1e6, 5+1e6*math.Tan(Radians(ParallelTolerance/2))))},
		{"degenerate", NewSegment(NewPoint(3, 3), NewPoint(3, 3))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if p, ok := IntersectLines(a, tt.b); ok {
				t.Errorf("IntersectLines failed: expected no intersection, got %v", p)
			}
		})
	}
}

func TestIntersectCircleLine(t *testing.T) {
	roots, ok := IntersectCircleLine(NewPoint(0, 0), 5, NewSegment(NewPoint(-10, 2), NewPoint(10, 2)))
	if !ok {
		t.Fatalf("IntersectCircleLine failed: expected two roots")
	}

	r := math.Sqrt(21)
	if math.Abs(roots[0].X-r) > 1e-10 || math.Abs(roots[0].Y-2) > 1e-10 {
		t.Errorf("first root failed: expected (%v, 2), got %v", r, roots[0])
	}
	if math.Abs(roots[1].X+r) > 1e-10 || math.Abs(roots[1].Y-2) > 1e-10 {
		t.Errorf("second root failed: expected (%v, 2), got %v", -r, roots[1])
	}
}

func TestIntersectCircleLineOffCenter(t *testing.T) {
	center := NewPoint(100, 50)
	roots, ok := IntersectCircleLine(center, 5, NewSegment(NewPoint(100, 0), NewPoint(100, 10)))
	if !ok {
		t.Fatalf("IntersectCircleLine failed: expected two roots")
	}
	for _, root := range roots {
		if math.Abs(root.Distance(center)-5) > 1e-9 {
			t.Errorf("root %v is not on the circle", root)
		}
		if math.Abs(root.X-100) > 1e-9 {
			t.Errorf("root %v is not on the line", root)
		}
	}
}

func TestIntersectCircleLineTangent(t *testing.T) {
	if roots, ok := IntersectCircleLine(NewPoint(0, 0), 5, NewSegment(NewPoint(-10, 5), NewPoint(10, 5))); ok {
		t.Errorf("tangent line must not intersect, got %v", roots)
	}
	if roots, ok := IntersectCircleLine(NewPoint(0, 0), 5, NewSegment(NewPoint(-10, 6), NewPoint(10, 6))); ok {
		t.Errorf("missing line must not intersect, got %v", roots)
	}
}

func TestNearest(t *testing.T) {
	a, b := NewPoint(1, 0), NewPoint(-1, 0)

	if got := Nearest(NewPoint(0.5, 0), [2]Point{a, b}); got != a {
		t.Errorf("Nearest failed: expected %v, got %v", a, got)
	}
	if got := Nearest(NewPoint(-0.5, 0), [2]Point{a, b}); got != b {
		t.Errorf("Nearest failed: expected %v, got %v", b, got)
	}
	if got := Nearest(NewPoint(0, 3), [2]Point{a, b}); got != a {
		t.Errorf("Nearest tie failed: expected first candidate %v, got %v", a, got)
	}
}

func TestProjectOntoRay(t *testing.T) {
	got := ProjectOntoRay(NewPoint(0, 0), 0, NewPoint(3, 4))
	if got != NewPoint(3, 0) {
		t.Errorf("ProjectOntoRay failed: expected (3, 0), got %v", got)
	}

	behind := ProjectOntoRay(NewPoint(0, 0), 0, NewPoint(-2, 1))
	if behind != NewPoint(-2, 0) {
		t.Errorf("ProjectOntoRay behind origin failed: expected (-2, 0), got %v", behind)
	}
}
