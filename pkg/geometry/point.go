package geometry

import "math"

// Point represents a 2D point or vector in map coordinates
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// NewPoint creates a new 2D point
func NewPoint(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns the sum of two vectors
func (p Point) Add(other Point) Point {
	return Point{X: p.X + other.X, Y: p.Y + other.Y}
}

// Sub returns the difference between two vectors
func (p Point) Sub(other Point) Point {
	return Point{X: p.X - other.X, Y: p.Y - other.Y}
}

// Mul multiplies the vector by a scalar
func (p Point) Mul(scalar float64) Point {
	return Point{X: p.X * scalar, Y: p.Y * scalar}
}

// Dot returns the dot product of two vectors
func (p Point) Dot(other Point) float64 {
	return p.X*other.X + p.Y*other.Y
}

// Cross returns the z component of the cross product of two vectors
func (p Point) Cross(other Point) float64 {
	return p.X*other.Y - p.Y*other.X
}

// Length returns the magnitude of the vector
func (p Point) Length() float64 {
	return math.Sqrt(p.X*p.X + p.Y*p.Y)
}

// LengthSquared returns the squared magnitude of the vector
func (p Point) LengthSquared() float64 {
	return p.X*p.X + p.Y*p.Y
}

// Distance returns the distance between two points
func (p Point) Distance(other Point) float64 {
	return p.Sub(other).Length()
}

// DistanceSquared returns the squared distance between two points
func (p Point) DistanceSquared(other Point) float64 {
	return p.Sub(other).LengthSquared()
}

// Normalize returns a unit vector in the same direction
func (p Point) Normalize() Point {
	length := p.Length()
	if length == 0 {
		return Point{}
	}
	return p.Mul(1.0 / length)
}

// Angle returns the direction of the vector in radians, measured from the X axis
func (p Point) Angle() float64 {
	return math.Atan2(p.Y, p.X)
}

// IsNaN reports whether either coordinate is not a number
func (p Point) IsNaN() bool {
	return math.IsNaN(p.X) || math.IsNaN(p.Y)
}

// FromAngle returns the unit vector pointing at angle a (radians)
func FromAngle(a float64) Point {
	return Point{X: math.Cos(a), Y: math.Sin(a)}
}

// Degrees converts radians to degrees
func Degrees(rad float64) float64 {
	return rad / math.Pi * 180
}

// Radians converts degrees to radians
func Radians(deg float64) float64 {
	return deg / 180 * math.Pi
}
