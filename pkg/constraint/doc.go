// Package constraint resolves a free cursor position against user locks on
// X, Y, angle and distance.
//
// The engine is a pure function: Constrain takes the raw point, the point
// history and a copy of the lock state and returns the constrained point
// along with the lock state whose unlocked axes carry the values read out
// from the result. Axes are resolved in a fixed order (X, Y, angle,
// distance), each stage consuming the point produced by the previous one.
//
// Angles are degrees in every exported value; radians are only used
// internally.
package constraint
