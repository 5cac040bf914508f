// Package physics provides collision detection and distance utilities.
package physics

import "math"

// Rect is an axis-aligned box with its origin at the top-left corner.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// Circle is a disc given by its centre and radius.
type Circle struct {
	X, Y   float64
	Radius float64
}

// DistanceSquared calculates the squared distance between two points.
// Use this when comparing distances to avoid the sqrt cost.
func DistanceSquared(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return dx*dx + dy*dy
}

// PointInCircle checks if a point is within radius of a target position.
func PointInCircle(px, py, cx, cy, radius float64) bool {
	return DistanceSquared(px, py, cx, cy) <= radius*radius
}

// ClosestPoint returns the point of r nearest to (x, y) by clamping each axis.
func (r Rect) ClosestPoint(x, y float64) (float64, float64) {
	return clamp(x, r.X, r.X+r.Width), clamp(y, r.Y, r.Y+r.Height)
}

// RectCircle reports whether the box and the disc touch or overlap.
// A circle whose edge exactly reaches the box counts as a hit.
func RectCircle(r Rect, c Circle) bool {
	nx, ny := r.ClosestPoint(c.X, c.Y)
	return PointInCircle(nx, ny, c.X, c.Y, c.Radius)
}

// RectsOverlap reports whether two boxes overlap. Boxes that share only an
// edge are overlapping; a gap on either axis separates them.
func RectsOverlap(a, b Rect) bool {
	separatedX := a.X+a.Width < b.X || a.X > b.X+b.Width
	separatedY := a.Y+a.Height < b.Y || a.Y > b.Y+b.Height
	return !separatedX && !separatedY
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}
