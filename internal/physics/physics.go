// Package physics provides grid snapping, collision tests and distance utilities.
package physics

import "math"

// Distance calculates the Euclidean distance between two points.
func Distance(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return math.Sqrt(dx*dx + dy*dy)
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

// BoxesOverlap checks if two axis-aligned boxes overlap on the horizontal plane.
// Boxes are given by center and half-extent. Touching edges do not count.
func BoxesOverlap(a, aExtent, b, bExtent Vec3) bool {
	return math.Abs(a.X-b.X) < aExtent.X+bExtent.X &&
		math.Abs(a.Y-b.Y) < aExtent.Y+bExtent.Y
}

// ToGrid snaps a position to the nearest cell center of a grid with the given
// cell size. Z passes through unchanged. ToGrid(ToGrid(p)) == ToGrid(p).
func ToGrid(p Vec3, gridSize float64) Vec3 {
	if gridSize <= 0 {
		return p
	}
	return Vec3{
		X: math.Round(p.X/gridSize) * gridSize,
		Y: math.Round(p.Y/gridSize) * gridSize,
		Z: p.Z,
	}
}

// CellOf returns the integer cell coordinates containing p.
func CellOf(p Vec3, gridSize float64) (col, row int) {
	return int(math.Round(p.X / gridSize)), int(math.Round(p.Y / gridSize))
}

// CellCenter returns the world position of a cell center.
func CellCenter(col, row int, gridSize float64) Vec3 {
	return Vec3{X: float64(col) * gridSize, Y: float64(row) * gridSize}
}
