package physics

import "math"

// Vec3 is a world-space position or direction. Gameplay happens on the X/Y
// plane; Z is carried through for hosts that place entities at a height.
type Vec3 struct {
	X, Y, Z float64
}

// Cardinal directions on the grid plane.
var (
	East  = Vec3{X: 1}
	West  = Vec3{X: -1}
	South = Vec3{Y: 1}
	North = Vec3{Y: -1}
)

// Cardinals lists the four blast directions in evaluation order.
var Cardinals = [4]Vec3{East, West, South, North}

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// Len2D returns the length of the vector projected on the grid plane.
func (v Vec3) Len2D() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// Dist2D returns the planar distance between two positions.
func (v Vec3) Dist2D(o Vec3) float64 {
	return Distance(v.X, v.Y, o.X, o.Y)
}

// Horizontal drops Z and normalizes to unit length. The zero vector stays zero.
func (v Vec3) Horizontal() Vec3 {
	l := v.Len2D()
	if l == 0 {
		return Vec3{}
	}
	return Vec3{X: v.X / l, Y: v.Y / l}
}

// IsZero reports whether the planar components are both zero.
func (v Vec3) IsZero() bool {
	return v.X == 0 && v.Y == 0
}
