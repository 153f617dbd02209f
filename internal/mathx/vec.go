package mathx

import "math"

// Vec3 is a world-space position or displacement. Y is up; the ground
// plane is XZ, matching the simulation's collision model.
type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

func (v Vec3) Len() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// LenXZ is the length of the ground-plane projection.
func (v Vec3) LenXZ() float64 {
	return math.Hypot(v.X, v.Z)
}

// DistXZ is the ground-plane distance between two points. Collision and
// arrival tests ignore Y.
func DistXZ(a, b Vec3) float64 {
	return math.Hypot(a.X-b.X, a.Z-b.Z)
}

// Normalized returns v scaled to unit length, or the zero vector when v
// is too short to carry a direction.
func (v Vec3) Normalized() Vec3 {
	l := v.Len()
	if l < 1e-12 {
		return Vec3{}
	}
	return v.Scale(1 / l)
}

// Lerp interpolates a→b by t in [0,1].
func Lerp(a, b Vec3, t float64) Vec3 {
	return Vec3{
		X: a.X + (b.X-a.X)*t,
		Y: a.Y + (b.Y-a.Y)*t,
		Z: a.Z + (b.Z-a.Z)*t,
	}
}

// HeadingXZ returns the facing angle in radians for a ground-plane
// displacement, measured the same way the renderer expects direction.
func HeadingXZ(d Vec3) float64 {
	return math.Atan2(d.X, d.Z)
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
