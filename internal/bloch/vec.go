package bloch

import (
	"fmt"
	"math"
)

// Vec3 is a point or direction in 3-D space.
type Vec3 struct {
	X, Y, Z float64
}

var (
	North = Vec3{0, 0, 1}
	South = Vec3{0, 0, -1}
	PlusX = Vec3{1, 0, 0}
)

func (v Vec3) Add(o Vec3) Vec3      { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3      { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }
func (v Vec3) Dot(o Vec3) float64   { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }
func (v Vec3) Norm() float64        { return math.Sqrt(v.Dot(v)) }
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{v.Y*o.Z - v.Z*o.Y, v.Z*o.X - v.X*o.Z, v.X*o.Y - v.Y*o.X}
}

// Normalize returns v scaled to unit length. The zero vector stays zero.
func (v Vec3) Normalize() Vec3 {
	if n := v.Norm(); n != 0 {
		return v.Scale(1 / n)
	}
	return Vec3{}
}

// Lerp interpolates per component: v*(1-t) + o*t.
func (v Vec3) Lerp(o Vec3, t float64) Vec3 {
	return v.Scale(1 - t).Add(o.Scale(t))
}

// IsValid reports whether every component is finite.
func (v Vec3) IsValid() bool {
	for _, c := range [3]float64{v.X, v.Y, v.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// Angle returns the angle between v and o in radians.
func (v Vec3) Angle(o Vec3) float64 {
	return math.Acos(clamp(v.Normalize().Dot(o.Normalize()), -1, 1))
}

func (v Vec3) String() string {
	return fmt.Sprintf("(%.4f, %.4f, %.4f)", v.X, v.Y, v.Z)
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
