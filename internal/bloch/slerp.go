package bloch

import (
	"math"

	"github.com/san-kum/qcviz/internal/ease"
)

// DefaultAngleThreshold is the angle below which two directions count as
// coincident (or, measured from π, antiparallel).
const DefaultAngleThreshold = 1e-6

// Interpolator performs spherical linear interpolation.
type Interpolator struct {
	Threshold float64
}

var Default = Interpolator{Threshold: DefaultAngleThreshold}

func NewInterpolator(threshold float64) Interpolator {
	if threshold <= 0 {
		threshold = DefaultAngleThreshold
	}
	return Interpolator{Threshold: threshold}
}

// Interpolate returns n vectors from v1 to v2 with endpoints included.
func Interpolate(v1, v2 Vec3, n int) []Vec3 {
	return Default.Interpolate(v1, v2, n)
}

func (ip Interpolator) Interpolate(v1, v2 Vec3, n int) []Vec3 {
	return ip.At(v1, v2, ease.Linspace(n))
}

// At evaluates the arc from v1 to v2 at each t in ts.
//
// Both inputs are normalized first. When the angle between them is within
// Threshold of 0 or π the great circle is undefined (or sin θ vanishes), so
// the result falls back to per-component linear interpolation of the
// normalized endpoints without re-projecting onto the sphere.
func (ip Interpolator) At(v1, v2 Vec3, ts []float64) []Vec3 {
	a, b := v1.Normalize(), v2.Normalize()
	theta := math.Acos(clamp(a.Dot(b), -1, 1))

	out := make([]Vec3, len(ts))
	if theta < ip.Threshold || math.Pi-theta < ip.Threshold {
		for i, t := range ts {
			out[i] = a.Lerp(b, t)
		}
		return out
	}

	sinTheta := math.Sin(theta)
	for i, t := range ts {
		wa := math.Sin((1-t)*theta) / sinTheta
		wb := math.Sin(t*theta) / sinTheta
		out[i] = a.Scale(wa).Add(b.Scale(wb))
	}
	return out
}
