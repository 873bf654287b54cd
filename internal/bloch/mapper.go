package bloch

import "math"

// EquatorTolerance is how close P(|1⟩) must be to 0.5 to snap onto +x.
const EquatorTolerance = 1e-6

// FromProbability converts P(|1⟩) into a unit vector with θ = 2·asin(√p)
// and φ = 0. The poles and the equator are returned exactly.
//
// p is expected in [0, 1]; values marginally outside are clamped.
func FromProbability(p float64) Vec3 {
	switch {
	case p == 0:
		return North
	case p == 1:
		return South
	case math.Abs(p-0.5) < EquatorTolerance:
		return PlusX
	}
	theta := 2 * math.Asin(math.Sqrt(clamp(p, 0, 1)))
	return Vec3{math.Sin(theta), 0, math.Cos(theta)}
}

// Probability inverts FromProbability for a vector in the x-z plane.
func Probability(v Vec3) float64 {
	return clamp((1-v.Normalize().Z)/2, 0, 1)
}
