// Package bloch maps single-qubit measurement statistics onto the unit
// sphere and interpolates between points on it.
//
// Only the |1⟩ probability drives the geometry; the relative phase is fixed
// at zero, so every mapped point lies in the x-z plane:
//
//   - [FromProbability]: P(|1⟩) to a unit vector, with exact poles and equator
//   - [Interpolator]: spherical linear interpolation between two vectors
//   - [Vec3]: the vector type shared with the renderers
//
// # Example
//
//	from := bloch.FromProbability(0)
//	to := bloch.FromProbability(0.5)
//	path := bloch.Interpolate(from, to, 20)
package bloch
