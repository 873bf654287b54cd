// Package timeline turns an ordered list of circuit steps into a paced
// sequence of render-ready frames.
//
// One [Assemble] call drives every view. What a frame carries is decided by
// the [Projector] passed in:
//
//   - [Sphere]: one qubit as a Bloch vector
//   - [Histogram]: the joint distribution over basis states
//   - [Pair]: two Bloch vectors and their correlation score
//   - [Combined]: all of the above in one [Snapshot]
//
// Each consecutive pair of steps contributes FrameRate frames labelled with
// the destination step, and a hold of FrameRate/2 frames repeats the final
// step. A single step yields only the hold; no steps yield no frames.
package timeline
