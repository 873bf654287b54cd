// Package entangle estimates a two-qubit correlation strength from a joint
// distribution and the two single-qubit marginals.
//
// The score is a visualization cue. It is not an entanglement measure in
// the density-matrix sense.
package entangle

import (
	"math"

	"github.com/san-kum/qcviz/internal/dist"
)

const (
	DefaultSaturationThreshold = 0.9
	DefaultPenaltyWeight       = 0.5
)

// DefaultCorrelatedLabels are the two maximally correlated outcomes of a
// Bell pair prepared from |00⟩.
var DefaultCorrelatedLabels = []string{"00", "11"}

type Params struct {
	// SaturationThreshold is the correlated mass above which the score is
	// the mass itself.
	SaturationThreshold float64
	// PenaltyWeight scales how far the marginals sit from 0.5.
	PenaltyWeight    float64
	CorrelatedLabels []string
}

func DefaultParams() Params {
	return Params{
		SaturationThreshold: DefaultSaturationThreshold,
		PenaltyWeight:       DefaultPenaltyWeight,
		CorrelatedLabels:    DefaultCorrelatedLabels,
	}
}

// Estimate scores state with the default parameters.
func Estimate(state dist.Distribution, p0, p1 float64) float64 {
	return DefaultParams().Estimate(state, p0, p1)
}

// Estimate returns a score in [0, 1]. p0 and p1 are the |1⟩ probabilities of
// the two qubits.
func (p Params) Estimate(state dist.Distribution, p0, p1 float64) float64 {
	mass := p.CorrelatedMass(state)
	if mass > p.SaturationThreshold {
		return math.Min(1, mass)
	}
	score := mass - p.PenaltyWeight*Penalty(p0, p1)
	return math.Max(0, math.Min(1, score))
}

// CorrelatedMass sums the non-negative probability on the correlated labels.
func (p Params) CorrelatedMass(state dist.Distribution) float64 {
	labels := p.CorrelatedLabels
	if labels == nil {
		labels = DefaultCorrelatedLabels
	}
	mass := 0.0
	for _, l := range labels {
		if v := state[l]; v > 0 {
			mass += v
		}
	}
	return mass
}

// Penalty is large when either marginal behaves like a definite bit.
func Penalty(p0, p1 float64) float64 {
	return math.Abs(p0-0.5) + math.Abs(p1-0.5)
}
