package timeline

import (
	"fmt"

	"github.com/san-kum/qcviz/internal/bloch"
	"github.com/san-kum/qcviz/internal/circuit"
	"github.com/san-kum/qcviz/internal/dist"
	"github.com/san-kum/qcviz/internal/entangle"
)

// Sphere projects one qubit onto the Bloch sphere.
type Sphere struct {
	Qubit  int
	Interp bloch.Interpolator
}

func NewSphere(qubit int) Sphere {
	return Sphere{Qubit: qubit, Interp: bloch.Default}
}

func (s Sphere) Project(st circuit.Step) (bloch.Vec3, error) {
	p, err := st.Probability(s.Qubit)
	if err != nil {
		return bloch.Vec3{}, err
	}
	return bloch.FromProbability(p), nil
}

func (s Sphere) Interpolate(from, to bloch.Vec3, ts []float64) []bloch.Vec3 {
	return interp(s.Interp).At(from, to, ts)
}

// Histogram projects the joint distribution. When Labels is set every
// payload is zero-filled to those labels.
type Histogram struct {
	Labels []string
}

func (h Histogram) Project(st circuit.Step) (dist.Distribution, error) {
	if st.SystemState == nil {
		return nil, fmt.Errorf("%w: system_state in step %q", circuit.ErrMalformed, st.Description)
	}
	if h.Labels != nil {
		return st.SystemState.Filled(h.Labels), nil
	}
	return st.SystemState.Clone(), nil
}

func (h Histogram) Interpolate(from, to dist.Distribution, ts []float64) []dist.Distribution {
	return dist.At(from, to, ts)
}

// PairState is two Bloch vectors and the correlation score between them.
type PairState struct {
	Q0, Q1       bloch.Vec3
	Entanglement float64
}

// Pair projects two qubits and scores their correlation. Params is used
// as given; NewPair fills in the defaults.
type Pair struct {
	Q0, Q1 int
	Params entangle.Params
	Interp bloch.Interpolator
}

func NewPair() Pair {
	return Pair{Q0: 0, Q1: 1, Params: entangle.DefaultParams(), Interp: bloch.Default}
}

func (pr Pair) Project(st circuit.Step) (PairState, error) {
	p0, err := st.Probability(pr.Q0)
	if err != nil {
		return PairState{}, err
	}
	p1, err := st.Probability(pr.Q1)
	if err != nil {
		return PairState{}, err
	}
	return PairState{
		Q0:           bloch.FromProbability(p0),
		Q1:           bloch.FromProbability(p1),
		Entanglement: pr.Params.Estimate(st.SystemState, p0, p1),
	}, nil
}

// Interpolate moves both vectors along their arcs and blends the score
// linearly.
func (pr Pair) Interpolate(from, to PairState, ts []float64) []PairState {
	ip := interp(pr.Interp)
	q0 := ip.At(from.Q0, to.Q0, ts)
	q1 := ip.At(from.Q1, to.Q1, ts)
	out := make([]PairState, len(ts))
	for i, t := range ts {
		out[i] = PairState{
			Q0:           q0[i],
			Q1:           q1[i],
			Entanglement: from.Entanglement*(1-t) + to.Entanglement*t,
		}
	}
	return out
}

// Snapshot carries every view of one frame.
type Snapshot struct {
	Vector       bloch.Vec3
	Distribution dist.Distribution
	// Pair is nil for single-qubit circuits.
	Pair *PairState
}

// Combined projects the sphere, histogram and, when the circuit has two
// qubits, the pair view together.
type Combined struct {
	Sphere    Sphere
	Histogram Histogram
	Pair      Pair
	WithPair  bool
}

// NewCombined builds a combined projector for a circuit of qubits qubits.
func NewCombined(qubit, qubits int) Combined {
	return Combined{
		Sphere:    NewSphere(qubit),
		Histogram: Histogram{Labels: dist.BasisLabels(qubits)},
		Pair:      NewPair(),
		WithPair:  qubits >= 2,
	}
}

func (c Combined) Project(st circuit.Step) (Snapshot, error) {
	v, err := c.Sphere.Project(st)
	if err != nil {
		return Snapshot{}, err
	}
	d, err := c.Histogram.Project(st)
	if err != nil {
		return Snapshot{}, err
	}
	snap := Snapshot{Vector: v, Distribution: d}
	if c.WithPair {
		ps, err := c.Pair.Project(st)
		if err != nil {
			return Snapshot{}, err
		}
		snap.Pair = &ps
	}
	return snap, nil
}

func (c Combined) Interpolate(from, to Snapshot, ts []float64) []Snapshot {
	vs := c.Sphere.Interpolate(from.Vector, to.Vector, ts)
	ds := c.Histogram.Interpolate(from.Distribution, to.Distribution, ts)
	var ps []PairState
	if from.Pair != nil && to.Pair != nil {
		ps = c.Pair.Interpolate(*from.Pair, *to.Pair, ts)
	}
	out := make([]Snapshot, len(ts))
	for i := range ts {
		out[i] = Snapshot{Vector: vs[i], Distribution: ds[i]}
		if ps != nil {
			out[i].Pair = &ps[i]
		}
	}
	return out
}

// ForQubits checks that a two-qubit view fits a circuit of qubits qubits.
func ForQubits(qubits int) error {
	if qubits < 2 {
		return fmt.Errorf("%w: circuit has %d", ErrTooFewQubits, qubits)
	}
	return nil
}

func interp(ip bloch.Interpolator) bloch.Interpolator {
	if ip.Threshold <= 0 {
		return bloch.Default
	}
	return ip
}
