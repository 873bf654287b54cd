package circuit

import (
	"fmt"
	"strings"

	"github.com/san-kum/qcviz/internal/dist"
)

// FinalStateDescription labels the synthetic step built from a result that
// only carries its final state.
const FinalStateDescription = "Final State"

// Step is one observation point in the evolution of a circuit.
type Step struct {
	Number             int               `json:"step"`
	Description        string            `json:"description"`
	QubitProbabilities map[int]float64   `json:"qubit_probabilities"`
	SystemState        dist.Distribution `json:"system_state"`
}

// Probability returns P(|1⟩) of qubit q.
func (s Step) Probability(q int) (float64, error) {
	p, ok := s.QubitProbabilities[q]
	if !ok {
		return 0, fmt.Errorf("%w: qubit %d in step %q", ErrMissingQubit, q, s.Description)
	}
	return p, nil
}

// GateStep lists the gates applied in one circuit column.
type GateStep struct {
	Number int      `json:"step"`
	Gates  []string `json:"gates"`
}

// Result is the document written by the circuit exporter.
type Result struct {
	CircuitName        string            `json:"circuit_name"`
	QubitCount         int               `json:"qubit_count"`
	Steps              []GateStep        `json:"steps,omitempty"`
	QubitProbabilities map[int]float64   `json:"qubit_probabilities,omitempty"`
	SystemState        dist.Distribution `json:"system_state,omitempty"`
	StepStates         []Step            `json:"step_states,omitempty"`
}

// Name returns the circuit name, or "Unknown" when absent.
func (r *Result) Name() string {
	if r.CircuitName == "" {
		return "Unknown"
	}
	return r.CircuitName
}

// HasFinalState reports whether the final-state shape is present.
func (r *Result) HasFinalState() bool {
	return r.QubitProbabilities != nil || r.SystemState != nil
}

// Timeline returns the step states, or the final state as a single step
// when the result has no step states.
func (r *Result) Timeline() []Step {
	if len(r.StepStates) > 0 {
		return r.StepStates
	}
	if !r.HasFinalState() {
		return nil
	}
	return []Step{{
		Number:             0,
		Description:        FinalStateDescription,
		QubitProbabilities: r.QubitProbabilities,
		SystemState:        r.SystemState,
	}}
}

// Final returns the last observation of the circuit.
func (r *Result) Final() (Step, bool) {
	steps := r.Timeline()
	if len(steps) == 0 {
		return Step{}, false
	}
	return steps[len(steps)-1], true
}

// Labels returns every basis label for the declared qubit count.
func (r *Result) Labels() []string {
	return dist.BasisLabels(r.QubitCount)
}

// Chain joins the step descriptions with arrows.
func Chain(steps []Step) string {
	descs := make([]string, len(steps))
	for i, s := range steps {
		descs[i] = s.Description
	}
	return strings.Join(descs, " → ")
}
