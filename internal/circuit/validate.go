package circuit

import (
	"fmt"
	"math"

	"github.com/san-kum/qcviz/internal/dist"
)

// ProbabilityTolerance is the slack allowed outside [0, 1] for values that
// were rounded by the exporter.
const ProbabilityTolerance = 1e-9

// Validate checks the result against the input contract. Distributions that
// do not sum to one are accepted as-is.
func (r *Result) Validate() error {
	if r.QubitCount <= 0 {
		return &InputError{Step: -1, Field: "qubit_count", Reason: fmt.Sprintf("must be positive, got %d", r.QubitCount)}
	}
	if len(r.StepStates) == 0 && !r.HasFinalState() {
		return ErrNoSteps
	}
	if r.HasFinalState() {
		if err := r.validateState(-1, r.QubitProbabilities, r.SystemState); err != nil {
			return err
		}
	}
	for i, s := range r.StepStates {
		if err := r.validateState(i, s.QubitProbabilities, s.SystemState); err != nil {
			return err
		}
	}
	return nil
}

func (r *Result) validateState(step int, qubits map[int]float64, state dist.Distribution) error {
	if qubits == nil {
		return &InputError{Step: step, Field: "qubit_probabilities", Reason: "missing"}
	}
	if state == nil {
		return &InputError{Step: step, Field: "system_state", Reason: "missing"}
	}
	for q, p := range qubits {
		if q < 0 || q >= r.QubitCount {
			return &InputError{Step: step, Field: "qubit_probabilities", Reason: fmt.Sprintf("qubit %d outside [0,%d)", q, r.QubitCount)}
		}
		if !validProbability(p) {
			return &InputError{Step: step, Field: "qubit_probabilities", Reason: fmt.Sprintf("qubit %d probability %v outside [0,1]", q, p)}
		}
	}
	for label, p := range state {
		if len(label) != r.QubitCount {
			return &InputError{Step: step, Field: "system_state", Reason: fmt.Sprintf("label %q has width %d, qubit_count is %d", label, len(label), r.QubitCount)}
		}
		for _, c := range label {
			if c != '0' && c != '1' {
				return &InputError{Step: step, Field: "system_state", Reason: fmt.Sprintf("label %q is not a bit string", label)}
			}
		}
		if !validProbability(p) {
			return &InputError{Step: step, Field: "system_state", Reason: fmt.Sprintf("label %q probability %v outside [0,1]", label, p)}
		}
	}
	return nil
}

func validProbability(p float64) bool {
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return false
	}
	return p >= -ProbabilityTolerance && p <= 1+ProbabilityTolerance
}
