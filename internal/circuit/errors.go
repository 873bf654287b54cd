package circuit

import (
	"errors"
	"fmt"
)

// Domain errors for circuit result input.
var (
	// ErrMalformed indicates a result file that violates the input contract.
	ErrMalformed = errors.New("circuit: malformed result")

	// ErrNoSteps indicates a result with neither step states nor a final state.
	ErrNoSteps = errors.New("circuit: result carries no state")

	// ErrMissingQubit indicates a step without a probability for a requested qubit.
	ErrMissingQubit = errors.New("circuit: qubit probability missing")
)

// InputError locates a malformed field. Step is -1 for top-level fields.
type InputError struct {
	Step   int
	Field  string
	Reason string
}

func (e *InputError) Error() string {
	if e.Step < 0 {
		return fmt.Sprintf("%s: %s: %s", ErrMalformed, e.Field, e.Reason)
	}
	return fmt.Sprintf("%s: step %d: %s: %s", ErrMalformed, e.Step, e.Field, e.Reason)
}

func (e *InputError) Unwrap() error {
	return ErrMalformed
}
