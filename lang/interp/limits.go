package interp

import "github.com/caarlos0/env/v6"

// Limits are safety valves on execution. Unbounded recursion is ultimately
// bounded by the host goroutine's own stack, but a configured ceiling gives
// an earlier, catchable failure instead of a process crash. A value of 0
// means unlimited.
type Limits struct {
	// MaxCallDepth caps the number of nested user-function calls in flight.
	// Exceeding it raises a catchable *RuntimeError ("Stack overflow.")
	// instead of letting the host goroutine stack overflow.
	MaxCallDepth int `env:"LOX_MAX_CALL_DEPTH" envDefault:"0"`

	// MaxSteps caps the number of statements executed before evaluation is
	// aborted with a *RuntimeError ("Execution step limit exceeded."), a
	// safety valve for untrusted or runaway code; 0 means unlimited.
	MaxSteps int `env:"LOX_MAX_STEPS" envDefault:"0"`
}

// LimitsFromEnv builds a Limits by parsing the LOX_MAX_CALL_DEPTH and
// LOX_MAX_STEPS environment variables, falling back to "unlimited" (0) for
// either that is unset. A value that does not parse as an integer makes it
// return an error.
func LimitsFromEnv() (Limits, error) {
	var l Limits
	if err := env.Parse(&l); err != nil {
		return Limits{}, err
	}
	return l, nil
}
