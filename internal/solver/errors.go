package solver

import (
	"errors"
	"fmt"
)

// ErrCancelled is returned when a solver invocation is abandoned because its
// context was cancelled before the external process finished.
var ErrCancelled = errors.New("solver: inference cancelled")

// SolverError wraps a failed inference call with the program that produced
// it, truncated to a short excerpt so error logs stay readable. It is
// always fatal: the caller has no sensible fallback for a solver that
// cannot evaluate a program at all.
type SolverError struct {
	ProgramExcerpt string
	Stderr         string
	Err            error
}

const excerptLimit = 200

func newSolverError(program, stderr string, err error) *SolverError {
	excerpt := program
	if len(excerpt) > excerptLimit {
		excerpt = excerpt[:excerptLimit] + "..."
	}
	return &SolverError{ProgramExcerpt: excerpt, Stderr: stderr, Err: err}
}

func (e *SolverError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("solver: inference failed: %v (stderr: %s) (program: %s)", e.Err, e.Stderr, e.ProgramExcerpt)
	}
	return fmt.Sprintf("solver: inference failed: %v (program: %s)", e.Err, e.ProgramExcerpt)
}

func (e *SolverError) Unwrap() error { return e.Err }
