package qm

import (
	"errors"
	"fmt"
)

// ErrCoverage is matched by every CoverageError.
var ErrCoverage = errors.New("cannot cover all minterms")

// CoverageError is returned when no prime implicant covers the minterms
// that are still uncovered. It cannot happen for a correct prime closure.
type CoverageError struct {
	Remaining []int
}

func (e *CoverageError) Error() string {
	return fmt.Sprintf("%s: %v uncovered", ErrCoverage, e.Remaining)
}

func (e *CoverageError) Is(target error) bool {
	return target == ErrCoverage
}
