package pca

import (
	"errors"
	"fmt"
)

// Errors
var (
	ErrIncompatibleModeSets = errors.New("incompatible mode sets")
	ErrDegenerateEigenvalue = errors.New("degenerate eigenvalue")
	ErrMalformedEigenvector = errors.New("malformed eigenvector")
)

// Compatible reports whether a and b have the same number of modes
// and eigenvectors of the same length
func Compatible(a, b ModeSet) bool {
	if len(a) != len(b) {
		return false
	}
	if len(a) == 0 {
		return true
	}
	return len(a[0].Vector) == len(b[0].Vector)
}

// Check returns a non-nil error if a and b cannot be compared. The
// checks run in order: compatibility of the two sets, shape of the
// eigenvectors, then positivity of the eigenvalues, so that nothing
// downstream ever divides by a bad eigenvalue or indexes past the end
// of a vector.
func Check(a, b ModeSet) error {
	if !Compatible(a, b) {
		return fmt.Errorf("%w: %d modes of length %d vs %d modes of length %d",
			ErrIncompatibleModeSets, a.Len(), a.Dim(), b.Len(), b.Dim(),
		)
	}
	if len(a) == 0 {
		return fmt.Errorf("%w: no modes to compare",
			ErrIncompatibleModeSets)
	}
	for _, set := range []struct {
		name string
		m    ModeSet
	}{{"first", a}, {"second", b}} {
		if err := checkVectors(set.m); err != nil {
			return fmt.Errorf("%s set: %w", set.name, err)
		}
	}
	for _, set := range []struct {
		name string
		m    ModeSet
	}{{"first", a}, {"second", b}} {
		if err := checkValues(set.m); err != nil {
			return fmt.Errorf("%s set: %w", set.name, err)
		}
	}
	return nil
}

func checkVectors(m ModeSet) error {
	dim := m.Dim()
	if dim == 0 || dim%3 != 0 {
		return fmt.Errorf("%w: length %d is not a multiple of 3",
			ErrMalformedEigenvector, dim)
	}
	for i, mode := range m {
		if len(mode.Vector) != dim {
			return fmt.Errorf("%w: mode %d has length %d, wanted %d",
				ErrMalformedEigenvector, i, len(mode.Vector), dim,
			)
		}
	}
	return nil
}

func checkValues(m ModeSet) error {
	for i, mode := range m {
		// also catches NaN
		if !(mode.Value > 0) {
			return fmt.Errorf("%w: mode %d has eigenvalue %g",
				ErrDegenerateEigenvalue, i, mode.Value)
		}
	}
	return nil
}
