// Package pca compares the essential subspaces of two compressed
// trajectories. Each subspace is described by a ModeSet, the ordered
// eigenvalue/eigenvector pairs dumped by pczdump, and the comparison
// yields the WCP, RMSIP, RWSIP and absolute dot product similarity
// indices.
package pca

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Mode is a single principal component. Vector is the flattened
// per-atom displacement direction, so its length is three times the
// number of atoms, and Value is the variance it explains.
type Mode struct {
	Value  float64
	Vector []float64
}

// ModeSet holds the modes of one trajectory, dominant mode first. A
// ModeSet is never modified by anything in this package.
type ModeSet []Mode

// NewModeSet pairs up the eigenvalues and eigenvectors returned by
// separate dumps of the same file
func NewModeSet(values []float64, vectors [][]float64) (ModeSet, error) {
	if len(values) != len(vectors) {
		return nil, fmt.Errorf("%w: %d eigenvalues for %d eigenvectors",
			ErrIncompatibleModeSets, len(values), len(vectors),
		)
	}
	ret := make(ModeSet, len(values))
	for i := range values {
		ret[i] = Mode{
			Value:  values[i],
			Vector: vectors[i],
		}
	}
	return ret, nil
}

func (m ModeSet) Len() int {
	return len(m)
}

// Values returns the eigenvalues of m in order
func (m ModeSet) Values() []float64 {
	ret := make([]float64, len(m))
	for i := range m {
		ret[i] = m[i].Value
	}
	return ret
}

// Dim returns the length of the eigenvectors in m, or zero for an
// empty ModeSet
func (m ModeSet) Dim() int {
	if len(m) == 0 {
		return 0
	}
	return len(m[0].Vector)
}

// Atoms returns the number of atoms described by each eigenvector
func (m ModeSet) Atoms() int {
	return m.Dim() / 3
}

// Matrix returns the eigenvectors of m as the rows of a new matrix.
// It panics if the eigenvectors have different lengths, which Check
// rules out.
func (m ModeSet) Matrix() *mat.Dense {
	r, c := len(m), m.Dim()
	data := make([]float64, 0, r*c)
	for _, mode := range m {
		if len(mode.Vector) != c {
			panic("ragged eigenvectors in ModeSet")
		}
		data = append(data, mode.Vector...)
	}
	return mat.NewDense(r, c, data)
}
