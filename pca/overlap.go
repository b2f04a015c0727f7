package pca

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// DotProduct returns the matrix of dot products between every
// eigenvector of a (rows) and every eigenvector of b (columns)
func DotProduct(a, b ModeSet) *mat.Dense {
	var ret mat.Dense
	ret.Mul(a.Matrix(), b.Matrix().T())
	return &ret
}

// DotProductAccum returns the absolute similarity index of Hess
// (2000, 2002): the sum of the squared entries of DotProduct(a, b)
// divided by the number of modes
func DotProductAccum(a, b ModeSet) float64 {
	dpm := DotProduct(a, b)
	var sq mat.Dense
	sq.MulElem(dpm, dpm)
	return mat.Sum(&sq) / float64(len(a))
}

// RMSIP returns the root mean square inner product of the
// eigenvectors of a and b. No normalization is performed, so the
// eigenvectors should already be unit length.
func RMSIP(a, b ModeSet) float64 {
	var acc float64
	for i := range a {
		for j := range b {
			d := floats.Dot(a[i].Vector, b[j].Vector)
			acc += d * d
		}
	}
	return math.Sqrt(acc / float64(len(a)))
}

// RWSIP returns the root weighted square inner product (Fuglebakk et
// al., Bioinformatics 28(19), 2012). Each squared dot product is
// weighted by the eigenvalues of both modes, while the normalizer
// only sums the eigenvalue products of modes with matching index.
func RWSIP(a, b ModeSet) float64 {
	var acc, norm float64
	for i := range a {
		for j := range b {
			d := floats.Dot(a[i].Vector, b[j].Vector)
			acc += d * d * a[i].Value * b[j].Value
		}
		norm += a[i].Value * b[i].Value
	}
	return math.Sqrt(acc / norm)
}
