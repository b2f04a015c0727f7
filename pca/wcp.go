package pca

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// DefaultDx returns the amplifying factor used when none is given:
// the eigenvalue of the last mode retained from a
func DefaultDx(a ModeSet) float64 {
	return a[len(a)-1].Value
}

// weights returns exp(-dx²/λ) and exp(-2dx²/λ) for every eigenvalue
// λ in m, along with the sum of the former
func weights(m ModeSet, dx2 float64) (e, e2 []float64, sum float64) {
	e = make([]float64, len(m))
	e2 = make([]float64, len(m))
	for k, mode := range m {
		e[k] = math.Exp(-dx2 / mode.Value)
		e2[k] = math.Exp(-2 * dx2 / mode.Value)
	}
	return e, e2, floats.Sum(e)
}

// wcpDenominator is the self-overlap of the two weightings,
// Σ(e2_k/sum_a²)² + Σ(e2_k/sum_b²)²
func wcpDenominator(e2a []float64, suma float64, e2b []float64, sumb float64) float64 {
	var den float64
	sa := suma * suma
	for _, v := range e2a {
		den += (v / sa) * (v / sa)
	}
	sb := sumb * sumb
	for _, v := range e2b {
		den += (v / sb) * (v / sb)
	}
	return den
}

// WCP returns the Weighted Cross Product similarity of a and b (Perez
// et al., J. Chem. Theory Comput. 2005, 1). Every pair of modes
// contributes its squared dot product, damped by exp(-dx²/λ) of each
// eigenvalue so that soft modes dominate. If dx is nil, DefaultDx(a)
// is used; pass a pointer to 0 for uniform weights. The inputs must
// already satisfy Check.
func WCP(a, b ModeSet, dx *float64) float64 {
	var f float64
	if dx == nil {
		f = DefaultDx(a)
	} else {
		f = *dx
	}
	dx2 := f * f
	ea, e2a, suma := weights(a, dx2)
	eb, e2b, sumb := weights(b, dx2)
	den := wcpDenominator(e2a, suma, e2b, sumb)

	// numerator = 2 Σ_ij (D_ij · ea_i · eb_j / (suma·sumb))²
	n := len(a)
	var w mat.Dense
	w.Outer(1/(suma*sumb), mat.NewVecDense(n, ea), mat.NewVecDense(n, eb))
	var prod, sq mat.Dense
	prod.MulElem(DotProduct(a, b), &w)
	sq.MulElem(&prod, &prod)
	return 2 * mat.Sum(&sq) / den
}

// wcpLoop computes the same quantity as WCP one mode pair at a time,
// taking the exponential of the summed exponents for each pair
func wcpLoop(a, b ModeSet, dx *float64) float64 {
	var f float64
	if dx == nil {
		f = DefaultDx(a)
	} else {
		f = *dx
	}
	dx2 := f * f
	_, e2a, suma := weights(a, dx2)
	_, e2b, sumb := weights(b, dx2)
	den := wcpDenominator(e2a, suma, e2b, sumb)
	c := suma * sumb
	var acc float64
	for i := range a {
		for j := range b {
			d := floats.Dot(a[i].Vector, b[j].Vector)
			x := math.Exp(-dx2/a[i].Value - dx2/b[j].Value)
			v := d * x / c
			acc += v * v
		}
	}
	return 2 * acc / den
}
