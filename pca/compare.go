package pca

import (
	"fmt"

	"gonum.org/v1/gonum/floats/scalar"
)

// ReportDigits is the number of decimal places kept when a Result is
// reported
const ReportDigits = 3

// Result holds the similarity indices from a single comparison. The
// json tags match the keys of the pcz_similarity report.
type Result struct {
	// Weighted Cross Product, 1 for identical orthonormal subspaces
	WCP float64 `json:"similarityIndex_WCP"`
	// Root Mean Square Inner Product
	RMSIP float64 `json:"similarityIndex_rmsip"`
	// Root Weighted Square Inner Product
	RWSIP float64 `json:"similarityIndex_rwsip"`
	// Absolute similarity index, the square of RMSIP
	DotProduct float64 `json:"similarityIndex_dotp"`
}

// Round returns a copy of r with every index rounded to digits
// decimal places, half away from zero
func (r Result) Round(digits int) Result {
	return Result{
		WCP:        scalar.Round(r.WCP, digits),
		RMSIP:      scalar.Round(r.RMSIP, digits),
		RWSIP:      scalar.Round(r.RWSIP, digits),
		DotProduct: scalar.Round(r.DotProduct, digits),
	}
}

func (r Result) String() string {
	return fmt.Sprintf("%-8s%12.3f\n%-8s%12.3f\n%-8s%12.3f\n%-8s%12.3f\n",
		"WCP", r.WCP,
		"RMSIP", r.RMSIP,
		"RWSIP", r.RWSIP,
		"DOTP", r.DotProduct,
	)
}

// Compare checks that a and b can be compared and then computes every
// similarity index at full precision. dx is the amplifying factor for
// WCP; see WCP for the meaning of nil. On error no partial Result is
// returned.
func Compare(a, b ModeSet, dx *float64) (Result, error) {
	if err := Check(a, b); err != nil {
		return Result{}, err
	}
	return Result{
		WCP:        WCP(a, b, dx),
		RMSIP:      RMSIP(a, b),
		RWSIP:      RWSIP(a, b),
		DotProduct: DotProductAccum(a, b),
	}, nil
}
