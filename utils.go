package main

import (
	"fmt"
	"io"
	"os"

	"gonum.org/v1/gonum/mat"
)

// DumpMat writes m to stderr so it does not mix with a JSON report on
// stdout
func DumpMat(m mat.Matrix) {
	WriteMat(os.Stderr, m)
}

// WriteMat writes m as a table with 1-based mode numbers on both axes,
// matching the pcN keys of the report
func WriteMat(w io.Writer, m mat.Matrix) {
	r, c := m.Dims()
	fmt.Fprintf(w, "%5s", "")
	for j := 0; j < c; j++ {
		fmt.Fprintf(w, "%12s", fmt.Sprintf("pc%d", j+1))
	}
	fmt.Fprint(w, "\n")
	for i := 0; i < r; i++ {
		fmt.Fprintf(w, "%5s", fmt.Sprintf("pc%d", i+1))
		for j := 0; j < c; j++ {
			fmt.Fprintf(w, "%12.8f", m.At(i, j))
		}
		fmt.Fprint(w, "\n")
	}
}
