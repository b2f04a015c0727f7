package main

import (
	"bytes"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestWriteMat(t *testing.T) {
	var buf bytes.Buffer
	WriteMat(&buf, mat.NewDense(2, 2, []float64{
		1, 0.5,
		0, -0.25,
	}))
	got := buf.String()
	want := `              pc1         pc2
  pc1  1.00000000  0.50000000
  pc2  0.00000000 -0.25000000
`
	if got != want {
		t.Errorf("got\n%q, wanted\n%q\n", got, want)
	}
}
