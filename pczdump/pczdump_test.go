package pczdump

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"bwestbro.com/pczsim/pca"
)

func testDumper(t *testing.T) Dumper {
	bin, err := filepath.Abs("scripts/pczdump")
	if err != nil {
		t.Fatal(err)
	}
	return Dumper{
		Binary: bin,
		Dir:    t.TempDir(),
	}
}

func compFloat(a, b []float64, eps float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if math.Abs(a[i]-b[i]) > eps {
			return false
		}
	}
	return true
}

func TestArgs(t *testing.T) {
	got := Args("in.pcz", "out.dat", "--evec=3")
	want := []string{"-i", "in.pcz", "-o", "out.dat", "--evec=3"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, wanted %v\n", got, want)
	}
}

func TestReadColumn(t *testing.T) {
	got, err := ReadColumn(strings.NewReader("  1.5\n\n-2.0e-1\n 3\n"))
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{1.5, -0.2, 3}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, wanted %v\n", got, want)
	}
	_, err = ReadColumn(strings.NewReader("1.0 2.0\n"))
	if !errors.Is(err, ErrParse) {
		t.Errorf("got %v, wanted %v\n", err, ErrParse)
	}
	_, err = ReadColumn(strings.NewReader("\n  \n"))
	if !errors.Is(err, ErrBlankOutput) {
		t.Errorf("got %v, wanted %v\n", err, ErrBlankOutput)
	}
}

func TestReadFields(t *testing.T) {
	got, err := ReadFields(strings.NewReader(
		"   0.100   0.200   0.300\n  -0.400   0.500\n   0.600\n"))
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{0.1, 0.2, 0.3, -0.4, 0.5, 0.6}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, wanted %v\n", got, want)
	}
	_, err = ReadFields(strings.NewReader("0.1 x 0.3\n"))
	if !errors.Is(err, ErrParse) {
		t.Errorf("got %v, wanted %v\n", err, ErrParse)
	}
}

func TestReadInfo(t *testing.T) {
	f, err := os.Open("testfiles/a.info")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	got, err := ReadInfo(f)
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]string{
		"Title":              "a.crd",
		"Atoms":              "2",
		"Vectors":            "2",
		"Frames":             "100",
		"Total_variance":     "20.000000",
		"Explained_variance": "12.000000",
		"Quality":            "60.000000",
		"Dimensionality":     "2",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, wanted %v\n", got, want)
	}
}

func TestProjections(t *testing.T) {
	got := Projections([]float64{3, 4, 0, 0, 0, 1, 0.1, 0.2, 0.2, 9})
	want := []float64{5, 1, 0.3}
	if !compFloat(got, want, 1e-12) {
		t.Errorf("got %v, wanted %v\n", got, want)
	}
	got = Projections([]float64{0.12346, 0, 0})
	want = []float64{0.1235}
	if !compFloat(got, want, 1e-12) {
		t.Errorf("got %v, wanted %v\n", got, want)
	}
}

func TestEvals(t *testing.T) {
	d := testDumper(t)
	got, err := d.Evals(context.Background(), "testfiles/b.pcz")
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{9, 2.5, 1}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, wanted %v\n", got, want)
	}
	entries, err := os.ReadDir(d.Dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("got %d leftover sandboxes, wanted 0\n", len(entries))
	}
}

func TestEvalsErrors(t *testing.T) {
	d := testDumper(t)
	ctx := context.Background()
	if _, err := d.Evals(ctx, "testfiles/bad.pcz"); !errors.Is(err, ErrParse) {
		t.Errorf("got %v, wanted %v\n", err, ErrParse)
	}
	if _, err := d.Evals(ctx, "testfiles/short.pcz"); !errors.Is(err, ErrBlankOutput) {
		t.Errorf("got %v, wanted %v\n", err, ErrBlankOutput)
	}
	if _, err := d.Evals(ctx, "testfiles/missing.pcz"); err == nil {
		t.Errorf("got nil, wanted an error for a missing input\n")
	}
	_, err := d.Evec(ctx, "testfiles/a.pcz", 9)
	if err == nil || !strings.Contains(err.Error(), "no evec9 in a.pcz") {
		t.Errorf("got %v, wanted the pczdump stderr\n", err)
	}
}

func TestEvec(t *testing.T) {
	d := testDumper(t)
	got, err := d.Evec(context.Background(), "testfiles/a.pcz", 1)
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{1, 0, 0, 0, 0, 0}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, wanted %v\n", got, want)
	}
}

func TestCollectivity(t *testing.T) {
	d := testDumper(t)
	got, err := d.Collectivity(context.Background(), "testfiles/a.pcz", 0)
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{0.5, 0.25}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, wanted %v\n", got, want)
	}
}

func TestLindemann(t *testing.T) {
	d := testDumper(t)
	tests := []struct {
		mask string
		want float64
	}{
		{"", 0.123},
		{":1,2", 0.456},
	}
	for _, test := range tests {
		got, err := d.Lindemann(context.Background(), "testfiles/a.pcz", test.mask)
		if err != nil {
			t.Fatal(err)
		}
		if got != test.want {
			t.Errorf("got %v, wanted %v\n", got, test.want)
		}
	}
}

func TestInfo(t *testing.T) {
	d := testDumper(t)
	got, err := d.Info(context.Background(), "testfiles/a.pcz")
	if err != nil {
		t.Fatal(err)
	}
	if !compFloat(got.Evals, []float64{10, 2}, 0) {
		t.Errorf("got %v, wanted %v\n", got.Evals, []float64{10, 2})
	}
	if want := []float64{50, 60}; !compFloat(got.VsTotal, want, 1e-12) {
		t.Errorf("got %v, wanted %v\n", got.VsTotal, want)
	}
	if want := []float64{250.0 / 3, 100}; !compFloat(got.VsExplained, want, 1e-12) {
		t.Errorf("got %v, wanted %v\n", got.VsExplained, want)
	}
	byts, err := json.Marshal(got)
	if err != nil {
		t.Fatal(err)
	}
	var m map[string]any
	if err := json.Unmarshal(byts, &m); err != nil {
		t.Fatal(err)
	}
	if m["Total_variance"] != "20.000000" {
		t.Errorf("got %v, wanted %v\n", m["Total_variance"], "20.000000")
	}
	if _, ok := m["Eigen_Values_dimensionality_vs_total"]; !ok {
		t.Errorf("missing Eigen_Values_dimensionality_vs_total in %s\n", byts)
	}
}

func TestNewInfoMissingVariance(t *testing.T) {
	_, err := NewInfo(map[string]string{"Total_variance": "1.0"}, []float64{1})
	if !errors.Is(err, ErrParse) {
		t.Errorf("got %v, wanted %v\n", err, ErrParse)
	}
}

func TestExtract(t *testing.T) {
	e := Extractor{Dumper: testDumper(t), Limit: 2}
	got, err := e.Extract(context.Background(),
		"testfiles/a.pcz", "testfiles/b.pcz")
	if err != nil {
		t.Fatal(err)
	}
	if got.N != 2 {
		t.Fatalf("got %d modes, wanted %d\n", got.N, 2)
	}
	want := Modes{
		Evals1: []float64{10, 2},
		Evals2: []float64{9, 2.5, 1},
		N:      2,
		Evecs1: [][]float64{{1, 0, 0, 0, 0, 0}, {0, 1, 0, 0, 0, 0}},
		Evecs2: [][]float64{{1, 0, 0, 0, 0, 0}, {0, 1, 0, 0, 0, 0}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, wanted %v\n", got, want)
	}
	a, b, err := got.ModeSets()
	if err != nil {
		t.Fatal(err)
	}
	res, err := pca.Compare(a, b, nil)
	if err != nil {
		t.Fatal(err)
	}
	wantRes := pca.Result{WCP: 0.983, RMSIP: 1, RWSIP: 1, DotProduct: 1}
	if res.Round(pca.ReportDigits) != wantRes {
		t.Errorf("got %+v, wanted %+v\n", res, wantRes)
	}
}

func TestExtractError(t *testing.T) {
	e := Extractor{Dumper: testDumper(t)}
	_, err := e.Extract(context.Background(),
		"testfiles/a.pcz", "testfiles/bad.pcz")
	if !errors.Is(err, ErrParse) {
		t.Errorf("got %v, wanted %v\n", err, ErrParse)
	}
}
