package pczdump

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
)

// Info summarizes a compressed trajectory: the --info report and the
// eigenvalues, together with how much of the variance the first k
// modes account for.
type Info struct {
	// Fields holds the raw --info report, keyed with underscores
	// (Total_variance, Explained_variance, ...)
	Fields map[string]string
	Evals  []float64
	// VsTotal[k] is the cumulative percentage of the total variance
	// explained by Evals[0..k]
	VsTotal []float64
	// VsExplained[k] is the same, relative to the variance explained
	// by all of the stored modes
	VsExplained []float64
}

// NewInfo computes the cumulative variance percentages from an --info
// report and the eigenvalues of the same file
func NewInfo(fields map[string]string, evals []float64) (Info, error) {
	total, err := floatField(fields, "Total_variance")
	if err != nil {
		return Info{}, err
	}
	explained, err := floatField(fields, "Explained_variance")
	if err != nil {
		return Info{}, err
	}
	info := Info{
		Fields:      fields,
		Evals:       evals,
		VsTotal:     make([]float64, len(evals)),
		VsExplained: make([]float64, len(evals)),
	}
	var accTot, accExp float64
	for i, e := range evals {
		accTot += e / total * 100
		accExp += e / explained * 100
		info.VsTotal[i] = accTot
		info.VsExplained[i] = accExp
	}
	return info, nil
}

func floatField(fields map[string]string, key string) (float64, error) {
	s, ok := fields[key]
	if !ok {
		return 0, fmt.Errorf("%w: no %s in info report", ErrParse, key)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s = %q", ErrParse, key, s)
	}
	if v == 0 {
		return 0, fmt.Errorf("%w: %s is zero", ErrParse, key)
	}
	return v, nil
}

// MarshalJSON writes the fields of the --info report at the top level
// next to the eigenvalue arrays
func (info Info) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(info.Fields)+3)
	for k, v := range info.Fields {
		m[k] = v
	}
	m["Eigen_Values"] = info.Evals
	m["Eigen_Values_dimensionality_vs_total"] = info.VsTotal
	m["Eigen_Values_dimensionality_vs_explained"] = info.VsExplained
	return json.Marshal(m)
}

// Info runs pczdump --info and --evals on pcz and combines the two
// reports
func (d Dumper) Info(ctx context.Context, pcz string) (Info, error) {
	var fields map[string]string
	err := d.dump(ctx, pcz, func(r io.Reader) (err error) {
		fields, err = ReadInfo(r)
		return
	}, "--info")
	if err != nil {
		return Info{}, err
	}
	evals, err := d.Evals(ctx, pcz)
	if err != nil {
		return Info{}, err
	}
	return NewInfo(fields, evals)
}
