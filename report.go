package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"bwestbro.com/pczsim/pca"
	"bwestbro.com/pczsim/pczdump"
)

// Report is the JSON document written for a similarity run. The
// similarity indices are rounded to pca.ReportDigits.
type Report struct {
	Evals1      []float64            `json:"evals_1"`
	Evals2      []float64            `json:"evals_2"`
	NumEvalsMin int                  `json:"num_evals_min"`
	Evecs1      map[string][]float64 `json:"evecs_1"`
	Evecs2      map[string][]float64 `json:"evecs_2"`
	pca.Result
}

func pcMap(evecs [][]float64) map[string][]float64 {
	ret := make(map[string][]float64, len(evecs))
	for i, v := range evecs {
		ret[fmt.Sprintf("pc%d", i+1)] = v
	}
	return ret
}

func NewReport(m pczdump.Modes, res pca.Result) Report {
	return Report{
		Evals1:      m.Evals1,
		Evals2:      m.Evals2,
		NumEvalsMin: m.N,
		Evecs1:      pcMap(m.Evecs1),
		Evecs2:      pcMap(m.Evecs2),
		Result:      res.Round(pca.ReportDigits),
	}
}

// Dumper returns pczdump.DefaultDumper with the settings from conf
func (conf Config) Dumper() pczdump.Dumper {
	d := pczdump.DefaultDumper
	if conf.Binary != "" {
		d.Binary = conf.Binary
	}
	d.Dir = conf.TmpDir
	d.Verbose = conf.Verbose
	return d
}

// Similarity extracts the modes of conf.Input1 and conf.Input2 and
// compares them
func Similarity(ctx context.Context, conf Config) (Report, error) {
	ext := pczdump.Extractor{
		Dumper: conf.Dumper(),
		Limit:  conf.Jobs,
	}
	modes, err := ext.Extract(ctx, conf.Input1, conf.Input2)
	if err != nil {
		return Report{}, err
	}
	a, b, err := modes.ModeSets()
	if err != nil {
		return Report{}, err
	}
	res, err := pca.Compare(a, b, conf.AmplifyingFactor)
	if err != nil {
		return Report{}, err
	}
	if *debug {
		fmt.Fprintln(os.Stderr, "dot products")
		DumpMat(pca.DotProduct(a, b))
	}
	if conf.Verbose {
		log.Printf("similarity of %s and %s\n%s",
			conf.Input1, conf.Input2, res)
	}
	return NewReport(modes, res), nil
}

type CollectivityReport struct {
	Collectivity []float64 `json:"collectivity"`
}

type LindemannReport struct {
	Lindemann float64 `json:"lindemann"`
}

// EvecReport holds one eigenvector and the length of its projection
// on each atom
type EvecReport struct {
	Evecs []float64 `json:"evecs"`
	Projs []float64 `json:"projs"`
}

// Mode selects the report written by a run
type Mode int

const (
	SimilarityMode Mode = iota
	InfoMode
	CollectivityMode
	LindemannMode
	EvecMode
)

// Task is a single run of the program
type Task struct {
	Mode Mode
	// Index is the eigenvector for EvecMode and CollectivityMode,
	// numbered from 1. Zero asks CollectivityMode for every
	// eigenvector.
	Index int
	// Mask restricts LindemannMode to a set of residues
	Mask string
}

// Run computes the report of t from the files in conf
func (t Task) Run(ctx context.Context, conf Config) (any, error) {
	d := conf.Dumper()
	switch t.Mode {
	case SimilarityMode:
		return Similarity(ctx, conf)
	case InfoMode:
		return d.Info(ctx, conf.Input1)
	case CollectivityMode:
		c, err := d.Collectivity(ctx, conf.Input1, t.Index)
		if err != nil {
			return nil, err
		}
		return CollectivityReport{Collectivity: c}, nil
	case LindemannMode:
		l, err := d.Lindemann(ctx, conf.Input1, t.Mask)
		if err != nil {
			return nil, err
		}
		return LindemannReport{Lindemann: l}, nil
	case EvecMode:
		if t.Index < 1 {
			return nil, fmt.Errorf("invalid eigenvector %d", t.Index)
		}
		v, err := d.Evec(ctx, conf.Input1, t.Index)
		if err != nil {
			return nil, err
		}
		return EvecReport{Evecs: v, Projs: pczdump.Projections(v)}, nil
	}
	return nil, fmt.Errorf("unknown mode %d", t.Mode)
}

// WriteJSON writes v to filename, indented like the PCAsuite reports.
// An empty filename means stdout.
func WriteJSON(filename string, v any) error {
	byts, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return err
	}
	byts = append(byts, '\n')
	if filename == "" {
		_, err = os.Stdout.Write(byts)
		return err
	}
	return os.WriteFile(filename, byts, 0644)
}
