package pczdump

import (
	"context"
	"fmt"
	"log"

	"golang.org/x/sync/errgroup"

	"bwestbro.com/pczsim/pca"
)

// Modes holds everything dumped from a pair of trajectories to compare
// them
type Modes struct {
	Evals1, Evals2 []float64
	// N is the number of modes retained from each file, the smaller of
	// len(Evals1) and len(Evals2)
	N      int
	Evecs1 [][]float64
	Evecs2 [][]float64
}

// ModeSets pairs the first N eigenvalues of each file with their
// eigenvectors
func (m Modes) ModeSets() (a, b pca.ModeSet, err error) {
	a, err = pca.NewModeSet(m.Evals1[:m.N], m.Evecs1)
	if err != nil {
		return
	}
	b, err = pca.NewModeSet(m.Evals2[:m.N], m.Evecs2)
	return
}

// Extractor dumps the modes of two trajectories with at most Limit
// pczdump processes running at once. A Limit below 1 means no limit.
type Extractor struct {
	Dumper
	Limit int
}

// Extract reads the eigenvalues of pcz1 and pcz2, keeps as many modes
// as the shorter list, and then reads the corresponding eigenvectors of
// both files. The first error cancels the remaining dumps.
func (e Extractor) Extract(ctx context.Context, pcz1, pcz2 string) (Modes, error) {
	var m Modes
	g, gctx := errgroup.WithContext(ctx)
	if e.Limit > 0 {
		g.SetLimit(e.Limit)
	}
	g.Go(func() (err error) {
		m.Evals1, err = e.Evals(gctx, pcz1)
		return
	})
	g.Go(func() (err error) {
		m.Evals2, err = e.Evals(gctx, pcz2)
		return
	})
	if err := g.Wait(); err != nil {
		return Modes{}, err
	}
	m.N = min(len(m.Evals1), len(m.Evals2))
	if e.Verbose {
		log.Printf("%d and %d eigenvalues, comparing %d modes\n",
			len(m.Evals1), len(m.Evals2), m.N)
	}

	m.Evecs1 = make([][]float64, m.N)
	m.Evecs2 = make([][]float64, m.N)
	g, gctx = errgroup.WithContext(ctx)
	if e.Limit > 0 {
		g.SetLimit(e.Limit)
	}
	for i := 0; i < m.N; i++ {
		i := i
		g.Go(func() (err error) {
			m.Evecs1[i], err = e.Evec(gctx, pcz1, i+1)
			if err != nil {
				err = fmt.Errorf("eigenvector %d of %s: %w", i+1, pcz1, err)
			}
			return
		})
		g.Go(func() (err error) {
			m.Evecs2[i], err = e.Evec(gctx, pcz2, i+1)
			if err != nil {
				err = fmt.Errorf("eigenvector %d of %s: %w", i+1, pcz2, err)
			}
			return
		})
	}
	if err := g.Wait(); err != nil {
		return Modes{}, err
	}
	return m, nil
}
