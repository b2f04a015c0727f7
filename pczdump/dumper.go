// Package pczdump runs the pczdump program from PCAsuite on compressed
// trajectory (.pcz) files and parses what it writes.
package pczdump

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// DefaultDumper runs the first pczdump on the PATH and stages its
// inputs in the system temporary directory
var DefaultDumper = Dumper{
	Binary: "pczdump",
}

// Dumper describes how to run pczdump.
type Dumper struct {
	// Binary is the pczdump executable to run. A bare name is looked
	// up in the PATH.
	Binary string

	// Dir is the directory in which the per-call sandboxes are
	// created. If empty, os.TempDir is used.
	Dir string

	// When Verbose is true, each command is logged before it runs and
	// its stdout and stderr are copied to the log output.
	Verbose bool
}

// sandbox creates a fresh working directory under d.Dir and copies
// pcz into it. pczdump is compiled Fortran/C that overflows on long
// path arguments, so it is always run on the short base name from
// inside the sandbox.
func (d Dumper) sandbox(pcz string) (dir, name string, err error) {
	dir, err = os.MkdirTemp(d.Dir, "pczdump")
	if err != nil {
		return "", "", err
	}
	name = filepath.Base(pcz)
	src, err := os.Open(pcz)
	if err != nil {
		os.RemoveAll(dir)
		return "", "", err
	}
	defer src.Close()
	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		os.RemoveAll(dir)
		return "", "", err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.RemoveAll(dir)
		return "", "", err
	}
	if err := dst.Close(); err != nil {
		os.RemoveAll(dir)
		return "", "", err
	}
	return dir, name, nil
}

// Args returns the arguments passed to pczdump to read input and write
// output, followed by flags
func Args(input, output string, flags ...string) []string {
	return append([]string{"-i", input, "-o", output}, flags...)
}

// dump runs pczdump on pcz with flags in a new sandbox and hands the
// resulting output file to parse. The sandbox is removed afterwards.
func (d Dumper) dump(ctx context.Context, pcz string,
	parse func(io.Reader) error, flags ...string) error {
	dir, name, err := d.sandbox(pcz)
	if err != nil {
		return fmt.Errorf("staging %q: %w", pcz, err)
	}
	defer os.RemoveAll(dir)
	bin := d.Binary
	if !filepath.IsAbs(bin) && strings.ContainsRune(bin, filepath.Separator) {
		// exec would resolve it against the sandbox
		if bin, err = filepath.Abs(bin); err != nil {
			return err
		}
	}
	const output = "output.dat"
	cmd := exec.CommandContext(ctx, bin, Args(name, output, flags...)...)
	cmd.Dir = dir
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if d.Verbose {
		log.Printf("running %q in %s\n", cmd.String(), dir)
	}
	out, err := cmd.Output()
	if d.Verbose {
		log.Printf("%s%s", out, stderr.Bytes())
	}
	if err != nil {
		return fmt.Errorf("error on %q: %w: %s",
			cmd.String(), err, bytes.TrimSpace(stderr.Bytes()),
		)
	}
	f, err := os.Open(filepath.Join(dir, output))
	if err != nil {
		return fmt.Errorf("%w: %s %v", ErrOutputNotFound, pcz, flags)
	}
	defer f.Close()
	if err := parse(f); err != nil {
		return fmt.Errorf("parsing %s %v: %w", pcz, flags, err)
	}
	return nil
}

// Evals returns the eigenvalues stored in pcz, dominant mode first
func (d Dumper) Evals(ctx context.Context, pcz string) (ret []float64, err error) {
	err = d.dump(ctx, pcz, func(r io.Reader) (err error) {
		ret, err = ReadColumn(r)
		return
	}, "--evals")
	return
}

// Evec returns eigenvector idx of pcz. Eigenvectors are numbered from
// 1, matching the pczdump command line.
func (d Dumper) Evec(ctx context.Context, pcz string, idx int) (ret []float64, err error) {
	err = d.dump(ctx, pcz, func(r io.Reader) (err error) {
		ret, err = ReadFields(r)
		return
	}, fmt.Sprintf("--evec=%d", idx))
	return
}

// Collectivity returns the collectivity index of eigenvector idx, or
// of every eigenvector if idx is 0
func (d Dumper) Collectivity(ctx context.Context, pcz string, idx int) (ret []float64, err error) {
	err = d.dump(ctx, pcz, func(r io.Reader) (err error) {
		ret, err = ReadColumn(r)
		return
	}, fmt.Sprintf("--collectivity=%d", idx))
	return
}

// Lindemann returns the Lindemann coefficient of pcz, restricted to
// the residues in mask (e.g. ":10,21,33") unless mask is empty
func (d Dumper) Lindemann(ctx context.Context, pcz, mask string) (ret float64, err error) {
	flags := []string{"--lindemann"}
	if mask != "" {
		flags = append(flags, "-M", mask)
	}
	err = d.dump(ctx, pcz, func(r io.Reader) error {
		vals, err := ReadColumn(r)
		if err != nil {
			return err
		}
		// the coefficient is on the last line
		ret = vals[len(vals)-1]
		return nil
	}, flags...)
	return
}
