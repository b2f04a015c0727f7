package pczdump

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// Errors
var (
	ErrOutputNotFound = errors.New("pczdump output file not found")
	ErrBlankOutput    = errors.New("blank output")
	ErrParse          = errors.New("unparsable pczdump output")
)

// eigenvector dumps can put a whole vector on one line
const maxLine = 16 << 20

func newScanner(r io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLine)
	return scanner
}

// ReadColumn reads one float per non-blank line of r
func ReadColumn(r io.Reader) (ret []float64, err error) {
	scanner := newScanner(r)
	var line string
	for i := 1; scanner.Scan(); i++ {
		line = strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		v, err := strconv.ParseFloat(line, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %q", ErrParse, i, line)
		}
		ret = append(ret, v)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(ret) == 0 {
		return nil, ErrBlankOutput
	}
	return ret, nil
}

// ReadFields reads every whitespace-separated float in r, regardless
// of how they are split across lines
func ReadFields(r io.Reader) (ret []float64, err error) {
	scanner := newScanner(r)
	for i := 1; scanner.Scan(); i++ {
		for _, f := range strings.Fields(scanner.Text()) {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %q", ErrParse, i, f)
			}
			ret = append(ret, v)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(ret) == 0 {
		return nil, ErrBlankOutput
	}
	return ret, nil
}

// ReadInfo reads the "Key : value" lines written by --info into a
// map. Spaces inside keys are replaced by underscores, so "Total
// variance" becomes "Total_variance".
func ReadInfo(r io.Reader) (map[string]string, error) {
	ret := make(map[string]string)
	scanner := newScanner(r)
	var line string
	for scanner.Scan() {
		line = scanner.Text()
		key, val, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.ReplaceAll(strings.TrimSpace(key), " ", "_")
		ret[key] = strings.TrimSpace(val)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(ret) == 0 {
		return nil, ErrBlankOutput
	}
	return ret, nil
}

// Projections returns the length of each atom's xyz triplet in evec,
// rounded to 4 decimal places. Trailing values that do not complete a
// triplet are ignored.
func Projections(evec []float64) []float64 {
	ret := make([]float64, 0, len(evec)/3)
	for i := 0; i+2 < len(evec); i += 3 {
		x, y, z := evec[i], evec[i+1], evec[i+2]
		p := math.Sqrt(x*x + y*y + z*z)
		ret = append(ret, math.Round(p*1e4)/1e4)
	}
	return ret
}
