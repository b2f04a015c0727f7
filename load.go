package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
)

// RawConf is the TOML input file as written by the user
type RawConf struct {
	Input1           string
	Input2           string
	Output           string
	AmplifyingFactor *float64
	Binary           string
	Jobs             int
	TmpDir           string
	Verbose          bool
}

// ToConfig resolves the paths in rc relative to dir, the directory
// containing the input file, and fills in the number of jobs
func (rc RawConf) ToConfig(dir string) (conf Config) {
	rel := func(p string) string {
		if p == "" || p == "-" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(dir, p)
	}
	conf.Input1 = rel(rc.Input1)
	conf.Input2 = rel(rc.Input2)
	conf.Output = rel(rc.Output)
	conf.TmpDir = rel(rc.TmpDir)
	conf.AmplifyingFactor = rc.AmplifyingFactor
	conf.Binary = rc.Binary
	conf.Jobs = rc.Jobs
	if conf.Jobs < 1 {
		conf.Jobs = runtime.NumCPU()
	}
	conf.Verbose = rc.Verbose
	return
}

type Config struct {
	Input1 string
	Input2 string
	// empty for the default of each mode, - for stdout
	Output string
	// nil means the last eigenvalue of Input1
	AmplifyingFactor *float64
	Binary           string
	Jobs             int
	TmpDir           string
	Verbose          bool
}

// Defaults
var defaultRawConf = RawConf{
	Binary: "pczdump",
}

var defaultOutputs = map[Mode]string{
	SimilarityMode:   "pcz_similarity.json",
	InfoMode:         "pcz_info.json",
	CollectivityMode: "pcz_collectivity.json",
	LindemannMode:    "pcz_lindemann.json",
	EvecMode:         "pcz_evecs.json",
}

// OutputFile returns the file the report of mode should be written to,
// or "" for stdout
func (conf Config) OutputFile(mode Mode) string {
	switch conf.Output {
	case "":
		return defaultOutputs[mode]
	case "-":
		return ""
	}
	return conf.Output
}

// DefaultConfig returns the configuration used without an input file
func DefaultConfig() Config {
	return defaultRawConf.ToConfig("")
}

func LoadConfig(filename string) (Config, error) {
	f, err := os.Open(filename)
	if err != nil {
		return Config{}, err
	}
	defer f.Close()
	cont, err := io.ReadAll(f)
	if err != nil {
		return Config{}, err
	}
	rc := defaultRawConf
	err = toml.Unmarshal(cont, &rc)
	if err != nil {
		return Config{}, fmt.Errorf("loading %s: %w", filename, err)
	}
	return rc.ToConfig(filepath.Dir(filename)), nil
}
