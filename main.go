package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime/pprof"
)

// Flags
var (
	configFile = flag.String("config", "",
		"TOML file with the run configuration")
	input1 = flag.String("i1", "", "first compressed trajectory (.pcz)")
	input2 = flag.String("i2", "", "second compressed trajectory (.pcz)")
	output = flag.String("o", "", "output JSON file, - for stdout")
	dx     = flag.Float64("dx", 0, "amplifying factor for WCP; "+
		"the last eigenvalue of -i1 when not given")
	binary = flag.String("pczdump", "", "command to run pczdump")
	jobs   = flag.Int("j", 0, "maximum number of concurrent pczdump runs")
	tmpDir = flag.String("tmp", "", "directory for pczdump sandboxes")
	info   = flag.Bool("info", false,
		"write the PCA info report of -i1 instead of comparing")
	collectivity = flag.Int("collectivity", 0,
		"write the collectivity index of eigenvector N of -i1, 0 for all")
	lindemann = flag.Bool("lindemann", false,
		"write the Lindemann coefficient of -i1")
	mask = flag.String("mask", "", "residue mask for -lindemann, e.g. :10,21,33")
	evec = flag.Int("evec", 0,
		"write eigenvector N of -i1 and its per-atom projections")
	verbose    = flag.Bool("v", false, "log each pczdump command")
	debug      = flag.Bool("debug", false, "toggle debugging information")
	cpuprofile = flag.String("cpu", "", "write a CPU profile")
)

// applyFlags overrides the fields of conf whose flags were given on
// the command line
func applyFlags(conf *Config) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "i1":
			conf.Input1 = *input1
		case "i2":
			conf.Input2 = *input2
		case "o":
			conf.Output = *output
		case "dx":
			v := *dx
			conf.AmplifyingFactor = &v
		case "pczdump":
			conf.Binary = *binary
		case "j":
			if *jobs > 0 {
				conf.Jobs = *jobs
			}
		case "tmp":
			conf.TmpDir = *tmpDir
		case "v":
			conf.Verbose = *verbose
		}
	})
}

// taskFor builds the Task requested by the flags in set, at most one
// of which may name a mode
func taskFor(set []string) (Task, error) {
	var (
		t     Task
		modes []string
	)
	for _, name := range set {
		switch name {
		case "info":
			if !*info {
				continue
			}
			t.Mode = InfoMode
		case "collectivity":
			t.Mode = CollectivityMode
			t.Index = *collectivity
		case "lindemann":
			if !*lindemann {
				continue
			}
			t.Mode = LindemannMode
			t.Mask = *mask
		case "evec":
			t.Mode = EvecMode
			t.Index = *evec
		default:
			continue
		}
		modes = append(modes, "-"+name)
	}
	if len(modes) > 1 {
		return Task{}, fmt.Errorf("flags %v are mutually exclusive", modes)
	}
	if t.Mode == EvecMode && t.Index < 1 {
		return Task{}, fmt.Errorf("-evec must be at least 1, got %d", t.Index)
	}
	return t, nil
}

func main() {
	flag.Parse()
	conf := DefaultConfig()
	if *configFile != "" {
		var err error
		conf, err = LoadConfig(*configFile)
		if err != nil {
			log.Fatalln(err)
		}
	}
	applyFlags(&conf)
	if conf.Input1 == "" {
		log.Fatalln("-i1 flag is required, aborting")
	}
	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			log.Fatalln(err)
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}
	var set []string
	flag.Visit(func(f *flag.Flag) {
		set = append(set, f.Name)
	})
	task, err := taskFor(set)
	if err != nil {
		log.Fatalln(err)
	}
	if task.Mode == SimilarityMode && conf.Input2 == "" {
		log.Fatalln("-i2 flag is required, aborting")
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if conf.Verbose && task.Mode == SimilarityMode {
		fmt.Fprintf(os.Stderr, "comparing %s and %s with %d jobs\n",
			conf.Input1, conf.Input2, conf.Jobs)
	}
	res, err := task.Run(ctx, conf)
	if err != nil {
		log.Fatalln(err)
	}
	if err := WriteJSON(conf.OutputFile(task.Mode), res); err != nil {
		log.Fatalln(err)
	}
}
