package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/evictlab/pagesim/sim"
)

func main() {
	var (
		configPath = flag.String("config", "", "Path to a JSON config file (env/flags override)")
		tracePath  = flag.String("trace", "", "Reference string trace file (.bin/.trace binary, otherwise text)")
		policy     = flag.String("policy", "", "Replacement policy: fifo, lru, opt or all")
		frames     = flag.Int("frames", 0, "Number of physical frames")
		pages      = flag.Int("pages", 0, "Process address space size in pages")
		generate   = flag.Int("generate", 0, "Generate a random reference string of this length")
		upper      = flag.Int("upper", 0, "Exclusive upper bound for generated page IDs")
		seed       = flag.Int64("seed", 0, "Seed for reference string generation (0 = unseeded)")
		out        = flag.String("out", "", "Write the generated reference string to this file")
	)
	flag.Parse()

	cfg := sim.LoadConfigFromEnv()
	if *configPath != "" {
		loaded, err := sim.LoadConfigFromFile(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "pagesim: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	runAll := false
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "trace":
			cfg.TracePath = *tracePath
		case "policy":
			if *policy == "all" {
				runAll = true
				cfg.Policy = sim.PolicyOPT // Validation needs a concrete tag
			} else {
				cfg.Policy = *policy
			}
		case "frames":
			cfg.NumFrames = *frames
		case "pages":
			cfg.NumPages = *pages
		case "generate":
			cfg.RefStringLength = *generate
		case "upper":
			cfg.RefStringUpperBound = *upper
		}
	})

	simulator, err := sim.NewSimulator(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "pagesim: %v\n", err)
		os.Exit(1)
	}

	var ref []int

	if *generate > 0 {
		if *seed != 0 {
			rand.Seed(*seed)
		}
		ref, err = simulator.GenerateRefString()
		if err != nil {
			fmt.Fprintf(os.Stderr, "pagesim: %v\n", err)
			os.Exit(1)
		}

		if *out != "" {
			if err := writeTrace(*out, ref, cfg.TraceCompression); err != nil {
				fmt.Fprintf(os.Stderr, "pagesim: %v\n", err)
				os.Exit(1)
			}
			fmt.Printf("Wrote %d-element reference string to %s\n", len(ref), *out)
			if cfg.TracePath == "" {
				return // Generation-only invocation
			}
			ref = nil // Simulate the configured trace instead
		} else {
			fmt.Println(sim.FormatRefString(ref))
		}
	}

	if ref == nil {
		if cfg.TracePath == "" {
			fmt.Fprintln(os.Stderr, "pagesim: no trace file and no -generate; nothing to simulate")
			flag.Usage()
			os.Exit(2)
		}
		ref, err = simulator.LoadTrace()
		if err != nil {
			fmt.Fprintf(os.Stderr, "pagesim: %v\n", err)
			os.Exit(1)
		}
	}

	fmt.Printf("Reference string: %d requests (%d after normalization)\n",
		len(ref), len(sim.Normalize(ref)))
	fmt.Printf("Pages: %d, Frames: %d\n", cfg.NumPages, cfg.NumFrames)

	if runAll {
		result, err := simulator.RunAll(ref)
		if err != nil {
			fmt.Fprintf(os.Stderr, "pagesim: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Page faults (FIFO): %d\n", result.FIFO)
		fmt.Printf("Page faults (LRU):  %d\n", result.LRU)
		fmt.Printf("Page faults (OPT):  %d\n", result.OPT)
	} else {
		faults, err := simulator.Run(ref)
		if err != nil {
			fmt.Fprintf(os.Stderr, "pagesim: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Page faults (%s): %d\n", cfg.Policy, faults)
	}

	if cfg.EnableMetrics {
		simulator.Metrics().LogMetrics(simulator.Logger())
	}
}

// writeTrace picks the trace format from the file extension
func writeTrace(path string, ref []int, compressionTag string) error {
	switch filepath.Ext(path) {
	case ".bin", ".trace":
		compression, err := sim.ParseTraceCompression(compressionTag)
		if err != nil {
			return err
		}
		return sim.WriteTraceFile(path, ref, compression)
	default:
		return sim.SaveTextTrace(path, ref)
	}
}
