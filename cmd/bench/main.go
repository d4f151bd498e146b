package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"strings"

	"permu/internal/bench"
	"permu/internal/eda"
	"permu/internal/opt"
	"permu/internal/problems"
)

func newEDAFactory(cfg eda.Config) func(seed int64) opt.Optimizer {
	return func(seed int64) opt.Optimizer {
		solver, _ := eda.New[uint16](cfg, rand.New(rand.NewSource(seed)))
		return solver
	}
}

func main() {
	var (
		out          = flag.String("out", "artifacts/results.csv", "path to the output CSV file")
		configPath   = flag.String("config", "", "path to a YAML experiment file; flags below are ignored when set")
		problem      = flag.String("problem", "pfsp", "problem for generated instances: qap | pfsp | lop")
		sizes        = flag.String("sizes", "20,50,100", "sizes of generated instances (comma separated)")
		machines     = flag.Int("machines", 5, "machine count for generated pfsp instances")
		instances    = flag.String("instances", "", "instance files to load instead of generating (comma separated; .dat/.fsp/.lop)")
		reprs        = flag.String("repr", "permutation,inversion,rim", "representations to benchmark (comma separated)")
		runs         = flag.Int("runs", 30, "runs per algorithm and instance (with distinct seeds)")
		baseSeed     = flag.Int64("seed", 1000, "base seed for solver runs")
		instanceSeed = flag.Int64("instance_seed", 777, "base seed for instance generation (fixed per case)")
		perRunTO     = flag.Duration("per_run_timeout", 0, "timeout for a single run; 0 means no limit")

		edaPop   = flag.Int("eda_pop", 150, "population size")
		edaGen   = flag.Int("eda_gen", 300, "generation count")
		edaElite = flag.Int("eda_elite", 4, "elite count (best individuals carried over)")
		edaTrunc = flag.Float64("eda_trunc", 0.5, "fraction of best individuals the model is learned from")
	)
	flag.Parse()

	ctx := context.Background()

	var (
		cases     []bench.Case
		reprNames []string
		edaCfg    eda.Config
		runner    bench.Runner
	)

	if *configPath != "" {
		cfg, err := bench.LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			os.Exit(2)
		}
		cases, err = casesFromConfig(cfg)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			os.Exit(2)
		}
		reprNames = cfg.Representations
		edaCfg = eda.Config{
			Population:  cfg.EDA.Population,
			Generations: cfg.EDA.Generations,
			Elite:       cfg.EDA.Elite,
			Truncation:  cfg.EDA.Truncation,
		}
		runner = bench.Runner{
			Runs:          cfg.Runs,
			BaseSeed:      cfg.Seed,
			PerRunTimeout: cfg.PerRunTimeout.Std(),
		}
		if cfg.Out != "" {
			*out = cfg.Out
		}
	} else {
		var err error
		cases, err = buildCases(*instances, *problem, *sizes, *machines, *instanceSeed)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			os.Exit(2)
		}
		reprNames = splitCSV(*reprs)
		edaCfg = eda.Config{
			Population:  *edaPop,
			Generations: *edaGen,
			Elite:       *edaElite,
			Truncation:  *edaTrunc,
		}
		runner = bench.Runner{
			Runs:          *runs,
			BaseSeed:      *baseSeed,
			PerRunTimeout: *perRunTO,
		}
	}

	var algorithms []bench.Algorithm
	for _, name := range reprNames {
		repr, err := eda.ParseRepresentation(name)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			os.Exit(2)
		}
		cfg := edaCfg
		cfg.Representation = repr
		if err := cfg.Validate(); err != nil {
			fmt.Fprintln(os.Stderr, "Invalid solver configuration:", err)
			os.Exit(2)
		}
		algorithms = append(algorithms, bench.Algorithm{
			Name:    "EDA-" + repr.String(),
			Factory: newEDAFactory(cfg),
		})
	}
	if len(algorithms) == 0 {
		fmt.Fprintln(os.Stderr, "Error: no representations selected")
		os.Exit(2)
	}

	var records []bench.Record
	for _, c := range cases {
		for _, a := range algorithms {
			fmt.Printf("Running %s on %s (%d runs)...\n", a.Name, c.Label(), runner.Runs)

			rec, err := runner.RunCase(ctx, c, a)
			if err != nil {
				fmt.Fprintln(os.Stderr, "Error:", err)
				os.Exit(1)
			}
			records = append(records, rec)

			fmt.Printf("  fitness: best=%d mean=%.2f std=%.2f | time: mean=%.2fms std=%.2fms\n",
				rec.FitnessBest, rec.FitnessMean, rec.FitnessStd,
				rec.TimeMeanMs, rec.TimeStdMs,
			)
		}
	}

	if err := bench.WriteCSV(*out, records); err != nil {
		fmt.Fprintln(os.Stderr, "Error writing CSV:", err)
		os.Exit(1)
	}
	fmt.Println("Saved:", *out)
}

// helpers

func buildCases(instances, problem, sizes string, machines int, baseInstanceSeed int64) ([]bench.Case, error) {
	if paths := splitCSV(instances); len(paths) > 0 {
		cases := make([]bench.Case, 0, len(paths))
		for _, p := range paths {
			if _, err := problems.KindFromPath(p); err != nil {
				return nil, err
			}
			cases = append(cases, bench.Case{Path: p})
		}
		return cases, nil
	}

	kind, err := parseProblem(problem)
	if err != nil {
		return nil, err
	}

	parts := splitCSV(sizes)
	if len(parts) == 0 {
		return nil, fmt.Errorf("no instance sizes given")
	}
	cases := make([]bench.Case, 0, len(parts))
	for i, p := range parts {
		size, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("size %q: %w", p, err)
		}
		if size <= 0 {
			return nil, fmt.Errorf("size %q: must be > 0", p)
		}
		if kind == problems.PFSP && machines <= 0 {
			return nil, fmt.Errorf("machine count must be > 0 (got %d)", machines)
		}

		seed := baseInstanceSeed + int64(i)*10_000 + int64(size)

		cases = append(cases, bench.Case{
			Problem:      kind,
			Size:         size,
			Machines:     machines,
			InstanceSeed: seed,
		})
	}
	return cases, nil
}

func casesFromConfig(cfg bench.Config) ([]bench.Case, error) {
	if len(cfg.Cases) == 0 {
		return nil, fmt.Errorf("config has no cases")
	}
	cases := make([]bench.Case, 0, len(cfg.Cases))
	for i, cc := range cfg.Cases {
		if cc.Path != "" {
			if _, err := problems.KindFromPath(cc.Path); err != nil {
				return nil, fmt.Errorf("case %d: %w", i, err)
			}
			cases = append(cases, bench.Case{Path: cc.Path})
			continue
		}
		kind, err := parseProblem(cc.Problem)
		if err != nil {
			return nil, fmt.Errorf("case %d: %w", i, err)
		}
		if cc.Size <= 0 {
			return nil, fmt.Errorf("case %d: size must be > 0 (got %d)", i, cc.Size)
		}
		if kind == problems.PFSP && cc.Machines <= 0 {
			return nil, fmt.Errorf("case %d: machine count must be > 0 (got %d)", i, cc.Machines)
		}

		seed := cfg.InstanceSeed + int64(i)*10_000 + int64(cc.Size)

		cases = append(cases, bench.Case{
			Problem:      kind,
			Size:         cc.Size,
			Machines:     cc.Machines,
			InstanceSeed: seed,
		})
	}
	return cases, nil
}

func parseProblem(s string) (problems.Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "qap":
		return problems.QAP, nil
	case "pfsp":
		return problems.PFSP, nil
	case "lop":
		return problems.LOP, nil
	default:
		return 0, fmt.Errorf("unknown problem %q (want qap, pfsp or lop)", s)
	}
}

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
