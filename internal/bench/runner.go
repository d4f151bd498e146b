package bench

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"permu/internal/opt"
	"permu/internal/problems"
)

type Algorithm struct {
	Name    string
	Factory func(seed int64) opt.Optimizer
}

// Case describes one benchmark instance: either a file to load (Path set)
// or a randomly generated instance of the given problem and size.
type Case struct {
	Problem      problems.Kind
	Size         int
	Machines     int // PFSP only
	Path         string
	InstanceSeed int64
}

// Instance loads or generates the case's problem instance.
func (c Case) Instance() (*problems.Instance, error) {
	if c.Path != "" {
		return problems.Load(c.Path)
	}
	rng := randForSeed(c.InstanceSeed)
	switch c.Problem {
	case problems.QAP:
		return problems.RandomQAP(c.Size, 1, 99, rng), nil
	case problems.PFSP:
		return problems.RandomPFSP(c.Size, c.Machines, 1, 99, rng), nil
	case problems.LOP:
		return problems.RandomLOP(c.Size, 0, 99, rng), nil
	default:
		return nil, fmt.Errorf("unknown problem kind %d", int(c.Problem))
	}
}

// Label names the case for logs and the results CSV.
func (c Case) Label() string {
	if c.Path != "" {
		return c.Path
	}
	if c.Problem == problems.PFSP {
		return fmt.Sprintf("%s-%dx%d", c.Problem, c.Size, c.Machines)
	}
	return fmt.Sprintf("%s-%d", c.Problem, c.Size)
}

type Record struct {
	Algo     string
	Problem  string
	Instance string
	Size     int
	Runs     int

	TimeBestMs float64
	TimeMeanMs float64
	TimeStdMs  float64

	FitnessBest int
	FitnessMean float64
	FitnessStd  float64
}

type Runner struct {
	Runs          int
	BaseSeed      int64
	PerRunTimeout time.Duration // 0 = no timeout
}

func (r Runner) RunCase(ctx context.Context, c Case, algo Algorithm) (Record, error) {
	inst, err := c.Instance()
	if err != nil {
		return Record{}, fmt.Errorf("case %s: %w", c.Label(), err)
	}

	fitnesses := make([]int, 0, r.Runs)
	timesMs := make([]float64, 0, r.Runs)

	for i := 0; i < r.Runs; i++ {
		runSeed := r.BaseSeed + int64(i)

		op := algo.Factory(runSeed)

		runCtx := ctx
		cancel := func() {}
		if r.PerRunTimeout > 0 {
			runCtx, cancel = context.WithTimeout(ctx, r.PerRunTimeout)
		}
		start := time.Now()
		res, err := op.Solve(runCtx, inst)
		dur := time.Since(start)
		cancel()

		if err != nil && runCtx.Err() != nil {
			return Record{}, fmt.Errorf("run %d: cancelled/timeout: %w", i, err)
		}
		if err != nil {
			return Record{}, fmt.Errorf("run %d: solve error: %w", i, err)
		}
		if len(res.Permutation) != inst.Size() {
			return Record{}, fmt.Errorf("run %d: invalid permutation length %d (want %d)", i, len(res.Permutation), inst.Size())
		}

		fitnesses = append(fitnesses, res.Fitness)
		timesMs = append(timesMs, float64(dur.Microseconds())/1000.0)
	}

	fStats := CalcIntStats(fitnesses, inst.Maximize())
	tStats := CalcFloatStats(timesMs)

	return Record{
		Algo:     algo.Name,
		Problem:  inst.Kind().String(),
		Instance: c.Label(),
		Size:     inst.Size(),
		Runs:     r.Runs,

		TimeBestMs: tStats.Best,
		TimeMeanMs: tStats.Mean,
		TimeStdMs:  tStats.Std,

		FitnessBest: fStats.Best,
		FitnessMean: fStats.Mean,
		FitnessStd:  fStats.Std,
	}, nil
}

func WriteCSV(path string, records []Record) error {
	if err := os.MkdirAll(dirOf(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"algo", "problem", "instance", "size", "runs",
		"time_best_ms", "time_mean_ms", "time_std_ms",
		"fitness_best", "fitness_mean", "fitness_std",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range records {
		row := []string{
			r.Algo,
			r.Problem,
			r.Instance,
			itoa(r.Size),
			itoa(r.Runs),

			ftoa(r.TimeBestMs),
			ftoa(r.TimeMeanMs),
			ftoa(r.TimeStdMs),

			itoa(r.FitnessBest),
			ftoa(r.FitnessMean),
			ftoa(r.FitnessStd),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}
