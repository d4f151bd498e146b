package bench

import (
	"context"
	"encoding/csv"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"permu/internal/eda"
	"permu/internal/opt"
	"permu/internal/problems"
)

func tinyEDAFactory(t *testing.T, repr eda.Representation) func(seed int64) opt.Optimizer {
	t.Helper()
	cfg := eda.Config{
		Population:     20,
		Generations:    10,
		Elite:          1,
		Truncation:     0.5,
		Representation: repr,
	}
	require.NoError(t, cfg.Validate())
	return func(seed int64) opt.Optimizer {
		solver, err := eda.New[uint16](cfg, rand.New(rand.NewSource(seed)))
		require.NoError(t, err)
		return solver
	}
}

func TestRunCaseGenerated(t *testing.T) {
	r := Runner{Runs: 3, BaseSeed: 42}
	c := Case{Problem: problems.LOP, Size: 8, InstanceSeed: 7}
	a := Algorithm{Name: "EDA-inversion", Factory: tinyEDAFactory(t, eda.ReprInversion)}

	rec, err := r.RunCase(context.Background(), c, a)
	require.NoError(t, err)

	assert.Equal(t, "EDA-inversion", rec.Algo)
	assert.Equal(t, "lop", rec.Problem)
	assert.Equal(t, "lop-8", rec.Instance)
	assert.Equal(t, 8, rec.Size)
	assert.Equal(t, 3, rec.Runs)
	// LOP maximizes, so the best run is at least the mean.
	assert.GreaterOrEqual(t, float64(rec.FitnessBest), rec.FitnessMean)
}

func TestRunCaseFromFile(t *testing.T) {
	r := Runner{Runs: 2, BaseSeed: 1}
	c := Case{Path: filepath.Join("..", "problems", "testdata", "small.fsp")}
	a := Algorithm{Name: "EDA-rim", Factory: tinyEDAFactory(t, eda.ReprRim)}

	rec, err := r.RunCase(context.Background(), c, a)
	require.NoError(t, err)
	assert.Equal(t, "pfsp", rec.Problem)
	assert.Equal(t, 3, rec.Size)
	// Optimum of the 3x2 instance is a total flow time of 18.
	assert.GreaterOrEqual(t, rec.FitnessBest, 18)
	assert.LessOrEqual(t, float64(rec.FitnessBest), rec.FitnessMean)
}

func TestRunCaseDeterministicSeeds(t *testing.T) {
	r := Runner{Runs: 2, BaseSeed: 5}
	c := Case{Problem: problems.QAP, Size: 6, InstanceSeed: 9}
	a := Algorithm{Name: "EDA-permutation", Factory: tinyEDAFactory(t, eda.ReprPermutation)}

	rec1, err := r.RunCase(context.Background(), c, a)
	require.NoError(t, err)
	rec2, err := r.RunCase(context.Background(), c, a)
	require.NoError(t, err)

	assert.Equal(t, rec1.FitnessBest, rec2.FitnessBest)
	assert.InDelta(t, rec1.FitnessMean, rec2.FitnessMean, 1e-9)
}

func TestRunCaseMissingFile(t *testing.T) {
	r := Runner{Runs: 1, BaseSeed: 1}
	c := Case{Path: filepath.Join(t.TempDir(), "missing.lop")}
	a := Algorithm{Name: "EDA-inversion", Factory: tinyEDAFactory(t, eda.ReprInversion)}

	_, err := r.RunCase(context.Background(), c, a)
	assert.Error(t, err)
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "results.csv")
	records := []Record{
		{
			Algo: "EDA-rim", Problem: "qap", Instance: "qap-20", Size: 20, Runs: 5,
			TimeBestMs: 1.5, TimeMeanMs: 2.0, TimeStdMs: 0.25,
			FitnessBest: 123, FitnessMean: 130.5, FitnessStd: 4.2,
		},
	}
	require.NoError(t, WriteCSV(path, records))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "algo", rows[0][0])
	assert.Equal(t, "EDA-rim", rows[1][0])
	assert.Equal(t, "qap-20", rows[1][2])
	assert.Equal(t, "123", rows[1][8])
}
