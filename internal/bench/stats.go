package bench

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

type IntStats struct {
	N    int
	Best int
	Mean float64
	Std  float64
}

// CalcIntStats summarizes integer fitness values. Best is the minimum
// unless maximize is set.
func CalcIntStats(values []int, maximize bool) IntStats {
	s := IntStats{N: len(values)}
	if s.N == 0 {
		return s
	}

	fs := make([]float64, len(values))
	for i, v := range values {
		fs[i] = float64(v)
	}

	if maximize {
		s.Best = int(floats.Max(fs))
	} else {
		s.Best = int(floats.Min(fs))
	}
	s.Mean = stat.Mean(fs, nil)
	if s.N >= 2 {
		s.Std = stat.StdDev(fs, nil)
	}
	return s
}

type FloatStats struct {
	N    int
	Best float64
	Mean float64
	Std  float64
}

// CalcFloatStats summarizes run times in milliseconds; Best is the minimum.
func CalcFloatStats(values []float64) FloatStats {
	s := FloatStats{N: len(values)}
	if s.N == 0 {
		return s
	}

	s.Best = floats.Min(values)
	s.Mean = stat.Mean(values, nil)
	if s.N >= 2 {
		s.Std = stat.StdDev(values, nil)
	}
	return s
}
