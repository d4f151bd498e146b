// Package eda implements an estimation-of-distribution solver for
// permutation problems: each generation the best individuals are encoded in
// a chosen vector representation, a positional distribution is learned from
// them, and the next generation is sampled from that distribution.
package eda

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"golang.org/x/exp/constraints"

	"permu/internal/opt"
	"permu/internal/permu"
	"permu/internal/problems"
)

// Solver runs the generate-learn-sample loop over the representation picked
// in its config. T is the element type solutions are stored in; it must be
// wide enough for the instance size.
type Solver[T constraints.Unsigned] struct {
	Cfg Config
	Rng *rand.Rand
}

// New returns a solver with a validated configuration and an initialized
// random source.
func New[T constraints.Unsigned](cfg Config, rng *rand.Rand) (*Solver[T], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("random source is not initialized (nil)")
	}
	return &Solver[T]{Cfg: cfg, Rng: rng}, nil
}

// Solve runs the EDA loop on the instance until the configured generation
// count or context cancellation, whichever comes first. On cancellation the
// best result found so far is returned together with the context error.
func (s *Solver[T]) Solve(ctx context.Context, inst *problems.Instance) (opt.Result, error) {
	start := time.Now()

	if err := inst.Validate(); err != nil {
		return opt.Result{}, err
	}
	if err := s.Cfg.Validate(); err != nil {
		return opt.Result{}, err
	}
	if s.Rng == nil {
		return opt.Result{}, fmt.Errorf("random source is not initialized (nil)")
	}

	n := inst.Size()
	if n > 0 && uint64(n-1) > uint64(^T(0)) {
		return opt.Result{}, fmt.Errorf("instance size %d exceeds the solver's element type range", n)
	}

	popSize := s.Cfg.Population
	elite := s.Cfg.Elite
	selCount := int(float64(popSize) * s.Cfg.Truncation)
	if selCount < 1 {
		selCount = 1
	}

	// Two populations: current (A) and next (B), with score vectors.
	pop := permu.RandomPermuPopulation[T](popSize, n, s.Rng)
	next := permu.ZerosPermuPopulation[T](popSize, n)
	scoresA := make([]int, popSize)
	scoresB := make([]int, popSize)

	if err := problems.Evaluate(inst, &pop, scoresA); err != nil {
		return opt.Result{}, err
	}
	evaluations := popSize

	maximize := inst.Maximize()
	better := func(a, b int) bool {
		if maximize {
			return a > b
		}
		return a < b
	}

	bestPerm := pop.Vectors[0].Clone()
	bestFit := scoresA[0]
	for i := 1; i < popSize; i++ {
		if better(scoresA[i], bestFit) {
			bestFit = scoresA[i]
			copy(bestPerm, pop.Vectors[i])
		}
	}

	// Encoded buffers, allocated once and reused across generations.
	encLen := n - 1
	var (
		selPermu permu.PermuPopulation[T]
		selInv   permu.InversionPopulation[T]
		outInv   permu.InversionPopulation[T]
		selRim   permu.RimPopulation[T]
		outRim   permu.RimPopulation[T]
	)
	switch s.Cfg.Representation {
	case ReprPermutation:
		selPermu = permu.ZerosPermuPopulation[T](selCount, n)
	case ReprInversion:
		selInv = permu.ZerosInversionPopulation[T](selCount, encLen)
		outInv = permu.ZerosInversionPopulation[T](popSize-elite, encLen)
	case ReprRim:
		selRim = permu.ZerosRimPopulation[T](selCount, encLen)
		outRim = permu.ZerosRimPopulation[T](popSize-elite, encLen)
	}

	idxs := make([]int, popSize)
	for i := range idxs {
		idxs[i] = i
	}

	for gen := 0; gen < s.Cfg.Generations; gen++ {
		if err := ctx.Err(); err != nil {
			res := toResult(bestPerm, bestFit, evaluations, gen, map[string]any{"stopped": "context"})
			res.Duration = time.Since(start)
			return res, err
		}

		// Best individuals first.
		sort.Slice(idxs, func(i, j int) bool {
			return better(scoresA[idxs[i]], scoresA[idxs[j]])
		})

		// Elitism: carry the best individuals over unchanged.
		for e := 0; e < elite; e++ {
			copy(next.Vectors[e], pop.Vectors[idxs[e]])
			scoresB[e] = scoresA[idxs[e]]
		}

		// The sampled part of the next generation is written in place.
		tail := permu.PermuPopulation[T]{Vectors: next.Vectors[elite:]}

		switch s.Cfg.Representation {
		case ReprPermutation:
			for k := 0; k < selCount; k++ {
				copy(selPermu.Vectors[k], pop.Vectors[idxs[k]])
			}
			d := selPermu.Learn()
			if err := tail.Sample(d, s.Rng); err != nil {
				return opt.Result{}, err
			}
		case ReprInversion:
			for k := 0; k < selCount; k++ {
				if err := selInv.Vectors[k].Encode(pop.Vectors[idxs[k]]); err != nil {
					return opt.Result{}, err
				}
			}
			d := selInv.Learn()
			if err := outInv.Sample(d, s.Rng); err != nil {
				return opt.Result{}, err
			}
			if err := outInv.ToPermus(&tail); err != nil {
				return opt.Result{}, err
			}
		case ReprRim:
			for k := 0; k < selCount; k++ {
				if err := selRim.Vectors[k].Encode(pop.Vectors[idxs[k]]); err != nil {
					return opt.Result{}, err
				}
			}
			d := selRim.Learn()
			if err := outRim.Sample(d, s.Rng); err != nil {
				return opt.Result{}, err
			}
			if err := outRim.ToPermus(&tail); err != nil {
				return opt.Result{}, err
			}
		}

		if err := problems.Evaluate(inst, &tail, scoresB[elite:]); err != nil {
			return opt.Result{}, err
		}
		evaluations += popSize - elite

		for i := elite; i < popSize; i++ {
			if better(scoresB[i], bestFit) {
				bestFit = scoresB[i]
				copy(bestPerm, next.Vectors[i])
			}
		}

		pop, next = next, pop
		scoresA, scoresB = scoresB, scoresA
	}

	res := toResult(bestPerm, bestFit, evaluations, s.Cfg.Generations, map[string]any{
		"population":     s.Cfg.Population,
		"generations":    s.Cfg.Generations,
		"elite":          s.Cfg.Elite,
		"truncation":     s.Cfg.Truncation,
		"representation": s.Cfg.Representation.String(),
	})
	res.Duration = time.Since(start)
	return res, nil
}
