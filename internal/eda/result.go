package eda

import (
	"golang.org/x/exp/constraints"

	"permu/internal/opt"
	"permu/internal/permu"
)

func toResult[T constraints.Unsigned](bestPerm permu.Permutation[T], bestFit, evals, gens int, meta map[string]any) opt.Result {
	perm := make([]int, len(bestPerm))
	for i, v := range bestPerm {
		perm[i] = int(uint64(v))
	}
	return opt.Result{
		Permutation: perm,
		Fitness:     bestFit,
		Evaluations: evals,
		Iterations:  gens,
		Meta:        meta,
	}
}
