package problems

import (
	"fmt"

	"golang.org/x/exp/constraints"

	"permu/internal/permu"
)

// Evaluate computes the fitness of every permutation in pop against the
// instance, storing results in fitness. The fitness vector must have one
// slot per solution and every solution must match the instance size.
func Evaluate[T constraints.Unsigned](in *Instance, pop *permu.PermuPopulation[T], fitness []int) error {
	switch in.kind {
	case QAP:
		return EvaluateQAP(in, pop, fitness)
	case PFSP:
		return EvaluatePFSP(in, pop, fitness)
	case LOP:
		return EvaluateLOP(in, pop, fitness)
	default:
		return fmt.Errorf("unknown problem kind %d", int(in.kind))
	}
}

// EvaluateQAP computes, for each solution p, the assignment cost
// Σ_i Σ_j distance[i][j] * flow[p[i]][p[j]].
func EvaluateQAP[T constraints.Unsigned](in *Instance, pop *permu.PermuPopulation[T], fitness []int) error {
	if in.kind != QAP {
		return fmt.Errorf("%w: have %s, want %s", ErrIncorrectInstance, in.kind, QAP)
	}
	if err := checkShapes(in, pop, fitness); err != nil {
		return err
	}
	for idx, sol := range pop.Vectors {
		f := 0
		for i := 0; i < in.size; i++ {
			fi := in.flow[elem(sol[i])]
			for j := 0; j < in.size; j++ {
				f += in.distance[i][j] * fi[elem(sol[j])]
			}
		}
		fitness[idx] = f
	}
	return nil
}

// EvaluatePFSP computes, for each solution, the total flow time through the
// machine pipeline: jobs are visited in permutation order and a running
// per-machine completion-time vector carries the classic recurrence
// b[m] = max(b[m-1], b[m]) + procTime[m][job].
func EvaluatePFSP[T constraints.Unsigned](in *Instance, pop *permu.PermuPopulation[T], fitness []int) error {
	if in.kind != PFSP {
		return fmt.Errorf("%w: have %s, want %s", ErrIncorrectInstance, in.kind, PFSP)
	}
	if err := checkShapes(in, pop, fitness); err != nil {
		return err
	}
	b := make([]int, in.machines)
	for idx, sol := range pop.Vectors {
		for m := range b {
			b[m] = 0
		}
		tft := 0
		for _, jobVal := range sol {
			job := elem(jobVal)
			b[0] += in.matrix[0][job]
			for m := 1; m < in.machines; m++ {
				left := b[m-1]
				up := b[m]
				if left > up {
					b[m] = left + in.matrix[m][job]
				} else {
					b[m] = up + in.matrix[m][job]
				}
			}
			tft += b[in.machines-1]
		}
		fitness[idx] = tft
	}
	return nil
}

// EvaluateLOP computes, for each solution p, the linear ordering score
// Σ_{i<j} matrix[p[i]][p[j]]. Larger is better.
func EvaluateLOP[T constraints.Unsigned](in *Instance, pop *permu.PermuPopulation[T], fitness []int) error {
	if in.kind != LOP {
		return fmt.Errorf("%w: have %s, want %s", ErrIncorrectInstance, in.kind, LOP)
	}
	if err := checkShapes(in, pop, fitness); err != nil {
		return err
	}
	for idx, sol := range pop.Vectors {
		f := 0
		for i := 0; i < in.size-1; i++ {
			row := in.matrix[elem(sol[i])]
			for j := i + 1; j < in.size; j++ {
				f += row[elem(sol[j])]
			}
		}
		fitness[idx] = f
	}
	return nil
}

func checkShapes[T constraints.Unsigned](in *Instance, pop *permu.PermuPopulation[T], fitness []int) error {
	if len(pop.Vectors) == 0 {
		return fmt.Errorf("%w: empty population", permu.ErrLength)
	}
	if len(fitness) != len(pop.Vectors) {
		return fmt.Errorf("%w: fitness vector length must be %d (got %d)", permu.ErrLength, len(pop.Vectors), len(fitness))
	}
	for i, sol := range pop.Vectors {
		if len(sol) != in.size {
			return fmt.Errorf("%w: solution %d has length %d, instance size is %d", permu.ErrLength, i, len(sol), in.size)
		}
	}
	return nil
}

func elem[T constraints.Unsigned](v T) int {
	return int(uint64(v))
}
