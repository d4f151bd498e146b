package opt

import (
	"context"
	"time"

	"permu/internal/problems"
)

// Optimizer is a solver for a single problem instance.
type Optimizer interface {
	Solve(ctx context.Context, inst *problems.Instance) (Result, error)
}

// Result is the outcome of one solver run. The fitness direction depends on
// the problem: QAP and PFSP minimize, LOP maximizes.
type Result struct {
	Permutation []int
	Fitness     int
	Evaluations int
	Iterations  int
	Duration    time.Duration
	Meta        map[string]any
}
