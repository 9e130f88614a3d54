package brute

import (
	"context"
	"fmt"
	"time"

	"flowShopOpt/internal/flowshop"
	"flowShopOpt/internal/opt"
)

// Optimal перебирает все n! перестановок в лексикографическом порядке.
// При равных Cmax остаётся первая найденная перестановка.
func Optimal(inst *flowshop.Instance) ([]int, int, int, error) {
	if err := inst.Validate(); err != nil {
		return nil, 0, 0, err
	}
	if inst.Jobs > flowshop.MaxExactJobs {
		return nil, 0, 0, fmt.Errorf("%w: brute force is limited to %d jobs (got %d)",
			flowshop.ErrTooManyJobs, flowshop.MaxExactJobs, inst.Jobs)
	}

	eval, err := flowshop.NewEvaluator(inst)
	if err != nil {
		return nil, 0, 0, err
	}

	perm := flowshop.Identity(inst.Jobs)
	best := make([]int, inst.Jobs)
	copy(best, perm)
	bestCmax := eval.MustMakespan(perm)
	evals := 1

	for flowshop.NextPermutation(perm) {
		cmax := eval.MustMakespan(perm)
		evals++
		if cmax < bestCmax {
			bestCmax = cmax
			copy(best, perm)
		}
	}
	return best, bestCmax, evals, nil
}

type Solver struct{}

func New() *Solver { return &Solver{} }

func (s *Solver) Solve(ctx context.Context, inst *flowshop.Instance) (opt.Result, error) {
	start := time.Now()
	if err := opt.Begin(ctx, inst); err != nil {
		return opt.Result{}, err
	}
	perm, cmax, evals, err := Optimal(inst)
	if err != nil {
		return opt.Result{}, err
	}
	return opt.Result{
		Permutation: perm,
		Makespan:    cmax,
		Evaluations: evals,
		Iterations:  evals,
		Duration:    time.Since(start),
	}, nil
}
