// Package neh содержит конструктивную эвристику NEH и её ускоренный вариант FNEH.
// Оба варианта выбирают одинаковые позиции вставки на каждом шаге.
package neh

import (
	"context"
	"slices"
	"time"

	"flowShopOpt/internal/flowshop"
	"flowShopOpt/internal/opt"
)

// maxInt используется как бесконечность для стоимостей.
const maxInt = int(^uint(0) >> 1)

// Construction — результат построения: перестановка, её Cmax и
// выбранная позиция вставки на каждом шаге.
type Construction struct {
	Permutation []int
	Makespan    int
	Positions   []int
	Evaluations int
}

// Classic — NEH с полным пересчётом Cmax для каждой пробной позиции.
func Classic(inst *flowshop.Instance) (Construction, error) {
	eval, err := flowshop.NewEvaluator(inst)
	if err != nil {
		return Construction{}, err
	}

	n := inst.Jobs
	res := Construction{
		Permutation: make([]int, 0, n),
		Positions:   make([]int, 0, n),
	}
	trial := make([]int, 0, n)

	for _, job := range Order(inst) {
		perm := res.Permutation
		bestPos, bestCmax := 0, maxInt
		for pos := 0; pos <= len(perm); pos++ {
			trial = append(trial[:0], perm[:pos]...)
			trial = append(trial, job)
			trial = append(trial, perm[pos:]...)

			cmax, err := eval.PartialMakespan(trial)
			if err != nil {
				return Construction{}, err
			}
			res.Evaluations++
			if cmax < bestCmax {
				bestCmax = cmax
				bestPos = pos
			}
		}
		res.Permutation = slices.Insert(perm, bestPos, job)
		res.Positions = append(res.Positions, bestPos)
		res.Makespan = bestCmax
	}
	return res, nil
}

type Solver struct {
	// Fast включает вариант FNEH.
	Fast bool
}

func New() *Solver { return &Solver{} }

func NewFast() *Solver { return &Solver{Fast: true} }

func (s *Solver) Solve(ctx context.Context, inst *flowshop.Instance) (opt.Result, error) {
	start := time.Now()
	if err := opt.Begin(ctx, inst); err != nil {
		return opt.Result{}, err
	}

	build := Classic
	if s.Fast {
		build = Fast
	}
	c, err := build(inst)
	if err != nil {
		return opt.Result{}, err
	}
	return opt.Result{
		Permutation: c.Permutation,
		Makespan:    c.Makespan,
		Evaluations: c.Evaluations,
		Iterations:  len(c.Positions),
		Duration:    time.Since(start),
		Meta:        map[string]any{"fast": s.Fast},
	}, nil
}
