// Package johnson реализует правило Джонсона для двух машин.
//
// Порядок при равенствах фиксирован: работы с p1 <= p2 идут в начало по
// возрастанию p1 (при равенстве — по возрастанию номера), работы с p1 > p2 —
// в конец по убыванию p2 (при равенстве — по убыванию номера). Это совпадает
// с пошаговым выбором глобального минимума, где при равенстве значений
// предпочтение отдаётся первой машине (вставка в начало), а затем меньшему номеру работы.
package johnson

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"time"

	"flowShopOpt/internal/flowshop"
	"flowShopOpt/internal/opt"
)

// Order возвращает оптимальную перестановку и её Cmax для экземпляра с двумя машинами.
func Order(inst *flowshop.Instance) ([]int, int, error) {
	if err := inst.Validate(); err != nil {
		return nil, 0, err
	}
	if inst.Jobs == 0 {
		return []int{}, 0, nil
	}
	if inst.Machines != 2 {
		return nil, 0, fmt.Errorf("%w: johnson's rule needs 2 machines (got %d)", flowshop.ErrWrongMachineCount, inst.Machines)
	}

	front := make([]int, 0, inst.Jobs)
	back := make([]int, 0, inst.Jobs)
	for j := 0; j < inst.Jobs; j++ {
		if inst.Time(j, 0) <= inst.Time(j, 1) {
			front = append(front, j)
		} else {
			back = append(back, j)
		}
	}

	slices.SortFunc(front, func(a, b int) int {
		return cmp.Or(cmp.Compare(inst.Time(a, 0), inst.Time(b, 0)), cmp.Compare(a, b))
	})
	slices.SortFunc(back, func(a, b int) int {
		return cmp.Or(cmp.Compare(inst.Time(b, 1), inst.Time(a, 1)), cmp.Compare(b, a))
	})

	perm := append(front, back...)
	cmax, err := flowshop.Makespan(inst, perm)
	if err != nil {
		return nil, 0, err
	}
	return perm, cmax, nil
}

type Solver struct{}

func New() *Solver { return &Solver{} }

func (s *Solver) Solve(ctx context.Context, inst *flowshop.Instance) (opt.Result, error) {
	start := time.Now()
	if err := opt.Begin(ctx, inst); err != nil {
		return opt.Result{}, err
	}
	perm, cmax, err := Order(inst)
	if err != nil {
		return opt.Result{}, err
	}
	return opt.Result{
		Permutation: perm,
		Makespan:    cmax,
		Evaluations: 1,
		Duration:    time.Since(start),
	}, nil
}
