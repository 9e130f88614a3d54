package opt

import (
	"context"
	"time"

	"flowShopOpt/internal/flowshop"
)

// Optimizer — единый контракт для всех алгоритмов: точных, эвристических и аналитических.
// Алгоритмы ядра не поддерживают отмену: ctx проверяется только перед запуском.
type Optimizer interface {
	Solve(ctx context.Context, inst *flowshop.Instance) (Result, error)
}

// Func адаптирует функцию к интерфейсу Optimizer.
type Func func(ctx context.Context, inst *flowshop.Instance) (Result, error)

func (f Func) Solve(ctx context.Context, inst *flowshop.Instance) (Result, error) {
	return f(ctx, inst)
}

type Result struct {
	Permutation []int
	Makespan    int
	Evaluations int
	Iterations  int
	Duration    time.Duration
	Meta        map[string]any
}

// Begin — общая преамбула Solve: отмена до старта и валидация экземпляра.
func Begin(ctx context.Context, inst *flowshop.Instance) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return inst.Validate()
}
