package flowshop

import "fmt"

// Evaluator считает Cmax с переиспользованием внутренних буферов.
// Один Evaluator не предназначен для одновременного использования из нескольких горутин;
// для параллельных вызовов создавайте отдельный Evaluator или используйте Makespan.
type Evaluator struct {
	inst              *Instance
	machineCompletion []int
	mark              []int
	stamp             int
}

func NewEvaluator(inst *Instance) (*Evaluator, error) {
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return &Evaluator{
		inst:              inst,
		machineCompletion: make([]int, inst.Machines),
		mark:              make([]int, inst.Jobs),
	}, nil
}

// Makespan — Cmax полной перестановки.
func (e *Evaluator) Makespan(perm []int) (int, error) {
	if e == nil || e.inst == nil {
		return 0, fmt.Errorf("nil evaluator")
	}
	if len(perm) != e.inst.Jobs {
		return 0, fmt.Errorf("%w: permutation length must be %d (got %d)", ErrDimensionMismatch, e.inst.Jobs, len(perm))
	}
	return e.PartialMakespan(perm)
}

// PartialMakespan — Cmax последовательности из различных работ произвольной длины (не больше Jobs).
// Используется для частичных перестановок.
func (e *Evaluator) PartialMakespan(seq []int) (int, error) {
	if e == nil || e.inst == nil {
		return 0, fmt.Errorf("nil evaluator")
	}
	if len(seq) > e.inst.Jobs {
		return 0, fmt.Errorf("%w: sequence length %d exceeds job count %d", ErrDimensionMismatch, len(seq), e.inst.Jobs)
	}
	e.stamp++
	if err := validateSequence(seq, e.inst.Jobs, e.mark, e.stamp); err != nil {
		return 0, err
	}

	for m := range e.machineCompletion {
		e.machineCompletion[m] = 0
	}
	for _, job := range seq {
		e.inst.Advance(e.machineCompletion, e.machineCompletion, job)
	}
	return e.machineCompletion[e.inst.Machines-1], nil
}

func (e *Evaluator) MustMakespan(perm []int) int {
	ms, err := e.Makespan(perm)
	if err != nil {
		panic(err)
	}
	return ms
}

// Makespan — реентерабельный вариант без общего состояния.
func Makespan(inst *Instance, perm []int) (int, error) {
	eval, err := NewEvaluator(inst)
	if err != nil {
		return 0, err
	}
	return eval.Makespan(perm)
}

// CompletionMatrix возвращает таблицу n×m: cell[i][j] — момент завершения
// i-й работы перестановки на машине j.
func CompletionMatrix(inst *Instance, perm []int) ([][]int, error) {
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	if err := ValidatePermutation(perm, inst.Jobs); err != nil {
		return nil, err
	}
	backing := make([]int, len(perm)*inst.Machines)
	out := make([][]int, len(perm))
	prev := make([]int, inst.Machines)
	for i, job := range perm {
		out[i] = backing[i*inst.Machines : (i+1)*inst.Machines]
		inst.Advance(out[i], prev, job)
		prev = out[i]
	}
	return out, nil
}
