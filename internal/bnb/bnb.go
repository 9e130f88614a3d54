// Package bnb — точный метод ветвей и границ для перестановочной задачи flow-shop.
//
// Поиск в глубину ведётся по явному стеку кадров. Кадр глубины k хранит
// множество неразмещённых работ (битовая маска) и курсор следующего кандидата;
// строка завершения и остаточные суммы по машинам для глубины k лежат в арене
// по индексу k. Потомок всегда заново вычисляет строку k+1 из строки k, поэтому
// соседние ветви не видят промежуточных данных друг друга.
//
// Нижняя оценка префикса: max_j (R[j] + сумма времён неразмещённых работ на машине j).
// Ветвь отсекается, если оценка >= текущего рекорда.
package bnb

import (
	"context"
	"fmt"
	"slices"
	"time"

	"flowShopOpt/internal/flowshop"
	"flowShopOpt/internal/neh"
	"flowShopOpt/internal/opt"
)

// maxInt используется как бесконечность для стоимостей.
const maxInt = int(^uint(0) >> 1)

type Solver struct {
	Cfg Config
}

// New возвращает B&B-солвер с валидацией конфигурации.
func New(cfg Config) (*Solver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Solver{Cfg: cfg}, nil
}

// Stats — счётчики одного запуска.
type Stats struct {
	Nodes  int
	Pruned int
	Leaves int
	Seeded bool
}

// incumbent — лучшее найденное решение. Им владеет цикл поиска:
// значение передаётся в поиск и возвращается из него, а не разделяется через замыкание.
type incumbent struct {
	perm []int
	cmax int
}

func offer(best incumbent, prefix []int, cmax int) incumbent {
	if cmax < best.cmax {
		return incumbent{perm: slices.Clone(prefix), cmax: cmax}
	}
	return best
}

type frame struct {
	depth     int
	remaining uint64
	next      int
}

type search struct {
	inst  *flowshop.Instance
	visit func(prefix []int, bound int)

	rows   []int // строки завершения, (n+1)×m
	sums   []int // остаточные суммы по машинам, (n+1)×m
	prefix []int

	stats Stats
}

func (s *search) row(buf []int, depth int) []int {
	m := s.inst.Machines
	return buf[depth*m : (depth+1)*m]
}

func bound(row, rest []int) int {
	lb := 0
	for j, r := range row {
		if v := r + rest[j]; v > lb {
			lb = v
		}
	}
	return lb
}

func newSearch(inst *flowshop.Instance, visit func([]int, int)) *search {
	n, m := inst.Jobs, inst.Machines
	s := &search{
		inst:   inst,
		visit:  visit,
		rows:   make([]int, (n+1)*m),
		sums:   make([]int, (n+1)*m),
		prefix: make([]int, n),
	}
	root := s.row(s.sums, 0)
	for job := 0; job < n; job++ {
		for j, p := range inst.Row(job) {
			root[j] += p
		}
	}
	return s
}

func (s *search) run(best incumbent) incumbent {
	n := s.inst.Jobs

	lb := bound(s.row(s.rows, 0), s.row(s.sums, 0))
	s.stats.Nodes++
	if s.visit != nil {
		s.visit(s.prefix[:0], lb)
	}
	if lb >= best.cmax {
		s.stats.Pruned++
		return best
	}

	stack := make([]frame, 0, n+1)
	stack = append(stack, frame{depth: 0, remaining: uint64(1)<<uint(n) - 1})

	for len(stack) > 0 {
		top := &stack[len(stack)-1]

		job := -1
		for top.next < n {
			c := top.next
			top.next++
			if top.remaining&(1<<uint(c)) != 0 {
				job = c
				break
			}
		}
		if job < 0 {
			// кандидаты исчерпаны — возврат
			stack = stack[:len(stack)-1]
			continue
		}

		k := top.depth
		remaining := top.remaining &^ (1 << uint(job))
		s.prefix[k] = job

		child := s.row(s.rows, k+1)
		s.inst.Advance(child, s.row(s.rows, k), job)
		rest, parentRest := s.row(s.sums, k+1), s.row(s.sums, k)
		for j, p := range s.inst.Row(job) {
			rest[j] = parentRest[j] - p
		}

		lb := bound(child, rest)
		s.stats.Nodes++
		if s.visit != nil {
			s.visit(s.prefix[:k+1], lb)
		}

		if k+1 == n {
			s.stats.Leaves++
			best = offer(best, s.prefix, child[s.inst.Machines-1])
			continue
		}
		if lb >= best.cmax {
			s.stats.Pruned++
			continue
		}
		stack = append(stack, frame{depth: k + 1, remaining: remaining})
	}
	return best
}

// Optimal возвращает перестановку с минимальным Cmax.
func Optimal(inst *flowshop.Instance, cfg Config) ([]int, int, Stats, error) {
	if err := inst.Validate(); err != nil {
		return nil, 0, Stats{}, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, 0, Stats{}, err
	}
	if inst.Jobs > cfg.MaxJobs {
		return nil, 0, Stats{}, fmt.Errorf("%w: branch and bound is limited to %d jobs (got %d)",
			flowshop.ErrTooManyJobs, cfg.MaxJobs, inst.Jobs)
	}
	if inst.Jobs == 0 {
		return []int{}, 0, Stats{}, nil
	}

	best := incumbent{cmax: maxInt}
	seeded := false
	if cfg.SeedWithNEH {
		c, err := neh.Fast(inst)
		if err != nil {
			return nil, 0, Stats{}, err
		}
		best = incumbent{perm: c.Permutation, cmax: c.Makespan}
		seeded = true
	}

	s := newSearch(inst, cfg.Visit)
	best = s.run(best)
	s.stats.Seeded = seeded
	return best.perm, best.cmax, s.stats, nil
}

// LowerBound — нижняя оценка Cmax любого достраивания префикса.
func LowerBound(inst *flowshop.Instance, prefix []int) (int, error) {
	if err := inst.Validate(); err != nil {
		return 0, err
	}
	used := make([]bool, inst.Jobs)
	for i, job := range prefix {
		if job < 0 || job >= inst.Jobs || used[job] {
			return 0, fmt.Errorf("%w: prefix[%d]=%d", flowshop.ErrInvalidPermutation, i, job)
		}
		used[job] = true
	}

	row := make([]int, inst.Machines)
	for _, job := range prefix {
		inst.Advance(row, row, job)
	}
	rest := make([]int, inst.Machines)
	for job := 0; job < inst.Jobs; job++ {
		if used[job] {
			continue
		}
		for j, p := range inst.Row(job) {
			rest[j] += p
		}
	}
	return bound(row, rest), nil
}

// Solve — реализация точного метода.
func (s *Solver) Solve(ctx context.Context, inst *flowshop.Instance) (opt.Result, error) {
	start := time.Now()
	if err := opt.Begin(ctx, inst); err != nil {
		return opt.Result{}, err
	}

	perm, cmax, st, err := Optimal(inst, s.Cfg)
	if err != nil {
		return opt.Result{}, err
	}
	return opt.Result{
		Permutation: perm,
		Makespan:    cmax,
		Evaluations: st.Leaves,
		Iterations:  st.Nodes,
		Duration:    time.Since(start),
		Meta: map[string]any{
			"pruned": st.Pruned,
			"leaves": st.Leaves,
			"seeded": st.Seeded,
		},
	}, nil
}
