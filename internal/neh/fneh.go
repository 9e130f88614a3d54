package neh

import (
	"slices"

	"flowShopOpt/internal/flowshop"
)

// Fast — NEH с ускорением Тайяра: для текущей частичной перестановки один раз
// считаются прямые (head) и обратные (tail) времена завершения, после чего
// Cmax для каждой позиции вставки получается за O(m):
//
//	e[j]  = max(head[pos][j], e[j-1]) + p(job, j)
//	Cmax  = max_j (e[j] + tail[pos][j])
//
// head[i] — строка завершения первых i работ, tail[i] — время от начала работы perm[i]
// на машине j до окончания всего хвоста perm[i:].
func Fast(inst *flowshop.Instance) (Construction, error) {
	if err := inst.Validate(); err != nil {
		return Construction{}, err
	}

	n, m := inst.Jobs, inst.Machines
	res := Construction{
		Permutation: make([]int, 0, n),
		Positions:   make([]int, 0, n),
	}

	// Буферы на максимальную длину, строки нарезаются по m элементов
	head := make([]int, (n+1)*m)
	tail := make([]int, (n+1)*m)
	row := func(buf []int, i int) []int { return buf[i*m : (i+1)*m] }
	e := make([]int, m)

	for _, job := range Order(inst) {
		perm := res.Permutation
		k := len(perm)

		clear(row(head, 0))
		for i := 0; i < k; i++ {
			inst.Advance(row(head, i+1), row(head, i), perm[i])
		}

		clear(row(tail, k))
		for i := k - 1; i >= 0; i-- {
			cur, next := row(tail, i), row(tail, i+1)
			right := 0
			for j := m - 1; j >= 0; j-- {
				v := next[j]
				if right > v {
					v = right
				}
				right = v + inst.Time(perm[i], j)
				cur[j] = right
			}
		}

		bestPos, bestCmax := 0, maxInt
		for pos := 0; pos <= k; pos++ {
			inst.Advance(e, row(head, pos), job)
			t := row(tail, pos)
			cmax := 0
			for j := 0; j < m; j++ {
				if v := e[j] + t[j]; v > cmax {
					cmax = v
				}
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
