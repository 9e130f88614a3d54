package neh

import (
	"cmp"
	"slices"

	"flowShopOpt/internal/flowshop"
)

// Order возвращает номера работ по убыванию суммарного времени обработки;
// при равенстве — по возрастанию номера.
func Order(inst *flowshop.Instance) []int {
	totals := make([]int, inst.Jobs)
	for j := range totals {
		totals[j] = inst.TotalTime(j)
	}
	order := flowshop.Identity(inst.Jobs)
	slices.SortFunc(order, func(a, b int) int {
		return cmp.Or(cmp.Compare(totals[b], totals[a]), cmp.Compare(a, b))
	})
	return order
}
