package flowshop

import "fmt"

func ValidatePermutation(perm []int, n int) error {
	if len(perm) != n {
		return fmt.Errorf("%w: permutation length must be %d (got %d)", ErrDimensionMismatch, n, len(perm))
	}
	return validateSequence(perm, n, make([]int, n), 1)
}

// validateSequence проверяет, что seq состоит из различных номеров работ из [0,n).
// mark/stamp позволяют переиспользовать буфер между вызовами без очистки.
func validateSequence(seq []int, n int, mark []int, stamp int) error {
	for i, v := range seq {
		if v < 0 || v >= n {
			return fmt.Errorf("%w: perm[%d]=%d out of range [0,%d)", ErrInvalidPermutation, i, v, n)
		}
		if mark[v] == stamp {
			return fmt.Errorf("%w: duplicate job id %d in permutation", ErrInvalidPermutation, v)
		}
		mark[v] = stamp
	}
	return nil
}

// Identity возвращает [0, 1, ..., n-1].
func Identity(n int) []int {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	return p
}

// NextPermutation переводит p в следующую лексикографически перестановку.
// Возвращает false, если p уже последняя (p при этом не меняется).
func NextPermutation(p []int) bool {
	i := len(p) - 2
	for i >= 0 && p[i] >= p[i+1] {
		i--
	}
	if i < 0 {
		return false
	}
	j := len(p) - 1
	for p[j] <= p[i] {
		j--
	}
	p[i], p[j] = p[j], p[i]
	for l, r := i+1, len(p)-1; l < r; l, r = l+1, r-1 {
		p[l], p[r] = p[r], p[l]
	}
	return true
}
