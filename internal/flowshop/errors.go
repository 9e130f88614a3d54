package flowshop

import "errors"

// MaxExactJobs — предельное число работ для точных методов (полный перебор, метод ветвей и границ).
const MaxExactJobs = 11

// MaxCells — предельный размер матрицы времён (работы × машины).
const MaxCells = 1 << 24

var (
	ErrDimensionMismatch  = errors.New("flowshop: dimension mismatch")
	ErrInvalidPermutation = errors.New("flowshop: invalid permutation")
	ErrWrongMachineCount  = errors.New("flowshop: wrong machine count")
	ErrTooManyJobs        = errors.New("flowshop: too many jobs")
	ErrMalformedInput     = errors.New("flowshop: malformed input")
)
