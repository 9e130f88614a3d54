package flowshop

import (
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"math/rand"

	"github.com/minio/sha256-simd"
)

type Instance struct {
	Name     string
	Jobs     int
	Machines int
	// ProcTimes length must be Jobs*Machines, row-major by job.
	ProcTimes []int
}

func NewInstance(jobs, machines int, procTimes []int) (*Instance, error) {
	inst := &Instance{Jobs: jobs, Machines: machines, ProcTimes: procTimes}
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return inst, nil
}

// FromRows собирает экземпляр из векторов времён по работам.
// Все векторы должны иметь одинаковую длину.
func FromRows(rows [][]int) (*Instance, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no jobs, machine count is undefined", ErrDimensionMismatch)
	}
	m := len(rows[0])
	pt := make([]int, 0, len(rows)*m)
	for i, row := range rows {
		if len(row) != m {
			return nil, fmt.Errorf("%w: job %d has %d times, job 0 has %d", ErrDimensionMismatch, i, len(row), m)
		}
		pt = append(pt, row...)
	}
	return NewInstance(len(rows), m, pt)
}

func (inst *Instance) Validate() error {
	if inst == nil {
		return errors.New("instance is nil")
	}
	if inst.Jobs < 0 {
		return fmt.Errorf("%w: jobs must be >= 0 (got %d)", ErrDimensionMismatch, inst.Jobs)
	}
	if inst.Machines <= 0 {
		return fmt.Errorf("%w: machines must be > 0 (got %d)", ErrDimensionMismatch, inst.Machines)
	}
	if err := CheckCells(inst.Jobs, inst.Machines); err != nil {
		return fmt.Errorf("%w: %v", ErrDimensionMismatch, err)
	}
	if len(inst.ProcTimes) != inst.Jobs*inst.Machines {
		return fmt.Errorf("%w: procTimes length must be jobs*machines=%d (got %d)",
			ErrDimensionMismatch, inst.Jobs*inst.Machines, len(inst.ProcTimes))
	}
	for i, v := range inst.ProcTimes {
		if v < 0 {
			return fmt.Errorf("%w: procTimes[%d] must be >= 0 (got %d)", ErrMalformedInput, i, v)
		}
	}
	return nil
}

// CheckCells проверяет, что jobs*machines не переполняется и не превышает MaxCells.
func CheckCells(jobs, machines int) error {
	if jobs > 0 && machines > MaxCells/jobs {
		return fmt.Errorf("%d×%d exceeds %d cells", jobs, machines, MaxCells)
	}
	return nil
}

func (inst *Instance) Time(job, machine int) int {
	return inst.ProcTimes[job*inst.Machines+machine]
}

// Row возвращает времена обработки работы на всех машинах (без копирования).
func (inst *Instance) Row(job int) []int {
	return inst.ProcTimes[job*inst.Machines : (job+1)*inst.Machines]
}

// TotalTime — суммарное время работы по всем машинам.
func (inst *Instance) TotalTime(job int) int {
	sum := 0
	for _, v := range inst.Row(job) {
		sum += v
	}
	return sum
}

// Advance вычисляет строку времён завершения для работы job,
// поставленной сразу после строки prev:
// dst[j] = max(prev[j], dst[j-1]) + p(job, j).
// dst и prev могут совпадать.
func (inst *Instance) Advance(dst, prev []int, job int) {
	row := inst.Row(job)
	left := 0
	for m, p := range row {
		up := prev[m]
		if left > up {
			up = left
		}
		left = up + p
		dst[m] = left
	}
}

// Clone возвращает независимую копию экземпляра.
func (inst *Instance) Clone() *Instance {
	pt := make([]int, len(inst.ProcTimes))
	copy(pt, inst.ProcTimes)
	return &Instance{Name: inst.Name, Jobs: inst.Jobs, Machines: inst.Machines, ProcTimes: pt}
}

// Fingerprint — sha256 от размеров и матрицы времён, в hex.
// Имя экземпляра не учитывается.
func (inst *Instance) Fingerprint() string {
	h := sha256.New()
	var buf [8]byte
	put := func(v int) {
		binary.LittleEndian.PutUint64(buf[:], uint64(v))
		h.Write(buf[:])
	}
	put(inst.Jobs)
	put(inst.Machines)
	for _, v := range inst.ProcTimes {
		put(v)
	}
	return hex.EncodeToString(h.Sum(nil))
}

func RandomInstance(jobs, machines, minTime, maxTime int, rng *rand.Rand) *Instance {
	if rng == nil {
		panic("генератор случайных чисел не инициализирован (nil)")
	}
	if minTime < 0 || maxTime < 0 || maxTime < minTime {
		panic("invalid time bounds")
	}
	pt := make([]int, jobs*machines)
	span := maxTime - minTime + 1
	for i := range pt {
		pt[i] = minTime
		if span > 1 {
			pt[i] += rng.Intn(span)
		}
	}
	inst, err := NewInstance(jobs, machines, pt)
	if err != nil {
		panic(err)
	}
	inst.Name = fmt.Sprintf("random-%dx%d", jobs, machines)
	return inst
}
