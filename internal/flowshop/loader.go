package flowshop

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
)

// Parse читает экземпляр в текстовом формате:
// число работ n, число машин m, затем n·m времён обработки построчно по работам.
// Разделители — любые пробельные символы.
func Parse(r io.Reader) (*Instance, error) {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)

	read := func(what string) (int, error) {
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return 0, fmt.Errorf("%w: reading %s: %v", ErrMalformedInput, what, err)
			}
			return 0, fmt.Errorf("%w: unexpected end of input while reading %s", ErrMalformedInput, what)
		}
		v, err := strconv.Atoi(sc.Text())
		if err != nil {
			return 0, fmt.Errorf("%w: %s: %q is not an integer", ErrMalformedInput, what, sc.Text())
		}
		return v, nil
	}

	n, err := read("job count")
	if err != nil {
		return nil, err
	}
	m, err := read("machine count")
	if err != nil {
		return nil, err
	}
	if n <= 0 || m <= 0 {
		return nil, fmt.Errorf("%w: job and machine counts must be > 0 (got %d, %d)", ErrMalformedInput, n, m)
	}

	if err := CheckCells(n, m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}

	pt := make([]int, 0, min(n*m, 1<<16))
	for i := 0; i < n; i++ {
		for j := 0; j < m; j++ {
			v, err := read(fmt.Sprintf("time of job %d on machine %d", i, j))
			if err != nil {
				return nil, err
			}
			if v < 0 {
				return nil, fmt.Errorf("%w: time of job %d on machine %d must be >= 0 (got %d)", ErrMalformedInput, i, j, v)
			}
			pt = append(pt, v)
		}
	}
	if sc.Scan() {
		return nil, fmt.Errorf("%w: unexpected trailing token %q after %d values", ErrMalformedInput, sc.Text(), n*m)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}

	return NewInstance(n, m, pt)
}

// LoadFile читает экземпляр из файла; имя экземпляра — базовое имя файла.
func LoadFile(path string) (*Instance, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	inst, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	inst.Name = filepath.Base(path)
	return inst, nil
}
