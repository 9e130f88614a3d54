package bench

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/multierr"

	"flowShopOpt/internal/flowshop"
	"flowShopOpt/internal/metrics"
)

type Pair struct {
	Jobs     int
	Machines int
}

// ParsePairs разбирает список вида "8x3,10x5".
func ParsePairs(s string) ([]Pair, error) {
	parts := splitCSV(s)
	pairs := make([]Pair, 0, len(parts))

	for _, p := range parts {
		jm := strings.Split(p, "x")
		if len(jm) != 2 {
			return nil, fmt.Errorf("пара %q невалидной схемы, пример: 8x3", p)
		}
		jobs, err := atoiStrict(jm[0])
		if err != nil {
			return nil, fmt.Errorf("пара %q: ошибка парсинга количества работ: %w", p, err)
		}
		machines, err := atoiStrict(jm[1])
		if err != nil {
			return nil, fmt.Errorf("пара %q: ошибка парсинга количества машин: %w", p, err)
		}
		if jobs <= 0 || machines <= 0 {
			return nil, fmt.Errorf("пара %q: количество работ и машин должно быть > 0", p)
		}
		if err := flowshop.CheckCells(jobs, machines); err != nil {
			return nil, fmt.Errorf("пара %q: %w", p, err)
		}
		pairs = append(pairs, Pair{Jobs: jobs, Machines: machines})
	}
	return pairs, nil
}

// RandomInstances генерирует по экземпляру на пару; сид фиксирован для конфигурации.
func RandomInstances(pairs []Pair, baseSeed int64) []*flowshop.Instance {
	out := make([]*flowshop.Instance, 0, len(pairs))
	for i, p := range pairs {
		seed := baseSeed + int64(i)*10_000 + int64(p.Jobs)*100 + int64(p.Machines)
		inst := flowshop.RandomInstance(p.Jobs, p.Machines, 1, 99, randForSeed(seed))
		inst.Name = fmt.Sprintf("random-%dx%d-%d", p.Jobs, p.Machines, seed)
		out = append(out, inst)
	}
	metrics.Bench.Instances(metrics.SourceLabels{Source: "random"}).Add(float64(len(out)))
	return out
}

// LoadDir загружает все обычные файлы каталога в порядке имён.
// Ошибки отдельных файлов собираются вместе; успешно загруженные экземпляры возвращаются в любом случае.
func LoadDir(dir string) ([]*flowshop.Instance, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var (
		out  []*flowshop.Instance
		errs error
	)
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		inst, err := flowshop.LoadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			metrics.Bench.LoadErrs(metrics.SourceLabels{Source: "dir"}).Inc()
			errs = multierr.Append(errs, err)
			continue
		}
		out = append(out, inst)
	}
	metrics.Bench.Instances(metrics.SourceLabels{Source: "dir"}).Add(float64(len(out)))
	return out, errs
}
