// Package config — настройки CLI, читаемые из JSON-файла.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"slices"
)

// Algorithms — имена всех доступных алгоритмов в порядке вывода.
var Algorithms = []string{"bnb", "basic+lb", "opt", "johnson", "neh", "fneh"}

type Config struct {
	Algorithms   []string `json:"algorithms"`
	Runs         int      `json:"runs"`
	Parallel     int      `json:"parallel"`
	InstanceSeed int64    `json:"instance_seed"`
	Pairs        string   `json:"pairs"`
	TestsDir     string   `json:"tests_dir"`
	OutCSV       string   `json:"out_csv"`
	DBPath       string   `json:"db_path"`
	MetricsOut   string   `json:"metrics_out"`
	LogLevel     string   `json:"log_level"`
	LogFormat    string   `json:"log_format"`
	SeedWithNEH  bool     `json:"seed_with_neh"`
}

func Default() Config {
	return Config{
		Algorithms:   slices.Clone(Algorithms),
		Runs:         5,
		Parallel:     1,
		InstanceSeed: 777,
		Pairs:        "",
		TestsDir:     "tests",
		LogLevel:     "info",
		LogFormat:    "console",
		SeedWithNEH:  true,
	}
}

func (c Config) Validate() error {
	if len(c.Algorithms) == 0 {
		return errors.New("список алгоритмов пуст")
	}
	for _, a := range c.Algorithms {
		if !slices.Contains(Algorithms, a) {
			return fmt.Errorf("алгоритм %q не предоставлен в программе; доступные: %v", a, Algorithms)
		}
	}
	if c.Runs <= 0 {
		return fmt.Errorf("runs должно быть > 0 (получено %d)", c.Runs)
	}
	if c.Parallel <= 0 {
		return fmt.Errorf("parallel должно быть > 0 (получено %d)", c.Parallel)
	}
	if c.Pairs == "" && c.TestsDir == "" {
		return errors.New("нужно задать tests_dir или pairs")
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("неизвестный формат логов %q (console | json)", c.LogFormat)
	}
	return nil
}

// Load читает конфигурацию поверх значений по умолчанию.
// Отсутствующий файл не ошибка: возвращаются значения по умолчанию.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, err
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}
