package main

import (
	"fmt"

	"flowShopOpt/internal/bench"
	"flowShopOpt/internal/bnb"
	"flowShopOpt/internal/brute"
	"flowShopOpt/internal/config"
	"flowShopOpt/internal/johnson"
	"flowShopOpt/internal/neh"
	"flowShopOpt/internal/opt"
)

// Фабрики

var available = map[string]func(cfg config.Config) (opt.Optimizer, error){
	"bnb": func(cfg config.Config) (opt.Optimizer, error) {
		bc := bnb.DefaultConfig()
		bc.SeedWithNEH = cfg.SeedWithNEH
		return bnb.New(bc)
	},
	// метод ветвей и границ без начального рекорда
	"basic+lb": func(config.Config) (opt.Optimizer, error) {
		bc := bnb.DefaultConfig()
		bc.SeedWithNEH = false
		return bnb.New(bc)
	},
	"opt":     func(config.Config) (opt.Optimizer, error) { return brute.New(), nil },
	"johnson": func(config.Config) (opt.Optimizer, error) { return johnson.New(), nil },
	"neh":     func(config.Config) (opt.Optimizer, error) { return neh.New(), nil },
	"fneh":    func(config.Config) (opt.Optimizer, error) { return neh.NewFast(), nil },
}

func buildAlgorithms(names []string, cfg config.Config) ([]bench.Algorithm, error) {
	out := make([]bench.Algorithm, 0, len(names))
	for _, name := range names {
		factory, ok := available[name]
		if !ok {
			return nil, fmt.Errorf("алгоритм не предоставлен в программе %q; доступные: %v", name, config.Algorithms)
		}
		o, err := factory(cfg)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		out = append(out, bench.Algorithm{Name: name, Optimizer: o})
	}
	return out, nil
}
