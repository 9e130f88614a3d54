package bnb

import (
	"fmt"

	"flowShopOpt/internal/flowshop"
)

type Config struct {
	// MaxJobs — предельное число работ; выше него поиск не запускается.
	MaxJobs int

	// SeedWithNEH — начальный рекорд берётся из FNEH вместо +∞.
	SeedWithNEH bool

	// Visit, если задан, вызывается для каждого порождённого узла с его префиксом и нижней оценкой.
	// Срез prefix переиспользуется поиском и не должен сохраняться.
	Visit func(prefix []int, bound int)
}

func DefaultConfig() Config {
	return Config{
		MaxJobs:     flowshop.MaxExactJobs,
		SeedWithNEH: true,
	}
}

func (c Config) Validate() error {
	if c.MaxJobs < 0 || c.MaxJobs > flowshop.MaxExactJobs {
		return fmt.Errorf(
			"MaxJobs должно лежать в диапазоне [0, %d] (получено %d)",
			flowshop.MaxExactJobs,
			c.MaxJobs,
		)
	}
	return nil
}
