package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"flowShopOpt/internal/config"
)

// app — общее состояние команд: итоговая конфигурация и логгер.
type app struct {
	cfgPath string
	// flags хранит значения флагов; в конфигурацию переносятся только явно заданные.
	flags config.Config
	cfg   config.Config
	log   *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{flags: config.Default()}

	root := &cobra.Command{
		Use:   "flowshop",
		Short: "Permutation flow-shop makespan optimizer",
		Long: `flowshop computes job orderings minimizing the makespan (Cmax) of a
permutation flow shop: exact branch and bound and brute force search,
NEH and fast NEH insertion heuristics, and Johnson's rule for two machines.`,
		Example: `  $ flowshop solve tests/data.001 --algo bnb
  $ flowshop bench --tests-dir tests --algos neh,fneh,bnb --db history.db`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgPath, "config", "", "путь к JSON-файлу конфигурации")
	pf.StringVar(&a.flags.LogLevel, "log-level", a.flags.LogLevel, "уровень логирования: debug | info | warn | error")
	pf.StringVar(&a.flags.LogFormat, "log-format", a.flags.LogFormat, "формат логов: console | json")
	pf.BoolVar(&a.flags.SeedWithNEH, "seed-with-neh", a.flags.SeedWithNEH, "начальный рекорд метода ветвей и границ из FNEH")

	root.AddCommand(
		newSolveCmd(a),
		newEvalCmd(a),
		newBenchCmd(a),
		newHistoryCmd(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.cfgPath)
	if err != nil {
		return err
	}
	applyFlags(cmd.Flags(), &cfg, a.flags)
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := newLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = log
	return nil
}

// applyFlags переносит в cfg значения только тех флагов, что заданы явно.
func applyFlags(fs *pflag.FlagSet, cfg *config.Config, set config.Config) {
	fs.Visit(func(f *pflag.Flag) {
		switch f.Name {
		case "log-level":
			cfg.LogLevel = set.LogLevel
		case "log-format":
			cfg.LogFormat = set.LogFormat
		case "seed-with-neh":
			cfg.SeedWithNEH = set.SeedWithNEH
		case "algos":
			cfg.Algorithms = set.Algorithms
		case "runs":
			cfg.Runs = set.Runs
		case "parallel":
			cfg.Parallel = set.Parallel
		case "instance-seed":
			cfg.InstanceSeed = set.InstanceSeed
		case "pairs":
			cfg.Pairs = set.Pairs
		case "tests-dir":
			cfg.TestsDir = set.TestsDir
		case "out":
			cfg.OutCSV = set.OutCSV
		case "db":
			cfg.DBPath = set.DBPath
		case "metrics-out":
			cfg.MetricsOut = set.MetricsOut
		}
	})
}

func newLogger(level, format string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}
	var zc zap.Config
	if format == "json" {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = lvl
	zc.OutputPaths = []string{"stderr"}
	return zc.Build()
}
