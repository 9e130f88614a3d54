package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"flowShopOpt/internal/bench"
	"flowShopOpt/internal/config"
	"flowShopOpt/internal/flowshop"
	"flowShopOpt/internal/metrics"
	"flowShopOpt/internal/report"
	"flowShopOpt/internal/store"
)

func addBenchFlags(fs *pflag.FlagSet, c *config.Config) {
	fs.StringSliceVar(&c.Algorithms, "algos", c.Algorithms, "список алгоритмов: bnb, opt, johnson, neh, fneh (через запятую)")
	fs.IntVar(&c.Runs, "runs", c.Runs, "количество запусков каждого алгоритма на экземпляре")
	fs.IntVar(&c.Parallel, "parallel", c.Parallel, "сколько экземпляров обрабатывать одновременно")
	fs.StringVar(&c.TestsDir, "tests-dir", c.TestsDir, "каталог с файлами экземпляров")
	fs.StringVar(&c.Pairs, "pairs", c.Pairs, "случайные экземпляры: работы X машины через запятую (вместо tests-dir)")
	fs.Int64Var(&c.InstanceSeed, "instance-seed", c.InstanceSeed, "базовый сид генерации случайных экземпляров")
	fs.StringVar(&c.OutCSV, "out", c.OutCSV, "путь к выходному CSV-файлу")
	fs.StringVar(&c.DBPath, "db", c.DBPath, "SQLite-файл истории прогонов")
	fs.StringVar(&c.MetricsOut, "metrics-out", c.MetricsOut, "файл для метрик Prometheus в текстовом формате")
}

func newBenchCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Run every selected algorithm on every instance and print a table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := a.cfg
			log := a.log

			insts, source, err := loadInstances(cfg, log)
			if err != nil {
				return err
			}
			algos, err := buildAlgorithms(cfg.Algorithms, cfg)
			if err != nil {
				return err
			}

			batch := uuid.New()
			log = log.With(zap.String("batch", batch.String()))
			log.Info("bench started",
				zap.String("source", source),
				zap.Int("instances", len(insts)),
				zap.Strings("algos", cfg.Algorithms),
				zap.Int("runs", cfg.Runs),
			)

			runner := bench.Runner{Runs: cfg.Runs, Parallel: cfg.Parallel, Logger: log}
			records, err := runner.Run(cmd.Context(), insts, algos)
			if err != nil {
				return err
			}

			if err := report.WriteTable(cmd.OutOrStdout(), records); err != nil {
				return err
			}

			var errs error
			if cfg.OutCSV != "" {
				errs = multierr.Append(errs, bench.WriteCSV(cfg.OutCSV, records))
			}
			if cfg.DBPath != "" {
				errs = multierr.Append(errs, saveBatch(cmd, cfg.DBPath, batch, source, records))
			}
			if cfg.MetricsOut != "" {
				errs = multierr.Append(errs, metrics.WriteTextfile(cfg.MetricsOut))
			}
			if errs != nil {
				return errs
			}
			log.Info("bench finished", zap.Int("records", len(records)))
			return nil
		},
	}
	addBenchFlags(cmd.Flags(), &a.flags)
	return cmd
}

func loadInstances(cfg config.Config, log *zap.Logger) ([]*flowshop.Instance, string, error) {
	if cfg.Pairs != "" {
		pairs, err := bench.ParsePairs(cfg.Pairs)
		if err != nil {
			return nil, "", err
		}
		return bench.RandomInstances(pairs, cfg.InstanceSeed), "pairs:" + cfg.Pairs, nil
	}

	insts, err := bench.LoadDir(cfg.TestsDir)
	if err != nil {
		for _, e := range multierr.Errors(err) {
			log.Warn("skipping instance", zap.Error(e))
		}
	}
	if len(insts) == 0 {
		if err != nil {
			return nil, "", err
		}
		return nil, "", fmt.Errorf("%s: no instances found", cfg.TestsDir)
	}
	return insts, "dir:" + cfg.TestsDir, nil
}

func saveBatch(cmd *cobra.Command, path string, batch uuid.UUID, source string, records []bench.Record) error {
	s, err := store.NewStore(path)
	if err != nil {
		return err
	}
	defer s.Close()
	return s.SaveBatch(cmd.Context(), batch, source, records)
}
