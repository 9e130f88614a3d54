package bench

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"flowShopOpt/internal/flowshop"
	"flowShopOpt/internal/metrics"
	"flowShopOpt/internal/opt"
)

// Algorithm — именованный алгоритм. Optimizer должен быть безопасен
// для одновременных вызовов Solve, если Runner.Parallel > 1.
type Algorithm struct {
	Name      string
	Optimizer opt.Optimizer
}

type Status string

const (
	StatusOK            Status = "ok"
	StatusNotApplicable Status = "n/a"
)

type Record struct {
	Instance    string
	Fingerprint string
	Algo        string
	Jobs        int
	Machines    int
	Runs        int

	Status Status
	Reason string

	TimeBestMs float64
	TimeMeanMs float64
	TimeStdMs  float64

	Makespan    int
	Permutation []int
	Evaluations int
	Iterations  int
}

func (r Record) Applicable() bool { return r.Status == StatusOK }

type Runner struct {
	Runs int
	// Parallel — сколько экземпляров обрабатывается одновременно; <= 1 — последовательно.
	Parallel int
	Logger   *zap.Logger
	Tracer   trace.Tracer
}

// NotApplicable сообщает, что алгоритм отказался от экземпляра по правилам применимости,
// а не из-за сбоя: точные методы выше порога числа работ, правило Джонсона при m != 2.
func NotApplicable(err error) bool {
	return errors.Is(err, flowshop.ErrTooManyJobs) || errors.Is(err, flowshop.ErrWrongMachineCount)
}

func (r Runner) logger() *zap.Logger {
	if r.Logger == nil {
		return zap.NewNop()
	}
	return r.Logger
}

func (r Runner) tracer() trace.Tracer {
	if r.Tracer == nil {
		return otel.Tracer("flowShopOpt/bench")
	}
	return r.Tracer
}

func (r Runner) RunCase(ctx context.Context, inst *flowshop.Instance, algo Algorithm) (Record, error) {
	runs := max(r.Runs, 1)
	log := r.logger().With(
		zap.String("instance", inst.Name),
		zap.String("algo", algo.Name),
		zap.Int("jobs", inst.Jobs),
		zap.Int("machines", inst.Machines),
	)
	labels := metrics.AlgoLabels{Algo: algo.Name}

	ctx, span := r.tracer().Start(ctx, "bench.solve", trace.WithAttributes(
		attribute.String("instance", inst.Name),
		attribute.String("algo", algo.Name),
		attribute.Int("jobs", inst.Jobs),
		attribute.Int("machines", inst.Machines),
	))
	defer span.End()

	rec := Record{
		Instance:    inst.Name,
		Fingerprint: inst.Fingerprint(),
		Algo:        algo.Name,
		Jobs:        inst.Jobs,
		Machines:    inst.Machines,
		Runs:        runs,
		Status:      StatusOK,
	}
	timesMs := make([]float64, 0, runs)

	for i := 0; i < runs; i++ {
		// каждый запуск получает собственную копию экземпляра
		local := inst.Clone()

		start := time.Now()
		res, err := algo.Optimizer.Solve(ctx, local)
		dur := time.Since(start)

		if err != nil && NotApplicable(err) {
			metrics.Solve.NotApplicable(labels).Inc()
			span.SetAttributes(attribute.String("status", string(StatusNotApplicable)))
			log.Debug("algorithm not applicable", zap.Error(err))
			rec.Status = StatusNotApplicable
			rec.Reason = err.Error()
			rec.Runs = 0
			return rec, nil
		}
		if err != nil {
			metrics.Solve.Failures(labels).Inc()
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return Record{}, fmt.Errorf("%s on %s, run %d: %w", algo.Name, inst.Name, i, err)
		}

		cmax, err := flowshop.Makespan(inst, res.Permutation)
		if err != nil {
			return Record{}, fmt.Errorf("%s on %s, run %d: invalid permutation: %w", algo.Name, inst.Name, i, err)
		}
		if cmax != res.Makespan {
			return Record{}, fmt.Errorf("%s on %s, run %d: reported Cmax %d, permutation evaluates to %d",
				algo.Name, inst.Name, i, res.Makespan, cmax)
		}
		if i > 0 && cmax != rec.Makespan {
			return Record{}, fmt.Errorf("%s on %s: non-deterministic result (%d vs %d)", algo.Name, inst.Name, cmax, rec.Makespan)
		}

		rec.Makespan = cmax
		rec.Permutation = res.Permutation
		rec.Evaluations = res.Evaluations
		rec.Iterations = res.Iterations

		ms := float64(dur.Nanoseconds()) / 1e6
		timesMs = append(timesMs, ms)

		metrics.Solve.Runs(labels).Inc()
		metrics.Solve.Evaluations(labels).Add(float64(res.Evaluations))
		metrics.Solve.Nodes(labels).Add(float64(res.Iterations))
		metrics.Solve.Duration(labels).Observe(ms)
		metrics.Solve.Makespan(labels).Set(float64(cmax))
	}

	tStats := CalcStats(timesMs)
	rec.TimeBestMs = tStats.Best
	rec.TimeMeanMs = tStats.Mean
	rec.TimeStdMs = tStats.Std

	span.SetAttributes(attribute.Int("makespan", rec.Makespan))
	log.Info("solved",
		zap.Int("makespan", rec.Makespan),
		zap.Float64("time_mean_ms", rec.TimeMeanMs),
		zap.Int("evaluations", rec.Evaluations),
	)
	return rec, nil
}

// Run прогоняет каждый алгоритм на каждом экземпляре.
// Порядок записей: по экземплярам, внутри — в порядке algos.
func (r Runner) Run(ctx context.Context, insts []*flowshop.Instance, algos []Algorithm) ([]Record, error) {
	records := make([]Record, len(insts)*len(algos))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(r.Parallel, 1))
	for i, inst := range insts {
		g.Go(func() error {
			for a, algo := range algos {
				rec, err := r.RunCase(gctx, inst, algo)
				if err != nil {
					return err
				}
				records[i*len(algos)+a] = rec
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return records, nil
}
