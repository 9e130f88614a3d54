package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"flowShopOpt/internal/bench"
	"flowShopOpt/internal/flowshop"
	"flowShopOpt/internal/report"
	"flowShopOpt/internal/store"
)

func newSolveCmd(a *app) *cobra.Command {
	var (
		algo     string
		fallback string
	)
	cmd := &cobra.Command{
		Use:   "solve <file>",
		Short: "Solve one instance with one algorithm",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inst, err := flowshop.LoadFile(args[0])
			if err != nil {
				return err
			}

			names := []string{algo}
			if fallback != "" {
				names = append(names, fallback)
			}
			algos, err := buildAlgorithms(names, a.cfg)
			if err != nil {
				return err
			}

			runner := bench.Runner{Runs: 1, Logger: a.log}
			rec, err := runner.RunCase(cmd.Context(), inst, algos[0])
			if err != nil {
				return err
			}
			// точный метод отказался — решение переходит к запасному алгоритму
			if !rec.Applicable() && len(algos) > 1 {
				a.log.Warn("falling back",
					zap.String("algo", algo),
					zap.String("fallback", fallback),
					zap.String("reason", rec.Reason),
				)
				if rec, err = runner.RunCase(cmd.Context(), inst, algos[1]); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			if err := report.WriteSolution(out, rec); err != nil {
				return err
			}

			if db := a.cfg.DBPath; db != "" && rec.Applicable() {
				s, err := store.NewStore(db)
				if err != nil {
					return err
				}
				defer s.Close()
				best, ok, err := s.BestKnown(cmd.Context(), inst.Fingerprint())
				if err != nil {
					return err
				}
				if ok {
					fmt.Fprintf(out, "Best known: %d (gap %d)\n", best, rec.Makespan-best)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&algo, "algo", "fneh", "алгоритм: bnb | basic+lb | opt | johnson | neh | fneh")
	cmd.Flags().StringVar(&fallback, "fallback", "", "алгоритм на случай, если основной неприменим (например, fneh)")
	cmd.Flags().StringVar(&a.flags.DBPath, "db", "", "SQLite-история для сравнения с лучшим известным Cmax")
	return cmd
}
