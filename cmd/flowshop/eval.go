package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"flowShopOpt/internal/flowshop"
)

func newEvalCmd(*app) *cobra.Command {
	var matrix bool
	cmd := &cobra.Command{
		Use:   "eval <file> <job>...",
		Short: "Evaluate the makespan of a given job order",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inst, err := flowshop.LoadFile(args[0])
			if err != nil {
				return err
			}
			perm := make([]int, 0, len(args)-1)
			for _, s := range args[1:] {
				v, err := strconv.Atoi(s)
				if err != nil {
					return fmt.Errorf("%w: job %q is not an integer", flowshop.ErrInvalidPermutation, s)
				}
				perm = append(perm, v)
			}

			out := cmd.OutOrStdout()
			if matrix {
				rows, err := flowshop.CompletionMatrix(inst, perm)
				if err != nil {
					return err
				}
				for i, row := range rows {
					fmt.Fprintf(out, "%d:", perm[i])
					for _, c := range row {
						fmt.Fprintf(out, " %d", c)
					}
					fmt.Fprintln(out)
				}
			}
			cmax, err := flowshop.Makespan(inst, perm)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Cmax: %d\n", cmax)
			return nil
		},
	}
	cmd.Flags().BoolVar(&matrix, "matrix", false, "печатать матрицу времён завершения")
	return cmd
}
