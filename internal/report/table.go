// Package report печатает итоговую таблицу по экземплярам и алгоритмам.
package report

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"text/tabwriter"

	"flowShopOpt/internal/bench"
)

const na = "N/A"

// WriteTable выводит столбцы: файл, алгоритм, Cmax и среднее время в микросекундах.
// Неприменимые запуски печатаются как N/A.
func WriteTable(w io.Writer, records []bench.Record) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Test file\tAlgorithm\tCmax\tTime [us]\t")
	fmt.Fprintln(tw, "---------\t---------\t----\t---------\t")
	for _, r := range records {
		cmax, us := na, na
		if r.Applicable() {
			cmax = strconv.Itoa(r.Makespan)
			us = strconv.FormatInt(micros(r.TimeMeanMs), 10)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t\n", r.Instance, r.Algo, cmax, us)
	}
	return tw.Flush()
}

// WriteSolution печатает результат одного запуска solve.
func WriteSolution(w io.Writer, r bench.Record) error {
	if !r.Applicable() {
		_, err := fmt.Fprintf(w, "Algorithm: %s, Cmax: %s (%s)\n", r.Algo, na, r.Reason)
		return err
	}
	_, err := fmt.Fprintf(w, "Algorithm: %s, Cmax: %d, Time: %d us\nOrder: %s\n",
		r.Algo, r.Makespan, micros(r.TimeMeanMs), bench.FormatPermutation(r.Permutation))
	return err
}

func micros(ms float64) int64 { return int64(math.Round(ms * 1000)) }
