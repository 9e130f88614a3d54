package bench

import (
	"encoding/csv"
	"os"
)

func WriteCSV(path string, records []Record) error {
	if d := dirOf(path); d != "" {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)

	header := []string{
		"instance", "fingerprint", "algo", "jobs", "machines", "runs", "status",
		"time_best_ms", "time_mean_ms", "time_std_ms",
		"makespan", "evaluations", "permutation",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range records {
		makespan := ""
		if r.Applicable() {
			makespan = itoa(r.Makespan)
		}
		row := []string{
			r.Instance,
			r.Fingerprint,
			r.Algo,
			itoa(r.Jobs),
			itoa(r.Machines),
			itoa(r.Runs),
			string(r.Status),

			ftoa(r.TimeBestMs),
			ftoa(r.TimeMeanMs),
			ftoa(r.TimeStdMs),

			makespan,
			itoa(r.Evaluations),
			FormatPermutation(r.Permutation),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
