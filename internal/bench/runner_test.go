package bench

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"flowShopOpt/internal/flowshop"
	"flowShopOpt/internal/johnson"
	"flowShopOpt/internal/neh"
	"flowShopOpt/internal/opt"
)

func sampleInstance(t *testing.T) *flowshop.Instance {
	t.Helper()
	inst, err := flowshop.FromRows([][]int{{2, 3}, {4, 1}, {3, 5}})
	if err != nil {
		t.Fatal(err)
	}
	inst.Name = "sample"
	return inst
}

func TestRunCase(t *testing.T) {
	r := Runner{Runs: 3}
	rec, err := r.RunCase(context.Background(), sampleInstance(t), Algorithm{Name: "fneh", Optimizer: neh.NewFast()})
	if err != nil {
		t.Fatal(err)
	}
	if !rec.Applicable() || rec.Makespan != 11 || rec.Runs != 3 {
		t.Fatalf("record = %+v", rec)
	}
	if rec.Fingerprint == "" || rec.Instance != "sample" {
		t.Fatalf("record identity = %+v", rec)
	}
	if rec.TimeBestMs > rec.TimeMeanMs {
		t.Fatalf("best time %f above mean %f", rec.TimeBestMs, rec.TimeMeanMs)
	}
}

func TestRunCaseNotApplicable(t *testing.T) {
	inst, _ := flowshop.FromRows([][]int{{1, 2, 3}, {2, 2, 2}})
	rec, err := Runner{Runs: 2}.RunCase(context.Background(), inst, Algorithm{Name: "johnson", Optimizer: johnson.New()})
	if err != nil {
		t.Fatal(err)
	}
	if rec.Status != StatusNotApplicable || rec.Reason == "" {
		t.Fatalf("record = %+v", rec)
	}
}

func TestRunCaseRejectsWrongMakespan(t *testing.T) {
	liar := opt.Func(func(ctx context.Context, inst *flowshop.Instance) (opt.Result, error) {
		return opt.Result{Permutation: flowshop.Identity(inst.Jobs), Makespan: 1}, nil
	})
	_, err := Runner{Runs: 1}.RunCase(context.Background(), sampleInstance(t), Algorithm{Name: "liar", Optimizer: liar})
	if err == nil || !strings.Contains(err.Error(), "reported Cmax") {
		t.Fatalf("got %v", err)
	}
}

func TestRunCaseFailure(t *testing.T) {
	boom := errors.New("boom")
	failing := opt.Func(func(context.Context, *flowshop.Instance) (opt.Result, error) {
		return opt.Result{}, boom
	})
	_, err := Runner{}.RunCase(context.Background(), sampleInstance(t), Algorithm{Name: "fail", Optimizer: failing})
	if !errors.Is(err, boom) {
		t.Fatalf("got %v", err)
	}
}

func TestRunOrderAndParallel(t *testing.T) {
	insts := RandomInstances([]Pair{{4, 2}, {5, 3}, {6, 2}}, 1)
	algos := []Algorithm{
		{Name: "neh", Optimizer: neh.New()},
		{Name: "johnson", Optimizer: johnson.New()},
	}
	seq, err := Runner{Runs: 1}.Run(context.Background(), insts, algos)
	if err != nil {
		t.Fatal(err)
	}
	par, err := Runner{Runs: 1, Parallel: 3}.Run(context.Background(), insts, algos)
	if err != nil {
		t.Fatal(err)
	}
	if len(seq) != 6 || len(par) != 6 {
		t.Fatalf("got %d and %d records", len(seq), len(par))
	}
	for i := range seq {
		if seq[i].Instance != insts[i/2].Name || seq[i].Algo != algos[i%2].Name {
			t.Fatalf("record %d out of order: %s/%s", i, seq[i].Instance, seq[i].Algo)
		}
		if seq[i].Instance != par[i].Instance || seq[i].Makespan != par[i].Makespan || seq[i].Status != par[i].Status {
			t.Fatalf("record %d differs between sequential and parallel runs", i)
		}
	}
	if seq[3].Status != StatusNotApplicable {
		t.Fatalf("johnson on 3 machines = %+v", seq[3])
	}
}

func TestParsePairs(t *testing.T) {
	pairs, err := ParsePairs(" 8x3, 10x5 ,")
	if err != nil {
		t.Fatal(err)
	}
	if len(pairs) != 2 || pairs[1] != (Pair{10, 5}) {
		t.Fatalf("pairs = %v", pairs)
	}
	for _, bad := range []string{"8", "8x", "ax3", "0x3", "3x3x3", "100000000x100000000", "4611686018427387904x4"} {
		if _, err := ParsePairs(bad); err == nil {
			t.Fatalf("%q accepted", bad)
		}
	}
}

func TestRandomInstancesDeterministic(t *testing.T) {
	a := RandomInstances([]Pair{{5, 3}}, 42)
	b := RandomInstances([]Pair{{5, 3}}, 42)
	if a[0].Fingerprint() != b[0].Fingerprint() {
		t.Fatal("same seed produced different instances")
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	write("b.txt", "2 2\n1 2\n3 4\n")
	write("a.txt", "1 1\n5\n")
	write("broken.txt", "2 2\n1")
	write("also-broken.txt", "x")
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}

	insts, err := LoadDir(dir)
	if err == nil {
		t.Fatal("broken files not reported")
	}
	if !errors.Is(err, flowshop.ErrMalformedInput) {
		t.Fatalf("err = %v", err)
	}
	if !strings.Contains(err.Error(), "broken.txt") || !strings.Contains(err.Error(), "also-broken.txt") {
		t.Fatalf("both failures must be reported: %v", err)
	}
	if len(insts) != 2 || insts[0].Name != "a.txt" || insts[1].Name != "b.txt" {
		t.Fatalf("loaded %d instances", len(insts))
	}
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "results.csv")
	records := []Record{
		{Instance: "a", Algo: "neh", Status: StatusOK, Makespan: 7, Permutation: []int{1, 0}},
		{Instance: "a", Algo: "johnson", Status: StatusNotApplicable},
	}
	if err := WriteCSV(path, records); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 || !strings.HasPrefix(lines[0], "instance,") || !strings.HasSuffix(lines[1], ",7,0,1 0") {
		t.Fatalf("csv:\n%s", data)
	}
}
