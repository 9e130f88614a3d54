package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"flowShopOpt/internal/config"
	"flowShopOpt/internal/flowshop"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append(args, "--log-level", "error"))
	err := root.Execute()
	return out.String(), err
}

func writeInstance(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

const sample = "3 2\n2 3\n4 1\n3 5\n"

func TestSolve(t *testing.T) {
	path := writeInstance(t, t.TempDir(), "sample.txt", sample)
	for _, algo := range config.Algorithms {
		out, err := run(t, "solve", path, "--algo", algo)
		if err != nil {
			t.Fatalf("%s: %v", algo, err)
		}
		if !strings.Contains(out, "Cmax: 11") {
			t.Fatalf("%s: output %q", algo, out)
		}
	}
}

func TestSolveFallback(t *testing.T) {
	var b strings.Builder
	b.WriteString("12 2\n")
	for i := 0; i < 12; i++ {
		b.WriteString("1 2\n")
	}
	path := writeInstance(t, t.TempDir(), "big.txt", b.String())

	out, err := run(t, "solve", path, "--algo", "opt")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "N/A") {
		t.Fatalf("expected N/A, got %q", out)
	}

	out, err = run(t, "solve", path, "--algo", "bnb", "--fallback", "fneh")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Algorithm: fneh, Cmax: 25") {
		t.Fatalf("fallback output %q", out)
	}
}

func TestEval(t *testing.T) {
	path := writeInstance(t, t.TempDir(), "sample.txt", sample)
	out, err := run(t, "eval", path, "0", "1", "2", "--matrix")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "2: 9 14") || !strings.Contains(out, "Cmax: 14") {
		t.Fatalf("output %q", out)
	}
	if _, err := run(t, "eval", path, "0", "0", "2"); err == nil {
		t.Fatal("duplicate job accepted")
	}
}

func TestBenchAndHistory(t *testing.T) {
	dir := t.TempDir()
	tests := filepath.Join(dir, "tests")
	if err := os.Mkdir(tests, 0o755); err != nil {
		t.Fatal(err)
	}
	writeInstance(t, tests, "data.1", sample)
	writeInstance(t, tests, "data.2", "2 3\n1 2 3\n3 2 1\n")
	db := filepath.Join(dir, "history.db")
	csvPath := filepath.Join(dir, "out.csv")
	prom := filepath.Join(dir, "metrics.prom")

	out, err := run(t, "bench", "--tests-dir", tests, "--runs", "2",
		"--out", csvPath, "--db", db, "--metrics-out", prom)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if want := 2 + 2*len(config.Algorithms); len(lines) != want {
		t.Fatalf("got %d lines, want %d:\n%s", len(lines), want, out)
	}
	if !strings.Contains(out, "N/A") {
		t.Fatalf("johnson on 3 machines must be N/A:\n%s", out)
	}
	for _, p := range []string{csvPath, db, prom} {
		if _, err := os.Stat(p); err != nil {
			t.Fatalf("%s not written: %v", p, err)
		}
	}
	metricsText, _ := os.ReadFile(prom)
	if !strings.Contains(string(metricsText), "flowshop_solve_runs") {
		t.Fatalf("metrics file lacks solve counters")
	}

	out, err = run(t, "history", "--db", db)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "dir:"+tests) {
		t.Fatalf("history output %q", out)
	}
}

func TestConfigFileAndFlagOverride(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "flowshop.json")
	if err := os.WriteFile(cfgPath, []byte(`{"algorithms":["neh"],"runs":2,"pairs":"4x2"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	out, err := run(t, "bench", "--config", cfgPath, "--algos", "neh,fneh")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "fneh") || !strings.Contains(out, "random-4x2") {
		t.Fatalf("output %q", out)
	}
}

func TestDBFlagOverridesConfig(t *testing.T) {
	dir := t.TempDir()
	tests := filepath.Join(dir, "tests")
	if err := os.Mkdir(tests, 0o755); err != nil {
		t.Fatal(err)
	}
	path := writeInstance(t, tests, "sample.txt", sample)
	db := filepath.Join(dir, "history.db")
	other := filepath.Join(dir, "other.db")
	cfgPath := filepath.Join(dir, "flowshop.json")
	if err := os.WriteFile(cfgPath, []byte(`{"algorithms":["neh"],"runs":1,"db_path":"`+db+`"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := run(t, "bench", "--config", cfgPath, "--tests-dir", tests); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, "solve", path, "--config", cfgPath, "--algo", "bnb")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Best known: 11 (gap 0)") {
		t.Fatalf("solve without --db must use db_path from config:\n%s", out)
	}
	out, err = run(t, "solve", path, "--config", cfgPath, "--algo", "bnb", "--db", other)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(out, "Best known") {
		t.Fatalf("--db must replace db_path:\n%s", out)
	}

	out, err = run(t, "history", "--config", cfgPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "dir:"+tests) {
		t.Fatalf("history from config db_path: %q", out)
	}
	out, err = run(t, "history", "--config", cfgPath, "--db", other)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(out, "dir:") {
		t.Fatalf("history must read --db, got %q", out)
	}
}

func TestUnseededBranchAndBound(t *testing.T) {
	algos, err := buildAlgorithms([]string{"basic+lb"}, config.Default())
	if err != nil {
		t.Fatal(err)
	}
	path := writeInstance(t, t.TempDir(), "sample.txt", sample)
	inst, err := flowshop.LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	res, err := algos[0].Optimizer.Solve(context.Background(), inst)
	if err != nil {
		t.Fatal(err)
	}
	if res.Makespan != 11 || res.Meta["seeded"] != false {
		t.Fatalf("basic+lb = %d, meta %v", res.Makespan, res.Meta)
	}
}

func TestUnknownAlgorithm(t *testing.T) {
	if _, err := run(t, "bench", "--pairs", "3x2", "--algos", "ga"); err == nil {
		t.Fatal("unknown algorithm accepted")
	}
}
