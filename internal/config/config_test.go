package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatal(err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(filepath.Join(dir, "missing.json"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Runs != Default().Runs {
		t.Fatalf("missing file: runs = %d", cfg.Runs)
	}

	path := filepath.Join(dir, "flowshop.json")
	if err := os.WriteFile(path, []byte(`{"algorithms":["neh","fneh"],"runs":2,"seed_with_neh":false}`), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err = Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.Algorithms) != 2 || cfg.Runs != 2 || cfg.SeedWithNEH {
		t.Fatalf("cfg = %+v", cfg)
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("defaults not kept: %+v", cfg)
	}

	if err := os.WriteFile(path, []byte(`{"runs":`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("broken json accepted")
	}
}

func TestValidate(t *testing.T) {
	cases := map[string]func(*Config){
		"unknown algo": func(c *Config) { c.Algorithms = []string{"ga"} },
		"no algos":     func(c *Config) { c.Algorithms = nil },
		"runs":         func(c *Config) { c.Runs = 0 },
		"parallel":     func(c *Config) { c.Parallel = 0 },
		"no source":    func(c *Config) { c.TestsDir = ""; c.Pairs = "" },
		"log format":   func(c *Config) { c.LogFormat = "xml" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			c := Default()
			mutate(&c)
			if err := c.Validate(); err == nil {
				t.Fatal("invalid config accepted")
			}
		})
	}
}
