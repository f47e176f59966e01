package config

import (
	"strings"
	"testing"
)

type envTestConfig struct {
	Port  int      `env:"INTERCAMBIO_TEST_PORT" envDefault:"123"`
	Names []string `env:"INTERCAMBIO_TEST_NAMES"`
}

func TestParseEnvDefaults(t *testing.T) {
	var cfg envTestConfig

	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Port != 123 {
		t.Fatalf("expected default port 123, got %d", cfg.Port)
	}
	if len(cfg.Names) != 0 {
		t.Fatalf("expected no names, got %v", cfg.Names)
	}
}

func TestParseEnvSplitsSlices(t *testing.T) {
	var cfg envTestConfig
	t.Setenv("INTERCAMBIO_TEST_NAMES", "Miguel,Mamá,Papá Luis")

	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	want := []string{"Miguel", "Mamá", "Papá Luis"}
	if len(cfg.Names) != len(want) {
		t.Fatalf("names = %v, want %v", cfg.Names, want)
	}
	for i := range want {
		if cfg.Names[i] != want[i] {
			t.Fatalf("names[%d] = %q, want %q", i, cfg.Names[i], want[i])
		}
	}
}

func TestParseEnvError(t *testing.T) {
	var cfg envTestConfig
	t.Setenv("INTERCAMBIO_TEST_PORT", "not-an-int")

	err := ParseEnv(&cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}
