package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	var c *Config
	if got := c.GetVarianceFloor(); got != 1e-3 {
		t.Errorf("GetVarianceFloor() = %g, want 1e-3", got)
	}
	if got := c.GetMonteCarloSamples(); got != 100 {
		t.Errorf("GetMonteCarloSamples() = %d, want 100", got)
	}
	mean, variance := c.GetEmptyMapDistance()
	if mean != 1e9 || variance != 1e-3 {
		t.Errorf("GetEmptyMapDistance() = (%g, %g), want (1e9, 1e-3)", mean, variance)
	}
}

func TestLoadOverridesOnlySetFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tuning.json")
	if err := os.WriteFile(path, []byte(`{"variance_floor": 0.01}`), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := cfg.GetVarianceFloor(); got != 0.01 {
		t.Errorf("GetVarianceFloor() = %g, want 0.01", got)
	}
	if got := cfg.GetMonteCarloSamples(); got != 100 {
		t.Errorf("GetMonteCarloSamples() = %d, want 100 (untouched default)", got)
	}
}

func TestLoadRejectsNonJSONExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tuning.yaml")
	if err := os.WriteFile(path, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("Load() expected error for non-.json extension")
	}
}

func TestValidateRejectsNonPositiveVarianceFloor(t *testing.T) {
	zero := 0.0
	c := &Config{VarianceFloor: &zero}
	if err := c.Validate(); err == nil {
		t.Fatal("Validate() expected error for zero variance_floor")
	}
}
