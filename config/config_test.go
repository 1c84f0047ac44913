package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	if err := c.Load(nil); err != nil {
		t.Fatal(err)
	}
	if c.DefaultAlgorithm != "perfect_hash" {
		t.Errorf("default algorithm = %q, want perfect_hash", c.DefaultAlgorithm)
	}
	if c.DefaultSimulations != 100000 {
		t.Errorf("default simulations = %d, want 100000", c.DefaultSimulations)
	}
}

func TestLoadFlagOverridesDefault(t *testing.T) {
	var c Config
	if err := c.Load([]string{"-algorithm", "naive", "-num-workers", "4"}); err != nil {
		t.Fatal(err)
	}
	if c.DefaultAlgorithm != "naive" {
		t.Errorf("algorithm = %q, want naive", c.DefaultAlgorithm)
	}
	if c.DefaultWorkers != 4 {
		t.Errorf("num-workers = %d, want 4", c.DefaultWorkers)
	}
}

func TestLoadYAMLOverlayAppliesUnsetFlags(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pokerequity.yaml")
	contents := "algorithm: two_plus_two\nnum-workers: 8\n"
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
	var c Config
	if err := c.Load([]string{"-config-file", path}); err != nil {
		t.Fatal(err)
	}
	if c.DefaultAlgorithm != "two_plus_two" {
		t.Errorf("algorithm = %q, want two_plus_two from YAML overlay", c.DefaultAlgorithm)
	}
	if c.DefaultWorkers != 8 {
		t.Errorf("num-workers = %d, want 8 from YAML overlay", c.DefaultWorkers)
	}
}

func TestLoadYAMLOverlayDoesNotClobberExplicitFlag(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pokerequity.yaml")
	if err := os.WriteFile(path, []byte("algorithm: two_plus_two\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	var c Config
	if err := c.Load([]string{"-config-file", path, "-algorithm", "naive"}); err != nil {
		t.Fatal(err)
	}
	if c.DefaultAlgorithm != "naive" {
		t.Errorf("algorithm = %q, explicit flag should win over YAML overlay", c.DefaultAlgorithm)
	}
}
