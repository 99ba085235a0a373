package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	home := t.TempDir()
	oldHome := os.Getenv("HOME")
	defer os.Setenv("HOME", oldHome)
	os.Setenv("HOME", home)

	c, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.OutputDir != "data" {
		t.Fatalf("output_dir default = %q", c.OutputDir)
	}
	if c.Tuning != DefaultTuning() {
		t.Fatalf("tuning defaults = %+v", c.Tuning)
	}
}

func TestSaveAndReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	c.OutputDir = "/tmp/out"
	c.Workers = 4
	c.Tuning.TrendDeadband = 7.5
	if err := Save(c, path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	re, err := Load(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if re.OutputDir != "/tmp/out" || re.Workers != 4 {
		t.Fatalf("reloaded config = %+v", re)
	}
	if re.Tuning.TrendDeadband != 7.5 {
		t.Fatalf("trend_deadband = %v", re.Tuning.TrendDeadband)
	}
	// Untouched tuning keys keep defaults after the round-trip.
	if re.Tuning.SurgeFraction != 0.7 || re.Tuning.NegativeSentiment != -0.2 {
		t.Fatalf("tuning defaults lost: %+v", re.Tuning)
	}
}
