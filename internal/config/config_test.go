package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"rosterly/internal/config"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, "")

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to be reported as existing")
	}
	if resolved != path {
		t.Fatalf("resolved path = %q, want %q", resolved, path)
	}
	if cfg.Matching.ConfidenceThreshold != 50 {
		t.Fatalf("confidence threshold = %d, want 50", cfg.Matching.ConfidenceThreshold)
	}
	if cfg.Allocator.MaxAttempts != 100 {
		t.Fatalf("allocator attempts = %d, want 100", cfg.Allocator.MaxAttempts)
	}
	if cfg.Logging.Format != "console" {
		t.Fatalf("log format = %q, want console", cfg.Logging.Format)
	}
}

func TestLoadExpandsPaths(t *testing.T) {
	base := t.TempDir()
	path := writeConfig(t, "[paths]\ndata_dir = \""+base+"/data\"\n")

	cfg, _, _, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !filepath.IsAbs(cfg.Paths.DataDir) {
		t.Fatalf("data dir not absolute: %q", cfg.Paths.DataDir)
	}
	if got := cfg.DatabasePath(); !strings.HasSuffix(got, filepath.Join("data", "records.db")) {
		t.Fatalf("unexpected database path: %q", got)
	}
}

func TestLoadRejectsBadThreshold(t *testing.T) {
	path := writeConfig(t, "[matching]\nconfidence_threshold = 150\n")

	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected validation error for threshold above 100")
	}
}

func TestLoadRejectsBadLogFormat(t *testing.T) {
	path := writeConfig(t, "[logging]\nformat = \"yaml\"\n")

	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected validation error for unsupported log format")
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "absent.toml")

	cfg, _, exists, err := config.Load(missing)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if exists {
		t.Fatal("expected exists=false for missing file")
	}
	if cfg.Matching.ConfidenceThreshold != 50 {
		t.Fatalf("defaults not applied: %+v", cfg.Matching)
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("sample config should load cleanly: %v", err)
	}
	if !exists {
		t.Fatal("sample config missing after CreateSample")
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("sample config should validate: %v", err)
	}
}
