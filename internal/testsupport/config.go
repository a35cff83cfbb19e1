package testsupport

import (
	"path/filepath"
	"testing"

	"rosterly/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.ReportDir = filepath.Join(base, "reports")
	cfg.Paths.OverridesPath = ""

	for _, opt := range opts {
		opt(&cfg)
	}

	return &cfg
}

// WithConfidenceThreshold overrides the matching acceptance threshold.
func WithConfidenceThreshold(threshold int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Matching.ConfidenceThreshold = threshold
	}
}

// WithCohortPreference toggles the cohort tie-break.
func WithCohortPreference(enabled bool) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Matching.PreferCohort = enabled
	}
}

// WithOverridesPath points the config at a manual override catalog.
func WithOverridesPath(path string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Paths.OverridesPath = path
	}
}
