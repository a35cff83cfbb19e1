package config

const (
	defaultDataDir             = "~/.local/share/rosterly/data"
	defaultLogDir              = "~/.local/share/rosterly/logs"
	defaultReportDir           = "~/.local/share/rosterly/reports"
	defaultOverridesPath       = "~/.config/rosterly/overrides.json"
	defaultConfidenceThreshold = 50
	defaultPreferCohort        = true
	defaultAllocatorAttempts   = 100
	defaultLogLevel            = "info"
	defaultLogFormat           = "console"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir:       defaultDataDir,
			LogDir:        defaultLogDir,
			ReportDir:     defaultReportDir,
			OverridesPath: defaultOverridesPath,
		},
		Matching: Matching{
			ConfidenceThreshold: defaultConfidenceThreshold,
			PreferCohort:        defaultPreferCohort,
		},
		Allocator: Allocator{
			MaxAttempts: defaultAllocatorAttempts,
		},
		Logging: Logging{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
	}
}
