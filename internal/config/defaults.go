package config

import "runtime"

// Default configuration values.
const (
	DefaultReportsDirectory = ".paralog/reports"
	DefaultReportsPattern   = "*.xml"
	DefaultOutputFormat     = string(FormatText)
)

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// applyDefaults fills in default values for unset configuration fields.
func applyDefaults(cfg *Config) {
	applyReportsDefaults(cfg)
	applyOutputDefaults(cfg)
}

func applyReportsDefaults(cfg *Config) {
	if cfg.Reports == nil {
		cfg.Reports = &ReportsConfig{}
	}
	if cfg.Reports.Directory == "" {
		cfg.Reports.Directory = DefaultReportsDirectory
	}
	if cfg.Reports.Pattern == "" {
		cfg.Reports.Pattern = DefaultReportsPattern
	}
	if cfg.Reports.Parallel == 0 {
		cfg.Reports.Parallel = runtime.NumCPU()
	}
}

func applyOutputDefaults(cfg *Config) {
	if cfg.Output == nil {
		cfg.Output = &OutputConfig{}
	}
	if cfg.Output.Format == "" {
		cfg.Output.Format = DefaultOutputFormat
	}
	if cfg.Output.Feedback == nil {
		show := true
		cfg.Output.Feedback = &show
	}
}
