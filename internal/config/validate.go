package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks a configuration for errors and returns warnings for non-fatal issues.
func Validate(cfg *Config) (warnings []string, err error) {
	if err := validateReports(cfg.Reports); err != nil {
		return nil, err
	}

	if err := validateOutput(cfg.Output); err != nil {
		return nil, err
	}

	return mergedLogWarnings(cfg), nil
}

func validateReports(r *ReportsConfig) error {
	if r == nil {
		return nil
	}
	if r.Parallel < 0 {
		return &ValidationError{Field: "reports.parallel", Message: "must be zero or positive"}
	}
	if err := ValidatePattern(r.Pattern); err != nil {
		return err
	}
	return nil
}

func validateOutput(o *OutputConfig) error {
	if o == nil {
		return nil
	}
	if err := ValidateFormat(o.Format); err != nil {
		return err
	}
	if o.JUnit != "" && strings.HasSuffix(o.JUnit, "/") {
		return &ValidationError{Field: "output.junit", Message: "must be a file path, not a directory"}
	}
	return nil
}

// mergedLogWarnings warns when the merged JUnit log would be picked up as a
// worker report by the next run.
func mergedLogWarnings(cfg *Config) []string {
	if cfg.Reports == nil || cfg.Output == nil || cfg.Output.JUnit == "" {
		return nil
	}
	glob := filepath.Join(cfg.Reports.Directory, cfg.Reports.Pattern)
	if ok, _ := filepath.Match(glob, filepath.Clean(cfg.Output.JUnit)); ok {
		return []string{fmt.Sprintf("output.junit %q matches reports %q and will be read as a worker report next time", cfg.Output.JUnit, glob)}
	}
	return nil
}

// ValidateFormat checks if an output format name is valid. Empty means default.
func ValidateFormat(format string) error {
	switch OutputFormat(format) {
	case "", FormatText, FormatJSON:
		return nil
	}
	return &ValidationError{
		Field:   "output.format",
		Message: fmt.Sprintf("must be %q or %q, got %q", FormatText, FormatJSON, format),
	}
}

// ValidatePattern checks if a report file pattern is a valid glob. Empty means default.
func ValidatePattern(pattern string) error {
	if pattern == "" {
		return nil
	}
	if strings.ContainsRune(pattern, filepath.Separator) || strings.Contains(pattern, "/") {
		return &ValidationError{Field: "reports.pattern", Message: "must match file names only, not paths"}
	}
	if _, err := filepath.Match(pattern, ""); err != nil {
		return &ValidationError{Field: "reports.pattern", Message: fmt.Sprintf("invalid glob: %v", err)}
	}
	return nil
}
