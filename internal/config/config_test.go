package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".paralog.yml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_ValidMinimal(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, "reports:\n  directory: build/junit\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Reports == nil || cfg.Reports.Directory != "build/junit" {
		t.Errorf("Reports.Directory = %v, want %q", cfg.Reports, "build/junit")
	}
	if cfg.Output != nil {
		t.Errorf("Output = %+v, want nil before defaults", cfg.Output)
	}
}

func TestLoad_ValidFull(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, `
reports:
  directory: var/paratest
  pattern: "worker-*.xml"
  remove: true
  parallel: 4
output:
  format: json
  feedback: false
  junit: var/junit.xml
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Reports.Pattern != "worker-*.xml" {
		t.Errorf("Reports.Pattern = %q, want %q", cfg.Reports.Pattern, "worker-*.xml")
	}
	if !cfg.Reports.Remove {
		t.Error("Reports.Remove = false, want true")
	}
	if cfg.Reports.Parallel != 4 {
		t.Errorf("Reports.Parallel = %d, want 4", cfg.Reports.Parallel)
	}
	if cfg.Output.Format != "json" {
		t.Errorf("Output.Format = %q, want %q", cfg.Output.Format, "json")
	}
	if cfg.Output.ShowFeedback() {
		t.Error("Output.ShowFeedback() = true, want false")
	}
	if cfg.Output.JUnit != "var/junit.xml" {
		t.Errorf("Output.JUnit = %q, want %q", cfg.Output.JUnit, "var/junit.xml")
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	t.Parallel()
	_, err := Load("/nonexistent/path/.paralog.yml")
	if err == nil {
		t.Fatal("Load() expected error for missing file")
	}
	if !strings.Contains(err.Error(), "failed to read config file") {
		t.Errorf("error = %q, want to contain %q", err.Error(), "failed to read config file")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, "reports: [unterminated\n")

	_, err := Load(path)
	if err == nil {
		t.Fatal("Load() expected error for invalid YAML")
	}
	if !strings.Contains(err.Error(), "failed to parse config file") {
		t.Errorf("error = %q, want to contain %q", err.Error(), "failed to parse config file")
	}
}

func TestLoadWithDefaults(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, "output:\n  junit: merged.xml\n")

	cfg, err := LoadWithDefaults(path)
	if err != nil {
		t.Fatalf("LoadWithDefaults() error = %v", err)
	}
	if cfg.Reports.Directory != DefaultReportsDirectory {
		t.Errorf("Reports.Directory = %q, want %q", cfg.Reports.Directory, DefaultReportsDirectory)
	}
	if cfg.Reports.Pattern != DefaultReportsPattern {
		t.Errorf("Reports.Pattern = %q, want %q", cfg.Reports.Pattern, DefaultReportsPattern)
	}
	if cfg.Reports.Parallel != runtime.NumCPU() {
		t.Errorf("Reports.Parallel = %d, want %d", cfg.Reports.Parallel, runtime.NumCPU())
	}
	if cfg.Output.Format != DefaultOutputFormat {
		t.Errorf("Output.Format = %q, want %q", cfg.Output.Format, DefaultOutputFormat)
	}
	if !cfg.Output.ShowFeedback() {
		t.Error("Output.ShowFeedback() = false, want true")
	}
	if cfg.Output.JUnit != "merged.xml" {
		t.Errorf("Output.JUnit = %q, want %q", cfg.Output.JUnit, "merged.xml")
	}
}

func TestDefault(t *testing.T) {
	t.Parallel()
	cfg := Default()

	if cfg.Reports.Remove {
		t.Error("Reports.Remove = true, want false")
	}
	if cfg.Output.JUnit != "" {
		t.Errorf("Output.JUnit = %q, want empty", cfg.Output.JUnit)
	}
	if _, err := Validate(cfg); err != nil {
		t.Errorf("Validate(Default()) error = %v", err)
	}
}

func TestLoadAndValidate_Valid(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, "reports:\n  pattern: \"*.junit.xml\"\n")

	cfg, warnings, err := LoadAndValidate(path)
	if err != nil {
		t.Fatalf("LoadAndValidate() error = %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("warnings = %v, want none", warnings)
	}
	if cfg.Reports.Pattern != "*.junit.xml" {
		t.Errorf("Reports.Pattern = %q, want %q", cfg.Reports.Pattern, "*.junit.xml")
	}
}

func TestLoadAndValidate_EmptyFile(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, "")

	cfg, _, err := LoadAndValidate(path)
	if err != nil {
		t.Fatalf("LoadAndValidate() error = %v", err)
	}
	if cfg.Reports.Directory != DefaultReportsDirectory {
		t.Errorf("Reports.Directory = %q, want %q", cfg.Reports.Directory, DefaultReportsDirectory)
	}
}

func TestLoadAndValidate_SchemaViolation(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		content string
	}{
		{"format enum", "output:\n  format: xml\n"},
		{"parallel type", "reports:\n  parallel: many\n"},
		{"negative parallel", "reports:\n  parallel: -2\n"},
		{"section type", "reports: yes\n"},
		{"root type", "- reports\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			path := writeConfig(t, tt.content)

			_, _, err := LoadAndValidate(path)
			if err == nil {
				t.Fatal("LoadAndValidate() expected error")
			}
		})
	}
}

func TestLoadAndValidate_SemanticError(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, "reports:\n  pattern: \"reports/*.xml\"\n")

	_, _, err := LoadAndValidate(path)
	if err == nil {
		t.Fatal("LoadAndValidate() expected error")
	}
	verr, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("error type = %T, want *ValidationError", err)
	}
	if verr.Field != "reports.pattern" {
		t.Errorf("Field = %q, want %q", verr.Field, "reports.pattern")
	}
}

func TestLoadAndValidate_CombinesWarnings(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, `
colour: always
reports:
  directory: out
output:
  junit: out/merged.xml
`)

	_, warnings, err := LoadAndValidate(path)
	if err != nil {
		t.Fatalf("LoadAndValidate() error = %v", err)
	}
	if len(warnings) != 2 {
		t.Fatalf("warnings = %v, want 2", warnings)
	}
	if !strings.Contains(warnings[0], "colour") {
		t.Errorf("warnings[0] = %q, want unknown field warning", warnings[0])
	}
	if !strings.Contains(warnings[1], "output.junit") {
		t.Errorf("warnings[1] = %q, want merged log warning", warnings[1])
	}
}
