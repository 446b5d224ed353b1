package project

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/AndreyAkinshin/paralog/internal/config"
)

func writeProjectConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFindRootFrom_Found(t *testing.T) {
	root := t.TempDir()
	writeProjectConfig(t, root, ConfigFileName, "reports:\n  directory: out\n")

	found, err := FindRootFrom(root)
	if err != nil {
		t.Fatalf("FindRootFrom() error = %v", err)
	}
	if found != root {
		t.Errorf("FindRootFrom() = %q, want %q", found, root)
	}
}

func TestFindRootFrom_FoundFromSubdir(t *testing.T) {
	root := t.TempDir()
	writeProjectConfig(t, root, ConfigFileName, "")

	subdir := filepath.Join(root, "tests", "Unit", "deep")
	if err := os.MkdirAll(subdir, 0755); err != nil {
		t.Fatal(err)
	}

	found, err := FindRootFrom(subdir)
	if err != nil {
		t.Fatalf("FindRootFrom() error = %v", err)
	}
	if found != root {
		t.Errorf("FindRootFrom() = %q, want %q", found, root)
	}
}

func TestFindRootFrom_AltName(t *testing.T) {
	root := t.TempDir()
	writeProjectConfig(t, root, AltConfigFileName, "")

	found, err := FindRootFrom(root)
	if err != nil {
		t.Fatalf("FindRootFrom() error = %v", err)
	}
	if found != root {
		t.Errorf("FindRootFrom() = %q, want %q", found, root)
	}
}

func TestFindRootFrom_IgnoresDirectoryWithConfigName(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, ConfigFileName), 0755); err != nil {
		t.Fatal(err)
	}

	if _, err := FindRootFrom(root); err != ErrNoProjectRoot {
		t.Errorf("FindRootFrom() error = %v, want ErrNoProjectRoot", err)
	}
}

func TestFindRootFrom_NotFound(t *testing.T) {
	dir := t.TempDir()

	_, err := FindRootFrom(dir)
	if err != ErrNoProjectRoot {
		t.Errorf("FindRootFrom() error = %v, want ErrNoProjectRoot", err)
	}
}

func TestLoadProjectFrom_Minimal(t *testing.T) {
	root := t.TempDir()
	path := writeProjectConfig(t, root, ConfigFileName, "reports:\n  directory: build/reports\n")

	proj, err := LoadProjectFrom(root)
	if err != nil {
		t.Fatalf("LoadProjectFrom() error = %v", err)
	}
	if proj.Root != root {
		t.Errorf("Project.Root = %q, want %q", proj.Root, root)
	}
	if proj.ConfigPath != path {
		t.Errorf("Project.ConfigPath = %q, want %q", proj.ConfigPath, path)
	}
	if got, want := proj.ReportsDirectory(), filepath.Join(root, "build", "reports"); got != want {
		t.Errorf("ReportsDirectory() = %q, want %q", got, want)
	}
	if proj.Config.Reports.Pattern != config.DefaultReportsPattern {
		t.Errorf("Reports.Pattern = %q, want default %q", proj.Config.Reports.Pattern, config.DefaultReportsPattern)
	}
}

func TestLoadProjectFrom_NoConfig(t *testing.T) {
	_, err := LoadProjectFrom(t.TempDir())
	if !errors.Is(err, ErrNoProjectRoot) {
		t.Errorf("LoadProjectFrom() error = %v, want ErrNoProjectRoot", err)
	}
}

func TestLoadProjectFile_InvalidConfig(t *testing.T) {
	root := t.TempDir()
	path := writeProjectConfig(t, root, "custom.yml", "output:\n  format: xml\n")

	_, err := LoadProjectFile(path)
	if err == nil {
		t.Fatal("LoadProjectFile() expected error for invalid format")
	}
	if !strings.Contains(err.Error(), "failed to load configuration") {
		t.Errorf("error = %q, want to contain %q", err.Error(), "failed to load configuration")
	}
}

func TestLoadProjectFile_Warnings(t *testing.T) {
	root := t.TempDir()
	path := writeProjectConfig(t, root, "custom.yml", "verbose: true\n")

	proj, err := LoadProjectFile(path)
	if err != nil {
		t.Fatalf("LoadProjectFile() error = %v", err)
	}
	if len(proj.Warnings) != 1 {
		t.Errorf("Warnings = %v, want 1", proj.Warnings)
	}
}

func TestLoadProject_DefaultsWithoutConfig(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	proj, err := LoadProject()
	if err != nil {
		t.Fatalf("LoadProject() error = %v", err)
	}
	if proj.ConfigPath != "" {
		t.Errorf("ConfigPath = %q, want empty", proj.ConfigPath)
	}
	cwd, _ := os.Getwd()
	if got, want := proj.ReportsDirectory(), filepath.Join(cwd, config.DefaultReportsDirectory); got != want {
		t.Errorf("ReportsDirectory() = %q, want %q", got, want)
	}
	if proj.JUnitPath() != "" {
		t.Errorf("JUnitPath() = %q, want empty", proj.JUnitPath())
	}
}

func TestProject_Resolve(t *testing.T) {
	root := filepath.FromSlash("/project/root")
	proj := &Project{Root: root, Config: config.Default()}
	proj.Config.Output.JUnit = "out/merged.xml"

	if got, want := proj.JUnitPath(), filepath.Join(root, "out", "merged.xml"); got != want {
		t.Errorf("JUnitPath() = %q, want %q", got, want)
	}

	abs, err := filepath.Abs(filepath.FromSlash("/tmp/reports"))
	if err != nil {
		t.Fatal(err)
	}
	if got := proj.Resolve(abs); got != abs {
		t.Errorf("Resolve(%q) = %q, want unchanged", abs, got)
	}
}
