package integration

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bitrise-io/go-utils/v2/log"

	"github.com/AndreyAkinshin/paralog/internal/collect"
	"github.com/AndreyAkinshin/paralog/internal/config"
	"github.com/AndreyAkinshin/paralog/internal/errors"
	"github.com/AndreyAkinshin/paralog/internal/project"
)

func loadFixtureCopy(t *testing.T, root string) error {
	t.Helper()
	c := collect.NewOs(log.NewLogger(), 2)
	paths, err := c.Discover(filepath.Join(root, "reports"), "worker-*.xml")
	if err != nil {
		return err
	}
	_, err = c.Load(context.Background(), paths)
	return err
}

func TestCrashedWorkerFailsTheMerge(t *testing.T) {
	t.Parallel()
	root := copyFixture(t)
	if err := writeFile(filepath.Join(root, "reports", "worker-4.xml"), ""); err != nil {
		t.Fatal(err)
	}

	err := loadFixtureCopy(t, root)
	if err == nil {
		t.Fatal("expected error for an empty worker report")
	}
	if !errors.IsKind(err, errors.KindCrashedWorker) {
		t.Errorf("error = %v, want crashed worker", err)
	}
	if errors.GetExitCode(err) != errors.ExitInputError {
		t.Errorf("GetExitCode() = %d, want %d", errors.GetExitCode(err), errors.ExitInputError)
	}
	if !strings.Contains(err.Error(), "worker-4.xml") {
		t.Errorf("error = %q, want to name the report", err.Error())
	}
}

func TestMalformedWorkerReport(t *testing.T) {
	t.Parallel()
	root := copyFixture(t)
	if err := writeFile(filepath.Join(root, "reports", "worker-2.xml"), "<testsuites><testsuite name="); err != nil {
		t.Fatal(err)
	}

	err := loadFixtureCopy(t, root)
	if !errors.IsKind(err, errors.KindInvalidInput) {
		t.Errorf("error = %v, want invalid input", err)
	}
}

func TestEveryBadReportIsReported(t *testing.T) {
	t.Parallel()
	root := copyFixture(t)
	if err := writeFile(filepath.Join(root, "reports", "worker-1.xml"), ""); err != nil {
		t.Fatal(err)
	}
	if err := writeFile(filepath.Join(root, "reports", "worker-3.xml"), ""); err != nil {
		t.Fatal(err)
	}

	err := loadFixtureCopy(t, root)
	if err == nil {
		t.Fatal("expected error for two empty reports")
	}
	for _, name := range []string{"worker-1.xml", "worker-3.xml"} {
		if !strings.Contains(err.Error(), name) {
			t.Errorf("error = %q, want to mention %s", err.Error(), name)
		}
	}
}

func TestMissingReportsDirectory(t *testing.T) {
	t.Parallel()
	root := copyFixture(t)
	if err := os.RemoveAll(filepath.Join(root, "reports")); err != nil {
		t.Fatal(err)
	}

	err := loadFixtureCopy(t, root)
	if !errors.IsKind(err, errors.KindInvalidInput) {
		t.Errorf("error = %v, want invalid input", err)
	}
}

func TestProjectNotFoundError(t *testing.T) {
	_, err := project.LoadProjectFrom(filepath.Join(t.TempDir(), "nonexistent"))
	if err == nil {
		t.Error("expected error when loading from nonexistent path")
	}
}

func TestConfigFileMissingError(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), ".paralog.yml"))
	if err == nil {
		t.Error("expected error when loading missing config file")
	}
}

func TestConfigInvalidYAMLError(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".paralog.yml")
	if err := writeFile(path, "reports: [unclosed"); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	if _, _, err := config.LoadAndValidate(path); err == nil {
		t.Error("expected error when loading invalid YAML config")
	}
}

func TestConfigSchemaViolation(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".paralog.yml")
	if err := writeFile(path, "reports:\n  parallel: many\n"); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	_, _, err := config.LoadAndValidate(path)
	if err == nil {
		t.Fatal("expected schema error for non-integer parallel")
	}
	if !strings.Contains(err.Error(), "config validation failed") {
		t.Errorf("error = %q, want schema validation error", err.Error())
	}
}

// Helper functions

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0644)
}
