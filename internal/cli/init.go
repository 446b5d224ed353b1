package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/AndreyAkinshin/paralog/internal/config"
	"github.com/AndreyAkinshin/paralog/internal/errors"
	"github.com/AndreyAkinshin/paralog/internal/output"
	"github.com/AndreyAkinshin/paralog/internal/project"
)

// configTemplate is written by init. Every key is optional.
var configTemplate = fmt.Sprintf(`# paralog configuration

reports:
  # Directory the test workers write their JUnit reports to.
  directory: %s
  # Glob matched against file names in the directory.
  pattern: "%s"
  # Delete worker reports after a successful merge.
  remove: false
  # Reports parsed concurrently (0 uses every CPU).
  parallel: 0

output:
  # text or json
  format: %s
  # Print one progress symbol per test case.
  feedback: true
  # Write the merged tree as one JUnit log (empty disables).
  junit: ""
`, config.DefaultReportsDirectory, config.DefaultReportsPattern, config.DefaultOutputFormat)

// cmdInit creates .paralog.yml and the reports directory in the working
// directory. Existing files are left untouched.
func cmdInit(args []string) int {
	if wantsHelp(args) {
		printInitUsage()
		return 0
	}
	if len(args) > 0 {
		if strings.HasPrefix(args[0], "-") {
			out.ErrorPrefix("init: unknown option %q", args[0])
		} else {
			out.ErrorPrefix("init: unexpected argument %q", args[0])
		}
		return errors.ExitConfigError
	}

	cwd, err := os.Getwd()
	if err != nil {
		out.ErrorPrefix("%v", err)
		return errors.ExitRuntimeError
	}

	var created []string

	configPath := filepath.Join(cwd, project.ConfigFileName)
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := os.WriteFile(configPath, []byte(configTemplate), 0644); err != nil {
			out.ErrorPrefix("%v", err)
			return errors.ExitRuntimeError
		}
		created = append(created, project.ConfigFileName)
	}

	reportsDir := filepath.Join(cwd, config.DefaultReportsDirectory)
	if _, err := os.Stat(reportsDir); os.IsNotExist(err) {
		if err := os.MkdirAll(reportsDir, 0755); err != nil {
			out.ErrorPrefix("%v", err)
			return errors.ExitRuntimeError
		}
		created = append(created, config.DefaultReportsDirectory+"/")
	}

	if len(created) == 0 {
		out.Info("Nothing to do: %s already exists.", project.ConfigFileName)
		return 0
	}

	out.Success("Initialized paralog in %s", cwd)
	out.List(created)
	out.Println("")
	out.Hint("Point each test worker's JUnit output at %s/, then run 'paralog merge'.", config.DefaultReportsDirectory)
	return 0
}

// printInitUsage prints the help text for the init command.
func printInitUsage() {
	w := output.New()

	w.HelpTitle("paralog init - create a configuration file")

	w.HelpSection("Usage:")
	w.HelpUsage("paralog init")

	w.HelpSection("Description:")
	w.Println("  Writes %s with every option and its default value, and creates", project.ConfigFileName)
	w.Println("  the reports directory. Files that already exist are not changed.")

	w.HelpSection("Options:")
	w.HelpFlag("-h, --help", "Show this help", helpFlagWidthShort)
	w.Println("")
}
