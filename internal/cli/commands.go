package cli

import (
	"fmt"

	"github.com/bitrise-io/go-utils/v2/log"

	"github.com/AndreyAkinshin/paralog/internal/config"
	"github.com/AndreyAkinshin/paralog/internal/errors"
	"github.com/AndreyAkinshin/paralog/internal/output"
	"github.com/AndreyAkinshin/paralog/internal/project"
)

// out is the shared output writer for CLI commands.
var out = output.New()

// logger receives diagnostic messages on stderr; debug level is enabled by --verbose.
var logger = newLogger(false)

func newLogger(debug bool) log.Logger {
	return log.NewLogger(log.WithOutput(out.Err()), log.WithDebugLog(debug))
}

// Help text alignment widths for consistent formatting.
const (
	helpFlagWidthShort  = 10 // Width for short flags like "-h, --help"
	helpFlagWidthGlobal = 15 // Width for global flags like "--config <path>"
	helpFlagWidthMerge  = 18 // Width for merge flags like "--log-junit <path>"
	helpCommandWidth    = 18 // Width for commands like "completion <shell>"
)

// applyVerbosityToOutput configures the output writer and logger based on verbosity settings.
func applyVerbosityToOutput(opts *GlobalOptions) {
	out.SetQuiet(opts.Quiet)
	if opts.NoColor {
		out.SetColor(false)
	}
	logger = newLogger(opts.Verbose)
}

// loadProject loads the configuration named by --config, or the one found by
// walking up from the working directory, and prints its warnings.
// Returns the project and exit code 0 on success, or nil and the config error exit code.
func loadProject(opts *GlobalOptions) (*project.Project, int) {
	var proj *project.Project
	var err error
	if opts.ConfigPath != "" {
		proj, err = project.LoadProjectFile(opts.ConfigPath)
	} else {
		proj, err = project.LoadProject()
	}
	if err != nil {
		out.ErrorPrefix("%v", err)
		return nil, errors.ExitConfigError
	}

	for _, w := range proj.Warnings {
		out.WarningSimple("%s", w)
	}
	if proj.ConfigPath != "" {
		logger.Debugf("Using configuration %s", proj.ConfigPath)
	} else {
		logger.Debugf("No %s found, using defaults", project.ConfigFileName)
	}
	return proj, 0
}

func cmdConfig(args []string, opts *GlobalOptions) int {
	if len(args) == 0 {
		out.ErrorPrefix("config: subcommand required (validate)")
		return errors.ExitConfigError
	}

	switch args[0] {
	case "validate":
		return cmdConfigValidate(opts)
	case "-h", "--help":
		printConfigUsage()
		return 0
	default:
		out.ErrorPrefix("config: unknown subcommand %q", args[0])
		return errors.ExitConfigError
	}
}

func cmdConfigValidate(opts *GlobalOptions) int {
	proj, exitCode := loadProject(opts)
	if proj == nil {
		return exitCode
	}

	if proj.ConfigPath == "" {
		out.ErrorPrefix("%v", project.ErrNoProjectRoot)
		return errors.ExitConfigError
	}

	cfg := proj.Config
	out.ValidationSuccess("Configuration is valid.")
	out.SummaryItem("File", proj.ConfigPath)
	out.SummaryItem("Reports", fmt.Sprintf("%s (%s)", proj.ReportsDirectory(), cfg.Reports.Pattern))
	out.SummaryItem("Parallel", fmt.Sprintf("%d", cfg.Reports.Parallel))
	out.SummaryItem("Format", cfg.Output.Format)
	if junit := proj.JUnitPath(); junit != "" {
		out.SummaryItem("JUnit log", junit)
	}
	if len(proj.Warnings) > 0 {
		out.SummaryItem("Warnings", fmt.Sprintf("%d", len(proj.Warnings)))
	}
	return 0
}

// printConfigUsage prints the help text for the config command.
func printConfigUsage() {
	w := output.New()

	w.HelpTitle("paralog config - configuration utilities")

	w.HelpSection("Usage:")
	w.HelpUsage("paralog config <subcommand>")

	w.HelpSection("Subcommands:")
	w.HelpCommand("validate", "Validate the configuration file", helpFlagWidthShort)

	w.HelpSection("Description:")
	w.Println("  The configuration is read from %s in the working directory or", project.ConfigFileName)
	w.Println("  the nearest parent directory, or from the file given with --config.")

	w.HelpSection("Options:")
	w.HelpFlag("-h, --help", "Show this help", helpFlagWidthShort)

	w.HelpSection("Examples:")
	w.HelpExample("paralog config validate", "Validate "+project.ConfigFileName)
	w.HelpExample("paralog --config ci/paralog.yml config validate", "Validate another file")
	w.Println("")
	w.Hint("Defaults: reports.directory=%s reports.pattern=%s output.format=%s",
		config.DefaultReportsDirectory, config.DefaultReportsPattern, config.DefaultOutputFormat)
}
