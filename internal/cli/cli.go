// Package cli provides command-line interface functionality for paralog.
package cli

import (
	"fmt"
	"strings"

	"github.com/AndreyAkinshin/paralog/internal/errors"
	"github.com/AndreyAkinshin/paralog/internal/output"
	"github.com/AndreyAkinshin/paralog/internal/project"
)

// Version is set at build time.
var Version = "dev"

// wantsHelp returns true if args contain -h or --help before any -- separator.
func wantsHelp(args []string) bool {
	for _, arg := range args {
		if arg == "-h" || arg == "--help" {
			return true
		}
		if arg == "--" {
			return false
		}
	}
	return false
}

// Run executes the CLI with the given arguments and returns an exit code.
func Run(args []string) int {
	if len(args) == 0 {
		printUsage()
		return 0
	}

	switch args[0] {
	case "-h", "--help", "help":
		printUsage()
		return 0
	case "--version", "version":
		out.Println("paralog %s", Version)
		return 0
	}

	opts, remaining, err := parseGlobalFlags(args)
	if err != nil {
		out.ErrorPrefix("%v", err)
		return errors.ExitConfigError
	}

	// Re-extract command after flag parsing
	if len(remaining) == 0 {
		printUsage()
		return 0
	}
	cmd := remaining[0]
	cmdArgs := remaining[1:]

	switch cmd {
	case "merge":
		return cmdMerge(cmdArgs, opts)
	case "tree":
		return cmdTree(cmdArgs, opts)
	case "config":
		return cmdConfig(cmdArgs, opts)
	case "init":
		return cmdInit(cmdArgs)
	case "completion":
		return cmdCompletion(cmdArgs)
	case "help":
		printUsage()
		return 0
	case "version":
		out.Println("paralog %s", Version)
		return 0
	default:
		out.ErrorPrefix("unknown command %q", cmd)
		out.Hint("Run 'paralog help' for usage.")
		return errors.ExitConfigError
	}
}

// GlobalOptions holds parsed global flags.
type GlobalOptions struct {
	Quiet      bool
	Verbose    bool
	NoColor    bool
	ConfigPath string
}

// parseGlobalFlags manually parses global flags from arguments.
//
// Global flags may appear anywhere in the argument list, so command flags and
// report paths are passed through in order.
func parseGlobalFlags(args []string) (*GlobalOptions, []string, error) {
	opts := &GlobalOptions{}
	var remaining []string

	i := 0
	for i < len(args) {
		arg := args[i]

		switch {
		case arg == "-q" || arg == "--quiet":
			opts.Quiet = true
			i++
		case arg == "-v" || arg == "--verbose":
			opts.Verbose = true
			i++
		case arg == "--no-color":
			opts.NoColor = true
			i++
		case arg == "--config":
			if i+1 >= len(args) {
				return nil, nil, fmt.Errorf("--config requires a value")
			}
			opts.ConfigPath = args[i+1]
			i += 2
		case strings.HasPrefix(arg, "--config="):
			opts.ConfigPath = strings.TrimPrefix(arg, "--config=")
			if opts.ConfigPath == "" {
				return nil, nil, fmt.Errorf("--config requires a value")
			}
			i++
		case arg == "--":
			// Everything after -- is passed through
			remaining = append(remaining, args[i:]...)
			i = len(args)
		default:
			remaining = append(remaining, arg)
			i++
		}
	}

	if err := validateGlobalOptions(opts); err != nil {
		return nil, nil, err
	}

	applyVerbosityToOutput(opts)

	return opts, remaining, nil
}

// validateGlobalOptions checks that global options are valid.
func validateGlobalOptions(opts *GlobalOptions) error {
	if opts.Quiet && opts.Verbose {
		return fmt.Errorf("--quiet and --verbose are mutually exclusive")
	}
	return nil
}

func printUsage() {
	w := output.New()

	w.HelpTitle("paralog - merge JUnit reports from parallel test workers")

	w.HelpSection("Usage:")
	w.HelpUsage("paralog [global flags] <command> [args]")

	w.HelpSection("Commands:")
	w.HelpCommand("merge [report...]", "Merge worker reports and print the combined result", helpCommandWidth)
	w.HelpCommand("tree [report...]", "Print the merged suite tree", helpCommandWidth)
	w.HelpCommand("config validate", "Validate the configuration file", helpCommandWidth)
	w.HelpCommand("init", "Create "+project.ConfigFileName+" with defaults", helpCommandWidth)
	w.HelpCommand("completion <shell>", "Generate shell completion (bash, zsh, fish)", helpCommandWidth)
	w.HelpCommand("version", "Show version information", helpCommandWidth)
	w.HelpCommand("help", "Show this help", helpCommandWidth)

	printGlobalFlags(w)

	w.HelpSection("Examples:")
	w.HelpExample("paralog merge", "Merge every report in the configured directory")
	w.HelpExample("paralog merge --log-junit build/junit.xml var/w*.xml", "Merge the given reports and write one JUnit log")
	w.HelpExample("paralog merge --format json", "Print the merged result as JSON")
	w.HelpExample("paralog tree", "Show which suites the workers ran")
	w.Println("")
}

func printGlobalFlags(w *output.Writer) {
	w.HelpSection("Global Flags:")
	w.HelpFlag("-q, --quiet", "Minimal output (errors only)", helpFlagWidthGlobal)
	w.HelpFlag("-v, --verbose", "Log report discovery, parsing and merging", helpFlagWidthGlobal)
	w.HelpFlag("--config <path>", "Use this configuration file", helpFlagWidthGlobal)
	w.HelpFlag("--no-color", "Disable colored output", helpFlagWidthGlobal)
	w.HelpFlag("-h, --help", "Show this help", helpFlagWidthGlobal)
	w.HelpFlag("--version", "Show version", helpFlagWidthGlobal)

	w.HelpSection("Environment:")
	w.HelpEnvVar("NO_COLOR=1", "Disable colored output", 10)
}
