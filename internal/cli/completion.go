package cli

import (
	"fmt"
	"strings"

	"github.com/AndreyAkinshin/paralog/internal/errors"
	"github.com/AndreyAkinshin/paralog/internal/output"
)

// completionEntry is a word offered by shell completion.
type completionEntry struct {
	Name string
	Desc string
}

var completionCommands = []completionEntry{
	{"merge", "Merge worker reports"},
	{"tree", "Print the merged suite tree"},
	{"config", "Configuration utilities"},
	{"init", "Create a configuration file"},
	{"completion", "Generate shell completion"},
	{"version", "Show version information"},
	{"help", "Show help"},
}

var completionGlobalFlags = []completionEntry{
	{"--quiet", "Minimal output"},
	{"--verbose", "Log report discovery and merging"},
	{"--config", "Use this configuration file"},
	{"--no-color", "Disable colored output"},
	{"--help", "Show help"},
	{"--version", "Show version"},
}

var completionMergeFlags = []completionEntry{
	{"--format", "Output format"},
	{"--log-junit", "Write the merged JUnit log"},
	{"--remove-logs", "Delete worker reports after merging"},
	{"--no-feedback", "Do not print the progress line"},
}

var completionShells = []string{"bash", "zsh", "fish"}

func completionNames(entries []completionEntry) string {
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	return strings.Join(names, " ")
}

// cmdCompletion generates shell completion scripts.
func cmdCompletion(args []string) int {
	shell := ""
	alias := ""

	for _, arg := range args {
		switch {
		case arg == "-h" || arg == "--help":
			printCompletionUsage()
			return 0
		case strings.HasPrefix(arg, "--alias="):
			alias = strings.TrimPrefix(arg, "--alias=")
		case arg == "--alias":
			out.ErrorPrefix("completion: --alias requires a value (--alias=<name>)")
			return errors.ExitConfigError
		case strings.HasPrefix(arg, "-"):
			out.ErrorPrefix("completion: unknown flag: %s", arg)
			return errors.ExitConfigError
		default:
			if shell != "" {
				out.ErrorPrefix("completion: unexpected argument: %s", arg)
				return errors.ExitConfigError
			}
			shell = arg
		}
	}

	if shell == "" {
		out.ErrorPrefix("completion: shell required (%s)", strings.Join(completionShells, ", "))
		return errors.ExitConfigError
	}

	cmdName := "paralog"
	if alias != "" {
		cmdName = alias
	}

	var script string
	switch shell {
	case "bash":
		script = generateBashCompletion(cmdName)
	case "zsh":
		script = generateZshCompletion(cmdName)
	case "fish":
		script = generateFishCompletion(cmdName)
	default:
		out.ErrorPrefix("completion: unsupported shell %q (use bash, zsh, or fish)", shell)
		return errors.ExitConfigError
	}

	fmt.Fprint(out.Out(), script)
	return 0
}

// printCompletionUsage prints the help text for the completion command.
func printCompletionUsage() {
	w := output.New()

	w.HelpTitle("paralog completion - generate shell completion scripts")

	w.HelpSection("Usage:")
	w.HelpUsage("paralog completion <shell> [--alias=<name>]")

	w.HelpSection("Arguments:")
	w.HelpFlag("<shell>", "Shell type: bash, zsh, or fish", helpFlagWidthShort)

	w.HelpSection("Options:")
	w.HelpFlag("--alias=<name>", "Generate completion for command alias", 14)
	w.HelpFlag("-h, --help", "Show this help", 14)

	w.HelpSection("Installation:")
	w.Println("  Bash:  eval \"$(paralog completion bash)\"")
	w.Println("  Zsh:   eval \"$(paralog completion zsh)\"")
	w.Println("  Fish:  paralog completion fish | source")
	w.Println("")
}

func generateBashCompletion(cmdName string) string {
	funcName := "_" + strings.ReplaceAll(cmdName, "-", "_") + "_completions"

	return fmt.Sprintf(`# %[1]s bash completion
# Add to ~/.bashrc: eval "$(%[1]s completion bash)"

%[2]s() {
    local cur prev words cword
    _init_completion || return

    local commands="%[3]s"
    local flags="%[4]s"
    local merge_flags="%[5]s"

    case "${prev}" in
        %[1]s)
            COMPREPLY=($(compgen -W "${commands} ${flags}" -- "${cur}"))
            return
            ;;
        config)
            COMPREPLY=($(compgen -W "validate" -- "${cur}"))
            return
            ;;
        completion)
            COMPREPLY=($(compgen -W "%[6]s" -- "${cur}"))
            return
            ;;
        --format)
            COMPREPLY=($(compgen -W "text json" -- "${cur}"))
            return
            ;;
        --config|--log-junit)
            _filedir
            return
            ;;
    esac

    if [[ "${cur}" == -* ]]; then
        COMPREPLY=($(compgen -W "${flags} ${merge_flags} --depth" -- "${cur}"))
        return
    fi

    _filedir xml
}

complete -F %[2]s %[1]s
`, cmdName, funcName,
		completionNames(completionCommands),
		completionNames(completionGlobalFlags),
		completionNames(completionMergeFlags),
		strings.Join(completionShells, " "))
}

func generateZshCompletion(cmdName string) string {
	funcName := "_" + strings.ReplaceAll(cmdName, "-", "_")

	var sb strings.Builder
	fmt.Fprintf(&sb, "#compdef %s\n# %s zsh completion\n# Add to ~/.zshrc: eval \"$(%s completion zsh)\"\n\n", cmdName, cmdName, cmdName)
	fmt.Fprintf(&sb, "%s() {\n    local -a commands merge_flags\n\n    commands=(\n", funcName)
	for _, c := range completionCommands {
		fmt.Fprintf(&sb, "        '%s:%s'\n", c.Name, c.Desc)
	}
	sb.WriteString("    )\n\n    merge_flags=(\n")
	for _, f := range completionMergeFlags {
		fmt.Fprintf(&sb, "        '%s[%s]'\n", f.Name, f.Desc)
	}
	sb.WriteString(`    )

    if (( CURRENT == 2 )); then
        _describe -t commands 'command' commands
        return
    fi

    case "${words[2]}" in
        config)
            _values 'subcommand' 'validate[Validate configuration]'
            ;;
        completion)
            _values 'shell' bash zsh fish
            ;;
        merge)
            _arguments -s $merge_flags[@] '*:report:_files -g "*.xml"'
            ;;
        tree)
            _arguments -s '--depth[Print at most n levels]' '*:report:_files -g "*.xml"'
            ;;
    esac
}
`)
	fmt.Fprintf(&sb, "\ncompdef %s %s\n", funcName, cmdName)
	return sb.String()
}

func generateFishCompletion(cmdName string) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# %s fish completion\n# Add to config: %s completion fish | source\n\n", cmdName, cmdName)

	sb.WriteString("# Commands\n")
	for _, c := range completionCommands {
		fmt.Fprintf(&sb, "complete -c %s -f -n '__fish_use_subcommand' -a '%s' -d '%s'\n", cmdName, c.Name, c.Desc)
	}

	sb.WriteString("\n# Global flags\n")
	for _, f := range completionGlobalFlags {
		fmt.Fprintf(&sb, "complete -c %s -l %s -d '%s'\n", cmdName, strings.TrimPrefix(f.Name, "--"), f.Desc)
	}

	sb.WriteString("\n# merge flags\n")
	for _, f := range completionMergeFlags {
		fmt.Fprintf(&sb, "complete -c %s -n '__fish_seen_subcommand_from merge' -l %s -d '%s'\n", cmdName, strings.TrimPrefix(f.Name, "--"), f.Desc)
	}
	fmt.Fprintf(&sb, "complete -c %s -n '__fish_seen_subcommand_from merge' -l format -xa 'text json'\n", cmdName)
	fmt.Fprintf(&sb, "complete -c %s -n '__fish_seen_subcommand_from tree' -l depth -x -d 'Print at most n levels'\n", cmdName)

	sb.WriteString("\n# Subcommands\n")
	fmt.Fprintf(&sb, "complete -c %s -f -n '__fish_seen_subcommand_from config' -a 'validate' -d 'Validate configuration'\n", cmdName)
	fmt.Fprintf(&sb, "complete -c %s -f -n '__fish_seen_subcommand_from completion' -a '%s'\n", cmdName, strings.Join(completionShells, " "))

	return sb.String()
}
