package cli

import (
	"strings"
	"testing"
)

func TestCmdCompletion_Shells(t *testing.T) {
	tests := []struct {
		shell string
		want  []string
	}{
		{"bash", []string{"complete -F _paralog_completions paralog", "merge tree config"}},
		{"zsh", []string{"#compdef paralog", "'merge:Merge worker reports'", "compdef _paralog paralog"}},
		{"fish", []string{"complete -c paralog -f -n '__fish_use_subcommand' -a 'tree'", "-l remove-logs"}},
	}

	for _, tt := range tests {
		t.Run(tt.shell, func(t *testing.T) {
			stdout, _ := captureOutput(t)
			if code := cmdCompletion([]string{tt.shell}); code != 0 {
				t.Fatalf("cmdCompletion([%s]) = %d, want 0", tt.shell, code)
			}
			for _, want := range tt.want {
				if !strings.Contains(stdout.String(), want) {
					t.Errorf("%s completion missing %q", tt.shell, want)
				}
			}
		})
	}
}

func TestCmdCompletion_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no args", nil},
		{"unknown shell", []string{"powershell"}},
		{"alias without value", []string{"--alias", "bash"}},
		{"unknown flag", []string{"bash", "--verbose"}},
		{"two shells", []string{"bash", "zsh"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			captureOutput(t)
			if code := cmdCompletion(tt.args); code != 2 {
				t.Errorf("cmdCompletion(%v) = %d, want 2", tt.args, code)
			}
		})
	}
}

func TestCmdCompletion_Help(t *testing.T) {
	for _, args := range [][]string{{"-h"}, {"--help"}} {
		if code := cmdCompletion(args); code != 0 {
			t.Errorf("cmdCompletion(%v) = %d, want 0", args, code)
		}
	}
}

func TestCmdCompletion_Alias(t *testing.T) {
	tests := []struct {
		shell string
		want  string
	}{
		{"bash", "complete -F _pl_completions pl"},
		{"zsh", "compdef _pl pl"},
		{"fish", "complete -c pl "},
	}

	for _, tt := range tests {
		t.Run(tt.shell, func(t *testing.T) {
			stdout, _ := captureOutput(t)
			if code := cmdCompletion([]string{tt.shell, "--alias=pl"}); code != 0 {
				t.Fatalf("cmdCompletion([%s --alias=pl]) = %d, want 0", tt.shell, code)
			}
			if !strings.Contains(stdout.String(), tt.want) {
				t.Errorf("%s alias completion missing %q", tt.shell, tt.want)
			}
		})
	}
}

func TestCompletion_ListsEveryCommand(t *testing.T) {
	for _, cmd := range []string{"merge", "tree", "config", "init", "completion", "version", "help"} {
		found := false
		for _, c := range completionCommands {
			if c.Name == cmd {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("completionCommands missing %q", cmd)
		}
	}
}
