package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/AndreyAkinshin/paralog/internal/collect"
	"github.com/AndreyAkinshin/paralog/internal/errors"
	"github.com/AndreyAkinshin/paralog/internal/junit"
	"github.com/AndreyAkinshin/paralog/internal/logging"
	"github.com/AndreyAkinshin/paralog/internal/output"
)

type treeOptions struct {
	Depth   int // 0 means unlimited
	Reports []string
}

func parseTreeFlags(args []string) (*treeOptions, error) {
	opts := &treeOptions{}

	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--depth":
			if i+1 >= len(args) {
				return nil, fmt.Errorf("--depth requires a value")
			}
			i++
			if err := opts.setDepth(args[i]); err != nil {
				return nil, err
			}
		case strings.HasPrefix(arg, "--depth="):
			if err := opts.setDepth(strings.TrimPrefix(arg, "--depth=")); err != nil {
				return nil, err
			}
		case arg == "--":
			opts.Reports = append(opts.Reports, args[i+1:]...)
			return opts, nil
		case strings.HasPrefix(arg, "-") && arg != "-":
			return nil, fmt.Errorf("unknown flag %q", arg)
		default:
			opts.Reports = append(opts.Reports, arg)
		}
	}
	return opts, nil
}

func (o *treeOptions) setDepth(value string) error {
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return fmt.Errorf("invalid --depth value %q: must be a non-negative integer", value)
	}
	o.Depth = n
	return nil
}

// cmdTree prints the merged suite tree with the totals of every suite.
func cmdTree(args []string, opts *GlobalOptions) int {
	if wantsHelp(args) {
		printTreeUsage()
		return 0
	}

	proj, exitCode := loadProject(opts)
	if proj == nil {
		return exitCode
	}

	to, err := parseTreeFlags(args)
	if err != nil {
		out.ErrorPrefix("tree: %v", err)
		return errors.ExitConfigError
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	c := collect.NewOs(logger, proj.Config.Reports.Parallel)
	readers, err := loadReaders(ctx, c, proj, to.Reports)
	if err != nil {
		out.ErrorPrefix("%v", err)
		return errors.GetExitCode(err)
	}
	agg := c.Aggregate(readers)

	printTree(out, agg.Suites(), to.Depth)
	return errors.ExitSuccess
}

// printTree prints one table row per suite, children indented under parents.
func printTree(w *output.Writer, suites *junit.SuiteMap, maxDepth int) {
	headers := []string{"Suite"}
	for _, m := range logging.Metrics {
		headers = append(headers, m.Label())
	}

	var rows [][]string
	var walk func(sm *junit.SuiteMap, depth int)
	walk = func(sm *junit.SuiteMap, depth int) {
		sm.Each(func(_ string, s *junit.Suite) {
			row := []string{strings.Repeat("  ", depth) + s.Name}
			for _, m := range logging.Metrics {
				row = append(row, formatMetric(m, m.Of(s)))
			}
			rows = append(rows, row)
			if maxDepth == 0 || depth+1 < maxDepth {
				walk(s.Children, depth+1)
			}
		})
	}
	walk(suites, 0)

	w.Table(headers, rows)
}

// printTreeUsage prints the help text for the tree command.
func printTreeUsage() {
	w := output.New()

	w.HelpTitle("paralog tree - print the merged suite tree")

	w.HelpSection("Usage:")
	w.HelpUsage("paralog tree [options] [report...]")

	w.HelpSection("Description:")
	w.Println("  Merges worker reports like 'paralog merge' and prints every suite with")
	w.Println("  its summed totals, nested suites indented under their parents.")

	w.HelpSection("Options:")
	w.HelpFlag("--depth <n>", "Print at most n levels (0 for all)", helpFlagWidthShort+2)
	w.HelpFlag("-h, --help", "Show this help", helpFlagWidthShort+2)

	w.HelpSection("Examples:")
	w.HelpExample("paralog tree", "Print the full tree")
	w.HelpExample("paralog tree --depth 1 var/w1.xml var/w2.xml", "Print top-level suites of two reports")
	w.Println("")
}
