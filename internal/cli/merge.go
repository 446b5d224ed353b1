package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/AndreyAkinshin/paralog/internal/collect"
	"github.com/AndreyAkinshin/paralog/internal/config"
	"github.com/AndreyAkinshin/paralog/internal/errors"
	"github.com/AndreyAkinshin/paralog/internal/logging"
	"github.com/AndreyAkinshin/paralog/internal/output"
	"github.com/AndreyAkinshin/paralog/internal/project"
)

// feedbackWidth is the number of progress symbols printed per line.
const feedbackWidth = 80

// mergeOptions holds the flags of the merge and tree commands.
type mergeOptions struct {
	Format     config.OutputFormat
	JUnit      string
	RemoveLogs bool
	Feedback   bool
	Reports    []string

	junitFromFlag bool
}

// parseMergeFlags parses command flags on top of the configured defaults.
// Arguments that are not flags are report paths.
func parseMergeFlags(args []string, cfg *config.Config) (*mergeOptions, error) {
	opts := &mergeOptions{
		Format:     config.OutputFormat(cfg.Output.Format),
		JUnit:      cfg.Output.JUnit,
		RemoveLogs: cfg.Reports.Remove,
		Feedback:   cfg.Output.ShowFeedback(),
	}

	i := 0
	for i < len(args) {
		arg := args[i]

		switch {
		case arg == "--format" || arg == "--log-junit":
			if i+1 >= len(args) {
				return nil, fmt.Errorf("%s requires a value", arg)
			}
			if err := opts.set(arg, args[i+1]); err != nil {
				return nil, err
			}
			i += 2
		case strings.HasPrefix(arg, "--format=") || strings.HasPrefix(arg, "--log-junit="):
			name, value, _ := strings.Cut(arg, "=")
			if err := opts.set(name, value); err != nil {
				return nil, err
			}
			i++
		case arg == "--remove-logs":
			opts.RemoveLogs = true
			i++
		case arg == "--no-feedback":
			opts.Feedback = false
			i++
		case arg == "--":
			opts.Reports = append(opts.Reports, args[i+1:]...)
			i = len(args)
		case strings.HasPrefix(arg, "-") && arg != "-":
			return nil, fmt.Errorf("unknown flag %q", arg)
		default:
			opts.Reports = append(opts.Reports, arg)
			i++
		}
	}

	return opts, nil
}

func (o *mergeOptions) set(name, value string) error {
	if value == "" {
		return fmt.Errorf("%s requires a value", name)
	}
	switch name {
	case "--format":
		if err := config.ValidateFormat(value); err != nil {
			return fmt.Errorf("invalid --format value %q\n  valid values: %s, %s", value, config.FormatText, config.FormatJSON)
		}
		o.Format = config.OutputFormat(value)
	case "--log-junit":
		o.JUnit = value
		o.junitFromFlag = true
	}
	return nil
}

// junitPath returns the absolute path of the merged log. A path given with
// --log-junit is relative to the working directory, a configured one to the
// project root.
func (o *mergeOptions) junitPath(proj *project.Project) (string, error) {
	if o.junitFromFlag {
		return filepath.Abs(o.JUnit)
	}
	return proj.Resolve(o.JUnit), nil
}

// cmdMerge merges worker reports and prints the combined result.
func cmdMerge(args []string, opts *GlobalOptions) int {
	if wantsHelp(args) {
		printMergeUsage()
		return 0
	}

	proj, exitCode := loadProject(opts)
	if proj == nil {
		return exitCode
	}

	mo, err := parseMergeFlags(args, proj.Config)
	if err != nil {
		out.ErrorPrefix("merge: %v", err)
		return errors.ExitConfigError
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	c := collect.NewOs(logger, proj.Config.Reports.Parallel)
	readers, err := loadReaders(ctx, c, proj, mo.Reports)
	if err != nil {
		out.ErrorPrefix("%v", err)
		return errors.GetExitCode(err)
	}
	agg := c.Aggregate(readers)

	if mo.JUnit != "" {
		path, err := mo.junitPath(proj)
		if err != nil {
			out.ErrorPrefix("merge: %v", err)
			return errors.ExitRuntimeError
		}
		if err := c.Export(path, agg); err != nil {
			out.ErrorPrefix("%v", err)
			return errors.ExitRuntimeError
		}
	}

	switch mo.Format {
	case config.FormatJSON:
		if err := writeMergeJSON(out, agg); err != nil {
			out.ErrorPrefix("%v", err)
			return errors.ExitRuntimeError
		}
	default:
		printMergeSummary(out, agg, mo.Feedback, opts.Quiet)
	}

	if mo.RemoveLogs {
		if err := c.Cleanup(readers); err != nil {
			out.ErrorPrefix("%v", err)
			return errors.ExitRuntimeError
		}
	}

	if !agg.IsSuccessful() {
		return errors.ExitRuntimeError
	}
	return errors.ExitSuccess
}

// loadReaders reads the given reports, or every report in the configured
// directory when none are given. Given paths are relative to the working
// directory.
func loadReaders(ctx context.Context, c *collect.Collector, proj *project.Project, reports []string) ([]*logging.Reader, error) {
	paths := make([]string, 0, len(reports))
	for _, r := range reports {
		abs, err := filepath.Abs(r)
		if err != nil {
			return nil, errors.InvalidInput(r, err)
		}
		paths = append(paths, abs)
	}

	if len(paths) == 0 {
		dir := proj.ReportsDirectory()
		found, err := c.Discover(dir, proj.Config.Reports.Pattern)
		if err != nil {
			return nil, err
		}
		if len(found) == 0 {
			return nil, errors.InvalidInput(dir, fmt.Errorf("no report matches %q", proj.Config.Reports.Pattern))
		}
		paths = found
	}

	return c.Load(ctx, paths)
}

// printMergeSummary prints the feedback line, the totals, every failure and
// error message, and a final status line.
func printMergeSummary(w *output.Writer, agg *logging.Aggregator, feedback, quiet bool) {
	if feedback {
		w.Feedback(logging.FeedbackString(agg.Feedback()), feedbackWidth)
	}

	if !quiet {
		w.SummaryHeader("Summary")
		for _, m := range logging.Metrics {
			value := formatMetric(m, agg.Total(m))
			switch {
			case (m == logging.MetricFailures || m == logging.MetricErrors) && agg.Total(m) > 0:
				w.SummaryFailed(m.Label(), value)
			case m == logging.MetricFailures || m == logging.MetricErrors:
				w.SummaryPassed(m.Label(), value)
			default:
				w.SummaryItem(m.Label(), value)
			}
		}
	}

	printMessages(w, "Failures", agg.Failures())
	printMessages(w, "Errors", agg.Errors())

	if agg.IsSuccessful() {
		w.FinalSuccess("OK (%s)", plural(agg.TotalTests(), "test"))
	} else {
		w.FinalFailure("FAILURES! %s", totalsLine(agg))
	}
}

func printMessages(w *output.Writer, title string, messages []string) {
	if len(messages) == 0 {
		return
	}
	w.Println("")
	w.Println("There %s %s:", pluralVerb(len(messages)), plural(len(messages), strings.ToLower(strings.TrimSuffix(title, "s"))))
	w.Println("")
	for i, msg := range messages {
		w.Message(i+1, msg)
	}
}

// totalsLine renders every total as "Label: value" pairs.
func totalsLine(agg *logging.Aggregator) string {
	parts := make([]string, 0, len(logging.Metrics))
	for _, m := range logging.Metrics {
		parts = append(parts, fmt.Sprintf("%s: %s", m.Label(), formatMetric(m, agg.Total(m))))
	}
	return strings.Join(parts, ", ") + "."
}

func formatMetric(m logging.Metric, v float64) string {
	if m.IsFloat() {
		return fmt.Sprintf("%.3fs", v)
	}
	return fmt.Sprintf("%d", int(v))
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

func pluralVerb(n int) string {
	if n == 1 {
		return "was"
	}
	return "were"
}

// mergeMeta summarizes a merged run.
type mergeMeta struct {
	Success    bool    `json:"success"`
	Reports    int     `json:"reports"`
	Suites     int     `json:"suites"`
	Tests      int     `json:"tests"`
	Assertions int     `json:"assertions"`
	Failures   int     `json:"failures"`
	Errors     int     `json:"errors"`
	Time       float64 `json:"time_seconds"`
	Feedback   string  `json:"feedback"`
}

// mergeDetail is one failure or error message.
type mergeDetail struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// mergeOutput is the complete JSON document printed by merge --format json.
type mergeOutput struct {
	Meta    mergeMeta     `json:"meta"`
	Details []mergeDetail `json:"details"`
}

func buildMergeOutput(agg *logging.Aggregator) mergeOutput {
	doc := mergeOutput{
		Meta: mergeMeta{
			Success:    agg.IsSuccessful(),
			Reports:    len(agg.Readers()),
			Suites:     agg.AllSuites().Len(),
			Tests:      agg.TotalTests(),
			Assertions: agg.TotalAssertions(),
			Failures:   agg.TotalFailures(),
			Errors:     agg.TotalErrors(),
			Time:       agg.TotalTime(),
			Feedback:   logging.FeedbackString(agg.Feedback()),
		},
		Details: []mergeDetail{},
	}
	for _, kind := range []logging.MessageKind{logging.KindFailures, logging.KindErrors} {
		for _, msg := range agg.Messages(kind) {
			doc.Details = append(doc.Details, mergeDetail{Kind: kind.String(), Message: msg})
		}
	}
	return doc
}

func writeMergeJSON(w *output.Writer, agg *logging.Aggregator) error {
	enc := json.NewEncoder(w.Out())
	enc.SetIndent("", "  ")
	if err := enc.Encode(buildMergeOutput(agg)); err != nil {
		return fmt.Errorf("encode merge result: %w", err)
	}
	return nil
}

// printMergeUsage prints the help text for the merge command.
func printMergeUsage() {
	w := output.New()

	w.HelpTitle("paralog merge - merge reports from parallel test workers")

	w.HelpSection("Usage:")
	w.HelpUsage("paralog merge [options] [report...]")

	w.HelpSection("Description:")
	w.Println("  Reads one JUnit report per worker and merges suites that share a path,")
	w.Println("  so a suite split across workers is reported once with summed totals.")
	w.Println("  Without report arguments, every file matching reports.pattern in")
	w.Println("  reports.directory is merged. Report paths and --log-junit are relative")
	w.Println("  to the working directory.")

	w.HelpSection("Options:")
	w.HelpFlag("--format <format>", "Output format: text or json", helpFlagWidthMerge)
	w.HelpFlag("--log-junit <path>", "Write the merged tree as one JUnit log", helpFlagWidthMerge)
	w.HelpFlag("--remove-logs", "Delete worker reports after merging", helpFlagWidthMerge)
	w.HelpFlag("--no-feedback", "Do not print the progress line", helpFlagWidthMerge)
	w.HelpFlag("-h, --help", "Show this help", helpFlagWidthMerge)

	w.HelpSection("Exit Codes:")
	w.HelpCommand("0", "All tests passed", 2)
	w.HelpCommand("1", "Tests failed or errored", 2)
	w.HelpCommand("2", "Invalid configuration or flags", 2)
	w.HelpCommand("3", "A worker report is missing, empty or malformed", 2)

	w.HelpSection("Examples:")
	w.HelpExample("paralog merge", "Merge "+config.DefaultReportsDirectory+"/"+config.DefaultReportsPattern)
	w.HelpExample("paralog merge --log-junit junit.xml --remove-logs", "Replace worker reports with one merged log")
	w.HelpExample("paralog merge var/worker-1.xml var/worker-2.xml", "Merge two reports")
	w.Println("")
}
