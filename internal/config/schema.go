// Package config provides configuration loading and validation for .paralog.yml.
package config

// Config represents the complete .paralog.yml configuration.
type Config struct {
	Reports *ReportsConfig `yaml:"reports,omitempty"`
	Output  *OutputConfig  `yaml:"output,omitempty"`
}

// ReportsConfig locates the reports written by test workers.
type ReportsConfig struct {
	Directory string `yaml:"directory,omitempty"`
	Pattern   string `yaml:"pattern,omitempty"`
	Remove    bool   `yaml:"remove,omitempty"`   // Delete worker reports after a successful merge
	Parallel  int    `yaml:"parallel,omitempty"` // Reports parsed at once (default: number of CPUs)
}

// OutputConfig configures how the merged result is presented.
type OutputConfig struct {
	Format   string `yaml:"format,omitempty"`   // "text" or "json"
	Feedback *bool  `yaml:"feedback,omitempty"` // Print the progress line (default: true)
	JUnit    string `yaml:"junit,omitempty"`    // Path of the merged JUnit log
}

// OutputFormat represents how the merged summary is printed.
type OutputFormat string

const (
	// FormatText prints a human-readable summary.
	FormatText OutputFormat = "text"
	// FormatJSON prints a machine-readable summary.
	FormatJSON OutputFormat = "json"
)

// ShowFeedback reports whether the feedback line should be printed.
func (o *OutputConfig) ShowFeedback() bool {
	if o == nil || o.Feedback == nil {
		return true
	}
	return *o.Feedback
}
