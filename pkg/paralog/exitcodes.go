// Package paralog provides public constants for tools that run the paralog
// CLI, for example CI scripts that wrap a parallel test run.
package paralog

// Exit codes returned by the paralog CLI.
// These constants allow external tools to check exit codes symbolically
// rather than using magic numbers.
const (
	// ExitSuccess indicates every merged test passed.
	ExitSuccess = 0

	// ExitFailure indicates failing or erroring tests, or a runtime failure.
	ExitFailure = 1

	// ExitConfigError indicates a configuration error (invalid config, bad flags, etc.).
	ExitConfigError = 2

	// ExitInputError indicates a worker report that is missing, empty or malformed.
	// An empty report means the worker crashed before writing its results.
	ExitInputError = 3
)
