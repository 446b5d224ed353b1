// Package errors provides structured error types and exit codes for paralog.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Exit codes returned by the paralog CLI.
const (
	ExitSuccess      = 0 // Success
	ExitRuntimeError = 1 // Runtime error or failing tests
	ExitConfigError  = 2 // Configuration error (invalid config, bad flags, etc.)
	ExitInputError   = 3 // Worker report missing or empty
)

// ErrorKind represents the type of error.
type ErrorKind int

const (
	KindRuntime ErrorKind = iota
	KindConfig
	KindValidation
	KindInvalidInput
	KindCrashedWorker
)

// String returns a short name for the kind.
func (k ErrorKind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindValidation:
		return "validation"
	case KindInvalidInput:
		return "invalid input"
	case KindCrashedWorker:
		return "crashed worker"
	default:
		return "runtime"
	}
}

// ParalogError is the base error type for paralog.
type ParalogError struct {
	Kind    ErrorKind
	Message string
	Path    string // Report path if applicable
	Cause   error  // Underlying error
}

func (e *ParalogError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("[%s] %s", e.Path, e.Message)
	}
	return e.Message
}

func (e *ParalogError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the appropriate exit code for this error.
func (e *ParalogError) ExitCode() int {
	switch e.Kind {
	case KindConfig, KindValidation:
		return ExitConfigError
	case KindInvalidInput, KindCrashedWorker:
		return ExitInputError
	default:
		return ExitRuntimeError
	}
}

// New creates a new runtime error.
func New(message string) *ParalogError {
	return &ParalogError{
		Kind:    KindRuntime,
		Message: message,
	}
}

// Config creates a new configuration error.
func Config(message string) *ParalogError {
	return &ParalogError{
		Kind:    KindConfig,
		Message: message,
	}
}

// Configf creates a new configuration error with formatting.
func Configf(format string, args ...interface{}) *ParalogError {
	return Config(fmt.Sprintf(format, args...))
}

// InvalidInput reports a worker report that does not exist or cannot be read.
func InvalidInput(path string, cause error) *ParalogError {
	msg := "report does not exist"
	if cause != nil {
		msg = fmt.Sprintf("invalid report: %v", cause)
	}
	return &ParalogError{
		Kind:    KindInvalidInput,
		Message: msg,
		Path:    path,
		Cause:   cause,
	}
}

// CrashedWorker reports an empty worker report. An empty report means the
// worker process terminated before it could write its results.
func CrashedWorker(path string) *ParalogError {
	return &ParalogError{
		Kind:    KindCrashedWorker,
		Message: "report is empty, the worker process crashed before writing results",
		Path:    path,
	}
}

// Is matches a bare kind marker such as &ParalogError{Kind: KindCrashedWorker},
// so errors.Is can find a kind anywhere in a chain or multi-error.
func (e *ParalogError) Is(target error) bool {
	t, ok := target.(*ParalogError)
	if !ok || t.Message != "" || t.Path != "" || t.Cause != nil {
		return false
	}
	return e.Kind == t.Kind
}

// IsKind reports whether any error in err's chain is a ParalogError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	return stderrors.Is(err, &ParalogError{Kind: kind})
}

// GetExitCode returns the exit code for an error.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var pe *ParalogError
	if stderrors.As(err, &pe) {
		return pe.ExitCode()
	}
	return ExitRuntimeError
}
