package cli

import (
	"errors"
	"fmt"

	"github.com/yaklabco/cxxtidy/internal/configloader"
	"github.com/yaklabco/cxxtidy/pkg/runner"
)

// Exit codes for cxxtidy.
const (
	// ExitSuccess indicates successful execution with no issues.
	ExitSuccess = 0

	// ExitLintErrors indicates lint completed but found errors.
	ExitLintErrors = 1

	// ExitLintWarnings indicates lint completed but found warnings (when strict mode).
	ExitLintWarnings = 2

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates a rule broke the edit invariants, or
	// another failure that is a bug rather than bad input.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// ExitError carries the process exit code for a command failure.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// ErrLintIssuesFound is returned when lint issues decide the exit code.
var ErrLintIssuesFound = errors.New("lint issues found")

// ExitCodeFromResult determines the exit code based on result and strict
// mode. Internal errors win over file errors, which win over diagnostics.
func ExitCodeFromResult(result *runner.Result, strict bool) int {
	if result == nil {
		return ExitSuccess
	}

	switch {
	case result.HasInternalErrors():
		return ExitInternalError
	case result.Stats.FilesErrored > 0:
		return ExitIOError
	case result.HasFailures():
		return ExitLintErrors
	case strict && result.Stats.DiagnosticsBySeverity["warning"] > 0:
		return ExitLintWarnings
	default:
		return ExitSuccess
	}
}

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	var validationErr *configloader.ValidationError
	if errors.As(err, &validationErr) {
		return ExitConfigError
	}

	return ExitInvalidUsage
}
