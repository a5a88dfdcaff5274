package cli

import (
	"errors"
	"fmt"
)

// Exit codes for the vic CLI.
const (
	ExitSuccess      = 0 // successful execution
	ExitFailure      = 1 // run failure (unreadable input, unresolved z0, bad topology)
	ExitCommandError = 2 // environment error (cannot write export or chart artifact)
)

// ExitError carries a specific process exit code out of a command.
type ExitError struct {
	Code    int    // exit code (ExitFailure or ExitCommandError)
	Message string // error message
	Err     error  // underlying error (optional)
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error. Errors that are
// not ExitErrors (flag parse failures and the like) map to ExitFailure.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}
