package cmd

import (
	"errors"
	"fmt"

	"github.com/CodingWithCalvin/jsshelper.cli/src/internal/selector"
	"github.com/CodingWithCalvin/jsshelper.cli/src/internal/ui"
)

// Exit codes.
const (
	exitFailure   = 1
	exitCancelled = 130
)

// ExitError exits with Code without printing anything more; the command
// has already reported the problem.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit code %d", e.Code)
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// exitCode maps an error returned by a command to a process exit code.
func exitCode(err error) int {
	var exitErr *ExitError
	switch {
	case err == nil:
		return 0
	case errors.As(err, &exitErr):
		return exitErr.Code
	case errors.Is(err, selector.ErrAborted):
		return exitCancelled
	default:
		return exitFailure
	}
}

// handleError prints err unless a command already did and returns the
// exit code.
func handleError(err error) int {
	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		if errors.Is(err, selector.ErrAborted) {
			ui.Warning("Cancelled.")
		} else {
			ui.Error("%v", err)
		}
	}
	return exitCode(err)
}
