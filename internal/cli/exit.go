package cli

import (
	"context"
	"errors"

	wperrors "github.com/matzehuels/waypoint/pkg/errors"
)

// Exit codes returned by the waypoint binary.
const (
	ExitOK       = 0
	ExitFailure  = 1
	ExitUsage    = 2   // bad flags, arguments or paths
	ExitCanceled = 130 // SIGINT convention
)

// ExitCode maps an error returned by the root command to a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, context.Canceled):
		return ExitCanceled
	}
	switch wperrors.GetCode(err) {
	case wperrors.ErrCodeInvalidInput, wperrors.ErrCodeInvalidPath:
		return ExitUsage
	}
	return ExitFailure
}

// ErrorMessage formats err for the terminal, without error codes.
func ErrorMessage(err error) string {
	return "Error: " + wperrors.UserMessage(err)
}
