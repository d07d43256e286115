package cli

import (
	"fmt"
	"os"

	"github.com/mattsolo1/nexus/nexuserr"
)

// ErrorHandler renders a NexusError (or any error) to stderr as a
// single-line diagnostic and returns the exit code the caller should use.
type ErrorHandler struct {
	Verbose bool
}

// NewErrorHandler creates a new error handler.
func NewErrorHandler(verbose bool) *ErrorHandler {
	return &ErrorHandler{Verbose: verbose}
}

// Handle prints a diagnostic for err and returns the process exit code.
// User errors get a single line; protocol errors additionally print the
// offending line so implementers can debug the multiplexer contract
// violation; other errors dump their details only in verbose mode.
func (h *ErrorHandler) Handle(err error) int {
	if err == nil {
		return 0
	}

	switch nexuserr.GetCode(err) {
	case nexuserr.ErrCodeSessionNotFound, nexuserr.ErrCodeAmbiguousSession,
		nexuserr.ErrCodeUnknownNode, nexuserr.ErrCodeMissingDependency,
		nexuserr.ErrCodeDuplicateSession, nexuserr.ErrCodeSelectionCancelled:
		if nexusErr, ok := err.(*nexuserr.NexusError); ok {
			fmt.Fprintf(os.Stderr, "Error: %s\n", nexusErr.Message)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}

	case nexuserr.ErrCodeFormatParse:
		if nexusErr, ok := err.(*nexuserr.NexusError); ok {
			fmt.Fprintf(os.Stderr, "Error: %s\n", nexusErr.Message)
			if line, ok := nexusErr.Details["line"]; ok {
				fmt.Fprintf(os.Stderr, "  offending line: %v\n", line)
			}
		}

	default:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if h.Verbose {
			if nexusErr, ok := err.(*nexuserr.NexusError); ok {
				fmt.Fprintf(os.Stderr, "\n%s\n", nexusErr.ToJSON())
			}
		}
	}

	return nexuserr.ExitCode(err)
}
