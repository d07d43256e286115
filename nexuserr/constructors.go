package nexuserr

import (
	"fmt"
	"strings"
)

// SessionNotFound is returned by the resolver when zero nodes report a
// matching session name.
func SessionNotFound(name string) *NexusError {
	return New(ErrCodeSessionNotFound, fmt.Sprintf("session not found: %s", name)).
		WithDetail("name", name)
}

// AmbiguousSession is returned by the resolver when two or more nodes
// report a matching session name and disambiguation was not possible
// (non-interactive stdin) or was declined.
func AmbiguousSession(matches []string) *NexusError {
	return New(ErrCodeAmbiguousSession,
		fmt.Sprintf("Ambiguous session. Matches: %s.", strings.Join(matches, ", "))).
		WithDetail("matches", matches)
}

// UnknownNode is returned when a qualified name or --node flag references
// a node absent from the fleet configuration.
func UnknownNode(node string) *NexusError {
	return New(ErrCodeUnknownNode, fmt.Sprintf("unknown node: %s", node)).
		WithDetail("node", node)
}

// MissingDependency is returned when a required external collaborator
// (the fuzzy-finder binary, tmux, ssh) is absent from PATH.
func MissingDependency(name string) *NexusError {
	return New(ErrCodeMissingDependency, fmt.Sprintf("required command not found: %s", name)).
		WithDetail("command", name)
}

// DuplicateSession wraps the multiplexer's own "duplicate session" failure.
// It is never pre-checked: `new` always tries first and translates the
// multiplexer's rejection after the fact.
func DuplicateSession(name, node string) *NexusError {
	return New(ErrCodeDuplicateSession,
		fmt.Sprintf("Session '%s' already exists on %s.", name, node)).
		WithDetail("name", name).
		WithDetail("node", node)
}

// SelectionCancelled is returned when the fuzzy-finder collaborator exits
// non-zero. It carries its own code, but like SessionNotFound it is a user
// error: a single-line diagnostic and exit 1.
func SelectionCancelled() *NexusError {
	return New(ErrCodeSelectionCancelled, "selection cancelled")
}

// InvalidName is returned when a session name or working directory fails
// validation before a command is ever attempted.
func InvalidName(reason string) *NexusError {
	return New(ErrCodeInvalidName, reason)
}

// FormatParseError signals a contract violation by the multiplexer's list
// output: a line that does not carry exactly eight pipe-separated fields,
// or a numeric field that fails to parse. Fatal, never silently skipped.
func FormatParseError(rawLine string, reason string) *NexusError {
	return New(ErrCodeFormatParse, fmt.Sprintf("malformed session record: %s", reason)).
		WithDetail("line", rawLine)
}

// ExitCode maps err to a process exit code: 0 for nil, 1 for user errors,
// 2 for protocol/internal errors and anything unrecognized.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	switch GetCode(err) {
	case ErrCodeSessionNotFound, ErrCodeAmbiguousSession, ErrCodeUnknownNode,
		ErrCodeMissingDependency, ErrCodeDuplicateSession, ErrCodeSelectionCancelled,
		ErrCodeInvalidName:
		return 1
	case ErrCodeFormatParse, ErrCodeInternal:
		return 2
	default:
		return 2
	}
}
