package session

import (
	"context"
	"strings"

	"github.com/mattsolo1/nexus/command"
	"github.com/mattsolo1/nexus/nexuserr"
	"github.com/mattsolo1/nexus/transport"
)

var nameValidator = command.NewSafeBuilder()

// List fetches and parses the session records live on node.
func List(ctx context.Context, runner transport.Runner, node string) ([]Record, error) {
	result := runner.RunOnNode(ctx, node, ListArgv(), 0)
	if !result.Success() {
		return nil, nexuserr.Wrap(fmtErr(result), nexuserr.ErrCodeInternal, "list failed on "+node)
	}
	return Parse(result.Stdout)
}

// New creates a detached session on node. A non-zero exit whose stderr
// mentions "duplicate session" is translated to nexuserr.DuplicateSession;
// any other non-zero exit becomes an internal error. This is deliberately
// not pre-checked against a prior List call — the multiplexer is the
// single source of truth and is asked to reject, not predicted.
func New(ctx context.Context, runner transport.Runner, node, name, workingDir string, trailingCmd []string) error {
	if err := nameValidator.Validate("sessionName", name); err != nil {
		return nexuserr.InvalidName(err.Error())
	}
	if workingDir != "" {
		if err := nameValidator.Validate("filePath", workingDir); err != nil {
			return nexuserr.InvalidName(err.Error())
		}
	}

	result := runner.RunOnNode(ctx, node, NewArgv(name, workingDir, trailingCmd), 0)
	if result.Success() {
		return nil
	}
	if containsDuplicate(result.Stderr) {
		return nexuserr.DuplicateSession(name, node)
	}
	return nexuserr.Wrap(fmtErr(result), nexuserr.ErrCodeInternal, "new session failed on "+node)
}

// Capture returns the rendered contents of target's active pane.
func Capture(ctx context.Context, runner transport.Runner, node, target string, lines int) (string, error) {
	result := runner.RunOnNode(ctx, node, CaptureArgv(target, lines), 0)
	if !result.Success() {
		return "", nexuserr.Wrap(fmtErr(result), nexuserr.ErrCodeInternal, "capture failed on "+node)
	}
	return result.Stdout, nil
}

// Send delivers keys to target, appending Enter unless raw is set.
func Send(ctx context.Context, runner transport.Runner, node, target string, keys []string, raw bool) error {
	result := runner.RunOnNode(ctx, node, SendArgv(target, keys, raw), 0)
	if !result.Success() {
		return nexuserr.Wrap(fmtErr(result), nexuserr.ErrCodeInternal, "send failed on "+node)
	}
	return nil
}

// Kill destroys target.
func Kill(ctx context.Context, runner transport.Runner, node, target string) error {
	result := runner.RunOnNode(ctx, node, KillArgv(target), 0)
	if !result.Success() {
		return nexuserr.Wrap(fmtErr(result), nexuserr.ErrCodeInternal, "kill failed on "+node)
	}
	return nil
}

func containsDuplicate(stderr string) bool {
	return strings.Contains(strings.ToLower(stderr), "duplicate session")
}

func fmtErr(result transport.NodeResult) error {
	return &nodeError{result}
}

type nodeError struct {
	result transport.NodeResult
}

func (e *nodeError) Error() string {
	return e.result.String()
}
