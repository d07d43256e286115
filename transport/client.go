package transport

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strings"
	"time"

	"github.com/mattsolo1/nexus/command"
)

// DefaultConnectTimeout is the strict connect timeout enforced on every
// remote command when the caller does not override it.
const DefaultConnectTimeout = 2 * time.Second

// unquotedSafe matches characters that never need shell quoting when
// building the remote command line. Transport never manages the control
// connection itself, only the argv it hands to ssh.
var unquotedSafe = regexp.MustCompile(`^[\w@%+=:,./-]+$`)

// Runner executes a command vector on a named node. Keeping this narrow —
// node, argv, result, nothing else — means an alternative dispatcher
// (container exec, a different remote shell) can be substituted without
// touching fan-out, the resolver, or attach.
type Runner interface {
	RunOnNode(ctx context.Context, node string, argv []string, timeout time.Duration) NodeResult
}

// SSHRunner is the production Runner: the local node is executed as a
// direct child process, every other node is reached through the `ssh`
// binary on PATH with a strict connect timeout.
type SSHRunner struct {
	builder   *command.SafeBuilder
	sshBinary string
}

// NewSSHRunner creates a Runner backed by the real ssh client.
func NewSSHRunner() *SSHRunner {
	return &SSHRunner{
		builder:   command.NewSafeBuilder(),
		sshBinary: "ssh",
	}
}

// RunOnNode implements Runner.
func (r *SSHRunner) RunOnNode(ctx context.Context, node string, argv []string, timeout time.Duration) NodeResult {
	if len(argv) == 0 {
		return NodeResult{Node: node, Exit: 2, Stderr: "empty command"}
	}
	if node == LocalNode || node == "" {
		return r.runLocal(ctx, node, argv)
	}
	return r.runRemote(ctx, node, argv, timeout)
}

func (r *SSHRunner) runLocal(ctx context.Context, node string, argv []string) NodeResult {
	cmd, err := r.builder.Build(ctx, argv[0], argv[1:]...)
	if err != nil {
		return NodeResult{Node: node, Exit: 127, Stderr: err.Error()}
	}
	return execAndCapture(node, cmd.Exec())
}

func (r *SSHRunner) runRemote(ctx context.Context, node string, argv []string, timeout time.Duration) NodeResult {
	if timeout <= 0 {
		timeout = DefaultConnectTimeout
	}

	sshArgs := []string{
		"-o", fmt.Sprintf("ConnectTimeout=%d", int(timeout.Seconds())),
		"-o", "BatchMode=yes",
		node,
		shellQuoteCmd(argv),
	}

	cmd, err := r.builder.Build(ctx, r.sshBinary, sshArgs...)
	if err != nil {
		return NodeResult{Node: node, Exit: 127, Stderr: fmt.Sprintf("failed to build ssh command: %v", err)}
	}

	// The overall command deadline is generous (command.DefaultTimeout);
	// the strict 2s bound is the ssh-level ConnectTimeout above, which
	// only bounds the handshake, not a subsequently hanging remote command
	// — that yields to user interrupt instead.
	result := execAndCapture(node, cmd.Exec())
	if result.Exit == 255 && looksLikeConnectFailure(result.Stderr) {
		result.Stderr = fmt.Sprintf("connect timeout or unreachable: %s", strings.TrimSpace(result.Stderr))
	}
	return result
}

// execAndCapture runs cmd, capturing stdout/stderr separately, and folds
// every failure mode into a NodeResult instead of returning an error —
// this is the totality guarantee fan-out depends on.
func execAndCapture(node string, cmd *exec.Cmd) NodeResult {
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		return NodeResult{Node: node, Stdout: stdout.String(), Stderr: stderr.String(), Exit: 0}
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return NodeResult{Node: node, Stdout: stdout.String(), Stderr: stderr.String(), Exit: exitErr.ExitCode()}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return NodeResult{Node: node, Stdout: stdout.String(), Stderr: "command timed out", Exit: 124}
	}

	// os/exec spawn failure (binary missing, permission denied, etc).
	return NodeResult{Node: node, Stdout: stdout.String(), Stderr: err.Error(), Exit: 127}
}

func looksLikeConnectFailure(stderr string) bool {
	lowered := strings.ToLower(stderr)
	return strings.Contains(lowered, "connection timed out") ||
		strings.Contains(lowered, "operation timed out") ||
		strings.Contains(lowered, "no route to host") ||
		strings.Contains(lowered, "could not resolve hostname")
}

// shellQuoteCmd joins argv into a single shell command line safe to hand
// to `ssh host <cmd>`, which always runs its trailing argument through the
// remote user's shell.
func shellQuoteCmd(argv []string) string {
	quoted := make([]string, 0, len(argv))
	for _, a := range argv {
		if a == "" {
			quoted = append(quoted, "''")
			continue
		}
		if unquotedSafe.MatchString(a) {
			quoted = append(quoted, a)
			continue
		}
		quoted = append(quoted, "'"+strings.ReplaceAll(a, "'", "'\"'\"'")+"'")
	}
	return strings.Join(quoted, " ")
}
