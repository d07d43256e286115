package session

import "fmt"

// binary is the multiplexer executable name. It is a var, not a const,
// so tests can point it at a stub on PATH without touching argv-building
// logic.
var binary = "tmux"

// socketArgs prefixes any command with the dedicated fleet socket flag.
func socketArgs(args ...string) []string {
	return append([]string{binary, "-L", Socket}, args...)
}

// ListArgv builds the argv for listing every session on the fleet socket
// in the pinned record format.
func ListArgv() []string {
	return socketArgs("list-sessions", "-F", Format)
}

// NewArgv builds the argv for creating a detached session. workingDir may
// be empty. trailingCmd, if non-empty, becomes the session's initial
// command instead of the user's shell.
func NewArgv(name, workingDir string, trailingCmd []string) []string {
	args := []string{"new-session", "-d", "-s", name}
	if workingDir != "" {
		args = append(args, "-c", workingDir)
	}
	args = append(args, trailingCmd...)
	return socketArgs(args...)
}

// CaptureArgv builds the argv for printing a pane's contents. lines <= 0
// captures the full scrollback; otherwise it captures the last lines
// lines counted from the bottom.
func CaptureArgv(target string, lines int) []string {
	args := []string{"capture-pane", "-p", "-e", "-t", target}
	if lines > 0 {
		args = append(args, "-S", fmt.Sprintf("-%d", lines))
	} else {
		args = append(args, "-S", "-")
	}
	return socketArgs(args...)
}

// SendArgv builds the argv for sending keys to a target session. In
// non-raw mode a trailing "Enter" token is appended so the command
// actually executes.
func SendArgv(target string, keys []string, raw bool) []string {
	args := []string{"send-keys", "-t", target}
	args = append(args, keys...)
	if !raw {
		args = append(args, "Enter")
	}
	return socketArgs(args...)
}

// KillArgv builds the argv for killing a target session.
func KillArgv(target string) []string {
	return socketArgs("kill-session", "-t", target)
}

// SwitchArgv builds the argv for switching the calling client to a target
// session. Used only for attach scenario B-local.
func SwitchArgv(target string) []string {
	return socketArgs("switch-client", "-t", target)
}

// NewWindowOnSocketArgv builds the argv for creating a window on an
// arbitrary socket (the caller's own, for B-remote and C) running the
// given shell command. It sets no remain-on-exit option, so the wrapper
// window closes the instant the inner command exits.
func NewWindowOnSocketArgv(socket, windowName, shellCmd string) []string {
	return []string{binary, "-L", socket, "new-window", "-n", windowName, shellCmd}
}

// SetPaneOptionArgv builds the argv for setting a pane-scoped user option,
// used by the dashboard composer to tag panes with their target identity.
func SetPaneOptionArgv(paneTarget, option, value string) []string {
	return socketArgsForSocket(Socket, "set-option", "-p", "-t", paneTarget, option, value)
}

// SetEnvArgv builds the argv for setting a session environment variable.
func SetEnvArgv(sessionTarget, socket, key, value string) []string {
	return socketArgsForSocket(socket, "set-environment", "-t", sessionTarget, key, value)
}

// BindKeyArgv builds the argv for binding a key on a given socket to a
// shell command run through the default key table.
func BindKeyArgv(socket, key, shellCmd string) []string {
	return socketArgsForSocket(socket, "bind-key", key, "run-shell", shellCmd)
}

func socketArgsForSocket(socket string, args ...string) []string {
	return append([]string{binary, "-L", socket}, args...)
}
