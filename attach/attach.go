// Package attach implements the state machine that gets a caller from a
// shell prompt to an interactive attach against a fleet session,
// selecting one of five strategies from the caller's current multiplexer
// nesting context.
package attach

import (
	"context"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"syscall"

	"github.com/mattsolo1/nexus/fleetconfig"
	"github.com/mattsolo1/nexus/nexuserr"
	"github.com/mattsolo1/nexus/session"
)

// Scenario is one of the five nesting contexts the caller may be in.
type Scenario int

const (
	// ScenarioALocal: no multiplexer, target on the local node.
	ScenarioALocal Scenario = iota
	// ScenarioARemote: no multiplexer, target on a remote node.
	ScenarioARemote
	// ScenarioBLocal: already inside the nexus socket, target on the local node.
	ScenarioBLocal
	// ScenarioBRemote: already inside the nexus socket, target on a remote node.
	ScenarioBRemote
	// ScenarioC: inside some other (personal) multiplexer socket entirely.
	ScenarioC
)

// Exec replaces the current process image, or runs a foreground child
// when replace-in-place is not desired (used by attach's own tests, which
// stub this out).
type Exec func(argv []string) error

// FireAndForget spawns a detached child that inherits no lifetime tie to
// the caller beyond exit — used for B and C scenarios, which must return
// control to the caller's shell immediately.
type FireAndForget func(argv []string) error

// Attacher drives the state machine.
type Attacher struct {
	// TmuxEnv is read to detect nesting; overridable for tests.
	TmuxEnv string
	Exec    Exec
	Spawn   FireAndForget
}

// New returns an Attacher wired to the real process-replacement and
// fire-and-forget primitives, reading the caller's actual TMUX variable.
func New() *Attacher {
	return &Attacher{
		TmuxEnv: os.Getenv("TMUX"),
		Exec:    replaceProcess,
		Spawn:   spawnDetached,
	}
}

// DetectScenario classifies the caller's current nesting context for a
// target on node.
func (a *Attacher) DetectScenario(node string) Scenario {
	socket := socketFromTmuxEnv(a.TmuxEnv)
	local := node == fleetconfig.LocalNode

	switch {
	case socket == "":
		if local {
			return ScenarioALocal
		}
		return ScenarioARemote
	case socket == session.Socket:
		if local {
			return ScenarioBLocal
		}
		return ScenarioBRemote
	default:
		return ScenarioC
	}
}

// socketFromTmuxEnv parses TMUX as "path,pid,session" and returns the
// socket name, the final path component of the socket path. An unset or
// malformed value yields "".
func socketFromTmuxEnv(tmuxEnv string) string {
	if tmuxEnv == "" {
		return ""
	}
	pathPart := strings.SplitN(tmuxEnv, ",", 2)[0]
	if pathPart == "" {
		return ""
	}
	idx := strings.LastIndex(pathPart, "/")
	if idx < 0 {
		return pathPart
	}
	return pathPart[idx+1:]
}

// Attach dispatches target (node, sessionName) to the appropriate
// strategy. On success in scenario A it never returns — the process image
// is replaced. On success in B/C it returns nil after spawning the
// detached window; the caller is expected to exit 0 immediately.
func (a *Attacher) Attach(ctx context.Context, cfg *fleetconfig.Config, node, sessionName string) error {
	if !cfg.HasNode(node) {
		return nexuserr.UnknownNode(node)
	}

	switch a.DetectScenario(node) {
	case ScenarioALocal:
		return a.Exec([]string{"tmux", "-L", session.Socket, "attach", "-t", sessionName})

	case ScenarioARemote:
		remoteCmd := shellQuoteCmd([]string{"tmux", "-L", session.Socket, "attach", "-t", sessionName})
		return a.Exec([]string{
			"ssh", "-o", "ConnectTimeout=" + strconv.Itoa(cfg.SSH.ConnectTimeoutSeconds), "-t", node, remoteCmd,
		})

	case ScenarioBLocal:
		return a.Spawn([]string{"tmux", "-L", session.Socket, "switch-client", "-t", sessionName})

	case ScenarioBRemote:
		inner := shellQuoteCmd([]string{"tmux", "-L", session.Socket, "attach", "-t", sessionName})
		remoteShell := "ssh -t " + node + " " + shellQuote(inner)
		return a.Spawn(session.NewWindowOnSocketArgv(session.Socket, sessionName, remoteShell))

	default: // ScenarioC
		var shellCmd string
		if node == fleetconfig.LocalNode {
			shellCmd = shellQuoteCmd([]string{"tmux", "-L", session.Socket, "attach", "-t", sessionName})
		} else {
			inner := shellQuoteCmd([]string{"tmux", "-L", session.Socket, "attach", "-t", sessionName})
			shellCmd = "ssh -t " + node + " " + shellQuote(inner)
		}
		return a.Spawn(session.NewWindowOnSocketArgv(callerSocket(a.TmuxEnv), sessionName, shellCmd))
	}
}

func callerSocket(tmuxEnv string) string {
	return socketFromTmuxEnv(tmuxEnv)
}

// replaceProcess implements Exec via syscall.Exec: the current process
// image is replaced in place so the multiplexer owns the terminal
// directly, with clean signal propagation and no zombie parent.
func replaceProcess(argv []string) error {
	if len(argv) == 0 {
		return nexuserr.New(nexuserr.ErrCodeInternal, "empty attach command")
	}
	path, err := exec.LookPath(argv[0])
	if err != nil {
		return nexuserr.MissingDependency(argv[0])
	}
	return syscall.Exec(path, argv, os.Environ())
}

// spawnDetached implements FireAndForget: it launches the window-creation
// command and waits only for that command itself to exit (not for the
// window it creates), so the caller's shell is freed immediately.
func spawnDetached(argv []string) error {
	if len(argv) == 0 {
		return nexuserr.New(nexuserr.ErrCodeInternal, "empty spawn command")
	}
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return nexuserr.Wrap(err, nexuserr.ErrCodeInternal, "failed to spawn detached window")
	}
	return nil
}
