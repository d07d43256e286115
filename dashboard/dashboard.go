// Package dashboard composes a transient, read-only multi-pane view of
// every live session in the fleet, and a bound key that tears the view
// down and re-enters the focused pane's target under the caller's
// original environment.
package dashboard

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/google/uuid"

	"github.com/mattsolo1/nexus/attach"
	"github.com/mattsolo1/nexus/fanout"
	"github.com/mattsolo1/nexus/fleetconfig"
	"github.com/mattsolo1/nexus/session"
	"github.com/mattsolo1/nexus/transport"
)

// Socket is the dedicated multiplexer control socket the dashboard's own
// session lives on — distinct from the fleet's nexus socket, so a user
// already inside nexus can launch a dashboard safely.
const Socket = "nx_dash"

// SessionName is the fixed name of the dashboard's own session.
const SessionName = "dash"

// MaxPanes caps how many live sessions get their own pane before the
// composer starts eliding sessions into a status warning instead.
const MaxPanes = 16

// TargetOptionKey is the pane-scoped user option tagging each pane with
// the qualified identity it is attached to.
const TargetOptionKey = "@nx_target"

// BinEnvKey is the session environment variable carrying the resolved
// path to the running executable, read back by the Enter shim.
const BinEnvKey = "NX_BIN"

// IDEnvKey is the session environment variable carrying this invocation's
// correlation ID, so a dashboard's own log lines can be tied back to the
// tmux session that produced them even after the caller has detached.
const IDEnvKey = "NX_DASH_ID"

// NewInvocationID returns a fresh correlation ID for one dashboard launch.
func NewInvocationID() string {
	return uuid.NewString()
}

// Target is one live session eligible for a dashboard pane.
type Target struct {
	Node    string
	Session string
}

// Qualified renders node/session.
func (t Target) Qualified() string {
	return t.Node + "/" + t.Session
}

// Composition is the plan for a dashboard: which sessions get a pane and
// which were elided by the pane cap.
type Composition struct {
	Panes   []Target
	Elided  []Target
}

// CollectTargets fans out list across the fleet and returns the ordered,
// deterministic set of live (node, session) pairs.
func CollectTargets(ctx context.Context, runner transport.Runner, cfg *fleetconfig.Config) ([]Target, map[string]string, error) {
	results := fanout.Run(ctx, runner, cfg.Nodes, session.ListArgv(), cfg.MaxConcurrentSSH)

	var targets []Target
	warnings := make(map[string]string)
	for _, node := range cfg.Nodes {
		result := results[node]
		if !result.Success() {
			warnings[node] = result.String()
			continue
		}
		records, err := session.Parse(result.Stdout)
		if err != nil {
			return nil, nil, err
		}
		for _, rec := range records {
			targets = append(targets, Target{Node: node, Session: rec.Name})
		}
	}

	sort.Slice(targets, func(i, j int) bool {
		if targets[i].Node != targets[j].Node {
			return targets[i].Node < targets[j].Node
		}
		return targets[i].Session < targets[j].Session
	})

	return targets, warnings, nil
}

// Plan splits targets into panes and elided entries according to MaxPanes.
func Plan(targets []Target) Composition {
	if len(targets) <= MaxPanes {
		return Composition{Panes: targets}
	}
	return Composition{Panes: targets[:MaxPanes], Elided: targets[MaxPanes:]}
}

// Compose builds argv for every step of standing up the dashboard session:
// creating it, splitting a read-only pane per target, tagging each pane,
// setting NX_BIN, and binding the Enter shim. Building this as a list of
// argv vectors (rather than executing inline) keeps composition testable
// without a real multiplexer.
func Compose(comp Composition, binPath, invocationID string) [][]string {
	var cmds [][]string

	attachCmdFor := func(target Target) string {
		attachCmd := fmt.Sprintf("tmux -L %s attach -t %s -r", session.Socket, target.Session)
		if target.Node != fleetconfig.LocalNode {
			attachCmd = fmt.Sprintf("ssh -t %s %q", target.Node, attachCmd)
		}
		return attachCmd
	}

	if len(comp.Panes) > 0 {
		// The first target's attach command becomes the session's initial
		// window command directly — new-session always starts with one
		// pane, and that pane's command is still the caller's shell until
		// something replaces it, so respawn-pane would refuse ("pane still
		// active") without -k.
		cmds = append(cmds, []string{
			"tmux", "-L", Socket, "new-session", "-d", "-s", SessionName, attachCmdFor(comp.Panes[0]),
		})
	} else {
		cmds = append(cmds, []string{"tmux", "-L", Socket, "new-session", "-d", "-s", SessionName})
	}
	cmds = append(cmds, []string{"tmux", "-L", Socket, "set-environment", "-t", SessionName, BinEnvKey, binPath})
	cmds = append(cmds, []string{"tmux", "-L", Socket, "set-environment", "-t", SessionName, IDEnvKey, invocationID})

	for i, target := range comp.Panes {
		if i > 0 {
			cmds = append(cmds, []string{"tmux", "-L", Socket, "split-window", "-t", SessionName, attachCmdFor(target)})
		}
		cmds = append(cmds, []string{
			"tmux", "-L", Socket, "set-option", "-p", "-t", fmt.Sprintf("%s:0.%d", SessionName, i),
			TargetOptionKey, target.Qualified(),
		})
	}

	cmds = append(cmds, []string{"tmux", "-L", Socket, "select-layout", "-t", SessionName, "tiled"})
	cmds = append(cmds, []string{"tmux", "-L", Socket, "bind-key", "-n", "Enter", "run-shell", enterShim()})

	return cmds
}

// enterShim is the shell fragment bound to the Enter key. The ordering is
// load-bearing: tear-down must precede re-entry so the re-entered process
// observes the caller's original TMUX value, not nx_dash's.
func enterShim() string {
	return `target=$(tmux -L ` + Socket + ` display-message -p '#{` + TargetOptionKey + `}'); ` +
		`bin=$(tmux -L ` + Socket + ` show-environment ` + BinEnvKey + ` | cut -d= -f2); ` +
		`tmux -L ` + Socket + ` detach-client; ` +
		`tmux -L ` + Socket + ` kill-session -t ` + SessionName + `; ` +
		`exec "$bin" attach "$target"`
}

// Attach replaces the current process with an attach to the dashboard
// session itself, the final step of composition.
func Attach(exec attach.Exec) error {
	return exec([]string{"tmux", "-L", Socket, "attach", "-t", SessionName})
}

// ResolveBinPath returns the absolute path to the running executable.
func ResolveBinPath() (string, error) {
	return os.Executable()
}
