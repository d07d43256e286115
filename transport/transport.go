// Package transport executes a command vector on a named node and returns
// a total result. Nothing here ever raises — a dial failure, a connect
// timeout, and a remote command's own non-zero exit are all just different
// NodeResult values. That totality is what lets fan-out (package fanout)
// stay total too.
package transport

import "fmt"

// LocalNode is the reserved node name denoting the machine nexus itself
// runs on. It bypasses the remote-shell client entirely.
const LocalNode = "local"

// NodeResult is the outcome of running one command vector on one node.
// It is always populated, never replaced by an error return — transport
// failures (timeout, dial error, spawn error) are folded into a non-zero
// Exit with an explanatory Stderr instead.
type NodeResult struct {
	Node   string
	Stdout string
	Stderr string
	Exit   int
}

// Success reports whether the command completed with exit code zero.
func (r NodeResult) Success() bool {
	return r.Exit == 0
}

// String renders a one-line summary suitable for a soft warning line in
// fan-out output.
func (r NodeResult) String() string {
	if r.Success() {
		return fmt.Sprintf("%s: ok", r.Node)
	}
	return fmt.Sprintf("%s: exit=%d %s", r.Node, r.Exit, r.Stderr)
}
