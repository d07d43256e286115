// Package transporttest provides a fake transport.Runner so fan-out,
// resolution, and attach logic can be tested without shelling out to a
// real multiplexer or SSH client.
package transporttest

import (
	"context"
	"sync"
	"time"

	"github.com/mattsolo1/nexus/transport"
)

// Fake is a transport.Runner double keyed by node name. Calls records
// every RunOnNode invocation so tests can assert on dispatch order and
// argv shape.
type Fake struct {
	mu        sync.Mutex
	Responses map[string]transport.NodeResult
	// PerCall, if set for a node, is consulted before Responses — it lets
	// a test return different results across successive calls to the same
	// node. Once a node's sequence is used up, Responses applies again.
	PerCall map[string][]transport.NodeResult
	calls   map[string]int
	Calls   []Call
}

// Call records one dispatched invocation.
type Call struct {
	Node string
	Argv []string
}

// NewFake returns a Fake with an empty response table. A node with no
// configured response succeeds with exit 0 and empty output.
func NewFake() *Fake {
	return &Fake{
		Responses: make(map[string]transport.NodeResult),
		PerCall:   make(map[string][]transport.NodeResult),
		calls:     make(map[string]int),
	}
}

// RunOnNode implements transport.Runner.
func (f *Fake) RunOnNode(ctx context.Context, node string, argv []string, timeout time.Duration) transport.NodeResult {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.Calls = append(f.Calls, Call{Node: node, Argv: append([]string(nil), argv...)})

	if seq, ok := f.PerCall[node]; ok {
		idx := f.calls[node]
		f.calls[node]++
		if idx < len(seq) {
			return seq[idx]
		}
	}

	if r, ok := f.Responses[node]; ok {
		return r
	}
	return transport.NodeResult{Node: node, Exit: 0}
}
