// Package fanout runs one command vector against many nodes concurrently,
// bounded by a configured parallelism limit, and gathers every result into
// a map keyed by node name. It never returns a partial map: an unreachable
// or cancelled node still gets an entry.
package fanout

import (
	"context"
	"sync"

	"github.com/mattsolo1/nexus/transport"
)

// DefaultMaxParallel bounds concurrent in-flight tasks when the caller
// does not configure one. A cap of 16 balances throughput against
// file-descriptor and handshake pressure.
const DefaultMaxParallel = 16

// Run dispatches argv to every node in nodes, at most maxParallel at a
// time, and returns a result for every node — a cancelled context still
// yields a full map, with an unstarted or interrupted node's result
// carrying a non-zero exit.
func Run(ctx context.Context, runner transport.Runner, nodes []string, argv []string, maxParallel int) map[string]transport.NodeResult {
	if maxParallel <= 0 {
		maxParallel = DefaultMaxParallel
	}

	results := make(map[string]transport.NodeResult, len(nodes))
	var mu sync.Mutex
	var wg sync.WaitGroup
	semaphore := make(chan struct{}, maxParallel)

	for _, node := range nodes {
		wg.Add(1)
		go func(node string) {
			defer wg.Done()

			if ctx.Err() != nil {
				mu.Lock()
				results[node] = transport.NodeResult{Node: node, Exit: 130, Stderr: "cancelled before dispatch"}
				mu.Unlock()
				return
			}

			select {
			case semaphore <- struct{}{}:
			case <-ctx.Done():
				mu.Lock()
				results[node] = transport.NodeResult{Node: node, Exit: 130, Stderr: "cancelled before dispatch"}
				mu.Unlock()
				return
			}
			defer func() { <-semaphore }()

			result := runner.RunOnNode(ctx, node, argv, 0)
			mu.Lock()
			results[node] = result
			mu.Unlock()
		}(node)
	}

	wg.Wait()
	return results
}
