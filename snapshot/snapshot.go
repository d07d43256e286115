// Package snapshot serializes a fan-out query result into a single JSON
// document. It is a one-way projection: the core never reads a snapshot
// back, so there is no schema-versioning or migration concern here.
package snapshot

import (
	"encoding/json"

	"github.com/mattsolo1/nexus/session"
)

// NodeSnapshot is the recorded state of one node at query time.
type NodeSnapshot struct {
	Node      string           `json:"node" yaml:"node"`
	Reachable bool             `json:"reachable" yaml:"reachable"`
	Warning   string           `json:"warning,omitempty" yaml:"warning,omitempty"`
	Sessions  []session.Record `json:"sessions,omitempty" yaml:"sessions,omitempty"`
}

// Snapshot is the full fleet view rendered as JSON or YAML.
type Snapshot struct {
	Nodes []NodeSnapshot `json:"nodes" yaml:"nodes"`
}

// Build assembles a Snapshot from per-node records and reachability,
// preserving the caller's node ordering.
func Build(nodes []string, records map[string][]session.Record, unreachable map[string]string) Snapshot {
	snap := Snapshot{Nodes: make([]NodeSnapshot, 0, len(nodes))}
	for _, n := range nodes {
		if warning, down := unreachable[n]; down {
			snap.Nodes = append(snap.Nodes, NodeSnapshot{Node: n, Reachable: false, Warning: warning})
			continue
		}
		snap.Nodes = append(snap.Nodes, NodeSnapshot{Node: n, Reachable: true, Sessions: records[n]})
	}
	return snap
}

// JSON renders the snapshot as indented JSON.
func (s Snapshot) JSON() ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}
