package snapshot

import (
	"encoding/json"
	"testing"

	"github.com/mattsolo1/nexus/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestBuildPreservesOrderAndMarksUnreachable(t *testing.T) {
	nodes := []string{"local", "dev", "gpu"}
	records := map[string][]session.Record{
		"local": {{Name: "api"}},
		"dev":   {{Name: "worker", IsDead: true, HasExitStatus: true, ExitStatus: 2}},
	}
	unreachable := map[string]string{"gpu": "connect timeout"}

	snap := Build(nodes, records, unreachable)
	require.Len(t, snap.Nodes, 3)
	assert.Equal(t, "local", snap.Nodes[0].Node)
	assert.True(t, snap.Nodes[0].Reachable)
	assert.False(t, snap.Nodes[2].Reachable)
	assert.Equal(t, "connect timeout", snap.Nodes[2].Warning)

	data, err := snap.JSON()
	require.NoError(t, err)

	var roundTrip Snapshot
	require.NoError(t, json.Unmarshal(data, &roundTrip))
	assert.Equal(t, snap.Nodes[1].Sessions[0].Name, roundTrip.Nodes[1].Sessions[0].Name)
}

func TestSnapshotYAMLRoundTrips(t *testing.T) {
	snap := Build([]string{"local"}, map[string][]session.Record{
		"local": {{Name: "api", WorkingDirectory: "/home/api"}},
	}, nil)

	data, err := yaml.Marshal(snap)
	require.NoError(t, err)
	assert.Contains(t, string(data), "working_directory: /home/api")

	var roundTrip Snapshot
	require.NoError(t, yaml.Unmarshal(data, &roundTrip))
	assert.Equal(t, "api", roundTrip.Nodes[0].Sessions[0].Name)
}
