package display

import (
	"strings"
	"testing"

	"github.com/mattsolo1/nexus/session"
	"github.com/stretchr/testify/assert"
)

func TestSessionTableRendersLiveAndDeadRows(t *testing.T) {
	rows := []Row{
		{Node: "local", Record: session.Record{Name: "api", Windows: 1, Attached: 0, Command: "python", WorkingDirectory: "/home"}},
		{Node: "dev", Record: session.Record{Name: "worker", Windows: 1, Attached: 1, Command: "node", WorkingDirectory: "/app", IsDead: true, HasExitStatus: true, ExitStatus: 2}},
	}

	out := SessionTable(rows)
	assert.Contains(t, out, "local/api")
	assert.Contains(t, out, "dev/worker")
	assert.Contains(t, out, "dead (2)")
}

func TestSessionTableRendersUnreachableRow(t *testing.T) {
	rows := []Row{{Node: "gpu", Unreachable: true, Warning: "connect timeout"}}
	out := SessionTable(rows)
	assert.True(t, strings.Contains(out, "UNREACHABLE"))
}

func TestTruncateShortensLongStrings(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 20))
	assert.Equal(t, "abcd…", truncate("abcdefgh", 5))
	assert.Equal(t, "abcdefgh", truncate("abcdefgh", 0))
}
