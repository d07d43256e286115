package onboard

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/mattsolo1/nexus/transport"
	"github.com/mattsolo1/nexus/transporttest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteSSHConfigCreatesBlock(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config")

	err := WriteSSHConfig(path, HostEntry{Alias: "gpu", HostName: "gpu.internal", User: "ubuntu"})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, IncludeMarker)
	assert.Contains(t, content, "Host gpu")
	assert.Contains(t, content, "HostName gpu.internal")
	assert.Contains(t, content, "User ubuntu")
}

func TestWriteSSHConfigIsIdempotentPerAlias(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config")

	require.NoError(t, WriteSSHConfig(path, HostEntry{Alias: "gpu", HostName: "gpu.old"}))
	require.NoError(t, WriteSSHConfig(path, HostEntry{Alias: "gpu", HostName: "gpu.new"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "gpu.new")
	assert.NotContains(t, content, "gpu.old")
}

func TestWriteSSHConfigPreservesUnrelatedContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config")
	require.NoError(t, os.WriteFile(path, []byte("Host personal\n    HostName personal.example\n"), 0o600))

	require.NoError(t, WriteSSHConfig(path, HostEntry{Alias: "gpu", HostName: "gpu.internal"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Host personal")
	assert.Contains(t, string(data), "Host gpu")
}

func TestPushTmuxConfSuccess(t *testing.T) {
	fake := transporttest.NewFake()
	err := PushTmuxConf(context.Background(), fake, "gpu")
	require.NoError(t, err)
	require.Len(t, fake.Calls, 1)
	assert.Equal(t, "gpu", fake.Calls[0].Node)
}

func TestPushTmuxConfFailure(t *testing.T) {
	fake := transporttest.NewFake()
	fake.Responses["gpu"] = transport.NodeResult{Exit: 1, Stderr: "permission denied"}

	err := PushTmuxConf(context.Background(), fake, "gpu")
	require.Error(t, err)
}
