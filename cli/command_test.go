package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetGlobalOptionsDefaults(t *testing.T) {
	cmd := NewStandardCommand("nexus", "test")
	assert.NoError(t, cmd.ParseFlags(nil))
	opts := GetGlobalOptions(cmd)

	assert.Empty(t, opts.ConfigFile)
	assert.Empty(t, opts.Node)
	assert.False(t, opts.Verbose)
	assert.False(t, opts.JSONOutput)
}

func TestGetGlobalOptionsReadsFlags(t *testing.T) {
	cmd := NewStandardCommand("nexus", "test")
	assert.NoError(t, cmd.ParseFlags([]string{"--node", "dev", "--verbose"}))

	opts := GetGlobalOptions(cmd)
	assert.Equal(t, "dev", opts.Node)
	assert.True(t, opts.Verbose)
}

func TestResolveConfigPathPrefersExplicit(t *testing.T) {
	assert.Equal(t, "/tmp/custom.toml", ResolveConfigPath("/tmp/custom.toml"))
}

func TestResolveConfigPathPrefersLocalFile(t *testing.T) {
	dir := t.TempDir()
	cwd, err := os.Getwd()
	assert.NoError(t, err)
	defer os.Chdir(cwd)

	assert.NoError(t, os.Chdir(dir))
	assert.NoError(t, os.WriteFile("fleet.toml", []byte("nodes = []\n"), 0o644))

	assert.Equal(t, "fleet.toml", ResolveConfigPath(""))
}

func TestResolveConfigPathFallsBackToXDG(t *testing.T) {
	dir := t.TempDir()
	cwd, err := os.Getwd()
	assert.NoError(t, err)
	defer os.Chdir(cwd)
	assert.NoError(t, os.Chdir(dir))

	t.Setenv("XDG_CONFIG_HOME", "/xdg-home")
	assert.Equal(t, filepath.Join("/xdg-home", "nexus", "fleet.toml"), ResolveConfigPath(""))
}
