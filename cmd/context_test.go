package cmd

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mattsolo1/nexus/cli"
	"github.com/mattsolo1/nexus/fleetconfig"
)

func TestNodesToQueryReturnsPinnedNode(t *testing.T) {
	app := &appContext{
		cfg:  &fleetconfig.Config{Nodes: []string{"local", "dev", "gpu"}},
		opts: cli.GlobalOptions{Node: "dev"},
	}
	assert.Equal(t, []string{"dev"}, app.nodesToQuery())
}

func TestNodesToQueryReturnsFullFleetWhenUnpinned(t *testing.T) {
	app := &appContext{
		cfg:  &fleetconfig.Config{Nodes: []string{"local", "dev", "gpu"}},
		opts: cli.GlobalOptions{},
	}
	assert.Equal(t, []string{"local", "dev", "gpu"}, app.nodesToQuery())
}

func TestResolveTargetShortCircuitsOnPinnedNode(t *testing.T) {
	app := &appContext{
		cfg:  &fleetconfig.Config{Nodes: []string{"local", "dev"}},
		opts: cli.GlobalOptions{Node: "dev"},
	}
	node, name, err := app.resolveTarget(context.Background(), "api")
	assert.NoError(t, err)
	assert.Equal(t, "dev", node)
	assert.Equal(t, "api", name)
}
