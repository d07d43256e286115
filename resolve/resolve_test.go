package resolve

import (
	"context"
	"errors"
	"testing"

	"github.com/mattsolo1/nexus/fleetconfig"
	"github.com/mattsolo1/nexus/nexuserr"
	"github.com/mattsolo1/nexus/transport"
	"github.com/mattsolo1/nexus/transporttest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cfg(nodes []string, defaultNode string) *fleetconfig.Config {
	return &fleetconfig.Config{Nodes: nodes, DefaultNode: defaultNode, MaxConcurrentSSH: 16}
}

type fakePicker struct {
	got      []string
	response string
	err      error
}

func (p *fakePicker) Pick(ctx context.Context, candidates []string) (string, error) {
	p.got = candidates
	return p.response, p.err
}

func interactiveTrue() bool  { return true }
func interactiveFalse() bool { return false }

func TestResolveQualifiedNameSkipsFanOut(t *testing.T) {
	fake := transporttest.NewFake()
	node, sess, err := Resolve(context.Background(), fake, cfg([]string{"local"}, "local"), nil, interactiveFalse, "dev/worker")
	require.NoError(t, err)
	assert.Equal(t, "dev", node)
	assert.Equal(t, "worker", sess)
	assert.Empty(t, fake.Calls)
}

func TestResolveUniqueMatch(t *testing.T) {
	fake := transporttest.NewFake()
	fake.Responses["local"] = transport.NodeResult{Exit: 0, Stdout: "api|1|0|/home|python|1|0|\n"}
	fake.Responses["dev"] = transport.NodeResult{Exit: 0, Stdout: "worker|1|0|/app|node|2|0|\n"}

	node, sess, err := Resolve(context.Background(), fake, cfg([]string{"local", "dev"}, "local"), nil, interactiveFalse, "worker")
	require.NoError(t, err)
	assert.Equal(t, "dev", node)
	assert.Equal(t, "worker", sess)
}

func TestResolveCollisionNonInteractive(t *testing.T) {
	fake := transporttest.NewFake()
	fake.Responses["local"] = transport.NodeResult{Exit: 0, Stdout: "api|1|0|/home|python|1|0|\n"}
	fake.Responses["dev"] = transport.NodeResult{Exit: 0, Stdout: "api|1|0|/app|node|2|0|\n"}

	_, _, err := Resolve(context.Background(), fake, cfg([]string{"local", "dev"}, "local"), nil, interactiveFalse, "api")
	require.Error(t, err)
	assert.Equal(t, nexuserr.ErrCodeAmbiguousSession, nexuserr.GetCode(err))
	assert.Contains(t, err.Error(), "local/api, dev/api")
}

func TestResolveCollisionInteractivePicksDefaultFirst(t *testing.T) {
	fake := transporttest.NewFake()
	fake.Responses["local"] = transport.NodeResult{Exit: 0, Stdout: "api|1|0|/home|python|1|0|\n"}
	fake.Responses["dev"] = transport.NodeResult{Exit: 0, Stdout: "api|1|0|/app|node|2|0|\n"}

	picker := &fakePicker{response: "local/api"}
	node, sess, err := Resolve(context.Background(), fake, cfg([]string{"local", "dev"}, "dev"), picker, interactiveTrue, "api")
	require.NoError(t, err)
	assert.Equal(t, []string{"dev/api", "local/api"}, picker.got)
	assert.Equal(t, "local", node)
	assert.Equal(t, "api", sess)
}

func TestResolveCollisionPickerCancelled(t *testing.T) {
	fake := transporttest.NewFake()
	fake.Responses["local"] = transport.NodeResult{Exit: 0, Stdout: "api|1|0|/home|python|1|0|\n"}
	fake.Responses["dev"] = transport.NodeResult{Exit: 0, Stdout: "api|1|0|/app|node|2|0|\n"}

	picker := &fakePicker{err: errors.New("exit status 1")}
	_, _, err := Resolve(context.Background(), fake, cfg([]string{"local", "dev"}, "dev"), picker, interactiveTrue, "api")
	require.Error(t, err)
	assert.Equal(t, nexuserr.ErrCodeSelectionCancelled, nexuserr.GetCode(err))
}

func TestResolveNotFound(t *testing.T) {
	fake := transporttest.NewFake()
	fake.Responses["local"] = transport.NodeResult{Exit: 0, Stdout: ""}

	_, _, err := Resolve(context.Background(), fake, cfg([]string{"local"}, "local"), nil, interactiveFalse, "missing")
	require.Error(t, err)
	assert.Equal(t, nexuserr.ErrCodeSessionNotFound, nexuserr.GetCode(err))
}

func TestResolveUnreachableNodeIsSoftWarning(t *testing.T) {
	fake := transporttest.NewFake()
	fake.Responses["local"] = transport.NodeResult{Exit: 0, Stdout: "api|1|0|/home|python|1|0|\n"}
	fake.Responses["gpu"] = transport.NodeResult{Exit: 124, Stderr: "connect timeout"}

	node, sess, err := Resolve(context.Background(), fake, cfg([]string{"local", "gpu"}, "local"), nil, interactiveFalse, "api")
	require.NoError(t, err)
	assert.Equal(t, "local", node)
	assert.Equal(t, "api", sess)
}
