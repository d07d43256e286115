package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListArgvTargetsFleetSocket(t *testing.T) {
	argv := ListArgv()
	assert.Equal(t, []string{"tmux", "-L", "nexus", "list-sessions", "-F", Format}, argv)
}

func TestNewArgvWithWorkingDirAndCommand(t *testing.T) {
	argv := NewArgv("api", "/srv/api", []string{"npm", "run", "dev"})
	assert.Equal(t, []string{
		"tmux", "-L", "nexus", "new-session", "-d", "-s", "api",
		"-c", "/srv/api", "npm", "run", "dev",
	}, argv)
}

func TestNewArgvWithoutWorkingDir(t *testing.T) {
	argv := NewArgv("api", "", nil)
	assert.Equal(t, []string{"tmux", "-L", "nexus", "new-session", "-d", "-s", "api"}, argv)
}

func TestSendArgvAppendsEnterUnlessRaw(t *testing.T) {
	argv := SendArgv("api", []string{"npm test"}, false)
	assert.Equal(t, []string{"tmux", "-L", "nexus", "send-keys", "-t", "api", "npm test", "Enter"}, argv)

	raw := SendArgv("api", []string{"npm test"}, true)
	assert.Equal(t, []string{"tmux", "-L", "nexus", "send-keys", "-t", "api", "npm test"}, raw)
}

func TestNewWindowOnSocketArgvHasNoRemainOnExit(t *testing.T) {
	argv := NewWindowOnSocketArgv("personal", "api", "ssh dev 'tmux -L nexus attach -t api'")
	for _, a := range argv {
		assert.NotContains(t, a, "remain-on-exit")
	}
}
