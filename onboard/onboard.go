// Package onboard implements `node add`: registering a new fleet node in
// the caller's SSH configuration and pushing the canonical multiplexer
// configuration file so the node's dedicated nexus socket is ready to
// host sessions.
package onboard

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattsolo1/nexus/assets"
	"github.com/mattsolo1/nexus/nexuserr"
	"github.com/mattsolo1/nexus/transport"
)

// IncludeMarker delimits the block nexus owns inside the user's SSH
// config, so re-running onboarding is idempotent and never disturbs
// hand-written entries around it.
const IncludeMarker = "# >>> nexus fleet nodes >>>"
const includeMarkerEnd = "# <<< nexus fleet nodes <<<"

// RemoteConfPath is where the canonical tmux configuration is installed
// on every onboarded node.
const RemoteConfPath = "~/.config/nexus/nexus.tmux.conf"

// HostEntry describes one node being added to the SSH configuration.
type HostEntry struct {
	Alias    string
	HostName string
	User     string
	Port     int
}

// WriteSSHConfig appends or updates entry inside the nexus-owned block of
// sshConfigPath, creating the block if this is the first onboarded node.
func WriteSSHConfig(sshConfigPath string, entry HostEntry) error {
	existing, err := os.ReadFile(sshConfigPath)
	if err != nil && !os.IsNotExist(err) {
		return nexuserr.Wrap(err, nexuserr.ErrCodeInternal, "failed to read ssh config").
			WithDetail("path", sshConfigPath)
	}

	content := string(existing)
	block, rest := extractBlock(content)
	block = upsertHost(block, entry)

	newContent := rest
	if newContent != "" && !strings.HasSuffix(newContent, "\n") {
		newContent += "\n"
	}
	newContent += IncludeMarker + "\n" + block + includeMarkerEnd + "\n"

	if err := os.MkdirAll(filepath.Dir(sshConfigPath), 0o700); err != nil {
		return nexuserr.Wrap(err, nexuserr.ErrCodeInternal, "failed to create ssh config directory")
	}
	if err := os.WriteFile(sshConfigPath, []byte(newContent), 0o600); err != nil {
		return nexuserr.Wrap(err, nexuserr.ErrCodeInternal, "failed to write ssh config")
	}
	return nil
}

// extractBlock splits content into the current nexus-owned block body
// (without markers) and everything else, in original order.
func extractBlock(content string) (block string, rest string) {
	start := strings.Index(content, IncludeMarker)
	if start < 0 {
		return "", content
	}
	end := strings.Index(content, includeMarkerEnd)
	if end < 0 || end < start {
		return "", content
	}
	body := content[start+len(IncludeMarker) : end]
	body = strings.TrimPrefix(body, "\n")
	rest = content[:start] + content[end+len(includeMarkerEnd):]
	return body, strings.TrimRight(rest, "\n")
}

func upsertHost(block string, entry HostEntry) string {
	lines := strings.Split(block, "\n")
	hostHeader := "Host " + entry.Alias

	var filtered []string
	skipping := false
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "Host ") {
			skipping = trimmed == hostHeader
		}
		if !skipping && trimmed != "" {
			filtered = append(filtered, line)
		}
	}

	filtered = append(filtered, renderHost(entry)...)
	return strings.Join(filtered, "\n") + "\n"
}

func renderHost(entry HostEntry) []string {
	lines := []string{"Host " + entry.Alias, "    HostName " + entry.HostName}
	if entry.User != "" {
		lines = append(lines, "    User "+entry.User)
	}
	if entry.Port != 0 && entry.Port != 22 {
		lines = append(lines, fmt.Sprintf("    Port %d", entry.Port))
	}
	lines = append(lines, "    ControlMaster auto", "    ControlPersist 10m")
	return lines
}

// PushTmuxConf installs the canonical multiplexer configuration on node
// via the transport, base64-encoding the payload since the transport
// contract carries only argv, not stdin.
func PushTmuxConf(ctx context.Context, runner transport.Runner, node string) error {
	encoded := base64.StdEncoding.EncodeToString([]byte(assets.NexusTmuxConf))
	shellCmd := fmt.Sprintf("mkdir -p ~/.config/nexus && echo %s | base64 -d > %s", encoded, RemoteConfPath)
	argv := []string{"sh", "-c", shellCmd}

	result := runner.RunOnNode(ctx, node, argv, 0)
	if !result.Success() {
		return nexuserr.Wrap(fmt.Errorf("%s", result.Stderr), nexuserr.ErrCodeInternal,
			"failed to push multiplexer config to "+node)
	}
	return nil
}
