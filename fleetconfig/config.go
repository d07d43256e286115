// Package fleetconfig loads and validates fleet.toml, the collaborator
// that supplies the fixed set of nodes and the fan-out and reaping
// defaults. The core reads a frozen value produced here; it never writes.
package fleetconfig

import (
	"os"
	"regexp"
	"strings"

	"github.com/mattsolo1/nexus/logging"
	"github.com/mattsolo1/nexus/nexuserr"
	"github.com/pelletier/go-toml/v2"
)

var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

// LocalNode is the reserved node name always present in a fleet, denoting
// the machine nexus itself runs on.
const LocalNode = "local"

// SSHConfig holds the remote-shell settings read from the [ssh] table.
// ConnectTimeoutSeconds is applied only to the remote attach command;
// fan-out and other transport calls use transport.DefaultConnectTimeout
// and the `ssh` binary on PATH, and Binary is not read by any caller.
type SSHConfig struct {
	ConnectTimeoutSeconds int    `toml:"connect_timeout_seconds"`
	Binary                string `toml:"binary"`
}

// Config is the frozen, expanded fleet configuration.
type Config struct {
	Nodes             []string       `toml:"nodes"`
	DefaultNode       string         `toml:"default_node"`
	DefaultCmd        string         `toml:"default_cmd"`
	MaxConcurrentSSH  int            `toml:"max_concurrent_ssh"`
	AutoReapCleanExit bool           `toml:"auto_reap_clean_exit"`
	SSH               SSHConfig      `toml:"ssh"`
	Logging           logging.Config `toml:"logging"`
}

func defaults() Config {
	return Config{
		Nodes:             []string{LocalNode},
		DefaultNode:       LocalNode,
		MaxConcurrentSSH:  16,
		AutoReapCleanExit: false,
		SSH: SSHConfig{
			ConnectTimeoutSeconds: 2,
			Binary:                "ssh",
		},
	}
}

// Load reads path, expands ${VAR}/${VAR:-default} references against the
// process environment, and parses the result. A missing file is not an
// error — Load returns the pure-default configuration, since a fleet of
// just "local" is a legitimate starting point.
func Load(path string) (*Config, error) {
	cfg := defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &cfg, nil
		}
		return nil, nexuserr.Wrap(err, nexuserr.ErrCodeInternal, "failed to read fleet config").
			WithDetail("path", path)
	}

	expanded := expandEnvVars(string(data))
	if err := toml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, nexuserr.Wrap(err, nexuserr.ErrCodeInternal, "failed to parse fleet config").
			WithDetail("path", path)
	}

	if !contains(cfg.Nodes, LocalNode) {
		cfg.Nodes = append([]string{LocalNode}, cfg.Nodes...)
	}
	if cfg.DefaultNode == "" {
		cfg.DefaultNode = LocalNode
	}
	if cfg.MaxConcurrentSSH <= 0 {
		cfg.MaxConcurrentSSH = 16
	}
	if cfg.SSH.ConnectTimeoutSeconds <= 0 {
		cfg.SSH.ConnectTimeoutSeconds = 2
	}
	if cfg.SSH.Binary == "" {
		cfg.SSH.Binary = "ssh"
	}

	return &cfg, nil
}

// HasNode reports whether name is a configured node.
func (c *Config) HasNode(name string) bool {
	return contains(c.Nodes, name)
}

func contains(items []string, target string) bool {
	for _, item := range items {
		if item == target {
			return true
		}
	}
	return false
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} references in content
// against the process environment. Expansion happens here, at load time,
// before the TOML is parsed — the core always receives an already-expanded
// Config and never re-expands DefaultCmd itself.
func expandEnvVars(content string) string {
	return envVarRegex.ReplaceAllStringFunc(content, func(match string) string {
		inner := envVarRegex.FindStringSubmatch(match)[1]

		parts := strings.SplitN(inner, ":-", 2)
		varName := parts[0]
		defaultValue := ""
		if len(parts) > 1 {
			defaultValue = parts[1]
		}

		if value := os.Getenv(varName); value != "" {
			return value
		}
		return defaultValue
	})
}
