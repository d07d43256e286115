package cli

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

// GlobalOptions holds the flags common to every nexus subcommand.
type GlobalOptions struct {
	ConfigFile string
	Node       string
	Verbose    bool
	JSONOutput bool
}

// NewStandardCommand creates a command with nexus's standard persistent
// flags: config file, verbose logging, JSON output, and the global --node
// override used to disambiguate without touching the resolver.
func NewStandardCommand(use, short string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	cmd.PersistentFlags().StringP("config", "c", "", "Path to fleet.toml config file")
	cmd.PersistentFlags().String("node", "", "Restrict to a single node, bypassing resolution")

	return cmd
}

// GetGlobalOptions extracts the standard flags from cmd.
func GetGlobalOptions(cmd *cobra.Command) GlobalOptions {
	configFile, _ := cmd.Flags().GetString("config")
	node, _ := cmd.Flags().GetString("node")
	verbose, _ := cmd.Flags().GetBool("verbose")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	return GlobalOptions{
		ConfigFile: configFile,
		Node:       node,
		Verbose:    verbose,
		JSONOutput: jsonOutput,
	}
}

// ResolveConfigPath returns the fleet.toml path to load: the explicit
// flag if given, otherwise ./fleet.toml, otherwise
// $XDG_CONFIG_HOME/nexus/fleet.toml. A path that does not exist is still
// returned — fleetconfig.Load treats a missing file as pure defaults.
func ResolveConfigPath(explicit string) string {
	if explicit != "" {
		return explicit
	}

	if _, err := os.Stat("fleet.toml"); err == nil {
		return "fleet.toml"
	}

	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "fleet.toml"
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "nexus", "fleet.toml")
}
