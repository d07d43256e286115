package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mattsolo1/nexus/command"
	"github.com/mattsolo1/nexus/onboard"
	"github.com/mattsolo1/nexus/session"
)

// NewNodeCmd builds `nexus node` and its `add` subcommand.
func NewNodeCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "node",
		Short: "Manage fleet nodes",
	}
	c.AddCommand(newNodeAddCmd())
	return c
}

func newNodeAddCmd() *cobra.Command {
	var (
		user string
		port int
	)

	c := &cobra.Command{
		Use:   "add <alias> <hostname>",
		Short: "Register a new fleet node and push its multiplexer configuration",
		Long:  "hostname may be user@host or host; use --user/--port to override the default port " + strconv.Itoa(22),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext(cmd, "node")
			if err != nil {
				return err
			}

			if err := command.NewSafeBuilder().Validate("nodeName", args[0]); err != nil {
				return fmt.Errorf("invalid node alias: %w", err)
			}

			entry := onboard.HostEntry{Alias: args[0], HostName: args[1], User: user, Port: port}

			home, err := os.UserHomeDir()
			if err != nil {
				return err
			}
			sshConfigPath := filepath.Join(home, ".ssh", "config")

			if err := onboard.WriteSSHConfig(sshConfigPath, entry); err != nil {
				return err
			}
			fmt.Printf("Wrote ssh config entry for %s\n", entry.Alias)

			if err := onboard.PushTmuxConf(cmd.Context(), app.runner, entry.Alias); err != nil {
				return err
			}
			fmt.Printf("Pushed multiplexer config to %s\n", entry.Alias)

			result := app.runner.RunOnNode(cmd.Context(), entry.Alias, session.ListArgv(), 0)
			if !result.Success() {
				return fmt.Errorf("node %s did not respond to a trivial list after onboarding: %s",
					entry.Alias, result.String())
			}
			fmt.Printf("%s is reachable. Add it to fleet.toml's nodes list to include it in fan-out.\n", entry.Alias)
			return nil
		},
	}

	c.Flags().StringVar(&user, "user", "", "SSH user for the node")
	c.Flags().IntVar(&port, "port", 22, "SSH port for the node")
	return withErrorHandling(c)
}
