package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mattsolo1/nexus/session"
)

// NewKillCmd builds `nexus kill`.
func NewKillCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "kill <name>",
		Short: "Kill a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext(cmd, "kill")
			if err != nil {
				return err
			}

			node, sessionName, err := app.resolveTarget(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if err := session.Kill(cmd.Context(), app.runner, node, sessionName); err != nil {
				return err
			}
			fmt.Printf("Killed %s/%s\n", node, sessionName)
			return nil
		},
	}
	return withErrorHandling(c)
}
