package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mattsolo1/nexus/session"
)

// NewSendCmd builds `nexus send`.
func NewSendCmd() *cobra.Command {
	var raw bool

	c := &cobra.Command{
		Use:   "send <name> <keys...>",
		Short: "Send keys to a session, appending Enter unless --raw",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext(cmd, "send")
			if err != nil {
				return err
			}

			node, sessionName, err := app.resolveTarget(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			return session.Send(cmd.Context(), app.runner, node, sessionName, args[1:], raw)
		},
	}

	c.Flags().BoolVar(&raw, "raw", false, "Send keys literally, without an appended Enter")
	return withErrorHandling(c)
}
