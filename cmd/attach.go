package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mattsolo1/nexus/attach"
)

// NewAttachCmd builds `nexus attach`.
func NewAttachCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "attach <name>",
		Short: "Attach to a session, replacing or spawning as the caller's nesting context requires",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext(cmd, "attach")
			if err != nil {
				return err
			}

			node, sessionName, err := app.resolveTarget(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			return attach.New().Attach(cmd.Context(), app.cfg, node, sessionName)
		},
	}
	return withErrorHandling(c)
}
