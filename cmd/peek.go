package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mattsolo1/nexus/session"
)

// NewPeekCmd builds `nexus peek`.
func NewPeekCmd() *cobra.Command {
	var lines int

	c := &cobra.Command{
		Use:   "peek <name>",
		Short: "Print a session's current pane contents without attaching",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext(cmd, "peek")
			if err != nil {
				return err
			}

			node, sessionName, err := app.resolveTarget(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out, err := session.Capture(cmd.Context(), app.runner, node, sessionName, lines)
			if err != nil {
				return err
			}
			fmt.Print(out)
			return nil
		},
	}

	c.Flags().IntVarP(&lines, "lines", "n", defaultPeekLines, "Lines of scrollback to capture (0 for full history)")
	return withErrorHandling(c)
}

const defaultPeekLines = 100
