package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mattsolo1/nexus/session"
)

// defaultLogLines is how much scrollback logs prints when stdout is a
// terminal and --lines was not given explicitly. Piped output gets full
// scrollback instead, since a scripting consumer almost always wants
// everything captured rather than a truncated tail.
const defaultLogLines = 100

// NewLogsCmd builds `nexus logs`.
func NewLogsCmd() *cobra.Command {
	var lines int

	c := &cobra.Command{
		Use:   "logs <name>",
		Short: "Print a session's captured pane scrollback",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext(cmd, "logs")
			if err != nil {
				return err
			}

			node, sessionName, err := app.resolveTarget(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			effectiveLines := lines
			if !cmd.Flags().Changed("lines") && stdoutIsInteractive() {
				effectiveLines = defaultLogLines
			}

			out, err := session.Capture(cmd.Context(), app.runner, node, sessionName, effectiveLines)
			if err != nil {
				return err
			}
			fmt.Print(out)
			return nil
		},
	}

	c.Flags().IntVarP(&lines, "lines", "n", 0, "Lines of scrollback to capture (0 for full history)")
	return withErrorHandling(c)
}
