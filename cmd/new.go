package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mattsolo1/nexus/session"
)

// NewNewCmd builds `nexus new`.
func NewNewCmd() *cobra.Command {
	var workingDir string

	c := &cobra.Command{
		Use:   "new <name> [-- command...]",
		Short: "Create a detached session on a node",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext(cmd, "new")
			if err != nil {
				return err
			}

			name := args[0]
			trailingCmd := args[1:]

			node, sessionName := app.opts.Node, name
			if idx := strings.Index(name, "/"); idx >= 0 {
				node, sessionName = name[:idx], name[idx+1:]
			}
			if node == "" {
				node = app.cfg.DefaultNode
			}

			if trailingCmd == nil && app.cfg.DefaultCmd != "" {
				trailingCmd = strings.Fields(app.cfg.DefaultCmd)
			}

			if err := session.New(cmd.Context(), app.runner, node, sessionName, workingDir, trailingCmd); err != nil {
				return err
			}
			fmt.Printf("Created %s/%s\n", node, sessionName)
			return nil
		},
	}

	c.Flags().StringVarP(&workingDir, "dir", "d", "", "Working directory for the new session")
	return withErrorHandling(c)
}
