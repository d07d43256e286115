package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mattsolo1/nexus/attach"
	"github.com/mattsolo1/nexus/dashboard"
)

// NewDashCmd builds `nexus dash`.
func NewDashCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "dash",
		Short: "Open a read-only multi-pane view of every live session in the fleet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext(cmd, "dash")
			if err != nil {
				return err
			}

			targets, warnings, err := dashboard.CollectTargets(cmd.Context(), app.runner, app.cfg)
			if err != nil {
				return err
			}
			for node, warning := range warnings {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s unreachable: %s\n", node, warning)
			}

			comp := dashboard.Plan(targets)
			if len(comp.Elided) > 0 {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %d session(s) elided beyond the %d-pane cap\n",
					len(comp.Elided), dashboard.MaxPanes)
			}
			if len(comp.Panes) == 0 {
				fmt.Println("No live sessions to show.")
				return nil
			}

			binPath, err := dashboard.ResolveBinPath()
			if err != nil {
				return err
			}
			invocationID := dashboard.NewInvocationID()
			app.log.WithField("dash_id", invocationID).Debug("composing dashboard")

			for _, argv := range dashboard.Compose(comp, binPath, invocationID) {
				result := app.runner.RunOnNode(cmd.Context(), "local", argv, 0)
				if !result.Success() {
					return fmt.Errorf("dashboard composition step failed: %s", result.String())
				}
			}

			return dashboard.Attach(attach.New().Exec)
		},
	}
	return withErrorHandling(c)
}
