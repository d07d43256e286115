package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mattsolo1/nexus/display"
	"github.com/mattsolo1/nexus/fanout"
	"github.com/mattsolo1/nexus/session"
)

// deadSession pairs a dead record with the node it was found on.
type deadSession struct {
	node string
	rec  session.Record
}

// NewGCCmd builds `nexus gc`.
func NewGCCmd() *cobra.Command {
	var dryRun bool

	c := &cobra.Command{
		Use:   "gc [name]",
		Short: "Reap dead sessions across the fleet",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext(cmd, "gc")
			if err != nil {
				return err
			}

			nodes := app.nodesToQuery()
			results := fanout.Run(cmd.Context(), app.runner, nodes, session.ListArgv(), app.cfg.MaxConcurrentSSH)

			var dead []deadSession
			for _, node := range nodes {
				result := results[node]
				if !result.Success() {
					continue
				}
				recs, parseErr := session.Parse(result.Stdout)
				if parseErr != nil {
					return parseErr
				}
				for _, rec := range recs {
					if !rec.IsDead {
						continue
					}
					if len(args) == 1 && rec.Name != args[0] {
						continue
					}
					dead = append(dead, deadSession{node: node, rec: rec})
				}
			}

			if len(dead) == 0 {
				fmt.Println("No dead sessions found.")
				return nil
			}

			var rows []display.Row
			for _, d := range dead {
				rows = append(rows, display.Row{Node: d.node, Record: d.rec})
			}
			fmt.Println(display.SessionTable(rows))

			if dryRun {
				return nil
			}

			for _, d := range dead {
				if !shouldReap(app.cfg.AutoReapCleanExit, d.rec) {
					if !confirmReap(d) {
						continue
					}
				}
				if err := session.Kill(cmd.Context(), app.runner, d.node, d.rec.Name); err != nil {
					return err
				}
				fmt.Printf("Reaped %s/%s\n", d.node, d.rec.Name)
			}
			return nil
		},
	}

	c.Flags().BoolVar(&dryRun, "dry-run", false, "Print what would be reaped without killing anything")
	return withErrorHandling(c)
}

// shouldReap reports whether a dead session can be reaped without asking,
// which is only true for a clean exit under auto_reap_clean_exit.
func shouldReap(autoReapCleanExit bool, rec session.Record) bool {
	return autoReapCleanExit && rec.HasExitStatus && rec.ExitStatus == 0
}

// confirmReap asks the caller to confirm reaping a session when stdin is
// a terminal, and proceeds unprompted when it is not (a piped gc run is
// assumed to already have decided).
func confirmReap(d deadSession) bool {
	if !stdinIsInteractive() {
		return true
	}
	fmt.Printf("Reap %s/%s (exit %d)? [y/N] ", d.node, d.rec.Name, d.rec.ExitStatus)
	reader := bufio.NewReader(os.Stdin)
	line, _ := reader.ReadString('\n')
	return strings.EqualFold(strings.TrimSpace(line), "y")
}
