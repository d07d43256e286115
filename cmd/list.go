package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mattsolo1/nexus/cli"
	"github.com/mattsolo1/nexus/display"
	"github.com/mattsolo1/nexus/fanout"
	"github.com/mattsolo1/nexus/session"
	"github.com/mattsolo1/nexus/snapshot"
)

// NewListCmd builds `nexus list`.
func NewListCmd() *cobra.Command {
	var format string

	c := &cobra.Command{
		Use:   "list",
		Short: "List every live session across the fleet",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext(cmd, "list")
			if err != nil {
				return err
			}

			results := fanout.Run(cmd.Context(), app.runner, app.nodesToQuery(), session.ListArgv(), app.cfg.MaxConcurrentSSH)

			records := make(map[string][]session.Record)
			unreachable := make(map[string]string)
			for _, node := range app.nodesToQuery() {
				result := results[node]
				if !result.Success() {
					unreachable[node] = result.String()
					continue
				}
				recs, parseErr := session.Parse(result.Stdout)
				if parseErr != nil {
					return parseErr
				}
				records[node] = recs
			}

			if app.opts.JSONOutput || format == "json" {
				snap := snapshot.Build(app.nodesToQuery(), records, unreachable)
				data, jsonErr := snap.JSON()
				if jsonErr != nil {
					return jsonErr
				}
				fmt.Println(string(data))
				return nil
			}

			if format == "yaml" {
				snap := snapshot.Build(app.nodesToQuery(), records, unreachable)
				data, yamlErr := yaml.Marshal(snap)
				if yamlErr != nil {
					return yamlErr
				}
				fmt.Print(string(data))
				return nil
			}

			var rows []display.Row
			for _, node := range app.nodesToQuery() {
				if warning, down := unreachable[node]; down {
					rows = append(rows, display.Row{Node: node, Unreachable: true, Warning: warning})
					continue
				}
				for _, rec := range records[node] {
					rows = append(rows, display.Row{Node: node, Record: rec})
				}
			}
			fmt.Println(display.SessionTable(rows))
			return nil
		},
	}

	c.Flags().StringVar(&format, "format", "table", "Output format: table, json, or yaml")
	return withErrorHandling(c)
}

// withErrorHandling wraps c.RunE so a returned error is rendered by
// cli.ErrorHandler and mapped to the process exit code, instead of cobra's
// default raw error print.
func withErrorHandling(c *cobra.Command) *cobra.Command {
	inner := c.RunE
	c.SilenceUsage = true
	c.SilenceErrors = true
	c.RunE = func(cmd *cobra.Command, args []string) error {
		opts := cli.GetGlobalOptions(cmd)
		err := inner(cmd, args)
		if err != nil {
			handler := cli.NewErrorHandler(opts.Verbose)
			code := handler.Handle(err)
			os.Exit(code)
		}
		return nil
	}
	return c
}
