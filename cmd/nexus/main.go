package main

import (
	"os"

	"github.com/mattsolo1/nexus/cli"
	"github.com/mattsolo1/nexus/cmd"
)

var (
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
	buildArch = "unknown"
)

func main() {
	rootCmd := cli.NewStandardCommand(
		"nexus",
		"Orchestrate tmux sessions across a fleet of nodes over SSH",
	)

	rootCmd.AddCommand(cmd.NewListCmd())
	rootCmd.AddCommand(cmd.NewNewCmd())
	rootCmd.AddCommand(cmd.NewAttachCmd())
	rootCmd.AddCommand(cmd.NewPeekCmd())
	rootCmd.AddCommand(cmd.NewLogsCmd())
	rootCmd.AddCommand(cmd.NewSendCmd())
	rootCmd.AddCommand(cmd.NewKillCmd())
	rootCmd.AddCommand(cmd.NewGCCmd())
	rootCmd.AddCommand(cmd.NewDashCmd())
	rootCmd.AddCommand(cmd.NewNodeCmd())

	versionCmd := cli.NewVersionCommand("nexus", cli.VersionInfo{
		Version:   version,
		Commit:    commit,
		BuildDate: buildDate,
		BuildArch: buildArch,
	})
	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
