package cmd

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mattsolo1/nexus/cli"
	"github.com/mattsolo1/nexus/fleetconfig"
	"github.com/mattsolo1/nexus/logging"
	"github.com/mattsolo1/nexus/nexuserr"
	"github.com/mattsolo1/nexus/resolve"
	"github.com/mattsolo1/nexus/transport"
)

// appContext bundles the collaborators every session-targeting command
// needs: the frozen fleet configuration, the transport runner, the
// resolved global flags, and a component logger.
type appContext struct {
	cfg    *fleetconfig.Config
	runner transport.Runner
	opts   cli.GlobalOptions
	log    *logrus.Entry
}

func newAppContext(cmd *cobra.Command, component string) (*appContext, error) {
	opts := cli.GetGlobalOptions(cmd)

	cfg, err := fleetconfig.Load(cli.ResolveConfigPath(opts.ConfigFile))
	if err != nil {
		return nil, err
	}

	if opts.Node != "" && !cfg.HasNode(opts.Node) {
		return nil, nexuserr.UnknownNode(opts.Node)
	}

	logCfg := cfg.Logging
	if opts.Verbose {
		logCfg.Level = "debug"
	}
	logging.SetConfig(logCfg)

	return &appContext{
		cfg:    cfg,
		runner: transport.NewSSHRunner(),
		opts:   opts,
		log:    logging.NewLogger(component),
	}, nil
}

// nodesToQuery returns either the single node the caller pinned with
// --node, or the full configured fleet.
func (a *appContext) nodesToQuery() []string {
	if a.opts.Node != "" {
		return []string{a.opts.Node}
	}
	return a.cfg.Nodes
}

// resolveTarget maps a bare or qualified session name to a concrete
// (node, session) pair. --node short-circuits resolution entirely,
// addressing <node>/<name> directly without a fan-out.
func (a *appContext) resolveTarget(ctx context.Context, name string) (node, sessionName string, err error) {
	if a.opts.Node != "" {
		return a.opts.Node, name, nil
	}

	picker := resolve.NewFuzzyPicker()
	if err := picker.CheckAvailable(); err != nil {
		return "", "", err
	}

	return resolve.Resolve(ctx, a.runner, a.cfg, picker, stdinIsInteractive, name)
}
