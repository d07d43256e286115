// Package assets embeds static files pushed to fleet nodes during
// onboarding.
package assets

import _ "embed"

// NexusTmuxConf is the canonical multiplexer configuration for the fleet's
// dedicated socket. Onboarding writes it to every onboarded node as a file;
// it is not sourced into a running multiplexer server.
//
//go:embed nexus.tmux.conf
var NexusTmuxConf string
